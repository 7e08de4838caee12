package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/renewal-cli/internal/brief"
	"github.com/sells-group/renewal-cli/internal/ingest"
	"github.com/sells-group/renewal-cli/internal/model"
	"github.com/sells-group/renewal-cli/internal/renewal"
	"github.com/sells-group/renewal-cli/pkg/anthropic"
)

var servePort int

// apiServer holds the dependencies of the HTTP handlers.
type apiServer struct {
	briefGen *brief.Generator // nil when no Anthropic key is configured
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the renewal scoring HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		api := &apiServer{}
		if cfg.Anthropic.Key != "" {
			api.briefGen = brief.NewGenerator(anthropic.NewClient(cfg.Anthropic.Key), cfg.Anthropic)
		} else {
			zap.L().Warn("RENEWAL_ANTHROPIC_KEY not set, /api/v1/brief disabled")
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: api.router(),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func (s *apiServer) router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/score", s.handleScore)
		r.Post("/pipeline", s.handlePipeline)
		r.Post("/ingest", s.handleIngest)
		r.Post("/brief", s.handleBrief)
	})

	return r
}

// requestLogger logs each request with structured fields.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		zap.L().Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

type scoreRequest struct {
	Policy     model.Policy             `json:"policy"`
	Policies   []model.Policy           `json:"policies"`
	Enrichment []model.EnrichmentRecord `json:"enrichment,omitempty"`
	Weights    *model.PriorityWeights   `json:"weights,omitempty"`
}

func (s *apiServer) handleScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Policy.PolicyHash == "" {
		respondError(w, http.StatusBadRequest, "policy is required")
		return
	}

	weights := model.DefaultWeights()
	if req.Weights != nil {
		if err := renewal.ValidateWeights(*req.Weights); err != nil {
			respondError(w, http.StatusBadRequest, "invalid weights")
			return
		}
		weights = *req.Weights
	}

	result := scoreOne(req.Policy, req.Policies, ingest.Key(req.Enrichment), weights, time.Now())
	respondJSON(w, http.StatusOK, result)
}

type pipelineRequest struct {
	Policies       []model.Policy         `json:"policies"`
	CSVContent     string                 `json:"csv_content,omitempty"`
	Weights        *model.PriorityWeights `json:"weights,omitempty"`
	TimeWindowDays int                    `json:"time_window_days,omitempty"`
}

func (s *apiServer) handlePipeline(w http.ResponseWriter, r *http.Request) {
	var req pipelineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	records, err := ingest.Parse(req.CSVContent)
	if err != nil {
		if eris.Is(err, ingest.ErrMalformedPayload) {
			respondError(w, http.StatusBadRequest, "csv_content is not parseable as delimited text")
			return
		}
		zap.L().Error("pipeline ingest failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	concurrency := 1
	if cfg != nil {
		concurrency = cfg.Pipeline.Concurrency
	}
	items, err := renewal.Build(r.Context(), req.Policies, ingest.Key(records), renewal.BuildOptions{
		Weights:        req.Weights,
		TimeWindowDays: req.TimeWindowDays,
		Concurrency:    concurrency,
	})
	if err != nil {
		zap.L().Error("pipeline build failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if items == nil {
		items = []model.RankedRenewal{}
	}

	respondJSON(w, http.StatusOK, items)
}

func (s *apiServer) handleIngest(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "unreadable request body")
		return
	}

	records, err := ingest.Parse(string(body))
	if err != nil {
		if eris.Is(err, ingest.ErrMalformedPayload) {
			respondError(w, http.StatusBadRequest, "payload is not parseable as delimited text")
			return
		}
		zap.L().Error("ingest failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if records == nil {
		records = []model.EnrichmentRecord{}
	}

	respondJSON(w, http.StatusOK, records)
}

type briefRequest struct {
	Renewal    model.RankedRenewal     `json:"renewal"`
	Enrichment *model.EnrichmentRecord `json:"enrichment,omitempty"`
}

func (s *apiServer) handleBrief(w http.ResponseWriter, r *http.Request) {
	if s.briefGen == nil {
		respondError(w, http.StatusServiceUnavailable, "brief generation is not configured")
		return
	}

	var req briefRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Renewal.Policy.PolicyHash == "" {
		respondError(w, http.StatusBadRequest, "renewal is required")
		return
	}

	b, err := s.briefGen.Generate(r.Context(), req.Renewal, req.Enrichment)
	if err != nil {
		zap.L().Error("brief generation failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusOK, b)
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
