// Package brief generates one-page renewal call briefs from ranked
// renewals using the Anthropic messages API.
package brief

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/renewal-cli/internal/config"
	"github.com/sells-group/renewal-cli/internal/model"
	"github.com/sells-group/renewal-cli/pkg/anthropic"
)

// Brief is a structured renewal brief for a broker call.
type Brief struct {
	Summary          string    `json:"summary"`
	KeyInsights      []Insight `json:"key_insights"`
	SuggestedActions []Action  `json:"suggested_actions"`
	RiskFactors      []string  `json:"risk_factors"`
	GeneratedAt      time.Time `json:"generated_at"`
}

// Insight is a single data-sourced observation.
type Insight struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

// Action is a suggested broker follow-up.
type Action struct {
	Action   string `json:"action"`
	Priority string `json:"priority"` // high, medium, low
	Reason   string `json:"reason"`
}

const systemPrompt = `You are an expert insurance broker assistant. Generate a professional one-page renewal brief for this policy.
Your goal is a concise, high-impact summary that prepares the broker for a renewal discussion in under 60 seconds.
Rules:
1. Summary must be a single coherent paragraph mentioning the client, policy type, and major risks or opportunities.
2. Key insights are distinct points, each explicitly sourced from the provided data.
3. Tone: professional, strategic, action-oriented.
4. Use only the provided data. Never invent facts.
5. Return ONLY valid minified JSON with no markdown formatting or explanations.`

// Generator produces renewal briefs through an Anthropic client.
type Generator struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// NewGenerator creates a Generator from configuration.
func NewGenerator(client anthropic.Client, cfg config.AnthropicConfig) *Generator {
	model := cfg.Model
	if model == "" {
		model = "claude-sonnet-4-5-20250929"
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1024
	}
	return &Generator{client: client, model: model, maxTokens: maxTokens}
}

// Generate builds a brief for the ranked renewal, folding in the matched
// enrichment record when present.
func (g *Generator) Generate(ctx context.Context, item model.RankedRenewal, rec *model.EnrichmentRecord) (*Brief, error) {
	temp := 0.5
	resp, err := g.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       g.model,
		MaxTokens:   g.maxTokens,
		System:      systemPrompt,
		Temperature: &temp,
		Messages: []anthropic.Message{
			{Role: "user", Content: buildPrompt(item, rec)},
		},
	})
	if err != nil {
		return nil, eris.Wrap(err, "brief: create message")
	}
	resp.Usage.LogCost(g.model)

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	var b Brief
	if err := json.Unmarshal([]byte(extractJSON(text.String())), &b); err != nil {
		zap.L().Warn("brief: model returned non-JSON output", zap.Error(err))
		return nil, eris.Wrap(err, "brief: parse response")
	}
	b.GeneratedAt = time.Now().UTC()
	return &b, nil
}

// buildPrompt renders the policy, score, and enrichment data sections plus
// the required output shape.
func buildPrompt(item model.RankedRenewal, rec *model.EnrichmentRecord) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "POLICY DATA:\n")
	fmt.Fprintf(&sb, "- Policy Name: %s\n", item.Policy.PolicyName)
	fmt.Fprintf(&sb, "- Policy Type: %s\n", item.Policy.PolicyType)
	fmt.Fprintf(&sb, "- Customer: %s\n", item.Policy.Customer)
	fmt.Fprintf(&sb, "- Premium: %d\n", item.Policy.Premium)
	fmt.Fprintf(&sb, "- Coverage Amount: %d\n", item.Policy.CoverageAmount)
	fmt.Fprintf(&sb, "- Days Until Expiry: %d\n", item.DaysUntilExpiry)
	fmt.Fprintf(&sb, "- Renewal Count: %d\n", item.Policy.RenewalCount)
	fmt.Fprintf(&sb, "- Priority Score: %d (%s urgency)\n", item.PriorityScore, item.Urgency)

	if rec != nil {
		fmt.Fprintf(&sb, "\nENRICHMENT DATA (Source: CRM import):\n")
		if rec.CustomerName != "" {
			fmt.Fprintf(&sb, "- Client: %s\n", rec.CustomerName)
		}
		if rec.CustomerEmail != "" {
			fmt.Fprintf(&sb, "- Contact: %s\n", rec.CustomerEmail)
		}
		if rec.ClaimsCount != nil {
			fmt.Fprintf(&sb, "- Claims Count: %d\n", *rec.ClaimsCount)
		}
		if rec.CarrierRating != nil {
			fmt.Fprintf(&sb, "- Carrier Rating: %.1f\n", *rec.CarrierRating)
		}
		if rec.CarrierStatus != "" {
			fmt.Fprintf(&sb, "- Carrier Status: %s\n", rec.CarrierStatus)
		}
		if rec.LastContactDate != "" {
			fmt.Fprintf(&sb, "- Last Contact: %s\n", rec.LastContactDate)
		}
		if rec.MeetingNotes != "" {
			fmt.Fprintf(&sb, "- Meeting Notes: %s\n", rec.MeetingNotes)
		}
		if rec.RecentEmails != "" {
			fmt.Fprintf(&sb, "- Recent Emails: %s\n", rec.RecentEmails)
		}
	}

	sb.WriteString(`
Generate a JSON response with this exact structure:
{
  "summary": "2-3 sentence executive summary paragraph",
  "key_insights": [{"text": "Specific insight sourced from data", "source": "e.g. Policy Data / CRM import"}],
  "suggested_actions": [{"action": "Specific step to take", "priority": "high|medium|low", "reason": "Justification"}],
  "risk_factors": ["Risk 1", "Risk 2"]
}`)

	return sb.String()
}

// extractJSON strips markdown fences and any preamble or postscript around
// the outermost JSON object.
func extractJSON(text string) string {
	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")

	first := strings.Index(s, "{")
	last := strings.LastIndex(s, "}")
	if first != -1 && last != -1 && last > first {
		s = s[first : last+1]
	}
	return s
}
