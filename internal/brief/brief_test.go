package brief

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/renewal-cli/internal/config"
	"github.com/sells-group/renewal-cli/internal/model"
	"github.com/sells-group/renewal-cli/pkg/anthropic"
)

// mockClient records the request and returns a canned response.
type mockClient struct {
	lastReq anthropic.MessageRequest
	resp    *anthropic.MessageResponse
	err     error
}

func (m *mockClient) CreateMessage(_ context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	m.lastReq = req
	return m.resp, m.err
}

func textResponse(text string) *anthropic.MessageResponse {
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: text}},
	}
}

func sampleRenewal() model.RankedRenewal {
	return model.RankedRenewal{
		Policy: model.Policy{
			PolicyHash: "hash-1",
			PolicyName: "Fleet Auto",
			PolicyType: "commercial-auto",
			Customer:   "Acme Logistics",
			Premium:    42000,
		},
		DaysUntilExpiry: 12,
		PriorityScore:   88,
		Urgency:         model.UrgencyHigh,
	}
}

func TestGenerate(t *testing.T) {
	mock := &mockClient{resp: textResponse(`{
		"summary": "Acme Logistics fleet auto policy renews in 12 days.",
		"key_insights": [{"text": "High premium account", "source": "Policy Data"}],
		"suggested_actions": [{"action": "Call client", "priority": "high", "reason": "Expiry imminent"}],
		"risk_factors": ["Short runway"]
	}`)}

	g := NewGenerator(mock, config.AnthropicConfig{Model: "claude-sonnet-4-5-20250929", MaxTokens: 512})
	claims := 2
	rec := &model.EnrichmentRecord{PolicyHash: "hash-1", CustomerName: "Acme Logistics", ClaimsCount: &claims}

	b, err := g.Generate(context.Background(), sampleRenewal(), rec)
	require.NoError(t, err)

	assert.Contains(t, b.Summary, "Acme Logistics")
	require.Len(t, b.KeyInsights, 1)
	assert.Equal(t, "Policy Data", b.KeyInsights[0].Source)
	require.Len(t, b.SuggestedActions, 1)
	assert.Equal(t, "high", b.SuggestedActions[0].Priority)
	assert.False(t, b.GeneratedAt.IsZero())

	// Prompt carries both policy and enrichment data.
	prompt := mock.lastReq.Messages[0].Content
	assert.Contains(t, prompt, "Fleet Auto")
	assert.Contains(t, prompt, "Claims Count: 2")
	assert.Contains(t, prompt, "Priority Score: 88")
}

func TestGenerate_StripsMarkdownFences(t *testing.T) {
	mock := &mockClient{resp: textResponse("```json\n{\"summary\": \"ok\"}\n```")}

	g := NewGenerator(mock, config.AnthropicConfig{})
	b, err := g.Generate(context.Background(), sampleRenewal(), nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", b.Summary)
}

func TestGenerate_NonJSONResponse(t *testing.T) {
	mock := &mockClient{resp: textResponse("I cannot produce JSON today.")}

	g := NewGenerator(mock, config.AnthropicConfig{})
	_, err := g.Generate(context.Background(), sampleRenewal(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse response")
}

func TestGenerate_ClientError(t *testing.T) {
	mock := &mockClient{err: eris.New("api unavailable")}

	g := NewGenerator(mock, config.AnthropicConfig{})
	_, err := g.Generate(context.Background(), sampleRenewal(), nil)
	require.Error(t, err)
}

func TestNewGenerator_Defaults(t *testing.T) {
	g := NewGenerator(&mockClient{}, config.AnthropicConfig{})
	assert.Equal(t, "claude-sonnet-4-5-20250929", g.model)
	assert.Equal(t, int64(1024), g.maxTokens)
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare object", `{"a":1}`, `{"a":1}`},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"preamble", `Here you go: {"a":1} thanks`, `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractJSON(tt.in))
		})
	}
}
