package notion

import (
	"context"
	"testing"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/renewal-cli/internal/model"
)

type mockNotion struct {
	pages []*notionapi.PageCreateRequest
	fail  int // fail on the Nth call (1-based), 0 = never
}

func (m *mockNotion) CreatePage(_ context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error) {
	if m.fail > 0 && len(m.pages)+1 == m.fail {
		return nil, eris.New("boom")
	}
	m.pages = append(m.pages, req)
	return &notionapi.Page{}, nil
}

func rankedItem(hash, name string, score int) model.RankedRenewal {
	return model.RankedRenewal{
		Policy:          model.Policy{PolicyHash: hash, PolicyName: name, Customer: "Acme", Premium: 1000},
		DaysUntilExpiry: 14,
		PriorityScore:   score,
		Urgency:         model.UrgencyHigh,
		Source:          model.DataSource{Type: model.SourceDefaults},
	}
}

func TestExportRenewals(t *testing.T) {
	mock := &mockNotion{}
	items := []model.RankedRenewal{
		rankedItem("h1", "Fleet Auto", 90),
		rankedItem("h2", "", 75),
	}

	n, err := ExportRenewals(context.Background(), mock, "db-123", items)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, mock.pages, 2)

	first := mock.pages[0]
	assert.Equal(t, notionapi.DatabaseID("db-123"), first.Parent.DatabaseID)

	title := first.Properties["Name"].(notionapi.TitleProperty)
	assert.Equal(t, "Fleet Auto", title.Title[0].Text.Content)

	score := first.Properties["Priority Score"].(notionapi.NumberProperty)
	assert.Equal(t, float64(90), score.Number)

	urgency := first.Properties["Urgency"].(notionapi.SelectProperty)
	assert.Equal(t, "high", urgency.Select.Name)

	// Hash is used as the title when the policy has no name.
	secondTitle := mock.pages[1].Properties["Name"].(notionapi.TitleProperty)
	assert.Equal(t, "h2", secondTitle.Title[0].Text.Content)
}

func TestExportRenewals_PartialFailure(t *testing.T) {
	mock := &mockNotion{fail: 2}
	items := []model.RankedRenewal{
		rankedItem("h1", "A", 90),
		rankedItem("h2", "B", 80),
		rankedItem("h3", "C", 70),
	}

	n, err := ExportRenewals(context.Background(), mock, "db-123", items)
	require.Error(t, err)
	assert.Equal(t, 1, n)
	assert.Contains(t, err.Error(), "h2")
}

func TestExportRenewals_Empty(t *testing.T) {
	mock := &mockNotion{}
	n, err := ExportRenewals(context.Background(), mock, "db-123", nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, mock.pages)
}
