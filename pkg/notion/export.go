package notion

import (
	"context"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/renewal-cli/internal/model"
)

// ExportRenewals creates one page per ranked renewal in the given database.
// Pages are created in rank order; returns the number of pages created.
func ExportRenewals(ctx context.Context, c Client, dbID string, items []model.RankedRenewal) (int, error) {
	for i, item := range items {
		req := &notionapi.PageCreateRequest{
			Parent: notionapi.Parent{
				Type:       notionapi.ParentTypeDatabaseID,
				DatabaseID: notionapi.DatabaseID(dbID),
			},
			Properties: renewalProperties(item),
		}
		if _, err := c.CreatePage(ctx, req); err != nil {
			return i, eris.Wrapf(err, "notion: export renewal %s", item.Policy.PolicyHash)
		}
	}

	zap.L().Info("notion export complete",
		zap.String("database_id", dbID),
		zap.Int("pages", len(items)),
	)
	return len(items), nil
}

func renewalProperties(item model.RankedRenewal) notionapi.Properties {
	title := item.Policy.PolicyName
	if title == "" {
		title = item.Policy.PolicyHash
	}

	props := notionapi.Properties{
		"Name": notionapi.TitleProperty{
			Title: []notionapi.RichText{{Text: &notionapi.Text{Content: title}}},
		},
		"Priority Score": notionapi.NumberProperty{
			Number: float64(item.PriorityScore),
		},
		"Days Until Expiry": notionapi.NumberProperty{
			Number: float64(item.DaysUntilExpiry),
		},
		"Urgency": notionapi.SelectProperty{
			Select: notionapi.Option{Name: string(item.Urgency)},
		},
		"Data Source": notionapi.SelectProperty{
			Select: notionapi.Option{Name: string(item.Source.Type)},
		},
		"Premium": notionapi.NumberProperty{
			Number: float64(item.Policy.Premium),
		},
	}

	if item.Policy.Customer != "" {
		props["Customer"] = notionapi.RichTextProperty{
			RichText: []notionapi.RichText{{Text: &notionapi.Text{Content: item.Policy.Customer}}},
		}
	}

	return props
}
