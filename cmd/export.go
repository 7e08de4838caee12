package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/renewal-cli/internal/model"
	"github.com/sells-group/renewal-cli/pkg/notion"
)

var (
	exportInput    string
	exportNotionDB string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Push a ranked pipeline into a Notion database",
	Long: `Creates one Notion page per ranked renewal, in rank order. The target
database needs Name (title), Priority Score, Days Until Expiry, Premium
(number), Urgency, Data Source (select), and Customer (rich text)
properties. Requires RENEWAL_NOTION_TOKEN.

Examples:
  renewal-cli pipeline --policies book.json --output ranked.json
  renewal-cli export --input ranked.json --notion-db 1234abcd`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cfg.Notion.Token == "" {
			return eris.New("export: RENEWAL_NOTION_TOKEN is not set")
		}

		dbID := exportNotionDB
		if dbID == "" {
			dbID = cfg.Notion.RenewalDB
		}
		if dbID == "" {
			return eris.New("export: pass --notion-db or set notion.renewal_db")
		}

		data, err := os.ReadFile(exportInput)
		if err != nil {
			return eris.Wrapf(err, "export: read input %s", exportInput)
		}
		var items []model.RankedRenewal
		if err := json.Unmarshal(data, &items); err != nil {
			return eris.Wrap(err, "export: parse ranked renewals")
		}

		client := notion.NewClient(cfg.Notion.Token)
		n, err := notion.ExportRenewals(cmd.Context(), client, dbID, items)
		if err != nil {
			zap.L().Error("export aborted", zap.Int("exported", n), zap.Error(err))
			return eris.Wrap(err, "export: push to notion")
		}

		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportInput, "input", "", "ranked pipeline JSON from `pipeline --output` (required)")
	exportCmd.Flags().StringVar(&exportNotionDB, "notion-db", "", "Notion database ID (default from config)")
	_ = exportCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(exportCmd)
}
