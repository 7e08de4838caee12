package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const enrichmentTemplate = `policyHash,customerName,email,claims,carrierRating,churnRisk,crmId,calendarEventId,meetingNotes,lastContactDate,carrierStatus
0x123...,John Doe,john@example.com,2,4,30,CRM-001,EVT-101,Client concerned about rising premiums,2025-01-15,Responsive
0x456...,Jane Smith,jane@example.com,0,5,10,CRM-002,EVT-102,Positive feedback on renewal speed,2025-01-10,Very Responsive
`

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Print the enrichment CSV template",
	Long:  "Prints a CSV header and sample rows in the shape the ingest normalizer expects. Redirect to a file to hand to a CRM admin.",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Print(enrichmentTemplate)
	},
}

func init() {
	rootCmd.AddCommand(templateCmd)
}
