// Package sms handles parsing of individual forwarded transaction SMS messages.
package sms

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"finsight/finsight/cmd/root"
	"finsight/finsight/internal/ingest"
)

var (
	text   string
	sender string
)

// Cmd represents the sms command
var Cmd = &cobra.Command{
	Use:   "sms",
	Short: "Parse a forwarded transaction SMS",
	Long: `Parse one forwarded bank SMS into a transaction candidate: amount,
direction, merchant, account, bank, category, and date.`,
	Run: smsFunc,
}

func init() {
	Cmd.Flags().StringVarP(&text, "text", "t", "", "SMS body text")
	Cmd.Flags().StringVarP(&sender, "sender", "f", "", "SMS sender identifier")
	_ = Cmd.MarkFlagRequired("text")
}

func smsFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("SMS parse command called")

	pipeline := root.NewPipeline(root.Library(), nil, "", "", "")
	result, err := pipeline.RunSMSSync(cmd.Context(), root.SharedFlags.UserID, []ingest.ForwardedSMS{
		{Sender: sender, Text: text, ReceivedAt: time.Now()},
	})
	if err != nil {
		root.Log.Fatalf("SMS parse failed: %v", err)
	}

	if len(result.Candidates) == 0 {
		fmt.Println("No transaction found in message")
		return
	}
	for _, candidate := range result.Candidates {
		fmt.Printf("Amount:    %s\n", candidate.Amount.StringFixed(2))
		fmt.Printf("Direction: %s\n", candidate.Direction)
		fmt.Printf("Merchant:  %s\n", candidate.Merchant)
		fmt.Printf("Account:   %s\n", candidate.AccountLast4)
		fmt.Printf("Bank:      %s\n", candidate.Bank)
		fmt.Printf("Category:  %s\n", candidate.Category)
		fmt.Printf("Date:      %s\n", candidate.OccurredAt.Format("2006-01-02"))
	}
}
