// Package importsms handles bulk import of SMS backup files.
package importsms

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"finsight/finsight/cmd/root"
	"finsight/finsight/internal/smsbackup"
)

var input string

// Cmd represents the import command
var Cmd = &cobra.Command{
	Use:   "import",
	Short: "Import an SMS backup file",
	Long: `Parse every message in an SMS backup export (CSV or Android XML)
and extract the transactions it contains.`,
	Run: importFunc,
}

func init() {
	Cmd.Flags().StringVarP(&input, "input", "i", "", "SMS backup file (.csv or .xml)")
	_ = Cmd.MarkFlagRequired("input")
}

func importFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("SMS import command called")
	root.Log.Infof("Input file: %s", input)

	file, err := os.Open(input)
	if err != nil {
		root.Log.Fatalf("Failed to open backup file: %v", err)
	}
	defer file.Close()

	batch, err := smsbackup.ParseFile(file, input)
	if err != nil {
		root.Log.Fatalf("Failed to parse backup file: %v", err)
	}

	pipeline := root.NewPipeline(root.Library(), nil, "", "", "")
	result, err := pipeline.RunSMSSync(cmd.Context(), root.SharedFlags.UserID, batch)
	if err != nil {
		root.Log.Fatalf("SMS import failed: %v", err)
	}

	fmt.Printf("Messages submitted:    %d\n", result.MessagesSubmitted)
	fmt.Printf("Transactions found:    %d\n", result.TransactionsFound)
	fmt.Printf("Duplicates suppressed: %d\n", result.DuplicatesSuppressed)
	for _, candidate := range result.Candidates {
		fmt.Printf("%s  %-8s %10s  %-30s %s\n",
			candidate.OccurredAt.Format("2006-01-02"), candidate.Direction,
			candidate.Amount.StringFixed(2), candidate.Merchant, candidate.Category)
	}
	for _, group := range result.Recurrences {
		fmt.Printf("recurring: %s %s x%d (%s)\n",
			group.Merchant, group.Amount.StringFixed(2), group.Count, group.Frequency)
	}
	root.Log.Info("SMS import completed successfully!")
}
