// Package fetch handles the statement-ingestion command: search the mailbox,
// unlock PDF attachments, and extract transactions.
package fetch

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"finsight/finsight/cmd/root"
	"finsight/finsight/internal/config"
	"finsight/finsight/internal/ingest"
	"finsight/finsight/internal/mailbox"
	"finsight/finsight/internal/passwords"
)

var (
	address     string
	credential  string
	server      string
	bankFilter  string
	lookback    int
	pdfPassword string
)

// Cmd represents the fetch command
var Cmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch and parse bank statements from a mailbox",
	Long: `Search a mailbox for bank statement emails, unlock their PDF
attachments with derived password candidates, and extract transactions.`,
	Run: fetchFunc,
}

func init() {
	Cmd.Flags().StringVarP(&address, "address", "a", "", "Mailbox address to search")
	Cmd.Flags().StringVarP(&credential, "password", "p", "", "Mailbox password or app password")
	Cmd.Flags().StringVarP(&server, "server", "s", "", "IMAP server host:port (auto-detected for common providers)")
	Cmd.Flags().StringVarP(&bankFilter, "bank", "b", "", "Restrict the search to one bank")
	Cmd.Flags().IntVarP(&lookback, "days", "d", 0, "Lookback window in days (default from config)")
	Cmd.Flags().StringVar(&pdfPassword, "pdf-password", "", "Custom PDF password, tried before derived candidates")
	_ = Cmd.MarkFlagRequired("address")
}

func fetchFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Statement fetch command called")

	if credential == "" {
		credential = os.Getenv("FINSIGHT_MAILBOX_PASSWORD")
	}
	if credential == "" {
		root.Log.Fatal("No mailbox password given (use --password or FINSIGHT_MAILBOX_PASSWORD)")
	}
	if server == "" {
		server = root.Cfg.IMAP.Server
	}
	if server == "" {
		server = config.DetectIMAPServer(address)
	}
	if server == "" {
		root.Log.Fatalf("Could not detect IMAP server for %s, use --server", address)
	}

	days := lookback
	if days <= 0 {
		days = root.Cfg.Mailbox.LookbackDays
	}

	library := root.Library()
	pipeline := root.NewPipeline(library, nil, server, address, credential)

	result, err := pipeline.RunStatementSync(cmd.Context(), ingest.StatementOptions{
		UserID: root.SharedFlags.UserID,
		Mailbox: mailbox.Options{
			LookbackDays: days,
			BankFilter:   bankFilter,
			KeywordCap:   root.Cfg.Mailbox.KeywordCap,
		},
		Personal: passwords.PersonalInfo{
			DateOfBirth: root.SharedFlags.DOB,
			Mobile:      root.SharedFlags.Mobile,
			Account:     root.SharedFlags.Account,
			TaxID:       root.SharedFlags.TaxID,
		},
		CustomPassword: pdfPassword,
	})
	if err != nil {
		root.Log.Fatalf("Statement fetch failed: %v", err)
	}

	fmt.Printf("Messages found:        %d\n", result.MessagesFound)
	fmt.Printf("Attachments found:     %d\n", result.AttachmentsFound)
	fmt.Printf("Attachments processed: %d\n", result.AttachmentsProcessed)
	fmt.Printf("Transactions found:    %d\n", result.TransactionsFound)
	for _, failed := range result.Failed {
		fmt.Printf("  failed: %s (%s)\n", failed.Filename, failed.Reason)
	}
	for _, candidate := range result.Candidates {
		fmt.Printf("%s  %-8s %10s  %-30s %s\n",
			candidate.OccurredAt.Format("2006-01-02"), candidate.Direction,
			candidate.Amount.StringFixed(2), candidate.Merchant, candidate.Category)
	}
	for _, group := range result.Recurrences {
		fmt.Printf("recurring: %s %s x%d (%s)\n",
			group.Merchant, group.Amount.StringFixed(2), group.Count, group.Frequency)
	}
	root.Log.Info("Statement fetch completed successfully!")
}
