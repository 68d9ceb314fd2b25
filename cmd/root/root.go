// Package root contains the root command for the application
package root

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"finsight/finsight/internal/config"
	"finsight/finsight/internal/ingest"
	"finsight/finsight/internal/logging"
	"finsight/finsight/internal/mailbox"
	"finsight/finsight/internal/patterns"
	"finsight/finsight/internal/reconcile"
	"finsight/finsight/internal/sms"
	"finsight/finsight/internal/statement"
	"finsight/finsight/internal/unlock"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	UserID  string
	DOB     string
	Mobile  string
	Account string
	TaxID   string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg holds the loaded application configuration
	Cfg *config.Config

	// SharedFlags holds flag values common to multiple commands
	SharedFlags = CommonFlags{}

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "finsight",
		Short: "Extract transactions from bank statements and SMS alerts.",
		Long: `finsight locates bank statement emails, unlocks password-protected PDF
statements, and parses transaction alert SMS messages into categorized
transaction candidates.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to finsight!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()

			cfg, err := config.Initialize()
			if err != nil {
				Log.Fatalf("Failed to load configuration: %v", err)
			}
			Cfg = cfg
			Log = config.ConfigureLogging(cfg)
			logging.SetLogger(logging.NewLogrusAdapterFromLogger(Log))
		},
	}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.UserID, "user", "u", "default", "User identifier for deduplication")
	Cmd.PersistentFlags().StringVar(&SharedFlags.DOB, "dob", "", "Date of birth in DDMMYYYY form, used for PDF passwords")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Mobile, "mobile", "", "Mobile number, used for PDF passwords")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Account, "account", "", "Account number, used for PDF passwords")
	Cmd.PersistentFlags().StringVar(&SharedFlags.TaxID, "tax-id", "", "Tax identifier, used for PDF passwords")
}

// Library builds the pattern library, merging category rules from the
// configured rules file when one is set.
func Library() *patterns.Library {
	library := patterns.Default()
	if Cfg == nil || Cfg.Categories.File == "" {
		return library
	}
	rules, err := patterns.LoadCategoryRules(Cfg.Categories.File)
	if err != nil {
		Log.WithError(err).Warn("Failed to load category rules, using defaults")
		return library
	}
	return library.WithCategories(rules)
}

// NewPipeline wires a full ingestion pipeline for one mailbox account. The
// locator is nil when no address is given, which is fine for SMS-only runs.
func NewPipeline(library *patterns.Library, ledger reconcile.Ledger, server, address, credential string) *ingest.Pipeline {
	logger := logging.GetLogger()

	var locator *mailbox.Locator
	if address != "" {
		locator = mailbox.NewLocator(mailbox.IMAPDialer{}, library, server, address, credential, logger)
	}
	if ledger == nil {
		ledger = reconcile.NewMemoryLedger()
	}

	workers := ingest.DefaultWorkers
	if Cfg != nil && Cfg.Mailbox.Workers > 0 {
		workers = Cfg.Mailbox.Workers
	}

	return ingest.NewPipeline(ingest.Deps{
		Locator:       locator,
		Unlocker:      unlock.NewUnlocker(unlock.NewPdfcpuDecryptor(), logger),
		TextExtractor: statement.NewPdftotextExtractor(),
		Extractor:     statement.NewExtractor(library, logger),
		SMSParser:     sms.NewParser(library, logger),
		Reconciler:    reconcile.NewReconciler(ledger, logger),
		Logger:        logger,
		Workers:       workers,
	})
}
