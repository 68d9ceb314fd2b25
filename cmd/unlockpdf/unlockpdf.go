// Package unlockpdf handles standalone unlocking of a password-protected
// statement PDF, useful for checking password derivation without a mailbox.
package unlockpdf

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"finsight/finsight/cmd/root"
	"finsight/finsight/internal/logging"
	"finsight/finsight/internal/models"
	"finsight/finsight/internal/passwords"
	"finsight/finsight/internal/unlock"
)

var (
	input       string
	output      string
	bank        string
	pdfPassword string
)

// Cmd represents the unlock command
var Cmd = &cobra.Command{
	Use:   "unlock",
	Short: "Unlock a password-protected statement PDF",
	Long: `Try the bank's password conventions against a protected PDF and write
the decrypted document on success.`,
	Run: unlockFunc,
}

func init() {
	Cmd.Flags().StringVarP(&input, "input", "i", "", "Protected PDF file")
	Cmd.Flags().StringVarP(&output, "output", "o", "", "Where to write the unlocked PDF (default: overwrite input)")
	Cmd.Flags().StringVarP(&bank, "bank", "b", "", "Issuing bank, selects the password conventions to try")
	Cmd.Flags().StringVar(&pdfPassword, "pdf-password", "", "Custom password, tried before derived candidates")
	_ = Cmd.MarkFlagRequired("input")
}

func unlockFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("PDF unlock command called")

	content, err := os.ReadFile(input)
	if err != nil {
		root.Log.Fatalf("Failed to read PDF: %v", err)
	}

	unlocker := unlock.NewUnlocker(unlock.NewPdfcpuDecryptor(), logging.GetLogger())
	result, err := unlocker.Unlock(models.RawDocument{
		Filename: input,
		Content:  content,
		Bank:     models.ParseBank(bank),
	}, passwords.PersonalInfo{
		DateOfBirth: root.SharedFlags.DOB,
		Mobile:      root.SharedFlags.Mobile,
		Account:     root.SharedFlags.Account,
		TaxID:       root.SharedFlags.TaxID,
	}, pdfPassword)
	if err != nil {
		root.Log.Fatalf("Unlock failed: %v", err)
	}
	if !result.Unlocked {
		root.Log.Fatalf("No password candidate matched after %d attempts", result.Attempts)
	}

	target := output
	if target == "" {
		target = input
	}
	if err := os.WriteFile(target, result.Document.Content, 0o600); err != nil {
		root.Log.Fatalf("Failed to write unlocked PDF: %v", err)
	}
	fmt.Printf("Unlocked %s after %d attempts -> %s\n", input, result.Attempts, target)
}
