// Package models provides the data structures shared across the ingestion
// pipeline: extracted transaction candidates, raw and unlocked documents,
// recurrence groups, and batch run summaries.
package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Direction distinguishes money leaving the account from money entering it.
type Direction string

const (
	DirectionDebit  Direction = "debit"
	DirectionCredit Direction = "credit"
)

// Provenance records which extractor produced a candidate.
type Provenance string

const (
	ProvenanceStatement Provenance = "statement"
	ProvenanceSMS       Provenance = "sms"
)

// UnknownMerchant is the placeholder used when no merchant pattern matched an
// SMS. It is distinct from an empty merchant, which means the source carried
// no merchant field at all.
const UnknownMerchant = "Unknown Merchant"

// CategoryUncategorized is the default category when no keyword rule matched.
const CategoryUncategorized = "uncategorized"

// TransactionCandidate is a provisional, not-yet-persisted transaction
// extracted from a statement line or an SMS. Amount is always the unsigned
// magnitude from the source; Direction carries the sign separately.
type TransactionCandidate struct {
	Amount       decimal.Decimal
	Direction    Direction
	OccurredAt   time.Time // zero until normalized for statement candidates
	RawDate      string    // date text exactly as matched in the source
	Description  string
	Merchant     string // empty means absent; SMS uses UnknownMerchant
	AccountLast4 string // empty means absent
	Bank         Bank
	Category     string
	Provenance   Provenance
	RawText      string // source text span, kept for audit and debugging
	SMSSender    string // sender identifier for SMS candidates
}

// RecurrenceKey returns the grouping key used for recurrence detection:
// merchant and amount. Merchant comparison is case-insensitive.
func (c *TransactionCandidate) RecurrenceKey() string {
	return strings.ToLower(strings.TrimSpace(c.Merchant)) + "|" + c.Amount.String()
}

// RecurrenceGroup is a set of candidates sharing merchant and amount, inferred
// to represent a repeating payment. Rebuilt from scratch on each detection run.
type RecurrenceGroup struct {
	Merchant  string
	Amount    decimal.Decimal
	Count     int
	Frequency string // coarse label; interval inference is not performed
}

// RawDocument is an attachment pulled from a mailbox, possibly encrypted.
type RawDocument struct {
	Filename  string
	Content   []byte
	Bank      Bank
	Encrypted bool
}

// UnlockedDocument is the decrypted (or never-encrypted) form of a
// RawDocument together with the password that opened it, if any.
type UnlockedDocument struct {
	Filename string
	Content  []byte
	Bank     Bank
	Password string // empty when the document was not encrypted
}

// ParseAmount parses a string amount to decimal.Decimal, stripping currency
// markers and thousand separators as they appear in Indian bank text.
func ParseAmount(amountStr string) decimal.Decimal {
	amount := strings.TrimSpace(amountStr)
	amount = strings.ReplaceAll(amount, ",", "")
	amount = strings.ReplaceAll(amount, "₹", "")
	for _, marker := range []string{"Rs.", "Rs", "INR"} {
		amount = strings.ReplaceAll(amount, marker, "")
	}
	amount = strings.TrimSpace(amount)

	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero
	}
	return dec
}
