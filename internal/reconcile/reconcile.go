// Package reconcile merges extracted transaction candidates against the
// existing ledger. Candidates whose (amount, merchant) key already exists for
// the user are suppressed; recurrence groups are derived across the full
// extracted batch, independent of suppression.
package reconcile

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"finsight/finsight/internal/logging"
	"finsight/finsight/internal/models"
)

// Ledger is the read-only view of the persisted transaction store, consumed
// only for duplicate suppression. The pipeline never writes to the ledger;
// it returns candidates for the caller to persist.
type Ledger interface {
	// Lookup reports whether the user already has a transaction with this
	// amount and merchant.
	Lookup(ctx context.Context, userID string, amount decimal.Decimal, merchant string) (bool, error)
}

// LedgerFunc adapts a function to the Ledger interface.
type LedgerFunc func(ctx context.Context, userID string, amount decimal.Decimal, merchant string) (bool, error)

// Lookup calls the wrapped function.
func (f LedgerFunc) Lookup(ctx context.Context, userID string, amount decimal.Decimal, merchant string) (bool, error) {
	return f(ctx, userID, amount, merchant)
}

// statementDateLayouts is the fixed day-first convention used to normalize
// raw statement dates.
var statementDateLayouts = []string{
	"2/1/2006",
	"2-1-2006",
	"2/1/06",
}

// Result carries the reconciliation outcome: the deduplicated list to insert
// and the recurrence groups detected over the full batch.
type Result struct {
	ToInsert    []models.TransactionCandidate
	Suppressed  int
	Recurrences []models.RecurrenceGroup
}

// Reconciler deduplicates candidate batches against a ledger and flags
// recurring payments.
type Reconciler struct {
	ledger Ledger
	logger logging.Logger
}

// NewReconciler creates a Reconciler backed by the given ledger.
func NewReconciler(ledger Ledger, logger logging.Logger) *Reconciler {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Reconciler{ledger: ledger, logger: logger}
}

// Reconcile processes one user's candidate batch. Statement candidates get
// their raw dates normalized first, then each candidate is checked against
// the ledger on (amount, merchant); a hit suppresses insertion. Recurrence
// detection always runs over the full pre-suppression batch.
func (r *Reconciler) Reconcile(ctx context.Context, userID string, batch []models.TransactionCandidate) (Result, error) {
	normalized := make([]models.TransactionCandidate, len(batch))
	copy(normalized, batch)
	for i := range normalized {
		normalizeDate(&normalized[i])
	}

	result := Result{
		Recurrences: DetectRecurrences(normalized),
	}

	for _, candidate := range normalized {
		exists, err := r.ledger.Lookup(ctx, userID, candidate.Amount, candidate.Merchant)
		if err != nil {
			return Result{}, err
		}
		if exists {
			result.Suppressed++
			continue
		}
		result.ToInsert = append(result.ToInsert, candidate)
	}

	r.logger.Info("Reconciled candidate batch",
		logging.Field{Key: "user", Value: userID},
		logging.Field{Key: "batch", Value: len(batch)},
		logging.Field{Key: "suppressed", Value: result.Suppressed},
		logging.Field{Key: "recurring_groups", Value: len(result.Recurrences)})
	return result, nil
}

// DetectRecurrences groups candidates by (merchant, amount) and flags every
// group with two or more members as recurring. The frequency label is the
// coarse "monthly"; interval inference is deliberately not performed. Groups
// are returned in first-occurrence order.
func DetectRecurrences(batch []models.TransactionCandidate) []models.RecurrenceGroup {
	counts := make(map[string]int)
	firsts := make(map[string]models.TransactionCandidate)
	var order []string

	for _, candidate := range batch {
		key := candidate.RecurrenceKey()
		if counts[key] == 0 {
			firsts[key] = candidate
			order = append(order, key)
		}
		counts[key]++
	}

	var groups []models.RecurrenceGroup
	for _, key := range order {
		if counts[key] < 2 {
			continue
		}
		first := firsts[key]
		groups = append(groups, models.RecurrenceGroup{
			Merchant:  first.Merchant,
			Amount:    first.Amount,
			Count:     counts[key],
			Frequency: "monthly",
		})
	}
	return groups
}

// normalizeDate fills OccurredAt for candidates carrying only a raw date,
// using the fixed day-first convention. Unparseable dates keep the raw text
// and a zero time.
func normalizeDate(candidate *models.TransactionCandidate) {
	if !candidate.OccurredAt.IsZero() || candidate.RawDate == "" {
		return
	}
	for _, layout := range statementDateLayouts {
		if t, err := time.Parse(layout, candidate.RawDate); err == nil {
			candidate.OccurredAt = t
			return
		}
	}
}
