package reconcile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finsight/finsight/internal/logging"
	"finsight/finsight/internal/models"
)

func candidate(merchant string, amount int64) models.TransactionCandidate {
	return models.TransactionCandidate{
		Merchant:  merchant,
		Amount:    decimal.NewFromInt(amount),
		Direction: models.DirectionDebit,
	}
}

func TestReconcileSuppressesLedgerDuplicates(t *testing.T) {
	ledger := NewMemoryLedger()
	ledger.Add("u1", decimal.NewFromInt(500), "SWIGGY")

	r := NewReconciler(ledger, logging.NewMockLogger())
	result, err := r.Reconcile(context.Background(), "u1", []models.TransactionCandidate{
		candidate("SWIGGY", 500),
		candidate("UBER", 250),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Suppressed)
	require.Len(t, result.ToInsert, 1)
	assert.Equal(t, "UBER", result.ToInsert[0].Merchant)
}

func TestReconcileScopesDuplicatesPerUser(t *testing.T) {
	ledger := NewMemoryLedger()
	ledger.Add("u1", decimal.NewFromInt(500), "SWIGGY")

	r := NewReconciler(ledger, logging.NewMockLogger())
	result, err := r.Reconcile(context.Background(), "u2", []models.TransactionCandidate{
		candidate("SWIGGY", 500),
	})

	require.NoError(t, err)
	assert.Zero(t, result.Suppressed)
	assert.Len(t, result.ToInsert, 1)
}

func TestReconcileLedgerMatchIsCaseInsensitive(t *testing.T) {
	ledger := NewMemoryLedger()
	ledger.Add("u1", decimal.NewFromInt(500), "swiggy")

	r := NewReconciler(ledger, logging.NewMockLogger())
	result, err := r.Reconcile(context.Background(), "u1", []models.TransactionCandidate{
		candidate("SWIGGY", 500),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Suppressed)
}

func TestReconcileLedgerError(t *testing.T) {
	failing := LedgerFunc(func(ctx context.Context, userID string, amount decimal.Decimal, merchant string) (bool, error) {
		return false, errors.New("store unavailable")
	})

	r := NewReconciler(failing, logging.NewMockLogger())
	_, err := r.Reconcile(context.Background(), "u1", []models.TransactionCandidate{
		candidate("SWIGGY", 500),
	})
	assert.Error(t, err)
}

func TestReconcileNormalizesStatementDates(t *testing.T) {
	batch := []models.TransactionCandidate{
		{Merchant: "STORE", Amount: decimal.NewFromInt(100), RawDate: "15/01/2024"},
		{Merchant: "OTHER", Amount: decimal.NewFromInt(200), RawDate: "02-03-2024"},
		{Merchant: "BAD", Amount: decimal.NewFromInt(300), RawDate: "not a date"},
	}

	r := NewReconciler(NewMemoryLedger(), logging.NewMockLogger())
	result, err := r.Reconcile(context.Background(), "u1", batch)

	require.NoError(t, err)
	require.Len(t, result.ToInsert, 3)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), result.ToInsert[0].OccurredAt)
	assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), result.ToInsert[1].OccurredAt)
	assert.True(t, result.ToInsert[2].OccurredAt.IsZero(), "unparseable dates stay zero")
	assert.Equal(t, "not a date", result.ToInsert[2].RawDate, "raw text is kept")

	assert.True(t, batch[0].OccurredAt.IsZero(), "input batch is not mutated")
}

func TestDetectRecurrences(t *testing.T) {
	batch := []models.TransactionCandidate{
		candidate("NETFLIX", 199),
		candidate("UBER", 250),
		candidate("NETFLIX", 199),
		candidate("netflix", 199), // case variation joins the group
		candidate("NETFLIX", 499), // different amount, separate group of one
	}

	groups := DetectRecurrences(batch)
	require.Len(t, groups, 1)
	assert.Equal(t, "NETFLIX", groups[0].Merchant, "first occurrence labels the group")
	assert.Equal(t, 3, groups[0].Count)
	assert.Equal(t, "monthly", groups[0].Frequency)
	assert.True(t, groups[0].Amount.Equal(decimal.NewFromInt(199)))
}

func TestDetectRecurrencesFirstOccurrenceOrder(t *testing.T) {
	batch := []models.TransactionCandidate{
		candidate("SPOTIFY", 119),
		candidate("NETFLIX", 199),
		candidate("NETFLIX", 199),
		candidate("SPOTIFY", 119),
	}

	groups := DetectRecurrences(batch)
	require.Len(t, groups, 2)
	assert.Equal(t, "SPOTIFY", groups[0].Merchant)
	assert.Equal(t, "NETFLIX", groups[1].Merchant)
}

func TestDetectRecurrencesRunsBeforeSuppression(t *testing.T) {
	// Two NETFLIX candidates, one already in the ledger: suppression removes
	// it from ToInsert, but recurrence detection still sees both.
	ledger := NewMemoryLedger()
	ledger.Add("u1", decimal.NewFromInt(199), "NETFLIX")

	r := NewReconciler(ledger, logging.NewMockLogger())
	result, err := r.Reconcile(context.Background(), "u1", []models.TransactionCandidate{
		candidate("NETFLIX", 199),
		candidate("NETFLIX", 199),
	})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Suppressed)
	require.Len(t, result.Recurrences, 1)
	assert.Equal(t, 2, result.Recurrences[0].Count)
}

func TestReconcileEmptyBatch(t *testing.T) {
	r := NewReconciler(NewMemoryLedger(), logging.NewMockLogger())
	result, err := r.Reconcile(context.Background(), "u1", nil)
	require.NoError(t, err)
	assert.Empty(t, result.ToInsert)
	assert.Empty(t, result.Recurrences)
}
