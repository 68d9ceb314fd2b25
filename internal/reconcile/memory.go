package reconcile

import (
	"context"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

// MemoryLedger is an in-memory Ledger, used by tests and by CLI runs that
// have no persistent store attached.
type MemoryLedger struct {
	mu      sync.RWMutex
	entries map[string]bool
}

// NewMemoryLedger creates an empty MemoryLedger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{entries: make(map[string]bool)}
}

// Add records an existing transaction for the user.
func (l *MemoryLedger) Add(userID string, amount decimal.Decimal, merchant string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[ledgerKey(userID, amount, merchant)] = true
}

// Lookup reports whether the user already has a transaction with this amount
// and merchant.
func (l *MemoryLedger) Lookup(ctx context.Context, userID string, amount decimal.Decimal, merchant string) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.entries[ledgerKey(userID, amount, merchant)], nil
}

func ledgerKey(userID string, amount decimal.Decimal, merchant string) string {
	return userID + "|" + amount.String() + "|" + strings.ToLower(strings.TrimSpace(merchant))
}
