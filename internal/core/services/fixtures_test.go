package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/marmotkit/asset-mgmt-accounting/internal/adapters/memory"
	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Default chart of accounts seeded by memory.NewStore.
const (
	cashAccountID      = "00000000-0000-0000-0000-000000001101"
	bankAccountID      = "00000000-0000-0000-0000-000000001102"
	capitalAccountID   = "00000000-0000-0000-0000-000000003101"
	feeIncomeID        = "00000000-0000-0000-0000-000000004101"
	rentalIncomeID     = "00000000-0000-0000-0000-000000004102"
	profitExpenseID    = "00000000-0000-0000-0000-000000005101"
	operatingExpenseID = "00000000-0000-0000-0000-000000005102"
	feeCategoryID      = "00000000-0000-0000-0000-00000000c001"
	rentCategoryID     = "00000000-0000-0000-0000-00000000c002"
	profitCategoryID   = "00000000-0000-0000-0000-00000000c101"
)

var fixedNow = time.Date(2025, 7, 15, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func strPtr(s string) *string { return &s }

// seedEntry writes a journal entry straight into the store, bypassing period checks in services.
func seedEntry(store *memory.Store, id string, date time.Time, debit, credit, amount string, category *string) {
	err := store.SaveJournalEntry(context.Background(), domain.JournalEntry{
		EntryID:         id,
		EntryDate:       date,
		JournalNumber:   "SEED-" + id,
		Description:     "seed " + id,
		DebitAccountID:  debit,
		CreditAccountID: credit,
		Amount:          dec(amount),
		CategoryID:      category,
	})
	if err != nil {
		panic(err)
	}
}

type recordingObserver struct {
	mu    sync.Mutex
	items map[string]int
	runs  map[string]int
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{items: map[string]int{}, runs: map[string]int{}}
}

func (o *recordingObserver) ObserveSyncItem(domain, outcome string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.items[domain+"/"+outcome]++
}

func (o *recordingObserver) ObserveSyncRun(domain string, failed bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	key := domain + "/ok"
	if failed {
		key = domain + "/failed"
	}
	o.runs[key]++
}
