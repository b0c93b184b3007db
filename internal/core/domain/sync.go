package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SyncOutcome is what happened to a single upstream record during reconciliation.
type SyncOutcome string

const (
	OutcomeCreated          SyncOutcome = "created"
	OutcomeSkippedDuplicate SyncOutcome = "skipped_duplicate"
	OutcomeFailed           SyncOutcome = "failed"
)

// SyncItemResult reports the outcome for one upstream record.
type SyncItemResult struct {
	Domain        SourceDomain `json:"domain"`
	SourceID      string       `json:"source_id"`
	InvoiceNumber string       `json:"invoice_number"`
	Outcome       SyncOutcome  `json:"outcome"`
	LedgerID      string       `json:"ledger_id,omitempty"` // created or matched record
	Reason        string       `json:"reason,omitempty"`
}

// SyncReport summarizes one domain's reconciliation pass.
type SyncReport struct {
	Domain SourceDomain     `json:"domain"`
	Items  []SyncItemResult `json:"items"`
	Error  string           `json:"error,omitempty"` // set when the pass aborted
}

// Count returns how many items ended with the given outcome.
func (r SyncReport) Count(outcome SyncOutcome) int {
	n := 0
	for _, item := range r.Items {
		if item.Outcome == outcome {
			n++
		}
	}
	return n
}

// ReceivableSyncResult is the result of a fee or rental pass.
type ReceivableSyncResult struct {
	Created []Receivable `json:"created"`
	Report  SyncReport   `json:"report"`
}

// PayableSyncResult is the result of a member profit pass.
type PayableSyncResult struct {
	Created []Payable  `json:"created"`
	Report  SyncReport `json:"report"`
}

// SyncResult is the combined result of a full synchronization run.
type SyncResult struct {
	FeeReceivables    []Receivable `json:"fee_receivables"`
	RentalReceivables []Receivable `json:"rental_receivables"`
	ProfitPayables    []Payable    `json:"profit_payables"`
	Reports           []SyncReport `json:"reports"`
	StartedAt         time.Time    `json:"started_at"`
	FinishedAt        time.Time    `json:"finished_at"`
}

// ClosingSyncSummary is the advisory summary produced before a monthly closing.
type ClosingSyncSummary struct {
	Year             int             `json:"year"`
	Month            int             `json:"month"`
	JournalCount     int             `json:"journal_count"`
	ReceivablesCount int             `json:"receivables_count"`
	PayablesCount    int             `json:"payables_count"`
	TotalReceivables decimal.Decimal `json:"total_receivables"`
	TotalPayables    decimal.Decimal `json:"total_payables"`
	Sync             *SyncResult     `json:"sync,omitempty"`
	SyncError        string          `json:"sync_error,omitempty"`
}
