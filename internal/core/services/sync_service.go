package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/marmotkit/asset-mgmt-accounting/internal/apperrors"
	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
	portsrepo "github.com/marmotkit/asset-mgmt-accounting/internal/core/ports/repositories"
	portssvc "github.com/marmotkit/asset-mgmt-accounting/internal/core/ports/services"
	"github.com/marmotkit/asset-mgmt-accounting/internal/core/ports/upstream"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Description markers used to recognize records created before source links existed.
const (
	feeMarker    = "會費"
	rentalMarker = "租金"
	profitMarker = "分潤"
)

type syncService struct {
	BaseService
	receivableRepo portsrepo.ReceivableRepositoryFacade
	payableRepo    portsrepo.PayableRepositoryFacade
	journalRepo    portsrepo.JournalEntryReader
	sources        upstream.Sources
	locker         SyncLocker
	lockTTL        time.Duration
	observer       SyncObserver
	defaultDueDays int
}

// NewSyncService creates the service that reconciles upstream modules into the ledger.
func NewSyncService(
	receivableRepo portsrepo.ReceivableRepositoryFacade,
	payableRepo portsrepo.PayableRepositoryFacade,
	journalRepo portsrepo.JournalEntryReader,
	sources upstream.Sources,
	opts ...ServiceOption,
) portssvc.SyncSvc {
	o := applyOptions(opts)
	svc := &syncService{
		BaseService:    BaseService{now: o.now},
		receivableRepo: receivableRepo,
		payableRepo:    payableRepo,
		journalRepo:    journalRepo,
		sources:        sources,
		locker:         o.locker,
		lockTTL:        o.lockTTL,
		observer:       o.observer,
		defaultDueDays: o.defaultDueDays,
	}
	if svc.locker == nil {
		svc.locker = newProcessLocker()
	}
	return svc
}

var _ portssvc.SyncSvc = (*syncService)(nil)

func (s *syncService) SyncFeeReceivables(ctx context.Context, actorID string) (*domain.ReceivableSyncResult, error) {
	release, err := s.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer release()
	return s.syncFees(ctx, actorID)
}

func (s *syncService) SyncRentalReceivables(ctx context.Context, actorID string) (*domain.ReceivableSyncResult, error) {
	release, err := s.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer release()
	return s.syncRentals(ctx, actorID)
}

func (s *syncService) SyncMemberProfitPayables(ctx context.Context, actorID string) (*domain.PayableSyncResult, error) {
	release, err := s.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer release()
	return s.syncProfits(ctx, actorID)
}

// SyncAllAccountingData runs fees, rentals and profits under a single lock hold.
func (s *syncService) SyncAllAccountingData(ctx context.Context, actorID string) (*domain.SyncResult, error) {
	release, err := s.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	result := &domain.SyncResult{
		FeeReceivables:    []domain.Receivable{},
		RentalReceivables: []domain.Receivable{},
		ProfitPayables:    []domain.Payable{},
		StartedAt:         s.Now(),
	}
	finish := func() *domain.SyncResult {
		result.FinishedAt = s.Now()
		return result
	}

	fees, err := s.syncFees(ctx, actorID)
	if fees != nil {
		result.FeeReceivables = fees.Created
		result.Reports = append(result.Reports, fees.Report)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return finish(), ctxErr
	}
	if err != nil {
		s.LogError(ctx, err, "Fee sync failed", slog.String("domain", string(domain.SourceFee)))
	}

	rentals, err := s.syncRentals(ctx, actorID)
	if rentals != nil {
		result.RentalReceivables = rentals.Created
		result.Reports = append(result.Reports, rentals.Report)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return finish(), ctxErr
	}
	if err != nil {
		s.LogError(ctx, err, "Rental sync failed", slog.String("domain", string(domain.SourceRental)))
	}

	profits, err := s.syncProfits(ctx, actorID)
	if profits != nil {
		result.ProfitPayables = profits.Created
		result.Reports = append(result.Reports, profits.Report)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return finish(), ctxErr
	}
	if err != nil {
		s.LogError(ctx, err, "Member profit sync failed", slog.String("domain", string(domain.SourceMemberProfit)))
	}

	s.LogInfo(ctx, "Accounting sync finished",
		slog.Int("fee_receivables", len(result.FeeReceivables)),
		slog.Int("rental_receivables", len(result.RentalReceivables)),
		slog.Int("profit_payables", len(result.ProfitPayables)))
	return finish(), nil
}

// SyncBeforeMonthlyClosing syncs everything and summarizes the month. A failed sync is
// reported in the summary instead of failing the call.
func (s *syncService) SyncBeforeMonthlyClosing(ctx context.Context, year, month int, actorID string) (*domain.ClosingSyncSummary, error) {
	period, err := domain.NewPeriod(year, month)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	summary := &domain.ClosingSyncSummary{
		Year:             year,
		Month:            month,
		TotalReceivables: decimal.Zero,
		TotalPayables:    decimal.Zero,
	}

	syncResult, err := s.SyncAllAccountingData(ctx, actorID)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		s.LogWarn(ctx, "Pre-closing sync did not run", slog.String("period", period.String()), slog.String("error", err.Error()))
		summary.SyncError = err.Error()
	}
	summary.Sync = syncResult

	from, to := period.Start(), period.End()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		entries, err := s.journalRepo.ListJournalEntries(gctx, domain.JournalEntryFilter{From: &from, To: &to})
		if err != nil {
			return fmt.Errorf("failed to count journal entries: %w", err)
		}
		summary.JournalCount = len(entries)
		return nil
	})
	g.Go(func() error {
		receivables, err := s.receivableRepo.ListReceivables(gctx, domain.LedgerFilter{DueFrom: &from, DueTo: &to})
		if err != nil {
			return fmt.Errorf("failed to list receivables: %w", err)
		}
		summary.ReceivablesCount = len(receivables)
		for _, r := range receivables {
			summary.TotalReceivables = summary.TotalReceivables.Add(r.Amount)
		}
		return nil
	})
	g.Go(func() error {
		payables, err := s.payableRepo.ListPayables(gctx, domain.LedgerFilter{DueFrom: &from, DueTo: &to})
		if err != nil {
			return fmt.Errorf("failed to list payables: %w", err)
		}
		summary.PayablesCount = len(payables)
		for _, p := range payables {
			summary.TotalPayables = summary.TotalPayables.Add(p.Amount)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to summarize period", slog.String("period", period.String()))
		return nil, err
	}
	return summary, nil
}

func (s *syncService) syncFees(ctx context.Context, actorID string) (*domain.ReceivableSyncResult, error) {
	fees, err := s.sources.ListPendingFees(ctx)
	if err != nil {
		return s.abortReceivables(domain.SourceFee, fmt.Errorf("failed to fetch pending fees: %w", err))
	}

	now := s.Now()
	candidates := make([]domain.Receivable, 0, len(fees))
	for _, fee := range fees {
		candidates = append(candidates, domain.Receivable{
			CustomerID:    fee.MemberID,
			CustomerName:  fee.MemberName,
			InvoiceNumber: fmt.Sprintf("FEE-%s-%d", fee.MemberNo, now.Year()),
			Amount:        fee.Amount,
			DueDate:       s.dueDate(fee.DueDate, now),
			Description:   fmt.Sprintf("%s - %s (%s)", feeMarker, fee.MemberName, fee.MemberType),
			Source:        &domain.SourceLink{Domain: domain.SourceFee, ID: fee.FeeID},
		})
	}
	return s.reconcileReceivables(ctx, domain.SourceFee, feeMarker, candidates, actorID)
}

func (s *syncService) syncRentals(ctx context.Context, actorID string) (*domain.ReceivableSyncResult, error) {
	rentals, err := s.sources.ListPendingRentals(ctx)
	if err != nil {
		return s.abortReceivables(domain.SourceRental, fmt.Errorf("failed to fetch pending rental payments: %w", err))
	}

	now := s.Now()
	candidates := make([]domain.Receivable, 0, len(rentals))
	for _, rental := range rentals {
		candidates = append(candidates, domain.Receivable{
			CustomerID:    rental.TenantID,
			CustomerName:  rental.TenantName,
			InvoiceNumber: fmt.Sprintf("RENTAL-%s-%d-%d", rental.InvestmentID, rental.Year, rental.Month),
			Amount:        rental.Amount,
			DueDate:       s.dueDate(rental.DueDate, now),
			Description:   fmt.Sprintf("%s - %s %d/%d", rentalMarker, rental.InvestmentName, rental.Year, rental.Month),
			Source:        &domain.SourceLink{Domain: domain.SourceRental, ID: rental.PaymentID},
		})
	}
	return s.reconcileReceivables(ctx, domain.SourceRental, rentalMarker, candidates, actorID)
}

func (s *syncService) syncProfits(ctx context.Context, actorID string) (*domain.PayableSyncResult, error) {
	profits, err := s.sources.ListPendingProfits(ctx)
	if err != nil {
		err = fmt.Errorf("failed to fetch pending member profits: %w", err)
		s.observeRun(domain.SourceMemberProfit, true)
		return &domain.PayableSyncResult{
			Created: []domain.Payable{},
			Report:  domain.SyncReport{Domain: domain.SourceMemberProfit, Items: []domain.SyncItemResult{}, Error: err.Error()},
		}, err
	}

	now := s.Now()
	candidates := make([]domain.Payable, 0, len(profits))
	for _, profit := range profits {
		candidates = append(candidates, domain.Payable{
			SupplierID:    profit.MemberID,
			SupplierName:  profit.MemberName,
			InvoiceNumber: fmt.Sprintf("PROFIT-%s-%d-%d", profit.InvestmentID, profit.Year, profit.Month),
			Amount:        profit.Amount,
			DueDate:       s.dueDate(profit.DueDate, now),
			Description:   fmt.Sprintf("%s - %s (%s %d/%d)", profitMarker, profit.MemberName, profit.InvestmentName, profit.Year, profit.Month),
			Source:        &domain.SourceLink{Domain: domain.SourceMemberProfit, ID: profit.ProfitID},
		})
	}
	return s.reconcilePayables(ctx, candidates, actorID)
}

func (s *syncService) abortReceivables(source domain.SourceDomain, err error) (*domain.ReceivableSyncResult, error) {
	s.observeRun(source, true)
	return &domain.ReceivableSyncResult{
		Created: []domain.Receivable{},
		Report:  domain.SyncReport{Domain: source, Items: []domain.SyncItemResult{}, Error: err.Error()},
	}, err
}

func (s *syncService) reconcileReceivables(ctx context.Context, source domain.SourceDomain, marker string, candidates []domain.Receivable, actorID string) (*domain.ReceivableSyncResult, error) {
	result := &domain.ReceivableSyncResult{
		Created: []domain.Receivable{},
		Report:  domain.SyncReport{Domain: source, Items: make([]domain.SyncItemResult, 0, len(candidates))},
	}

	for _, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			result.Report.Error = err.Error()
			s.observeRun(source, true)
			return result, err
		}

		item := domain.SyncItemResult{Domain: source, SourceID: candidate.Source.ID, InvoiceNumber: candidate.InvoiceNumber}

		existingID, err := s.findReceivableDuplicate(ctx, candidate, marker)
		switch {
		case err != nil:
			item.Outcome = domain.OutcomeFailed
			item.Reason = err.Error()
		case existingID != "":
			item.Outcome = domain.OutcomeSkippedDuplicate
			item.LedgerID = existingID
		default:
			created, err := s.createReceivable(ctx, candidate, actorID)
			switch {
			case errors.Is(err, apperrors.ErrDuplicate):
				item.Outcome = domain.OutcomeSkippedDuplicate
				item.Reason = "source already linked"
			case err != nil:
				item.Outcome = domain.OutcomeFailed
				item.Reason = err.Error()
			default:
				item.Outcome = domain.OutcomeCreated
				item.LedgerID = created.ReceivableID
				result.Created = append(result.Created, *created)
			}
		}

		if item.Outcome == domain.OutcomeFailed {
			s.LogWarn(ctx, "Failed to sync record",
				slog.String("domain", string(source)),
				slog.String("source_id", item.SourceID),
				slog.String("reason", item.Reason))
		}
		s.observeItem(source, item.Outcome)
		result.Report.Items = append(result.Report.Items, item)
	}

	s.observeRun(source, false)
	s.LogInfo(ctx, "Receivable sync pass finished",
		slog.String("domain", string(source)),
		slog.Int("created", result.Report.Count(domain.OutcomeCreated)),
		slog.Int("skipped", result.Report.Count(domain.OutcomeSkippedDuplicate)),
		slog.Int("failed", result.Report.Count(domain.OutcomeFailed)))
	return result, nil
}

// findReceivableDuplicate returns the ID of an existing receivable that already represents
// the candidate, or "" when none does.
func (s *syncService) findReceivableDuplicate(ctx context.Context, candidate domain.Receivable, marker string) (string, error) {
	linked, err := s.receivableRepo.FindReceivableBySource(ctx, *candidate.Source)
	if err == nil {
		return linked.ReceivableID, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return "", fmt.Errorf("source lookup failed: %w", err)
	}

	existing, err := s.receivableRepo.ListReceivables(ctx, legacyCandidates(candidate.Amount, marker))
	if err != nil {
		return "", fmt.Errorf("duplicate lookup failed: %w", err)
	}
	for _, r := range existing {
		if r.Source == nil && legacyMatch(r.CustomerName, r.Amount, r.Description, candidate.CustomerName, candidate.Amount, marker) {
			return r.ReceivableID, nil
		}
	}
	return "", nil
}

func (s *syncService) createReceivable(ctx context.Context, candidate domain.Receivable, actorID string) (*domain.Receivable, error) {
	now := s.Now()
	candidate.ReceivableID = uuid.NewString()
	candidate.PaymentAmount = decimal.Zero
	candidate.Status = domain.StatusPending
	candidate.AuditFields = domain.AuditFields{CreatedAt: now, CreatedBy: actorID, LastUpdatedAt: now, LastUpdatedBy: actorID}
	if !candidate.Amount.IsPositive() {
		return nil, ErrAmountNotPositive
	}
	if err := s.receivableRepo.SaveReceivable(ctx, candidate); err != nil {
		return nil, err
	}
	return &candidate, nil
}

func (s *syncService) reconcilePayables(ctx context.Context, candidates []domain.Payable, actorID string) (*domain.PayableSyncResult, error) {
	source := domain.SourceMemberProfit
	result := &domain.PayableSyncResult{
		Created: []domain.Payable{},
		Report:  domain.SyncReport{Domain: source, Items: make([]domain.SyncItemResult, 0, len(candidates))},
	}

	for _, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			result.Report.Error = err.Error()
			s.observeRun(source, true)
			return result, err
		}

		item := domain.SyncItemResult{Domain: source, SourceID: candidate.Source.ID, InvoiceNumber: candidate.InvoiceNumber}

		existingID, err := s.findPayableDuplicate(ctx, candidate)
		switch {
		case err != nil:
			item.Outcome = domain.OutcomeFailed
			item.Reason = err.Error()
		case existingID != "":
			item.Outcome = domain.OutcomeSkippedDuplicate
			item.LedgerID = existingID
		default:
			created, err := s.createPayable(ctx, candidate, actorID)
			switch {
			case errors.Is(err, apperrors.ErrDuplicate):
				item.Outcome = domain.OutcomeSkippedDuplicate
				item.Reason = "source already linked"
			case err != nil:
				item.Outcome = domain.OutcomeFailed
				item.Reason = err.Error()
			default:
				item.Outcome = domain.OutcomeCreated
				item.LedgerID = created.PayableID
				result.Created = append(result.Created, *created)
			}
		}

		if item.Outcome == domain.OutcomeFailed {
			s.LogWarn(ctx, "Failed to sync record",
				slog.String("domain", string(source)),
				slog.String("source_id", item.SourceID),
				slog.String("reason", item.Reason))
		}
		s.observeItem(source, item.Outcome)
		result.Report.Items = append(result.Report.Items, item)
	}

	s.observeRun(source, false)
	s.LogInfo(ctx, "Payable sync pass finished",
		slog.String("domain", string(source)),
		slog.Int("created", result.Report.Count(domain.OutcomeCreated)),
		slog.Int("skipped", result.Report.Count(domain.OutcomeSkippedDuplicate)),
		slog.Int("failed", result.Report.Count(domain.OutcomeFailed)))
	return result, nil
}

func (s *syncService) findPayableDuplicate(ctx context.Context, candidate domain.Payable) (string, error) {
	linked, err := s.payableRepo.FindPayableBySource(ctx, *candidate.Source)
	if err == nil {
		return linked.PayableID, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return "", fmt.Errorf("source lookup failed: %w", err)
	}

	existing, err := s.payableRepo.ListPayables(ctx, legacyCandidates(candidate.Amount, profitMarker))
	if err != nil {
		return "", fmt.Errorf("duplicate lookup failed: %w", err)
	}
	for _, p := range existing {
		if p.Source == nil && legacyMatch(p.SupplierName, p.Amount, p.Description, candidate.SupplierName, candidate.Amount, profitMarker) {
			return p.PayableID, nil
		}
	}
	return "", nil
}

func (s *syncService) createPayable(ctx context.Context, candidate domain.Payable, actorID string) (*domain.Payable, error) {
	now := s.Now()
	candidate.PayableID = uuid.NewString()
	candidate.PaymentAmount = decimal.Zero
	candidate.Status = domain.StatusPending
	candidate.AuditFields = domain.AuditFields{CreatedAt: now, CreatedBy: actorID, LastUpdatedAt: now, LastUpdatedBy: actorID}
	if !candidate.Amount.IsPositive() {
		return nil, ErrAmountNotPositive
	}
	if err := s.payableRepo.SavePayable(ctx, candidate); err != nil {
		return nil, err
	}
	return &candidate, nil
}

func (s *syncService) lock(ctx context.Context) (func(), error) {
	release, err := s.locker.Acquire(ctx, SyncLockKey, s.lockTTL)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, ErrSyncInProgress
		}
		return nil, fmt.Errorf("failed to acquire sync lock: %w", err)
	}
	return func() {
		// The caller's context may already be cancelled; release on a fresh one.
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := release(releaseCtx); err != nil {
			s.LogWarn(ctx, "Failed to release sync lock", slog.String("error", err.Error()))
		}
	}, nil
}

func (s *syncService) dueDate(upstreamDue *time.Time, now time.Time) time.Time {
	if upstreamDue != nil && !upstreamDue.IsZero() {
		return truncateToDate(upstreamDue.UTC())
	}
	return truncateToDate(now.AddDate(0, 0, s.defaultDueDays))
}

func (s *syncService) observeItem(source domain.SourceDomain, outcome domain.SyncOutcome) {
	if s.observer != nil {
		s.observer.ObserveSyncItem(string(source), string(outcome))
	}
}

func (s *syncService) observeRun(source domain.SourceDomain, failed bool) {
	if s.observer != nil {
		s.observer.ObserveSyncRun(string(source), failed)
	}
}

// legacyCandidates narrows the duplicate scan to unlinked pending records of the same
// amount mentioning marker. Names are compared afterwards by legacyMatch, since storage
// only folds ASCII case.
func legacyCandidates(amount decimal.Decimal, marker string) domain.LedgerFilter {
	return domain.LedgerFilter{
		Search:       marker,
		Statuses:     []domain.LedgerStatus{domain.StatusPending},
		Amount:       &amount,
		UnlinkedOnly: true,
	}
}

// legacyMatch recognizes a record created by the old name/amount/description heuristic.
func legacyMatch(existingName string, existingAmount decimal.Decimal, existingDescription string, name string, amount decimal.Decimal, marker string) bool {
	return normalizeName(existingName) == normalizeName(name) &&
		existingAmount.Equal(amount) &&
		strings.Contains(existingDescription, marker)
}

// normalizeName folds case and width so "ＡＢＣ 公司" and "abc 公司" compare equal.
func normalizeName(name string) string {
	return cases.Fold().String(norm.NFKC.String(strings.TrimSpace(name)))
}
