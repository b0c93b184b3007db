package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/marmotkit/asset-mgmt-accounting/internal/apperrors"
	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
	portssvc "github.com/marmotkit/asset-mgmt-accounting/internal/core/ports/services"
	"github.com/marmotkit/asset-mgmt-accounting/internal/platform/metrics"
)

// AccountingJobs holds the services the background tasks drive.
type AccountingJobs struct {
	Sync        portssvc.SyncSvc
	Receivables portssvc.ReceivableSvcFacade
	Payables    portssvc.PayableSvcFacade
	Logger      *slog.Logger
	Metrics     *metrics.Metrics
	clock       func() time.Time
}

// NewAccountingJobs wires dependencies for the accounting task handlers.
func NewAccountingJobs(services *portssvc.ServiceContainer, logger *slog.Logger, m *metrics.Metrics) *AccountingJobs {
	return &AccountingJobs{
		Sync:        services.Sync,
		Receivables: services.Receivable,
		Payables:    services.Payable,
		Logger:      logger,
		Metrics:     m,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handlers lists the task handlers to register on the worker.
func (j *AccountingJobs) Handlers() []TaskHandler {
	return []TaskHandler{
		{Type: TaskSyncAll, Handler: j.HandleSyncAll},
		{Type: TaskMarkOverdue, Handler: j.HandleMarkOverdue},
	}
}

// HandleSyncAll processes TaskSyncAll tasks. A run blocked by another holder of the
// sync lock is dropped instead of retried.
func (j *AccountingJobs) HandleSyncAll(ctx context.Context, t *asynq.Task) (err error) {
	if j == nil || j.Sync == nil {
		return errors.New("sync all: handler not configured")
	}
	var payload SyncAllPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.ActorID == "" {
		payload.ActorID = domain.SystemActor
	}

	started := time.Now()
	defer func() {
		err = j.Metrics.ObserveJob(TaskSyncAll, started, err)
	}()

	logger := j.logger().With(slog.String("task", TaskSyncAll), slog.String("actor_id", payload.ActorID))
	logger.Info("starting sync run")

	result, err := j.Sync.SyncAllAccountingData(ctx, payload.ActorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("sync run skipped", slog.String("error", err.Error()))
			return nil
		}
		logger.Error("sync run failed", slog.String("error", err.Error()))
		return err
	}

	for _, report := range result.Reports {
		attrs := []any{
			slog.String("domain", string(report.Domain)),
			slog.Int("created", report.Count(domain.OutcomeCreated)),
			slog.Int("skipped", report.Count(domain.OutcomeSkippedDuplicate)),
			slog.Int("failed", report.Count(domain.OutcomeFailed)),
		}
		if report.Error != "" {
			logger.Warn("sync pass aborted", append(attrs, slog.String("error", report.Error))...)
			continue
		}
		logger.Info("sync pass finished", attrs...)
	}
	logger.Info("completed sync run", slog.Duration("duration", result.FinishedAt.Sub(result.StartedAt)))
	return nil
}

// HandleMarkOverdue processes TaskMarkOverdue tasks for both ledgers.
func (j *AccountingJobs) HandleMarkOverdue(ctx context.Context, t *asynq.Task) (err error) {
	if j == nil || j.Receivables == nil || j.Payables == nil {
		return errors.New("mark overdue: handler not configured")
	}
	var payload MarkOverduePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.ActorID == "" {
		payload.ActorID = domain.SystemActor
	}
	asOf := payload.AsOf
	if asOf.IsZero() {
		asOf = j.now()
	}

	started := time.Now()
	defer func() {
		err = j.Metrics.ObserveJob(TaskMarkOverdue, started, err)
	}()

	logger := j.logger().With(slog.String("task", TaskMarkOverdue), slog.Time("as_of", asOf))

	receivables, err := j.Receivables.MarkOverdueReceivables(ctx, asOf, payload.ActorID)
	if err != nil {
		logger.Error("mark overdue receivables", slog.String("error", err.Error()))
		return err
	}
	payables, err := j.Payables.MarkOverduePayables(ctx, asOf, payload.ActorID)
	if err != nil {
		logger.Error("mark overdue payables", slog.String("error", err.Error()))
		return err
	}
	logger.Info("completed overdue sweep", slog.Int("receivables", receivables), slog.Int("payables", payables))
	return nil
}

func (j *AccountingJobs) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}

func (j *AccountingJobs) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}
