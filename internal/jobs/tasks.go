package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskSyncAll runs the fee, rental and member profit synchronization.
	TaskSyncAll = "accounting:sync_all"
	// TaskMarkOverdue flags unpaid receivables and payables past their due date.
	TaskMarkOverdue = "accounting:mark_overdue"
)

// SyncAllPayload identifies who asked for the run. Scheduled runs use domain.SystemActor.
type SyncAllPayload struct {
	ActorID     string    `json:"actor_id"`
	RequestedAt time.Time `json:"requested_at"`
}

// MarkOverduePayload carries the reference date; a zero AsOf means "when the task runs".
type MarkOverduePayload struct {
	ActorID string    `json:"actor_id"`
	AsOf    time.Time `json:"as_of,omitempty"`
}

// NewSyncAllTask constructs an Asynq task for a full synchronization run.
func NewSyncAllTask(actorID string) (*asynq.Task, error) {
	if actorID == "" {
		actorID = domain.SystemActor
	}
	data, err := json.Marshal(SyncAllPayload{ActorID: actorID, RequestedAt: time.Now().UTC()})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSyncAll, data), nil
}

// NewMarkOverdueTask constructs an Asynq task for the overdue sweep.
func NewMarkOverdueTask(actorID string, asOf time.Time) (*asynq.Task, error) {
	if actorID == "" {
		actorID = domain.SystemActor
	}
	data, err := json.Marshal(MarkOverduePayload{ActorID: actorID, AsOf: asOf})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskMarkOverdue, data), nil
}
