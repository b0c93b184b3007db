package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
	portsrepo "github.com/marmotkit/asset-mgmt-accounting/internal/core/ports/repositories"
	"github.com/marmotkit/asset-mgmt-accounting/internal/utils/mapping"
)

type PgxReceivableRepository struct {
	t ledgerTable
}

func newPgxReceivableRepository(pool *pgxpool.Pool) portsrepo.ReceivableRepositoryFacade {
	return &PgxReceivableRepository{t: ledgerTable{
		pool:      pool,
		table:     "receivables",
		idCol:     "receivable_id",
		partyID:   "customer_id",
		partyName: "customer_name",
	}}
}

var _ portsrepo.ReceivableRepositoryFacade = (*PgxReceivableRepository)(nil)

func (r *PgxReceivableRepository) FindReceivableByID(ctx context.Context, receivableID string) (*domain.Receivable, error) {
	m, err := r.t.findOne(ctx, "receivable_id = $1", receivableID)
	if err != nil {
		return nil, notFoundOr(err, "receivable", receivableID)
	}
	rec := mapping.ToDomainReceivable(m)
	return &rec, nil
}

func (r *PgxReceivableRepository) FindReceivableBySource(ctx context.Context, source domain.SourceLink) (*domain.Receivable, error) {
	m, err := r.t.findOne(ctx, "source_domain = $1 AND source_id = $2", string(source.Domain), source.ID)
	if err != nil {
		return nil, notFoundOr(err, "receivable for source", fmt.Sprintf("%s/%s", source.Domain, source.ID))
	}
	rec := mapping.ToDomainReceivable(m)
	return &rec, nil
}

func (r *PgxReceivableRepository) ListReceivables(ctx context.Context, filter domain.LedgerFilter) ([]domain.Receivable, error) {
	modelRecs, err := r.t.list(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Receivable, len(modelRecs))
	for i, m := range modelRecs {
		out[i] = mapping.ToDomainReceivable(m)
	}
	return out, nil
}

func (r *PgxReceivableRepository) SaveReceivable(ctx context.Context, receivable domain.Receivable) error {
	return r.t.insert(ctx, mapping.ToModelReceivable(receivable))
}

func (r *PgxReceivableRepository) UpdateReceivable(ctx context.Context, receivable domain.Receivable) error {
	return r.t.update(ctx, mapping.ToModelReceivable(receivable))
}

func (r *PgxReceivableRepository) DeleteReceivable(ctx context.Context, receivableID string) error {
	return r.t.delete(ctx, receivableID)
}
