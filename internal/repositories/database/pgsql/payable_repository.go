package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
	portsrepo "github.com/marmotkit/asset-mgmt-accounting/internal/core/ports/repositories"
	"github.com/marmotkit/asset-mgmt-accounting/internal/utils/mapping"
)

type PgxPayableRepository struct {
	t ledgerTable
}

func newPgxPayableRepository(pool *pgxpool.Pool) portsrepo.PayableRepositoryFacade {
	return &PgxPayableRepository{t: ledgerTable{
		pool:      pool,
		table:     "payables",
		idCol:     "payable_id",
		partyID:   "supplier_id",
		partyName: "supplier_name",
	}}
}

var _ portsrepo.PayableRepositoryFacade = (*PgxPayableRepository)(nil)

func (r *PgxPayableRepository) FindPayableByID(ctx context.Context, payableID string) (*domain.Payable, error) {
	m, err := r.t.findOne(ctx, "payable_id = $1", payableID)
	if err != nil {
		return nil, notFoundOr(err, "payable", payableID)
	}
	rec := mapping.ToDomainPayable(m)
	return &rec, nil
}

func (r *PgxPayableRepository) FindPayableBySource(ctx context.Context, source domain.SourceLink) (*domain.Payable, error) {
	m, err := r.t.findOne(ctx, "source_domain = $1 AND source_id = $2", string(source.Domain), source.ID)
	if err != nil {
		return nil, notFoundOr(err, "payable for source", fmt.Sprintf("%s/%s", source.Domain, source.ID))
	}
	rec := mapping.ToDomainPayable(m)
	return &rec, nil
}

func (r *PgxPayableRepository) ListPayables(ctx context.Context, filter domain.LedgerFilter) ([]domain.Payable, error) {
	modelRecs, err := r.t.list(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Payable, len(modelRecs))
	for i, m := range modelRecs {
		out[i] = mapping.ToDomainPayable(m)
	}
	return out, nil
}

func (r *PgxPayableRepository) SavePayable(ctx context.Context, payable domain.Payable) error {
	return r.t.insert(ctx, mapping.ToModelPayable(payable))
}

func (r *PgxPayableRepository) UpdatePayable(ctx context.Context, payable domain.Payable) error {
	return r.t.update(ctx, mapping.ToModelPayable(payable))
}

func (r *PgxPayableRepository) DeletePayable(ctx context.Context, payableID string) error {
	return r.t.delete(ctx, payableID)
}
