package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TxRunner runs a unit of work inside one database transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}
