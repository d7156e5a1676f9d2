package repository

import (
	"context"

	"github.com/jackc/pgx/v4"
)

// Tx is an opaque transaction handle threaded through repository calls.
// Repositories must accept nil (non-transactional path); the concrete type
// is infra-defined (pgx.Tx for Postgres).
type Tx interface{}

// NoTX is passed where a call never participates in a transaction.
var NoTX Tx

// TransactionManager executes fn inside one database transaction, handing
// the tx handle through so a state mutation and its timeline append commit
// or roll back together.
type TransactionManager interface {
	WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx Tx) error) error
}
