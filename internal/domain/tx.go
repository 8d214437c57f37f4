package domain

import "context"

// Tx exposes the stores bound to one open transaction.
type Tx interface {
	Applications() ApplicationStore
	History() HistoryLedger
	Users() UserRepository
}

// Transactor runs fn in a single transaction. It commits when fn returns nil and
// rolls back every write otherwise; the error from fn is returned unchanged.
type Transactor interface {
	InTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}
