package postgres

import (
	"context"
	"fmt"

	"github.com/Bhanuvikas1/job-tracker/internal/adapter/postgres/sqlcgen"
	"github.com/Bhanuvikas1/job-tracker/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TxManager implements domain.Transactor on a pgx pool.
type TxManager struct {
	pool *pgxpool.Pool
	q    *sqlcgen.Queries
}

var _ domain.Transactor = (*TxManager)(nil)

func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return &TxManager{pool: pool, q: sqlcgen.New(pool)}
}

func (m *TxManager) InTx(ctx context.Context, fn func(ctx context.Context, tx domain.Tx) error) error {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(ctx, txScope{q: m.q.WithTx(tx)}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type txScope struct {
	q *sqlcgen.Queries
}

func (s txScope) Applications() domain.ApplicationStore { return &ApplicationRepo{q: s.q} }
func (s txScope) History() domain.HistoryLedger         { return &HistoryRepo{q: s.q} }
func (s txScope) Users() domain.UserRepository          { return &UserRepo{q: s.q} }
