package postgres

import (
	"context"
	"fmt"
)

// withTx ejecuta fn dentro de una transacción abierta sobre q (pool o tx; en tx es un savepoint)
// y hace Commit o Rollback.
func withTx(ctx context.Context, q Querier, fn func(tx Querier) error) error {
	tx, err := q.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
