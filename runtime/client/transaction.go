// Package client also provides transaction support: running a sequence of
// generated statements atomically, with savepoint-backed nesting.
package client

import (
	"context"
	"database/sql"
	"fmt"
)

// IsolationLevel is a transaction isolation level.
type IsolationLevel int

const (
	ReadUncommitted IsolationLevel = iota
	ReadCommitted
	RepeatableRead
	Serializable
)

func (level IsolationLevel) toSQLIsolationLevel() sql.IsolationLevel {
	switch level {
	case ReadUncommitted:
		return sql.LevelReadUncommitted
	case ReadCommitted:
		return sql.LevelReadCommitted
	case RepeatableRead:
		return sql.LevelRepeatableRead
	case Serializable:
		return sql.LevelSerializable
	default:
		return sql.LevelReadCommitted
	}
}

// NewTxOptions builds sql.TxOptions from an isolation level.
func NewTxOptions(isolation IsolationLevel, readOnly bool) *sql.TxOptions {
	return &sql.TxOptions{
		Isolation: isolation.toSQLIsolationLevel(),
		ReadOnly:  readOnly,
	}
}

// Tx wraps *sql.Tx with generated-statement execution and savepoint nesting.
type Tx struct {
	*sql.Tx
	depth int
}

// Query runs generated SELECT text within the transaction.
func (tx *Tx) Query(ctx context.Context, sqlText string) ([]map[string]interface{}, error) {
	rows, err := tx.QueryContext(ctx, sqlText)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return RowsToMaps(rows)
}

// Exec runs generated INSERT/UPDATE/DELETE text within the transaction.
func (tx *Tx) Exec(ctx context.Context, sqlText string) (sql.Result, error) {
	return tx.ExecContext(ctx, sqlText)
}

// TransactionFunc runs within a transaction.
type TransactionFunc func(tx *Tx) error

// Transaction executes fn within a transaction, committing on success and
// rolling back on error or panic.
func (c *Client) Transaction(ctx context.Context, fn TransactionFunc) error {
	return c.TransactionWithOptions(ctx, nil, fn)
}

// TransactionWithOptions executes fn within a transaction opened with opts.
func (c *Client) TransactionWithOptions(ctx context.Context, opts *sql.TxOptions, fn TransactionFunc) error {
	sqlTx, err := c.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	tx := &Tx{Tx: sqlTx}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// NestedTransaction runs fn within a savepoint nested inside tx, rolling
// back to the savepoint rather than the whole transaction on error.
func (tx *Tx) NestedTransaction(ctx context.Context, fn TransactionFunc) error {
	tx.depth++
	savepoint := fmt.Sprintf("sp_%d", tx.depth)

	if _, err := tx.ExecContext(ctx, "SAVEPOINT "+savepoint); err != nil {
		tx.depth--
		return fmt.Errorf("failed to create savepoint: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_, _ = tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+savepoint)
			tx.depth--
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if _, rbErr := tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+savepoint); rbErr != nil {
			tx.depth--
			return fmt.Errorf("nested transaction error: %v, rollback error: %w", err, rbErr)
		}
		tx.depth--
		return err
	}

	if _, err := tx.ExecContext(ctx, "RELEASE SAVEPOINT "+savepoint); err != nil {
		tx.depth--
		return fmt.Errorf("failed to release savepoint: %w", err)
	}
	tx.depth--
	return nil
}

// TransactionWithIsolation runs fn within a transaction at the given
// isolation level.
func (c *Client) TransactionWithIsolation(ctx context.Context, isolation IsolationLevel, fn TransactionFunc) error {
	return c.TransactionWithOptions(ctx, NewTxOptions(isolation, false), fn)
}

// ReadOnlyTransaction runs fn within a read-only transaction.
func (c *Client) ReadOnlyTransaction(ctx context.Context, fn TransactionFunc) error {
	return c.TransactionWithOptions(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

// ReadOnlyTransactionWithIsolation runs fn within a read-only transaction at
// the given isolation level.
func (c *Client) ReadOnlyTransactionWithIsolation(ctx context.Context, isolation IsolationLevel, fn TransactionFunc) error {
	return c.TransactionWithOptions(ctx, NewTxOptions(isolation, true), fn)
}
