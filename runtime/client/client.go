// Package client is the runtime executor: it takes the SQL text the
// query/sqlgen package lowers a query to and runs it against Postgres. It
// never builds SQL itself, that stays the generator's job; it only opens
// the connection, runs the statement, and maps rows back.
package client

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq" // the one supported wire driver; other dialects are a non-goal
)

// Client is a thin wrapper over *sql.DB scoped to the PostgreSQL driver.
type Client struct {
	db *sql.DB
}

// NewClient opens a connection pool against dsn. The connection is not
// verified until Connect (or the first query) is called.
func NewClient(dsn string) (*Client, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	return NewClientFromDB(db), nil
}

// NewClientFromDB wraps an already-opened *sql.DB, for callers that manage
// their own pool configuration or want to inject a test double.
func NewClientFromDB(db *sql.DB) *Client {
	return &Client{db: db}
}

// Connect verifies the connection is live.
func (c *Client) Connect(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// Close closes the underlying connection pool.
func (c *Client) Close() error {
	return c.db.Close()
}

// DB returns the underlying *sql.DB for callers that need it directly.
func (c *Client) DB() *sql.DB {
	return c.db
}

// Query runs generated SELECT text and returns each row as a column-name to
// value map. Use this for ad hoc results that don't have a destination
// struct; ScanRows is the typed alternative.
func (c *Client) Query(ctx context.Context, sqlText string) ([]map[string]interface{}, error) {
	rows, err := c.db.QueryContext(ctx, sqlText)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return RowsToMaps(rows)
}

// Exec runs generated INSERT/UPDATE/DELETE text that has no RETURNING
// clause.
func (c *Client) Exec(ctx context.Context, sqlText string) (sql.Result, error) {
	return c.db.ExecContext(ctx, sqlText)
}

// QueryRow runs generated text expected to produce exactly one row, an
// INSERT ... RETURNING pk most commonly, and returns it as a map.
func (c *Client) QueryRow(ctx context.Context, sqlText string) (map[string]interface{}, error) {
	rows, err := c.db.QueryContext(ctx, sqlText)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	maps, err := RowsToMaps(rows)
	if err != nil {
		return nil, err
	}
	if len(maps) == 0 {
		return nil, sql.ErrNoRows
	}
	return maps[0], nil
}
