// Package client also provides middleware support for query hooks, wrapped
// around the generated SQL text Client.Query/Exec run rather than around
// any model/operation vocabulary, the generator has no notion of either.
package client

import (
	"context"
	"database/sql"
	"time"
)

// QueryEvent is one execution of generated SQL text.
type QueryEvent struct {
	SQL      string
	Duration time.Duration
	Error    error
	Start    time.Time
	End      time.Time
}

// Middleware intercepts a Client execution.
type Middleware func(ctx context.Context, event *QueryEvent, next func() error) error

// ClientWithMiddleware wraps Client with a middleware chain run around
// every Query/Exec call.
type ClientWithMiddleware struct {
	*Client
	middlewares []Middleware
}

// NewClientWithMiddleware wraps client with an empty middleware chain.
func NewClientWithMiddleware(c *Client) *ClientWithMiddleware {
	return &ClientWithMiddleware{Client: c}
}

// Use appends middleware to the chain. Middleware runs in registration
// order on the way in, reverse order on the way out.
func (c *ClientWithMiddleware) Use(middleware Middleware) {
	c.middlewares = append(c.middlewares, middleware)
}

func (c *ClientWithMiddleware) run(ctx context.Context, sqlText string, exec func() error) error {
	if len(c.middlewares) == 0 {
		return exec()
	}

	event := &QueryEvent{SQL: sqlText, Start: time.Now()}

	var next func() error
	index := 0
	next = func() error {
		if index >= len(c.middlewares) {
			err := exec()
			event.End = time.Now()
			event.Duration = event.End.Sub(event.Start)
			event.Error = err
			return err
		}
		mw := c.middlewares[index]
		index++
		return mw(ctx, event, next)
	}
	return next()
}

// Query runs sqlText through the middleware chain, then Client.Query.
func (c *ClientWithMiddleware) Query(ctx context.Context, sqlText string) ([]map[string]interface{}, error) {
	var result []map[string]interface{}
	err := c.run(ctx, sqlText, func() error {
		var innerErr error
		result, innerErr = c.Client.Query(ctx, sqlText)
		return innerErr
	})
	return result, err
}

// Exec runs sqlText through the middleware chain, then Client.Exec.
func (c *ClientWithMiddleware) Exec(ctx context.Context, sqlText string) (sql.Result, error) {
	var result sql.Result
	err := c.run(ctx, sqlText, func() error {
		var innerErr error
		result, innerErr = c.Client.Exec(ctx, sqlText)
		return innerErr
	})
	return result, err
}

// LoggingMiddleware logs every execution through logger.
func LoggingMiddleware(logger func(format string, args ...interface{})) Middleware {
	return func(ctx context.Context, event *QueryEvent, next func() error) error {
		logger("executing: %s", event.SQL)
		err := next()
		if err != nil {
			logger("query failed: %v", err)
		} else {
			logger("query completed in %v", event.Duration)
		}
		return err
	}
}

// TimingMiddleware reports every execution's duration to onTiming.
func TimingMiddleware(onTiming func(sqlText string, duration time.Duration)) Middleware {
	return func(ctx context.Context, event *QueryEvent, next func() error) error {
		err := next()
		if onTiming != nil {
			onTiming(event.SQL, event.Duration)
		}
		return err
	}
}

// ErrorMiddleware reports every execution error to onError.
func ErrorMiddleware(onError func(sqlText string, err error)) Middleware {
	return func(ctx context.Context, event *QueryEvent, next func() error) error {
		err := next()
		if err != nil && onError != nil {
			onError(event.SQL, err)
		}
		return err
	}
}
