// Package builder implements the merge operation that combines a base
// Query with one new clause at a time. Each merge call returns a new
// Query; nothing is mutated in place.
package builder

import (
	"github.com/relquery/relquery/query/ast"
	"github.com/relquery/relquery/queryerr"
	"github.com/relquery/relquery/schema"
)

// Builder accumulates clauses onto an immutable Query. It defers error
// surfacing to Build rather than returning an error from every call, so
// callers can chain without checking each step.
type Builder struct {
	query *ast.Query
	err   error
}

// New starts a Builder from zero froms.
func New() *Builder {
	return &Builder{query: &ast.Query{}}
}

// Build returns the assembled Query, or the first error encountered while
// merging clauses.
func (b *Builder) Build() (*ast.Query, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.query, nil
}

// From appends an entity reference. `from` is the only clause kind that
// appends without an arity check against itself.
func (b *Builder) From(e schema.Entity) *Builder {
	if b.err != nil {
		return b
	}
	q := b.query.Clone()
	q.Froms = append(q.Froms, e)
	b.query = q
	return b
}

// Where appends a where clause.
func (b *Builder) Where(binding []string, expr ast.Expr, file string, line int) *Builder {
	if b.err != nil {
		return b
	}
	if err := b.checkBinding(binding); err != nil {
		b.err = err
		return b
	}
	q := b.query.Clone()
	q.Wheres = append(q.Wheres, ast.WhereClause{
		Meta: ast.Meta{Binding: binding, File: file, Line: line},
		Expr: expr,
	})
	b.query = q
	return b
}

// Select assigns the select clause. Fails if one is already set.
func (b *Builder) Select(binding []string, expr ast.Expr, file string, line int) *Builder {
	if b.err != nil {
		return b
	}
	if b.query.Select != nil {
		b.err = queryerr.New("only one select expression is allowed")
		return b
	}
	if err := b.checkBinding(binding); err != nil {
		b.err = err
		return b
	}
	q := b.query.Clone()
	q.Select = &ast.SelectClause{
		Meta: ast.Meta{Binding: binding, File: file, Line: line},
		Expr: expr,
	}
	b.query = q
	return b
}

// OrderBy appends an order_by clause.
func (b *Builder) OrderBy(binding []string, items []ast.OrderByItem, file string, line int) *Builder {
	if b.err != nil {
		return b
	}
	if err := b.checkBinding(binding); err != nil {
		b.err = err
		return b
	}
	q := b.query.Clone()
	q.OrderBys = append(q.OrderBys, ast.OrderByClause{
		Meta:  ast.Meta{Binding: binding, File: file, Line: line},
		Items: items,
	})
	b.query = q
	return b
}

// Limit assigns the limit clause. Fails if one is already set.
func (b *Builder) Limit(n int) *Builder {
	if b.err != nil {
		return b
	}
	if b.query.Limit != nil {
		b.err = queryerr.New("only one limit expression is allowed")
		return b
	}
	q := b.query.Clone()
	q.Limit = &n
	b.query = q
	return b
}

// Offset assigns the offset clause. Fails if one is already set.
func (b *Builder) Offset(n int) *Builder {
	if b.err != nil {
		return b
	}
	if b.query.Offset != nil {
		b.err = queryerr.New("only one offset expression is allowed")
		return b
	}
	q := b.query.Clone()
	q.Offset = &n
	b.query = q
	return b
}

// checkBinding enforces the two binding-escape rules: arity against the
// froms seen so far, and no duplicate names (wildcard "_" excepted).
func (b *Builder) checkBinding(binding []string) error {
	if len(binding) > len(b.query.Froms) {
		return queryerr.New("cannot bind more variables than there are from expressions")
	}
	seen := make(map[string]bool, len(binding))
	for _, name := range binding {
		if name == "_" {
			continue
		}
		if seen[name] {
			return queryerr.New("duplicate binding name: " + name)
		}
		seen[name] = true
	}
	return nil
}
