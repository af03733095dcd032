// Package normalize implements the normalizer: filling in a default select
// when a query has exactly one from and no explicit select.
package normalize

import "github.com/relquery/relquery/query/ast"

const entityVar = "entity"

// Normalize returns a copy of q with a default select installed when q has
// no select and exactly one from. The synthesized select's body is
// `VarRef("entity")`, binding `["entity"]`: emit the single bound entity as
// a whole row tuple. When len(Froms) != 1 and Select is absent, Normalize
// leaves the query unchanged; it is the validator's job to reject that
// shape.
//
// Normalize is idempotent: calling it on an already-normalized query (or
// one with an explicit select) returns an equivalent query unchanged.
func Normalize(q *ast.Query) *ast.Query {
	if q.Select != nil || len(q.Froms) != 1 {
		return q
	}
	out := q.Clone()
	out.Select = &ast.SelectClause{
		Meta: ast.Meta{Binding: []string{entityVar}},
		Expr: ast.VarRef{Var: entityVar},
	}
	return out
}
