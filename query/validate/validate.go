// Package validate implements the validator entry points: Validate,
// ValidateUpdate, and ValidateDelete. Each orchestrates binding resolution
// and the type checker (query/types) over a Query, wrapping every error
// with the originating clause's kind, file, and line.
package validate

import (
	"github.com/relquery/relquery/query/ast"
	"github.com/relquery/relquery/query/types"
	"github.com/relquery/relquery/queryerr"
	"github.com/relquery/relquery/schema"
)

// Validate checks the query's structural invariants plus where- and
// (unless skipSelect) select-type checks. skipSelect is set by
// ValidateUpdate/ValidateDelete, whose restricted shape forbids a select
// clause outright rather than requiring one.
func Validate(q *ast.Query, skipSelect bool) error {
	if len(q.Froms) == 0 {
		return queryerr.New("a query must have at least one from expression")
	}

	if !skipSelect && len(q.Froms) > 1 && q.Select == nil {
		return queryerr.New("a query must have a select expression if querying from more than one entity")
	}

	for _, w := range q.Wheres {
		env := types.BuildEnv(w.Binding, q.Froms)
		t, err := types.Infer(w.Expr, env)
		if err != nil {
			return queryerr.Wrap(err, queryerr.ClauseWhere, w.File, w.Line)
		}
		if t.Kind != types.Boolean {
			return queryerr.Wrap(queryerr.New("where clause must be boolean"), queryerr.ClauseWhere, w.File, w.Line)
		}
	}

	if !skipSelect && q.Select != nil {
		env := types.BuildEnv(q.Select.Binding, q.Froms)
		if _, err := types.Infer(q.Select.Expr, env); err != nil {
			return queryerr.Wrap(err, queryerr.ClauseSelect, q.Select.File, q.Select.Line)
		}
	}

	for _, ob := range q.OrderBys {
		env := types.BuildEnv(ob.Binding, q.Froms)
		for _, item := range ob.Items {
			ent, ok := env[item.Var]
			if !ok {
				return queryerr.Wrap(queryerr.New("reference to an undeclared variable: "+item.Var), queryerr.ClauseOrderBy, ob.File, ob.Line)
			}
			if ent.FieldType(item.Field) == schema.TypeUnknown {
				return queryerr.Wrap(queryerr.New("unknown field on entity: "+item.Field), queryerr.ClauseOrderBy, ob.File, ob.Line)
			}
		}
	}

	return nil
}

// checkRestrictedShape enforces the update/delete restriction: the query
// must be shaped from + optional wheres, no select/order/limit/offset are
// permitted.
func checkRestrictedShape(q *ast.Query) error {
	if q.Select != nil || len(q.OrderBys) > 0 || q.Limit != nil || q.Offset != nil {
		return queryerr.New("update and delete queries may only have from and where clauses")
	}
	if len(q.Froms) != 1 {
		return queryerr.New("update and delete queries must have exactly one from expression")
	}
	return nil
}

// ValidateUpdate checks the restricted update shape, resolves binding
// against the single-from entity, and checks each (field, expr) SET pair:
// the entity must declare field, and expr's type must equal field's
// declared type (with int/float collapsed to number).
func ValidateUpdate(q *ast.Query, binding []string, values map[string]ast.Expr) error {
	if err := checkRestrictedShape(q); err != nil {
		return err
	}

	env := types.BuildEnv(binding, q.Froms)
	entity := q.Froms[0]

	for field, expr := range values {
		ft := entity.FieldType(field)
		wantKind, ok := types.FieldKind(ft)
		if !ok {
			return queryerr.Wrap(queryerr.New("update SET on undeclared field: "+field), queryerr.ClauseSet, "", 0)
		}
		got, err := types.Infer(expr, env)
		if err != nil {
			return queryerr.Wrap(err, queryerr.ClauseSet, "", 0)
		}
		if got.Kind != wantKind {
			return queryerr.Wrap(queryerr.New("type mismatch in update SET for field: "+field), queryerr.ClauseSet, "", 0)
		}
	}

	return Validate(q, true)
}

// ValidateDelete checks the restricted delete shape and defers the rest to
// Validate.
func ValidateDelete(q *ast.Query) error {
	if err := checkRestrictedShape(q); err != nil {
		return err
	}
	return Validate(q, true)
}
