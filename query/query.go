// Package query is the core's single public entry point: it wires the
// validator (with its type checker), normalizer, and SQL generator together
// over a Query the caller has already assembled with the builder.
package query

import (
	"github.com/relquery/relquery/query/ast"
	"github.com/relquery/relquery/query/normalize"
	"github.com/relquery/relquery/query/sqlgen"
	"github.com/relquery/relquery/query/validate"
	"github.com/relquery/relquery/schema"
)

// Prepare validates then normalizes q, returning the query the generator
// should be given. Validation runs before normalization: the structural
// check that a multi-from query supplies its own select must see the query
// as the caller built it, not after a synthesized default has been
// installed.
func Prepare(q *ast.Query) (*ast.Query, error) {
	if err := validate.Validate(q, false); err != nil {
		return nil, err
	}
	return normalize.Normalize(q), nil
}

// ToSQL runs the full select pipeline and lowers the result to a SELECT
// statement.
func ToSQL(q *ast.Query) (string, error) {
	prepared, err := Prepare(q)
	if err != nil {
		return "", err
	}
	return sqlgen.New().Select(prepared)
}

// UpdateAllSQL validates an update_all query and SET pairs, then lowers it
// to an UPDATE statement.
func UpdateAllSQL(q *ast.Query, binding []string, values map[string]ast.Expr) (string, error) {
	if err := validate.ValidateUpdate(q, binding, values); err != nil {
		return "", err
	}
	return sqlgen.New().UpdateAll(q, binding, values)
}

// DeleteAllSQL validates a delete_all query, then lowers it to a DELETE
// statement.
func DeleteAllSQL(q *ast.Query) (string, error) {
	if err := validate.ValidateDelete(q); err != nil {
		return "", err
	}
	return sqlgen.New().DeleteAll(q)
}

// InsertSQL lowers a single entity value to an INSERT statement. There is
// no query AST to validate here, the entity's own FieldNames/PrimaryKey
// contract is the only shape constraint.
func InsertSQL(value schema.Value) (string, error) {
	return sqlgen.New().Insert(value)
}

// UpdateSQL lowers a single entity value to an UPDATE statement.
func UpdateSQL(value schema.Value) (string, error) {
	return sqlgen.New().Update(value)
}

// DeleteSQL lowers a single entity value to a DELETE statement.
func DeleteSQL(value schema.Value) (string, error) {
	return sqlgen.New().Delete(value)
}
