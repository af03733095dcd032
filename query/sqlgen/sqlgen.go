// Package sqlgen lowers a validated, normalized ast.Query to PostgreSQL
// SQL text, and emits direct-row INSERT/UPDATE/DELETE for a single entity
// value plus the UPDATE/DELETE batch forms.
package sqlgen

import (
	"strconv"
	"strings"

	"github.com/relquery/relquery/query/ast"
	"github.com/relquery/relquery/queryerr"
	"github.com/relquery/relquery/schema"
)

// Generator lowers validated ast.Query values to SQL. It holds no state;
// every method is a pure function of its arguments.
type Generator struct{}

// New returns a SQL generator. There is exactly one dialect (PostgreSQL
// 9+); other dialects are an explicit non-goal.
func New() *Generator {
	return &Generator{}
}

// Select lowers a validated, normalized query to a SELECT statement.
func (g *Generator) Select(q *ast.Query) (string, error) {
	if q.Select == nil {
		return "", queryerr.New("internal error: cannot lower a query with no select clause")
	}

	aliases := AssignAliases(q.Froms)

	selectSQL, err := lowerSelect(q.Select, q.Froms, aliases)
	if err != nil {
		return "", err
	}
	lines := []string{"SELECT " + selectSQL, lowerFrom(q.Froms, aliases)}

	whereSQL, err := lowerWheres(q.Wheres, q.Froms, aliases)
	if err != nil {
		return "", err
	}
	if whereSQL != "" {
		lines = append(lines, whereSQL)
	}

	orderSQL, err := lowerOrderBys(q.OrderBys, q.Froms, aliases)
	if err != nil {
		return "", err
	}
	if orderSQL != "" {
		lines = append(lines, orderSQL)
	}

	if q.Limit != nil {
		lines = append(lines, "LIMIT "+strconv.Itoa(*q.Limit))
	}
	if q.Offset != nil {
		lines = append(lines, "OFFSET "+strconv.Itoa(*q.Offset))
	}

	return strings.Join(lines, "\n"), nil
}

// lowerSelect lowers a normalized select's body. The shape (tuple, list,
// bare entity, or scalar expression) is inferred structurally from the
// body's AST node.
func lowerSelect(sel *ast.SelectClause, froms []schema.Entity, aliases []string) (string, error) {
	aliasEnv, entityEnv := resolveEnv(sel.Meta, froms, aliases)

	switch body := sel.Expr.(type) {
	case ast.Tuple:
		return lowerSelectList(body.Elems, aliasEnv, entityEnv)
	case ast.List:
		return lowerSelectList(body.Elems, aliasEnv, entityEnv)
	case ast.VarRef:
		return lowerEntityFields(body, aliasEnv, entityEnv)
	default:
		return lowerExpr(sel.Expr, aliasEnv)
	}
}

// lowerSelectList lowers each element of a tuple/list select body. A bare
// VarRef element (the whole entity nested inside the tuple/list, e.g.
// `select {p, p.title}`) expands to its fields the same way a top-level
// VarRef does; lowerExpr itself rejects a bare VarRef since that form is
// only meaningful in a select position.
func lowerSelectList(elems []ast.Expr, aliasEnv map[string]string, entityEnv map[string]schema.Entity) (string, error) {
	parts := make([]string, len(elems))
	for i, el := range elems {
		if v, ok := el.(ast.VarRef); ok {
			s, err := lowerEntityFields(v, aliasEnv, entityEnv)
			if err != nil {
				return "", err
			}
			parts[i] = s
			continue
		}
		s, err := lowerExpr(el, aliasEnv)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return strings.Join(parts, ", "), nil
}

// lowerEntityFields lowers a bare VarRef select body to all of the bound
// entity's fields, comma-joined as alias.field.
func lowerEntityFields(v ast.VarRef, aliasEnv map[string]string, entityEnv map[string]schema.Entity) (string, error) {
	ent, ok := entityEnv[v.Var]
	if !ok {
		return "", queryerr.New("internal error: unbound variable in select: " + v.Var)
	}
	alias := aliasEnv[v.Var]
	fields := ent.FieldNames()
	qualified := make([]string, len(fields))
	for i, f := range fields {
		qualified[i] = alias + "." + f
	}
	return strings.Join(qualified, ", "), nil
}

// lowerFrom lowers the from list to `FROM t1 AS a1, t2 AS a2, ...`.
func lowerFrom(froms []schema.Entity, aliases []string) string {
	parts := make([]string, len(froms))
	for i, e := range froms {
		parts[i] = e.Dataset() + " AS " + aliases[i]
	}
	return "FROM " + strings.Join(parts, ", ")
}

// lowerWheres lowers all where clauses to `WHERE (e1) AND (e2) AND ...`,
// each clause resolved against its own binding.
func lowerWheres(wheres []ast.WhereClause, froms []schema.Entity, aliases []string) (string, error) {
	if len(wheres) == 0 {
		return "", nil
	}
	parts := make([]string, len(wheres))
	for i, w := range wheres {
		aliasEnv, _ := resolveEnv(w.Meta, froms, aliases)
		sql, err := lowerExpr(w.Expr, aliasEnv)
		if err != nil {
			return "", err
		}
		parts[i] = "(" + sql + ")"
	}
	return "WHERE " + strings.Join(parts, " AND "), nil
}

// lowerOrderBys lowers every order_by clause's items to
// `ORDER BY alias.field [ASC|DESC]?, ...`, comma-joined across clauses.
func lowerOrderBys(clauses []ast.OrderByClause, froms []schema.Entity, aliases []string) (string, error) {
	var parts []string
	for _, clause := range clauses {
		aliasEnv, _ := resolveEnv(clause.Meta, froms, aliases)
		for _, item := range clause.Items {
			alias, ok := aliasEnv[item.Var]
			if !ok {
				return "", queryerr.New("internal error: unbound variable in order_by: " + item.Var)
			}
			s := alias + "." + item.Field
			switch item.Direction {
			case ast.Asc:
				s += " ASC"
			case ast.Desc:
				s += " DESC"
			}
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return "", nil
	}
	return "ORDER BY " + strings.Join(parts, ", "), nil
}
