package sqlgen

import (
	"strings"

	"github.com/relquery/relquery/query/ast"
	"github.com/relquery/relquery/queryerr"
	"github.com/relquery/relquery/schema"
)

// Insert lowers a single entity value to
// `INSERT INTO t (f1, ..., fk) VALUES (v1, ..., vk)`, dropping the primary
// key column and value when the schema declares one, and appending
// `RETURNING pk` in that case.
func (g *Generator) Insert(value schema.Value) (string, error) {
	entity := value.Schema()
	pk, hasPK := entity.PrimaryKey()

	var cols, vals []string
	for _, f := range entity.FieldNames() {
		if hasPK && f == pk {
			continue
		}
		v, present := value.Get(f)
		if !present {
			continue
		}
		lit, err := lowerGoValue(v)
		if err != nil {
			return "", err
		}
		cols = append(cols, f)
		vals = append(vals, lit)
	}

	sql := "INSERT INTO " + entity.Dataset() + " (" + strings.Join(cols, ", ") + ")\n" +
		"VALUES (" + strings.Join(vals, ", ") + ")"
	if hasPK {
		sql += "\nRETURNING " + pk
	}
	return sql, nil
}

// Update lowers a single entity value to
// `UPDATE t SET f = v, ... WHERE pk = pkv`, excluding pk from the SET list.
func (g *Generator) Update(value schema.Value) (string, error) {
	entity := value.Schema()
	pk, hasPK := entity.PrimaryKey()
	if !hasPK {
		return "", queryerr.New("update of an entity value requires a primary key")
	}

	var sets []string
	for _, f := range entity.FieldNames() {
		if f == pk {
			continue
		}
		v, present := value.Get(f)
		if !present {
			continue
		}
		lit, err := lowerGoValue(v)
		if err != nil {
			return "", err
		}
		sets = append(sets, f+" = "+lit)
	}

	pkVal, present := value.Get(pk)
	if !present {
		return "", queryerr.New("update of an entity value requires the primary key to be set")
	}
	pkLit, err := lowerGoValue(pkVal)
	if err != nil {
		return "", err
	}

	return "UPDATE " + entity.Dataset() + "\n" +
		"SET " + strings.Join(sets, ", ") + "\n" +
		"WHERE " + pk + " = " + pkLit, nil
}

// Delete lowers a single entity value to `DELETE FROM t WHERE pk = pkv`.
func (g *Generator) Delete(value schema.Value) (string, error) {
	entity := value.Schema()
	pk, hasPK := entity.PrimaryKey()
	if !hasPK {
		return "", queryerr.New("delete of an entity value requires a primary key")
	}
	pkVal, present := value.Get(pk)
	if !present {
		return "", queryerr.New("delete of an entity value requires the primary key to be set")
	}
	pkLit, err := lowerGoValue(pkVal)
	if err != nil {
		return "", err
	}
	return "DELETE FROM " + entity.Dataset() + "\nWHERE " + pk + " = " + pkLit, nil
}

// UpdateAll lowers a validated update query and its SET pairs to
// `UPDATE t AS a SET f = L(expr), ... [WHERE ...]`. q must already have
// passed query/validate.ValidateUpdate.
func (g *Generator) UpdateAll(q *ast.Query, binding []string, values map[string]ast.Expr) (string, error) {
	entity := q.Froms[0]
	aliases := AssignAliases(q.Froms)
	alias := aliases[0]
	aliasEnv, _ := resolveEnv(ast.Meta{Binding: binding}, q.Froms, aliases)

	var sets []string
	for _, f := range entity.FieldNames() {
		expr, ok := values[f]
		if !ok {
			continue
		}
		lit, err := lowerExpr(expr, aliasEnv)
		if err != nil {
			return "", err
		}
		sets = append(sets, f+" = "+lit)
	}

	sql := "UPDATE " + entity.Dataset() + " AS " + alias + "\n" +
		"SET " + strings.Join(sets, ", ")

	whereSQL, err := lowerWheres(q.Wheres, q.Froms, aliases)
	if err != nil {
		return "", err
	}
	if whereSQL != "" {
		sql += "\n" + whereSQL
	}
	return sql, nil
}

// DeleteAll lowers a validated delete query to
// `DELETE FROM t AS a [WHERE ...]`. q must already have passed
// query/validate.ValidateDelete.
func (g *Generator) DeleteAll(q *ast.Query) (string, error) {
	entity := q.Froms[0]
	aliases := AssignAliases(q.Froms)
	alias := aliases[0]

	sql := "DELETE FROM " + entity.Dataset() + " AS " + alias

	whereSQL, err := lowerWheres(q.Wheres, q.Froms, aliases)
	if err != nil {
		return "", err
	}
	if whereSQL != "" {
		sql += "\n" + whereSQL
	}
	return sql, nil
}
