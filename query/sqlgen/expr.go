package sqlgen

import (
	"fmt"
	"strings"

	"github.com/relquery/relquery/query/ast"
	"github.com/relquery/relquery/queryerr"
)

// binaryOpSQL is the static operator→SQL lookup table, keyed by the
// operator variant.
var binaryOpSQL = map[ast.BinaryOperator]string{
	ast.OpEq:  "=",
	ast.OpNeq: "!=",
	ast.OpLt:  "<",
	ast.OpLte: "<=",
	ast.OpGt:  ">",
	ast.OpGte: ">=",
	ast.OpAnd: "AND",
	ast.OpOr:  "OR",
	ast.OpAdd: "+",
	ast.OpSub: "-",
	ast.OpMul: "*",
	ast.OpDiv: "/",
}

// lowerExpr lowers expr to SQL text under env (var name → alias). The
// generator assumes a validated and normalized input; any shape it doesn't
// recognize is a programmer error, surfaced with the offending node
// rendered in the error.
func lowerExpr(expr ast.Expr, env map[string]string) (string, error) {
	switch e := expr.(type) {

	case ast.FieldAccess:
		alias, ok := env[e.Var]
		if !ok {
			return "", queryerr.New(fmt.Sprintf("internal error: unbound variable %q in lowering", e.Var))
		}
		return alias + "." + e.Field, nil

	case ast.VarRef:
		return "", queryerr.New("internal error: bare entity reference outside select position")

	case ast.UnaryOp:
		return lowerUnary(e, env)

	case ast.BinaryOp:
		return lowerBinary(e, env)

	case ast.Range:
		return lowerRangeAsList(e, env)

	case ast.List:
		parts := make([]string, len(e.Elems))
		for i, el := range e.Elems {
			s, err := lowerExpr(el, env)
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		return "ARRAY[" + strings.Join(parts, ", ") + "]", nil

	case ast.Tuple:
		parts := make([]string, len(e.Elems))
		for i, el := range e.Elems {
			s, err := lowerExpr(el, env)
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		return strings.Join(parts, ", "), nil

	case ast.Literal:
		return lowerLiteral(e)

	default:
		return "", queryerr.New(fmt.Sprintf("internal error: cannot lower expression node %#v", expr))
	}
}

func lowerLiteral(e ast.Literal) (string, error) {
	switch e.Kind {
	case ast.LitNil:
		return "NULL", nil
	case ast.LitBool:
		if e.Bool {
			return "TRUE", nil
		}
		return "FALSE", nil
	case ast.LitNumber:
		return formatNumber(e.Number), nil
	case ast.LitString:
		return escapeString(e.String), nil
	default:
		return "", queryerr.New("internal error: unrecognized literal kind")
	}
}

func lowerUnary(e ast.UnaryOp, env map[string]string) (string, error) {
	arg, err := lowerExpr(e.Arg, env)
	if err != nil {
		return "", err
	}
	switch e.Op {
	case ast.OpNot:
		return "NOT (" + arg + ")", nil
	case ast.OpPlus:
		return "+" + arg, nil
	case ast.OpMinus:
		return "-" + arg, nil
	default:
		return "", queryerr.New("internal error: unrecognized unary operator")
	}
}

func lowerBinary(e ast.BinaryOp, env map[string]string) (string, error) {
	if e.Op == ast.OpEq || e.Op == ast.OpNeq {
		if sql, ok, err := lowerNullComparison(e, env); ok || err != nil {
			return sql, err
		}
	}

	if e.Op == ast.OpIn {
		return lowerIn(e, env)
	}

	sym, ok := binaryOpSQL[e.Op]
	if !ok {
		return "", queryerr.New("internal error: unrecognized binary operator")
	}
	lhs, err := lowerOperand(e.Lhs, env)
	if err != nil {
		return "", err
	}
	rhs, err := lowerOperand(e.Rhs, env)
	if err != nil {
		return "", err
	}
	return lhs + " " + sym + " " + rhs, nil
}

// lowerOperand wraps binary-op subexpressions in parentheses and leaves
// other forms bare.
func lowerOperand(e ast.Expr, env map[string]string) (string, error) {
	sql, err := lowerExpr(e, env)
	if err != nil {
		return "", err
	}
	if _, isBinary := e.(ast.BinaryOp); isBinary {
		return "(" + sql + ")", nil
	}
	return sql, nil
}

// lowerNullComparison implements the `e == nil`/`nil == e` → `IS NULL`
// rewrite (and its `!=` counterpart). Returns ok=false when neither side is
// a nil literal, so the caller falls through to ordinary binary lowering.
func lowerNullComparison(e ast.BinaryOp, env map[string]string) (string, bool, error) {
	lhsNil := isNilLiteral(e.Lhs)
	rhsNil := isNilLiteral(e.Rhs)
	if !lhsNil && !rhsNil {
		return "", false, nil
	}

	var operand ast.Expr
	if lhsNil {
		operand = e.Rhs
	} else {
		operand = e.Lhs
	}
	sql, err := lowerExpr(operand, env)
	if err != nil {
		return "", true, err
	}
	if e.Op == ast.OpEq {
		return sql + " IS NULL", true, nil
	}
	return sql + " IS NOT NULL", true, nil
}

func isNilLiteral(e ast.Expr) bool {
	lit, ok := e.(ast.Literal)
	return ok && lit.Kind == ast.LitNil
}

// lowerIn implements `in(e, Range(a,b))` → `BETWEEN` and `in(e, rhs)` →
// `= ANY (rhs)`.
func lowerIn(e ast.BinaryOp, env map[string]string) (string, error) {
	lhs, err := lowerExpr(e.Lhs, env)
	if err != nil {
		return "", err
	}
	if r, ok := e.Rhs.(ast.Range); ok {
		first, err := lowerExpr(r.First, env)
		if err != nil {
			return "", err
		}
		last, err := lowerExpr(r.Last, env)
		if err != nil {
			return "", err
		}
		return lhs + " BETWEEN " + first + " AND " + last, nil
	}
	rhs, err := lowerExpr(e.Rhs, env)
	if err != nil {
		return "", err
	}
	return lhs + " = ANY (" + rhs + ")", nil
}

// lowerRangeAsList expands a Range literal used in a value position into
// its enumerated ARRAY form. The generator requires literal number bounds,
// truncating a fractional bound toward zero; a non-literal bound is a
// programmer error at this stage since
// the checker only guarantees the bounds are numbers, not constants.
func lowerRangeAsList(r ast.Range, env map[string]string) (string, error) {
	first, ok1 := r.First.(ast.Literal)
	last, ok2 := r.Last.(ast.Literal)
	if !ok1 || !ok2 || first.Kind != ast.LitNumber || last.Kind != ast.LitNumber {
		return "", queryerr.New("internal error: cannot enumerate a range with non-literal bounds")
	}
	lo := int64(first.Number)
	hi := int64(last.Number)
	parts := make([]string, 0, hi-lo+1)
	for v := lo; v <= hi; v++ {
		parts = append(parts, fmt.Sprintf("%d", v))
	}
	return "ARRAY[" + strings.Join(parts, ", ") + "]", nil
}
