// Package types implements the query core's type checker: it infers and
// validates expression types against a variable environment, raising
// queryerr.Error on any rule violation.
package types

import (
	"github.com/relquery/relquery/query/ast"
	"github.com/relquery/relquery/queryerr"
	"github.com/relquery/relquery/schema"
)

// Kind is the inferred type domain: number, boolean, string, nil, list,
// tuple, entity. Integer and float collapse to Kind Number the
// moment a field lookup resolves them, so cross-numeric comparisons and
// arithmetic are uniform from that point on.
type Kind string

const (
	Number  Kind = "number"
	Boolean Kind = "boolean"
	String  Kind = "string"
	Nil     Kind = "nil"
	ListK   Kind = "list"
	TupleK  Kind = "tuple"
	EntityK Kind = "entity"
)

// Type is the result of inferring an expression. Entity is only populated
// when Kind is EntityK.
type Type struct {
	Kind   Kind
	Entity schema.Entity
}

// Env is the binding resolution result: a small mapping from variable name
// to the entity it refers to within the scope of one clause.
type Env map[string]schema.Entity

// BuildEnv zips binding positionally with froms. Missing suffix positions
// are simply absent; the wildcard "_" is never bound. Binding arity and
// duplicate-name checks already happened in the builder, this is
// resolution, not validation.
func BuildEnv(binding []string, froms []schema.Entity) Env {
	env := make(Env, len(binding))
	for i, name := range binding {
		if name == "_" {
			continue
		}
		if i < len(froms) {
			env[name] = froms[i]
		}
	}
	return env
}

// FieldKind maps a declared entity field type to its checker Kind,
// collapsing integer and float to Number.
func FieldKind(ft schema.FieldType) (Kind, bool) {
	return fieldKind(ft)
}

func fieldKind(ft schema.FieldType) (Kind, bool) {
	switch ft {
	case schema.TypeInteger, schema.TypeFloat:
		return Number, true
	case schema.TypeString:
		return String, true
	case schema.TypeBoolean:
		return Boolean, true
	default:
		return "", false
	}
}

// Infer computes the type of expr under env, or an *queryerr.Error if expr
// violates a typing rule. Every call recurses into subexpressions, so a
// select clause's subexpressions are all checked even though the top-level
// result is discarded by the caller.
func Infer(expr ast.Expr, env Env) (Type, error) {
	switch e := expr.(type) {

	case ast.FieldAccess:
		ent, ok := env[e.Var]
		if !ok {
			return Type{}, queryerr.New("reference to an undeclared variable: " + e.Var)
		}
		ft := ent.FieldType(e.Field)
		kind, ok := FieldKind(ft)
		if !ok {
			return Type{}, queryerr.New("unknown field on entity: " + e.Field)
		}
		return Type{Kind: kind}, nil

	case ast.VarRef:
		ent, ok := env[e.Var]
		if !ok {
			return Type{}, queryerr.New("reference to an undeclared variable: " + e.Var)
		}
		return Type{Kind: EntityK, Entity: ent}, nil

	case ast.UnaryOp:
		return inferUnary(e, env)

	case ast.BinaryOp:
		return inferBinary(e, env)

	case ast.Range:
		first, err := Infer(e.First, env)
		if err != nil {
			return Type{}, err
		}
		last, err := Infer(e.Last, env)
		if err != nil {
			return Type{}, err
		}
		if first.Kind != Number || last.Kind != Number {
			return Type{}, queryerr.New("range bounds must be numbers")
		}
		return Type{Kind: ListK}, nil

	case ast.List:
		for _, el := range e.Elems {
			if _, err := Infer(el, env); err != nil {
				return Type{}, err
			}
		}
		return Type{Kind: ListK}, nil

	case ast.Tuple:
		for _, el := range e.Elems {
			if _, err := Infer(el, env); err != nil {
				return Type{}, err
			}
		}
		return Type{Kind: TupleK}, nil

	case ast.Literal:
		switch e.Kind {
		case ast.LitNil:
			return Type{Kind: Nil}, nil
		case ast.LitBool:
			return Type{Kind: Boolean}, nil
		case ast.LitNumber:
			return Type{Kind: Number}, nil
		case ast.LitString:
			return Type{Kind: String}, nil
		}
		return Type{}, queryerr.New("internal error: unrecognized literal kind")

	case ast.Atom:
		return Type{}, queryerr.New("atoms are not allowed")

	default:
		return Type{}, queryerr.New("internal error: unrecognized expression shape")
	}
}

func inferUnary(e ast.UnaryOp, env Env) (Type, error) {
	arg, err := Infer(e.Arg, env)
	if err != nil {
		return Type{}, err
	}
	switch e.Op {
	case ast.OpNot:
		if arg.Kind != Boolean {
			return Type{}, queryerr.New("operand of `not` must be boolean")
		}
		return Type{Kind: Boolean}, nil
	case ast.OpPlus, ast.OpMinus:
		if arg.Kind != Number {
			return Type{}, queryerr.New("operand of unary " + string(e.Op) + " must be a number")
		}
		return Type{Kind: Number}, nil
	default:
		return Type{}, queryerr.New("internal error: unrecognized unary operator")
	}
}

func inferBinary(e ast.BinaryOp, env Env) (Type, error) {
	lhs, err := Infer(e.Lhs, env)
	if err != nil {
		return Type{}, err
	}
	rhs, err := Infer(e.Rhs, env)
	if err != nil {
		return Type{}, err
	}

	switch e.Op {
	case ast.OpEq, ast.OpNeq:
		if lhs.Kind != rhs.Kind && lhs.Kind != Nil && rhs.Kind != Nil {
			return Type{}, queryerr.New("operands of " + string(e.Op) + " must have the same type, or one must be nil")
		}
		return Type{Kind: Boolean}, nil

	case ast.OpAnd, ast.OpOr:
		if lhs.Kind != Boolean || rhs.Kind != Boolean {
			return Type{}, queryerr.New("operands of " + string(e.Op) + " must be boolean")
		}
		return Type{Kind: Boolean}, nil

	case ast.OpLt, ast.OpLte, ast.OpGt, ast.OpGte:
		if lhs.Kind != Number || rhs.Kind != Number {
			return Type{}, queryerr.New("operands of " + string(e.Op) + " must be numbers")
		}
		return Type{Kind: Boolean}, nil

	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv:
		if lhs.Kind != Number || rhs.Kind != Number {
			return Type{}, queryerr.New("operands of " + string(e.Op) + " must be numbers")
		}
		return Type{Kind: Number}, nil

	case ast.OpIn:
		if rhs.Kind != ListK {
			return Type{}, queryerr.New("right-hand side of `in` must be a list")
		}
		return Type{Kind: Boolean}, nil

	default:
		return Type{}, queryerr.New("internal error: unrecognized binary operator")
	}
}
