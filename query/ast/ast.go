// Package ast defines the query expression AST and the Query value it is
// assembled into. Nodes are a sealed tagged variant: every concrete type
// implements Expr via an unexported marker method, so an "unknown shape"
// cannot occur by construction. The type checker and SQL generator switch
// over the set exhaustively instead of falling back to a catch-all rule.
package ast

import "github.com/relquery/relquery/schema"

// Expr is any node of the expression language.
type Expr interface {
	isExpr()
}

// FieldAccess is `var.field`, the field of the entity bound to var.
type FieldAccess struct {
	Var   string
	Field string
}

func (FieldAccess) isExpr() {}

// VarRef is the whole entity bound to Var.
type VarRef struct {
	Var string
}

func (VarRef) isExpr() {}

// UnaryOperator enumerates the unary operators.
type UnaryOperator string

const (
	OpNot   UnaryOperator = "not"
	OpPlus  UnaryOperator = "+"
	OpMinus UnaryOperator = "-"
)

// UnaryOp is `op arg`.
type UnaryOp struct {
	Op  UnaryOperator
	Arg Expr
}

func (UnaryOp) isExpr() {}

// BinaryOperator enumerates the binary operators.
type BinaryOperator string

const (
	OpEq  BinaryOperator = "=="
	OpNeq BinaryOperator = "!="
	OpLt  BinaryOperator = "<"
	OpLte BinaryOperator = "<="
	OpGt  BinaryOperator = ">"
	OpGte BinaryOperator = ">="
	OpAnd BinaryOperator = "and"
	OpOr  BinaryOperator = "or"
	OpAdd BinaryOperator = "+"
	OpSub BinaryOperator = "-"
	OpMul BinaryOperator = "*"
	OpDiv BinaryOperator = "/"
	OpIn  BinaryOperator = "in"
)

// BinaryOp is `lhs op rhs`.
type BinaryOp struct {
	Op  BinaryOperator
	Lhs Expr
	Rhs Expr
}

func (BinaryOp) isExpr() {}

// Range is a closed numeric interval `first..last`.
type Range struct {
	First Expr
	Last  Expr
}

func (Range) isExpr() {}

// List is a list literal.
type List struct {
	Elems []Expr
}

func (List) isExpr() {}

// Tuple is a tuple literal.
type Tuple struct {
	Elems []Expr
}

func (Tuple) isExpr() {}

// LiteralKind tags the shape of a Literal's value.
type LiteralKind string

const (
	LitNil    LiteralKind = "nil"
	LitBool   LiteralKind = "bool"
	LitNumber LiteralKind = "number"
	LitString LiteralKind = "string"
)

// Literal is a constant: nil, true/false, a number, or a string.
type Literal struct {
	Kind   LiteralKind
	Bool   bool
	Number float64
	String string
}

func (Literal) isExpr() {}

// Atom is a bare atom literal. It exists only so the type checker can reject
// it by name ("atoms are not allowed") rather than hitting the internal
// "unknown shape" case; it is never well-typed.
type Atom struct {
	Name string
}

func (Atom) isExpr() {}

// OrderDirection is the sort direction of one order_by item.
type OrderDirection string

const (
	Asc  OrderDirection = "asc"
	Desc OrderDirection = "desc"
	None OrderDirection = ""
)

// OrderByItem is one `(direction, var, field)` entry of an order_by clause.
type OrderByItem struct {
	Direction OrderDirection
	Var       string
	Field     string
}

// Meta carries the binding and source coordinates every where, select and
// order_by clause is annotated with. Limit and offset are plain ints and
// carry none.
type Meta struct {
	Binding []string // variable names (or "_") zipped positionally with Froms
	File    string
	Line    int
}

// WhereClause is one `where` entry; wheres are AND-combined at lowering.
type WhereClause struct {
	Meta
	Expr Expr
}

// SelectClause is the optional `select` entry. Its shape is inferred
// structurally from Expr at lowering time: Tuple/List lower element-wise,
// a bare VarRef lowers to all of the bound entity's fields, anything else
// lowers as a scalar expression.
type SelectClause struct {
	Meta
	Expr Expr
}

// OrderByClause is one `order_by` entry.
type OrderByClause struct {
	Meta
	Items []OrderByItem
}

// Query is the immutable query value assembled by the builder. No
// transformation mutates one in place: each merge returns a new Query,
// Normalize returns a new Query or its input unchanged, and validation
// only reads it.
type Query struct {
	Froms    []schema.Entity
	Wheres   []WhereClause
	Select   *SelectClause
	OrderBys []OrderByClause
	Limit    *int
	Offset   *int
}

// Clone returns a shallow copy of q with independently-appendable slices, so
// a merge can append to the copy without aliasing q's backing arrays.
func (q *Query) Clone() *Query {
	clone := *q
	clone.Froms = append([]schema.Entity(nil), q.Froms...)
	clone.Wheres = append([]WhereClause(nil), q.Wheres...)
	clone.OrderBys = append([]OrderByClause(nil), q.OrderBys...)
	return &clone
}
