package ast

// The following are convenience constructors for hand-building expression
// trees (tests, the demo CLI) without spelling out struct literals. The
// front-end that turns builder syntax into this AST is an external
// collaborator; these are not a parser, just shorthands.

func Field(varName, field string) Expr { return FieldAccess{Var: varName, Field: field} }
func Var(varName string) Expr          { return VarRef{Var: varName} }

func Not(e Expr) Expr   { return UnaryOp{Op: OpNot, Arg: e} }
func Neg(e Expr) Expr   { return UnaryOp{Op: OpMinus, Arg: e} }
func Pos(e Expr) Expr   { return UnaryOp{Op: OpPlus, Arg: e} }

func Eq(l, r Expr) Expr  { return BinaryOp{Op: OpEq, Lhs: l, Rhs: r} }
func Neq(l, r Expr) Expr { return BinaryOp{Op: OpNeq, Lhs: l, Rhs: r} }
func Lt(l, r Expr) Expr  { return BinaryOp{Op: OpLt, Lhs: l, Rhs: r} }
func Lte(l, r Expr) Expr { return BinaryOp{Op: OpLte, Lhs: l, Rhs: r} }
func Gt(l, r Expr) Expr  { return BinaryOp{Op: OpGt, Lhs: l, Rhs: r} }
func Gte(l, r Expr) Expr { return BinaryOp{Op: OpGte, Lhs: l, Rhs: r} }
func And(l, r Expr) Expr { return BinaryOp{Op: OpAnd, Lhs: l, Rhs: r} }
func Or(l, r Expr) Expr  { return BinaryOp{Op: OpOr, Lhs: l, Rhs: r} }
func Add(l, r Expr) Expr { return BinaryOp{Op: OpAdd, Lhs: l, Rhs: r} }
func Sub(l, r Expr) Expr { return BinaryOp{Op: OpSub, Lhs: l, Rhs: r} }
func Mul(l, r Expr) Expr { return BinaryOp{Op: OpMul, Lhs: l, Rhs: r} }
func Div(l, r Expr) Expr { return BinaryOp{Op: OpDiv, Lhs: l, Rhs: r} }
func In(l, r Expr) Expr  { return BinaryOp{Op: OpIn, Lhs: l, Rhs: r} }

func RangeOf(first, last Expr) Expr { return Range{First: first, Last: last} }
func ListOf(elems ...Expr) Expr     { return List{Elems: elems} }
func TupleOf(elems ...Expr) Expr    { return Tuple{Elems: elems} }

func Nil() Expr              { return Literal{Kind: LitNil} }
func Bool(b bool) Expr       { return Literal{Kind: LitBool, Bool: b} }
func Number(n float64) Expr  { return Literal{Kind: LitNumber, Number: n} }
func Str(s string) Expr      { return Literal{Kind: LitString, String: s} }
