package types

import (
	"testing"

	"github.com/relquery/relquery/query/ast"
	"github.com/relquery/relquery/schema"
)

func testEntity() schema.Entity {
	return schema.NewStaticEntity("post_entity", "id",
		schema.Field("id", schema.TypeInteger),
		schema.Field("title", schema.TypeString),
		schema.Field("published", schema.TypeBoolean),
		schema.Field("score", schema.TypeFloat),
	)
}

func TestBuildEnv_WildcardNotBound(t *testing.T) {
	froms := []schema.Entity{testEntity(), testEntity()}
	env := BuildEnv([]string{"p", "_"}, froms)
	if len(env) != 1 {
		t.Fatalf("expected one bound name, got %d", len(env))
	}
	if _, ok := env["_"]; ok {
		t.Error("wildcard must not be bound")
	}
}

func TestInfer_FieldAccessUndeclaredVariable(t *testing.T) {
	env := BuildEnv([]string{"p"}, []schema.Entity{testEntity()})
	_, err := Infer(ast.Field("q", "title"), env)
	if err == nil {
		t.Fatal("expected an error for an undeclared variable")
	}
}

func TestInfer_FieldAccessUnknownField(t *testing.T) {
	env := BuildEnv([]string{"p"}, []schema.Entity{testEntity()})
	_, err := Infer(ast.Field("p", "nope"), env)
	if err == nil {
		t.Fatal("expected an error for an unknown field")
	}
}

func TestInfer_IntFloatCollapseToNumber(t *testing.T) {
	env := BuildEnv([]string{"p"}, []schema.Entity{testEntity()})
	lhs, err := Infer(ast.Field("p", "id"), env)
	if err != nil {
		t.Fatalf("id: %v", err)
	}
	rhs, err := Infer(ast.Field("p", "score"), env)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if lhs.Kind != Number || rhs.Kind != Number {
		t.Fatalf("expected both to collapse to Number, got %v and %v", lhs.Kind, rhs.Kind)
	}
	if _, err := Infer(ast.Eq(ast.Field("p", "id"), ast.Field("p", "score")), env); err != nil {
		t.Errorf("comparing int field to float field should be allowed: %v", err)
	}
}

func TestInfer_EqAllowsNilOnEitherSide(t *testing.T) {
	env := BuildEnv([]string{"p"}, []schema.Entity{testEntity()})
	if _, err := Infer(ast.Eq(ast.Field("p", "title"), ast.Nil()), env); err != nil {
		t.Errorf("string = nil should be allowed: %v", err)
	}
	if _, err := Infer(ast.Eq(ast.Nil(), ast.Field("p", "published")), env); err != nil {
		t.Errorf("nil = boolean should be allowed: %v", err)
	}
}

func TestInfer_EqRejectsMismatchedNonNilTypes(t *testing.T) {
	env := BuildEnv([]string{"p"}, []schema.Entity{testEntity()})
	_, err := Infer(ast.Eq(ast.Field("p", "title"), ast.Field("p", "published")), env)
	if err == nil {
		t.Fatal("expected a type error comparing string to boolean")
	}
}

func TestInfer_AndOrRequireBoolean(t *testing.T) {
	env := BuildEnv([]string{"p"}, []schema.Entity{testEntity()})
	_, err := Infer(ast.And(ast.Field("p", "published"), ast.Field("p", "title")), env)
	if err == nil {
		t.Fatal("expected an error combining boolean and string with `and`")
	}
}

func TestInfer_ArithmeticRequiresNumber(t *testing.T) {
	env := BuildEnv([]string{"p"}, []schema.Entity{testEntity()})
	_, err := Infer(ast.Add(ast.Field("p", "title"), ast.Number(1)), env)
	if err == nil {
		t.Fatal("expected an error adding a string and a number")
	}
}

func TestInfer_InRequiresListRHS(t *testing.T) {
	env := BuildEnv([]string{"p"}, []schema.Entity{testEntity()})
	_, err := Infer(ast.In(ast.Field("p", "id"), ast.Number(1)), env)
	if err == nil {
		t.Fatal("expected an error: rhs of `in` is not a list")
	}
	if _, err := Infer(ast.In(ast.Field("p", "id"), ast.ListOf(ast.Number(1), ast.Number(2))), env); err != nil {
		t.Errorf("in against a list literal should be allowed: %v", err)
	}
}

func TestInfer_RangeRequiresNumericBounds(t *testing.T) {
	env := BuildEnv([]string{"p"}, []schema.Entity{testEntity()})
	_, err := Infer(ast.RangeOf(ast.Str("a"), ast.Number(3)), env)
	if err == nil {
		t.Fatal("expected an error: non-numeric range bound")
	}
	typ, err := Infer(ast.RangeOf(ast.Number(1), ast.Number(3)), env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if typ.Kind != ListK {
		t.Errorf("range should infer as list, got %v", typ.Kind)
	}
}

func TestInfer_AtomsRejected(t *testing.T) {
	_, err := Infer(ast.Atom{Name: "foo"}, Env{})
	if err == nil {
		t.Fatal("expected atoms to be rejected")
	}
}

func TestInfer_VarRefResolvesToEntity(t *testing.T) {
	env := BuildEnv([]string{"p"}, []schema.Entity{testEntity()})
	typ, err := Infer(ast.Var("p"), env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if typ.Kind != EntityK {
		t.Errorf("expected EntityK, got %v", typ.Kind)
	}
}
