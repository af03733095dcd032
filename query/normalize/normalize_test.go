package normalize

import (
	"testing"

	"github.com/relquery/relquery/query/ast"
	"github.com/relquery/relquery/schema"
)

func postEntity() *schema.StaticEntity {
	return schema.NewStaticEntity("post_entity", "id", schema.Field("id", schema.TypeInteger))
}

func TestNormalize_SingleFromNoSelectGetsDefault(t *testing.T) {
	q := &ast.Query{Froms: []schema.Entity{postEntity()}}
	out := Normalize(q)
	if out.Select == nil {
		t.Fatal("expected a synthesized select")
	}
	ref, ok := out.Select.Expr.(ast.VarRef)
	if !ok || ref.Var != "entity" {
		t.Errorf("expected select body to be VarRef(\"entity\"), got %#v", out.Select.Expr)
	}
	if len(out.Select.Binding) != 1 || out.Select.Binding[0] != "entity" {
		t.Errorf("expected binding [\"entity\"], got %v", out.Select.Binding)
	}
}

func TestNormalize_MultiFromNoSelectLeftUnchanged(t *testing.T) {
	q := &ast.Query{Froms: []schema.Entity{postEntity(), postEntity()}}
	out := Normalize(q)
	if out.Select != nil {
		t.Error("normalize must not synthesize a select for more than one from")
	}
}

func TestNormalize_ExplicitSelectLeftUnchanged(t *testing.T) {
	sel := &ast.SelectClause{Meta: ast.Meta{Binding: []string{"p"}}, Expr: ast.Var("p")}
	q := &ast.Query{Froms: []schema.Entity{postEntity()}, Select: sel}
	out := Normalize(q)
	if out.Select != sel {
		t.Error("explicit select should be left as-is")
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	q := &ast.Query{Froms: []schema.Entity{postEntity()}}
	once := Normalize(q)
	twice := Normalize(once)
	a, _ := once.Select.Expr.(ast.VarRef)
	b, _ := twice.Select.Expr.(ast.VarRef)
	if a != b {
		t.Errorf("normalize should be idempotent, got %#v then %#v", a, b)
	}
}
