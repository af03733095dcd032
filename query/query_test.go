package query

import (
	"testing"

	"github.com/relquery/relquery/query/ast"
	"github.com/relquery/relquery/query/builder"
	"github.com/relquery/relquery/schema"
)

func postEntity() *schema.StaticEntity {
	return schema.NewStaticEntity("post_entity", "id",
		schema.Field("id", schema.TypeInteger),
		schema.Field("title", schema.TypeString),
	)
}

func commentEntity() *schema.StaticEntity {
	return schema.NewStaticEntity("comment_entity", "id",
		schema.Field("id", schema.TypeInteger),
		schema.Field("text", schema.TypeString),
	)
}

// Scenario 1: from(PostEntity) normalized then lowered.
func TestEndToEnd_DefaultSelect(t *testing.T) {
	q, err := builder.New().From(postEntity()).Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	sql, err := ToSQL(q)
	if err != nil {
		t.Fatalf("ToSQL: %v", err)
	}
	want := "SELECT p0.id, p0.title\nFROM post_entity AS p0"
	if sql != want {
		t.Errorf("got %q, want %q", sql, want)
	}
}

// Scenario 2: two froms with no select must be rejected.
func TestEndToEnd_MultiFromRequiresSelect(t *testing.T) {
	q, err := builder.New().From(postEntity()).From(commentEntity()).Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	_, err = ToSQL(q)
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	if err.Error() != "a query must have a select expression if querying from more than one entity" {
		t.Errorf("unexpected error: %v", err)
	}
}

// Scenario 3: where + explicit select.
func TestEndToEnd_WhereAndSelect(t *testing.T) {
	q, err := builder.New().
		From(postEntity()).
		Where([]string{"p"}, ast.Eq(ast.Field("p", "title"), ast.Str("x")), "q.go", 10).
		Select([]string{"p"}, ast.Field("p", "title"), "q.go", 11).
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	sql, err := ToSQL(q)
	if err != nil {
		t.Fatalf("ToSQL: %v", err)
	}
	want := "SELECT p0.title\nFROM post_entity AS p0\nWHERE (p0.title = 'x')"
	if sql != want {
		t.Errorf("got %q, want %q", sql, want)
	}
}

// Scenario 4: where against nil lowers to IS NULL, default select applies.
func TestEndToEnd_WhereNil(t *testing.T) {
	q, err := builder.New().
		From(postEntity()).
		Where([]string{"p"}, ast.Eq(ast.Field("p", "title"), ast.Nil()), "q.go", 10).
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	sql, err := ToSQL(q)
	if err != nil {
		t.Fatalf("ToSQL: %v", err)
	}
	want := "SELECT p0.id, p0.title\nFROM post_entity AS p0\nWHERE (p0.title IS NULL)"
	if sql != want {
		t.Errorf("got %q, want %q", sql, want)
	}
}

// Scenario 5: update_all(PostEntity, [p], title: "y").
func TestEndToEnd_UpdateAll(t *testing.T) {
	q, err := builder.New().From(postEntity()).Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	sql, err := UpdateAllSQL(q, []string{"p"}, map[string]ast.Expr{
		"title": ast.Str("y"),
	})
	if err != nil {
		t.Fatalf("UpdateAllSQL: %v", err)
	}
	want := "UPDATE post_entity AS p0\nSET title = 'y'"
	if sql != want {
		t.Errorf("got %q, want %q", sql, want)
	}
}

// Scenario 6: insert(PostEntity{id: nil, title: "hi"}).
func TestEndToEnd_Insert(t *testing.T) {
	val := schema.NewValue(postEntity(), map[string]interface{}{
		"id":    nil,
		"title": "hi",
	})
	sql, err := InsertSQL(val)
	if err != nil {
		t.Fatalf("InsertSQL: %v", err)
	}
	want := "INSERT INTO post_entity (title)\nVALUES ('hi')\nRETURNING id"
	if sql != want {
		t.Errorf("got %q, want %q", sql, want)
	}
}

func TestEndToEnd_DeleteAll(t *testing.T) {
	q, err := builder.New().
		From(postEntity()).
		Where([]string{"p"}, ast.Lt(ast.Field("p", "id"), ast.Number(5)), "q.go", 1).
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	sql, err := DeleteAllSQL(q)
	if err != nil {
		t.Fatalf("DeleteAllSQL: %v", err)
	}
	want := "DELETE FROM post_entity AS p0\nWHERE (p0.id < 5)"
	if sql != want {
		t.Errorf("got %q, want %q", sql, want)
	}
}

func TestEndToEnd_InRange(t *testing.T) {
	q, err := builder.New().
		From(postEntity()).
		Where([]string{"p"}, ast.In(ast.Field("p", "id"), ast.RangeOf(ast.Number(1), ast.Number(3))), "q.go", 1).
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	sql, err := ToSQL(q)
	if err != nil {
		t.Fatalf("ToSQL: %v", err)
	}
	want := "SELECT p0.id, p0.title\nFROM post_entity AS p0\nWHERE (p0.id BETWEEN 1 AND 3)"
	if sql != want {
		t.Errorf("got %q, want %q", sql, want)
	}
}

func TestEndToEnd_RangeAsArray(t *testing.T) {
	q, err := builder.New().
		From(postEntity()).
		Select([]string{"p"}, ast.RangeOf(ast.Number(1), ast.Number(3)), "q.go", 1).
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	sql, err := ToSQL(q)
	if err != nil {
		t.Fatalf("ToSQL: %v", err)
	}
	want := "SELECT ARRAY[1, 2, 3]\nFROM post_entity AS p0"
	if sql != want {
		t.Errorf("got %q, want %q", sql, want)
	}
}

func TestUpdate_TypeMismatchRejected(t *testing.T) {
	q, err := builder.New().From(postEntity()).Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	_, err = UpdateAllSQL(q, []string{"p"}, map[string]ast.Expr{
		"title": ast.Number(1),
	})
	if err == nil {
		t.Fatal("expected a type mismatch error, got nil")
	}
}

func TestUpdate_IntFloatCollapseAccepted(t *testing.T) {
	floatField := schema.NewStaticEntity("metric_entity", "id",
		schema.Field("id", schema.TypeInteger),
		schema.Field("score", schema.TypeFloat),
	)
	q, err := builder.New().From(floatField).Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	_, err = UpdateAllSQL(q, []string{"m"}, map[string]ast.Expr{
		"score": ast.Number(3),
	})
	if err != nil {
		t.Fatalf("expected int literal accepted for float field, got: %v", err)
	}
}

// A whole-entity reference nested inside a tuple/list select body must
// validate and lower without raising, per §8's "for all Q accepted by the
// validator, the generator produces a string without raising" invariant.
func TestEndToEnd_SelectTupleWithNestedEntityRef(t *testing.T) {
	q, err := builder.New().
		From(postEntity()).
		From(commentEntity()).
		Select([]string{"p", "c"}, ast.TupleOf(ast.Var("p"), ast.Field("c", "id")), "q.go", 1).
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	sql, err := ToSQL(q)
	if err != nil {
		t.Fatalf("ToSQL: %v", err)
	}
	want := "SELECT p0.id, p0.title, c0.id\nFROM post_entity AS p0, comment_entity AS c0"
	if sql != want {
		t.Errorf("got %q, want %q", sql, want)
	}
}
