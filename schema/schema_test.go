package schema

import "testing"

func TestNewStaticEntity_PrimaryKeyFirst(t *testing.T) {
	e := NewStaticEntity("post_entity", "id",
		Field("title", TypeString),
		Field("id", TypeInteger),
		Field("published", TypeBoolean),
	)
	names := e.FieldNames()
	want := []string{"id", "title", "published"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("position %d: got %q, want %q", i, names[i], want[i])
		}
	}
}

func TestNewStaticEntity_NoPrimaryKeyPreservesOrder(t *testing.T) {
	e := NewStaticEntity("log_entity", "",
		Field("message", TypeString),
		Field("level", TypeString),
	)
	if _, ok := e.PrimaryKey(); ok {
		t.Error("expected no primary key")
	}
	names := e.FieldNames()
	if names[0] != "message" || names[1] != "level" {
		t.Errorf("expected declaration order preserved, got %v", names)
	}
}

func TestFieldType_UnknownForUndeclaredField(t *testing.T) {
	e := NewStaticEntity("post_entity", "id", Field("id", TypeInteger))
	if ft := e.FieldType("nope"); ft != TypeUnknown {
		t.Errorf("got %v, want TypeUnknown", ft)
	}
}

func TestDataset_ReturnsTableName(t *testing.T) {
	e := NewStaticEntity("post_entity", "id", Field("id", TypeInteger))
	if e.Dataset() != "post_entity" {
		t.Errorf("got %q", e.Dataset())
	}
}

func TestStaticValue_GetPresence(t *testing.T) {
	e := NewStaticEntity("post_entity", "id", Field("id", TypeInteger), Field("title", TypeString))
	v := NewValue(e, map[string]interface{}{"id": 1})

	if val, ok := v.Get("id"); !ok || val != 1 {
		t.Errorf("got (%v, %v), want (1, true)", val, ok)
	}
	if _, ok := v.Get("title"); ok {
		t.Error("expected title to be absent")
	}
	if v.Schema().Dataset() != "post_entity" {
		t.Errorf("got %q", v.Schema().Dataset())
	}
}
