package ast

import "testing"

func TestClone_AppendingToCloneDoesNotAliasOriginal(t *testing.T) {
	q := &Query{}
	clone := q.Clone()
	clone.Froms = append(clone.Froms, nil)
	clone.Wheres = append(clone.Wheres, WhereClause{})
	if len(q.Froms) != 0 {
		t.Errorf("appending to clone mutated original Froms: %v", q.Froms)
	}
	if len(q.Wheres) != 0 {
		t.Errorf("appending to clone mutated original Wheres: %v", q.Wheres)
	}
}

func TestHelpers_ConstructExpectedShapes(t *testing.T) {
	if _, ok := Eq(Field("p", "id"), Number(1)).(BinaryOp); !ok {
		t.Error("Eq should build a BinaryOp")
	}
	if _, ok := Not(Bool(true)).(UnaryOp); !ok {
		t.Error("Not should build a UnaryOp")
	}
	if _, ok := RangeOf(Number(1), Number(5)).(Range); !ok {
		t.Error("RangeOf should build a Range")
	}
	tuple, ok := TupleOf(Number(1), Str("a")).(Tuple)
	if !ok {
		t.Fatal("TupleOf should build a Tuple")
	}
	if len(tuple.Elems) != 2 {
		t.Errorf("expected 2 elements, got %d", len(tuple.Elems))
	}
}
