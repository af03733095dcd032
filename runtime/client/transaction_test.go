package client

import (
	"database/sql"
	"testing"
)

func TestNewTxOptions_MapsIsolationLevels(t *testing.T) {
	cases := []struct {
		level IsolationLevel
		want  sql.IsolationLevel
	}{
		{ReadUncommitted, sql.LevelReadUncommitted},
		{ReadCommitted, sql.LevelReadCommitted},
		{RepeatableRead, sql.LevelRepeatableRead},
		{Serializable, sql.LevelSerializable},
	}
	for _, c := range cases {
		opts := NewTxOptions(c.level, false)
		if opts.Isolation != c.want {
			t.Errorf("level %v: got %v, want %v", c.level, opts.Isolation, c.want)
		}
		if opts.ReadOnly {
			t.Errorf("level %v: expected ReadOnly false", c.level)
		}
	}
}

func TestNewTxOptions_ReadOnlyPropagates(t *testing.T) {
	opts := NewTxOptions(ReadCommitted, true)
	if !opts.ReadOnly {
		t.Error("expected ReadOnly true")
	}
}
