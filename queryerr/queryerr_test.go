package queryerr

import (
	"bytes"
	"errors"
	"testing"
)

func TestError_BareReason(t *testing.T) {
	err := New("something went wrong")
	if err.Error() != "something went wrong" {
		t.Errorf("got %q", err.Error())
	}
}

func TestError_ClauseWithoutLocation(t *testing.T) {
	err := New("bad shape").WithClause(ClauseWhere, "", 0)
	want := "where: bad shape"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}

func TestError_ClauseWithLocation(t *testing.T) {
	err := New("bad shape").WithClause(ClauseSelect, "q.go", 12)
	want := "q.go:12: select: bad shape"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}

func TestWrap_AnnotatesQueryErrOnly(t *testing.T) {
	wrapped := Wrap(New("bad"), ClauseWhere, "q.go", 3)
	qe, ok := wrapped.(*Error)
	if !ok {
		t.Fatal("expected Wrap to return a *Error")
	}
	if qe.Clause != ClauseWhere || qe.File != "q.go" || qe.Line != 3 {
		t.Errorf("unexpected annotation: %+v", qe)
	}

	other := errors.New("not ours")
	if Wrap(other, ClauseWhere, "q.go", 3) != other {
		t.Error("Wrap should pass through non-*Error values unchanged")
	}

	if Wrap(nil, ClauseWhere, "q.go", 3) != nil {
		t.Error("Wrap(nil, ...) should return nil")
	}
}

func TestWrap_DoesNotMutateOriginal(t *testing.T) {
	original := New("bad")
	_ = Wrap(original, ClauseWhere, "q.go", 3)
	if original.Clause != "" {
		t.Error("Wrap must not mutate the original error")
	}
}

func TestFprint_PlainErrorFallback(t *testing.T) {
	var buf bytes.Buffer
	Fprint(&buf, errors.New("plain"))
	if !bytes.Contains(buf.Bytes(), []byte("plain")) {
		t.Errorf("expected output to contain the message, got %q", buf.String())
	}
}

func TestFprint_QueryErrorWithLocation(t *testing.T) {
	var buf bytes.Buffer
	Fprint(&buf, New("bad").WithClause(ClauseWhere, "q.go", 7))
	out := buf.String()
	if !bytes.Contains([]byte(out), []byte("q.go:7")) {
		t.Errorf("expected output to contain file:line, got %q", out)
	}
	if !bytes.Contains([]byte(out), []byte("bad")) {
		t.Errorf("expected output to contain the reason, got %q", out)
	}
}
