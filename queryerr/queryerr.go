// Package queryerr defines the single error kind raised by the query core.
package queryerr

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// ClauseKind identifies which clause an error was raised from, for
// annotation purposes. The zero value means "not clause-scoped".
type ClauseKind string

const (
	ClauseFrom    ClauseKind = "from"
	ClauseWhere   ClauseKind = "where"
	ClauseSelect  ClauseKind = "select"
	ClauseOrderBy ClauseKind = "order_by"
	ClauseLimit   ClauseKind = "limit"
	ClauseOffset  ClauseKind = "offset"
	ClauseSet     ClauseKind = "set"
)

// Error is the core's single error kind, InvalidQuery. Every rejection the
// validator, type checker, or merger produces is one of these; category is
// only distinguished by Reason's text.
type Error struct {
	Reason string
	Clause ClauseKind // empty when not clause-scoped
	File   string
	Line   int
}

func New(reason string) *Error {
	return &Error{Reason: reason}
}

func (e *Error) Error() string {
	if e.Clause == "" {
		return e.Reason
	}
	if e.File == "" {
		return fmt.Sprintf("%s: %s", e.Clause, e.Reason)
	}
	return fmt.Sprintf("%s:%d: %s: %s", e.File, e.Line, e.Clause, e.Reason)
}

// WithClause returns a copy of e annotated with the clause kind and source
// coordinates of the clause that raised it. Validator entry points call this
// on the way out rather than mutating the original error, so a lower-level
// check can be reused from more than one clause kind.
func (e *Error) WithClause(kind ClauseKind, file string, line int) *Error {
	annotated := *e
	annotated.Clause = kind
	annotated.File = file
	annotated.Line = line
	return &annotated
}

// Wrap annotates err with clause metadata if it is an *Error, and returns it
// unchanged otherwise. Validator entry points call this instead of a dynamic
// rescue.
func Wrap(err error, kind ClauseKind, file string, line int) error {
	if err == nil {
		return nil
	}
	if qe, ok := err.(*Error); ok {
		return qe.WithClause(kind, file, line)
	}
	return err
}

// Fprint renders err to w with a colorized diagnostics prefix: red, bold
// "error:", file:line when present. Not part of the error kind's contract,
// a convenience for CLI/log consumers.
func Fprint(w io.Writer, err error) {
	qe, ok := err.(*Error)
	prefix := color.New(color.FgRed, color.Bold).Sprint("error:")
	if !ok {
		fmt.Fprintf(w, "%s %s\n", prefix, err.Error())
		return
	}
	if qe.File != "" {
		fmt.Fprintf(w, "%s %s:%d: %s\n", prefix, qe.File, qe.Line, qe.Reason)
		return
	}
	if qe.Clause != "" {
		fmt.Fprintf(w, "%s [%s] %s\n", prefix, qe.Clause, qe.Reason)
		return
	}
	fmt.Fprintf(w, "%s %s\n", prefix, qe.Reason)
}
