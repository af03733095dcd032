package sqlgen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/relquery/relquery/queryerr"
)

// escapeString replaces `\` with `\\` and `'` with `''`, then wraps the
// result in single quotes.
func escapeString(s string) string {
	escaped := strings.ReplaceAll(s, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `'`, `''`)
	return "'" + escaped + "'"
}

// TODO(numbers): lexical parity with PostgreSQL's own number formatting
// (e.g. its float rendering rules) is not attempted here.
func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// lowerGoValue renders a raw Go value pulled from a schema.Value (used by
// the row-level INSERT/UPDATE forms, which work over entity values rather
// than AST literals) as a SQL literal.
func lowerGoValue(v interface{}) (string, error) {
	switch x := v.(type) {
	case nil:
		return "NULL", nil
	case bool:
		if x {
			return "TRUE", nil
		}
		return "FALSE", nil
	case string:
		return escapeString(x), nil
	case int:
		return strconv.Itoa(x), nil
	case int32:
		return strconv.FormatInt(int64(x), 10), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float32:
		return formatNumber(float64(x)), nil
	case float64:
		return formatNumber(x), nil
	default:
		return "", queryerr.New(fmt.Sprintf("internal error: unsupported row value type %T", v))
	}
}
