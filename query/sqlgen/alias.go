package sqlgen

import (
	"fmt"

	"github.com/relquery/relquery/query/ast"
	"github.com/relquery/relquery/schema"
)

// AssignAliases generates unique aliases for froms, positionally: for each
// entity, take the first character of its table name and append the
// smallest non-negative integer that makes the alias unique across
// already-assigned aliases. It is a plain accumulator fold, no recursion,
// no shared state beyond the running counts map.
func AssignAliases(froms []schema.Entity) []string {
	counts := make(map[string]int, len(froms))
	aliases := make([]string, len(froms))
	for i, e := range froms {
		first := firstChar(e.Dataset())
		n := counts[first]
		aliases[i] = fmt.Sprintf("%s%d", first, n)
		counts[first] = n + 1
	}
	return aliases
}

func firstChar(s string) string {
	if s == "" {
		return "t"
	}
	for _, r := range s {
		return string(r)
	}
	return "t"
}

// resolveEnv builds the alias and entity environments for one clause by
// zipping its binding positionally with froms/aliases, building an explicit
// environment once per clause. Wildcard "_" is never bound.
func resolveEnv(meta ast.Meta, froms []schema.Entity, aliases []string) (aliasEnv map[string]string, entityEnv map[string]schema.Entity) {
	aliasEnv = make(map[string]string, len(meta.Binding))
	entityEnv = make(map[string]schema.Entity, len(meta.Binding))
	for i, name := range meta.Binding {
		if name == "_" || i >= len(froms) {
			continue
		}
		aliasEnv[name] = aliases[i]
		entityEnv[name] = froms[i]
	}
	return aliasEnv, entityEnv
}
