package enrich

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	jsonBlock     = regexp.MustCompile(`\{[\s\S]*\}`)
	trailingComma = regexp.MustCompile(`,\s*([}\]])`)
	bareKey       = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`)
	smartQuotes   = strings.NewReplacer(
		"“", `"`, "”", `"`,
		"‘", "'", "’", "'",
	)
)

// ExtractJSON pulls an attribute object out of a model response. Attempts
// run in order: the whole text as JSON, then the outermost braced block,
// then that block after repair. Anything else yields an empty map, never
// nil and never an error, so a garbage response degrades to "no attributes
// extracted" instead of failing the row.
func ExtractJSON(raw string) map[string]any {
	if m, ok := tryUnmarshal(raw); ok {
		return m
	}
	if block := jsonBlock.FindString(raw); block != "" {
		if m, ok := tryUnmarshal(block); ok {
			return m
		}
		if m, ok := tryUnmarshal(repair(block)); ok {
			return m
		}
	}
	return map[string]any{}
}

func tryUnmarshal(s string) (map[string]any, bool) {
	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err != nil || m == nil {
		return nil, false
	}
	return m, true
}

// repair fixes the JSON mistakes models actually make: smart or single
// quotes, unquoted keys, and trailing commas.
func repair(s string) string {
	s = smartQuotes.Replace(s)
	s = strings.ReplaceAll(s, "'", `"`)
	s = bareKey.ReplaceAllString(s, `${1}"${2}":`)
	s = trailingComma.ReplaceAllString(s, "${1}")
	return s
}
