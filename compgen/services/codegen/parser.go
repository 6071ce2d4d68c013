// compgen/services/codegen/parser.go
package codegen

import (
	"strings"

	"compgen/compgen/sources/psql/models"
)

const fence = "```"

// Parse extracts the component code out of a free-form AI reply. It walks
// the text fence by fence: each ``` opens a block, the tag on the opening
// line decides the category, the next ``` closes it. Later blocks of the
// same category overwrite earlier ones, so the last jsx/javascript/tsx
// block and the last css block win. A reply with no usable blocks yields
// an empty snapshot, never an error.
func Parse(raw string) models.CodeSnapshot {
	var snap models.CodeSnapshot
	rest := raw
	for {
		open := strings.Index(rest, fence)
		if open < 0 {
			break
		}
		rest = rest[open+len(fence):]
		nl := strings.IndexByte(rest, '\n')
		if nl < 0 {
			break
		}
		lang := strings.ToLower(strings.TrimSpace(rest[:nl]))
		rest = rest[nl+1:]
		end := strings.Index(rest, fence)
		if end < 0 {
			break
		}
		body := strings.TrimSpace(rest[:end])
		rest = rest[end+len(fence):]
		switch lang {
		case "jsx", "javascript", "tsx":
			snap.JSX = body
		case "css":
			snap.CSS = body
		}
	}
	return snap
}
