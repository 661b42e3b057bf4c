// Package sheet assembles extracted symbols into one sprite sheet document.
package sheet

import "strings"

const (
	xmlDecl = `<?xml version="1.0" encoding="UTF-8"?>`
	// Zero width and height keep the sheet from reserving layout space when
	// it is inlined into a page.
	openRoot  = `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="0" height="0">`
	openDefs  = "<defs>"
	closeDefs = "</defs>"
	closeRoot = "</svg>"
)

// Assemble builds the sheet from serialized symbols. Empty entries (icons that
// failed extraction) are skipped; the rest keep their order, one per line.
func Assemble(symbols []string) string {
	lines := make([]string, 0, len(symbols)+5)
	lines = append(lines, xmlDecl, openRoot, openDefs)
	for _, s := range symbols {
		if s != "" {
			lines = append(lines, s)
		}
	}
	lines = append(lines, closeDefs, closeRoot)
	return strings.Join(lines, "\n")
}
