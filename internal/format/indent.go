package format

import (
	"context"
	"fmt"
	"strings"

	"github.com/phobologic/iconsheet/internal/lang"
	"github.com/phobologic/iconsheet/internal/markup"
)

func init() {
	register(Indent{})
}

// Indent re-indents markup by element nesting and code by bracket depth.
// Code is parsed with tree-sitter first; text inside strings and comments
// is never touched.
type Indent struct{}

func (Indent) Name() string { return "indent" }

func (Indent) Supports(k Kind) bool {
	switch k {
	case KindMarkup, KindTypeScript, KindGo:
		return true
	}
	return false
}

func (Indent) Format(ctx context.Context, text string, k Kind, opts Options) (string, error) {
	if k == KindMarkup {
		return markup.Indent(text, opts.indentUnit("  "))
	}

	l, ok := lang.Languages[string(k)]
	if !ok {
		return "", fmt.Errorf("no grammar for %s", k)
	}
	def := "  "
	if k == KindGo {
		def = "\t"
	}
	return reindent(ctx, l, text, opts.indentUnit(def))
}

func reindent(ctx context.Context, l *lang.Language, text, unit string) (string, error) {
	layout, err := l.Scan(ctx, l.NewParser(), []byte(text))
	if err != nil {
		return "", err
	}
	opens := outsideVerbatim(layout, layout.Opens)
	closes := outsideVerbatim(layout, layout.Closes)

	var b strings.Builder
	var oi, ci, depth int
	offset := 0

	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			continue
		}
		start := offset
		offset += len(line)

		if layout.InVerbatim(uint32(start)) {
			b.WriteString(line)
			continue
		}

		body := strings.TrimSuffix(line, "\n")
		content := strings.TrimRight(strings.TrimLeft(body, " \t"), " \t\r")
		first := uint32(start + len(body) - len(strings.TrimLeft(body, " \t")))

		for oi < len(opens) && opens[oi] < first {
			depth++
			oi++
		}
		for ci < len(closes) && closes[ci] < first {
			depth--
			ci++
		}

		d := depth
		if ci < len(closes) && closes[ci] == first {
			d--
		}
		if d < 0 {
			d = 0
		}

		if content != "" {
			b.WriteString(strings.Repeat(unit, d))
			b.WriteString(content)
		}
		if strings.HasSuffix(line, "\n") {
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}

func outsideVerbatim(layout *lang.Layout, offsets []uint32) []uint32 {
	out := offsets[:0:0]
	for _, off := range offsets {
		if !layout.InVerbatim(off) {
			out = append(out, off)
		}
	}
	return out
}
