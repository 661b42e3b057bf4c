// Package lang provides a language registry mapping file extensions to
// tree-sitter languages and their embedded layout queries.
package lang

import (
	"context"
	"embed"
	"fmt"
	"slices"
	"sort"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
)

//go:embed queries/*.scm
var queryFS embed.FS

// Capture names used by the layout queries.
const (
	CaptureOpen     = "open"
	CaptureClose    = "close"
	CaptureVerbatim = "verbatim"
)

// Language holds tree-sitter configuration for a supported language.
type Language struct {
	Name       string
	Extensions []string
	lang       *sitter.Language
	queryOnce  sync.Once
	query      *sitter.Query
	queryErr   error
}

// NewParser creates a fresh tree-sitter parser for this language.
// Each goroutine must use its own parser (not thread-safe).
func (l *Language) NewParser() *sitter.Parser {
	p := sitter.NewParser()
	p.SetLanguage(l.lang)
	return p
}

// GetLayoutQuery returns the compiled bracket/verbatim query (safe to share
// across goroutines).
func (l *Language) GetLayoutQuery() (*sitter.Query, error) {
	l.queryOnce.Do(func() {
		data, err := queryFS.ReadFile(fmt.Sprintf("queries/%s.scm", l.Name))
		if err != nil {
			l.queryErr = fmt.Errorf("reading query file: %w", err)
			return
		}
		q, err := sitter.NewQuery(data, l.lang)
		if err != nil {
			l.queryErr = fmt.Errorf("compiling query: %w", err)
			return
		}
		l.query = q
	})
	return l.query, l.queryErr
}

// Languages maps language names to their configuration.
// Populated by init() functions in per-language files.
var Languages = map[string]*Language{}

// ForExtension returns the name of the language whose grammar handles ext,
// or "" when none does.
func ForExtension(ext string) string {
	for name, l := range Languages {
		if slices.Contains(l.Extensions, ext) {
			return name
		}
	}
	return ""
}

// Span is a captured byte range.
type Span struct {
	Start uint32
	End   uint32
}

// Layout is what the layout query found in one source: bracket token offsets
// and the ranges whose text must not be touched.
type Layout struct {
	Opens    []uint32
	Closes   []uint32
	Verbatim []Span
}

// Scan parses source and runs the layout query over it. It fails when the
// source does not parse cleanly.
func (l *Language) Scan(ctx context.Context, parser *sitter.Parser, source []byte) (*Layout, error) {
	q, err := l.GetLayoutQuery()
	if err != nil {
		return nil, err
	}

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", l.Name, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, fmt.Errorf("%s source has syntax errors", l.Name)
	}

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(q, root)

	layout := &Layout{}
	for {
		match, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, c := range match.Captures {
			switch q.CaptureNameForId(c.Index) {
			case CaptureOpen:
				layout.Opens = append(layout.Opens, c.Node.StartByte())
			case CaptureClose:
				layout.Closes = append(layout.Closes, c.Node.StartByte())
			case CaptureVerbatim:
				layout.Verbatim = append(layout.Verbatim, Span{Start: c.Node.StartByte(), End: c.Node.EndByte()})
			}
		}
	}

	sortOffsets(layout.Opens)
	sortOffsets(layout.Closes)
	sort.Slice(layout.Verbatim, func(i, j int) bool {
		return layout.Verbatim[i].Start < layout.Verbatim[j].Start
	})
	return layout, nil
}

// InVerbatim reports whether offset lies strictly inside a verbatim span.
func (l *Layout) InVerbatim(offset uint32) bool {
	for _, s := range l.Verbatim {
		if offset > s.Start && offset < s.End {
			return true
		}
	}
	return false
}

func sortOffsets(offsets []uint32) {
	sort.Slice(offsets, func(i, j int) bool { return offsets[i] < offsets[j] })
}
