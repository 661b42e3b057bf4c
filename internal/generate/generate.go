// Package generate runs one sprite sheet job end to end: scan, extract,
// assemble, format, write, and optionally emit the name listing.
package generate

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/phobologic/iconsheet/internal/config"
	"github.com/phobologic/iconsheet/internal/console"
	"github.com/phobologic/iconsheet/internal/discover"
	"github.com/phobologic/iconsheet/internal/format"
	"github.com/phobologic/iconsheet/internal/model"
	"github.com/phobologic/iconsheet/internal/sheet"
	"github.com/phobologic/iconsheet/internal/symbol"
	"github.com/phobologic/iconsheet/internal/typegen"
	"github.com/phobologic/iconsheet/internal/writer"
)

// Result summarises one run.
type Result struct {
	Icons        int  // sources discovered
	Symbols      int  // symbols in the sheet
	Skipped      bool // nothing was generated
	SheetWritten bool
	TypesWritten bool
}

// Generator runs jobs. The zero value is not usable; see New.
type Generator struct {
	Writer    *writer.Writer
	Formatter *format.Adapter
	Log       *console.Logger
}

// New returns a Generator writing to the real filesystem.
func New(log *console.Logger) *Generator {
	return &Generator{
		Writer:    writer.New(log),
		Formatter: &format.Adapter{Log: log},
		Log:       log,
	}
}

// Run generates the sheet (and listing) for a resolved job. The listing
// names every discovered icon, including ones left out of the sheet. Per-icon
// problems are logged and skipped; only filesystem failures on the outputs
// are returned.
func (g *Generator) Run(ctx context.Context, job config.Job) (Result, error) {
	var res Result

	sources, err := discover.Icons(job.InputDir, discover.Options{
		Exclude:   job.Exclude,
		Transform: job.Transform,
	})
	if err != nil {
		return res, fmt.Errorf("discovering icons: %w", err)
	}
	res.Icons = len(sources)
	if len(sources) == 0 {
		g.Log.Warn("No SVG files found in %s", g.Log.Red(job.Rel(job.InputDir)))
		res.Skipped = true
		return res, nil
	}

	sources, dupes := applyDuplicatePolicy(sources, job.Duplicates)
	if len(dupes) > 0 {
		g.Log.Error("duplicate icon names in %s: %s; nothing written",
			g.Log.Red(job.Rel(job.InputDir)), strings.Join(dupes, ", "))
		res.Skipped = true
		return res, nil
	}

	if err := g.Writer.EnsureDir(job.OutputDir); err != nil {
		return res, err
	}

	markup := symbol.ExtractAll(ctx, job.InputDir, sources, g.Log)
	if err := ctx.Err(); err != nil {
		return res, err
	}

	var sh model.Sheet
	for i, m := range markup {
		if m == "" {
			continue
		}
		sh.Symbols = append(sh.Symbols, model.Symbol{
			Name:   sources[i].Name,
			Source: sources[i].Path,
			Markup: m,
		})
	}
	res.Symbols = len(sh.Symbols)

	out := sheet.Assemble(sh.Markup())
	out = g.Formatter.Apply(ctx, job.Formatting(), format.KindMarkup, out)

	res.SheetWritten, err = g.Writer.WriteIfChanged(job.SheetPath(), out,
		fmt.Sprintf("Generated SVG spritesheet in %s", g.Log.Green(job.Rel(job.OutputDir))))
	if err != nil {
		return res, err
	}

	if !job.WithTypes {
		return res, nil
	}

	res.TypesWritten, err = g.writeTypes(ctx, job, model.Names(sources))
	return res, err
}

func (g *Generator) writeTypes(ctx context.Context, job config.Job, names []string) (bool, error) {
	path := job.TypesOutputFile
	kind := format.KindForPath(path)

	lang, tag := typegen.TypeScript, "TS"
	if kind == format.KindGo {
		lang, tag = typegen.Go, "Go"
	} else {
		kind = format.KindTypeScript
	}

	out := typegen.Generate(names, lang, typegen.PackageFor(path))
	out = g.Formatter.Apply(ctx, job.Formatting(), kind, out)

	if err := g.Writer.EnsureDir(filepath.Dir(path)); err != nil {
		return false, err
	}
	return g.Writer.WriteIfChanged(path, out,
		fmt.Sprintf("%s Generated icon types in %s", g.Log.Blue(tag), g.Log.Green(job.Rel(path))))
}

// applyDuplicatePolicy enforces policy over identifiers in scan order. It
// returns the (possibly renamed) sources and, under DuplicatesError, the
// identifiers that collided.
func applyDuplicatePolicy(sources []model.IconSource, policy model.DuplicatePolicy) ([]model.IconSource, []string) {
	if policy == "" || policy == model.DuplicatesKeep {
		return sources, nil
	}

	seen := make(map[string]int, len(sources))
	for _, s := range sources {
		seen[s.Name] = 0
	}

	out := make([]model.IconSource, len(sources))
	var dupes []string
	for i, s := range sources {
		count := seen[s.Name] + 1
		seen[s.Name] = count
		out[i] = s
		if count == 1 {
			continue
		}
		switch policy {
		case model.DuplicatesError:
			if count == 2 {
				dupes = append(dupes, s.Name)
			}
		case model.DuplicatesSuffix:
			out[i].Name = nextFree(seen, s.Name, count)
		}
	}
	return out, dupes
}

// nextFree returns name+n for the smallest n >= start not already in use,
// and reserves it.
func nextFree(seen map[string]int, name string, start int) string {
	for n := start; ; n++ {
		candidate := name + strconv.Itoa(n)
		if _, taken := seen[candidate]; !taken {
			seen[candidate] = 1
			return candidate
		}
	}
}
