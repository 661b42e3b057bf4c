// Package symbol rewrites standalone SVG icons as reusable <symbol> elements.
package symbol

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/phobologic/iconsheet/internal/console"
	"github.com/phobologic/iconsheet/internal/markup"
	"github.com/phobologic/iconsheet/internal/model"
)

// ErrNoRoot is returned when a source has no <svg> element.
var ErrNoRoot = errors.New("no SVG tag found")

// strippedAttrs are meaningless or harmful on a nested symbol.
var strippedAttrs = []string{"xmlns", "xmlns:xlink", "version", "width", "height"}

// Extract parses one icon and returns its first <svg> element rewritten as a
// <symbol> with the given id. Every attribute other than the stripped ones is
// kept as is.
func Extract(src, id string) (string, error) {
	doc, err := markup.Parse(src)
	if err != nil {
		return "", err
	}

	svg := markup.FindFirst(doc, "svg")
	if svg == nil {
		return "", ErrNoRoot
	}

	markup.Rename(svg, "symbol")
	markup.SetAttr(svg, "id", id)
	for _, name := range strippedAttrs {
		markup.RemoveAttr(svg, name)
	}

	out, err := markup.Render(svg)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// ExtractAll reads and extracts every source under root concurrently. The
// result has one slot per source, in input order; a slot is empty when that
// source could not be read or had no <svg> element. Failures are logged and
// never abort the batch.
func ExtractAll(ctx context.Context, root string, sources []model.IconSource, log *console.Logger) []string {
	out := make([]string, len(sources))
	if len(sources) == 0 {
		return out
	}

	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers > len(sources) {
		numWorkers = len(sources)
	}

	work := make(chan int, len(sources))
	var wg sync.WaitGroup

	for range numWorkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range work {
				if ctx.Err() != nil {
					continue
				}
				out[idx] = extractOne(root, sources[idx], log)
			}
		}()
	}

	for i := range sources {
		work <- i
	}
	close(work)
	wg.Wait()

	return out
}

func extractOne(root string, src model.IconSource, log *console.Logger) string {
	data, err := os.ReadFile(filepath.Join(root, src.Path))
	if err != nil {
		log.Warn("failed to read %s: %v", src.Path, err)
		return ""
	}
	sym, err := Extract(string(data), src.Name)
	if errors.Is(err, ErrNoRoot) {
		log.Warn("No SVG tag found in %s", src.Path)
		return ""
	}
	if err != nil {
		log.Warn("%s: %v", src.Path, fmt.Errorf("extracting symbol: %w", err))
		return ""
	}
	return sym
}
