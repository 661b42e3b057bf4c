// Package format runs generated files through an optional formatter backend.
//
// Formatting is always best effort. A missing backend, an unreadable config
// file, or a backend that fails leaves the text as generated.
package format

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/phobologic/iconsheet/internal/console"
	"github.com/phobologic/iconsheet/internal/lang"
)

// Kind is the content kind of the text being formatted.
type Kind string

const (
	KindMarkup     Kind = "svg"
	KindTypeScript Kind = "typescript"
	KindGo         Kind = "go"
)

// KindForPath picks the content kind from a file name. Code kinds come from
// the grammar registry; an extension no grammar claims is TypeScript.
func KindForPath(path string) Kind {
	ext := filepath.Ext(path)
	if ext == ".svg" {
		return KindMarkup
	}
	if name := lang.ForExtension(ext); name != "" {
		return Kind(name)
	}
	return KindTypeScript
}

// Backend is one formatting implementation.
type Backend interface {
	Name() string
	// Supports reports whether the backend can format content of kind k.
	Supports(k Kind) bool
	Format(ctx context.Context, text string, k Kind, opts Options) (string, error)
}

var backends = map[string]Backend{}

func register(b Backend) {
	backends[b.Name()] = b
}

// Lookup returns the backend registered under name.
func Lookup(name string) (Backend, error) {
	b, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("unknown formatter %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return b, nil
}

// Names lists the registered backends, sorted.
func Names() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadOptions reads a JSON formatter config. A missing, unreadable or
// malformed file yields nil options, never an error.
func LoadOptions(path string) Options {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var opts Options
	if err := json.Unmarshal(data, &opts); err != nil {
		return nil
	}
	return opts
}

// Selection names a backend and its optional config file. The zero value
// selects no formatting.
type Selection struct {
	Backend    string
	ConfigPath string
}

// Adapter applies a Selection to generated text.
type Adapter struct {
	Log *console.Logger
}

// Apply formats text with the selected backend. It returns text unchanged
// when no backend is selected, when the backend does not support kind, or
// when formatting fails.
func (a *Adapter) Apply(ctx context.Context, sel Selection, kind Kind, text string) string {
	if sel.Backend == "" {
		return text
	}
	b, err := Lookup(sel.Backend)
	if err != nil {
		a.Log.Warn("%v; leaving output unformatted", err)
		return text
	}
	if !b.Supports(kind) {
		a.Log.Info("%s cannot format %s content yet; leaving it unformatted", b.Name(), kind)
		return text
	}

	out, err := b.Format(ctx, text, kind, LoadOptions(sel.ConfigPath))
	if err != nil {
		a.Log.Warn("%s: formatting %s failed: %v", b.Name(), kind, err)
		return text
	}
	return out
}
