package format

import (
	"context"

	"golang.org/x/tools/imports"
)

func init() {
	register(GoImports{})
}

// GoImports formats Go source with goimports in format-only mode. It has no
// markup or TypeScript support; the adapter skips it for those kinds. With
// the default types.ts listing it therefore formats nothing. Use indent for
// TypeScript listings, or point types_output_file at a .go file.
type GoImports struct{}

func (GoImports) Name() string { return "goimports" }

func (GoImports) Supports(k Kind) bool { return k == KindGo }

func (GoImports) Format(_ context.Context, text string, _ Kind, opts Options) (string, error) {
	tabWidth := 8
	if n, ok := opts.Int("tabWidth"); ok && n > 0 {
		tabWidth = n
	}
	out, err := imports.Process("iconnames.go", []byte(text), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   tabWidth,
		FormatOnly: true,
	})
	if err != nil {
		return "", err
	}
	return string(out), nil
}
