package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// starterConfig is the config `iconsheet init` writes.
const starterConfig = `# iconsheet configuration.
#
# Each job combines the SVG files under input_dir into one sprite sheet at
# output_dir/file_name. Paths are relative to the directory iconsheet runs in.
jobs:
  - input_dir: icons
    output_dir: public/icons
    file_name: sprite.svg
    # Emit a listing of the icon names. A .go file gets a Go listing.
    with_types: true
    types_output_file: src/icons/types.ts
    # pascal (default), camel, kebab or none, plus an optional prefix.
    name_transform: pascal
    # keep (default), suffix or error.
    duplicates: keep
    # indent or goimports; leave empty to skip formatting. goimports only
    # formats Go listings (a .go types_output_file); it leaves the sheet and
    # TypeScript listings as generated.
    formatter: ""

build:
  # Assets up to this many bytes are inlined. Sprite sheets never are.
  assets_inline_limit: 4096
`

// runInit implements the `iconsheet init` subcommand, which writes a starter
// config file.
func runInit(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("iconsheet init", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var dryRun bool
	fs.BoolVar(&dryRun, "dry-run", false, "print the config instead of writing it")

	fs.Usage = func() {
		fmt.Fprintf(stderr, `Usage: iconsheet init [flags] [path]

Write a starter iconsheet config. An existing file is never overwritten.

path defaults to ./iconsheet.yaml.

Flags:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if dryRun {
		_, _ = fmt.Fprint(stdout, starterConfig)
		return nil
	}

	path := "iconsheet.yaml"
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", path, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(starterConfig), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	_, _ = fmt.Fprintf(stderr, "wrote starter config to %s\n", path)
	return nil
}
