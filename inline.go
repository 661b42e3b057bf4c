package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/phobologic/iconsheet/internal/config"
	"github.com/phobologic/iconsheet/internal/console"
	"github.com/phobologic/iconsheet/internal/host"
	"github.com/phobologic/iconsheet/internal/plugin"
)

// runInline implements the `iconsheet inline` subcommand: it installs the
// inline policy for the configured jobs and prints its decision for one
// asset.
func runInline(args []string, stdout, stderr io.Writer) error {
	envCfg, err := config.ParseEnv()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("iconsheet inline", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		src  source
		size int64
	)
	src.register(fs, envCfg)
	fs.Int64Var(&size, "size", 0, "host inline threshold in bytes (overrides build.assets_inline_limit)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, `Usage: iconsheet inline [flags] <asset>

Print whether the host would inline asset: inline, no-inline or undecided.
The asset's size is read from disk when it exists.

Flags:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(reorderArgs(args)); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("expected exactly one asset")
	}
	asset := fs.Arg(0)

	file, cwd, err := src.load()
	if err != nil {
		return err
	}

	log := console.New(stderr, console.Options{NoColor: envCfg.NoColor})
	plugins, err := plugin.New(log, file.Jobs...)
	if err != nil {
		return err
	}

	limit := file.Build.AssetsInlineLimit
	if size > 0 {
		limit = size
	}
	cfg := &host.Config{
		Root:  cwd,
		Build: host.BuildConfig{AssetsInlineLimit: host.InlineLimit{Bytes: limit}},
	}
	for _, p := range plugins {
		p.ConfigResolved(cfg)
	}

	path := asset
	if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}
	content, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("reading %s: %w", asset, err)
	}

	_, _ = fmt.Fprintln(stdout, cfg.Build.AssetsInlineLimit.Decide(filepath.Clean(asset), content))
	return nil
}
