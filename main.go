// iconsheet combines a directory of SVG icons into one sprite sheet and an
// optional listing of the icon names.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/phobologic/iconsheet/internal/config"
	"github.com/phobologic/iconsheet/internal/console"
	"github.com/phobologic/iconsheet/internal/host"
	"github.com/phobologic/iconsheet/internal/plugin"
)

var version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) > 0 {
		switch args[0] {
		case "init":
			return runInit(args[1:], stdout, stderr)
		case "inline":
			return runInline(args[1:], stdout, stderr)
		}
	}

	envCfg, err := config.ParseEnv()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("iconsheet", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		src         source
		watch       bool
		debug       bool
		showVersion bool
	)

	src.register(fs, envCfg)
	fs.StringVar(&src.input, "input", "", "icon directory for a one-off job (skips the config file)")
	fs.StringVar(&src.output, "output", "", "sprite sheet directory for a one-off job")
	fs.StringVar(&src.types, "types", "", "also write the icon name listing to this file (.ts or .go)")
	fs.StringVar(&src.formatter, "formatter", "", "formatter backend for every job (indent, goimports)")
	fs.BoolVar(&watch, "watch", false, "keep running and regenerate when icons change")
	fs.BoolVar(&debug, "debug", envCfg.Debug, "log watcher events")
	fs.BoolVar(&showVersion, "V", false, "show version and exit")
	fs.BoolVar(&showVersion, "version", false, "show version and exit")

	if err := fs.Parse(reorderArgs(args)); err != nil {
		return err
	}

	if showVersion {
		_, _ = fmt.Fprintf(stdout, "iconsheet %s\n", version)
		return nil
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}

	log := console.New(stderr, console.Options{NoColor: envCfg.NoColor, Debug: debug})

	file, cwd, err := src.load()
	if err != nil {
		return err
	}

	plugins, err := plugin.New(log, file.Jobs...)
	if err != nil {
		return err
	}

	runner := &host.Runner{
		Plugins: plugin.Host(plugins),
		Config: &host.Config{
			Root:  cwd,
			Build: host.BuildConfig{AssetsInlineLimit: host.InlineLimit{Bytes: file.Build.AssetsInlineLimit}},
		},
		Log:      log,
		Debounce: envCfg.Debounce,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runner.Start(ctx); err != nil {
		if !watch {
			return err
		}
		log.Error("%v", err)
	}
	if !watch {
		return nil
	}

	log.Info("Watching %s for changes", log.Blue(cwd))
	return runner.Watch(ctx)
}

// source is where the jobs for a run come from: a config file, or the
// one-off job described by flags.
type source struct {
	configPath string
	cwd        string

	input     string
	output    string
	types     string
	formatter string
}

func (s *source) register(fs *flag.FlagSet, envCfg config.Env) {
	fs.StringVar(&s.configPath, "config", envCfg.ConfigPath, "config file path, relative to -cwd")
	fs.StringVar(&s.cwd, "cwd", envCfg.Cwd, "directory job paths are resolved against")
}

// load returns the jobs and the absolute working directory.
func (s *source) load() (*config.File, string, error) {
	cwd := s.cwd
	if cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, "", fmt.Errorf("get working dir: %w", err)
		}
		cwd = wd
	}
	cwd, err := filepath.Abs(cwd)
	if err != nil {
		return nil, "", fmt.Errorf("resolving cwd: %w", err)
	}

	var file *config.File
	if s.input != "" || s.output != "" {
		if s.input == "" || s.output == "" {
			return nil, "", errors.New("-input and -output must be used together")
		}
		file = &config.File{Jobs: []config.Job{{
			InputDir:        s.input,
			OutputDir:       s.output,
			WithTypes:       s.types != "",
			TypesOutputFile: s.types,
			Cwd:             cwd,
		}}}
	} else {
		path := s.configPath
		if !filepath.IsAbs(path) {
			path = filepath.Join(cwd, path)
		}
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return nil, "", fmt.Errorf("no config file at %s (run `iconsheet init` to create one, or pass -input and -output)", path)
		}
		file, err = config.Load(path, cwd)
		if err != nil {
			return nil, "", err
		}
	}

	if s.formatter != "" {
		for i := range file.Jobs {
			file.Jobs[i].Formatter = s.formatter
		}
	}
	return file, cwd, nil
}

// flagsWithValue lists flags that take a value argument.
var flagsWithValue = map[string]bool{
	"-config": true, "--config": true,
	"-cwd": true, "--cwd": true,
	"-input": true, "--input": true,
	"-output": true, "--output": true,
	"-types": true, "--types": true,
	"-formatter": true, "--formatter": true,
	"-size": true, "--size": true,
}

// reorderArgs moves positional arguments after all flags so Go's flag package
// can parse them correctly (it stops at the first non-flag arg).
func reorderArgs(args []string) []string {
	var flags, positional []string
	for i := 0; i < len(args); i++ {
		if args[i] == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}
		if len(args[i]) > 0 && args[i][0] == '-' {
			flags = append(flags, args[i])
			if flagsWithValue[args[i]] && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		} else {
			positional = append(positional, args[i])
		}
	}
	return append(flags, positional...)
}
