// Package plugin exposes sprite sheet jobs as host build plugins.
package plugin

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/phobologic/iconsheet/internal/config"
	"github.com/phobologic/iconsheet/internal/console"
	"github.com/phobologic/iconsheet/internal/generate"
	"github.com/phobologic/iconsheet/internal/host"
	"github.com/phobologic/iconsheet/internal/naming"
)

// BaseName is the name of the first plugin; later ones append their index.
const BaseName = "icon-spritesheet-generator"

// Plugin regenerates one job's sprite sheet on build start and on relevant
// file changes.
type Plugin struct {
	index  int
	job    config.Job
	gen    *generate.Generator
	log    *console.Logger
	shared *shared
	gate   runGate
}

var _ host.Plugin = (*Plugin)(nil)

// shared is the state every plugin from one New call sees.
type shared struct {
	sheets  []sheetPath
	install sync.Once
	policy  *InlinePolicy
}

// New resolves jobs and returns one plugin per job.
func New(log *console.Logger, jobs ...config.Job) ([]*Plugin, error) {
	if len(jobs) == 0 {
		return nil, config.ErrNoJobs
	}

	sh := &shared{}
	plugins := make([]*Plugin, 0, len(jobs))
	for i, j := range jobs {
		resolved, err := j.Resolve()
		if err != nil {
			return nil, fmt.Errorf("job %d: %w", i, err)
		}
		sh.sheets = append(sh.sheets, newSheetPath(resolved))
		plugins = append(plugins, &Plugin{
			index:  i,
			job:    resolved,
			gen:    generate.New(log),
			log:    log,
			shared: sh,
		})
	}
	return plugins, nil
}

// Host converts plugins to the host interface.
func Host(plugins []*Plugin) []host.Plugin {
	out := make([]host.Plugin, len(plugins))
	for i, p := range plugins {
		out[i] = p
	}
	return out
}

// Name is unique per job within one New call.
func (p *Plugin) Name() string {
	if p.index == 0 {
		return BaseName
	}
	return BaseName + strconv.Itoa(p.index)
}

// Job returns the resolved job.
func (p *Plugin) Job() config.Job {
	return p.job
}

// ConfigResolved installs the inline policy on the host config. Only the
// first plugin does this, and only once, so the policy covers every job's
// sheet without being wrapped repeatedly.
func (p *Plugin) ConfigResolved(cfg *host.Config) {
	if p.index != 0 {
		return
	}
	p.shared.install.Do(func() {
		p.shared.policy = &InlinePolicy{
			sheets:   p.shared.sheets,
			previous: cfg.Build.AssetsInlineLimit,
		}
		cfg.Build.AssetsInlineLimit = host.InlineLimit{Func: p.shared.policy.Decide}
	})
}

// Policy returns the installed inline policy, or nil before ConfigResolved.
func (p *Plugin) Policy() *InlinePolicy {
	return p.shared.policy
}

// BuildStart always regenerates.
func (p *Plugin) BuildStart(ctx context.Context) error {
	return p.regenerate(ctx)
}

// WatchChange regenerates when an icon is added to or removed from the
// input directory.
func (p *Plugin) WatchChange(ctx context.Context, path string, ev host.Event) error {
	if ev != host.Create && ev != host.Delete {
		return nil
	}
	if !p.watches(path) {
		return nil
	}
	return p.regenerate(ctx)
}

// HandleHotUpdate regenerates on any change to an icon in the input
// directory.
func (p *Plugin) HandleHotUpdate(ctx context.Context, path string) error {
	if !p.watches(path) {
		return nil
	}
	return p.regenerate(ctx)
}

// watches reports whether path is an icon inside the job's input directory.
func (p *Plugin) watches(path string) bool {
	if !strings.HasSuffix(path, naming.Extension) {
		return false
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(p.job.Cwd, path)
	}
	rel, err := filepath.Rel(p.job.InputDir, filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func (p *Plugin) regenerate(ctx context.Context) error {
	return p.gate.Do(ctx, func(ctx context.Context) error {
		_, err := p.gen.Run(ctx, p.job)
		if err != nil {
			return fmt.Errorf("generating %s: %w", p.job.Rel(p.job.SheetPath()), err)
		}
		return nil
	})
}
