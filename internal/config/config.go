// Package config loads generation jobs from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/phobologic/iconsheet/internal/format"
	"github.com/phobologic/iconsheet/internal/model"
	"github.com/phobologic/iconsheet/internal/naming"
)

// DefaultFileName is the sprite sheet name when a job sets none.
const DefaultFileName = "sprite.svg"

// DefaultTypesFile is the listing name, inside the output directory, when a
// job emits types without naming a file.
const DefaultTypesFile = "types.ts"

// ErrNoJobs is returned when a config file defines no jobs.
var ErrNoJobs = errors.New("no jobs configured")

// Job is one sprite sheet generation job.
type Job struct {
	InputDir        string                `yaml:"input_dir"`
	OutputDir       string                `yaml:"output_dir"`
	FileName        string                `yaml:"file_name"`
	WithTypes       bool                  `yaml:"with_types"`
	TypesOutputFile string                `yaml:"types_output_file"`
	NameTransform   string                `yaml:"name_transform"`
	NamePrefix      string                `yaml:"name_prefix"`
	Formatter       string                `yaml:"formatter"`
	FormatterConfig string                `yaml:"formatter_config"`
	Cwd             string                `yaml:"cwd"`
	Exclude         []string              `yaml:"exclude"`
	Duplicates      model.DuplicatePolicy `yaml:"duplicates"`

	// Transform, when set in code, replaces NameTransform and NamePrefix.
	Transform naming.Transform `yaml:"-"`
}

// Validate checks the fields a job cannot run without.
func (j *Job) Validate() error {
	if j.InputDir == "" {
		return errors.New("input_dir is required")
	}
	if j.OutputDir == "" {
		return errors.New("output_dir is required")
	}
	if j.Formatter != "" {
		if _, err := format.Lookup(j.Formatter); err != nil {
			return err
		}
	}
	if !j.Duplicates.Valid() {
		return fmt.Errorf("unknown duplicates policy %q", j.Duplicates)
	}
	if j.Transform == nil {
		if _, err := naming.ByName(j.NameTransform, j.NamePrefix); err != nil {
			return err
		}
	}
	return nil
}

// Resolve returns a copy of the job with defaults filled in and every path
// made absolute against Cwd (the process working directory when unset).
func (j Job) Resolve() (Job, error) {
	if err := j.Validate(); err != nil {
		return Job{}, err
	}

	if j.Cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Job{}, fmt.Errorf("get working dir: %w", err)
		}
		j.Cwd = wd
	}
	cwd, err := filepath.Abs(j.Cwd)
	if err != nil {
		return Job{}, fmt.Errorf("resolving cwd: %w", err)
	}
	j.Cwd = cwd

	if j.FileName == "" {
		j.FileName = DefaultFileName
	}
	if j.Duplicates == "" {
		j.Duplicates = model.DuplicatesKeep
	}

	j.InputDir = j.abs(j.InputDir)
	j.OutputDir = j.abs(j.OutputDir)
	if j.TypesOutputFile == "" {
		j.TypesOutputFile = filepath.Join(j.OutputDir, DefaultTypesFile)
	} else {
		j.TypesOutputFile = j.abs(j.TypesOutputFile)
	}
	if j.FormatterConfig != "" {
		j.FormatterConfig = j.abs(j.FormatterConfig)
	}

	if j.Transform == nil {
		j.Transform, _ = naming.ByName(j.NameTransform, j.NamePrefix)
	}
	return j, nil
}

func (j *Job) abs(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(j.Cwd, path)
}

// SheetPath is where the job writes its sprite sheet.
func (j *Job) SheetPath() string {
	return filepath.Join(j.OutputDir, j.FileName)
}

// Rel returns path relative to the job's Cwd for display, or path itself
// when it lies elsewhere.
func (j *Job) Rel(path string) string {
	rel, err := filepath.Rel(j.Cwd, path)
	if err != nil {
		return path
	}
	return rel
}

// Formatting returns the job's formatter selection.
func (j *Job) Formatting() format.Selection {
	return format.Selection{Backend: j.Formatter, ConfigPath: j.FormatterConfig}
}

// Build mirrors the host build options a config file may set.
type Build struct {
	// AssetsInlineLimit is the size, in bytes, under which the host inlines
	// emitted assets. Zero leaves the decision to the host.
	AssetsInlineLimit int64 `yaml:"assets_inline_limit"`
}

// File is a decoded config file. The document is either a single job, a
// list of jobs, or a mapping with "jobs" and "build" keys.
type File struct {
	Jobs  []Job
	Build Build
}

// UnmarshalYAML accepts each of the three document shapes.
func (f *File) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		return value.Decode(&f.Jobs)
	case yaml.MappingNode:
		if hasKey(value, "jobs") {
			var doc struct {
				Jobs  []Job `yaml:"jobs"`
				Build Build `yaml:"build"`
			}
			if err := value.Decode(&doc); err != nil {
				return err
			}
			f.Jobs, f.Build = doc.Jobs, doc.Build
			return nil
		}
		var job Job
		if err := value.Decode(&job); err != nil {
			return err
		}
		f.Jobs = []Job{job}
		return nil
	default:
		return fmt.Errorf("line %d: expected a job, a list of jobs, or a jobs mapping", value.Line)
	}
}

func hasKey(mapping *yaml.Node, key string) bool {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return true
		}
	}
	return false
}

// Parse decodes and validates a config document.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if len(f.Jobs) == 0 {
		return nil, ErrNoJobs
	}
	for i := range f.Jobs {
		if err := f.Jobs[i].Validate(); err != nil {
			return nil, fmt.Errorf("job %d: %w", i, err)
		}
	}
	return &f, nil
}

// Load reads a config file. Jobs without a cwd are anchored at cwd.
func Load(path, cwd string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	for i := range f.Jobs {
		if f.Jobs[i].Cwd == "" {
			f.Jobs[i].Cwd = cwd
		}
	}
	return f, nil
}

// Env holds settings read from the environment. Flags override them.
type Env struct {
	ConfigPath string        `env:"ICONSHEET_CONFIG"   envDefault:"iconsheet.yaml"`
	Cwd        string        `env:"ICONSHEET_CWD"`
	NoColor    bool          `env:"ICONSHEET_NO_COLOR"`
	Debug      bool          `env:"ICONSHEET_DEBUG"`
	Debounce   time.Duration `env:"ICONSHEET_DEBOUNCE" envDefault:"100ms"`
}

// ParseEnv loads Env from environment variables.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}
