// Package host defines the build-tool lifecycle that generation plugins hook
// into, and a standalone Runner that drives it from the command line.
package host

import "context"

// Event is the kind of a watched file change.
type Event string

const (
	Create Event = "create"
	Update Event = "update"
	Delete Event = "delete"
)

// Decision is the answer to "should this emitted asset be inlined".
type Decision int

const (
	// Undecided leaves the choice to the host's built-in behaviour.
	Undecided Decision = iota
	Inline
	NoInline
)

func (d Decision) String() string {
	switch d {
	case Inline:
		return "inline"
	case NoInline:
		return "no-inline"
	default:
		return "undecided"
	}
}

// InlineFunc decides whether the asset name with the given content should
// be inlined.
type InlineFunc func(name string, content []byte) Decision

// InlineLimit is the host's asset-inlining policy: a byte threshold, a
// custom function, or neither.
type InlineLimit struct {
	Bytes int64
	Func  InlineFunc
}

// Decide applies the policy. A custom function takes precedence over the
// threshold; with neither set the result is Undecided.
func (l InlineLimit) Decide(name string, content []byte) Decision {
	if l.Func != nil {
		return l.Func(name, content)
	}
	if l.Bytes > 0 {
		if int64(len(content)) <= l.Bytes {
			return Inline
		}
		return NoInline
	}
	return Undecided
}

// BuildConfig is the build section of the resolved host config.
type BuildConfig struct {
	AssetsInlineLimit InlineLimit
}

// Config is the resolved host config handed to every plugin once.
type Config struct {
	Root  string
	Build BuildConfig
}

// Plugin is a build lifecycle participant.
type Plugin interface {
	Name() string
	// ConfigResolved runs once, before the build starts. Plugins may adjust
	// cfg in place.
	ConfigResolved(cfg *Config)
	BuildStart(ctx context.Context) error
	// WatchChange runs for every watched file event.
	WatchChange(ctx context.Context, path string, ev Event) error
	// HandleHotUpdate runs when the dev server is about to hot-update path.
	HandleHotUpdate(ctx context.Context, path string) error
}
