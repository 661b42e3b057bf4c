package plugin

import (
	"path/filepath"
	"strings"

	"github.com/phobologic/iconsheet/internal/config"
	"github.com/phobologic/iconsheet/internal/host"
)

// sheetPath is one job's sheet, absolute and relative to the job's cwd,
// both with forward slashes.
type sheetPath struct {
	abs string
	rel string
}

func newSheetPath(j config.Job) sheetPath {
	return sheetPath{
		abs: filepath.ToSlash(j.SheetPath()),
		rel: filepath.ToSlash(j.Rel(j.SheetPath())),
	}
}

// matches reports whether an emitted asset name refers to this sheet. Hosts
// name assets either absolutely or relative to some root, so a relative
// name matches when it ends with the sheet's cwd-relative path.
func (s sheetPath) matches(name string) bool {
	name = filepath.ToSlash(name)
	if name == s.abs || name == s.rel {
		return true
	}
	return strings.HasSuffix(name, "/"+s.rel)
}

// InlinePolicy is the host inline decision with every generated sheet
// excluded. It is built once, when the host config resolves, and is
// read-only afterwards.
type InlinePolicy struct {
	sheets   []sheetPath
	previous host.InlineLimit
}

// Decide never inlines a sprite sheet, since pages reference its symbols by
// URL and id. Other assets get the host's previous threshold or function,
// or Undecided when neither was configured.
func (p *InlinePolicy) Decide(name string, content []byte) host.Decision {
	for _, s := range p.sheets {
		if s.matches(name) {
			return host.NoInline
		}
	}
	if p.previous.Bytes > 0 {
		if int64(len(content)) <= p.previous.Bytes {
			return host.Inline
		}
		return host.NoInline
	}
	if p.previous.Func != nil {
		return p.previous.Func(name, content)
	}
	return host.Undecided
}
