// Package discover finds icon source files under an input directory.
package discover

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/phobologic/iconsheet/internal/model"
	"github.com/phobologic/iconsheet/internal/naming"
)

// IgnoreFile is read from the input root when present. Gitignore syntax.
const IgnoreFile = ".iconignore"

var skipDirs = map[string]struct{}{
	"node_modules": {},
	".git":         {},
	".hg":          {},
	".svn":         {},
}

// Options controls discovery.
type Options struct {
	// Exclude holds extra gitignore-style patterns, matched against paths
	// relative to the input root.
	Exclude []string
	// Transform derives identifiers. Nil selects naming.PascalCase.
	Transform naming.Transform
}

// Icons discovers icon files under root in walk order (lexical within each
// directory). A missing root yields no icons and no error.
func Icons(root string, opts Options) ([]model.IconSource, error) {
	info, err := os.Stat(root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &fs.PathError{Op: "discover", Path: root, Err: errors.New("not a directory")}
	}

	gi := loadIgnore(root, opts.Exclude)

	var results []model.IconSource

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // skip errors
		}

		name := d.Name()

		if d.IsDir() {
			if path == root {
				return nil
			}
			if _, skip := skipDirs[name]; skip || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(name, ".") || !strings.HasSuffix(name, naming.Extension) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}

		if gi != nil && gi.MatchesPath(filepath.ToSlash(rel)) {
			return nil
		}

		results = append(results, model.IconSource{
			Path: rel,
			Name: naming.Identifier(rel, opts.Transform),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return results, nil
}

func loadIgnore(root string, extra []string) *ignore.GitIgnore {
	var lines []string
	if data, err := os.ReadFile(filepath.Join(root, IgnoreFile)); err == nil {
		lines = append(lines, strings.Split(string(data), "\n")...)
	}
	lines = append(lines, extra...)
	if len(lines) == 0 {
		return nil
	}
	return ignore.CompileIgnoreLines(lines...)
}
