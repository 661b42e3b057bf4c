package host

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var skipWatchDirs = map[string]struct{}{
	"node_modules": {},
	".git":         {},
	".hg":          {},
	".svn":         {},
}

func skipDir(name string) bool {
	_, skip := skipWatchDirs[name]
	return skip || strings.HasPrefix(name, ".")
}

// watchList is the part of *fsnotify.Watcher the tree needs.
type watchList interface {
	Add(path string) error
	Remove(path string) error
}

// change is one event for one path.
type change struct {
	path string
	ev   Event
}

// tree remembers the directories being watched and the files seen under
// them. The notifier only reports a directory when it is moved or removed,
// so the tree supplies the files that went with it.
type tree struct {
	w     watchList
	dirs  map[string]struct{}
	files map[string]struct{}
}

func newTree(w watchList) *tree {
	return &tree{
		w:     w,
		dirs:  make(map[string]struct{}),
		files: make(map[string]struct{}),
	}
}

// add watches root and every directory below it, and returns the files
// found that were not known before.
func (t *tree) add(root string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip errors
		}
		if !d.IsDir() {
			if _, known := t.files[path]; !known {
				t.files[path] = struct{}{}
				found = append(found, path)
			}
			return nil
		}
		if path != root && skipDir(d.Name()) {
			return filepath.SkipDir
		}
		if err := t.w.Add(path); err != nil {
			return err
		}
		t.dirs[path] = struct{}{}
		return nil
	})
	return found, err
}

// apply records one notification and returns the file events it implies.
func (t *tree) apply(path string, ev Event) ([]change, error) {
	switch ev {
	case Create:
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			t.files[path] = struct{}{}
			return []change{{path, Create}}, nil
		}
		if skipDir(filepath.Base(path)) {
			return nil, nil
		}
		found, err := t.add(path)
		changes := make([]change, len(found))
		for i, f := range found {
			changes[i] = change{f, Create}
		}
		return changes, err

	case Delete:
		if _, ok := t.files[path]; ok {
			delete(t.files, path)
			return []change{{path, Delete}}, nil
		}
		return t.remove(path), nil
	}
	return []change{{path, ev}}, nil
}

// remove forgets a directory and reports a Delete for every file that was
// known below it. An unknown path is passed through as a single Delete.
func (t *tree) remove(dir string) []change {
	prefix := dir + string(filepath.Separator)

	var gone []string
	for f := range t.files {
		if strings.HasPrefix(f, prefix) {
			gone = append(gone, f)
			delete(t.files, f)
		}
	}
	_, watched := t.dirs[dir]
	for d := range t.dirs {
		if d == dir || strings.HasPrefix(d, prefix) {
			_ = t.w.Remove(d) // the notifier may already have dropped it
			delete(t.dirs, d)
		}
	}

	if len(gone) == 0 && !watched {
		return []change{{dir, Delete}}
	}
	sort.Strings(gone)
	changes := make([]change, len(gone))
	for i, f := range gone {
		changes[i] = change{f, Delete}
	}
	return changes
}
