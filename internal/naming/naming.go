// Package naming maps icon file names to identifiers.
package naming

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Extension is the icon file extension stripped before naming.
const Extension = ".svg"

// Transform maps a base name (no directory, no extension) to an identifier.
type Transform func(base string) string

// PascalCase splits on hyphens and upper-cases the first rune of each
// segment: "arrow-left" becomes "ArrowLeft".
func PascalCase(base string) string {
	var b strings.Builder
	for _, word := range strings.Split(base, "-") {
		b.WriteString(upperFirst(word))
	}
	return b.String()
}

// CamelCase is PascalCase with the first rune lower-cased.
func CamelCase(base string) string {
	s := PascalCase(base)
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// Kebab keeps the base name as is; identifiers match the file names.
func Kebab(base string) string {
	return base
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Identifier derives the identifier for an icon at rel (a path relative to the
// input directory). The override fully replaces the default when non-nil.
func Identifier(rel string, override Transform) string {
	base := strings.TrimSuffix(path.Base(filepath.ToSlash(rel)), Extension)
	if override != nil {
		return override(base)
	}
	return PascalCase(base)
}

// ByName returns a built-in transform, optionally prefixing every identifier.
// The empty name selects the default.
func ByName(name, prefix string) (Transform, error) {
	var fn Transform
	switch name {
	case "", "pascal":
		fn = PascalCase
	case "camel":
		fn = CamelCase
	case "kebab", "none":
		fn = Kebab
	default:
		return nil, fmt.Errorf("unknown name transform %q", name)
	}
	if prefix == "" {
		return fn, nil
	}
	return func(base string) string {
		return prefix + fn(base)
	}, nil
}
