// Package model defines core data structures for iconsheet.
package model

// IconSource is one discovered icon file. Sources are enumerated fresh on
// every generation run and never cached.
type IconSource struct {
	Path string // Relative to the input directory
	Name string // Identifier derived from the base name
}

// Names returns the identifier of every source, in order.
func Names(sources []IconSource) []string {
	names := make([]string, len(sources))
	for i := range sources {
		names[i] = sources[i].Name
	}
	return names
}

// Symbol is one icon rewritten as a reusable <symbol> element.
type Symbol struct {
	Name   string
	Source string
	Markup string
}

// Sheet is the set of symbols that make up one sprite sheet, in scan order.
type Sheet struct {
	Symbols []Symbol
}

// Markup returns the serialized symbols, in order.
func (s *Sheet) Markup() []string {
	out := make([]string, len(s.Symbols))
	for i := range s.Symbols {
		out[i] = s.Symbols[i].Markup
	}
	return out
}

// DuplicatePolicy controls what happens when two icons map to the same
// identifier.
type DuplicatePolicy string

const (
	// DuplicatesKeep passes duplicates through unchanged.
	DuplicatesKeep DuplicatePolicy = "keep"
	// DuplicatesSuffix appends a counter to the second and later occurrences.
	DuplicatesSuffix DuplicatePolicy = "suffix"
	// DuplicatesError skips the run and reports the collision.
	DuplicatesError DuplicatePolicy = "error"
)

// Valid reports whether p is a known policy. The empty policy is valid and
// means DuplicatesKeep.
func (p DuplicatePolicy) Valid() bool {
	switch p {
	case "", DuplicatesKeep, DuplicatesSuffix, DuplicatesError:
		return true
	}
	return false
}
