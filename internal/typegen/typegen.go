// Package typegen renders the icon name listing that application code
// imports for a statically checked set of valid icon names.
package typegen

import (
	"path/filepath"
	"strconv"
	"strings"
	"unicode"
)

// Language selects the listing's source language.
type Language string

const (
	TypeScript Language = "typescript"
	Go         Language = "go"
)

// Banner is the first line of a TypeScript listing.
const Banner = "// This file is generated by icon spritesheet generator"

// GoBanner marks a Go listing as generated for tooling.
const GoBanner = "// Code generated by iconsheet. DO NOT EDIT."

// PackageFor derives a Go package name from the directory holding path.
func PackageFor(path string) string {
	base := filepath.Base(filepath.Dir(path))
	var b strings.Builder
	for _, r := range strings.ToLower(base) {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	name := b.String()
	if name == "" || unicode.IsDigit(rune(name[0])) {
		return "icons"
	}
	return name
}

// Generate renders names, in order and without deduplication, as a listing
// in lang. pkg is used only for Go output.
func Generate(names []string, lang Language, pkg string) string {
	if lang == Go {
		return generateGo(names, pkg)
	}
	return generateTS(names)
}

func generateTS(names []string) string {
	lines := []string{
		Banner,
		"",
		"export const iconNames = [",
	}
	for _, name := range names {
		lines = append(lines, "  "+strconv.Quote(name)+",")
	}
	lines = append(lines,
		"] as const",
		"",
		"export type IconName = typeof iconNames[number]",
		"",
	)
	return strings.Join(lines, "\n")
}

func generateGo(names []string, pkg string) string {
	var b strings.Builder
	b.WriteString(GoBanner + "\n\n")
	b.WriteString("package " + pkg + "\n\n")
	b.WriteString("// IconName is the identifier of one icon in the sprite sheet.\n")
	b.WriteString("type IconName string\n\n")
	b.WriteString("// IconNames lists every icon in sheet order.\n")
	b.WriteString("var IconNames = []IconName{\n")
	for _, name := range names {
		b.WriteString("\t" + strconv.Quote(name) + ",\n")
	}
	b.WriteString("}\n\n")
	b.WriteString("// Valid reports whether n names an icon in the sprite sheet.\n")
	b.WriteString("func (n IconName) Valid() bool {\n")
	b.WriteString("\tfor _, name := range IconNames {\n")
	b.WriteString("\t\tif name == n {\n")
	b.WriteString("\t\t\treturn true\n")
	b.WriteString("\t\t}\n")
	b.WriteString("\t}\n")
	b.WriteString("\treturn false\n")
	b.WriteString("}\n")
	return b.String()
}
