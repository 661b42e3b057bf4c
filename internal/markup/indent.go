package markup

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Indent re-renders markup one element per line, nesting by unit. A leading
// XML declaration is kept verbatim. Whitespace-only text is dropped, and
// childless foreign (SVG) elements are written self-closing.
func Indent(text, unit string) (string, error) {
	prolog, body := splitProlog(text)

	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(body), context)
	if err != nil {
		return "", fmt.Errorf("parsing markup: %w", err)
	}

	var b strings.Builder
	if prolog != "" {
		b.WriteString(prolog)
		b.WriteByte('\n')
	}
	for _, n := range nodes {
		writeIndented(&b, n, unit, 0)
	}
	return b.String(), nil
}

func splitProlog(text string) (prolog, body string) {
	trimmed := strings.TrimLeft(text, " \t\r\n")
	if !strings.HasPrefix(trimmed, "<?xml") {
		return "", text
	}
	end := strings.Index(trimmed, "?>")
	if end < 0 {
		return "", text
	}
	return trimmed[:end+2], trimmed[end+2:]
}

func writeIndented(b *strings.Builder, n *html.Node, unit string, depth int) {
	pad := strings.Repeat(unit, depth)

	switch n.Type {
	case html.TextNode:
		if s := strings.TrimSpace(n.Data); s != "" {
			fmt.Fprintf(b, "%s%s\n", pad, html.EscapeString(s))
		}
		return
	case html.CommentNode:
		fmt.Fprintf(b, "%s<!--%s-->\n", pad, n.Data)
		return
	case html.DoctypeNode:
		fmt.Fprintf(b, "%s<!DOCTYPE %s>\n", pad, n.Data)
		return
	case html.ElementNode:
	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeIndented(b, c, unit, depth)
		}
		return
	}

	b.WriteString(pad)
	b.WriteByte('<')
	b.WriteString(n.Data)
	for _, a := range n.Attr {
		fmt.Fprintf(b, " %s=\"%s\"", QualifiedName(a), html.EscapeString(a.Val))
	}

	children := significantChildren(n)
	switch {
	case len(children) == 0 && n.Namespace != "":
		b.WriteString("/>\n")
	case len(children) == 0:
		fmt.Fprintf(b, "></%s>\n", n.Data)
	case len(children) == 1 && children[0].Type == html.TextNode:
		fmt.Fprintf(b, ">%s</%s>\n", html.EscapeString(strings.TrimSpace(children[0].Data)), n.Data)
	default:
		b.WriteString(">\n")
		for _, c := range children {
			writeIndented(b, c, unit, depth+1)
		}
		fmt.Fprintf(b, "%s</%s>\n", pad, n.Data)
	}
}

func significantChildren(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode && strings.TrimSpace(c.Data) == "" {
			continue
		}
		out = append(out, c)
	}
	return out
}
