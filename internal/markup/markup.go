// Package markup wraps golang.org/x/net/html with the small tree API the
// sprite generator needs: parse, find by tag, edit attributes, render.
//
// Icons are parsed with the HTML5 algorithm, so an <svg> element switches
// the parser into foreign content and mixed-case names such as viewBox or
// linearGradient come back with their SVG spelling.
package markup

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Parse parses text into a mutable document tree.
func Parse(text string) (*html.Node, error) {
	doc, err := html.Parse(strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("parsing markup: %w", err)
	}
	return doc, nil
}

// FindFirst returns the first element named tag in document order, or nil.
func FindFirst(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := FindFirst(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// QualifiedName returns the attribute name as written in the source, with its
// namespace prefix (xmlns:xlink, xlink:href).
func QualifiedName(a html.Attribute) string {
	if a.Namespace == "" {
		return a.Key
	}
	return a.Namespace + ":" + a.Key
}

// Attr returns the value of the named attribute.
func Attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if QualifiedName(a) == name {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets the named attribute, replacing an existing value in place.
func SetAttr(n *html.Node, name, value string) {
	for i, a := range n.Attr {
		if QualifiedName(a) == name {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttr deletes every attribute with the given qualified name. Removing
// an absent attribute is a no-op.
func RemoveAttr(n *html.Node, name string) {
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		if QualifiedName(a) != name {
			kept = append(kept, a)
		}
	}
	n.Attr = kept
}

// Rename changes an element's tag name.
func Rename(n *html.Node, tag string) {
	n.Data = tag
	n.DataAtom = 0
}

// Render serializes n and its subtree.
func Render(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", fmt.Errorf("rendering markup: %w", err)
	}
	return buf.String(), nil
}
