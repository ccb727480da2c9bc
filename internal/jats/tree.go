// Package jats parses JATS-conformant XML into a navigable, order-
// preserving tree and extracts clean text from it (spec.md §4.5, C5).
// Matching is namespace-agnostic: only local element names are compared.
package jats

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/rajdeepmondaldotcom/pmcgrab/internal/retry"
)

// Item is one piece of a Node's mixed content: either character data or a
// child element, in document order.
type Item struct {
	Text string
	Elem *Node
}

// Node is a generic, namespace-agnostic XML element preserving element
// order and mixed text/element content, the representation spec.md §4.5
// requires the cleaner to operate on.
type Node struct {
	Name    string
	Attrs   map[string]string
	Content []Item
}

// Attr returns the value of an attribute by local name, or "".
func (n *Node) Attr(name string) string {
	if n == nil {
		return ""
	}
	return n.Attrs[name]
}

// Children returns the element children of n, in document order.
func (n *Node) Children() []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, it := range n.Content {
		if it.Elem != nil {
			out = append(out, it.Elem)
		}
	}
	return out
}

// Find returns the first descendant (depth-first, including n itself)
// with the given local name, or nil.
func (n *Node) Find(name string) *Node {
	if n == nil {
		return nil
	}
	if n.Name == name {
		return n
	}
	for _, c := range n.Children() {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every descendant (not including n itself) with the
// given local name, depth-first, document order.
func (n *Node) FindAll(name string) []*Node {
	var out []*Node
	n.walk(func(c *Node) {
		if c.Name == name {
			out = append(out, c)
		}
	})
	return out
}

// FindChild returns the first direct child with the given local name.
func (n *Node) FindChild(name string) *Node {
	for _, c := range n.Children() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// walk visits every descendant of n (not n itself) exactly once, document
// order, depth-first.
func (n *Node) walk(fn func(*Node)) {
	if n == nil {
		return
	}
	for _, c := range n.Children() {
		fn(c)
		c.walk(fn)
	}
}

// DirectText concatenates only the character-data items that are direct
// children of n (not from nested elements).
func (n *Node) DirectText() string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	for _, it := range n.Content {
		if it.Elem == nil {
			b.WriteString(it.Text)
		}
	}
	return b.String()
}

// InnerText concatenates all character data under n, recursively, the
// equivalent of lxml's itertext().
func (n *Node) InnerText() string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	var rec func(*Node)
	rec = func(node *Node) {
		for _, it := range node.Content {
			if it.Elem != nil {
				rec(it.Elem)
			} else {
				b.WriteString(it.Text)
			}
		}
	}
	rec(n)
	return b.String()
}

// htmlEntities supplements encoding/xml's built-in predefined entities
// with the common named XHTML entities JATS full text frequently embeds
// (e.g. via an internal DTD subset that encoding/xml does not process).
// xml.HTMLEntity from the standard library already covers the ISO-8859-1
// and symbol sets; this is passed to the Decoder so undeclared entities
// do not abort parsing (spec.md §4.5 "Entity decoding").
func htmlEntities() map[string]string {
	return xml.HTMLEntity
}

// localName strips any namespace prefix from an XML name, implementing
// the "namespace-agnostic" matching rule of spec.md §4.5.
func localName(n xml.Name) string {
	if i := strings.IndexByte(n.Local, ':'); i >= 0 {
		return n.Local[i+1:]
	}
	return n.Local
}

// Parse loads XML bytes into a Node tree. If multiple top-level article
// elements are present (an article-set), the first one is returned
// (spec.md §6: "the core uses the first article element if multiple are
// present"). Parse fails with a *retry.Error{Kind: ParseError} on
// malformed XML.
func Parse(data []byte) (*Node, error) {
	root, err := parse(data, "article")
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, retry.New(retry.KindParseError, fmt.Errorf("no <article> element found"))
	}
	return root, nil
}

// ParseAny loads XML bytes into a Node tree rooted at the first
// top-level element, regardless of its name. Used by internal/auxsvc to
// parse the non-JATS XML response shapes of the OA service and
// OAI-PMH (spec.md §4.10), which are not wrapped in an <article>.
func ParseAny(data []byte) (*Node, error) {
	root, err := parse(data, "")
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, retry.New(retry.KindParseError, fmt.Errorf("no root element found"))
	}
	return root, nil
}

// parse decodes data into a Node tree. If wantName is non-empty, the
// returned root is the first element (at any depth) with that local
// name; otherwise it is the outermost element.
func parse(data []byte, wantName string) (*Node, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = false
	dec.Entity = htmlEntities()
	dec.AutoClose = xml.HTMLAutoClose

	var root *Node
	var stack []*Node

	matches := func(name string) bool {
		if wantName == "" {
			return len(stack) == 0
		}
		return name == wantName
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, retry.New(retry.KindParseError, fmt.Errorf("parsing XML: %w", err))
		}

		switch t := tok.(type) {
		case xml.StartElement:
			node := &Node{Name: localName(t.Name), Attrs: map[string]string{}}
			for _, a := range t.Attr {
				node.Attrs[localName(a.Name)] = a.Value
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Content = append(parent.Content, Item{Elem: node})
			} else if root == nil && matches(node.Name) {
				root = node
			}
			stack = append(stack, node)

		case xml.EndElement:
			if len(stack) == 0 {
				continue
			}
			finished := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if root == nil && finished.Name == wantName {
				root = finished
			}

		case xml.CharData:
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Content = append(parent.Content, Item{Text: string(t)})
			}
		}
	}

	return root, nil
}
