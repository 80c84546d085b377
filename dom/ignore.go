package dom

import (
	"fmt"
	"strings"

	"github.com/antchfx/xpath"
	"golang.org/x/net/html"
)

// IgnoreFilter marks elements selected by an XPath expression, together
// with their descendants, as ignored. A nil filter ignores nothing.
type IgnoreFilter struct {
	matched map[*html.Node]struct{}
}

// CompileIgnoreFilter evaluates expr against the anchoring root, for
// example "//*[@data-anchorage-ignore]". An empty expression yields a nil
// filter.
func (d *Document) CompileIgnoreFilter(expr string) (*IgnoreFilter, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, nil
	}

	compiled, err := xpath.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadXPath, err)
	}

	f := &IgnoreFilter{matched: make(map[*html.Node]struct{})}
	iter := compiled.Select(newNavigator(d.root))
	for iter.MoveNext() {
		nav, ok := iter.Current().(*navigator)
		if !ok || nav.attr != -1 {
			continue
		}
		if nav.curr.Type == html.ElementNode {
			f.matched[nav.curr] = struct{}{}
		}
	}
	return f, nil
}

// Ignored reports whether n or any of its ancestors was selected.
func (f *IgnoreFilter) Ignored(n *html.Node) bool {
	if f == nil {
		return false
	}
	for c := n; c != nil; c = c.Parent {
		if _, ok := f.matched[c]; ok {
			return true
		}
	}
	return false
}

// Container returns the nearest element at or above n that is not ignored,
// without leaving the anchoring root. Text nodes start the search at their
// parent element.
func (d *Document) Container(n *html.Node, f *IgnoreFilter) (*html.Node, error) {
	if n == nil || !d.Contains(n) {
		return nil, ErrForeignNode
	}
	c := n
	if c.Type == html.TextNode && c != d.root {
		c = c.Parent
	}
	for {
		if !f.Ignored(c) {
			return c, nil
		}
		if c == d.root {
			return nil, ErrIgnored
		}
		c = c.Parent
	}
}
