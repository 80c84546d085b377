package dom

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/antchfx/xpath"
	"golang.org/x/net/html"
)

// NodeFromXPath evaluates an XPath expression relative to the anchoring root
// and returns the first element or text node it selects. The empty path and
// "/" select the root itself.
func (d *Document) NodeFromXPath(path string) (*html.Node, error) {
	p := strings.TrimSpace(path)
	if p == "" || p == "/" {
		return d.root, nil
	}
	return evaluate(d.root, strings.TrimPrefix(p, "/"))
}

func evaluate(root *html.Node, expr string) (*html.Node, error) {
	compiled, err := xpath.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadXPath, err)
	}

	iter := compiled.Select(newNavigator(root))
	if !iter.MoveNext() {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, expr)
	}
	nav, ok := iter.Current().(*navigator)
	if !ok || nav.attr != -1 {
		return nil, fmt.Errorf("%w: %s does not select a node", ErrBadXPath, expr)
	}
	switch nav.curr.Type {
	case html.ElementNode, html.TextNode, html.DocumentNode:
		return nav.curr, nil
	}
	return nil, fmt.Errorf("%w: %s does not select an element or text node", ErrBadXPath, expr)
}

// XPathFromNode returns the path of n relative to the anchoring root, such
// as "/section[1]/p[2]" or "/p[1]/text()[1]". The root's path is "".
func (d *Document) XPathFromNode(n *html.Node) (string, error) {
	var segments []string
	for c := n; c != d.root; c = c.Parent {
		if c == nil {
			return "", ErrForeignNode
		}
		name := nodeName(c)
		if name == "" {
			return "", fmt.Errorf("%w: unsupported node type %d", ErrBadXPath, c.Type)
		}
		segments = append(segments, "/"+name+"["+strconv.Itoa(nodePosition(c))+"]")
	}

	var b strings.Builder
	for i := len(segments) - 1; i >= 0; i-- {
		b.WriteString(segments[i])
	}
	return b.String(), nil
}

func nodeName(n *html.Node) string {
	switch n.Type {
	case html.ElementNode:
		// The parser keeps foreign element names such as SVG textPath in
		// camel case, and XPath name tests are case sensitive.
		return n.Data
	case html.TextNode:
		return "text()"
	case html.CommentNode:
		return "comment()"
	}
	return ""
}

// nodePosition returns the 1-based index of n among siblings with the same
// node name.
func nodePosition(n *html.Node) int {
	name := nodeName(n)
	pos := 1
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if nodeName(s) == name {
			pos++
		}
	}
	return pos
}

// navigator implements xpath.NodeNavigator over an *html.Node tree, confined
// to the subtree below root.
type navigator struct {
	root, curr *html.Node
	attr       int
}

func newNavigator(root *html.Node) *navigator {
	return &navigator{root: root, curr: root, attr: -1}
}

func (n *navigator) NodeType() xpath.NodeType {
	switch n.curr.Type {
	case html.CommentNode:
		return xpath.CommentNode
	case html.TextNode:
		return xpath.TextNode
	case html.DocumentNode, html.DoctypeNode:
		return xpath.RootNode
	case html.ElementNode:
		if n.attr != -1 {
			return xpath.AttributeNode
		}
		return xpath.ElementNode
	}
	return xpath.TextNode
}

func (n *navigator) LocalName() string {
	if n.attr != -1 {
		return n.curr.Attr[n.attr].Key
	}
	return n.curr.Data
}

func (*navigator) Prefix() string { return "" }

func (n *navigator) Value() string {
	switch n.curr.Type {
	case html.CommentNode, html.TextNode:
		return n.curr.Data
	case html.ElementNode:
		if n.attr != -1 {
			return n.curr.Attr[n.attr].Val
		}
		return innerText(n.curr)
	}
	return innerText(n.curr)
}

func (n *navigator) Copy() xpath.NodeNavigator {
	c := *n
	return &c
}

func (n *navigator) MoveToRoot() {
	n.curr = n.root
	n.attr = -1
}

func (n *navigator) MoveToParent() bool {
	if n.attr != -1 {
		n.attr = -1
		return true
	}
	if n.curr == n.root || n.curr.Parent == nil {
		return false
	}
	n.curr = n.curr.Parent
	return true
}

func (n *navigator) MoveToNextAttribute() bool {
	if n.attr >= len(n.curr.Attr)-1 {
		return false
	}
	n.attr++
	return true
}

func (n *navigator) MoveToChild() bool {
	if n.attr != -1 || n.curr.FirstChild == nil {
		return false
	}
	n.curr = n.curr.FirstChild
	return true
}

func (n *navigator) MoveToFirst() bool {
	if n.attr != -1 || n.curr == n.root || n.curr.PrevSibling == nil {
		return false
	}
	for n.curr.PrevSibling != nil {
		n.curr = n.curr.PrevSibling
	}
	return true
}

func (n *navigator) MoveToNext() bool {
	if n.attr != -1 || n.curr == n.root || n.curr.NextSibling == nil {
		return false
	}
	n.curr = n.curr.NextSibling
	return true
}

func (n *navigator) MoveToPrevious() bool {
	if n.attr != -1 || n.curr == n.root || n.curr.PrevSibling == nil {
		return false
	}
	n.curr = n.curr.PrevSibling
	return true
}

func (n *navigator) MoveTo(other xpath.NodeNavigator) bool {
	o, ok := other.(*navigator)
	if !ok || o.root != n.root {
		return false
	}
	n.curr = o.curr
	n.attr = o.attr
	return true
}

func (n *navigator) String() string {
	return n.Value()
}

func innerText(n *html.Node) string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
			return
		}
		for k := c.FirstChild; k != nil; k = k.NextSibling {
			collect(k)
		}
	}
	collect(n)
	return b.String()
}
