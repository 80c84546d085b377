package dom

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/zeebo/blake3"
	"golang.org/x/net/html"
)

// Document is a parsed HTML tree with its text layer.
type Document struct {
	root  *html.Node
	text  []rune
	plain string
	nodes []textNode
	index map[*html.Node]int
	spans map[*html.Node]span

	fingerprint string
}

type textNode struct {
	node       *html.Node
	start, end int
}

type span struct {
	start, end int
}

// Option configures how a Document is built.
type Option func(*parseConfig)

type parseConfig struct {
	rootXPath string
}

// WithRoot selects the anchoring root with an XPath expression evaluated
// against the whole parsed tree, for example "//article". The default root
// is the body element.
func WithRoot(expr string) Option {
	return func(c *parseConfig) {
		c.rootXPath = expr
	}
}

// Open parses an HTML file.
func Open(filename string, opts ...Option) (*Document, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return Parse(f, opts...)
}

// ParseString parses HTML held in a string.
func ParseString(s string, opts ...Option) (*Document, error) {
	return Parse(strings.NewReader(s), opts...)
}

// Parse parses HTML from r.
func Parse(r io.Reader, opts ...Option) (*Document, error) {
	cfg := parseConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	tree, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	root := findElement(tree, "body")
	if root == nil {
		root = tree
	}
	if cfg.rootXPath != "" {
		root, err = evaluate(tree, cfg.rootXPath)
		if err != nil {
			return nil, fmt.Errorf("selecting root %q: %w", cfg.rootXPath, err)
		}
		if root.Type != html.ElementNode {
			return nil, fmt.Errorf("selecting root %q: %w: not an element", cfg.rootXPath, ErrBadXPath)
		}
	}

	return FromNode(root), nil
}

// FromNode builds a Document over an existing tree. The tree must not be
// modified while the Document is in use.
func FromNode(root *html.Node) *Document {
	d := &Document{
		root:  root,
		index: make(map[*html.Node]int),
		spans: make(map[*html.Node]span),
	}
	d.walk(root)
	d.plain = string(d.text)

	sum := blake3.Sum256([]byte(d.plain))
	d.fingerprint = hex.EncodeToString(sum[:])

	return d
}

func (d *Document) walk(n *html.Node) {
	start := len(d.text)

	switch n.Type {
	case html.TextNode:
		runes := []rune(n.Data)
		d.index[n] = len(d.nodes)
		d.nodes = append(d.nodes, textNode{node: n, start: start, end: start + len(runes)})
		d.text = append(d.text, runes...)
		return
	case html.ElementNode:
		if shouldSkipElement(n.Data) {
			return
		}
	case html.DocumentNode:
	default:
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.walk(c)
	}
	d.spans[n] = span{start: start, end: len(d.text)}
}

// Root returns the anchoring root.
func (d *Document) Root() *html.Node {
	return d.root
}

// Text returns the document's text layer.
func (d *Document) Text() string {
	return d.plain
}

// Len returns the length of the text layer in code points.
func (d *Document) Len() int {
	return len(d.text)
}

// Fingerprint returns the hex BLAKE3 digest of the text layer. Two documents
// with the same fingerprint resolve every selector identically.
func (d *Document) Fingerprint() string {
	return d.fingerprint
}

// Contains reports whether n is the root or one of its descendants.
func (d *Document) Contains(n *html.Node) bool {
	for c := n; c != nil; c = c.Parent {
		if c == d.root {
			return true
		}
	}
	return false
}

// Range returns the range [start, end) of the text layer.
func (d *Document) Range(start, end int) (Range, error) {
	if start < 0 || end > len(d.text) || start > end {
		return Range{}, fmt.Errorf("%w: [%d, %d) in text of length %d", ErrOutOfBounds, start, end, len(d.text))
	}
	return Range{doc: d, start: start, end: end}, nil
}

// NodeSpan returns the text layer span covered by a text node or element.
// Nodes inside skipped elements, comments and foreign nodes have no span.
func (d *Document) NodeSpan(n *html.Node) (start, end int, ok bool) {
	if i, found := d.index[n]; found {
		return d.nodes[i].start, d.nodes[i].end, true
	}
	if s, found := d.spans[n]; found {
		return s.start, s.end, true
	}
	return 0, 0, false
}

// OffsetWithin converts an offset into the text content of n to an offset
// into the text layer.
func (d *Document) OffsetWithin(n *html.Node, offset int) (int, error) {
	start, end, ok := d.NodeSpan(n)
	if !ok {
		return 0, ErrForeignNode
	}
	if offset < 0 || start+offset > end {
		return 0, fmt.Errorf("%w: offset %d in node of length %d", ErrOutOfBounds, offset, end-start)
	}
	return start + offset, nil
}

// Direction selects which text node an offset on a node boundary belongs to.
type Direction int

const (
	// Forward resolves a boundary offset to the start of the following text
	// node. Use it for range starts.
	Forward Direction = iota
	// Backward resolves a boundary offset to the end of the preceding text
	// node. Use it for range ends.
	Backward
)

// PointAt returns the text node position of a text layer offset.
func (d *Document) PointAt(offset int, dir Direction) (Point, error) {
	if len(d.nodes) == 0 {
		return Point{}, ErrNoText
	}
	if offset < 0 || offset > len(d.text) {
		return Point{}, fmt.Errorf("%w: offset %d in text of length %d", ErrOutOfBounds, offset, len(d.text))
	}

	var i int
	if dir == Forward {
		i = sort.Search(len(d.nodes), func(i int) bool { return d.nodes[i].end > offset })
		if i == len(d.nodes) {
			i = len(d.nodes) - 1
		}
	} else {
		i = sort.Search(len(d.nodes), func(i int) bool { return d.nodes[i].end >= offset })
	}

	tn := d.nodes[i]
	return Point{Node: tn.node, Offset: offset - tn.start}, nil
}

// RangeFromPoints builds a range from two DOM boundary points.
func (d *Document) RangeFromPoints(start, end Point) (Range, error) {
	s, err := d.offsetOf(start)
	if err != nil {
		return Range{}, fmt.Errorf("start point: %w", err)
	}
	e, err := d.offsetOf(end)
	if err != nil {
		return Range{}, fmt.Errorf("end point: %w", err)
	}
	return d.Range(s, e)
}

func (d *Document) offsetOf(p Point) (int, error) {
	if p.Node == nil || !d.Contains(p.Node) {
		return 0, ErrForeignNode
	}
	if p.Node.Type == html.TextNode {
		return d.OffsetWithin(p.Node, p.Offset)
	}

	start, end, ok := d.NodeSpan(p.Node)
	if !ok {
		return 0, ErrForeignNode
	}
	if p.Offset < 0 {
		return 0, fmt.Errorf("%w: child offset %d", ErrOutOfBounds, p.Offset)
	}
	child := p.Node.FirstChild
	for i := 0; i < p.Offset && child != nil; i++ {
		child = child.NextSibling
	}
	if child == nil {
		if p.Offset > countChildren(p.Node) {
			return 0, fmt.Errorf("%w: child offset %d", ErrOutOfBounds, p.Offset)
		}
		return end, nil
	}
	return d.before(child, start), nil
}

// before returns the text layer offset immediately preceding n, falling back
// to parentStart when no earlier sibling contributes text.
func (d *Document) before(n *html.Node, parentStart int) int {
	if s, _, ok := d.NodeSpan(n); ok {
		return s
	}
	for p := n.PrevSibling; p != nil; p = p.PrevSibling {
		if _, e, ok := d.NodeSpan(p); ok {
			return e
		}
	}
	return parentStart
}

func countChildren(n *html.Node) int {
	count := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count++
	}
	return count
}

// shouldSkipElement returns true if the element's text is not part of the
// text layer.
func shouldSkipElement(tagName string) bool {
	switch tagName {
	case "script", "style", "noscript", "template":
		return true
	}
	return false
}

// findElement finds the first element with the given tag name.
func findElement(n *html.Node, tagName string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result := findElement(c, tagName); result != nil {
			return result
		}
	}
	return nil
}
