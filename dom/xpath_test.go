package dom

import (
	"errors"
	"testing"

	"golang.org/x/net/html"
)

func TestXPathFromNode(t *testing.T) {
	doc := mustParse(t, fixture)

	tests := []struct {
		id   string
		want string
	}{
		{"section-1", "/section[1]"},
		{"p-2", "/section[1]/p[2]"},
		{"p-3", "/section[1]/span[1]/p[1]"},
		{"p-4", "/p[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, err := doc.XPathFromNode(byID(t, doc, tt.id))
			if err != nil {
				t.Fatalf("XPathFromNode() failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("XPathFromNode() = %q, want %q", got, tt.want)
			}
		})
	}

	root, err := doc.XPathFromNode(doc.Root())
	if err != nil || root != "" {
		t.Errorf("XPathFromNode(root) = %q, %v; want empty path", root, err)
	}

	text, err := doc.XPathFromNode(byID(t, doc, "p-2").FirstChild)
	if err != nil || text != "/section[1]/p[2]/text()[1]" {
		t.Errorf("XPathFromNode(text) = %q, %v", text, err)
	}

	other := mustParse(t, fixture)
	if _, err := doc.XPathFromNode(byID(t, other, "p-1")); !errors.Is(err, ErrForeignNode) {
		t.Errorf("foreign node error = %v, want ErrForeignNode", err)
	}
}

func TestNodeFromXPath(t *testing.T) {
	doc := mustParse(t, fixture)

	for _, id := range []string{"section-1", "p-1", "p-2", "p-3", "p-4"} {
		want := byID(t, doc, id)
		path, err := doc.XPathFromNode(want)
		if err != nil {
			t.Fatalf("XPathFromNode(%s) failed: %v", id, err)
		}
		got, err := doc.NodeFromXPath(path)
		if err != nil {
			t.Fatalf("NodeFromXPath(%q) failed: %v", path, err)
		}
		if got != want {
			t.Errorf("NodeFromXPath(%q) returned a different node", path)
		}
	}

	root, err := doc.NodeFromXPath("")
	if err != nil || root != doc.Root() {
		t.Errorf("NodeFromXPath(\"\") = %v, %v; want root", root, err)
	}

	text, err := doc.NodeFromXPath("/section[1]/p[2]/text()[1]")
	if err != nil || text.Data != "text 2" {
		t.Errorf("NodeFromXPath(text()) = %v, %v", text, err)
	}
}

func TestNodeFromXPath_Errors(t *testing.T) {
	doc := mustParse(t, fixture)

	if _, err := doc.NodeFromXPath("/section[1]/p[9]"); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("missing node error = %v, want ErrNodeNotFound", err)
	}
	if _, err := doc.NodeFromXPath("/p[[["); !errors.Is(err, ErrBadXPath) {
		t.Errorf("malformed path error = %v, want ErrBadXPath", err)
	}
	if _, err := doc.NodeFromXPath("/section[1]/@id"); !errors.Is(err, ErrBadXPath) {
		t.Errorf("attribute path error = %v, want ErrBadXPath", err)
	}
	if _, err := doc.NodeFromXPath("/../head[1]"); err == nil {
		t.Error("path escaping the root should not resolve")
	}
}

func TestIgnoreFilter(t *testing.T) {
	doc := mustParse(t, fixture)
	p3 := byID(t, doc, "p-3")
	section := byID(t, doc, "section-1")

	f, err := doc.CompileIgnoreFilter("//span")
	if err != nil {
		t.Fatalf("CompileIgnoreFilter() failed: %v", err)
	}
	if !f.Ignored(p3) || !f.Ignored(p3.FirstChild) {
		t.Error("descendants of an ignored element should be ignored")
	}
	if f.Ignored(section) {
		t.Error("ancestor of an ignored element should not be ignored")
	}

	c, err := doc.Container(p3.FirstChild, f)
	if err != nil {
		t.Fatalf("Container() failed: %v", err)
	}
	if c != section {
		t.Errorf("Container() = <%s>, want the section", c.Data)
	}

	c, err = doc.Container(p3.FirstChild, nil)
	if err != nil || c != p3 {
		t.Errorf("Container() without filter = %v, %v; want p-3", c, err)
	}

	all, err := doc.CompileIgnoreFilter(".")
	if err != nil {
		t.Fatalf("CompileIgnoreFilter(.) failed: %v", err)
	}
	if _, err := doc.Container(p3.FirstChild, all); !errors.Is(err, ErrIgnored) {
		t.Errorf("Container() error = %v, want ErrIgnored", err)
	}

	none, err := doc.CompileIgnoreFilter("  ")
	if err != nil || none != nil {
		t.Errorf("CompileIgnoreFilter(blank) = %v, %v; want nil, nil", none, err)
	}
	if _, err := doc.CompileIgnoreFilter("//["); !errors.Is(err, ErrBadXPath) {
		t.Errorf("malformed filter error = %v, want ErrBadXPath", err)
	}
}

func TestXPath_ForeignElementNames(t *testing.T) {
	doc := mustParse(t, `<html><body><p>before</p><svg><text><textPath>curved label</textPath></text></svg><p>after</p></body></html>`)

	var textPath *html.Node
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "textPath" {
			textPath = n
		}
		for c := n.FirstChild; c != nil && textPath == nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(doc.Root())
	if textPath == nil {
		t.Fatal("parsed tree has no textPath element")
	}

	path, err := doc.XPathFromNode(textPath)
	if err != nil {
		t.Fatalf("XPathFromNode() failed: %v", err)
	}
	if path != "/svg[1]/text[1]/textPath[1]" {
		t.Errorf("XPathFromNode() = %q, want %q", path, "/svg[1]/text[1]/textPath[1]")
	}

	got, err := doc.NodeFromXPath(path)
	if err != nil {
		t.Fatalf("NodeFromXPath(%q) failed: %v", path, err)
	}
	if got != textPath {
		t.Errorf("NodeFromXPath(%q) selected %v, want the textPath element", path, got.Data)
	}
}
