// Package dom provides the live document that selectors are resolved
// against.
//
// A Document wraps a parsed HTML tree and an immutable text layer: the
// concatenation of every text node under the anchoring root, in document
// order, excluding the contents of script, style, noscript and template
// elements. All offsets in this package count Unicode code points of that
// text layer.
//
// # Basic Usage
//
//	doc, err := dom.Open("article.html")
//	if err != nil {
//	    // handle error
//	}
//	r, err := doc.Range(10, 24)
//	fmt.Println(r.String())
//
// # Structural Paths
//
// Elements are addressed with XPath expressions relative to the anchoring
// root, such as "/section[1]/p[2]". XPathFromNode produces them and
// NodeFromXPath evaluates them; any expression understood by
// github.com/antchfx/xpath is accepted on the way in.
//
// # Concurrency
//
// A Document is never modified after construction and may be shared by
// concurrent readers.
package dom
