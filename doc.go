// Package anchorage resolves stored annotation selectors back into live
// ranges of a document, and derives selectors from live ranges.
//
// Annotations persist selectors rather than raw ranges because documents are
// re-rendered, re-fetched and edited. Anchor combines the three selector
// strategies into one lookup that falls back from the cheapest and most
// precise to the most tolerant, checking each structural or positional
// result against the stored quote:
//
//	doc, err := dom.Open("article.html")
//	if err != nil {
//	    // handle error
//	}
//	r, err := anchorage.Anchor(doc, target.Selectors)
//	if errors.Is(err, anchorage.ErrAnchorExhausted) {
//	    // the annotation is orphaned on this document
//	}
//
// Describe goes the other way. A host holding a DOM selection as boundary
// points converts it to a range of the document first:
//
//	r, err := doc.RangeFromPoints(
//	    dom.Point{Node: startText, Offset: 3},
//	    dom.Point{Node: endText, Offset: 5},
//	)
//	if err != nil {
//	    // the points are not inside the document
//	}
//	sels, err := anchorage.Describe(doc, r, anchorage.WithIgnoreSelector("//*[@data-ignore]"))
//
// Range.StartPoint and Range.EndPoint give the boundary points back for
// highlighting an anchored range in the tree.
//
// Both calls are synchronous, run their strategies one at a time, keep no
// state between calls and never modify the document, so independent calls
// may share a document across goroutines. AnchorAll does exactly that for a
// batch of annotation targets.
package anchorage
