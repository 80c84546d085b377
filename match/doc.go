// Package match finds quoted text in a document's text layer, tolerating
// edits made since the quote was taken.
//
// Search reports approximate occurrences of a pattern using an edit
// distance bound. Quote ranks those occurrences by how well the quote itself,
// its surrounding context and an expected position agree with each
// candidate, and returns the best one.
//
// All offsets count Unicode code points.
package match
