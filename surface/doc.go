// Package surface implements the live editing surface that owns an HTML
// document while it is being edited.
//
// Caret offsets count grapheme clusters of text, one unit per <img> and <br>,
// and one unit per boundary between consecutive blocks. Ranges are
// anchor/head pairs; Normalize yields the half-open [Start, End) span.
package surface
