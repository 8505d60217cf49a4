package editor

import "github.com/iw2rmb/inkwell/surface"

// targetAt maps viewport-local cell coordinates to what a click there hits.
//
// Coordinates are in terminal cells: (0,0) is the top-left of the visible
// document area. Points past the content clamp to the nearest caret offset.
func (m Model) targetAt(x, y int) surface.Target {
	if len(m.rows) == 0 {
		return surface.Target{Kind: surface.TargetText}
	}
	ri := m.viewport.YOffset + y
	if ri < 0 {
		ri = 0
	}
	if ri >= len(m.rows) {
		last := m.rows[len(m.rows)-1]
		return surface.Target{Kind: surface.TargetText, Offset: last.end}
	}
	r := m.rows[ri]
	cx := x - r.prefixWidth - r.pad
	if cx < 0 {
		return surface.Target{Kind: surface.TargetText, Offset: r.start}
	}
	acc := 0
	for _, c := range r.cells {
		if cx < acc+c.width {
			if c.isImage() {
				return surface.Target{Kind: surface.TargetImage, Offset: c.offset, Image: c.image}
			}
			return surface.Target{Kind: surface.TargetText, Offset: c.offset}
		}
		acc += c.width
	}
	return surface.Target{Kind: surface.TargetText, Offset: r.end}
}

// caretRow returns the row index holding caret offset c.
func (m Model) caretRow(c int) int {
	best := 0
	for i, r := range m.rows {
		if r.start > c {
			break
		}
		best = i
		if c < r.end {
			return i
		}
		if c == r.end && (i == len(m.rows)-1 || m.rows[i+1].start != c) {
			return i
		}
	}
	return best
}

// caretX returns the cell column of caret offset c within row ri.
func (m Model) caretX(ri, c int) int {
	if ri < 0 || ri >= len(m.rows) {
		return 0
	}
	r := m.rows[ri]
	x := r.prefixWidth + r.pad
	for _, cl := range r.cells {
		if cl.offset >= c {
			break
		}
		x += cl.width
	}
	return x
}

// offsetAt returns the caret offset closest to column x in row ri. Landing
// on an image places the caret before it.
func (m Model) offsetAt(ri, x int) int {
	r := m.rows[ri]
	cx := x - r.prefixWidth - r.pad
	if cx <= 0 {
		return r.start
	}
	acc := 0
	for _, c := range r.cells {
		if cx < acc+c.width {
			return c.offset
		}
		acc += c.width
	}
	return r.end
}

// verticalOffset moves caret offset c by dy rows, keeping its column.
func (m Model) verticalOffset(c, dy int) int {
	ri := m.caretRow(c)
	next := ri + dy
	switch {
	case next < 0:
		return m.rows[0].start
	case next >= len(m.rows):
		return m.rows[len(m.rows)-1].end
	}
	return m.offsetAt(next, m.caretX(ri, c))
}
