package editor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/inkwell/internal/grapheme"
	"github.com/iw2rmb/inkwell/surface"
)

// cell is one terminal glyph of laid-out content.
type cell struct {
	text   string
	width  int
	offset int
	style  lipgloss.Style
	image  surface.ImageID
}

func (c cell) isImage() bool { return !c.image.IsZero() }

// visualRow is one screen row. Caret offsets in [start, end] belong to it.
type visualRow struct {
	prefix      string
	prefixWidth int
	pad         int
	cells       []cell
	start, end  int
}

func (r visualRow) width() int {
	w := 0
	for _, c := range r.cells {
		w += c.width
	}
	return w
}

const cellsPerIndent = 2 // per 40px of margin

// buildRows lays blocks out into rows no wider than width. A width of zero
// disables wrapping.
func buildRows(blocks []surface.Block, width int, st Style) []visualRow {
	var rows []visualRow
	for _, b := range blocks {
		rows = append(rows, layoutBlock(b, width, st)...)
	}
	if len(rows) == 0 {
		rows = append(rows, visualRow{})
	}
	return rows
}

func blockPrefixes(b surface.Block) (first, rest string) {
	quote := strings.Repeat("│ ", b.Quote)
	lead := strings.Repeat(" ", b.Indent/40*cellsPerIndent+b.Nested*2)
	var marker string
	switch b.List {
	case "ul":
		marker = "• "
	case "ol":
		marker = strconv.Itoa(b.Index) + ". "
	}
	return quote + lead + marker, quote + lead + strings.Repeat(" ", lipgloss.Width(marker))
}

func layoutBlock(b surface.Block, width int, st Style) []visualRow {
	firstPrefix, restPrefix := blockPrefixes(b)
	prefixStyle := st.Marker
	if b.Quote > 0 {
		prefixStyle = st.Quote
	}

	avail := width - lipgloss.Width(firstPrefix)
	if width <= 0 {
		avail = 0
	} else if avail < 1 {
		avail = 1
	}

	base := st.Text
	switch {
	case len(b.Tag) == 2 && b.Tag[0] == 'h':
		base = st.Heading.Inherit(st.Text)
	case b.Tag == "pre":
		base = st.Code.Inherit(st.Text)
	}

	var rows []visualRow
	start := 0
	if len(b.Spans) > 0 {
		start = b.Spans[0].Start
	}
	cur := visualRow{start: start, end: start}
	pos := start

	closeRow := func(end, next int) {
		cur.end = end
		rows = append(rows, cur)
		cur = visualRow{start: next, end: next}
	}
	push := func(cs []cell, next int) {
		w := 0
		for _, c := range cs {
			w += c.width
		}
		if avail > 0 && len(cur.cells) > 0 && cur.width()+w > avail {
			if k := lastSpace(cur.cells); k >= 0 && k < len(cur.cells)-1 {
				carry := append([]cell(nil), cur.cells[k+1:]...)
				cur.cells = cur.cells[:k+1]
				closeRow(carry[0].offset, carry[0].offset)
				cur.cells = carry
			} else {
				closeRow(cs[0].offset, cs[0].offset)
			}
		}
		cur.cells = append(cur.cells, cs...)
		pos = next
	}

	for i, sp := range b.Spans {
		switch {
		case sp.Break:
			if i == len(b.Spans)-1 {
				pos = sp.Start
				continue
			}
			closeRow(sp.Start, sp.End)
			pos = sp.End
		case sp.Image != nil:
			push(imageCells(sp, st), sp.End)
		default:
			style := spanStyle(sp, base, st)
			for j, g := range grapheme.Split(sp.Text) {
				if g == "\n" || g == "\t" || g == "\r" || g == "\r\n" {
					g = " "
				}
				push([]cell{{text: g, width: grapheme.Width(g), offset: sp.Start + j, style: style}}, sp.Start+j+1)
			}
		}
	}
	cur.end = pos
	rows = append(rows, cur)

	for i := range rows {
		prefix := restPrefix
		if i == 0 {
			prefix = firstPrefix
		}
		rows[i].prefix = prefixStyle.Render(prefix)
		rows[i].prefixWidth = lipgloss.Width(prefix)
		if avail > 0 {
			switch b.Align {
			case "center":
				rows[i].pad = max(0, (avail-rows[i].width())/2)
			case "right":
				rows[i].pad = max(0, avail-rows[i].width())
			}
		}
	}
	return rows
}

func lastSpace(cs []cell) int {
	for i := len(cs) - 1; i > 0; i-- {
		if cs[i].text == " " && !cs[i].isImage() {
			return i
		}
	}
	return -1
}

func imageToken(a surface.ImageAttrs) string {
	if a.Alt == "" {
		return fmt.Sprintf("[img %dx%d]", a.Width, a.Height)
	}
	return fmt.Sprintf("[img %s %dx%d]", a.Alt, a.Width, a.Height)
}

func imageCells(sp surface.Span, st Style) []cell {
	var out []cell
	for _, g := range grapheme.Split(imageToken(sp.Image.Attrs)) {
		out = append(out, cell{
			text:   g,
			width:  grapheme.Width(g),
			offset: sp.Start,
			style:  st.Image,
			image:  sp.Image.ID,
		})
	}
	return out
}

func spanStyle(sp surface.Span, base lipgloss.Style, st Style) lipgloss.Style {
	s := base
	if sp.Marks.Has(surface.MarkLink) {
		s = st.Link.Inherit(s)
	}
	if sp.Marks.Has(surface.MarkCode) {
		s = st.Code.Inherit(s)
	}
	if sp.Marks.Has(surface.MarkBold) {
		s = s.Bold(true)
	}
	if sp.Marks.Has(surface.MarkItalic) {
		s = s.Italic(true)
	}
	if sp.Marks.Has(surface.MarkUnderline) {
		s = s.Underline(true)
	}
	if sp.Marks.Has(surface.MarkStrike) {
		s = s.Strikethrough(true)
	}
	if sp.Marks.Has(surface.MarkSub) || sp.Marks.Has(surface.MarkSup) {
		s = s.Faint(true)
	}
	if c, ok := surface.ColorHex(sp.Color); ok {
		s = s.Foreground(lipgloss.Color(c))
	}
	if c, ok := surface.ColorHex(sp.Background); ok {
		s = s.Background(lipgloss.Color(c))
	}
	return s
}
