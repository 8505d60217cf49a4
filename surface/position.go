package surface

import (
	"strings"

	"github.com/iw2rmb/inkwell/internal/grapheme"
	"golang.org/x/net/html"
)

// leaf is one caret-addressable node: a text node, an image or a line break.
type leaf struct {
	node  *html.Node
	start int
	size  int
	block *html.Node
}

func (l leaf) end() int { return l.start + l.size }

func leafSize(n *html.Node) (int, bool) {
	switch n.Type {
	case html.TextNode:
		if n.Data == "" || ignorable(n) {
			return 0, false
		}
		return grapheme.Count(n.Data), true
	case html.ElementNode:
		if n.Data == "img" || n.Data == "br" {
			return 1, true
		}
	}
	return 0, false
}

// leaves lists caret-addressable nodes in document order. Moving into a
// different block costs one offset unit.
func (d *DOM) leaves() []leaf {
	var out []leaf
	pos := 0
	var last *html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if size, ok := leafSize(c); ok {
				b := blockOf(c, d.root)
				if len(out) > 0 && b != last {
					pos++
				}
				out = append(out, leaf{node: c, start: pos, size: size, block: b})
				pos += size
				last = b
				continue
			}
			if c.Type == html.ElementNode && !opaqueTags[c.Data] {
				walk(c)
			}
		}
	}
	walk(d.root)
	return out
}

func (d *DOM) Len() int {
	ls := d.leaves()
	if len(ls) == 0 {
		return 0
	}
	return ls[len(ls)-1].end()
}

// locate returns the first leaf touching offset p and the offset inside it.
func locate(ls []leaf, p int) (int, int) {
	for i, l := range ls {
		if p >= l.start && p <= l.end() {
			return i, p - l.start
		}
	}
	return -1, 0
}

// blockBefore returns the block holding the unit that ends at p.
func blockBefore(ls []leaf, p int) *html.Node {
	for _, l := range ls {
		if l.start < p && p <= l.end() {
			return l.block
		}
	}
	if i, _ := locate(ls, p); i >= 0 {
		return ls[i].block
	}
	return nil
}

// blockAfter returns the block holding the unit that starts at p.
func blockAfter(ls []leaf, p int) *html.Node {
	for _, l := range ls {
		if l.start <= p && p < l.end() {
			return l.block
		}
	}
	if i, _ := locate(ls, p); i >= 0 {
		return ls[i].block
	}
	return nil
}

// firstEmptyBlock finds the first innermost block in document order.
func firstEmptyBlock(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !isBlock(c) || isList(c) {
			continue
		}
		if inner := firstEmptyBlock(c); inner != nil {
			return inner
		}
		return c
	}
	return nil
}

// splitAt turns offset p into an insertion point, splitting a text node
// when p falls inside it.
func (d *DOM) splitAt(p int) (parent, before *html.Node) {
	ls := d.leaves()
	if len(ls) == 0 {
		if b := firstEmptyBlock(d.root); b != nil {
			return b, nil
		}
		return d.root, nil
	}
	i, inner := locate(ls, p)
	if i < 0 {
		last := ls[len(ls)-1].node
		return last.Parent, last.NextSibling
	}
	l := ls[i]
	n := l.node
	switch {
	case inner <= 0:
		return n.Parent, n
	case inner >= l.size:
		return n.Parent, n.NextSibling
	}
	head, tail := grapheme.SplitAt(n.Data, inner)
	n.Data = head
	rest := newText(tail)
	n.Parent.InsertBefore(rest, n.NextSibling)
	return n.Parent, rest
}

// isolateRange splits text so [start, end) falls on node boundaries and
// returns the leaves inside it.
func (d *DOM) isolateRange(start, end int) []leaf {
	d.splitAt(end)
	d.splitAt(start)
	var out []leaf
	for _, l := range d.leaves() {
		if l.start >= start && l.end() <= end {
			out = append(out, l)
		}
	}
	return out
}

// textBetween renders [start, end) as plain text. Images contribute nothing;
// breaks and block boundaries become newlines.
func (d *DOM) textBetween(start, end int) string {
	var sb strings.Builder
	var prev *html.Node
	for _, l := range d.leaves() {
		if l.start >= end {
			break
		}
		if prev != nil && l.block != prev && l.start-1 >= start {
			sb.WriteByte('\n')
		}
		prev = l.block
		lo, hi := clamp(start-l.start, 0, l.size), clamp(end-l.start, 0, l.size)
		if lo >= hi {
			continue
		}
		switch {
		case l.node.Type == html.TextNode:
			sb.WriteString(grapheme.Slice(l.node.Data, lo, hi))
		case l.node.Data == "br":
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func (d *DOM) TextContent() string { return d.textBetween(0, d.Len()) }

func (d *DOM) SelectedText() string {
	s, e := d.sel.Normalize()
	if s == e {
		return ""
	}
	return d.textBetween(s, e)
}
