package surface

import (
	"golang.org/x/net/html"
)

var markTags = map[string]Marks{
	"b": MarkBold, "strong": MarkBold,
	"i": MarkItalic, "em": MarkItalic,
	"u": MarkUnderline,
	"s": MarkStrike, "strike": MarkStrike, "del": MarkStrike,
	"sub": MarkSub, "sup": MarkSup,
	"code": MarkCode,
	"a":    MarkLink,
}

// Blocks groups the document's leaves by block for rendering. Blocks
// without any caret position are omitted.
func (d *DOM) Blocks() []Block {
	var out []Block
	var cur *html.Node
	for _, l := range d.leaves() {
		if len(out) == 0 || l.block != cur {
			cur = l.block
			out = append(out, d.describeBlock(cur))
		}
		b := &out[len(out)-1]
		b.Spans = append(b.Spans, d.describeLeaf(l))
	}
	return out
}

func (d *DOM) describeBlock(n *html.Node) Block {
	b := Block{Tag: "p"}
	if n == d.root {
		return b
	}
	b.Tag = n.Data
	b.Align = inheritedStyle(n, d.root, "text-align")
	b.Indent = pxValue(styleProp(n, "margin-left"))
	for p := n; p != nil && p != d.root; p = p.Parent {
		if isElement(p, "blockquote") {
			b.Quote++
		}
	}
	if n.Data == "li" && isList(n.Parent) {
		b.List = n.Parent.Data
		for s := n; s != nil; s = s.PrevSibling {
			if isElement(s, "li") {
				b.Index++
			}
		}
		for p := n.Parent.Parent; p != nil && p != d.root; p = p.Parent {
			if isList(p) {
				b.Nested++
			}
		}
	}
	return b
}

func inheritedStyle(n, root *html.Node, prop string) string {
	for p := n; p != nil && p != root; p = p.Parent {
		if v := styleProp(p, prop); v != "" {
			return v
		}
		if prop == "text-align" {
			if v, ok := getAttr(p, "align"); ok && v != "" {
				return v
			}
		}
	}
	return ""
}

func (d *DOM) describeLeaf(l leaf) Span {
	s := Span{Start: l.start, End: l.end()}
	switch {
	case l.node.Type == html.TextNode:
		s.Text = l.node.Data
	case l.node.Data == "br":
		s.Break = true
	case l.node.Data == "img":
		s.Image = &ImageInfo{ID: d.imageID(l.node), Offset: l.start, Attrs: readImageAttrs(l.node)}
	}
	for p := l.node.Parent; p != nil && p != l.block && p != d.root; p = p.Parent {
		if p.Type != html.ElementNode {
			continue
		}
		s.Marks |= markTags[p.Data]
		if p.Data == "a" && s.Href == "" {
			s.Href, _ = getAttr(p, "href")
		}
		fill(&s.Font, styleProp(p, "font-family"))
		fill(&s.Size, styleProp(p, "font-size"))
		fill(&s.Color, styleProp(p, "color"))
		fill(&s.Background, styleProp(p, "background-color"))
		if p.Data == "font" {
			face, _ := getAttr(p, "face")
			color, _ := getAttr(p, "color")
			fill(&s.Font, face)
			fill(&s.Color, color)
		}
	}
	return s
}

// fill keeps the innermost value seen while walking up.
func fill(dst *string, v string) {
	if *dst == "" && v != "" {
		*dst = v
	}
}
