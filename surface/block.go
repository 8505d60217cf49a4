package surface

import (
	"strconv"

	"golang.org/x/net/html"
)

const indentStep = 40

var alignments = map[Command]string{
	JustifyLeft:   "left",
	JustifyCenter: "center",
	JustifyRight:  "right",
	JustifyFull:   "justify",
}

// selectedBlocks returns the blocks touched by the selection, or the caret's
// block. Loose top-level inline runs are wrapped in paragraphs first.
func (d *DOM) selectedBlocks() []*html.Node {
	s, e := d.sel.Normalize()
	ls := d.leaves()
	var picked []leaf
	for _, l := range ls {
		if s < e && l.start < e && l.end() > s {
			picked = append(picked, l)
		}
	}
	if len(picked) == 0 {
		if i, _ := locate(ls, s); i >= 0 {
			picked = ls[i : i+1]
		}
	}
	var out []*html.Node
	seen := make(map[*html.Node]bool)
	for _, l := range picked {
		b := blockOf(l.node, d.root)
		if b == d.root {
			b = d.wrapRun(l.node)
		}
		if !seen[b] {
			seen[b] = true
			out = append(out, b)
		}
	}
	return out
}

func (d *DOM) justify(align string) {
	for _, b := range d.selectedBlocks() {
		setStyleProp(b, "text-align", align)
	}
}

func (d *DOM) indent(delta int) {
	for _, b := range d.selectedBlocks() {
		next := pxValue(styleProp(b, "margin-left")) + delta
		if next <= 0 {
			setStyleProp(b, "margin-left", "")
			continue
		}
		setStyleProp(b, "margin-left", strconv.Itoa(next)+"px")
	}
}

func (d *DOM) formatBlock(tag string) {
	for _, b := range d.selectedBlocks() {
		if b.Data == "li" {
			continue
		}
		rename(b, tag)
	}
}

// toggleList moves the selected blocks into a list of kind, or out of it
// when every one of them is already there.
func (d *DOM) toggleList(kind string) {
	blocks := d.selectedBlocks()
	if len(blocks) == 0 {
		return
	}
	all := true
	for _, b := range blocks {
		if b.Data != "li" || !isElement(b.Parent, kind) {
			all = false
			break
		}
	}
	if all {
		for _, b := range blocks {
			list := isolate(b, b.Parent)
			rename(b, "p")
			unwrap(list)
		}
		return
	}
	for _, b := range blocks {
		if b.Data == "li" {
			if isList(b.Parent) && b.Parent.Data != kind {
				rename(b.Parent, kind)
			}
			continue
		}
		li := b
		if b.Data == "p" || b.Data == "div" {
			rename(b, "li")
		} else {
			li = newElement("li")
			wrap(b, li)
		}
		prev := li.PrevSibling
		for prev != nil && ignorable(prev) {
			prev = prev.PrevSibling
		}
		if isElement(prev, kind) {
			li.Parent.RemoveChild(li)
			prev.AppendChild(li)
			continue
		}
		wrap(li, newElement(kind))
	}
}
