package surface

import (
	"strings"

	"github.com/iw2rmb/inkwell/internal/grapheme"
	"golang.org/x/net/html"
)

// InsertText types text at the caret, replacing any selection. Newlines
// become line breaks.
func (d *DOM) InsertText(text string) {
	if text == "" {
		return
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	d.mutate(func() {
		d.deleteSelection()
		for i, line := range strings.Split(text, "\n") {
			if i > 0 {
				d.insertNode(newElement("br"))
			}
			if line != "" {
				d.insertText(line)
			}
		}
	})
}

func (d *DOM) insertText(s string) {
	p := d.sel.Head
	ls := d.leaves()
	if i, inner := locate(ls, p); i >= 0 && ls[i].node.Type == html.TextNode {
		n := ls[i].node
		head, tail := grapheme.SplitAt(n.Data, inner)
		n.Data = head + s + tail
	} else {
		parent, before := d.splitAt(p)
		parent.InsertBefore(newText(s), before)
	}
	d.sel = Caret(p + grapheme.Count(s))
}

func (d *DOM) insertNode(n *html.Node) {
	p := d.sel.Head
	parent, before := d.splitAt(p)
	parent.InsertBefore(n, before)
	d.sel = Caret(p + 1)
}

// insertHTML replaces the selection with a parsed fragment and leaves the
// caret after it.
func (d *DOM) insertHTML(fragment string) {
	nodes := parseNodes(fragment)
	if len(nodes) == 0 {
		return
	}
	d.deleteSelection()
	p := d.sel.Head
	n := d.Len()
	parent, before := d.splitAt(p)
	switch {
	case hasBlockNode(nodes):
		parent, before = d.blockInsertionPoint(parent, before)
	case containsTag(nodes, linkTags):
		if a := outermost(parent, d.root, linkTags); a != nil {
			parent, before = d.splitOut(a, parent, before)
		}
	}
	for _, c := range nodes {
		parent.InsertBefore(c, before)
	}
	d.sel = Caret(p + d.Len() - n)
}

var linkTags = tagSet("a")

// Blocks that only hold phrasing content; a block fragment splits them.
var phrasingBlocks = tagSet("p", "h1", "h2", "h3", "h4", "h5", "h6", "pre")

func hasBlockNode(nodes []*html.Node) bool {
	for _, n := range nodes {
		if isBlock(n) {
			return true
		}
	}
	return false
}

func containsTag(nodes []*html.Node, tags map[string]bool) bool {
	for _, n := range nodes {
		if n.Type == html.ElementNode && tags[n.Data] {
			return true
		}
		var kids []*html.Node
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			kids = append(kids, c)
		}
		if containsTag(kids, tags) {
			return true
		}
	}
	return false
}

// outermost returns the highest element from n up to stop (exclusive)
// whose tag is one of tags.
func outermost(n, stop *html.Node, tags map[string]bool) *html.Node {
	var found *html.Node
	for p := n; p != nil && p != stop; p = p.Parent {
		if p.Type == html.ElementNode && tags[p.Data] {
			found = p
		}
	}
	return found
}

// blockInsertionPoint moves the insertion point out of inline elements and
// out of a block that cannot hold other blocks.
func (d *DOM) blockInsertionPoint(parent, before *html.Node) (*html.Node, *html.Node) {
	var top *html.Node
	for n := parent; n != nil && n != d.root; n = n.Parent {
		if isBlock(n) {
			if phrasingBlocks[n.Data] {
				top = n
			}
			break
		}
		top = n
	}
	if top == nil {
		return parent, before
	}
	return d.splitOut(top, parent, before)
}

// splitOut splits every element from parent up to top at before and
// returns the point between the two halves. Halves left without caret
// positions are dropped.
func (d *DOM) splitOut(top, parent, before *html.Node) (*html.Node, *html.Node) {
	second := splitTree(top, parent, before)
	outer := top.Parent
	pruneEmptyInline(top)
	pruneEmptyInline(second)
	next := second
	if !d.hasLeaf(second) {
		next = second.NextSibling
		outer.RemoveChild(second)
	}
	if !d.hasLeaf(top) {
		outer.RemoveChild(top)
	}
	return outer, next
}

func (d *DOM) deleteSelection() {
	if d.sel.Collapsed() {
		return
	}
	s, e := d.sel.Normalize()
	adj := d.deleteRange(s, e)
	d.sel = Caret(s - adj)
}

func (d *DOM) DeleteBackward() {
	d.mutate(func() {
		if !d.sel.Collapsed() {
			d.deleteSelection()
			return
		}
		p := d.sel.Head
		if p <= 0 {
			return
		}
		adj := d.deleteRange(p-1, p)
		d.sel = Caret(p - 1 - adj)
	})
}

func (d *DOM) DeleteForward() {
	d.mutate(func() {
		if !d.sel.Collapsed() {
			d.deleteSelection()
			return
		}
		p := d.sel.Head
		ls := d.leaves()
		if len(ls) == 0 || p >= ls[len(ls)-1].end() {
			return
		}
		if b := placeholderBlock(ls, p); b != nil && p < ls[len(ls)-1].end()-1 {
			parent := b.Parent
			parent.RemoveChild(b)
			d.prune(parent, nil, nil)
			return
		}
		adj := d.deleteRange(p, p+1)
		d.sel = Caret(p - adj)
	})
}

// placeholderBlock returns the block at p when its only content is a
// single line break.
func placeholderBlock(ls []leaf, p int) *html.Node {
	i, inner := locate(ls, p)
	if i < 0 || inner != 0 || !isElement(ls[i].node, "br") {
		return nil
	}
	b := ls[i].block
	if !isElement(b) || b.Parent == nil {
		return nil
	}
	for j, l := range ls {
		if j != i && l.block == b {
			return nil
		}
	}
	return b
}

// deleteRange removes [start, end), joining the blocks at either edge. It
// returns how many units before start vanished while joining.
func (d *DOM) deleteRange(start, end int) int {
	if end <= start {
		return 0
	}
	ls := d.leaves()
	blockA := blockBefore(ls, start)
	blockB := blockAfter(ls, end)

	var parents []*html.Node
	for _, l := range d.isolateRange(start, end) {
		parents = append(parents, l.node.Parent)
		l.node.Parent.RemoveChild(l.node)
	}
	for _, p := range parents {
		d.prune(p, blockA, blockB)
	}

	adj := 0
	if blockA != nil && blockB != nil && blockA != blockB &&
		blockA != d.root && blockB != d.root &&
		!isAncestor(blockA, blockB) && !isAncestor(blockB, blockA) &&
		attached(blockA, d.root) && attached(blockB, d.root) {
		adj = d.mergeBlocks(blockA, blockB)
	}
	if blockA != nil && blockA != d.root && attached(blockA, d.root) && !d.hasLeaf(blockA) {
		blockA.AppendChild(newElement("br"))
	}
	return adj
}

// prune removes n and its ancestors while they hold no caret positions.
func (d *DOM) prune(n, keepA, keepB *html.Node) {
	for n != nil && n != d.root && n != keepA && n != keepB && n.Parent != nil {
		if d.hasLeaf(n) || isElement(n, "img", "br", "hr") {
			return
		}
		parent := n.Parent
		parent.RemoveChild(n)
		n = parent
	}
}

func (d *DOM) hasLeaf(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if _, ok := leafSize(c); ok {
			return true
		}
		if c.Type == html.ElementNode && !opaqueTags[c.Data] && d.hasLeaf(c) {
			return true
		}
	}
	return false
}

func attached(n, root *html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p == root {
			return true
		}
	}
	return false
}

// mergeBlocks appends b's content to a and drops b. A trailing break in a
// is dropped first when b brings content; the return value counts it.
func (d *DOM) mergeBlocks(a, b *html.Node) int {
	adj := 0
	if d.hasLeaf(b) {
		if last := lastLeafNode(d, a); last != nil && isElement(last, "br") {
			parent := last.Parent
			parent.RemoveChild(last)
			d.prune(parent, a, nil)
			adj = 1
		}
	}
	for c := b.FirstChild; c != nil; {
		next := c.NextSibling
		b.RemoveChild(c)
		a.AppendChild(c)
		c = next
	}
	parent := b.Parent
	parent.RemoveChild(b)
	d.prune(parent, a, nil)
	return adj
}

func lastLeafNode(d *DOM, n *html.Node) *html.Node {
	for c := n.LastChild; c != nil; c = c.PrevSibling {
		if _, ok := leafSize(c); ok {
			return c
		}
		if c.Type == html.ElementNode && !opaqueTags[c.Data] {
			if l := lastLeafNode(d, c); l != nil {
				return l
			}
		}
	}
	return nil
}

// wrapRun moves the run of top-level inline siblings around n into a new
// paragraph and returns it.
func (d *DOM) wrapRun(n *html.Node) *html.Node {
	top := n
	for top.Parent != nil && top.Parent != d.root {
		top = top.Parent
	}
	first, last := top, top
	for first.PrevSibling != nil && !isBlock(first.PrevSibling) {
		first = first.PrevSibling
	}
	for last.NextSibling != nil && !isBlock(last.NextSibling) {
		last = last.NextSibling
	}
	for first != top && ignorable(first) {
		first = first.NextSibling
	}
	for last != top && ignorable(last) {
		last = last.PrevSibling
	}
	p := newElement("p")
	d.root.InsertBefore(p, first)
	stop := last.NextSibling
	for c := first; c != stop; {
		next := c.NextSibling
		d.root.RemoveChild(c)
		p.AppendChild(c)
		c = next
	}
	return p
}

// SplitBlock splits the caret's block in two and moves the caret to the
// start of the second half.
func (d *DOM) SplitBlock() {
	d.mutate(func() {
		d.deleteSelection()
		ls := d.leaves()
		if len(ls) == 0 {
			b := firstEmptyBlock(d.root)
			if b == nil {
				b = newElement("p")
				d.root.AppendChild(b)
			}
			b.AppendChild(newElement("br"))
			nb := shallowClone(b)
			nb.AppendChild(newElement("br"))
			b.Parent.InsertBefore(nb, b.NextSibling)
			d.sel = Caret(2)
			return
		}
		p := d.sel.Head
		i, _ := locate(ls, p)
		if i < 0 {
			i = len(ls) - 1
		}
		block := ls[i].block
		if block == d.root {
			block = d.wrapRun(ls[i].node)
		}
		parent, before := d.splitAt(p)
		nb := splitTree(block, parent, before)
		normalize(block)
		normalize(nb)
		pruneEmptyInline(block)
		pruneEmptyInline(nb)
		if !d.hasLeaf(block) {
			block.AppendChild(newElement("br"))
		}
		if !d.hasLeaf(nb) {
			nb.AppendChild(newElement("br"))
		}
		d.sel = Caret(d.blockStart(nb))
	})
}

// pruneEmptyInline drops childless non-void descendants left behind by a
// split, keeping nested blocks.
func pruneEmptyInline(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.ElementNode {
			pruneEmptyInline(c)
			if c.FirstChild == nil && !isBlock(c) && !isElement(c, "img", "br", "hr", "input") {
				n.RemoveChild(c)
			}
		}
		c = next
	}
}

func (d *DOM) blockStart(b *html.Node) int {
	for _, l := range d.leaves() {
		if isAncestor(b, l.node) {
			return l.start
		}
	}
	return d.Len()
}
