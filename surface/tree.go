package surface

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var blockTags = map[string]bool{
	"p": true, "div": true, "blockquote": true, "pre": true, "li": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"ul": true, "ol": true, "table": true, "tbody": true, "thead": true,
	"tr": true, "td": true, "th": true, "hr": true,
	"section": true, "article": true, "header": true, "footer": true,
}

// Elements whose text never reaches the caret.
var opaqueTags = map[string]bool{
	"script": true, "style": true, "template": true, "head": true, "title": true, "noscript": true,
}

// Inline wrappers that merge with an identical neighbour.
var mergeableTags = map[string]bool{
	"b": true, "strong": true, "i": true, "em": true, "u": true, "s": true,
	"strike": true, "del": true, "sub": true, "sup": true, "span": true,
	"font": true, "mark": true, "code": true, "ol": true, "ul": true,
}

func isElement(n *html.Node, tags ...string) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	if len(tags) == 0 {
		return true
	}
	for _, t := range tags {
		if n.Data == t {
			return true
		}
	}
	return false
}

func isBlock(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode && blockTags[n.Data]
}

func isList(n *html.Node) bool { return isElement(n, "ol", "ul") }

func newElement(tag string) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
}

func newText(s string) *html.Node { return &html.Node{Type: html.TextNode, Data: s} }

func rename(n *html.Node, tag string) {
	n.Data = tag
	n.DataAtom = atom.Lookup([]byte(tag))
}

func shallowClone(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		Data:      n.Data,
		DataAtom:  n.DataAtom,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		c.Attr = append([]html.Attribute(nil), n.Attr...)
	}
	return c
}

func isAncestor(anc, n *html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p == anc {
			return true
		}
	}
	return false
}

func insidePre(n *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if isElement(p, "pre", "textarea") {
			return true
		}
	}
	return false
}

// ignorable reports whether n is source-formatting whitespace.
func ignorable(n *html.Node) bool {
	if n.Type != html.TextNode {
		return false
	}
	if strings.TrimSpace(n.Data) != "" || !strings.ContainsAny(n.Data, "\n\r") {
		return false
	}
	return !insidePre(n)
}

// nearestAncestor returns the closest ancestor of n below stop whose tag is
// one of tags.
func nearestAncestor(n, stop *html.Node, tags map[string]bool) *html.Node {
	for p := n.Parent; p != nil && p != stop; p = p.Parent {
		if p.Type == html.ElementNode && tags[p.Data] {
			return p
		}
	}
	return nil
}

func blockOf(n, root *html.Node) *html.Node {
	for p := n.Parent; p != nil && p != root; p = p.Parent {
		if isBlock(p) {
			return p
		}
	}
	return root
}

// wrap replaces n with el and moves n inside it.
func wrap(n, el *html.Node) {
	parent := n.Parent
	parent.InsertBefore(el, n)
	parent.RemoveChild(n)
	el.AppendChild(n)
}

// unwrap replaces el with its children.
func unwrap(el *html.Node) {
	parent := el.Parent
	for c := el.FirstChild; c != nil; {
		next := c.NextSibling
		el.RemoveChild(c)
		parent.InsertBefore(c, el)
		c = next
	}
	parent.RemoveChild(el)
}

// splitElement moves child and every following sibling into a shallow clone
// of el placed right after el, and returns the clone.
func splitElement(el, child *html.Node) *html.Node {
	clone := shallowClone(el)
	el.Parent.InsertBefore(clone, el.NextSibling)
	for c := child; c != nil; {
		next := c.NextSibling
		el.RemoveChild(c)
		clone.AppendChild(c)
		c = next
	}
	return clone
}

// isolate splits every element between n and anc (anc included) so that the
// copy of anc holding n holds nothing else. It returns that copy.
func isolate(n, anc *html.Node) *html.Node {
	stop := anc.Parent
	cur := n
	for cur.Parent != stop {
		p := cur.Parent
		if cur.PrevSibling != nil {
			p = splitElement(p, cur)
		}
		if cur.NextSibling != nil {
			splitElement(p, cur.NextSibling)
		}
		cur = p
	}
	return cur
}

// splitTree splits every element from parent up to top at before. The
// second half of top is returned; it may be empty.
func splitTree(top, parent, before *html.Node) *html.Node {
	for {
		var clone *html.Node
		if before != nil {
			clone = splitElement(parent, before)
		} else {
			clone = shallowClone(parent)
			parent.Parent.InsertBefore(clone, parent.NextSibling)
		}
		if parent == top {
			return clone
		}
		before = clone
		parent = parent.Parent
	}
}

func getAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	out := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		out = append(out, a)
	}
	n.Attr = out
}

func sameAttrs(a, b *html.Node) bool {
	if len(a.Attr) != len(b.Attr) {
		return false
	}
	for i := range a.Attr {
		if a.Attr[i] != b.Attr[i] {
			return false
		}
	}
	return true
}

type styleDecl struct {
	prop string
	val  string
}

func parseStyle(n *html.Node) []styleDecl {
	raw, _ := getAttr(n, "style")
	var out []styleDecl
	for _, part := range strings.Split(raw, ";") {
		prop, val, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		val = strings.TrimSpace(val)
		if prop == "" || val == "" {
			continue
		}
		out = append(out, styleDecl{prop: prop, val: val})
	}
	return out
}

func styleProp(n *html.Node, prop string) string {
	for _, d := range parseStyle(n) {
		if d.prop == prop {
			return d.val
		}
	}
	return ""
}

// setStyleProp sets or, with an empty val, removes one declaration.
func setStyleProp(n *html.Node, prop, val string) {
	decls := parseStyle(n)
	out := decls[:0]
	found := false
	for _, d := range decls {
		if d.prop == prop {
			if val == "" || found {
				continue
			}
			d.val = val
			found = true
		}
		out = append(out, d)
	}
	if !found && val != "" {
		out = append(out, styleDecl{prop: prop, val: val})
	}
	if len(out) == 0 {
		removeAttr(n, "style")
		return
	}
	parts := make([]string, 0, len(out))
	for _, d := range out {
		parts = append(parts, d.prop+": "+d.val)
	}
	setAttr(n, "style", strings.Join(parts, "; ")+";")
}

func pxValue(s string) int {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "px"))
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

// normalize merges adjacent text nodes and identical inline wrappers, and
// drops empty text nodes and empty inline wrappers.
func normalize(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		switch {
		case c.Type == html.TextNode && c.Data == "":
			n.RemoveChild(c)
		case c.Type == html.TextNode && next != nil && next.Type == html.TextNode:
			c.Data += next.Data
			n.RemoveChild(next)
			continue
		case c.Type == html.ElementNode && mergeableTags[c.Data] && hollow(c):
			n.RemoveChild(c)
		case c.Type == html.ElementNode && mergeableTags[c.Data] &&
			next != nil && next.Type == html.ElementNode && next.Data == c.Data && sameAttrs(c, next):
			for g := next.FirstChild; g != nil; {
				gn := g.NextSibling
				next.RemoveChild(g)
				c.AppendChild(g)
				g = gn
			}
			n.RemoveChild(next)
			continue
		}
		c = next
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			normalize(c)
		}
	}
}

// hollow reports whether n holds nothing but formatting whitespace.
func hollow(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !ignorable(c) {
			return false
		}
	}
	return true
}
