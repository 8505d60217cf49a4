package surface

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const defaultHistoryLimit = 1000

// Options configures a DOM surface.
type Options struct {
	// HistoryLimit bounds the undo stack. Zero selects the default of 1000,
	// a negative value disables history.
	HistoryLimit int
}

// DOM is the reference Surface: a detached HTML tree edited in place.
type DOM struct {
	opt  Options
	root *html.Node
	sel  Range
	hist historyState

	onChange func()

	gen      uint64
	seq      int
	imgSeq   map[*html.Node]int
	imgNodes map[int]*html.Node
}

var _ Surface = (*DOM)(nil)

// NewDOM parses content into a new surface.
func NewDOM(content string, opt Options) *DOM {
	if opt.HistoryLimit == 0 {
		opt.HistoryLimit = defaultHistoryLimit
	}
	d := &DOM{opt: opt}
	d.load(content)
	return d
}

func (d *DOM) load(content string) {
	d.root = parseFragment(content)
	d.gen++
	d.seq = 0
	d.imgSeq = make(map[*html.Node]int)
	d.imgNodes = make(map[int]*html.Node)
}

func newRoot() *html.Node {
	return &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
}

func parseNodes(content string) []*html.Node {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(content), ctx)
	if err != nil {
		return nil
	}
	return nodes
}

func parseFragment(content string) *html.Node {
	root := newRoot()
	for _, n := range parseNodes(content) {
		root.AppendChild(n)
	}
	return root
}

func renderChildren(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&sb, c)
	}
	return sb.String()
}

func (d *DOM) Content() string { return renderChildren(d.root) }

func (d *DOM) SetContent(content string) {
	d.load(content)
	d.sel = Caret(0)
	d.hist = historyState{}
}

func (d *DOM) OnContentChanged(fn func()) { d.onChange = fn }

func (d *DOM) notify() {
	if d.onChange != nil {
		d.onChange()
	}
}

// mutate runs fn as one undoable edit. History and the change signal are
// only touched when the serialized content actually changed.
func (d *DOM) mutate(fn func()) bool {
	prev := d.snapshot()
	fn()
	normalize(d.root)
	d.sel = d.clampRange(d.sel)
	if d.Content() == prev.content {
		return false
	}
	d.recordUndo(prev)
	d.notify()
	return true
}

func (d *DOM) Selection() Range { return d.sel }

func (d *DOM) SetSelection(r Range) { d.sel = d.clampRange(r) }

func (d *DOM) clampRange(r Range) Range {
	n := d.Len()
	return Range{Anchor: clamp(r.Anchor, 0, n), Head: clamp(r.Head, 0, n)}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (d *DOM) HasImages() bool {
	var found bool
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil && !found; c = c.NextSibling {
			if isElement(c, "img") {
				found = true
				return
			}
			walk(c)
		}
	}
	walk(d.root)
	return found
}
