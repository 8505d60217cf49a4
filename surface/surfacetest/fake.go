// Package surfacetest provides an in-memory Surface for exercising code that
// drives an editing surface without a real document tree.
package surfacetest

import (
	"strings"
	"unicode/utf8"

	"github.com/iw2rmb/inkwell/surface"
)

// Call records one Exec invocation.
type Call struct {
	Cmd surface.Command
	Arg string
}

// Fake stores content as an opaque string. Exec appends insertHTML
// arguments and records every call; other commands only change content
// when ExecFunc says so.
type Fake struct {
	HTML string
	Sel  surface.Range

	// FireOnSet makes SetContent raise the content-changed signal, the way
	// some hosts echo programmatic writes.
	FireOnSet bool
	// ExecFunc, when set, computes the content after a command.
	ExecFunc func(content string, cmd surface.Command, arg string) string

	Calls    []Call
	SetCalls []string
	Imgs     map[surface.ImageID]surface.ImageAttrs

	listener func()
}

var _ surface.Surface = (*Fake)(nil)

// New returns a Fake holding content.
func New(content string) *Fake {
	return &Fake{HTML: content, Imgs: make(map[surface.ImageID]surface.ImageAttrs)}
}

func (f *Fake) Content() string { return f.HTML }

func (f *Fake) SetContent(html string) {
	f.SetCalls = append(f.SetCalls, html)
	f.HTML = html
	f.Sel = surface.Caret(0)
	if f.FireOnSet {
		f.fire()
	}
}

func (f *Fake) Exec(cmd surface.Command, arg string) bool {
	f.Calls = append(f.Calls, Call{Cmd: cmd, Arg: arg})
	before := f.HTML
	switch {
	case f.ExecFunc != nil:
		f.HTML = f.ExecFunc(f.HTML, cmd, arg)
	case cmd == surface.InsertHTML:
		f.HTML += arg
	}
	if f.HTML == before {
		return false
	}
	f.fire()
	return true
}

func (f *Fake) OnContentChanged(fn func()) { f.listener = fn }

// Subscribed reports whether a content-changed listener is registered.
func (f *Fake) Subscribed() bool { return f.listener != nil }

// Type simulates native typing: it changes the content and fires the
// content-changed signal.
func (f *Fake) Type(next string) {
	f.HTML = next
	f.fire()
}

func (f *Fake) fire() {
	if f.listener != nil {
		f.listener()
	}
}

func (f *Fake) TextContent() string {
	var sb strings.Builder
	in := false
	for _, r := range f.HTML {
		switch {
		case r == '<':
			in = true
		case r == '>':
			in = false
		case !in:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func (f *Fake) HasImages() bool { return strings.Contains(f.HTML, "<img") }

func (f *Fake) Len() int { return utf8.RuneCountInString(f.TextContent()) }

func (f *Fake) Selection() surface.Range { return f.Sel }

func (f *Fake) SetSelection(r surface.Range) { f.Sel = r }

func (f *Fake) SelectedText() string { return "" }

func (f *Fake) InsertText(text string) { f.Type(f.HTML + text) }

func (f *Fake) DeleteBackward() {}

func (f *Fake) DeleteForward() {}

func (f *Fake) SplitBlock() {}

func (f *Fake) Images() []surface.ImageInfo {
	var out []surface.ImageInfo
	for id, a := range f.Imgs {
		out = append(out, surface.ImageInfo{ID: id, Attrs: a})
	}
	return out
}

func (f *Fake) Image(id surface.ImageID) (surface.ImageAttrs, bool) {
	a, ok := f.Imgs[id]
	return a, ok
}

func (f *Fake) SetImage(id surface.ImageID, attrs surface.ImageAttrs) bool {
	cur, ok := f.Imgs[id]
	if attrs.Src == "" {
		attrs.Src = cur.Src
	}
	if !ok || cur == attrs {
		return false
	}
	f.Imgs[id] = attrs
	f.fire()
	return true
}

func (f *Fake) Blocks() []surface.Block { return nil }
