package surface

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/net/html"
)

type inlineFormat struct {
	tag   string
	match map[string]bool
}

var inlineFormats = map[Command]inlineFormat{
	Bold:          {tag: "b", match: tagSet("b", "strong")},
	Italic:        {tag: "i", match: tagSet("i", "em")},
	Underline:     {tag: "u", match: tagSet("u")},
	StrikeThrough: {tag: "s", match: tagSet("s", "strike", "del")},
	Subscript:     {tag: "sub", match: tagSet("sub")},
	Superscript:   {tag: "sup", match: tagSet("sup")},
}

var removableTags = tagSet(
	"b", "strong", "i", "em", "u", "s", "strike", "del",
	"sub", "sup", "font", "span", "mark",
)

func tagSet(tags ...string) map[string]bool {
	m := make(map[string]bool, len(tags))
	for _, t := range tags {
		m[t] = true
	}
	return m
}

// Exec applies cmd to the current selection. Unknown commands and missing
// arguments are ignored.
func (d *DOM) Exec(cmd Command, arg string) bool {
	if !cmd.Valid() {
		return false
	}
	if cmd.NeedsArgument() && strings.TrimSpace(arg) == "" {
		return false
	}
	switch cmd {
	case Undo:
		return d.Undo()
	case Redo:
		return d.Redo()
	}
	return d.mutate(func() {
		switch cmd {
		case Bold, Italic, Underline, StrikeThrough, Subscript, Superscript:
			d.toggleInline(inlineFormats[cmd])
		case RemoveFormat:
			d.removeFormat()
		case JustifyLeft, JustifyCenter, JustifyRight, JustifyFull:
			d.justify(alignments[cmd])
		case InsertOrderedList:
			d.toggleList("ol")
		case InsertUnorderedList:
			d.toggleList("ul")
		case Indent:
			d.indent(indentStep)
		case Outdent:
			d.indent(-indentStep)
		case FormatParagraph:
			d.formatBlock("p")
		case FormatBlockquote:
			d.formatBlock("blockquote")
		case FormatCodeBlock:
			d.formatBlock("pre")
		case FontName:
			if v, ok := FontFamily(arg); ok {
				d.applyStyle("font-family", v)
			}
		case FontSize:
			if v, ok := FontSizeCSS(arg); ok {
				d.applyStyle("font-size", v)
			}
		case ForeColor:
			if v, ok := ColorHex(arg); ok {
				d.applyStyle("color", v)
			}
		case HiliteColor:
			if v, ok := ColorHex(arg); ok {
				d.applyStyle("background-color", v)
			}
		case InsertHTML:
			d.insertHTML(arg)
		}
	})
}

// selectedLeaves isolates the selection and returns its non-break leaves.
// A collapsed selection yields nothing.
func (d *DOM) selectedLeaves() []leaf {
	s, e := d.sel.Normalize()
	if s == e {
		return nil
	}
	var out []leaf
	for _, l := range d.isolateRange(s, e) {
		if isElement(l.node, "br") {
			continue
		}
		out = append(out, l)
	}
	return out
}

func (d *DOM) toggleInline(f inlineFormat) {
	ls := d.selectedLeaves()
	if len(ls) == 0 {
		return
	}
	all := true
	for _, l := range ls {
		if nearestAncestor(l.node, d.root, f.match) == nil {
			all = false
			break
		}
	}
	for _, l := range ls {
		if all {
			d.strip(l.node, f.match)
			continue
		}
		if nearestAncestor(l.node, d.root, f.match) == nil {
			wrap(l.node, newElement(f.tag))
		}
	}
}

// strip removes every ancestor of n matching tags, splitting each so that
// only n loses the formatting.
func (d *DOM) strip(n *html.Node, tags map[string]bool) {
	for {
		a := nearestAncestor(n, d.root, tags)
		if a == nil {
			return
		}
		unwrap(isolate(n, a))
	}
}

func (d *DOM) removeFormat() {
	for _, l := range d.selectedLeaves() {
		d.strip(l.node, removableTags)
	}
}

// applyStyle sets one CSS property on the selected leaves, reusing the
// nearest span that already carries it.
func (d *DOM) applyStyle(prop, val string) {
	spans := tagSet("span")
	for _, l := range d.selectedLeaves() {
		var host *html.Node
		for p := nearestAncestor(l.node, d.root, spans); p != nil; p = nearestAncestor(p, d.root, spans) {
			if styleProp(p, prop) != "" {
				host = p
				break
			}
		}
		if host != nil {
			setStyleProp(isolate(l.node, host), prop, val)
			continue
		}
		span := newElement("span")
		setStyleProp(span, prop, val)
		wrap(l.node, span)
	}
}

var fontSizes = map[string]string{
	"1": "x-small",
	"2": "small",
	"3": "medium",
	"4": "large",
	"5": "x-large",
	"6": "xx-large",
	"7": "xxx-large",
}

// FontSizeCSS maps a legacy size step (1..7) or a CSS length to a font-size
// value.
func FontSizeCSS(arg string) (string, bool) {
	arg = strings.TrimSpace(arg)
	if v, ok := fontSizes[arg]; ok {
		return v, true
	}
	for _, unit := range []string{"px", "pt", "rem", "em", "%"} {
		num, ok := strings.CutSuffix(arg, unit)
		if !ok {
			continue
		}
		f, err := strconv.ParseFloat(num, 64)
		if err != nil || f <= 0 {
			return "", false
		}
		return arg, true
	}
	return "", false
}

// FontFamily validates a font-family value.
func FontFamily(arg string) (string, bool) {
	arg = strings.TrimSpace(arg)
	if arg == "" || strings.ContainsAny(arg, ";\"<>{}") {
		return "", false
	}
	return arg, true
}

// ColorHex parses a hex color and returns it as #rrggbb.
func ColorHex(arg string) (string, bool) {
	arg = strings.TrimSpace(arg)
	if !strings.HasPrefix(arg, "#") {
		arg = "#" + arg
	}
	if len(arg) == 4 && arg[0] == '#' {
		arg = fmt.Sprintf("#%c%c%c%c%c%c", arg[1], arg[1], arg[2], arg[2], arg[3], arg[3])
	}
	c, err := colorful.Hex(arg)
	if err != nil {
		return "", false
	}
	return c.Hex(), true
}
