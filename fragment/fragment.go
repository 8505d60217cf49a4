// Package fragment builds the small, self-contained HTML pieces the editor
// inserts at the caret: links, images and inline image data.
package fragment

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Image size bounds for the insertion dialog and the image settings popover.
const (
	WidthMin      = 50
	WidthMax      = 800
	HeightMin     = 50
	HeightMax     = 600
	Step          = 10
	DefaultWidth  = 300
	DefaultHeight = 200
)

const responsiveStyle = "max-width: 100%; height: auto;"

// Link returns an anchor that opens url in a new context without leaking the
// referrer. Both fields are required after trimming.
func Link(text, url string) (string, bool) {
	text, url = strings.TrimSpace(text), strings.TrimSpace(url)
	if text == "" || url == "" {
		return "", false
	}
	a := &html.Node{
		Type:     html.ElementNode,
		Data:     "a",
		DataAtom: atom.A,
		Attr: []html.Attribute{
			{Key: "href", Val: url},
			{Key: "target", Val: "_blank"},
			{Key: "rel", Val: "noopener noreferrer"},
		},
	}
	a.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return render(a), true
}

// ImageSpec is a pending image insertion.
type ImageSpec struct {
	Src    string
	Alt    string
	Width  int
	Height int
}

// Image returns an img element carrying explicit dimensions, alt text and a
// responsive max-width. Src is required; out-of-range sizes are clamped.
func Image(spec ImageSpec) (string, bool) {
	src := strings.TrimSpace(spec.Src)
	if src == "" {
		return "", false
	}
	img := &html.Node{
		Type:     html.ElementNode,
		Data:     "img",
		DataAtom: atom.Img,
		Attr: []html.Attribute{
			{Key: "src", Val: src},
			{Key: "alt", Val: strings.TrimSpace(spec.Alt)},
			{Key: "width", Val: strconv.Itoa(ClampWidth(spec.Width))},
			{Key: "height", Val: strconv.Itoa(ClampHeight(spec.Height))},
			{Key: "style", Val: responsiveStyle},
		},
	}
	return render(img), true
}

func render(n *html.Node) string {
	var sb strings.Builder
	_ = html.Render(&sb, n)
	return sb.String()
}

// ClampWidth bounds w to the width range and snaps it to Step. Zero selects
// the default.
func ClampWidth(w int) int { return clampStep(w, WidthMin, WidthMax, DefaultWidth) }

// ClampHeight bounds h to the height range and snaps it to Step. Zero
// selects the default.
func ClampHeight(h int) int { return clampStep(h, HeightMin, HeightMax, DefaultHeight) }

func clampStep(v, lo, hi, def int) int {
	if v == 0 {
		return def
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return lo + (v-lo+Step/2)/Step*Step
}
