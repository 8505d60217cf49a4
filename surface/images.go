package surface

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

func (d *DOM) imageID(n *html.Node) ImageID {
	seq, ok := d.imgSeq[n]
	if !ok {
		d.seq++
		seq = d.seq
		d.imgSeq[n] = seq
		d.imgNodes[seq] = n
	}
	return ImageID{Gen: d.gen, Seq: seq}
}

func (d *DOM) imageNode(id ImageID) *html.Node {
	if id.IsZero() || id.Gen != d.gen {
		return nil
	}
	n := d.imgNodes[id.Seq]
	if n == nil || !attached(n, d.root) {
		return nil
	}
	return n
}

func readImageAttrs(n *html.Node) ImageAttrs {
	var a ImageAttrs
	a.Src, _ = getAttr(n, "src")
	a.Alt, _ = getAttr(n, "alt")
	a.Width = dimension(n, "width")
	a.Height = dimension(n, "height")
	return a
}

func dimension(n *html.Node, key string) int {
	if v, ok := getAttr(n, key); ok {
		if i, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(v), "px")); err == nil {
			return i
		}
	}
	return pxValue(styleProp(n, key))
}

func (d *DOM) Images() []ImageInfo {
	var out []ImageInfo
	for _, l := range d.leaves() {
		if !isElement(l.node, "img") {
			continue
		}
		out = append(out, ImageInfo{
			ID:     d.imageID(l.node),
			Offset: l.start,
			Attrs:  readImageAttrs(l.node),
		})
	}
	return out
}

// Image resolves id against the live document.
func (d *DOM) Image(id ImageID) (ImageAttrs, bool) {
	n := d.imageNode(id)
	if n == nil {
		return ImageAttrs{}, false
	}
	return readImageAttrs(n), true
}

// SetImage writes attrs onto the image behind id. An empty Src keeps the
// current source. It reports whether the content changed.
func (d *DOM) SetImage(id ImageID, attrs ImageAttrs) bool {
	n := d.imageNode(id)
	if n == nil {
		return false
	}
	return d.mutate(func() {
		if attrs.Src != "" {
			setAttr(n, "src", attrs.Src)
		}
		setAttr(n, "alt", attrs.Alt)
		if attrs.Width > 0 {
			setAttr(n, "width", strconv.Itoa(attrs.Width))
		}
		if attrs.Height > 0 {
			setAttr(n, "height", strconv.Itoa(attrs.Height))
		}
	})
}

// ImageAt returns the handle of the image occupying offset, if any.
func (d *DOM) ImageAt(offset int) (ImageID, bool) {
	for _, l := range d.leaves() {
		if l.start == offset && isElement(l.node, "img") {
			return d.imageID(l.node), true
		}
	}
	return ImageID{}, false
}
