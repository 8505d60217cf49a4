package fragment

import (
	"context"
	"errors"
	"strings"
	"testing"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func parse(t *testing.T, s string) *html.Node {
	t.Helper()
	nodes, err := html.ParseFragment(strings.NewReader(s), &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("nodes=%d, want 1", len(nodes))
	}
	return nodes[0]
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func TestLink(t *testing.T) {
	got, ok := Link(" Contract ", "https://example.com/terms")
	if !ok {
		t.Fatalf("expected ok")
	}
	want := `<a href="https://example.com/terms" target="_blank" rel="noopener noreferrer">Contract</a>`
	if got != want {
		t.Fatalf("link=%q, want %q", got, want)
	}
}

func TestLink_RequiresBothFields(t *testing.T) {
	for _, tc := range [][2]string{{"", "https://x"}, {"x", ""}, {"  ", "  "}} {
		if _, ok := Link(tc[0], tc[1]); ok {
			t.Fatalf("Link(%q, %q) ok=true, want false", tc[0], tc[1])
		}
	}
}

func TestLink_Escapes(t *testing.T) {
	got, _ := Link(`<b>&</b>`, `https://x/?a=1&b="2"`)
	n := parse(t, got)
	if n.Data != "a" || n.FirstChild == nil || n.FirstChild.Type != html.TextNode {
		t.Fatalf("fragment did not parse back into a single anchor: %q", got)
	}
	if n.FirstChild.Data != `<b>&</b>` {
		t.Fatalf("text=%q", n.FirstChild.Data)
	}
	if got := attr(n, "href"); got != `https://x/?a=1&b="2"` {
		t.Fatalf("href=%q", got)
	}
}

func TestImage(t *testing.T) {
	got, ok := Image(ImageSpec{Src: "https://example.com/logo.png", Alt: "Logo", Width: 400, Height: 250})
	if !ok {
		t.Fatalf("expected ok")
	}
	want := `<img src="https://example.com/logo.png" alt="Logo" width="400" height="250" style="max-width: 100%; height: auto;"/>`
	if got != want {
		t.Fatalf("image=%q, want %q", got, want)
	}
}

func TestImage_AltAlwaysPresent(t *testing.T) {
	got, _ := Image(ImageSpec{Src: "a.png"})
	n := parse(t, got)
	found := false
	for _, a := range n.Attr {
		if a.Key == "alt" {
			found = true
		}
	}
	if !found {
		t.Fatalf("alt missing from %q", got)
	}
	if attr(n, "width") != "300" || attr(n, "height") != "200" {
		t.Fatalf("defaults not applied: %q", got)
	}
}

func TestImage_RequiresSource(t *testing.T) {
	if _, ok := Image(ImageSpec{Src: " ", Width: 100}); ok {
		t.Fatalf("expected ok=false")
	}
}

func TestClamp(t *testing.T) {
	cases := []struct {
		fn   func(int) int
		in   int
		want int
	}{
		{ClampWidth, 10, WidthMin},
		{ClampWidth, 5000, WidthMax},
		{ClampWidth, 404, 400},
		{ClampWidth, 406, 410},
		{ClampWidth, 0, DefaultWidth},
		{ClampHeight, 601, HeightMax},
		{ClampHeight, -4, HeightMin},
		{ClampHeight, 250, 250},
	}
	for i, tc := range cases {
		if got := tc.fn(tc.in); got != tc.want {
			t.Fatalf("case %d: got %d, want %d", i, got, tc.want)
		}
	}
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestDataURL(t *testing.T) {
	got, err := DataURL(pngHeader, "logo.PNG")
	if err != nil {
		t.Fatalf("DataURL: %v", err)
	}
	if !strings.HasPrefix(got, "data:image/png;base64,") {
		t.Fatalf("url=%q", got)
	}
}

func TestDataURL_SniffsUnknownExtension(t *testing.T) {
	got, err := DataURL(pngHeader, "upload.bin")
	if err != nil {
		t.Fatalf("DataURL: %v", err)
	}
	if !strings.HasPrefix(got, "data:image/png;base64,") {
		t.Fatalf("url=%q", got)
	}
}

func TestDataURL_Rejects(t *testing.T) {
	if _, err := DataURL(nil, "a.png"); !errors.Is(err, ErrEmptyFile) {
		t.Fatalf("err=%v, want ErrEmptyFile", err)
	}
	if _, err := DataURL([]byte("plain text"), "notes.txt"); !errors.Is(err, ErrNotImage) {
		t.Fatalf("err=%v, want ErrNotImage", err)
	}
}

func TestReadDataURL(t *testing.T) {
	read := func(string) ([]byte, error) { return pngHeader, nil }
	if _, err := ReadDataURL(context.Background(), "/tmp/a.png", read); err != nil {
		t.Fatalf("ReadDataURL: %v", err)
	}

	boom := errors.New("boom")
	_, err := ReadDataURL(context.Background(), "/tmp/a.png", func(string) ([]byte, error) { return nil, boom })
	if !errors.Is(err, boom) {
		t.Fatalf("err=%v, want wrapped boom", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ReadDataURL(ctx, "/tmp/a.png", read); !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v, want context.Canceled", err)
	}
}
