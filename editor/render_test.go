package editor

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/iw2rmb/inkwell/surface"
)

func TestRender_PlainBlocks(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  string
	}{
		{"paragraphs", "<p>ab</p><p>cd</p>", "ab\ncd"},
		{"bullets", "<ul><li>one</li><li>two</li></ul>", "• one\n• two"},
		{"numbers", "<ol><li>a</li><li>b</li></ol>", "1. a\n2. b"},
		{"quote", "<blockquote><p>q</p></blockquote>", "│ q"},
		{"indent", `<p style="margin-left: 40px;">a</p>`, "  a"},
		{"line break", "<p>a<br/>b</p>", "a\nb"},
		{"image", `<p><img src="a.png" alt="A" width="100" height="50"/></p>`, "[img A 100x50]"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := New(Config{Value: tc.value}).SetSize(40, 10)
			if got := m.renderContent(); got != tc.want {
				t.Fatalf("render:\n got: %q\nwant: %q", got, tc.want)
			}
		})
	}
}

func TestRender_WordWrap(t *testing.T) {
	m := New(Config{Value: "<p>hello world</p>"}).SetSize(8, 10)
	if got, want := m.renderContent(), "hello \nworld"; got != want {
		t.Fatalf("render:\n got: %q\nwant: %q", got, want)
	}
}

func TestRender_CenterPadding(t *testing.T) {
	m := New(Config{Value: `<p style="text-align: center;">ab</p>`}).SetSize(10, 4)
	if got, want := m.renderContent(), "    ab"; got != want {
		t.Fatalf("render:\n got: %q\nwant: %q", got, want)
	}
}

func TestRender_CaretAtEndWhenFocused(t *testing.T) {
	m := New(Config{Value: "<p>ab</p>"}).SetSize(20, 4).Focus()
	m.Surface().SetSelection(surface.Caret(2))
	if got, want := m.renderContent(), "ab "; got != want {
		t.Fatalf("render:\n got: %q\nwant: %q", got, want)
	}
}

func TestRender_PlaceholderStyled(t *testing.T) {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.TrueColor)
	m := New(Config{Placeholder: "Type here", Style: Style{Placeholder: r.NewStyle().Italic(true)}})
	got := m.renderContent()
	if !strings.Contains(got, "Type here") || !strings.Contains(got, "\x1b[3m") {
		t.Fatalf("render=%q, want italic placeholder", got)
	}
}

func TestRender_MarksProduceANSI(t *testing.T) {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.TrueColor)
	r.SetHasDarkBackground(true)
	m := New(Config{Value: "<p><b>ab</b>c</p>", Style: Style{Text: r.NewStyle()}}).SetSize(20, 4)
	got := m.renderContent()
	if !strings.Contains(got, "\x1b[1m") {
		t.Fatalf("render=%q, want bold escape", got)
	}
}

func TestView_Frame(t *testing.T) {
	m := New(Config{Value: "<p>ab</p>"}).SetSize(150, 10)
	lines := strings.Split(m.View(), "\n")
	if len(lines) != 10 {
		t.Fatalf("lines=%d, want 10", len(lines))
	}
	if !strings.HasPrefix(lines[0], "BIUS") {
		t.Fatalf("toolbar=%q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "ab") {
		t.Fatalf("document row=%q", lines[1])
	}

	m = m.OpenLinkDialog()
	lines = strings.Split(m.View(), "\n")
	if len(lines) != 10 || !strings.Contains(m.View(), "Insert link") {
		t.Fatalf("expected overlay inside the frame, got %d lines", len(lines))
	}
}

func TestHitTest_Targets(t *testing.T) {
	m := New(Config{Value: `<p>ab</p><p>c<img src="a.png" alt="A" width="100" height="50"/></p>`}).SetSize(40, 10)
	if got := m.targetAt(1, 0); got.Kind != surface.TargetText || got.Offset != 1 {
		t.Fatalf("target=%+v, want text at 1", got)
	}
	if got := m.targetAt(3, 1); got.Kind != surface.TargetImage || got.Offset != 4 {
		t.Fatalf("target=%+v, want image at 4", got)
	}
	if got := m.targetAt(30, 0); got.Kind != surface.TargetText || got.Offset != 2 {
		t.Fatalf("target=%+v, want row end", got)
	}
	if got := m.targetAt(0, 9); got.Offset != m.Surface().Len() {
		t.Fatalf("target=%+v, want document end", got)
	}
}

func TestHitTest_VerticalMove(t *testing.T) {
	m := New(Config{Value: "<p>abc</p><p>de</p>"}).SetSize(40, 10).Focus()
	m.Surface().SetSelection(surface.Caret(2))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got, want := m.Surface().Selection(), surface.Caret(6); got != want {
		t.Fatalf("selection=%v, want %v", got, want)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if got, want := m.Surface().Selection(), surface.Caret(2); got != want {
		t.Fatalf("selection=%v, want %v", got, want)
	}
}

func TestMouse_DragSelects(t *testing.T) {
	m := New(Config{Value: "<p>abcd</p>"}).SetSize(40, 10).Focus()
	m, _ = m.Update(tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = m.Update(tea.MouseMsg{X: 3, Y: 1, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m, _ = m.Update(tea.MouseMsg{X: 3, Y: 1, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if got, want := m.Surface().Selection(), (surface.Range{Anchor: 1, Head: 3}); got != want {
		t.Fatalf("selection=%v, want %v", got, want)
	}
}
