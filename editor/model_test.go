package editor

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/inkwell/surface"
	"github.com/iw2rmb/inkwell/surface/surfacetest"
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestModel_ValueRoundTrip(t *testing.T) {
	m := New(Config{Value: "<p>hello</p>"})
	if got, want := m.Value(), "<p>hello</p>"; got != want {
		t.Fatalf("value=%q, want %q", got, want)
	}
}

func TestModel_EchoKeepsCaret(t *testing.T) {
	var rec recorder
	m := New(Config{Value: "<p>hello</p>", OnChange: rec.onChange})
	m = m.Focus()
	m.Surface().SetSelection(surface.Caret(3))
	m, _ = m.Update(runes("X"))

	if len(rec.got) != 1 || rec.got[0] != "<p>helXlo</p>" {
		t.Fatalf("emitted=%q, want [<p>helXlo</p>]", rec.got)
	}
	m = m.SetValue(rec.got[0])
	if got, want := m.Surface().Selection(), surface.Caret(4); got != want {
		t.Fatalf("selection=%v, want %v", got, want)
	}
}

func TestModel_ConfiguredSurfaceIsSeeded(t *testing.T) {
	f := surfacetest.New("<p>old</p>")
	m := New(Config{Value: "<p>new</p>", Surface: f})
	if got, want := m.Value(), "<p>new</p>"; got != want {
		t.Fatalf("value=%q, want %q", got, want)
	}
	if !f.Subscribed() {
		t.Fatalf("expected content listener registered")
	}
}

func TestModel_ExecBoldOnSelection(t *testing.T) {
	var rec recorder
	m := New(Config{Value: "<p>abc</p>", OnChange: rec.onChange})
	m.Surface().SetSelection(surface.Range{Anchor: 0, Head: 2})
	m = m.Exec(surface.Bold, "")
	if got, want := m.Value(), "<p><b>ab</b>c</p>"; got != want {
		t.Fatalf("value=%q, want %q", got, want)
	}
	if len(rec.got) != 1 || rec.got[0] != m.Value() {
		t.Fatalf("emitted=%q, want [%q]", rec.got, m.Value())
	}
}

func TestModel_ExecBoldCollapsedIsNoop(t *testing.T) {
	var rec recorder
	m := New(Config{Value: "<p>abc</p>", OnChange: rec.onChange})
	m.Surface().SetSelection(surface.Caret(1))
	m = m.Exec(surface.Bold, "")
	if got, want := m.Value(), "<p>abc</p>"; got != want {
		t.Fatalf("value=%q, want %q", got, want)
	}
	if got, want := m.Surface().Len(), 3; got != want {
		t.Fatalf("len=%d, want %d", got, want)
	}
	if len(rec.got) != 0 {
		t.Fatalf("emitted=%q, want none", rec.got)
	}
}

func TestModel_ExecForwardsToSurface(t *testing.T) {
	f := surfacetest.New("<p>a</p>")
	m := New(Config{Value: "<p>a</p>", Surface: f})
	m = m.Exec(surface.Bold, "")
	m = m.Exec(surface.Command("bogus"), "")
	if len(f.Calls) != 2 || f.Calls[0].Cmd != surface.Bold {
		t.Fatalf("calls=%v", f.Calls)
	}
}

func TestModel_PlaceholderSequence(t *testing.T) {
	m := New(Config{Placeholder: "Write something"})
	m = m.SetSize(40, 5)
	if !m.PlaceholderVisible() || !strings.Contains(m.View(), "Write something") {
		t.Fatalf("expected placeholder on mount")
	}
	m = m.Focus()
	if m.PlaceholderVisible() {
		t.Fatalf("expected placeholder hidden on focus")
	}
	m = m.Blur()
	if !m.PlaceholderVisible() {
		t.Fatalf("expected placeholder after blur while empty")
	}
	m = m.Focus()
	m, _ = m.Update(runes("h"))
	m = m.Blur()
	if m.PlaceholderVisible() {
		t.Fatalf("expected placeholder hidden once text exists")
	}
}

func TestModel_PlaceholderHiddenForImageOnly(t *testing.T) {
	m := New(Config{Value: `<p><img src="a.png"/></p>`, Placeholder: "Write something"})
	if m.PlaceholderVisible() {
		t.Fatalf("expected placeholder hidden for image-only document")
	}
}

func TestModel_SetValueQueuedFromOnChange(t *testing.T) {
	var m Model
	m = New(Config{Value: "<p>a</p>", OnChange: func(v string) {
		if v != "<p>server</p>" {
			m.SetValue("<p>server</p>")
		}
	}})
	m = m.Focus()
	m.Surface().SetSelection(surface.Caret(1))
	m, _ = m.Update(runes("b"))
	if got, want := m.Value(), "<p>server</p>"; got != want {
		t.Fatalf("value=%q, want %q", got, want)
	}
}

func TestModel_CloseReleasesSurface(t *testing.T) {
	f := surfacetest.New("<p>a</p>")
	var rec recorder
	m := New(Config{Value: "<p>a</p>", Surface: f, OnChange: rec.onChange})
	m = m.OpenLinkDialog()
	m = m.Close()
	if !m.Closed() || m.LinkDialogOpen() {
		t.Fatalf("expected closed editor without overlays")
	}
	if f.Subscribed() {
		t.Fatalf("expected listener removed on close")
	}
	f.Type("<p>b</p>")
	if len(rec.got) != 0 {
		t.Fatalf("emitted=%q, want none", rec.got)
	}
	if m.View() != "" {
		t.Fatalf("expected empty view after close")
	}
}

func TestModel_KeysIgnoredWhenBlurred(t *testing.T) {
	m := New(Config{Value: "<p>a</p>"})
	m, _ = m.Update(runes("z"))
	if got, want := m.Value(), "<p>a</p>"; got != want {
		t.Fatalf("value=%q, want %q", got, want)
	}
}

func TestModel_EnterAndBackspace(t *testing.T) {
	m := New(Config{Value: "<p>ab</p>"})
	m = m.Focus()
	m.Surface().SetSelection(surface.Caret(1))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got, want := m.Value(), "<p>a</p><p>b</p>"; got != want {
		t.Fatalf("value=%q, want %q", got, want)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if got, want := m.Value(), "<p>ab</p>"; got != want {
		t.Fatalf("value=%q, want %q", got, want)
	}
}

func TestModel_ArrowsCollapseSelection(t *testing.T) {
	m := New(Config{Value: "<p>abcd</p>"})
	m = m.Focus()
	m.Surface().SetSelection(surface.Range{Anchor: 1, Head: 3})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if got, want := m.Surface().Selection(), surface.Caret(1); got != want {
		t.Fatalf("selection=%v, want %v", got, want)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftRight})
	if got, want := m.Surface().Selection(), (surface.Range{Anchor: 1, Head: 2}); got != want {
		t.Fatalf("selection=%v, want %v", got, want)
	}
}

type memClipboard struct{ s string }

func (c *memClipboard) ReadText() (string, error) { return c.s, nil }
func (c *memClipboard) WriteText(s string) error  { c.s = s; return nil }

func TestModel_CutPaste(t *testing.T) {
	cb := &memClipboard{}
	m := New(Config{Value: "<p>abc</p>", Clipboard: cb})
	m = m.Focus()
	m.Surface().SetSelection(surface.Range{Anchor: 0, Head: 1})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlX})
	if cb.s != "a" {
		t.Fatalf("clipboard=%q, want %q", cb.s, "a")
	}
	m.Surface().SetSelection(surface.Caret(2))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlV})
	if got, want := m.Value(), "<p>bca</p>"; got != want {
		t.Fatalf("value=%q, want %q", got, want)
	}
}

func TestModel_TabIndents(t *testing.T) {
	m := New(Config{Value: "<p>a</p>"})
	m = m.Focus()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got, want := m.Value(), `<p style="margin-left: 40px;">a</p>`; got != want {
		t.Fatalf("value=%q, want %q", got, want)
	}
}
