package editor

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/inkwell/fragment"
	"github.com/iw2rmb/inkwell/surface"
)

const logoImage = `<img src="https://example.com/logo.png" alt="Logo" width="400" height="250" style="max-width: 100%; height: auto;"/>`

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestLinkDialog_Confirm(t *testing.T) {
	m := New(Config{Value: "<p>See </p>"})
	m.Surface().SetSelection(surface.Caret(4))
	m = m.OpenLinkDialog()
	if m.LinkReady() {
		t.Fatalf("expected confirm disabled with empty fields")
	}
	m = m.SetLinkText("Contract").SetLinkURL("https://example.com/terms")
	m = m.ConfirmLink()
	want := `<p>See <a href="https://example.com/terms" target="_blank" rel="noopener noreferrer">Contract</a></p>`
	if got := m.Value(); got != want {
		t.Fatalf("value=%q, want %q", got, want)
	}
	if m.LinkDialogOpen() {
		t.Fatalf("expected dialog closed")
	}
}

func TestLinkDialog_ConfirmInsideLink(t *testing.T) {
	m := New(Config{Value: `<p>see <a href="https://old">terms</a> now</p>`})
	m.Surface().SetSelection(surface.Caret(6))
	m = m.OpenLinkDialog().SetLinkText("Contract").SetLinkURL("https://example.com/terms")
	m = m.ConfirmLink()

	want := `<p>see <a href="https://old">te</a>` +
		`<a href="https://example.com/terms" target="_blank" rel="noopener noreferrer">Contract</a>` +
		`<a href="https://old">rms</a> now</p>`
	if got := m.Value(); got != want {
		t.Fatalf("value=%q, want %q", got, want)
	}
	if got := surface.NewDOM(want, surface.Options{}).Content(); got != want {
		t.Fatalf("reparsed=%q, want %q", got, want)
	}
}

func TestLinkDialog_ConfirmBlockedWhenIncomplete(t *testing.T) {
	m := New(Config{Value: "<p>a</p>"})
	m = m.OpenLinkDialog().SetLinkText("Contract")
	m = m.ConfirmLink()
	if !m.LinkDialogOpen() {
		t.Fatalf("expected dialog to stay open")
	}
	if got, want := m.Value(), "<p>a</p>"; got != want {
		t.Fatalf("value=%q, want %q", got, want)
	}
}

func TestLinkDialog_SeedsFromSelection(t *testing.T) {
	m := New(Config{Value: "<p>terms here</p>"})
	m.Surface().SetSelection(surface.Range{Anchor: 0, Head: 5})
	m = m.OpenLinkDialog()
	if got, want := m.link.text.Value(), "terms"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}

func TestLinkDialog_Keyboard(t *testing.T) {
	m := New(Config{})
	m = m.Focus()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlK})
	if !m.LinkDialogOpen() {
		t.Fatalf("expected ctrl+k to open the link dialog")
	}
	m, _ = m.Update(runes("Docs"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m, _ = m.Update(runes("https://x.test"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.Contains(m.Value(), `<a href="https://x.test" target="_blank" rel="noopener noreferrer">Docs</a>`) {
		t.Fatalf("value=%q, want inserted link", m.Value())
	}
}

func TestLinkDialog_Cancel(t *testing.T) {
	m := New(Config{Value: "<p>a</p>"})
	m = m.OpenLinkDialog().SetLinkText("x").SetLinkURL("y").CancelLink()
	if m.LinkDialogOpen() || m.Value() != "<p>a</p>" {
		t.Fatalf("expected nothing inserted, got %q", m.Value())
	}
}

func TestImageDialog_URL(t *testing.T) {
	m := New(Config{})
	m = m.OpenImageDialog()
	m = m.SetImageSource("https://example.com/logo.png").SetImageAlt("Logo").SetImageSize(400, 250)
	m, cmd := m.ConfirmImage()
	if cmd != nil {
		t.Fatalf("expected no command for URL images")
	}
	if got := m.Value(); got != logoImage {
		t.Fatalf("value=%q, want %q", got, logoImage)
	}
	imgs := m.Surface().Images()
	if len(imgs) != 1 {
		t.Fatalf("images=%d, want 1", len(imgs))
	}
	if got, want := imgs[0].Attrs, (surface.ImageAttrs{Src: "https://example.com/logo.png", Alt: "Logo", Width: 400, Height: 250}); got != want {
		t.Fatalf("attrs=%+v, want %+v", got, want)
	}
	if m.ImageDialogOpen() {
		t.Fatalf("expected dialog closed")
	}
}

func TestImageDialog_EmptySourceBlocksConfirm(t *testing.T) {
	m := New(Config{})
	m = m.OpenImageDialog()
	m, cmd := m.ConfirmImage()
	if cmd != nil || !m.ImageDialogOpen() || m.Value() != "" {
		t.Fatalf("expected confirm to be a no-op")
	}
}

func TestImageDialog_SizeIsClamped(t *testing.T) {
	m := New(Config{})
	m = m.OpenImageDialog().SetImageSize(5000, 1)
	if m.image.width != fragment.WidthMax || m.image.height != fragment.HeightMin {
		t.Fatalf("size=%dx%d, want %dx%d", m.image.width, m.image.height, fragment.WidthMax, fragment.HeightMin)
	}
}

func TestImageDialog_Upload(t *testing.T) {
	m := New(Config{ReadFile: func(string) ([]byte, error) { return pngHeader, nil }})
	m = m.OpenImageDialog().SetImageMode(ImageByUpload).SetImageSource("logo.png").SetImageAlt("Logo")
	m, cmd := m.ConfirmImage()
	if cmd == nil {
		t.Fatalf("expected decode command")
	}
	if !m.ImageUploadPending() {
		t.Fatalf("expected pending upload")
	}
	m, _ = m.Update(cmd())
	if !strings.Contains(m.Value(), `src="data:image/png;base64,`) {
		t.Fatalf("value=%q, want data URL image", m.Value())
	}
	if !strings.Contains(m.Value(), `alt="Logo" width="300" height="200"`) {
		t.Fatalf("value=%q, want default size", m.Value())
	}
	if m.ImageDialogOpen() {
		t.Fatalf("expected dialog closed")
	}
}

func TestImageDialog_UploadAfterCancelIsDropped(t *testing.T) {
	m := New(Config{ReadFile: func(string) ([]byte, error) { return pngHeader, nil }})
	m = m.OpenImageDialog().SetImageMode(ImageByUpload).SetImageSource("logo.png")
	m, cmd := m.ConfirmImage()
	m = m.CancelImage()
	m, _ = m.Update(cmd())
	if got := m.Value(); got != "" {
		t.Fatalf("value=%q, want empty", got)
	}
}

func TestImageDialog_UploadAfterCloseIsDropped(t *testing.T) {
	m := New(Config{ReadFile: func(string) ([]byte, error) { return pngHeader, nil }})
	m = m.OpenImageDialog().SetImageMode(ImageByUpload).SetImageSource("logo.png")
	m, cmd := m.ConfirmImage()
	m = m.Close()
	m, _ = m.Update(cmd())
	if got := m.Value(); got != "" {
		t.Fatalf("value=%q, want empty", got)
	}
}

func TestImageDialog_StaleRequestIgnored(t *testing.T) {
	m := New(Config{ReadFile: func(string) ([]byte, error) { return pngHeader, nil }})
	m = m.OpenImageDialog().SetImageMode(ImageByUpload).SetImageSource("old.png")
	m, stale := m.ConfirmImage()
	m = m.CancelImage()

	m = m.OpenImageDialog().SetImageMode(ImageByUpload).SetImageSource("new.png")
	m, fresh := m.ConfirmImage()
	m, _ = m.Update(stale())
	if m.Value() != "" || !m.ImageUploadPending() {
		t.Fatalf("expected stale decode ignored, value=%q", m.Value())
	}
	m, _ = m.Update(fresh())
	if !m.Surface().HasImages() {
		t.Fatalf("expected fresh decode inserted")
	}
}

func TestImageDialog_ModesKeepSeparateSources(t *testing.T) {
	m := New(Config{ReadFile: func(string) ([]byte, error) { return pngHeader, nil }})
	const url = "https://example.com/logo.png"
	m = m.OpenImageDialog().SetImageSource(url)

	m = m.SetImageMode(ImageByUpload)
	if got := m.image.source.Value(); got != "" {
		t.Fatalf("upload source=%q, want empty", got)
	}
	m, cmd := m.ConfirmImage()
	if cmd != nil || !m.ImageDialogOpen() {
		t.Fatalf("expected confirm blocked without a file path")
	}

	m = m.SetImageSource("logo.png").SetImageMode(ImageByURL)
	if got := m.image.source.Value(); got != url {
		t.Fatalf("url source=%q, want %q", got, url)
	}
	m = m.SetImageMode(ImageByUpload)
	if got := m.image.source.Value(); got != "logo.png" {
		t.Fatalf("upload source=%q, want %q", got, "logo.png")
	}
}

func TestImageDialog_ModeSwitchAbandonsUpload(t *testing.T) {
	m := New(Config{ReadFile: func(string) ([]byte, error) { return pngHeader, nil }})
	m = m.OpenImageDialog().SetImageMode(ImageByUpload).SetImageSource("logo.png")
	m, cmd := m.ConfirmImage()
	m = m.SetImageMode(ImageByURL)
	if m.ImageUploadPending() {
		t.Fatalf("expected pending upload dropped")
	}
	m, _ = m.Update(cmd())
	if got := m.Value(); got != "" {
		t.Fatalf("value=%q, want empty", got)
	}
}

func TestImageDialog_ReadErrorShowsNotice(t *testing.T) {
	boom := errors.New("permission denied")
	m := New(Config{ReadFile: func(string) ([]byte, error) { return nil, boom }})
	m = m.SetSize(80, 20)
	m = m.OpenImageDialog().SetImageMode(ImageByUpload).SetImageSource("secret.png")
	m, cmd := m.ConfirmImage()
	m, _ = m.Update(cmd())
	if m.Value() != "" {
		t.Fatalf("value=%q, want nothing inserted", m.Value())
	}
	if !m.ImageDialogOpen() || !strings.Contains(m.ImageNotice(), "permission denied") {
		t.Fatalf("notice=%q, want read error", m.ImageNotice())
	}
	if !strings.Contains(m.View(), "permission denied") {
		t.Fatalf("expected notice rendered")
	}
}

func TestImageDialog_RejectsNonImage(t *testing.T) {
	m := New(Config{ReadFile: func(string) ([]byte, error) { return []byte("plain text"), nil }})
	m = m.OpenImageDialog().SetImageMode(ImageByUpload).SetImageSource("notes.txt")
	m, cmd := m.ConfirmImage()
	m, _ = m.Update(cmd())
	if m.Value() != "" || m.ImageNotice() == "" {
		t.Fatalf("expected rejection notice, value=%q notice=%q", m.Value(), m.ImageNotice())
	}
}

func TestImageDialog_KeyboardSizeSteps(t *testing.T) {
	m := New(Config{})
	m = m.Focus().OpenImageDialog()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if got, want := m.image.width, fragment.DefaultWidth+fragment.Step; got != want {
		t.Fatalf("width=%d, want %d", got, want)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.ImageDialogOpen() {
		t.Fatalf("expected esc to close the dialog")
	}
}
