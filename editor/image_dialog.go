package editor

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/inkwell/fragment"
	"github.com/iw2rmb/inkwell/surface"
)

// ImageSource selects how the image dialog obtains the image.
type ImageSource int

const (
	ImageByURL ImageSource = iota
	ImageByUpload
)

const (
	imageFieldSource = iota
	imageFieldAlt
	imageFieldWidth
	imageFieldHeight
	imageFieldCount
)

// imageRequest is one submitted upload awaiting its decode.
type imageRequest struct {
	id   int
	spec fragment.ImageSpec
}

type imageDialog struct {
	mode   ImageSource
	source textinput.Model
	alt    textinput.Model
	width  int
	height int
	focus  int

	// source text of the inactive mode
	otherSource string

	pending *imageRequest
	notice  string
}

// imageDecodedMsg carries the result of reading an uploaded file.
type imageDecodedMsg struct {
	id  int
	url string
	err error
}

func newImageDialog() *imageDialog {
	d := &imageDialog{
		source: newTextInput("https://example.com/image.png"),
		alt:    newTextInput("Alt text (optional)"),
		width:  fragment.DefaultWidth,
		height: fragment.DefaultHeight,
	}
	d.setFocus(imageFieldSource)
	return d
}

func (d *imageDialog) setFocus(i int) {
	d.focus = (i + imageFieldCount) % imageFieldCount
	d.source.Blur()
	d.alt.Blur()
	switch d.focus {
	case imageFieldSource:
		d.source.Focus()
	case imageFieldAlt:
		d.alt.Focus()
	}
}

// setMode switches between URL and upload. Each mode keeps its own
// source text; a pending upload is abandoned.
func (d *imageDialog) setMode(mode ImageSource) {
	if mode != d.mode {
		prev := d.source.Value()
		d.source.SetValue(d.otherSource)
		d.otherSource = prev
		d.pending = nil
	}
	d.mode = mode
	if mode == ImageByUpload {
		d.source.Placeholder = "/path/to/image.png"
	} else {
		d.source.Placeholder = "https://example.com/image.png"
	}
	d.notice = ""
}

func (d *imageDialog) ready() bool {
	return d.pending == nil && strings.TrimSpace(d.source.Value()) != ""
}

func (d *imageDialog) spec(src string) fragment.ImageSpec {
	return fragment.ImageSpec{
		Src:    src,
		Alt:    d.alt.Value(),
		Width:  d.width,
		Height: d.height,
	}
}

func (m Model) OpenImageDialog() Model {
	if m.closed {
		return m
	}
	m = m.closeOverlays()
	m.image = newImageDialog()
	m.refresh()
	return m
}

func (m Model) ImageDialogOpen() bool { return m.image != nil }

// ImageUploadPending reports whether a submitted upload is still decoding.
func (m Model) ImageUploadPending() bool { return m.image != nil && m.image.pending != nil }

// ImageNotice returns the inline message shown in the image dialog.
func (m Model) ImageNotice() string {
	if m.image == nil {
		return ""
	}
	return m.image.notice
}

func (m Model) SetImageMode(mode ImageSource) Model {
	if m.image != nil {
		m.image.setMode(mode)
	}
	return m
}

// SetImageSource sets the URL or, in upload mode, the file path.
func (m Model) SetImageSource(s string) Model {
	if m.image != nil {
		m.image.source.SetValue(s)
	}
	return m
}

func (m Model) SetImageAlt(s string) Model {
	if m.image != nil {
		m.image.alt.SetValue(s)
	}
	return m
}

// SetImageSize sets the dialog's dimensions, clamped to the allowed range.
func (m Model) SetImageSize(width, height int) Model {
	if m.image != nil {
		m.image.width = fragment.ClampWidth(width)
		m.image.height = fragment.ClampHeight(height)
	}
	return m
}

// ConfirmImage inserts a URL image directly. An upload is decoded first:
// the returned command reads the file and its result is applied by Update.
func (m Model) ConfirmImage() (Model, tea.Cmd) {
	if m.image == nil || !m.image.ready() {
		return m, nil
	}
	d := m.image
	src := strings.TrimSpace(d.source.Value())
	if d.mode == ImageByURL {
		frag, ok := fragment.Image(d.spec(src))
		if !ok {
			return m, nil
		}
		m.image = nil
		return m.Exec(surface.InsertHTML, frag), nil
	}

	m.reqSeq++
	req := &imageRequest{id: m.reqSeq, spec: d.spec("")}
	d.pending = req
	d.notice = ""
	m.log.Debug().Int("request", req.id).Str("path", src).Msg("image decode started")
	return m, decodeImage(req.id, src, m.readFile())
}

func (m Model) CancelImage() Model {
	if m.image != nil && m.image.pending != nil {
		m.log.Debug().Int("request", m.image.pending.id).Msg("image dialog closed mid-decode")
	}
	m.image = nil
	m.refresh()
	return m
}

func (m Model) readFile() func(string) ([]byte, error) {
	return m.cfg.ReadFile
}

func decodeImage(id int, path string, read func(string) ([]byte, error)) tea.Cmd {
	return func() tea.Msg {
		url, err := fragment.ReadDataURL(context.Background(), path, read)
		return imageDecodedMsg{id: id, url: url, err: err}
	}
}

// handleImageDecoded applies a finished decode only if the same request is
// still pending; anything else is dropped.
func (m Model) handleImageDecoded(msg imageDecodedMsg) Model {
	if m.closed || m.image == nil || m.image.pending == nil || m.image.pending.id != msg.id {
		m.log.Debug().Int("request", msg.id).Msg("stale image decode discarded")
		return m
	}
	req := m.image.pending
	m.image.pending = nil
	if msg.err != nil {
		m.log.Debug().Err(msg.err).Int("request", msg.id).Msg("image decode failed")
		m.image.notice = "Could not read image: " + msg.err.Error()
		return m
	}
	spec := req.spec
	spec.Src = msg.url
	frag, ok := fragment.Image(spec)
	if !ok {
		return m
	}
	m.image = nil
	return m.Exec(surface.InsertHTML, frag)
}

func (m Model) updateImageDialog(msg tea.KeyMsg) (Model, tea.Cmd) {
	km := m.cfg.KeyMap
	d := m.image
	switch {
	case key.Matches(msg, km.Dismiss):
		return m.CancelImage(), nil
	case key.Matches(msg, km.Confirm):
		return m.ConfirmImage()
	case key.Matches(msg, km.ToggleMode):
		d.setMode(1 - d.mode)
		return m, nil
	case key.Matches(msg, km.Next):
		d.setFocus(d.focus + 1)
		return m, nil
	case key.Matches(msg, km.Prev):
		d.setFocus(d.focus - 1)
		return m, nil
	}

	switch d.focus {
	case imageFieldWidth, imageFieldHeight:
		delta := 0
		switch {
		case key.Matches(msg, km.Increase), key.Matches(msg, km.Right):
			delta = fragment.Step
		case key.Matches(msg, km.Decrease), key.Matches(msg, km.Left):
			delta = -fragment.Step
		}
		if d.focus == imageFieldWidth {
			d.width = fragment.ClampWidth(d.width + delta)
		} else {
			d.height = fragment.ClampHeight(d.height + delta)
		}
		return m, nil
	case imageFieldAlt:
		var cmd tea.Cmd
		d.alt, cmd = d.alt.Update(msg)
		return m, cmd
	default:
		var cmd tea.Cmd
		d.source, cmd = d.source.Update(msg)
		return m, cmd
	}
}

func (m Model) imageDialogView() ([]string, []hotspot) {
	st := m.cfg.Style
	d := m.image
	label := func(s string, i int) string {
		if d.focus == i {
			return st.Focused.Render(s)
		}
		return st.Label.Render(s)
	}

	mode := lineBuilder{row: 0}
	mode.text(st.Heading.Render("Insert image") + "  ")
	for _, opt := range []struct {
		mode  ImageSource
		label string
	}{{ImageByURL, "URL"}, {ImageByUpload, "Upload"}} {
		mark := "( ) "
		if d.mode == opt.mode {
			mark = "(•) "
		}
		mode.button(mark+opt.label, func(m Model) (Model, tea.Cmd) { return m.SetImageMode(opt.mode), nil })
		mode.text("  ")
	}

	source := "URL:    "
	if d.mode == ImageByUpload {
		source = "File:   "
	}

	size := lineBuilder{row: 3}
	adjust := func(dw, dh int) func(Model) (Model, tea.Cmd) {
		return func(m Model) (Model, tea.Cmd) {
			if m.image == nil {
				return m, nil
			}
			return m.SetImageSize(m.image.width+dw, m.image.height+dh), nil
		}
	}
	stepper(&size, st, "Width:", d.width, d.focus == imageFieldWidth, adjust(-fragment.Step, 0), adjust(fragment.Step, 0))
	size.text("   ")
	stepper(&size, st, "Height:", d.height, d.focus == imageFieldHeight, adjust(0, -fragment.Step), adjust(0, fragment.Step))

	status := ""
	switch {
	case d.pending != nil:
		status = st.Muted.Render("Reading image…")
	case d.notice != "":
		status = st.Notice.Render(d.notice)
	}

	actions := lineBuilder{row: 5}
	insert := st.Focused
	if !d.ready() {
		insert = st.Muted
	}
	actions.button(insert.Render("[Insert]"), func(m Model) (Model, tea.Cmd) { return m.ConfirmImage() })
	actions.text(" ")
	actions.button(st.Text.Render("[Cancel]"), func(m Model) (Model, tea.Cmd) { return m.CancelImage(), nil })

	spots := append(mode.spots, size.spots...)
	spots = append(spots, actions.spots...)
	return []string{
		mode.String(),
		label(source, imageFieldSource) + d.source.View(),
		label("Alt:    ", imageFieldAlt) + d.alt.View(),
		size.String(),
		status,
		actions.String(),
	}, spots
}
