package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/iw2rmb/inkwell/surface"
)

const toolbarRows = 1

// Model is a Bubble Tea component that edits an HTML document through a
// surface.Surface.
//
// The rendered frame is the toolbar row, the scrolled document, and at most
// one overlay (dialog, picker or image settings) below it.
type Model struct {
	cfg  Config
	surf surface.Surface
	sync *synchronizer
	log  zerolog.Logger

	focused bool
	closed  bool

	width, height int
	viewport      viewport.Model
	rows          []visualRow

	mouseAnchor   int
	mouseDragging bool

	picker *picker
	link   *linkDialog
	image  *imageDialog
	imgSel *imageSelection
	reqSeq int
}

func New(cfg Config) Model {
	cfg = cfg.withDefaults()
	m := Model{
		cfg:      cfg,
		surf:     cfg.Surface,
		log:      cfg.Logger,
		viewport: viewport.New(0, 0),
	}
	m.sync = newSynchronizer(m.surf, cfg)
	m.refresh()
	return m
}

// Surface exposes the live surface. Hosts must not replace its content
// directly; use SetValue.
func (m Model) Surface() surface.Surface { return m.surf }

// Value returns the serialized document.
func (m Model) Value() string { return m.surf.Content() }

// SetValue supplies a document from the host. A value equal to the current
// markup leaves the surface and caret untouched.
func (m Model) SetValue(v string) Model {
	if m.closed {
		return m
	}
	if m.sync.setValue(v) {
		m.imgSel = nil
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) SetSize(width, height int) Model {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m.width, m.height = width, height
	m.refresh()
	return m
}

func (m Model) Focus() Model {
	if !m.focused {
		m.focused = true
		m.sync.focus()
		m.refresh()
	}
	return m
}

// Blur drops focus. Like a click outside the document, it clears the
// image selection.
func (m Model) Blur() Model {
	if m.focused {
		m.focused = false
		m.sync.blur()
		m.mouseDragging = false
		m.imgSel = nil
		m.refresh()
	}
	return m
}

func (m Model) Focused() bool { return m.focused }

// PlaceholderVisible reports whether the placeholder replaces the document.
func (m Model) PlaceholderVisible() bool { return m.sync.placeholderVisible() }

// Close unmounts the editor. The surface is released, overlays and the
// image selection are dropped, and late upload results are ignored.
func (m Model) Close() Model {
	if m.closed {
		return m
	}
	m.closed = true
	m.sync.detach()
	m.picker = nil
	m.link = nil
	m.image = nil
	m.imgSel = nil
	m.mouseDragging = false
	m.log.Debug().Msg("editor closed")
	return m
}

func (m Model) Closed() bool { return m.closed }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.closed {
		return m, nil
	}
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.MouseMsg:
		m, cmd = m.updateMouse(msg)
	case tea.KeyMsg:
		m, cmd = m.routeKey(msg)
	case imageDecodedMsg:
		m = m.handleImageDecoded(msg)
	default:
		return m, nil
	}
	m.refresh()
	return m, cmd
}

func (m Model) routeKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}
	switch {
	case m.link != nil:
		return m.updateLinkDialog(msg)
	case m.image != nil:
		return m.updateImageDialog(msg)
	case m.picker != nil:
		return m.updatePicker(msg)
	case m.imageSelected():
		return m.updateImageSettings(msg)
	}
	return m.updateKey(msg)
}

func (m Model) View() string {
	if m.closed {
		return ""
	}
	bar, _ := m.toolbar()
	parts := []string{bar, m.viewport.View()}
	over, _ := m.overlay()
	parts = append(parts, over...)
	return strings.Join(parts, "\n")
}

// refresh re-lays out the document after any state change.
func (m *Model) refresh() {
	if m.closed {
		return
	}
	if m.imgSel != nil {
		if _, ok := m.surf.Image(m.imgSel.id); !ok {
			m.log.Debug().Msg("selected image no longer resolves")
			m.imgSel = nil
		}
	}
	over, _ := m.overlay()
	h := m.height - toolbarRows - len(over)
	if h < 1 && m.height > 0 {
		h = 1
	}
	if h < 0 {
		h = 0
	}
	m.viewport.Width = m.width
	m.viewport.Height = h
	m.rows = buildRows(m.surf.Blocks(), m.width, m.cfg.Style)
	m.viewport.SetContent(m.renderContent())
	m.followCaret()
}

func (m *Model) followCaret() {
	h := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
	if h <= 0 {
		return
	}
	row := m.caretRow(m.surf.Selection().Head)
	y := m.viewport.YOffset
	if row < y {
		m.viewport.SetYOffset(row)
		return
	}
	if row >= y+h {
		m.viewport.SetYOffset(row - h + 1)
	}
}
