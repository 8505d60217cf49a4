package editor

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/inkwell/fragment"
	"github.com/iw2rmb/inkwell/surface"
)

const (
	imgFieldWidth = iota
	imgFieldHeight
	imgFieldAlt
	imgFieldCount
)

// imageSelection is the single selected image and its settings draft.
// Edits touch working only; ApplyImage writes them to the document. seed
// holds the attributes read when the image was selected.
type imageSelection struct {
	id      surface.ImageID
	seed    surface.ImageAttrs
	working surface.ImageAttrs
	alt     textinput.Model
	focus   int
}

func newImageSelection(id surface.ImageID, attrs surface.ImageAttrs) *imageSelection {
	s := &imageSelection{id: id, seed: attrs, working: attrs, alt: newTextInput("Alt text")}
	s.alt.SetValue(attrs.Alt)
	s.setFocus(imgFieldWidth)
	return s
}

func (s *imageSelection) setFocus(i int) {
	s.focus = (i + imgFieldCount) % imgFieldCount
	if s.focus == imgFieldAlt {
		s.alt.Focus()
	} else {
		s.alt.Blur()
	}
}

// Click handles a pointer press on the document. An image becomes the
// selected image, replacing any previous one; anything else clears it.
func (m Model) Click(t surface.Target) Model {
	if m.closed {
		return m
	}
	switch t.Kind {
	case surface.TargetImage:
		attrs, ok := m.surf.Image(t.Image)
		if !ok {
			m.imgSel = nil
			break
		}
		if m.imgSel == nil || m.imgSel.id != t.Image {
			m.imgSel = newImageSelection(t.Image, attrs)
		}
		m.surf.SetSelection(surface.Caret(t.Offset))
	case surface.TargetText:
		m.imgSel = nil
		m.surf.SetSelection(surface.Caret(t.Offset))
	default:
		m.imgSel = nil
	}
	m.refresh()
	return m
}

func (m Model) imageSelected() bool {
	if m.imgSel == nil {
		return false
	}
	_, ok := m.surf.Image(m.imgSel.id)
	return ok
}

// SelectedImage returns the selected image and its unapplied settings.
func (m Model) SelectedImage() (surface.ImageID, surface.ImageAttrs, bool) {
	if !m.imageSelected() {
		return surface.ImageID{}, surface.ImageAttrs{}, false
	}
	w := m.imgSel.working
	w.Alt = m.imgSel.alt.Value()
	return m.imgSel.id, w, true
}

// SetSelectedImageSize updates the working size, clamped to the allowed
// range; the document is unchanged until ApplyImage.
func (m Model) SetSelectedImageSize(width, height int) Model {
	if m.imageSelected() {
		m.imgSel.working.Width = fragment.ClampWidth(width)
		m.imgSel.working.Height = fragment.ClampHeight(height)
	}
	return m
}

func (m Model) SetSelectedImageAlt(alt string) Model {
	if m.imageSelected() {
		m.imgSel.alt.SetValue(alt)
	}
	return m
}

// ApplyImage writes the working settings to the selected image, keeping
// its source. Sizes left as selected are not rewritten. The selection
// stays on the image.
func (m Model) ApplyImage() Model {
	id, attrs, ok := m.SelectedImage()
	if !ok {
		m.imgSel = nil
		m.refresh()
		return m
	}
	attrs.Src = ""
	if attrs.Width == m.imgSel.seed.Width {
		attrs.Width = 0
	}
	if attrs.Height == m.imgSel.seed.Height {
		attrs.Height = 0
	}
	changed := m.surf.SetImage(id, attrs)
	m.log.Debug().Bool("changed", changed).Int("width", attrs.Width).Int("height", attrs.Height).Msg("image settings applied")
	m.sync.handleInput()
	m.refresh()
	return m
}

// DismissImage clears the image selection without applying pending edits.
func (m Model) DismissImage() Model {
	m.imgSel = nil
	m.refresh()
	return m
}

func (m Model) updateImageSettings(msg tea.KeyMsg) (Model, tea.Cmd) {
	km := m.cfg.KeyMap
	s := m.imgSel
	switch {
	case key.Matches(msg, km.Dismiss):
		return m.DismissImage(), nil
	case key.Matches(msg, km.Confirm):
		return m.ApplyImage(), nil
	case key.Matches(msg, km.Next):
		s.setFocus(s.focus + 1)
		return m, nil
	case key.Matches(msg, km.Prev):
		s.setFocus(s.focus - 1)
		return m, nil
	}
	if s.focus == imgFieldAlt {
		var cmd tea.Cmd
		s.alt, cmd = s.alt.Update(msg)
		return m, cmd
	}
	delta := 0
	switch {
	case key.Matches(msg, km.Increase), key.Matches(msg, km.Right):
		delta = fragment.Step
	case key.Matches(msg, km.Decrease), key.Matches(msg, km.Left):
		delta = -fragment.Step
	case key.Matches(msg, km.Backspace), key.Matches(msg, km.Delete):
		// Never delete through the image while its settings are open.
		return m, nil
	}
	if delta == 0 {
		return m, nil
	}
	if s.focus == imgFieldWidth {
		return m.stepSelectedImage(delta, 0), nil
	}
	return m.stepSelectedImage(0, delta), nil
}

// stepSelectedImage moves one dimension by a step. The other dimension
// keeps its current value.
func (m Model) stepSelectedImage(dw, dh int) Model {
	if !m.imageSelected() {
		return m
	}
	w := &m.imgSel.working
	if dw != 0 {
		w.Width = fragment.ClampWidth(fragment.ClampWidth(w.Width) + dw)
	}
	if dh != 0 {
		w.Height = fragment.ClampHeight(fragment.ClampHeight(w.Height) + dh)
	}
	return m
}

func (m Model) imageSettingsView() ([]string, []hotspot) {
	st := m.cfg.Style
	s := m.imgSel

	size := lineBuilder{row: 1}
	adjust := func(dw, dh int) func(Model) (Model, tea.Cmd) {
		return func(m Model) (Model, tea.Cmd) {
			return m.stepSelectedImage(dw, dh), nil
		}
	}
	stepper(&size, st, "Width:", s.working.Width, s.focus == imgFieldWidth, adjust(-fragment.Step, 0), adjust(fragment.Step, 0))
	size.text("   ")
	stepper(&size, st, "Height:", s.working.Height, s.focus == imgFieldHeight, adjust(0, -fragment.Step), adjust(0, fragment.Step))

	altLabel := st.Label
	if s.focus == imgFieldAlt {
		altLabel = st.Focused
	}

	actions := lineBuilder{row: 3}
	actions.button(st.Focused.Render("[Apply]"), func(m Model) (Model, tea.Cmd) { return m.ApplyImage(), nil })
	actions.text(" ")
	actions.button(st.Text.Render("[Close]"), func(m Model) (Model, tea.Cmd) { return m.DismissImage(), nil })

	return []string{
		st.Heading.Render("Image settings"),
		size.String(),
		altLabel.Render("Alt: ") + s.alt.View(),
		actions.String(),
	}, append(size.spots, actions.spots...)
}
