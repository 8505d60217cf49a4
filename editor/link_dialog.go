package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/inkwell/fragment"
	"github.com/iw2rmb/inkwell/surface"
)

// linkDialog holds a pending link insertion. It exists only while the
// dialog is open.
type linkDialog struct {
	text  textinput.Model
	url   textinput.Model
	focus int
}

func newTextInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.Width = 40
	return ti
}

func newLinkDialog(text string) *linkDialog {
	d := &linkDialog{
		text: newTextInput("Link text"),
		url:  newTextInput("https://"),
	}
	d.text.SetValue(text)
	d.setFocus(0)
	if text != "" {
		d.setFocus(1)
	}
	return d
}

func (d *linkDialog) setFocus(i int) {
	d.focus = (i + 2) % 2
	d.text.Blur()
	d.url.Blur()
	if d.focus == 0 {
		d.text.Focus()
	} else {
		d.url.Focus()
	}
}

// ready reports whether confirm is enabled.
func (d *linkDialog) ready() bool {
	return strings.TrimSpace(d.text.Value()) != "" && strings.TrimSpace(d.url.Value()) != ""
}

// OpenLinkDialog starts a link insertion, seeding the text from the
// selection.
func (m Model) OpenLinkDialog() Model {
	if m.closed {
		return m
	}
	m = m.closeOverlays()
	text, _, _ := strings.Cut(m.surf.SelectedText(), "\n")
	m.link = newLinkDialog(text)
	m.refresh()
	return m
}

func (m Model) LinkDialogOpen() bool { return m.link != nil }

// LinkReady reports whether the open link dialog can be confirmed.
func (m Model) LinkReady() bool { return m.link != nil && m.link.ready() }

func (m Model) SetLinkText(s string) Model {
	if m.link != nil {
		m.link.text.SetValue(s)
	}
	return m
}

func (m Model) SetLinkURL(s string) Model {
	if m.link != nil {
		m.link.url.SetValue(s)
	}
	return m
}

// ConfirmLink inserts the pending link at the caret and closes the dialog.
// It does nothing while either field is empty.
func (m Model) ConfirmLink() Model {
	if m.link == nil || !m.link.ready() {
		return m
	}
	frag, ok := fragment.Link(m.link.text.Value(), m.link.url.Value())
	if !ok {
		return m
	}
	m.link = nil
	return m.Exec(surface.InsertHTML, frag)
}

func (m Model) CancelLink() Model {
	m.link = nil
	m.refresh()
	return m
}

func (m Model) updateLinkDialog(msg tea.KeyMsg) (Model, tea.Cmd) {
	km := m.cfg.KeyMap
	switch {
	case key.Matches(msg, km.Dismiss):
		return m.CancelLink(), nil
	case key.Matches(msg, km.Confirm):
		return m.ConfirmLink(), nil
	case key.Matches(msg, km.Next), key.Matches(msg, km.Down):
		m.link.setFocus(m.link.focus + 1)
		return m, nil
	case key.Matches(msg, km.Prev), key.Matches(msg, km.Up):
		m.link.setFocus(m.link.focus - 1)
		return m, nil
	}
	var cmd tea.Cmd
	if m.link.focus == 0 {
		m.link.text, cmd = m.link.text.Update(msg)
	} else {
		m.link.url, cmd = m.link.url.Update(msg)
	}
	return m, cmd
}

func (m Model) linkView() ([]string, []hotspot) {
	st := m.cfg.Style
	d := m.link
	label := func(s string, i int) string {
		if d.focus == i {
			return st.Focused.Render(s)
		}
		return st.Label.Render(s)
	}
	b := lineBuilder{row: 3}
	insert := st.Focused
	if !d.ready() {
		insert = st.Muted
	}
	b.button(insert.Render("[Insert]"), func(m Model) (Model, tea.Cmd) { return m.ConfirmLink(), nil })
	b.text(" ")
	b.button(st.Text.Render("[Cancel]"), func(m Model) (Model, tea.Cmd) { return m.CancelLink(), nil })
	return []string{
		st.Heading.Render("Insert link"),
		label("Text: ", 0) + d.text.View(),
		label("URL:  ", 1) + d.url.View(),
		b.String(),
	}, b.spots
}
