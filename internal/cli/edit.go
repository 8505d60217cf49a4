package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/iw2rmb/inkwell/editor"
	"github.com/iw2rmb/inkwell/internal/config"
	"github.com/iw2rmb/inkwell/store"
)

type EditCommand struct {
	ID string `long:"id" required:"true" description:"Template id"`
}

func (command *EditCommand) Execute(args []string) error {
	ctx := context.Background()
	e, err := setup(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	t, err := e.store.Get(ctx, command.ID)
	if err != nil {
		return fmt.Errorf("load template %s: %w", command.ID, err)
	}
	drafts := e.drafts(ctx)
	if drafts != nil {
		defer drafts.Close()
	}

	app := newEditApp(ctx, t, e.store, drafts, e.cfg, e.log)
	app.cfg.Clipboard = newClipboard()
	p := tea.NewProgram(app.start(), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}

type appKeyMap struct {
	Save key.Binding
	Quit key.Binding
}

func defaultAppKeyMap() appKeyMap {
	return appKeyMap{
		Save: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Quit: key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "quit")),
	}
}

// docState is shared by editApp copies; the editor's OnChange writes to it.
type docState struct {
	value   string
	dirty   bool // differs from the stored template
	drafted bool // differs from the last autosaved draft
}

type (
	autosaveTickMsg struct{}
	savedMsg        struct {
		body string
		err  error
	}
	draftSavedMsg     struct{ err error }
	draftDiscardedMsg struct{ err error }
)

type editApp struct {
	ctx      context.Context
	tpl      store.Template
	store    store.Saver
	drafts   *store.Drafts
	log      zerolog.Logger
	keys     appKeyMap
	interval time.Duration

	cfg    editor.Config
	ed     editor.Model
	doc    *docState
	status string
	width  int
	height int
}

func newEditApp(ctx context.Context, t store.Template, saver store.Saver, drafts *store.Drafts, c config.Config, log zerolog.Logger) *editApp {
	app := &editApp{
		ctx:      ctx,
		tpl:      t,
		store:    saver,
		drafts:   drafts,
		log:      log,
		keys:     defaultAppKeyMap(),
		interval: c.AutosaveInterval(),
		doc:      &docState{value: t.Body},
	}
	palette := editor.DefaultPalette()
	if len(c.Editor.Fonts) > 0 {
		palette.Fonts = c.Editor.Fonts
	}
	if len(c.Editor.Colors) > 0 {
		palette.Colors = c.Editor.Colors
	}
	app.cfg = editor.Config{
		Value:        t.Body,
		Placeholder:  c.Editor.Placeholder,
		HistoryLimit: c.Editor.HistoryLimit,
		Style:        editor.DefaultStyle(),
		Palette:      palette,
		Logger:       log.With().Str("component", "editor").Logger(),
	}

	if drafts != nil {
		d, err := drafts.Load(ctx, t.ID)
		switch {
		case err == nil && d.Body != t.Body && d.SavedAt.After(t.UpdatedAt):
			app.cfg.Value = d.Body
			app.doc.value = d.Body
			app.doc.dirty = true
			app.status = "Restored draft from " + d.SavedAt.Local().Format("Jan 2 15:04")
		case err != nil && !errors.Is(err, store.ErrNotFound):
			log.Warn().Err(err).Str("id", t.ID).Msg("load draft failed")
		}
	}
	return app
}

// start builds the editor; cfg must be final.
func (a *editApp) start() editApp {
	doc := a.doc
	a.cfg.OnChange = func(next string) {
		doc.value = next
		doc.dirty = true
		doc.drafted = true
	}
	a.ed = editor.New(a.cfg).Focus()
	return *a
}

func (a editApp) Init() tea.Cmd { return a.tick() }

func (a editApp) tick() tea.Cmd {
	if a.drafts == nil || a.interval <= 0 {
		return nil
	}
	return tea.Tick(a.interval, func(time.Time) tea.Msg { return autosaveTickMsg{} })
}

func (a editApp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.ed = a.ed.SetSize(msg.Width, max(1, msg.Height-1))
		return a, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			a.ed = a.ed.Close()
			return a, tea.Quit
		case key.Matches(msg, a.keys.Save):
			a.status = "Saving…"
			return a, a.save(a.doc.value)
		}
	case autosaveTickMsg:
		if !a.doc.drafted {
			return a, a.tick()
		}
		a.doc.drafted = false
		return a, tea.Batch(a.saveDraft(a.doc.value), a.tick())
	case savedMsg:
		if msg.err != nil {
			a.status = "Save failed: " + msg.err.Error()
			return a, nil
		}
		a.status = "Saved"
		if a.doc.value != msg.body {
			// Edited while saving: the draft now holds newer work.
			return a, nil
		}
		a.doc.dirty = false
		a.doc.drafted = false
		return a, a.discardDraft()
	case draftSavedMsg:
		if msg.err != nil {
			a.log.Warn().Err(msg.err).Str("id", a.tpl.ID).Msg("autosave failed")
			a.status = "Autosave failed"
		}
		return a, nil
	case draftDiscardedMsg:
		if msg.err != nil {
			a.log.Warn().Err(msg.err).Str("id", a.tpl.ID).Msg("discard draft failed")
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.ed, cmd = a.ed.Update(msg)
	return a, cmd
}

func (a editApp) save(body string) tea.Cmd {
	ctx, id, saver, log := a.ctx, a.tpl.ID, a.store, a.log
	return func() tea.Msg {
		if err := saver.Save(ctx, id, body); err != nil {
			return savedMsg{body: body, err: err}
		}
		log.Info().Str("id", id).Int("bytes", len(body)).Msg("template saved")
		return savedMsg{body: body}
	}
}

func (a editApp) discardDraft() tea.Cmd {
	if a.drafts == nil {
		return nil
	}
	ctx, id, drafts := a.ctx, a.tpl.ID, a.drafts
	return func() tea.Msg {
		return draftDiscardedMsg{err: drafts.Discard(ctx, id)}
	}
}

func (a editApp) saveDraft(body string) tea.Cmd {
	ctx, id, drafts := a.ctx, a.tpl.ID, a.drafts
	return func() tea.Msg {
		return draftSavedMsg{err: drafts.Save(ctx, id, body)}
	}
}

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

func (a editApp) View() string {
	var b strings.Builder
	b.WriteString(a.ed.View())
	b.WriteByte('\n')

	mark := ""
	if a.doc.dirty {
		mark = " •"
	}
	line := fmt.Sprintf("%s [%s]%s  %s  %s", a.tpl.Title, a.tpl.Kind, mark,
		a.keys.Save.Help().Key+" save", a.keys.Quit.Help().Key+" quit")
	if a.status != "" {
		line += "  " + a.status
	}
	b.WriteString(statusStyle.Render(line))
	return b.String()
}
