package editor

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/iw2rmb/inkwell/surface"
)

// synchronizer reconciles values supplied by the host with edits made on the
// surface. busy is held while either path mutates the surface, so at most
// one of them is active at any instant.
type synchronizer struct {
	surf        surface.Surface
	onChange    func(string)
	placeholder string
	log         zerolog.Logger

	busy    bool
	pending *string

	// known is the last value the host has seen, emitted or supplied.
	known   string
	empty   bool
	focused bool
}

func newSynchronizer(surf surface.Surface, cfg Config) *synchronizer {
	s := &synchronizer{
		surf:        surf,
		onChange:    cfg.OnChange,
		placeholder: cfg.Placeholder,
		log:         cfg.Logger,
		known:       surf.Content(),
	}
	s.empty = documentEmpty(surf)
	surf.OnContentChanged(s.handleInput)
	return s
}

// handleInput is the local-edit path: emit the surface's markup when it
// differs from what the host already has.
func (s *synchronizer) handleInput() {
	if s.busy {
		s.log.Debug().Msg("content change ignored while syncing")
		return
	}
	s.busy = true
	if v := s.surf.Content(); v != s.known {
		s.known = v
		if s.onChange != nil {
			s.onChange(v)
		}
	}
	s.empty = documentEmpty(s.surf)
	s.busy = false
	s.flush()
}

// setValue is the external path. A value equal to the surface's markup is
// dropped so an echoed onChange never resets the caret.
func (s *synchronizer) setValue(v string) bool {
	if s.busy {
		s.pending = &v
		return false
	}
	s.known = v
	if v == s.surf.Content() {
		return false
	}
	s.busy = true
	s.surf.SetContent(v)
	s.empty = documentEmpty(s.surf)
	s.busy = false
	s.log.Debug().Int("bytes", len(v)).Msg("external value applied")
	s.flush()
	return true
}

func (s *synchronizer) flush() {
	if s.pending == nil {
		return
	}
	v := *s.pending
	s.pending = nil
	s.setValue(v)
}

func (s *synchronizer) focus() { s.focused = true }

func (s *synchronizer) blur() {
	s.focused = false
	s.empty = documentEmpty(s.surf)
}

func (s *synchronizer) placeholderVisible() bool {
	return s.placeholder != "" && s.empty && !s.focused
}

func (s *synchronizer) detach() {
	s.surf.OnContentChanged(nil)
	s.onChange = nil
	s.pending = nil
}

// documentEmpty reports whether the document has neither text nor images.
func documentEmpty(surf surface.Surface) bool {
	return strings.TrimSpace(surf.TextContent()) == "" && !surf.HasImages()
}
