package editor

import "github.com/iw2rmb/inkwell/surface"

// Exec applies one formatting command to the surface's current selection
// and pushes the resulting markup through the outward-emit path. Commands
// the surface cannot apply are silently ignored; nothing is ever reported
// back to the caller.
func (m Model) Exec(cmd surface.Command, arg string) Model {
	if m.closed {
		return m
	}
	changed := m.surf.Exec(cmd, arg)
	m.log.Debug().Str("cmd", string(cmd)).Bool("changed", changed).Msg("exec")
	m.sync.handleInput()
	m.refresh()
	return m
}
