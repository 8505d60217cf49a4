package cli

import (
	"github.com/atotto/clipboard"

	"github.com/iw2rmb/inkwell/editor"
)

// systemClipboard adapts the OS clipboard to editor.Clipboard.
type systemClipboard struct{}

func (systemClipboard) ReadText() (string, error) { return clipboard.ReadAll() }

func (systemClipboard) WriteText(s string) error { return clipboard.WriteAll(s) }

// newClipboard returns nil when no clipboard utility is installed.
func newClipboard() editor.Clipboard {
	if clipboard.Unsupported {
		return nil
	}
	return systemClipboard{}
}
