package editor

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/iw2rmb/inkwell/surface"
)

// Config configures the editor Model.
type Config struct {
	// Value is the initial document. Later values go through SetValue.
	Value string
	// OnChange receives the serialized document after every accepted
	// mutation that changed it.
	OnChange func(next string)
	// Placeholder is shown while the document has neither text nor images
	// and the editor is not focused.
	Placeholder string

	// Surface hosts the live document. Nil selects surface.NewDOM.
	Surface surface.Surface
	// Forwarded to surface.Options when Surface is nil.
	HistoryLimit int

	Style   Style
	KeyMap  KeyMap
	Palette Palette

	// Clipboard is optional; copy/cut/paste are no-ops without it.
	Clipboard Clipboard
	// ReadFile loads uploaded images. Nil selects os.ReadFile.
	ReadFile func(path string) ([]byte, error)

	// Logger receives debug events. The zero value discards them.
	Logger zerolog.Logger
}

func (c Config) withDefaults() Config {
	if c.Surface == nil {
		c.Surface = surface.NewDOM(c.Value, surface.Options{HistoryLimit: c.HistoryLimit})
	} else if c.Surface.Content() != c.Value {
		c.Surface.SetContent(c.Value)
	}
	if c.KeyMap.isZero() {
		c.KeyMap = DefaultKeyMap()
	}
	if len(c.Palette.Fonts) == 0 && len(c.Palette.Sizes) == 0 && len(c.Palette.Colors) == 0 {
		c.Palette = DefaultPalette()
	}
	c.Palette = c.Palette.Validate()
	if c.ReadFile == nil {
		c.ReadFile = os.ReadFile
	}
	return c
}
