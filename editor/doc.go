// Package editor provides a Bubble Tea rich-text editor component backed by
// a surface.Surface.
//
// The package is responsible for input handling, the formatting toolbar,
// link and image dialogs, font and color pickers, in-place image settings,
// and keeping the host's value in step with the live document.
package editor
