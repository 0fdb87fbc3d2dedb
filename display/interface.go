// Package display is the connection to the font service of the windowing
// system. A Display resolves font specifications into one of two kinds of
// font resource and measures text with them.
//
// The backend is chosen at build time: the default talks to Xlib, the xgb
// tag speaks the X11 core protocol directly and the devdraw tag uses Plan 9
// fonts served by devdraw.
package display

import (
	"errors"
	"image"
)

var (
	// ErrNoDisplay is returned by Open when no display server can be reached.
	ErrNoDisplay = errors.New("could not open display")

	// ErrNoFontSet is returned by CreateFontSet when the specification does
	// not resolve to a font set, including backends that have none.
	ErrNoFontSet = errors.New("no font set")

	// ErrNoFont is returned by LoadFont when the specification does not name
	// a loadable font.
	ErrNoFont = errors.New("no such font")
)

// Display is a single open connection to the display server. It is owned by
// exactly one caller, which must Close it after freeing every font resource
// obtained from it.
type Display interface {
	// CreateFontSet resolves spec as a locale-aware font set. missing lists
	// the charsets for which no font was found; it is a copy and the native
	// list has already been released.
	CreateFontSet(spec string) (fs FontSet, missing []string, err error)

	// LoadFont resolves spec as a single-byte font.
	LoadFont(spec string) (Font, error)

	Close() error
}

// FontSet is a multi-byte font set.
type FontSet interface {
	// TextExtents returns the logical extents of b interpreted in the
	// current locale's multi-byte encoding.
	TextExtents(b []byte) (image.Rectangle, error)
	Free() error
}

// Font is a single-byte font.
type Font interface {
	TextWidth(b []byte) (int, error)
	Free() error
}

// Device names the display server to connect to. An empty Name selects the
// server named by the DISPLAY environment variable.
type Device struct {
	Name string
}
