// Package displaytest contains a mock display server for testing code that
// measures text with package display.
package displaytest

import (
	"errors"
	"fmt"
	"image"
	"path"
	"sync"
	"unicode/utf8"

	"github.com/rjkroege/xfontwidth/display"
)

// Fixed metrics of every mock font.
const (
	FontWidth  = 13
	FontHeight = 10
	FontAscent = 8
)

// Device is a mock display server. Font specifications are matched against
// its catalogues with path.Match, so "-misc-fixed-*" style patterns work.
// The zero Device has no fonts and unlimited connections.
type Device struct {
	// FontSets resolve with CreateFontSet. Fonts resolve with LoadFont.
	FontSets []string
	Fonts    []string

	// Missing is reported as the missing charsets of every font set lookup.
	Missing []string

	// MaxConnections bounds the simultaneously open connections when > 0.
	MaxConnections int

	// Unavailable makes Open fail.
	Unavailable bool

	// FreeErr and CloseErr are returned by Free and Close.
	FreeErr  error
	CloseErr error

	// QueryErr makes every width query fail.
	QueryErr error

	mu     sync.Mutex
	opened int
	open   int
	live   int
	ops    []string
	serial int
}

// NewDevice returns a Device serving the given font sets and fonts.
func NewDevice(fontsets, fonts []string) *Device {
	return &Device{FontSets: fontsets, Fonts: fonts}
}

// Open implements xfontwidth.Device.
func (dev *Device) Open() (display.Display, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()

	if dev.Unavailable {
		return nil, display.ErrNoDisplay
	}
	if dev.MaxConnections > 0 && dev.open >= dev.MaxConnections {
		return nil, fmt.Errorf("%w: maximum number of clients reached", display.ErrNoDisplay)
	}
	dev.opened++
	dev.open++
	dev.serial++
	d := &mockDisplay{dev: dev, id: dev.serial}
	dev.record("open display %d", d.id)
	return d, nil
}

// Opened returns the number of connections ever opened.
func (dev *Device) Opened() int {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.opened
}

// OpenConnections returns the number of connections not yet closed.
func (dev *Device) OpenConnections() int {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.open
}

// LiveResources returns the number of font sets and fonts not yet freed.
func (dev *Device) LiveResources() int {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.live
}

// Ops returns the operations performed so far.
func (dev *Device) Ops() []string {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return append([]string(nil), dev.ops...)
}

// Clear forgets the recorded operations.
func (dev *Device) Clear() {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	dev.ops = nil
}

func (dev *Device) record(format string, args ...interface{}) {
	dev.ops = append(dev.ops, fmt.Sprintf(format, args...))
}

func matches(patterns []string, spec string) bool {
	for _, p := range patterns {
		if p == spec {
			return true
		}
		if ok, err := path.Match(p, spec); err == nil && ok {
			return true
		}
	}
	return false
}

var errClosed = errors.New("display closed")

// mockDisplay implements display.Display.
type mockDisplay struct {
	dev    *Device
	id     int
	closed bool
}

var _ = display.Display((*mockDisplay)(nil))

func (d *mockDisplay) CreateFontSet(spec string) (display.FontSet, []string, error) {
	d.dev.mu.Lock()
	defer d.dev.mu.Unlock()

	if d.closed {
		return nil, nil, errClosed
	}
	d.dev.record("createfontset %q", spec)

	missing := append([]string(nil), d.dev.Missing...)

	if !matches(d.dev.FontSets, spec) {
		return nil, missing, display.ErrNoFontSet
	}
	d.dev.live++
	return &mockFont{d: d, kind: "font set", spec: spec}, missing, nil
}

func (d *mockDisplay) LoadFont(spec string) (display.Font, error) {
	d.dev.mu.Lock()
	defer d.dev.mu.Unlock()

	if d.closed {
		return nil, errClosed
	}
	d.dev.record("loadfont %q", spec)
	if !matches(d.dev.Fonts, spec) {
		return nil, fmt.Errorf("%w: %q", display.ErrNoFont, spec)
	}
	d.dev.live++
	return &mockFont{d: d, kind: "font", spec: spec}, nil
}

func (d *mockDisplay) Close() error {
	d.dev.mu.Lock()
	defer d.dev.mu.Unlock()

	if d.closed {
		return errClosed
	}
	d.closed = true
	d.dev.open--
	d.dev.record("close display %d", d.id)
	return d.dev.CloseErr
}

var (
	_ = display.FontSet((*mockFont)(nil))
	_ = display.Font((*mockFont)(nil))
)

// mockFont implements display.FontSet and display.Font as a fixed-width
// font. As a font set it measures runes; as a font it measures bytes.
type mockFont struct {
	d     *mockDisplay
	kind  string
	spec  string
	freed bool
}

func (f *mockFont) TextExtents(b []byte) (image.Rectangle, error) {
	if err := f.query(); err != nil {
		return image.Rectangle{}, err
	}
	return image.Rect(0, -FontAscent, FontWidth*utf8.RuneCount(b), FontHeight-FontAscent), nil
}

func (f *mockFont) TextWidth(b []byte) (int, error) {
	if err := f.query(); err != nil {
		return 0, err
	}
	return FontWidth * len(b), nil
}

func (f *mockFont) query() error {
	f.d.dev.mu.Lock()
	defer f.d.dev.mu.Unlock()

	switch {
	case f.freed:
		return fmt.Errorf("%s %q used after free", f.kind, f.spec)
	case f.d.closed:
		return fmt.Errorf("%s %q used after display %d closed", f.kind, f.spec, f.d.id)
	}
	return f.d.dev.QueryErr
}

func (f *mockFont) Free() error {
	f.d.dev.mu.Lock()
	defer f.d.dev.mu.Unlock()

	if f.freed {
		return fmt.Errorf("%s %q freed twice", f.kind, f.spec)
	}
	if f.d.closed {
		return fmt.Errorf("%s %q freed after display %d closed", f.kind, f.spec, f.d.id)
	}
	f.freed = true
	f.d.dev.live--
	f.d.dev.record("free %s %q", f.kind, f.spec)
	return f.d.dev.FreeErr
}
