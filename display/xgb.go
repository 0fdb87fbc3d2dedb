//go:build xgb && !devdraw
// +build xgb,!devdraw

package display

import (
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// InitThreads does nothing: xgb connections are safe for concurrent use.
func InitThreads() error { return nil }

// Open connects to the display server named by dev.
func (dev *Device) Open() (Display, error) {
	var (
		conn *xgb.Conn
		err  error
	)
	if dev.Name == "" {
		conn, err = xgb.NewConn()
	} else {
		conn, err = xgb.NewConnDisplay(dev.Name)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDisplay, err)
	}
	return &xgbDisplay{conn: conn}, nil
}

// xgbDisplay implements the Display interface over the core protocol.
type xgbDisplay struct {
	conn *xgb.Conn
}

var _ = Display((*xgbDisplay)(nil))

// CreateFontSet always fails. Font sets are assembled by Xlib on the client
// side from the locale database; the core protocol only knows single fonts.
func (d *xgbDisplay) CreateFontSet(spec string) (FontSet, []string, error) {
	return nil, nil, ErrNoFontSet
}

func (d *xgbDisplay) LoadFont(spec string) (Font, error) {
	fid, err := xproto.NewFontId(d.conn)
	if err != nil {
		return nil, err
	}
	if err := xproto.OpenFontChecked(d.conn, fid, uint16(len(spec)), spec).Check(); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrNoFont, spec, err)
	}
	return &xgbFont{d: d, fid: fid, open: true}, nil
}

func (d *xgbDisplay) Close() error {
	if d.conn == nil {
		return nil
	}
	d.conn.Close()
	d.conn = nil
	return nil
}

// xgbFont implements the Font interface.
type xgbFont struct {
	d    *xgbDisplay
	fid  xproto.Font
	open bool
}

func (f *xgbFont) TextWidth(b []byte) (int, error) {
	if !f.open || f.d.conn == nil {
		return 0, fmt.Errorf("font already freed")
	}
	if len(b) == 0 {
		return 0, nil
	}
	if len(b) > maxTextLen {
		return 0, fmt.Errorf("text of %d bytes exceeds the %d byte request limit", len(b), maxTextLen)
	}
	chars := char2b(b)
	reply, err := xproto.QueryTextExtents(f.d.conn, xproto.Fontable(f.fid), chars, uint16(len(chars))).Reply()
	if err != nil {
		return 0, fmt.Errorf("QueryTextExtents: %w", err)
	}
	return int(reply.OverallWidth), nil
}

// maxTextLen is the longest string a QueryTextExtents request length field
// can describe.
const maxTextLen = 1<<16 - 1

// char2b widens single-byte text to the protocol's two-byte characters.
func char2b(b []byte) []xproto.Char2b {
	chars := make([]xproto.Char2b, len(b))
	for i, c := range b {
		chars[i] = xproto.Char2b{Byte1: 0, Byte2: c}
	}
	return chars
}

func (f *xgbFont) Free() error {
	if !f.open {
		return nil
	}
	f.open = false
	if f.d.conn == nil {
		return fmt.Errorf("font freed after its display was closed")
	}
	return xproto.CloseFontChecked(f.d.conn, f.fid).Check()
}
