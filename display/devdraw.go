//go:build devdraw
// +build devdraw

package display

import (
	"fmt"
	"image"

	"9fans.net/go/draw"
)

// InitThreads does nothing: a draw.Display serializes its own messages.
func InitThreads() error { return nil }

// Open starts devdraw. dev.Name is used as the window label.
func (dev *Device) Open() (Display, error) {
	label := dev.Name
	if label == "" {
		label = "xfontwidth"
	}
	d, err := draw.Init(make(chan error, 1), "", label, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDisplay, err)
	}
	return &devdrawDisplay{d: d}, nil
}

// devdrawDisplay implements the Display interface with Plan 9 fonts.
type devdrawDisplay struct {
	d *draw.Display
}

var _ = Display((*devdrawDisplay)(nil))

// CreateFontSet opens spec as a Plan 9 font. Those cover Unicode through
// their subfonts, so they measure UTF-8 text the way a font set does.
func (d *devdrawDisplay) CreateFontSet(spec string) (FontSet, []string, error) {
	f, err := d.d.OpenFont(spec)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrNoFontSet, err)
	}
	return &devdrawFont{f: f}, nil, nil
}

func (d *devdrawDisplay) LoadFont(spec string) (Font, error) {
	f, err := d.d.OpenFont(spec)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrNoFont, spec, err)
	}
	return &devdrawFont{f: f}, nil
}

func (d *devdrawDisplay) Close() error {
	if d.d == nil {
		return nil
	}
	err := d.d.Close()
	d.d = nil
	return err
}

// devdrawFont implements both FontSet and Font.
type devdrawFont struct {
	f *draw.Font
}

func (f *devdrawFont) TextExtents(b []byte) (image.Rectangle, error) {
	if f.f == nil {
		return image.Rectangle{}, fmt.Errorf("font already freed")
	}
	return image.Rect(0, -f.f.Ascent, f.f.BytesWidth(b), f.f.Height-f.f.Ascent), nil
}

func (f *devdrawFont) TextWidth(b []byte) (int, error) {
	if f.f == nil {
		return 0, fmt.Errorf("font already freed")
	}
	return f.f.BytesWidth(b), nil
}

func (f *devdrawFont) Free() error {
	if f.f == nil {
		return nil
	}
	f.f.Free()
	f.f = nil
	return nil
}
