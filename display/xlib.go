//go:build !xgb && !devdraw && (linux || freebsd || darwin)
// +build !xgb
// +build !devdraw
// +build linux freebsd darwin

package display

import (
	"errors"
	"fmt"
	"image"
	"runtime"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

var errFreed = errors.New("font resource already freed")

// xRectangle mirrors Xlib's XRectangle.
type xRectangle struct {
	X, Y          int16
	Width, Height uint16
}

var (
	x11lib     uintptr
	x11once    sync.Once
	x11loadErr error

	xOpenDisplay    func(*byte) uintptr
	xCloseDisplay   func(uintptr) int32
	xInitThreads    func() int32
	xCreateFontSet  func(uintptr, *byte, ***byte, *int32, **byte) uintptr
	xFreeStringList func(**byte)
	xFreeFontSet    func(uintptr, uintptr)
	xmbTextExtents  func(uintptr, *byte, int32, *xRectangle, *xRectangle) int32
	xLoadQueryFont  func(uintptr, *byte) uintptr
	xFreeFont       func(uintptr, uintptr) int32
	xTextWidth      func(uintptr, *byte, int32) int32
)

func x11libname() string {
	if runtime.GOOS == "darwin" {
		return "/opt/X11/lib/libX11.6.dylib"
	}
	return "libX11.so.6"
}

func ensureX11() error {
	x11once.Do(func() {
		lib, err := purego.Dlopen(x11libname(), purego.RTLD_LAZY|purego.RTLD_GLOBAL)
		if err != nil {
			x11loadErr = fmt.Errorf("%w: loading %s: %v", ErrNoDisplay, x11libname(), err)
			return
		}
		x11lib = lib
		purego.RegisterLibFunc(&xOpenDisplay, x11lib, "XOpenDisplay")
		purego.RegisterLibFunc(&xCloseDisplay, x11lib, "XCloseDisplay")
		purego.RegisterLibFunc(&xInitThreads, x11lib, "XInitThreads")
		purego.RegisterLibFunc(&xCreateFontSet, x11lib, "XCreateFontSet")
		purego.RegisterLibFunc(&xFreeStringList, x11lib, "XFreeStringList")
		purego.RegisterLibFunc(&xFreeFontSet, x11lib, "XFreeFontSet")
		purego.RegisterLibFunc(&xmbTextExtents, x11lib, "XmbTextExtents")
		purego.RegisterLibFunc(&xLoadQueryFont, x11lib, "XLoadQueryFont")
		purego.RegisterLibFunc(&xFreeFont, x11lib, "XFreeFont")
		purego.RegisterLibFunc(&xTextWidth, x11lib, "XTextWidth")
	})
	return x11loadErr
}

// InitThreads makes Xlib safe for use from several goroutines. It must run
// before any other Xlib call to have an effect.
func InitThreads() error {
	if err := ensureX11(); err != nil {
		return err
	}
	if xInitThreads() == 0 {
		return fmt.Errorf("XInitThreads failed")
	}
	return nil
}

// Open connects to the display server named by dev.
func (dev *Device) Open() (Display, error) {
	if err := ensureX11(); err != nil {
		return nil, err
	}
	var name *byte
	if dev.Name != "" {
		name = cString(dev.Name)
	}
	dpy := xOpenDisplay(name)
	runtime.KeepAlive(name)
	if dpy == 0 {
		if dev.Name != "" {
			return nil, fmt.Errorf("%w %q", ErrNoDisplay, dev.Name)
		}
		return nil, ErrNoDisplay
	}
	return &xlibDisplay{dpy: dpy}, nil
}

// xlibDisplay implements the Display interface.
type xlibDisplay struct {
	dpy uintptr
}

var _ = Display((*xlibDisplay)(nil))

func (d *xlibDisplay) CreateFontSet(spec string) (FontSet, []string, error) {
	var (
		missing  **byte
		nmissing int32
		defstr   *byte
	)
	cspec := cString(spec)
	fs := xCreateFontSet(d.dpy, cspec, &missing, &nmissing, &defstr)
	runtime.KeepAlive(cspec)

	// The missing charset list belongs to us and is released here whether
	// or not the font set was created.
	var charsets []string
	if missing != nil {
		for _, p := range unsafe.Slice(missing, int(nmissing)) {
			charsets = append(charsets, gostring(p))
		}
		xFreeStringList(missing)
	}
	if fs == 0 {
		return nil, charsets, ErrNoFontSet
	}
	return &xlibFontSet{d: d, fs: fs}, charsets, nil
}

func (d *xlibDisplay) LoadFont(spec string) (Font, error) {
	cspec := cString(spec)
	xf := xLoadQueryFont(d.dpy, cspec)
	runtime.KeepAlive(cspec)
	if xf == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoFont, spec)
	}
	return &xlibFont{d: d, xf: xf}, nil
}

func (d *xlibDisplay) Close() error {
	if d.dpy == 0 {
		return nil
	}
	xCloseDisplay(d.dpy)
	d.dpy = 0
	return nil
}

// xlibFontSet implements the FontSet interface.
type xlibFontSet struct {
	d  *xlibDisplay
	fs uintptr
}

func (f *xlibFontSet) TextExtents(b []byte) (image.Rectangle, error) {
	if f.fs == 0 {
		return image.Rectangle{}, errFreed
	}
	if len(b) == 0 {
		return image.Rectangle{}, nil
	}
	var logical xRectangle
	xmbTextExtents(f.fs, &b[0], int32(len(b)), nil, &logical)
	runtime.KeepAlive(b)
	org := image.Pt(int(logical.X), int(logical.Y))
	return image.Rectangle{Min: org, Max: org.Add(image.Pt(int(logical.Width), int(logical.Height)))}, nil
}

func (f *xlibFontSet) Free() error {
	if f.fs == 0 {
		return nil
	}
	if f.d.dpy == 0 {
		return fmt.Errorf("font set freed after its display was closed")
	}
	xFreeFontSet(f.d.dpy, f.fs)
	f.fs = 0
	return nil
}

// xlibFont implements the Font interface.
type xlibFont struct {
	d  *xlibDisplay
	xf uintptr
}

func (f *xlibFont) TextWidth(b []byte) (int, error) {
	if f.xf == 0 {
		return 0, errFreed
	}
	if len(b) == 0 {
		return 0, nil
	}
	w := xTextWidth(f.xf, &b[0], int32(len(b)))
	runtime.KeepAlive(b)
	return int(w), nil
}

func (f *xlibFont) Free() error {
	if f.xf == 0 {
		return nil
	}
	if f.d.dpy == 0 {
		return fmt.Errorf("font freed after its display was closed")
	}
	xFreeFont(f.d.dpy, f.xf)
	f.xf = 0
	return nil
}

func cString(s string) *byte {
	b := append([]byte(s), 0)
	return &b[0]
}

func gostring(p *byte) string {
	if p == nil {
		return ""
	}
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return string(unsafe.Slice(p, n))
}
