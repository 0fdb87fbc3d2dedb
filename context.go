// Package xfontwidth measures the pixel width of text rendered in a font of
// the windowing system.
//
// A Context holds a display connection and one font resource: a
// locale-aware font set when the specification resolves to one, otherwise a
// single-byte font. Contexts are not safe for concurrent use unless
// SetupMultithreading has been called first.
package xfontwidth

import (
	"fmt"
	"image"
	"log"
	"runtime"
	"strings"
	"sync/atomic"

	"github.com/rjkroege/xfontwidth/display"
)

// DefaultFontSpec names a font that every X server is expected to have.
const DefaultFontSpec = "-misc-fixed-*-*-*-*-*-*-*-*-*-*-*-*"

// Debug enables logging of font resolution decisions.
var Debug = false

// Kind identifies the font resource held by a Context.
type Kind int

const (
	FontSetKind Kind = iota + 1
	SingleFontKind
)

func (k Kind) String() string {
	switch k {
	case FontSetKind:
		return "fontset"
	case SingleFontKind:
		return "font"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Device opens display connections. *display.Device is the real one.
type Device interface {
	Open() (display.Display, error)
}

// Context is a display connection together with the font resolved from a
// specification. The resource kind is fixed for the Context's life.
type Context struct {
	spec    string
	display display.Display
	kind    Kind
	fontset display.FontSet // kind == FontSetKind
	font    display.Font    // kind == SingleFontKind
	closed  atomic.Bool
}

// New returns a Context for the font spec on the display named by
// $DISPLAY. spec is passed to the display server unmodified.
//
// The caller must Close the Context. A Context that becomes unreachable
// without Close is released by the garbage collector's finalizer goroutine
// only after SetupMultithreading has succeeded; otherwise its display
// connection is leaked and a warning is logged.
func New(spec string) (*Context, error) {
	return NewFromDevice(&display.Device{}, spec)
}

// NewDefault returns a Context for DefaultFontSpec.
func NewDefault() (*Context, error) {
	return New(DefaultFontSpec)
}

// NewFromDevice is New with the display connection opened from dev.
func NewFromDevice(dev Device, spec string) (*Context, error) {
	if strings.IndexByte(spec, 0) >= 0 {
		return nil, &SpecError{Spec: spec}
	}

	d, err := dev.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDisplayUnavailable, err)
	}

	ctx, err := resolve(d, spec)
	if err != nil {
		if cerr := d.Close(); cerr != nil {
			log.Printf("xfontwidth: closing display after failed load of %q: %v", spec, cerr)
		}
		return nil, err
	}
	runtime.SetFinalizer(ctx, (*Context).finalize)
	return ctx, nil
}

// resolve prefers a font set and falls back to a single font. It never
// closes d.
func resolve(d display.Display, spec string) (*Context, error) {
	fs, missing, err := d.CreateFontSet(spec)
	if len(missing) > 0 && Debug {
		log.Printf("xfontwidth: %q: missing charsets %v", spec, missing)
	}
	if fs != nil {
		if Debug {
			log.Printf("xfontwidth: %q: using font set (%v)", spec, err)
		}
		return &Context{spec: spec, display: d, kind: FontSetKind, fontset: fs}, nil
	}
	if Debug {
		log.Printf("xfontwidth: %q: no font set (%v), trying font", spec, err)
	}

	f, err := d.LoadFont(spec)
	if err != nil || f == nil {
		if Debug {
			log.Printf("xfontwidth: %q: %v", spec, err)
		}
		return nil, &FontNotFoundError{Spec: spec}
	}
	return &Context{spec: spec, display: d, kind: SingleFontKind, font: f}, nil
}

// Spec returns the font specification ctx was created from.
func (ctx *Context) Spec() string { return ctx.spec }

// Kind returns the kind of font resource ctx holds.
func (ctx *Context) Kind() Kind { return ctx.kind }

// TextWidth returns the width in pixels of text. The byte length of text,
// not its rune count, is passed to the display library. A font set
// interprets text in the current locale's encoding.
func (ctx *Context) TextWidth(text string) (uint64, error) {
	if i := strings.IndexByte(text, 0); i >= 0 {
		return 0, &TextError{Offset: i}
	}
	if ctx.closed.Load() {
		return 0, ErrClosed
	}
	if text == "" {
		return 0, nil
	}

	var (
		w   int
		err error
	)
	switch ctx.kind {
	case FontSetKind:
		var r image.Rectangle
		r, err = ctx.fontset.TextExtents([]byte(text))
		w = r.Dx()
	case SingleFontKind:
		w, err = ctx.font.TextWidth([]byte(text))
	default:
		// A zero Context holds nothing to measure with.
		return 0, ErrClosed
	}
	runtime.KeepAlive(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v %q: %w", ErrQueryFailed, ctx.kind, ctx.spec, err)
	}
	if w < 0 {
		return 0, nil
	}
	return uint64(w), nil
}

// TextWidth returns the width of text rendered with the font of ctx.
func TextWidth(ctx *Context, text string) (uint64, error) {
	return ctx.TextWidth(text)
}

// Close frees the font resource and then the display connection. It
// always returns nil: failures are logged. Calls after the first do nothing.
func (ctx *Context) Close() error {
	if !ctx.closed.CompareAndSwap(false, true) {
		return nil
	}
	if ctx.display != nil {
		runtime.SetFinalizer(ctx, nil)
	}
	ctx.release()
	return nil
}

func (ctx *Context) finalize() {
	if ctx.closed.Load() {
		return
	}
	if !MultithreadingEnabled() {
		log.Printf("xfontwidth: Context for %q was not closed; leaking its display connection", ctx.spec)
		return
	}
	if ctx.closed.CompareAndSwap(false, true) {
		ctx.release()
	}
}

func (ctx *Context) release() {
	switch ctx.kind {
	case FontSetKind:
		ctx.releaseStep("freeing font set", ctx.fontset.Free)
	case SingleFontKind:
		ctx.releaseStep("freeing font", ctx.font.Free)
	}
	if ctx.display != nil {
		ctx.releaseStep("closing display", ctx.display.Close)
	}
}

// releaseStep runs one teardown step. Neither an error nor a panic stops
// the steps that follow.
func (ctx *Context) releaseStep(what string, step func() error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("xfontwidth: %s for %q: panic: %v", what, ctx.spec, r)
		}
	}()
	if err := step(); err != nil {
		log.Printf("xfontwidth: %s for %q: %v", what, ctx.spec, err)
	}
}
