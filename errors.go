package xfontwidth

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSpec reports a font specification containing a NUL byte.
	ErrInvalidSpec = errors.New("invalid font specification")

	// ErrInvalidText reports text containing a NUL byte.
	ErrInvalidText = errors.New("invalid text")

	// ErrDisplayUnavailable reports that no display connection could be made.
	ErrDisplayUnavailable = errors.New("display unavailable")

	// ErrFontNotFound reports that a specification resolved to neither a
	// font set nor a font.
	ErrFontNotFound = errors.New("font not found")

	// ErrQueryFailed reports a width query the display server could not
	// answer.
	ErrQueryFailed = errors.New("text width query failed")

	// ErrClosed reports use of a Context after Close.
	ErrClosed = errors.New("font context closed")
)

// SpecError is returned for a font specification that cannot cross into the
// display library.
type SpecError struct {
	Spec string
}

func (e *SpecError) Error() string {
	return fmt.Sprintf("%v: %q contains NUL", ErrInvalidSpec, e.Spec)
}

func (e *SpecError) Unwrap() error { return ErrInvalidSpec }

// TextError is returned by TextWidth for text that cannot cross into the
// display library.
type TextError struct {
	Offset int // index of the first NUL byte
}

func (e *TextError) Error() string {
	return fmt.Sprintf("%v: NUL at byte %d", ErrInvalidText, e.Offset)
}

func (e *TextError) Unwrap() error { return ErrInvalidText }

// FontNotFoundError names the specification that could not be resolved.
type FontNotFoundError struct {
	Spec string
}

func (e *FontNotFoundError) Error() string {
	return fmt.Sprintf("could not load font: %q", e.Spec)
}

func (e *FontNotFoundError) Unwrap() error { return ErrFontNotFound }
