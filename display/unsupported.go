//go:build !xgb && !devdraw && !linux && !freebsd && !darwin
// +build !xgb,!devdraw,!linux,!freebsd,!darwin

package display

import "fmt"

// InitThreads reports that Xlib is unavailable on this platform.
func InitThreads() error {
	return fmt.Errorf("%w: Xlib is not supported on this platform; build with -tags xgb", ErrNoDisplay)
}

// Open fails: the default Xlib backend is not available on this platform.
func (dev *Device) Open() (Display, error) {
	return nil, InitThreads()
}
