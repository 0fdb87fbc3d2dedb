//go:build !devdraw
// +build !devdraw

package display

import (
	"errors"
	"os"
	"testing"
)

func openTestDisplay(t *testing.T) Display {
	t.Helper()
	if os.Getenv("DISPLAY") == "" {
		t.Skip("DISPLAY not set")
	}
	d, err := (&Device{}).Open()
	if err != nil {
		t.Skipf("no display: %v", err)
	}
	return d
}

func TestLoadFont(t *testing.T) {
	d := openTestDisplay(t)
	defer d.Close()

	f, err := d.LoadFont("fixed")
	if err != nil {
		t.Fatalf("LoadFont(fixed) failed: %v", err)
	}
	defer f.Free()
	if w, err := f.TextWidth([]byte("Hello World")); err != nil || w <= 0 {
		t.Errorf("TextWidth = %d, %v, want > 0", w, err)
	}
	if w, err := f.TextWidth(nil); err != nil || w != 0 {
		t.Errorf("TextWidth(nil) = %d, %v, want 0", w, err)
	}
}

func TestLoadFontMissing(t *testing.T) {
	d := openTestDisplay(t)
	defer d.Close()

	if _, err := d.LoadFont("this-is-not-a-font"); !errors.Is(err, ErrNoFont) {
		t.Errorf("got %v, want ErrNoFont", err)
	}
	if _, _, err := d.CreateFontSet("this-is-not-a-font"); !errors.Is(err, ErrNoFontSet) {
		t.Errorf("got %v, want ErrNoFontSet", err)
	}
}

func TestOpenNamedDisplayFails(t *testing.T) {
	_, err := (&Device{Name: "nosuchhost.invalid:97"}).Open()
	if err == nil {
		t.Fatal("Open of a bogus display succeeded")
	}
	if !errors.Is(err, ErrNoDisplay) {
		t.Errorf("got %v, want ErrNoDisplay", err)
	}
}
