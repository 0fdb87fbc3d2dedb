package displaytest

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rjkroege/xfontwidth/display"
)

func TestMockMatching(t *testing.T) {
	dev := NewDevice([]string{"-misc-fixed-*"}, []string{"fixed"})
	d, err := dev.Open()
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	fs, _, err := d.CreateFontSet("-misc-fixed-medium-r-normal--13-*")
	if err != nil {
		t.Fatalf("glob did not match: %v", err)
	}
	if _, _, err := d.CreateFontSet("fixed"); !errors.Is(err, display.ErrNoFontSet) {
		t.Errorf("CreateFontSet(fixed): got %v, want ErrNoFontSet", err)
	}
	f, err := d.LoadFont("fixed")
	if err != nil {
		t.Fatalf("LoadFont(fixed) failed: %v", err)
	}
	if got, want := dev.LiveResources(), 2; got != want {
		t.Errorf("LiveResources() = %d, want %d", got, want)
	}

	r, err := fs.TextExtents([]byte("ab"))
	if err != nil {
		t.Fatalf("TextExtents failed: %v", err)
	}
	if got, want := r.Dx(), 2*FontWidth; got != want {
		t.Errorf("TextExtents width = %d, want %d", got, want)
	}
	if got, want := r.Dy(), FontHeight; got != want {
		t.Errorf("TextExtents height = %d, want %d", got, want)
	}
	if got, err := f.TextWidth([]byte("ab")); err != nil || got != 2*FontWidth {
		t.Errorf("TextWidth = %d, %v, want %d", got, err, 2*FontWidth)
	}

	dev.QueryErr = errors.New("BadFont")
	if _, err := f.TextWidth([]byte("ab")); !errors.Is(err, dev.QueryErr) {
		t.Errorf("TextWidth with QueryErr: got %v", err)
	}
	dev.QueryErr = nil

	if err := fs.Free(); err != nil {
		t.Errorf("Free failed: %v", err)
	}
	if err := fs.Free(); err == nil {
		t.Errorf("double Free not reported")
	}
	if _, err := fs.TextExtents([]byte("ab")); err == nil {
		t.Errorf("TextExtents after Free not reported")
	}
	if err := d.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if err := f.Free(); err == nil {
		t.Errorf("Free after Close not reported")
	}
}

func TestMockMaxConnections(t *testing.T) {
	dev := &Device{MaxConnections: 2}
	var open []display.Display
	for i := 0; i < 2; i++ {
		d, err := dev.Open()
		if err != nil {
			t.Fatalf("Open %d failed: %v", i, err)
		}
		open = append(open, d)
	}
	if _, err := dev.Open(); !errors.Is(err, display.ErrNoDisplay) {
		t.Errorf("Open beyond limit: got %v, want ErrNoDisplay", err)
	}
	open[0].Close()
	if _, err := dev.Open(); err != nil {
		t.Errorf("Open after Close failed: %v", err)
	}
	if got, want := dev.Opened(), 3; got != want {
		t.Errorf("Opened() = %d, want %d", got, want)
	}
}

func TestMockOps(t *testing.T) {
	dev := NewDevice(nil, []string{"fixed"})
	dev.Missing = []string{"ISO8859-1"}
	d, _ := dev.Open()
	_, missing, _ := d.CreateFontSet("fixed")
	if diff := cmp.Diff([]string{"ISO8859-1"}, missing); diff != "" {
		t.Errorf("missing mismatch (-want +got):\n%s", diff)
	}
	f, _ := d.LoadFont("fixed")
	f.Free()
	d.Close()

	want := []string{
		"open display 1",
		`createfontset "fixed"`,
		`loadfont "fixed"`,
		`free font "fixed"`,
		"close display 1",
	}
	if diff := cmp.Diff(want, dev.Ops()); diff != "" {
		t.Errorf("ops mismatch (-want +got):\n%s", diff)
	}
}
