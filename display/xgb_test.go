//go:build xgb && !devdraw
// +build xgb,!devdraw

package display

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jezek/xgb/xproto"
)

func TestChar2b(t *testing.T) {
	want := []xproto.Char2b{{Byte1: 0, Byte2: 'H'}, {Byte1: 0, Byte2: 0xe9}}
	if diff := cmp.Diff(want, char2b([]byte("H\xe9"))); diff != "" {
		t.Errorf("char2b mismatch (-want +got):\n%s", diff)
	}
}

func TestXgbFreedFontWidth(t *testing.T) {
	f := &xgbFont{d: &xgbDisplay{}}
	if _, err := f.TextWidth([]byte("x")); err == nil {
		t.Error("TextWidth on a freed font did not fail")
	}
	if err := f.Free(); err != nil {
		t.Errorf("Free of a freed font: %v", err)
	}
}
