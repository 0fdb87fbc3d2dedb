// Textwidth prints the width in pixels of each argument, or of each line of
// standard input when there are no arguments, rendered in an X font.
//
// Usage:
//
//	textwidth [-d] [-t] [-display name] [-f font] [text ...]
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/rjkroege/xfontwidth"
	"github.com/rjkroege/xfontwidth/display"
)

var (
	debug       = flag.Bool("d", false, "set for verbose debugging")
	threaded    = flag.Bool("t", false, "measure arguments concurrently")
	displayflag = flag.String("display", "", "X display (default $DISPLAY)")
	fontflag    = flag.String("f", defaultFont(), "font specification")
)

func defaultFont() string {
	if f := os.Getenv("font"); f != "" {
		return f
	}
	return xfontwidth.DefaultFontSpec
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("textwidth: ")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: textwidth [-d] [-t] [-display name] [-f font] [text ...]\n")
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()

	if *debug {
		xfontwidth.Debug = true
	} else {
		log.SetOutput(io.Discard)
	}

	if *threaded {
		if err := xfontwidth.SetupMultithreading(); err != nil {
			fmt.Fprintf(os.Stderr, "textwidth: %v\n", err)
			os.Exit(1)
		}
	}

	ctx, err := xfontwidth.NewFromDevice(&display.Device{Name: *displayflag}, *fontflag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "textwidth: %v\n", err)
		os.Exit(1)
	}
	log.Printf("%q resolved as %v", ctx.Spec(), ctx.Kind())

	var failed bool
	if flag.NArg() > 0 {
		failed = measureArgs(os.Stdout, os.Stderr, ctx, flag.Args(), *threaded)
	} else {
		failed = measureLines(os.Stdout, os.Stderr, ctx, os.Stdin)
	}
	ctx.Close()
	if failed {
		os.Exit(1)
	}
}

func measureArgs(w, ew io.Writer, ctx *xfontwidth.Context, args []string, concurrent bool) (failed bool) {
	widths := make([]uint64, len(args))
	errs := make([]error, len(args))
	if concurrent {
		var wg sync.WaitGroup
		for i := range args {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				widths[i], errs[i] = ctx.TextWidth(args[i])
			}(i)
		}
		wg.Wait()
	} else {
		for i, a := range args {
			widths[i], errs[i] = ctx.TextWidth(a)
		}
	}
	for i, a := range args {
		if errs[i] != nil {
			fmt.Fprintf(ew, "textwidth: %q: %v\n", a, errs[i])
			failed = true
			continue
		}
		fmt.Fprintf(w, "%d\t%s\n", widths[i], a)
	}
	return failed
}

func measureLines(w, ew io.Writer, ctx *xfontwidth.Context, r io.Reader) (failed bool) {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
			width, werr := ctx.TextWidth(line)
			if werr != nil {
				fmt.Fprintf(ew, "textwidth: %q: %v\n", line, werr)
				failed = true
			} else {
				fmt.Fprintf(w, "%d\t%s\n", width, line)
			}
		}
		if err == io.EOF {
			return failed
		}
		if err != nil {
			fmt.Fprintf(ew, "textwidth: reading input: %v\n", err)
			return true
		}
	}
}
