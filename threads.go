package xfontwidth

import (
	"sync"
	"sync/atomic"

	"github.com/rjkroege/xfontwidth/display"
)

var (
	threadsOnce    sync.Once
	threadsErr     error
	threadsEnabled atomic.Bool
)

// SetupMultithreading makes the display library safe for use from several
// goroutines. Call it before creating any Context if Contexts will be
// created or queried concurrently. Only the first call has an effect; later
// calls return its result. New never calls it.
func SetupMultithreading() error {
	threadsOnce.Do(func() {
		threadsErr = display.InitThreads()
		if threadsErr == nil {
			threadsEnabled.Store(true)
		}
	})
	return threadsErr
}

// MultithreadingEnabled reports whether SetupMultithreading has succeeded.
func MultithreadingEnabled() bool {
	return threadsEnabled.Load()
}
