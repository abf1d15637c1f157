// Package goroutine launches background work that must not crash the process.
package goroutine

import (
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/techflow/techflow/internal/shared/logger"
)

// SafeGo runs fn on a new goroutine and logs a panic with its stack instead of crashing.
func SafeGo(log logger.Interface, name string, fn func()) {
	go func() {
		defer recoverPanic(log, name)
		fn()
	}()
}

// SafeGoTracked is SafeGo registered with wg, so callers can wait for in-flight work.
func SafeGoTracked(log logger.Interface, name string, wg *sync.WaitGroup, fn func()) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer recoverPanic(log, name)
		fn()
	}()
}

func recoverPanic(log logger.Interface, name string) {
	if r := recover(); r != nil {
		log.Errorw("goroutine panicked",
			"goroutine", name,
			"panic", fmt.Sprintf("%v", r),
			"stack", string(debug.Stack()),
		)
	}
}
