package goroutine

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/techflow/techflow/internal/shared/logger"
)

func TestSafeGoTracked_RecoversAndCompletes(t *testing.T) {
	var wg sync.WaitGroup
	var ran atomic.Int32

	SafeGoTracked(logger.NewLogger(), "panicking", &wg, func() {
		ran.Add(1)
		panic("boom")
	})
	SafeGoTracked(logger.NewLogger(), "normal", &wg, func() {
		ran.Add(1)
	})
	wg.Wait()

	assert.Equal(t, int32(2), ran.Load())
}

func TestSafeGo_Recovers(t *testing.T) {
	done := make(chan struct{})
	SafeGo(logger.NewLogger(), "panicking", func() {
		defer close(done)
		panic("boom")
	})
	<-done
}
