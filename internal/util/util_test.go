package util

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

func TestGetTracerConcurrentFirstUse(t *testing.T) {
	const goroutines = 32

	tracers := make([]trace.Tracer, goroutines)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tracers[i] = GetTracer()
		}(i)
	}
	wg.Wait()

	require.NotNil(t, tracers[0])
	for _, tr := range tracers[1:] {
		assert.Equal(t, tracers[0], tr, "all callers must observe the same tracer")
	}
}

func TestGetLoggerConcurrentFirstUse(t *testing.T) {
	const goroutines = 32

	loggers := make([]*zap.Logger, goroutines)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			loggers[i] = GetLogger()
		}(i)
	}
	wg.Wait()

	require.NotNil(t, loggers[0])
	for _, l := range loggers[1:] {
		assert.Same(t, loggers[0], l, "all callers must observe the same logger")
	}
}
