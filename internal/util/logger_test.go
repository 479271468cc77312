package util

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInitLogger(t *testing.T) {
	t.Cleanup(func() { logger.Store(nil) })

	require.NoError(t, InitLogger("production", ""))
	assert.True(t, GetLogger().Core().Enabled(zapcore.InfoLevel))
	assert.False(t, GetLogger().Core().Enabled(zapcore.DebugLevel))

	require.NoError(t, InitLogger("development", "warn"))
	assert.False(t, GetLogger().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, GetLogger().Core().Enabled(zapcore.WarnLevel))

	assert.Error(t, InitLogger("development", "loud"))
}

func TestGetLoggerFallback(t *testing.T) {
	t.Cleanup(func() { logger.Store(nil) })
	logger.Store(nil)

	assert.NotNil(t, GetLogger())
}

func TestGetLoggerConcurrentFallback(t *testing.T) {
	t.Cleanup(func() { logger.Store(nil) })
	logger.Store(nil)

	const workers = 32
	got := make([]*zap.Logger, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[i] = GetLogger()
		}()
	}
	wg.Wait()

	require.NotNil(t, got[0])
	for _, l := range got {
		assert.Same(t, got[0], l)
	}
}

func TestInitTracerDisabled(t *testing.T) {
	tp, err := InitTracer("")
	require.NoError(t, err)
	assert.Nil(t, tp)

	_, span := StartSpan(context.Background(), "noop")
	span.End()
}
