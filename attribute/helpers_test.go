package attribute

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/arloliu/meshattr/logger"
)

func requirePanicsWith(t *testing.T, target error, fn func()) {
	t.Helper()

	defer func() {
		t.Helper()
		r := recover()
		require.NotNil(t, r, "expected panic wrapping %v", target)
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		require.True(t, errors.Is(err, target), "panic %v does not wrap %v", err, target)
	}()
	fn()
}

func observeWarnings(t *testing.T) *observer.ObservedLogs {
	t.Helper()

	core, logs := observer.New(zapcore.WarnLevel)
	logger.SetLogger(zap.New(core))
	t.Cleanup(func() { logger.SetLogger(nil) })

	return logs
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	reg := NewRegistry()
	RegisterDefaults(reg)

	return NewManager(WithRegistry(reg), WithLogger(zap.NewNop()))
}
