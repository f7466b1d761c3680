package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLoggerLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "unknown"} {
		logger := NewLogger(level)
		assert.NotNil(t, logger, level)
	}
}

func TestWithFieldsChains(t *testing.T) {
	logger := NewNopLogger().WithFields(Fields{"component": "test"})
	assert.NotNil(t, logger)

	// None of these may panic regardless of field shape.
	logger.Debug("debug", Fields{"k": 1})
	logger.Info("info")
	logger.Warn("warn", nil)
	logger.Error(errors.New("boom"), "error", Fields{"k": "v"})
	logger.Error(nil, "error without cause")
}
