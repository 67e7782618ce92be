package logging_test

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/grim/internal/logging"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		want   log.Level
		wantOK bool
	}{
		{"debug", "debug", log.DebugLevel, true},
		{"info", "info", log.InfoLevel, true},
		{"warn", "warn", log.WarnLevel, true},
		{"warning alias", "warning", log.WarnLevel, true},
		{"error", "error", log.ErrorLevel, true},
		{"mixed case", "DeBuG", log.DebugLevel, true},
		{"surrounding space", " error ", log.ErrorLevel, true},
		{"unknown", "loud", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := logging.ParseLevel(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	t.Parallel()

	assert.Equal(t, log.InfoLevel, logging.New("loud").GetLevel())
	assert.Equal(t, log.WarnLevel, logging.New("WARN").GetLevel())
}

func TestNewWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWriter(&buf, "warn")

	logger.Info("rebuilt")
	assert.Empty(t, buf.String())

	logger.Warn("math fallback", logging.FieldMatcher, "GM005")
	assert.Contains(t, buf.String(), "math fallback")
	assert.Contains(t, buf.String(), "GM005")
}

func TestDefaultAndSetLevel(t *testing.T) {
	// Mutates the process-wide logger.
	original := logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	fresh := logging.New("info")
	logging.SetDefault(fresh)
	require.Same(t, fresh, logging.Default())

	logging.SetLevel("debug")
	assert.Equal(t, log.DebugLevel, logging.Default().GetLevel())

	logging.SetLevel("nonsense")
	assert.Equal(t, log.DebugLevel, logging.Default().GetLevel(), "unknown names leave the level alone")

	logging.SetLevel("error")
	assert.Equal(t, log.ErrorLevel, logging.Default().GetLevel())
}

func TestNewInteractive(t *testing.T) {
	t.Parallel()

	logger := logging.NewInteractive()
	require.NotNil(t, logger)
	assert.Equal(t, log.InfoLevel, logger.GetLevel())
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	logger := logging.Discard()
	require.NotNil(t, logger)
	assert.Equal(t, log.FatalLevel, logger.GetLevel())
}
