package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rgehrsitz/propcalc/internal/calculation"
	"github.com/rgehrsitz/propcalc/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("info"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
}

func TestNew_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "warn", Out: &buf})

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
}

func TestNew_Pretty(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "info", Pretty: true, Out: &buf})
	logger.Info().Msg("hello")

	assert.Contains(t, buf.String(), "hello")
	assert.False(t, strings.HasPrefix(buf.String(), "{"), "pretty output is not JSON")
}

func TestEngineLogger(t *testing.T) {
	var buf bytes.Buffer
	var _ calculation.Logger = (*EngineLogger)(nil)

	engineLog := NewEngineLogger(New(Config{Level: "debug", Out: &buf}))
	engineLog.Warnf("scenario %q rejected", "base")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "engine", entry["component"])
	assert.Equal(t, `scenario "base" rejected`, entry["message"])
}

func TestEngineLogger_WithEngine(t *testing.T) {
	var buf bytes.Buffer
	engine := calculation.NewEngine()
	engine.SetLogger(NewEngineLogger(New(Config{Level: "debug", Out: &buf})))
	engine.Debug = true

	_, err := engine.Analyze("empty", domain.LoanInputs{})
	assert.Error(t, err)
	assert.Contains(t, buf.String(), `analysis \"empty\" rejected`)
}
