package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/jrsteele09/go-profile-optimizer/internal/logging"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, "json")
	logger.Info().Str("route", "/auth/exchange").Msg("handled")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "handled", entry["message"])
	require.Equal(t, "/auth/exchange", entry["route"])
	require.Contains(t, entry, "time")
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, "console")
	logger.Warn().Msg("enrichment degraded")
	require.Contains(t, buf.String(), "enrichment degraded")
}
