package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamed_AgregaComponente(t *testing.T) {
	var buf bytes.Buffer
	base := &Logger{zl: zerolog.New(&buf)}

	base.Named("mail").Info().Str("to", "a@b.com").Msg("otp")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "mail", line["component"])
	assert.Equal(t, "a@b.com", line["to"])

	// El logger base no hereda el campo.
	buf.Reset()
	base.Info().Msg("base")
	var plain map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &plain))
	assert.Equal(t, "base", plain["message"])
	assert.NotContains(t, plain, "component")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("ruido"))
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
}
