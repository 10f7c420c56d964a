package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	prevLogger, prevLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})

	t.Run("warnレベルのJSON出力ではinfoが出ないのだ", func(t *testing.T) {
		var buf bytes.Buffer
		Setup(&buf, "warn", "json")

		log.Info().Msg("hidden")
		log.Warn().Str("k", "v").Msg("shown")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "shown", entry["message"])
		assert.Equal(t, "v", entry["k"])
		assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
	})

	t.Run("未知のレベルはinfoになるのだ", func(t *testing.T) {
		var buf bytes.Buffer
		Setup(&buf, "verbose", "console")

		log.Debug().Msg("hidden")
		log.Info().Msg("visible")

		assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "visible")
	})
}
