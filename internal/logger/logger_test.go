// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_SetupWriter(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	testCases := []struct {
		name      string
		logger    Logger
		wantLevel zerolog.Level
	}{
		{"Default", Logger{}, zerolog.InfoLevel},
		{"Debug", Logger{Level: "debug"}, zerolog.DebugLevel},
		{"Unknown", Logger{Level: "chatty"}, zerolog.InfoLevel},
		{"Disabled", Logger{Level: "disabled"}, zerolog.Disabled},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			testCase.logger.SetupWriter(&bytes.Buffer{})

			assert.Equal(t, testCase.wantLevel, zerolog.GlobalLevel())
		})
	}

	t.Run("JSON", func(t *testing.T) {
		var buf bytes.Buffer
		Logger{Level: "info", Format: "json"}.SetupWriter(&buf)

		log.Info().Str("code", "4326").Msg("loaded")
		log.Debug().Msg("hidden")

		var line map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "info", line["level"])
		assert.Equal(t, "4326", line["code"])
		assert.Equal(t, "loaded", line["message"])
	})

	t.Run("Console", func(t *testing.T) {
		var buf bytes.Buffer
		Logger{Level: "warn", Format: "console"}.SetupWriter(&buf)

		log.Warn().Msg("careful")
		log.Info().Msg("hidden")

		assert.Contains(t, buf.String(), "careful")
		assert.NotContains(t, buf.String(), "hidden")
	})
}
