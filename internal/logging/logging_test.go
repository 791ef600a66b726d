package logging_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-chain/internal/logging"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		level    string
		format   string
		expected string
		noOutput bool
		wantErr  bool
	}{
		"json debug": {
			level:    "debug",
			format:   logging.FormatJSON,
			expected: `"message":"chain built"`,
		},
		"console upper case level": {
			level:    "DEBUG",
			format:   logging.FormatConsole,
			expected: "chain built",
		},
		"filtered by level": {
			level:    "warn",
			format:   logging.FormatJSON,
			noOutput: true,
		},
		"unknown level": {
			level:   "loud",
			format:  logging.FormatJSON,
			wantErr: true,
		},
		"unknown format": {
			level:   "info",
			format:  "xml",
			wantErr: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			buf := &bytes.Buffer{}
			logger, err := logging.New(tc.level, tc.format, buf)
			if tc.wantErr {
				require.Error(t, err)

				return
			}
			require.NoError(t, err)
			logger.Debug().Msg("chain built")
			if tc.noOutput {
				assert.Empty(t, buf.String())

				return
			}
			assert.Contains(t, buf.String(), tc.expected)
			assert.Contains(t, buf.String(), "pipeline")
		})
	}
}
