package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMode_Next(t *testing.T) {
	m := ModeScope
	var seen []Mode
	for range 4 {
		seen = append(seen, m)
		m = m.Next()
	}
	assert.Equal(t, []Mode{ModeScope, ModeVoltage, ModeFrequency, ModeScope}, seen)
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "scope", ModeScope.String())
	assert.Equal(t, "voltage", ModeVoltage.String())
	assert.Equal(t, "frequency", ModeFrequency.String())
	assert.Equal(t, "Mode(7)", Mode(7).String())
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{ModeScope, ModeVoltage, ModeFrequency} {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}

	_, err := ParseMode("spectrum")
	assert.Error(t, err)
}
