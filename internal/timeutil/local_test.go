package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToLocal(t *testing.T) {
	// 2026-07-15 19:30 UTC is 12:30 PDT.
	utc := time.Date(2026, 7, 15, 19, 30, 0, 0, time.UTC)
	local := ToLocal(utc)

	assert.Equal(t, 12, local.Hour())
	assert.Equal(t, 30, local.Minute())
	assert.True(t, local.Equal(utc), "conversion must not move the instant")
}

func TestFormatLocal(t *testing.T) {
	utc := time.Date(2026, 1, 15, 2, 0, 0, 0, time.UTC)
	// 2 AM UTC on the 15th is still the evening of the 14th in Los Angeles.
	assert.Equal(t, "2026-01-14", FormatLocal(utc, "2006-01-02"))
}

func TestNowUsesProductionZone(t *testing.T) {
	require.NotNil(t, Zone)
	assert.Equal(t, Zone, Now().Location())
}
