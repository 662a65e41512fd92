package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCountdownMillis(t *testing.T) {
	start, end, local := ParseCountdown("start", "1700000000000", pacific)
	require.NotNil(t, start)
	assert.Nil(t, end)
	assert.False(t, local)
	assert.True(t, start.Equal(time.UnixMilli(1700000000000)))
}

func TestParseCountdownLocal(t *testing.T) {
	start, end, local := ParseCountdown("end", "2024-05-12 10:00:00", pacific)
	assert.Nil(t, start)
	require.NotNil(t, end)
	assert.True(t, local)
	assert.True(t, end.Equal(time.Date(2024, 5, 12, 17, 0, 0, 0, time.UTC)))
}

func TestParseCountdownInvalid(t *testing.T) {
	for _, tc := range []struct{ to, raw string }{
		{"start", ""},
		{"start", "not a date at all"},
		{"sometime", "1700000000000"},
	} {
		start, end, local := ParseCountdown(tc.to, tc.raw, pacific)
		assert.Nil(t, start, tc)
		assert.Nil(t, end, tc)
		assert.False(t, local, tc)
	}
}

func TestParseCountdownOverflowingMillis(t *testing.T) {
	start, end, local := ParseCountdown("start", "99999999999999999999", pacific)
	assert.Nil(t, start)
	assert.Nil(t, end)
	assert.False(t, local)
}
