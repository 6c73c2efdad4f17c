package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, "09:30", ts.String())

	for _, bad := range []string{"", "9:30am", "25:00", "09:60", "0930"} {
		_, err := NewTimeStringFromString(bad)
		assert.ErrorIs(t, err, ErrInvalidTimeString, "input %q", bad)
	}
}

func TestTimeStringMinutes(t *testing.T) {
	ts := TimeString("10:45")
	minutes, err := ts.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 10*60+45, minutes)

	_, err = TimeString("bad").Minutes()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeStringAddMinutes(t *testing.T) {
	ts := TimeString("09:00")

	next, err := ts.AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:30"), next)

	next, err = ts.AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:30"), next)
}

func TestTimeStringComparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("18:00"))
	assert.False(t, TimeString("18:00").IsBefore("09:00"))
	assert.False(t, TimeString("09:00").IsBefore("09:00"))

	assert.True(t, TimeString("18:00").IsAfter("09:00"))
	assert.False(t, TimeString("09:00").IsAfter("09:00"))
}

func TestTimeStringOn(t *testing.T) {
	date := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	at, err := TimeString("14:30").On(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 16, 14, 30, 0, 0, time.UTC), at)
}

func TestTimeStringScan(t *testing.T) {
	var ts TimeString

	// Postgres TIME приходит с секундами
	require.NoError(t, ts.Scan("09:00:00"))
	assert.Equal(t, TimeString("09:00"), ts)

	require.NoError(t, ts.Scan([]byte("18:30:00")))
	assert.Equal(t, TimeString("18:30"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())
}

func TestTimeStringValue(t *testing.T) {
	v, err := TimeString("09:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "09:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("garbage").Value()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}
