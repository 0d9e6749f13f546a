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

	_, err = NewTimeStringFromString("9:30")
	assert.Error(t, err)

	_, err = NewTimeStringFromString("25:00")
	assert.Error(t, err)

	_, err = NewTimeStringFromString("")
	assert.Error(t, err)
}

func TestNewTimeString(t *testing.T) {
	now := time.Date(2026, 4, 15, 14, 5, 59, 0, time.UTC)
	assert.Equal(t, "14:05", NewTimeString(now).String())
}

func TestTimeString_MinutesFromMidnight(t *testing.T) {
	ts := TimeString("10:45")
	minutes, err := ts.MinutesFromMidnight()
	require.NoError(t, err)
	assert.Equal(t, 645, minutes)
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := TimeString("10:00")

	result, err := ts.AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, "11:30", result.String())

	// Граница суток дает эксклюзивный конец дня
	result, err = TimeString("23:30").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, "24:00", result.String())

	// Выход за границу суток - ошибка
	_, err = TimeString("23:30").AddMinutes(31)
	assert.Error(t, err)

	_, err = TimeString("01:00").AddMinutes(-61)
	assert.Error(t, err)
}

func TestTimeString_Comparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore(TimeString("10:00")))
	assert.False(t, TimeString("10:00").IsBefore(TimeString("10:00")))
	assert.True(t, TimeString("18:00").IsAfter(TimeString("09:00")))

	// "24:00" позже любого реального времени
	assert.True(t, TimeString("24:00").IsAfter(TimeString("23:59")))
	assert.True(t, TimeString("23:59").IsBefore(TimeString("24:00")))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	// Postgres TIME приходит с секундами
	require.NoError(t, ts.Scan("10:00:00"))
	assert.Equal(t, "10:00", ts.String())

	require.NoError(t, ts.Scan([]byte("18:30:00")))
	assert.Equal(t, "18:30", ts.String())

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())
}
