package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2024-02-29 ")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2024, time.February, 29), d)

	for _, bad := range []string{"", "2023-02-29", "01.03.2024", "2024-3-1"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestDate_After(t *testing.T) {
	a := NewDate(2024, time.March, 1)
	b := NewDate(2024, time.March, 2)
	assert.True(t, b.After(a))
	assert.False(t, a.After(b))
	assert.False(t, a.After(a))
}

func TestDate_JSON(t *testing.T) {
	var out struct {
		D  Date  `json:"d"`
		OD *Date `json:"od"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"d":"2024-03-01","od":null}`), &out))
	assert.Equal(t, "2024-03-01", out.D.String())
	assert.Nil(t, out.OD)

	data, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":"2024-03-01","od":null}`, string(data))

	assert.Error(t, json.Unmarshal([]byte(`{"d":"March"}`), &out))
}

func TestDate_Scan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.Local)))
	assert.Equal(t, NewDate(2024, time.March, 1), d)

	require.NoError(t, d.Scan("2024-04-02T00:00:00Z"))
	assert.Equal(t, "2024-04-02", d.String())

	require.NoError(t, d.Scan([]byte("2024-05-03")))
	assert.Equal(t, "2024-05-03", d.String())

	assert.Error(t, d.Scan(42))
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in   string
		want Clock
	}{
		{"09:30", Clock{Hour: 9, Minute: 30}},
		{"09:30:15", Clock{Hour: 9, Minute: 30, Second: 15}},
		{"23:59:59.123456", Clock{Hour: 23, Minute: 59, Second: 59}},
	}
	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "25:00", "9.30", "noon"} {
		_, err := ParseClock(bad)
		assert.Error(t, err, bad)
	}
}

func TestClock(t *testing.T) {
	enter := Clock{Hour: 9, Minute: 30}
	exit := Clock{Hour: 9, Minute: 30, Second: 1}

	assert.True(t, enter.Before(exit))
	assert.False(t, exit.Before(enter))
	assert.False(t, enter.Before(enter))
	assert.Equal(t, "09:30:00", enter.String())

	data, err := json.Marshal(enter)
	require.NoError(t, err)
	assert.Equal(t, `"09:30:00"`, string(data))

	var c Clock
	require.NoError(t, c.Scan("18:05:00"))
	assert.Equal(t, Clock{Hour: 18, Minute: 5}, c)
	require.NoError(t, c.Scan(time.Date(0, 1, 1, 7, 0, 0, 0, time.UTC)))
	assert.Equal(t, Clock{Hour: 7}, c)
	assert.Error(t, c.Scan(int64(1)))

	v, err := enter.Value()
	require.NoError(t, err)
	assert.Equal(t, "09:30:00", v)
}
