package data

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeFile(t, "prices.csv", `timestamp,open,high,low,close,volume,rsi
2024-01-02,100,102,99,101,12000,
2024-01-03T00:00:00Z,101,103,100,102.5,13000,55.2
`)

	series, err := LoadCSV(path)
	require.NoError(t, err)
	require.Len(t, series, 2)

	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), series[0].Timestamp)
	assert.Equal(t, 100.0, series[0].Open)
	assert.Equal(t, 102.0, series[0].High)
	assert.Equal(t, 99.0, series[0].Low)
	assert.Equal(t, 101.0, series[0].Close)
	assert.Equal(t, 12000.0, series[0].Volume)
	// Empty indicator cell: warmup row, column absent.
	_, ok := series[0].Indicator("rsi")
	assert.False(t, ok)

	v, ok := series[1].Indicator("rsi")
	require.True(t, ok)
	assert.Equal(t, 55.2, v)

	require.NoError(t, series.Validate())
}

func TestLoadCSVErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing close column", "timestamp,open,high,low,volume\n2024-01-02,1,1,1,1\n"},
		{"header only", "timestamp,open,high,low,close,volume\n"},
		{"bad price", "timestamp,open,high,low,close,volume\n2024-01-02,oops,1,1,1,1\n"},
		{"bad timestamp", "timestamp,open,high,low,close,volume\nyesterday,1,1,1,1,1\n"},
		{"bad indicator cell", "timestamp,open,high,low,close,volume,rsi\n2024-01-02,1,1,1,1,1,low\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCSV(writeFile(t, "bad.csv", tt.body))
			assert.Error(t, err)
		})
	}

	_, err := LoadCSV(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}

func TestLoadJSONBareArray(t *testing.T) {
	path := writeFile(t, "prices.json", `[
	  {"timestamp": "2024-01-02T00:00:00Z", "open": 100, "high": 102, "low": 99, "close": 101, "volume": 12000},
	  {"timestamp": "2024-01-03T00:00:00Z", "open": 101, "high": 103, "low": 100, "close": 102, "volume": 13000,
	   "indicators": {"rsi": 48.5}}
	]`)

	series, err := LoadJSON(path)
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, 101.0, series[0].Close)

	v, ok := series[1].Indicator("rsi")
	require.True(t, ok)
	assert.Equal(t, 48.5, v)
}

func TestLoadJSONWrapped(t *testing.T) {
	path := writeFile(t, "prices.json", `{"data": [
	  {"timestamp": "2024-01-02T00:00:00Z", "open": 100, "high": 102, "low": 99, "close": 101, "volume": 12000}
	]}`)

	series, err := LoadJSON(path)
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, 101.0, series[0].Close)
}

func TestLoadJSONRejectsGarbage(t *testing.T) {
	_, err := LoadJSON(writeFile(t, "bad.json", "not json"))
	assert.Error(t, err)
}

func TestSyntheticIsDeterministic(t *testing.T) {
	a := Synthetic(100, 100, 42)
	b := Synthetic(100, 100, 42)
	assert.Equal(t, a, b)

	c := Synthetic(100, 100, 7)
	assert.NotEqual(t, a, c)
}

func TestSyntheticIsWellFormed(t *testing.T) {
	series := Synthetic(252, 100, 1)
	require.Len(t, series, 252)
	require.NoError(t, series.Validate())

	assert.Equal(t, 100.0, series[0].Open)
	for i, p := range series {
		assert.GreaterOrEqual(t, p.High, p.Open, "bar %d", i)
		assert.GreaterOrEqual(t, p.High, p.Close, "bar %d", i)
		assert.LessOrEqual(t, p.Low, p.Open, "bar %d", i)
		assert.LessOrEqual(t, p.Low, p.Close, "bar %d", i)
	}
}
