// Package data loads price series from flat files and generates synthetic
// series for demos and tests. The engine never touches the filesystem;
// loading is strictly a caller-side step.
package data

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"stock-backtest/internal/model"
)

// LoadCSV reads an OHLCV series from a CSV file. The header must contain
// timestamp, open, high, low, close and volume; any additional numeric
// columns are attached as indicator values (empty cells are skipped, so
// lookback warmup rows work naturally). Timestamps are RFC3339 or
// YYYY-MM-DD.
func LoadCSV(path string) (model.PriceSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%s: no data rows", path)
	}

	col := map[string]int{}
	for i, name := range rows[0] {
		col[name] = i
	}
	for _, required := range []string{"timestamp", "open", "high", "low", "close", "volume"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("%s: missing column %q", path, required)
		}
	}

	series := make(model.PriceSeries, 0, len(rows)-1)
	for n, row := range rows[1:] {
		ts, err := parseTime(row[col["timestamp"]])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, n+1, err)
		}
		p := model.PricePoint{Timestamp: ts}
		for name, dst := range map[string]*float64{
			"open":   &p.Open,
			"high":   &p.High,
			"low":    &p.Low,
			"close":  &p.Close,
			"volume": &p.Volume,
		} {
			v, err := strconv.ParseFloat(row[col[name]], 64)
			if err != nil {
				return nil, fmt.Errorf("%s row %d: column %q: %w", path, n+1, name, err)
			}
			*dst = v
		}
		for name, i := range col {
			switch name {
			case "timestamp", "open", "high", "low", "close", "volume":
				continue
			}
			if i >= len(row) || row[i] == "" {
				continue
			}
			v, err := strconv.ParseFloat(row[i], 64)
			if err != nil {
				return nil, fmt.Errorf("%s row %d: column %q: %w", path, n+1, name, err)
			}
			if p.Indicators == nil {
				p.Indicators = map[string]float64{}
			}
			p.Indicators[name] = v
		}
		series = append(series, p)
	}
	return series, nil
}

func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
