package data

import (
	"encoding/json"
	"os"

	"stock-backtest/internal/model"
)

// seriesFile matches the JSON shape of an exported series.
//
// Example:
//
//	{
//	  "data": [ {"timestamp": "...", "open": ..., ...}, ... ]
//	}
//
// A bare top-level array of points is accepted too.
type seriesFile struct {
	Data []model.PricePoint `json:"data"`
}

// LoadJSON reads a price series from a JSON file.
func LoadJSON(path string) (model.PriceSeries, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var bare []model.PricePoint
	if err := json.Unmarshal(raw, &bare); err == nil {
		return model.PriceSeries(bare), nil
	}
	var wrapped seriesFile
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, err
	}
	return model.PriceSeries(wrapped.Data), nil
}
