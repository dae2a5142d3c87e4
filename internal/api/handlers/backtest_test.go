package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-backtest/internal/api/models"
	"stock-backtest/internal/backtest"
	"stock-backtest/internal/config"
	"stock-backtest/internal/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter() *gin.Engine {
	r := gin.New()
	bh := NewBacktestHandler()
	sh := NewStrategyHandler()
	v1 := r.Group("/api/v1")
	v1.POST("/backtest", bh.RunBacktest)
	v1.POST("/backtest/compare", bh.CompareBacktests)
	v1.GET("/strategies", sh.ListStrategies)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func requestSeries(n int) []model.PricePoint {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := make([]model.PricePoint, 0, n)
	price := 100.0
	for i := 0; i < n; i++ {
		price += 1
		if i%5 == 0 {
			price -= 3
		}
		series = append(series, model.PricePoint{
			Timestamp: start.AddDate(0, 0, i),
			Open:      price, High: price, Low: price, Close: price,
			Volume: 1000,
		})
	}
	return series
}

func maRunConfig() models.RunConfig {
	return models.RunConfig{
		Backtest: backtest.Config{InitialCapital: 1_000_000},
		Strategy: config.StrategyConfig{
			Name:   "ma",
			Params: map[string]any{"short_period": 2, "long_period": 5},
		},
	}
}

func TestRunBacktestOK(t *testing.T) {
	w := postJSON(t, newRouter(), "/api/v1/backtest", models.BacktestRequest{
		Series: requestSeries(30),
		Config: maRunConfig(),
		Options: models.BacktestOptions{
			IncludeEquity: true,
			IncludeTrades: true,
		},
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.BacktestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "ma(2/5)", resp.Summary.StrategyName)
	assert.Equal(t, 30, resp.Summary.TotalBars)
	assert.Equal(t, 1_000_000.0, resp.Summary.InitialCapital)
	assert.False(t, resp.Summary.Window.Start.IsZero())
	assert.True(t, resp.Summary.Window.End.After(resp.Summary.Window.Start))
	require.Len(t, resp.Equity, 30)
	for _, p := range resp.Equity {
		assert.InDelta(t, p.Cash+p.HoldingsValue, p.TotalEquity, 1e-9)
	}
}

func TestRunBacktestOmitsDetailByDefault(t *testing.T) {
	w := postJSON(t, newRouter(), "/api/v1/backtest", models.BacktestRequest{
		Series: requestSeries(30),
		Config: maRunConfig(),
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp models.BacktestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Equity)
	assert.Empty(t, resp.Trades)
}

func TestRunBacktestLimitBars(t *testing.T) {
	w := postJSON(t, newRouter(), "/api/v1/backtest", models.BacktestRequest{
		Series:  requestSeries(30),
		Config:  maRunConfig(),
		Options: models.BacktestOptions{LimitBars: 12},
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp models.BacktestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 12, resp.Summary.TotalBars)
}

func TestRunBacktestDefaultsCapital(t *testing.T) {
	cfg := maRunConfig()
	cfg.Backtest.InitialCapital = 0

	w := postJSON(t, newRouter(), "/api/v1/backtest", models.BacktestRequest{
		Series: requestSeries(30),
		Config: cfg,
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp models.BacktestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 10_000_000.0, resp.Summary.InitialCapital)
}

func TestRunBacktestMalformedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/backtest", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_REQUEST", resp.Error.Code)
}

func TestRunBacktestUnknownStrategy(t *testing.T) {
	cfg := maRunConfig()
	cfg.Strategy.Name = "astrology"

	w := postJSON(t, newRouter(), "/api/v1/backtest", models.BacktestRequest{
		Series: requestSeries(10),
		Config: cfg,
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_CONFIG", resp.Error.Code)
}

func TestRunBacktestCorruptSeries(t *testing.T) {
	series := requestSeries(10)
	series[4].Close = -5

	w := postJSON(t, newRouter(), "/api/v1/backtest", models.BacktestRequest{
		Series: series,
		Config: maRunConfig(),
	})

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "DATA_INTEGRITY", resp.Error.Code)
	assert.EqualValues(t, 4, resp.Error.Details["index"])
}

func TestCompareBacktests(t *testing.T) {
	w := postJSON(t, newRouter(), "/api/v1/backtest/compare", models.CompareRequest{
		Series:     requestSeries(40),
		BaseConfig: maRunConfig(),
		Variations: []models.VariationConfig{
			{Name: "base"},
			{Name: "slower", Strategy: config.StrategyConfig{Params: map[string]any{"short_period": 3, "long_period": 10}}},
			{Name: "broken", Strategy: config.StrategyConfig{Name: "astrology"}},
		},
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp models.CompareResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Comparison, 3)

	assert.Equal(t, "base", resp.Comparison[0].Name)
	assert.Empty(t, resp.Comparison[0].Error)
	assert.Equal(t, 40, resp.Comparison[0].Summary.TotalBars)

	assert.Equal(t, "slower", resp.Comparison[1].Name)
	assert.Empty(t, resp.Comparison[1].Error)

	assert.Equal(t, "broken", resp.Comparison[2].Name)
	assert.NotEmpty(t, resp.Comparison[2].Error)
}

func TestCompareBacktestsRanked(t *testing.T) {
	w := postJSON(t, newRouter(), "/api/v1/backtest/compare", models.CompareRequest{
		Series:     requestSeries(40),
		BaseConfig: maRunConfig(),
		Variations: []models.VariationConfig{
			{Name: "broken", Strategy: config.StrategyConfig{Name: "astrology"}},
			{Name: "base"},
		},
		RankBy: "total_return",
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp models.CompareResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Comparison, 2)
	// Failed runs sort behind successful ones.
	assert.Equal(t, "base", resp.Comparison[0].Name)
	assert.Equal(t, "broken", resp.Comparison[1].Name)
}

func TestListStrategies(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/strategies", nil)
	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Strategies []models.StrategyInfo `json:"strategies"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	names := make([]string, len(resp.Strategies))
	for i, s := range resp.Strategies {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"rsi", "macd", "ma", "bollinger", "combined"}, names)
	require.NotEmpty(t, resp.Strategies[0].Parameters)
	assert.Equal(t, "oversold", resp.Strategies[0].Parameters[1].Name)
}
