package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stock-backtest/internal/analysis"
	"stock-backtest/internal/api/models"
	"stock-backtest/internal/backtest"
	"stock-backtest/internal/config"
	"stock-backtest/internal/indicators"
	"stock-backtest/internal/metrics"
	"stock-backtest/internal/model"
	"stock-backtest/internal/strategy"
)

// BacktestHandler handles backtest-related requests
type BacktestHandler struct{}

// NewBacktestHandler creates a new backtest handler
func NewBacktestHandler() *BacktestHandler {
	return &BacktestHandler{}
}

// RunBacktest handles POST /api/v1/backtest
func (h *BacktestHandler) RunBacktest(c *gin.Context) {
	var req models.BacktestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}

	series, err := prepareSeries(req.Series, req.Options)
	if err != nil {
		writeEngineError(c, err)
		return
	}

	cfg := toConfig(req.Config)

	strat, err := strategy.Build(cfg.Strategy.Name, cfg.Strategy.Params, series)
	if err != nil {
		writeEngineError(c, err)
		return
	}

	result, err := backtest.New().Run(series, strat, cfg.Backtest)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	report := metrics.Compute(result, cfg.Metrics.RiskFreeRate, cfg.Metrics.PeriodsPerYear)

	resp := models.BacktestResponse{
		Status:  "ok",
		Summary: buildSummary(strat.Name(), result, report),
	}
	if req.Options.IncludeEquity {
		resp.Equity = result.Equity
	}
	if req.Options.IncludeTrades {
		resp.Trades = result.Trades
	}
	c.JSON(http.StatusOK, resp)
}

// CompareBacktests handles POST /api/v1/backtest/compare
func (h *BacktestHandler) CompareBacktests(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}

	series, err := prepareSeries(req.Series, req.Options)
	if err != nil {
		writeEngineError(c, err)
		return
	}

	base := toConfig(req.BaseConfig)
	variations := make([]analysis.Variation, len(req.Variations))
	for i, v := range req.Variations {
		variations[i] = analysis.Variation{
			Name:     v.Name,
			Strategy: v.Strategy,
			Backtest: v.Backtest,
		}
	}

	results := analysis.Sweep(series, base, variations)
	if req.RankBy != "" {
		results = analysis.RankBy(results, req.RankBy)
	}

	resp := models.CompareResponse{Comparison: make([]models.ComparisonResult, len(results))}
	for i, r := range results {
		cr := models.ComparisonResult{Name: r.Name}
		if r.Err != nil {
			cr.Error = r.Err.Error()
		} else {
			cr.Summary = buildSummary(r.Name, r.Result, r.Report)
		}
		resp.Comparison[i] = cr
	}
	c.JSON(http.StatusOK, resp)
}

func prepareSeries(points []model.PricePoint, opts models.BacktestOptions) (model.PriceSeries, error) {
	series := model.PriceSeries(points)
	if opts.LimitBars > 0 && opts.LimitBars < len(series) {
		series = series[:opts.LimitBars]
	}
	if err := series.Validate(); err != nil {
		return nil, err
	}
	if opts.Enrich {
		return indicators.Enrich(series, indicators.DefaultConfig())
	}
	return series, nil
}

func toConfig(rc models.RunConfig) *config.Config {
	cfg := &config.Config{
		Backtest: rc.Backtest,
		Strategy: rc.Strategy,
		Metrics:  rc.Metrics,
	}
	cfg.ApplyDefaults()
	return cfg
}

func buildSummary(strategyName string, result *backtest.Result, report metrics.Report) models.BacktestSummary {
	summary := models.BacktestSummary{
		Report:         report,
		InitialCapital: result.InitialCapital,
		TotalBars:      len(result.Equity),
		StrategyName:   strategyName,
	}
	if len(result.Equity) > 0 {
		summary.Window = models.TimeWindow{
			Start: result.Equity[0].Timestamp,
			End:   result.Equity[len(result.Equity)-1].Timestamp,
		}
	}
	return summary
}

func writeEngineError(c *gin.Context, err error) {
	var cfgErr *model.ConfigurationError
	var dataErr *model.DataIntegrityError
	switch {
	case errors.As(err, &cfgErr):
		writeError(c, http.StatusBadRequest, "INVALID_CONFIG", err)
	case errors.As(err, &dataErr):
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "DATA_INTEGRITY",
				Message: err.Error(),
				Details: map[string]any{"index": dataErr.Index},
			},
		})
	default:
		writeError(c, http.StatusBadRequest, "BACKTEST_ERROR", err)
	}
}

func writeError(c *gin.Context, status int, code string, err error) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: err.Error(),
		},
	})
}
