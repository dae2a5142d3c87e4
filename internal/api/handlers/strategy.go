package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stock-backtest/internal/api/models"
)

// StrategyHandler handles strategy-related requests
type StrategyHandler struct{}

// NewStrategyHandler creates a new strategy handler
func NewStrategyHandler() *StrategyHandler {
	return &StrategyHandler{}
}

// ListStrategies handles GET /api/v1/strategies
func (h *StrategyHandler) ListStrategies(c *gin.Context) {
	strategies := []models.StrategyInfo{
		{
			Name:        "rsi",
			Description: "Oscillator band strategy. Buys when the oscillator crosses below the oversold band, sells when it crosses above the overbought band. Fires once per crossing.",
			Parameters: []models.ParameterInfo{
				{
					Name:        "column",
					Type:        "string",
					Description: "Indicator column to read",
					Default:     "rsi",
				},
				{
					Name:        "oversold",
					Type:        "float",
					Description: "Buy band; must be below overbought",
					Default:     30.0,
				},
				{
					Name:        "overbought",
					Type:        "float",
					Description: "Sell band",
					Default:     70.0,
				},
			},
		},
		{
			Name:        "macd",
			Description: "MACD/signal-line crossover. Buys on the golden cross ('macd' rises above 'macd_signal'), sells on the dead cross.",
			Parameters:  []models.ParameterInfo{},
		},
		{
			Name:        "ma",
			Description: "Dual moving average crossover over the close. Holds until the long window is filled.",
			Parameters: []models.ParameterInfo{
				{
					Name:        "short_period",
					Type:        "int",
					Description: "Short SMA period",
					Default:     20,
				},
				{
					Name:        "long_period",
					Type:        "int",
					Description: "Long SMA period; must exceed short_period",
					Default:     60,
				},
			},
		},
		{
			Name:        "bollinger",
			Description: "Bollinger band rebound. Buys when the close recovers up through the lower band, sells when it reaches the upper band.",
			Parameters:  []models.ParameterInfo{},
		},
		{
			Name:        "combined",
			Description: "Voting ensemble over the other strategies. Emits a signal only when at least quorum members agree; disagreement resolves to HOLD.",
			Parameters: []models.ParameterInfo{
				{
					Name:        "use_rsi",
					Type:        "bool",
					Description: "Include the rsi strategy",
					Default:     true,
				},
				{
					Name:        "use_macd",
					Type:        "bool",
					Description: "Include the macd strategy",
					Default:     true,
				},
				{
					Name:        "use_bollinger",
					Type:        "bool",
					Description: "Include the bollinger strategy",
					Default:     false,
				},
				{
					Name:        "quorum",
					Type:        "int",
					Description: "Votes required for a signal; 0 means unanimous",
					Default:     0,
				},
			},
		},
	}

	c.JSON(http.StatusOK, gin.H{"strategies": strategies})
}
