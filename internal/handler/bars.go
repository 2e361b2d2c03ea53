package handler

import (
	"math"
	"net/http"
	"strings"

	"equity-radar/internal/domain"
	"equity-radar/internal/ta"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// GetBars godoc
// @Summary      Daily OHLCV bars for a stock
// @Description  Returns the bar series over the requested lookback period, oldest first
// @Tags         bars
// @Produce      json
// @Param        symbol  path   string  true   "Ticker symbol (e.g., AAPL)"
// @Param        period  query  string  false  "Bar lookback period (1mo, 3mo, 6mo, 1y, 2y, 5y)"  default(1y)
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/bars/{symbol} [get]
func (h *Handler) GetBars(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-bars")
	defer span.End()

	symbol := strings.ToUpper(strings.TrimSpace(c.Param("symbol")))
	if symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol is required"})
		return
	}
	span.SetAttributes(attribute.String("symbol", symbol))

	period := c.DefaultQuery("period", "1y")
	if !validPeriod(period) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":             "unsupported period: " + period,
			"supported_periods": domain.SupportedPeriods,
		})
		return
	}

	bars, err := h.marketData.GetBars(ctx, symbol, period)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(bars) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no bar data for " + symbol})
		return
	}

	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	payload := gin.H{
		"symbol":       symbol,
		"period":       period,
		"count":        len(bars),
		"latest_close": closes[len(closes)-1],
		"bars":         bars,
	}
	sma := ta.SMASeries(closes, 20)
	if last := sma[len(sma)-1]; !math.IsNaN(last) {
		payload["sma_20"] = last
	}

	c.JSON(http.StatusOK, payload)
}

func validPeriod(period string) bool {
	for _, p := range domain.SupportedPeriods {
		if p == period {
			return true
		}
	}
	return false
}
