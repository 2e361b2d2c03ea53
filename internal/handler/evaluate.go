package handler

import (
	"errors"
	"net/http"
	"strings"

	"equity-radar/internal/backtest"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// EvaluateStrategy godoc
// @Summary      Backtest the SMA20 trend strategy for a stock
// @Description  Compares buy-and-hold against the SMA20 trend rule over two years of bars
// @Tags         backtest
// @Produce      json
// @Param        symbol  path  string  true  "Ticker symbol (e.g., AAPL)"
// @Success      200  {object}  domain.BacktestReport
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/evaluate/{symbol} [get]
func (h *Handler) EvaluateStrategy(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.evaluate-strategy")
	defer span.End()

	symbol := strings.ToUpper(strings.TrimSpace(c.Param("symbol")))
	if symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol is required"})
		return
	}
	span.SetAttributes(attribute.String("symbol", symbol))

	report, err := h.evaluator.Evaluate(ctx, symbol)
	if err != nil {
		if errors.Is(err, backtest.ErrNoData) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no bar data for " + symbol})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}
