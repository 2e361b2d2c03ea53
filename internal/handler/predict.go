package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// GetPrediction godoc
// @Summary      Predict next-day direction for a stock
// @Description  Returns the SMA20 baseline signal and the trained model's call side by side
// @Tags         predictions
// @Produce      json
// @Param        symbol  path   string  true   "Ticker symbol (e.g., AAPL)"
// @Param        period  query  string  false  "Bar lookback period (1mo, 3mo, 6mo, 1y, 2y, 5y)"  default(1y)
// @Success      200  {object}  domain.Prediction
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/predict/{symbol} [get]
func (h *Handler) GetPrediction(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-prediction")
	defer span.End()

	symbol := strings.ToUpper(strings.TrimSpace(c.Param("symbol")))
	if symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol is required"})
		return
	}
	span.SetAttributes(attribute.String("symbol", symbol))

	period := c.DefaultQuery("period", "1y")
	bars, err := h.marketData.GetBars(ctx, symbol, period)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(bars) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no bar data for " + symbol})
		return
	}

	c.JSON(http.StatusOK, h.predictor.Predict(ctx, symbol, bars))
}
