package handler

import (
	"net/http"
	"strings"

	"equity-radar/internal/fundamentals"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// AnalyzeRatios godoc
// @Summary      Fundamental ratio analysis for a stock
// @Description  Returns the normalized ratio record; unavailable fields are 0.0
// @Tags         fundamentals
// @Produce      json
// @Param        symbol  path  string  true  "Ticker symbol (e.g., AAPL)"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/analyze/{symbol} [get]
func (h *Handler) AnalyzeRatios(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.analyze-ratios")
	defer span.End()

	symbol := strings.ToUpper(strings.TrimSpace(c.Param("symbol")))
	if symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol is required"})
		return
	}
	span.SetAttributes(attribute.String("symbol", symbol))

	raw, err := h.marketData.GetFundamentals(ctx, symbol)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if raw == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no fundamentals for " + symbol})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"symbol": symbol,
		"ratios": fundamentals.Normalize(raw),
	})
}
