package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// GetUndervalued godoc
// @Summary      Scan the universe for undervalued stocks
// @Description  Scores ~100 large caps on valuation heuristics and returns the top candidates
// @Tags         fundamentals
// @Produce      json
// @Param        limit  query  int  false  "Maximum number of results"  default(10)
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /api/undervalued [get]
func (h *Handler) GetUndervalued(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-undervalued")
	defer span.End()

	limit := h.defaultScan
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	span.SetAttributes(attribute.Int("limit", limit))

	results, err := h.scanner.Scan(ctx, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   len(results),
		"results": results,
	})
}
