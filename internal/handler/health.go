package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health godoc
// @Summary      Health check
// @Description  Returns service health and the loaded model's metadata
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	payload := gin.H{"status": "healthy", "model_loaded": false}
	if h.predictor != nil && h.predictor.Ready() {
		payload["model_loaded"] = true
		if meta := h.predictor.Metadata(); meta != nil {
			payload["model"] = meta
		}
	}
	c.JSON(http.StatusOK, payload)
}
