package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quizbank/internal/question"
)

func (h *handler) handleHealth(c *gin.Context) {
	now := h.nowFn()
	c.JSON(http.StatusOK, healthResponse{
		Success:   true,
		Message:   msgServerRunning,
		Timestamp: question.Timestamp(now),
		Uptime:    now.Sub(h.started).Seconds(),
	})
}
