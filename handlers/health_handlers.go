package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hivewallet/authority-api/types/api/responses"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Health returns a simple "ok" status
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, responses.HealthResponse{
		Status: "ok",
	})
}
