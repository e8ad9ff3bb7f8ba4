package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hivewallet/authority-api/logger"
	"github.com/hivewallet/authority-api/services"
	"github.com/hivewallet/authority-api/types/api/responses"
	"go.uber.org/zap"
)

// ResourceCreditHandler exposes the spend-capacity estimate.
type ResourceCreditHandler struct {
	rcService *services.ResourceCreditService
	logger    *zap.Logger
}

// NewResourceCreditHandler creates a new resource credit handler
func NewResourceCreditHandler(rcService *services.ResourceCreditService) *ResourceCreditHandler {
	return &ResourceCreditHandler{
		rcService: rcService,
		logger:    logger.Log,
	}
}

// GetEstimate returns the current regeneration estimate for an account.
func (h *ResourceCreditHandler) GetEstimate(c *gin.Context) {
	account := c.Param("account")

	estimate, err := h.rcService.EstimateForAccount(c.Request.Context(), account)
	if err != nil {
		sendError(c, http.StatusBadGateway, "failed to estimate resource credits", err)
		return
	}

	sendSuccess(c, http.StatusOK, responses.ResourceCreditResponse{
		Account:       account,
		Percent:       estimate.Percent,
		SecondsToFull: estimate.SecondsToFull,
	})
}
