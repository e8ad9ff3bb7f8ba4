package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hivewallet/authority-api/client/hived"
	"github.com/hivewallet/authority-api/logger"
	"github.com/hivewallet/authority-api/services"
	"github.com/hivewallet/authority-api/types/api/requests"
	"github.com/hivewallet/authority-api/types/api/responses"
	"github.com/hivewallet/authority-api/types/business"
	"go.uber.org/zap"
)

// AuthorityHandler exposes the authority engine to the presentation layer.
type AuthorityHandler struct {
	authorityService *services.AuthorityService
	logger           *zap.Logger
}

// NewAuthorityHandler creates a new authority handler
func NewAuthorityHandler(authorityService *services.AuthorityService) *AuthorityHandler {
	return &AuthorityHandler{
		authorityService: authorityService,
		logger:           logger.Log,
	}
}

// GetAuthority returns the canonical four-level authority state for an
// account, freshly fetched from the ledger.
func (h *AuthorityHandler) GetAuthority(c *gin.Context) {
	account := c.Param("account")

	state, err := h.authorityService.GetAuthorityState(c.Request.Context(), account)
	if err != nil {
		sendError(c, http.StatusBadGateway, "failed to fetch authority state", err)
		return
	}

	sendSuccess(c, http.StatusOK, state)
}

// ValidateEdit dry-runs one edit intent without any network effect.
func (h *AuthorityHandler) ValidateEdit(c *gin.Context) {
	account, level, req, ok := h.bindEdit(c)
	if !ok {
		return
	}

	state := req.State
	if state == nil {
		fetched, err := h.authorityService.GetAuthorityState(c.Request.Context(), account)
		if err != nil {
			sendError(c, http.StatusBadGateway, "failed to fetch authority state", err)
			return
		}
		state = fetched
	}

	if verr := h.authorityService.Validate(state, level, req.Intent()); verr != nil {
		sendSuccess(c, http.StatusOK, responses.ValidateEditResponse{Valid: false, Error: verr})
		return
	}
	sendSuccess(c, http.StatusOK, responses.ValidateEditResponse{Valid: true})
}

// ApplyEdit validates, serializes and broadcasts one edit. The caller must
// not have another edit in flight for the same account and level.
func (h *AuthorityHandler) ApplyEdit(c *gin.Context) {
	account, level, req, ok := h.bindEdit(c)
	if !ok {
		return
	}

	result, err := h.authorityService.Apply(c.Request.Context(), services.ApplyAuthorityEditParams{
		Account: account,
		Level:   level,
		Intent:  req.Intent(),
		State:   req.State,
	})
	if err != nil {
		var verr *business.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusUnprocessableEntity, verr)
			return
		}
		var cerr *business.ClassifiedError
		if errors.As(err, &cerr) {
			c.JSON(http.StatusBadGateway, responses.ClassifyErrorResponse{Kind: cerr.Kind, Message: cerr.Message})
			return
		}
		sendError(c, http.StatusInternalServerError, "failed to apply authority edit", err)
		return
	}

	sendSuccess(c, http.StatusOK, responses.ApplyEditResponse{
		TransactionID:   result.TransactionID,
		BlockNum:        result.BlockNum,
		InvalidationID:  result.Invalidation.ID.String(),
		Account:         result.Invalidation.Account,
		Level:           result.Invalidation.Level,
		RefetchRequired: result.RefetchRequired,
	})
}

// ClassifyError classifies a raw broadcast failure for callers that perform
// their own broadcasts.
func (h *AuthorityHandler) ClassifyError(c *gin.Context) {
	var req requests.ClassifyErrorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	classified := h.authorityService.ClassifyBroadcastError(decodeRawError(req.RawError))
	sendSuccess(c, http.StatusOK, responses.ClassifyErrorResponse{
		Kind:    classified.Kind,
		Message: classified.Message,
	})
}

// bindEdit pulls account and level from the path and the edit body from the
// request, rejecting malformed input before any service work.
func (h *AuthorityHandler) bindEdit(c *gin.Context) (string, business.AuthorityLevel, requests.AuthorityEditRequest, bool) {
	var req requests.AuthorityEditRequest

	account := c.Param("account")
	if account == "" {
		sendError(c, http.StatusBadRequest, "account is required", nil)
		return "", "", req, false
	}

	level, err := business.ParseAuthorityLevel(c.Param("level"))
	if err != nil {
		sendError(c, http.StatusBadRequest, "invalid authority level", err)
		return "", "", req, false
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "invalid request body", err)
		return "", "", req, false
	}

	return account, level, req, true
}

// decodeRawError rebuilds an error value from the posted raw failure. A JSON
// string becomes a plain error; an RPC envelope (bare or wrapped in
// {"error": ...}) becomes a *hived.RPCError so the structured matchers see
// the same shape the client would have returned.
func decodeRawError(raw json.RawMessage) error {
	var plain string
	if err := json.Unmarshal(raw, &plain); err == nil {
		return errors.New(plain)
	}

	var wrapped struct {
		Error *hived.RPCError `json:"error"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Error != nil && (wrapped.Error.Message != "" || wrapped.Error.Data.Name != "") {
		return wrapped.Error
	}

	var rpcErr hived.RPCError
	if err := json.Unmarshal(raw, &rpcErr); err == nil && (rpcErr.Message != "" || rpcErr.Data.Name != "") {
		return &rpcErr
	}

	return errors.New(string(raw))
}
