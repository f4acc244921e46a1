package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/terplist/terplist/internal/application/grant/usecases"
	"github.com/terplist/terplist/internal/interfaces/http/middleware"
	"github.com/terplist/terplist/internal/shared/errors"
	"github.com/terplist/terplist/internal/shared/logger"
	"github.com/terplist/terplist/internal/shared/utils"
)

// GrantHandler handles HTTP requests for admin grant management
type GrantHandler struct {
	manageGrantsUseCase *usecases.ManageGrantsUseCase
	logger              logger.Interface
}

func NewGrantHandler(manageGrantsUseCase *usecases.ManageGrantsUseCase, log logger.Interface) *GrantHandler {
	return &GrantHandler{manageGrantsUseCase: manageGrantsUseCase, logger: log}
}

type producerGrantRequest struct {
	UserID     string `json:"user_id" binding:"required"`
	ProducerID string `json:"producer_id" binding:"required"`
}

type stateGrantRequest struct {
	UserID  string `json:"user_id" binding:"required"`
	StateID string `json:"state_id" binding:"required"`
}

// GrantProducerAdmin handles POST /admin/grants/producers
func (h *GrantHandler) GrantProducerAdmin(c *gin.Context) {
	var req producerGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	actor := middleware.ActorFromContext(c)
	if err := h.manageGrantsUseCase.GrantProducerAdmin(c.Request.Context(), actor, req.UserID, req.ProducerID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, nil, "grant created")
}

// RevokeProducerAdmin handles DELETE /admin/grants/producers
func (h *GrantHandler) RevokeProducerAdmin(c *gin.Context) {
	var req producerGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	actor := middleware.ActorFromContext(c)
	if err := h.manageGrantsUseCase.RevokeProducerAdmin(c.Request.Context(), actor, req.UserID, req.ProducerID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// GrantStateAdmin handles POST /admin/grants/states
func (h *GrantHandler) GrantStateAdmin(c *gin.Context) {
	var req stateGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	actor := middleware.ActorFromContext(c)
	if err := h.manageGrantsUseCase.GrantStateAdmin(c.Request.Context(), actor, req.UserID, req.StateID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, nil, "grant created")
}

// RevokeStateAdmin handles DELETE /admin/grants/states
func (h *GrantHandler) RevokeStateAdmin(c *gin.Context) {
	var req stateGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	actor := middleware.ActorFromContext(c)
	if err := h.manageGrantsUseCase.RevokeStateAdmin(c.Request.Context(), actor, req.UserID, req.StateID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
