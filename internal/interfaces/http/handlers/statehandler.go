package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/terplist/terplist/internal/application/state/usecases"
	"github.com/terplist/terplist/internal/interfaces/http/middleware"
	"github.com/terplist/terplist/internal/shared/errors"
	"github.com/terplist/terplist/internal/shared/logger"
	"github.com/terplist/terplist/internal/shared/utils"
)

// StateHandler handles HTTP requests for state partitions
type StateHandler struct {
	createStateUseCase *usecases.CreateStateUseCase
	listStatesUseCase  *usecases.ListStatesUseCase
	logger             logger.Interface
}

func NewStateHandler(
	createStateUseCase *usecases.CreateStateUseCase,
	listStatesUseCase *usecases.ListStatesUseCase,
	log logger.Interface,
) *StateHandler {
	return &StateHandler{
		createStateUseCase: createStateUseCase,
		listStatesUseCase:  listStatesUseCase,
		logger:             log,
	}
}

type createStateRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

// CreateState handles POST /states
func (h *StateHandler) CreateState(c *gin.Context) {
	var req createStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	actor := middleware.ActorFromContext(c)
	result, err := h.createStateUseCase.Execute(c.Request.Context(), actor, req.Name)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result)
}

// ListStates handles GET /states
func (h *StateHandler) ListStates(c *gin.Context) {
	states, err := h.listStatesUseCase.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, states)
}
