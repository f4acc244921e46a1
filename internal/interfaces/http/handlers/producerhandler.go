package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/terplist/terplist/internal/application/producer/usecases"
	"github.com/terplist/terplist/internal/interfaces/http/middleware"
	"github.com/terplist/terplist/internal/shared/errors"
	"github.com/terplist/terplist/internal/shared/id"
	"github.com/terplist/terplist/internal/shared/logger"
	"github.com/terplist/terplist/internal/shared/utils"
)

// ProducerHandler handles HTTP requests for producers and the leaderboard.
// Public reads address producers by slug; mutations address them by SID.
type ProducerHandler struct {
	listProducersUseCase  *usecases.ListProducersUseCase
	getProducerUseCase    *usecases.GetProducerUseCase
	createProducerUseCase *usecases.CreateProducerUseCase
	updateProducerUseCase *usecases.UpdateProducerUseCase
	logger                logger.Interface
}

func NewProducerHandler(
	listProducersUseCase *usecases.ListProducersUseCase,
	getProducerUseCase *usecases.GetProducerUseCase,
	createProducerUseCase *usecases.CreateProducerUseCase,
	updateProducerUseCase *usecases.UpdateProducerUseCase,
	log logger.Interface,
) *ProducerHandler {
	return &ProducerHandler{
		listProducersUseCase:  listProducersUseCase,
		getProducerUseCase:    getProducerUseCase,
		createProducerUseCase: createProducerUseCase,
		updateProducerUseCase: updateProducerUseCase,
		logger:                log,
	}
}

type listProducersQuery struct {
	Category string `form:"category" validate:"omitempty,oneof=flower hash"`
	State    string `form:"state"`
	Market   string `form:"market" validate:"omitempty,oneof=white black both"`
}

// ListProducers handles GET /producers
func (h *ProducerHandler) ListProducers(c *gin.Context) {
	var q listProducersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid query parameters", err.Error()))
		return
	}
	if err := utils.ValidateStruct(&q); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	results, err := h.listProducersUseCase.Execute(c.Request.Context(), usecases.ListProducersCommand{
		Category:  q.Category,
		StateSlug: q.State,
		Market:    q.Market,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, results)
}

// GetProducer handles GET /producers/:id. The public detail page is
// addressed by slug, which shares the :id segment with the SID routes.
func (h *ProducerHandler) GetProducer(c *gin.Context) {
	slug := c.Param("id")
	if slug == "" {
		utils.ErrorResponseWithError(c, errors.NewValidationError("producer slug is required"))
		return
	}

	detail, err := h.getProducerUseCase.Execute(c.Request.Context(), slug)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, detail)
}

type createProducerRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=150"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"required,oneof=flower hash"`
	Market      string `json:"market" binding:"required,oneof=white black both"`
	State       string `json:"state" binding:"required"`
}

// CreateProducer handles POST /producers
func (h *ProducerHandler) CreateProducer(c *gin.Context) {
	var req createProducerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create producer", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	result, err := h.createProducerUseCase.Execute(c.Request.Context(), usecases.CreateProducerCommand{
		Actor:       middleware.ActorFromContext(c),
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Market:      req.Market,
		StateSlug:   req.State,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result)
}

type updateProducerRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=150"`
	Description string `json:"description"`
	Market      string `json:"market" binding:"omitempty,oneof=white black both"`
}

// UpdateProducer handles PUT /producers/:id
func (h *ProducerHandler) UpdateProducer(c *gin.Context) {
	producerSID, err := utils.ParseSIDParam(c, "id", id.PrefixProducer, "producer")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req updateProducerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	err = h.updateProducerUseCase.Execute(c.Request.Context(), usecases.UpdateProducerCommand{
		Actor:       middleware.ActorFromContext(c),
		ProducerSID: producerSID,
		Name:        req.Name,
		Description: req.Description,
		Market:      req.Market,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
