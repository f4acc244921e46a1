package handlers

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/terplist/terplist/internal/application/strain/usecases"
	"github.com/terplist/terplist/internal/interfaces/http/middleware"
	"github.com/terplist/terplist/internal/shared/errors"
	"github.com/terplist/terplist/internal/shared/id"
	"github.com/terplist/terplist/internal/shared/logger"
	"github.com/terplist/terplist/internal/shared/utils"
)

// StrainHandler handles HTTP requests for strains and the drop calendar
type StrainHandler struct {
	createStrainUseCase *usecases.CreateStrainUseCase
	updateStrainUseCase *usecases.UpdateStrainUseCase
	deleteStrainUseCase *usecases.DeleteStrainUseCase
	listStrainsUseCase  *usecases.ListStrainsUseCase
	listDropsUseCase    *usecases.ListDropsUseCase
	logger              logger.Interface
}

func NewStrainHandler(
	createStrainUseCase *usecases.CreateStrainUseCase,
	updateStrainUseCase *usecases.UpdateStrainUseCase,
	deleteStrainUseCase *usecases.DeleteStrainUseCase,
	listStrainsUseCase *usecases.ListStrainsUseCase,
	listDropsUseCase *usecases.ListDropsUseCase,
	log logger.Interface,
) *StrainHandler {
	return &StrainHandler{
		createStrainUseCase: createStrainUseCase,
		updateStrainUseCase: updateStrainUseCase,
		deleteStrainUseCase: deleteStrainUseCase,
		listStrainsUseCase:  listStrainsUseCase,
		listDropsUseCase:    listDropsUseCase,
		logger:              log,
	}
}

type createStrainRequest struct {
	Name        string     `json:"name" binding:"required,min=1,max=150"`
	Description string     `json:"description"`
	Terpenes    []string   `json:"terpenes"`
	DropAt      *time.Time `json:"drop_at"`
}

// CreateStrain handles POST /producers/:id/strains
func (h *StrainHandler) CreateStrain(c *gin.Context) {
	producerSID, err := utils.ParseSIDParam(c, "id", id.PrefixProducer, "producer")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req createStrainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create strain", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	result, err := h.createStrainUseCase.Execute(c.Request.Context(), usecases.CreateStrainCommand{
		Actor:       middleware.ActorFromContext(c),
		ProducerSID: producerSID,
		Name:        req.Name,
		Description: req.Description,
		Terpenes:    req.Terpenes,
		DropAt:      req.DropAt,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result)
}

// updateStrainRequest keeps drop_at as raw JSON so an absent field can be
// told apart from an explicit null. Absent leaves the schedule alone, null
// cancels the drop.
type updateStrainRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=150"`
	Description string          `json:"description"`
	Terpenes    []string        `json:"terpenes"`
	DropAt      json.RawMessage `json:"drop_at"`
}

// UpdateStrain handles PUT /strains/:id
func (h *StrainHandler) UpdateStrain(c *gin.Context) {
	strainSID, err := utils.ParseSIDParam(c, "id", id.PrefixStrain, "strain")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req updateStrainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update strain", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	cmd := usecases.UpdateStrainCommand{
		Actor:       middleware.ActorFromContext(c),
		StrainSID:   strainSID,
		Name:        req.Name,
		Description: req.Description,
		Terpenes:    req.Terpenes,
	}

	if len(req.DropAt) > 0 {
		cmd.SetDropAt = true
		if !bytes.Equal(req.DropAt, []byte("null")) {
			var dropAt time.Time
			if err := json.Unmarshal(req.DropAt, &dropAt); err != nil {
				utils.ErrorResponseWithError(c, errors.NewValidationError("invalid drop_at, expected RFC 3339 timestamp or null"))
				return
			}
			cmd.DropAt = &dropAt
		}
	}

	if err := h.updateStrainUseCase.Execute(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// DeleteStrain handles DELETE /strains/:id
func (h *StrainHandler) DeleteStrain(c *gin.Context) {
	strainSID, err := utils.ParseSIDParam(c, "id", id.PrefixStrain, "strain")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteStrainUseCase.Execute(c.Request.Context(), middleware.ActorFromContext(c), strainSID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// ListStrains handles GET /producers/:id/strains
func (h *StrainHandler) ListStrains(c *gin.Context) {
	producerSID, err := utils.ParseSIDParam(c, "id", id.PrefixProducer, "producer")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	strains, err := h.listStrainsUseCase.Execute(c.Request.Context(), producerSID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, strains)
}

type listDropsQuery struct {
	State string `form:"state"`
	Week  string `form:"week" validate:"omitempty,datetime=2006-01-02"`
}

// ListDrops handles GET /drops. The optional week query parameter anchors
// the calendar to the week containing that date; it defaults to now.
func (h *StrainHandler) ListDrops(c *gin.Context) {
	var q listDropsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid query parameters", err.Error()))
		return
	}
	if err := utils.ValidateStruct(&q); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.ListDropsCommand{StateSlug: q.State}
	if q.Week != "" {
		anchor, _ := time.Parse("2006-01-02", q.Week)
		cmd.Anchor = anchor
	}

	calendar, err := h.listDropsUseCase.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, calendar)
}
