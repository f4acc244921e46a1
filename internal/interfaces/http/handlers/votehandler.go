package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/terplist/terplist/internal/application/vote/usecases"
	"github.com/terplist/terplist/internal/interfaces/http/middleware"
	"github.com/terplist/terplist/internal/shared/errors"
	"github.com/terplist/terplist/internal/shared/id"
	"github.com/terplist/terplist/internal/shared/logger"
	"github.com/terplist/terplist/internal/shared/utils"
)

// VoteHandler handles HTTP requests for casting votes
type VoteHandler struct {
	castVoteUseCase *usecases.CastVoteUseCase
	logger          logger.Interface
}

func NewVoteHandler(castVoteUseCase *usecases.CastVoteUseCase, log logger.Interface) *VoteHandler {
	return &VoteHandler{castVoteUseCase: castVoteUseCase, logger: log}
}

type castVoteRequest struct {
	Value int    `json:"value" binding:"required"`
	State string `json:"state"`
}

// CastVote handles PUT /producers/:id/vote. Casting again replaces the
// caller's previous vote for the producer.
func (h *VoteHandler) CastVote(c *gin.Context) {
	producerSID, err := utils.ParseSIDParam(c, "id", id.PrefixProducer, "producer")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req castVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for cast vote", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	result, err := h.castVoteUseCase.Execute(c.Request.Context(), usecases.CastVoteCommand{
		UserID:      middleware.UserIDFromContext(c),
		ProducerSID: producerSID,
		Value:       req.Value,
		StateSlug:   req.State,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}
