package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/terplist/terplist/internal/application/ranking/usecases"
	"github.com/terplist/terplist/internal/shared/id"
	"github.com/terplist/terplist/internal/shared/logger"
	"github.com/terplist/terplist/internal/shared/utils"
)

// RankingHandler handles HTTP requests for rating history
type RankingHandler struct {
	getRatingHistoryUseCase *usecases.GetRatingHistoryUseCase
	logger                  logger.Interface
}

func NewRankingHandler(getRatingHistoryUseCase *usecases.GetRatingHistoryUseCase, log logger.Interface) *RankingHandler {
	return &RankingHandler{getRatingHistoryUseCase: getRatingHistoryUseCase, logger: log}
}

// GetRatingHistory handles GET /producers/:id/ratings
func (h *RankingHandler) GetRatingHistory(c *gin.Context) {
	producerSID, err := utils.ParseSIDParam(c, "id", id.PrefixProducer, "producer")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	history, err := h.getRatingHistoryUseCase.Execute(c.Request.Context(), producerSID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, history)
}
