package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/terplist/terplist/internal/application/notification/usecases"
	"github.com/terplist/terplist/internal/interfaces/http/middleware"
	"github.com/terplist/terplist/internal/shared/id"
	"github.com/terplist/terplist/internal/shared/logger"
	"github.com/terplist/terplist/internal/shared/utils"
)

// SubscriptionHandler handles HTTP requests for drop notification opt-ins
type SubscriptionHandler struct {
	subscribeUseCase   *usecases.SubscribeUseCase
	unsubscribeUseCase *usecases.UnsubscribeUseCase
	logger             logger.Interface
}

func NewSubscriptionHandler(
	subscribeUseCase *usecases.SubscribeUseCase,
	unsubscribeUseCase *usecases.UnsubscribeUseCase,
	log logger.Interface,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscribeUseCase:   subscribeUseCase,
		unsubscribeUseCase: unsubscribeUseCase,
		logger:             log,
	}
}

// Subscribe handles PUT /producers/:id/subscription. Subscribing twice is a
// no-op, matching the unique pair index underneath.
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	producerSID, err := utils.ParseSIDParam(c, "id", id.PrefixProducer, "producer")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.subscribeUseCase.Execute(c.Request.Context(), middleware.UserIDFromContext(c), producerSID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// Unsubscribe handles DELETE /producers/:id/subscription
func (h *SubscriptionHandler) Unsubscribe(c *gin.Context) {
	producerSID, err := utils.ParseSIDParam(c, "id", id.PrefixProducer, "producer")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.unsubscribeUseCase.Execute(c.Request.Context(), middleware.UserIDFromContext(c), producerSID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
