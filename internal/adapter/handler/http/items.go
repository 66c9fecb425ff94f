package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"om-svc-order/internal/core/domain"
	"om-svc-order/internal/core/port"
)

type ItemHandler struct {
	Handler
	service port.Service
}

func NewItemHandler(service port.Service, logger *zap.Logger) (*ItemHandler, error) {
	return &ItemHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

func (ih *ItemHandler) GetOrderItems(ctx *gin.Context) {
	orderID, err := uuid.Parse(ctx.Param("orderId"))
	if err != nil {
		ih.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	list, err := ih.service.GetOrderItems(ctx, orderID)
	if err != nil {
		ih.handleError(ctx, err)
		return
	}

	ih.handleSuccess(ctx, list)
}

// UpdateOrderItems applies a batch of item changes. Per-entry failures come
// back in the result body with 200: the batch outcome is data, not a request
// failure.
func (ih *ItemHandler) UpdateOrderItems(ctx *gin.Context) {
	orderID, err := uuid.Parse(ctx.Param("orderId"))
	if err != nil {
		ih.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}
	userID, err := uuid.Parse(ctx.Query("userId"))
	if err != nil {
		ih.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}
	userName := ctx.Query("userName")

	var changes []domain.ItemChangeRequest
	if err := ctx.ShouldBindJSON(&changes); err != nil {
		ih.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	result, err := ih.service.UpdateOrderItems(ctx, orderID, userID, userName, changes)
	if err != nil {
		ih.handleError(ctx, err)
		return
	}

	ih.handleSuccessWithStatus(ctx, result, http.StatusOK)
}
