package http

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"om-svc-order/internal/core/domain"
	"om-svc-order/internal/core/port"
)

type HistoryHandler struct {
	Handler
	service port.Service
}

func NewHistoryHandler(service port.Service, logger *zap.Logger) (*HistoryHandler, error) {
	return &HistoryHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

func (hh *HistoryHandler) GetOrderHistory(ctx *gin.Context) {
	orderID, err := uuid.Parse(ctx.Param("orderId"))
	if err != nil {
		hh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	list, err := hh.service.GetOrderHistory(ctx, orderID)
	if err != nil {
		hh.handleError(ctx, err)
		return
	}

	hh.handleSuccess(ctx, list)
}

func (hh *HistoryHandler) GetOrderItemHistory(ctx *gin.Context) {
	orderID, err := uuid.Parse(ctx.Param("orderId"))
	if err != nil {
		hh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	list, err := hh.service.GetOrderItemHistory(ctx, orderID)
	if err != nil {
		hh.handleError(ctx, err)
		return
	}

	hh.handleSuccess(ctx, list)
}
