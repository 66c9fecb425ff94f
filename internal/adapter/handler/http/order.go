package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"om-svc-order/internal/core/domain"
	"om-svc-order/internal/core/port"
)

const dateLayout = "2006-01-02"

type OrderHandler struct {
	Handler
	service port.Service
}

func NewOrderHandler(service port.Service, logger *zap.Logger) (*OrderHandler, error) {
	return &OrderHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type CreateOrderRequest struct {
	Order      domain.Order       `json:"order"`
	OrderItems []domain.OrderItem `json:"orderItems"`
}

func (oh *OrderHandler) CreateOrder(ctx *gin.Context) {
	var req CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		oh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	created, err := oh.service.CreateOrder(ctx, &req.Order, req.OrderItems)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccessWithStatus(ctx, created, http.StatusCreated)
}

func (oh *OrderHandler) GetOrder(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("orderId"))
	if err != nil {
		oh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	order, err := oh.service.GetOrder(ctx, id)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, order)
}

type OrderListResp struct {
	PageSize   int            `json:"pageSize"`
	TotalCount int            `json:"totalCount"`
	Orders     []domain.Order `json:"orders"`
}

func (oh *OrderHandler) GetAllOrders(ctx *gin.Context) {
	pageSize, err := strconv.Atoi(ctx.DefaultQuery("pageSize", "30"))
	if err != nil || pageSize <= 0 {
		oh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}
	currentNumber, err := strconv.Atoi(ctx.DefaultQuery("currentNumber", "0"))
	if err != nil || currentNumber < 0 {
		oh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	list, err := oh.service.ListOrders(ctx, pageSize, currentNumber)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, OrderListResp{
		PageSize:   pageSize,
		TotalCount: currentNumber + pageSize,
		Orders:     list,
	})
}

func (oh *OrderHandler) GetOrdersByCustomer(ctx *gin.Context) {
	customerID, err := uuid.Parse(ctx.Param("customerId"))
	if err != nil {
		oh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	list, err := oh.service.ListOrdersByCustomer(ctx, customerID)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, list)
}

func (oh *OrderHandler) GetOrdersByDate(ctx *gin.Context) {
	day, err := time.Parse(dateLayout, ctx.Param("date"))
	if err != nil {
		oh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	list, err := oh.service.ListOrdersByDate(ctx, day)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, list)
}

func (oh *OrderHandler) GetOrdersByDateRange(ctx *gin.Context) {
	start, err := time.Parse(dateLayout, ctx.Query("startDate"))
	if err != nil {
		oh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}
	end, err := time.Parse(dateLayout, ctx.Query("endDate"))
	if err != nil {
		oh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	list, err := oh.service.ListOrdersByDateRange(ctx, start, end)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, list)
}

func (oh *OrderHandler) UpdateOrder(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("orderId"))
	if err != nil {
		oh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}
	userID, err := uuid.Parse(ctx.Query("userId"))
	if err != nil {
		oh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	var order domain.Order
	if err := ctx.ShouldBindJSON(&order); err != nil {
		oh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}
	order.ID = id

	saved, err := oh.service.UpdateOrder(ctx, &order, userID)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, saved)
}

func (oh *OrderHandler) DeleteOrder(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("orderId"))
	if err != nil {
		oh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	if err := oh.service.DeleteOrder(ctx, id); err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccessWithStatus(ctx, nil, http.StatusNoContent)
}
