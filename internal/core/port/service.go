package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"om-svc-order/internal/core/domain"
)

type Service interface {
	CreateOrder(ctx context.Context, order *domain.Order, items []domain.OrderItem) (*domain.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListOrders(ctx context.Context, pageSize, currentNumber int) ([]domain.Order, error)
	ListOrdersByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Order, error)
	ListOrdersByDate(ctx context.Context, day time.Time) ([]domain.Order, error)
	ListOrdersByDateRange(ctx context.Context, start, end time.Time) ([]domain.Order, error)
	UpdateOrder(ctx context.Context, updated *domain.Order, userID uuid.UUID) (*domain.Order, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error

	GetOrderItems(ctx context.Context, orderID uuid.UUID) ([]domain.OrderItem, error)
	UpdateOrderItems(ctx context.Context, orderID, userID uuid.UUID, userName string,
		changes []domain.ItemChangeRequest) (*domain.ItemBatchResult, error)

	GetOrderHistory(ctx context.Context, orderID uuid.UUID) ([]domain.OrderHistory, error)
	GetOrderItemHistory(ctx context.Context, orderID uuid.UUID) ([]domain.OrderItemHistory, error)

	ListEventTypes(ctx context.Context) ([]domain.EventType, error)
	CreateEventType(ctx context.Context, eventType *domain.EventType) (*domain.EventType, error)
	DeleteEventType(ctx context.Context, id uuid.UUID) error
}
