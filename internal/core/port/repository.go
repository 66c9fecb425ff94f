package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"om-svc-order/internal/core/domain"
)

// Repository is the authoritative store. Every method is one atomic unit:
// multi-row writes (order+items, order+history, item batch+history) either
// commit fully or not at all.
//
//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock
type Repository interface {
	// Order
	CreateOrder(ctx context.Context, order *domain.Order, items []domain.OrderItem) (*domain.Order, error)
	ReadOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListOrders(ctx context.Context, limit, offset int) ([]domain.Order, error)
	ListOrdersByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Order, error)
	ListOrdersByDate(ctx context.Context, day time.Time) ([]domain.Order, error)
	ListOrdersByDateRange(ctx context.Context, start, end time.Time) ([]domain.Order, error)
	UpdateOrder(ctx context.Context, order *domain.Order, history []domain.OrderHistory) (*domain.Order, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error

	// Items
	ListItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]domain.OrderItem, error)
	ApplyItemBatch(ctx context.Context, orderID uuid.UUID, batch domain.ItemBatch) error

	// Audit trail (append-only; reads only, appends ride the writes above)
	ListOrderHistory(ctx context.Context, orderID uuid.UUID) ([]domain.OrderHistory, error)
	ListItemHistory(ctx context.Context, orderID uuid.UUID) ([]domain.OrderItemHistory, error)

	// Event types
	ListEventTypes(ctx context.Context) ([]domain.EventType, error)
	CreateEventType(ctx context.Context, eventType *domain.EventType) (*domain.EventType, error)
	DeleteEventType(ctx context.Context, id uuid.UUID) error
}
