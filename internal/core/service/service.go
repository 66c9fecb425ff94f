package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"om-svc-order/internal/core/cachekeys"
	"om-svc-order/internal/core/domain"
	"om-svc-order/internal/core/port"
)

type Service struct {
	repo     port.Repository
	cache    port.Cache
	cacheTTL time.Duration
	logger   *zap.Logger
}

func NewService(repo port.Repository, cache port.Cache, cacheTTL time.Duration, logger *zap.Logger) (*Service, error) {
	return &Service{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}, nil
}

func (s *Service) CreateOrder(ctx context.Context, order *domain.Order, items []domain.OrderItem) (*domain.Order, error) {
	now := time.Now().UTC()
	order.ID = uuid.New()
	order.Created = now
	order.Updated = now

	for i := range items {
		items[i].ID = uuid.New()
		items[i].OrderID = order.ID
	}

	created, err := s.repo.CreateOrder(ctx, order, items)
	if err != nil {
		s.logger.Error("create order", zap.Error(err))
		return nil, err
	}

	s.invalidate(ctx, cachekeys.OrderWritePatterns(created.ID, created.BilledToCustomerID))

	return created, nil
}

func (s *Service) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	key := cachekeys.Order(id)
	if order := fromCache[domain.Order](ctx, s, key); order != nil {
		return order, nil
	}

	order, err := s.repo.ReadOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	s.toCache(ctx, key, order)
	return order, nil
}

func (s *Service) ListOrders(ctx context.Context, pageSize, currentNumber int) ([]domain.Order, error) {
	key := cachekeys.OrderList(pageSize, currentNumber)
	if list := fromCache[[]domain.Order](ctx, s, key); list != nil {
		return *list, nil
	}

	list, err := s.repo.ListOrders(ctx, pageSize, currentNumber)
	if err != nil {
		s.logger.Error("list orders", zap.Error(err))
		return nil, err
	}

	s.toCache(ctx, key, &list)
	return list, nil
}

func (s *Service) ListOrdersByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Order, error) {
	key := cachekeys.OrdersByCustomer(customerID)
	if list := fromCache[[]domain.Order](ctx, s, key); list != nil {
		return *list, nil
	}

	list, err := s.repo.ListOrdersByCustomer(ctx, customerID)
	if err != nil {
		s.logger.Error("list orders by customer", zap.Error(err))
		return nil, err
	}

	s.toCache(ctx, key, &list)
	return list, nil
}

func (s *Service) ListOrdersByDate(ctx context.Context, day time.Time) ([]domain.Order, error) {
	key := cachekeys.OrdersByDate(day)
	if list := fromCache[[]domain.Order](ctx, s, key); list != nil {
		return *list, nil
	}

	list, err := s.repo.ListOrdersByDate(ctx, day)
	if err != nil {
		s.logger.Error("list orders by date", zap.Error(err))
		return nil, err
	}

	s.toCache(ctx, key, &list)
	return list, nil
}

func (s *Service) ListOrdersByDateRange(ctx context.Context, start, end time.Time) ([]domain.Order, error) {
	if end.Before(start) {
		return nil, domain.ErrInvalidDateRange
	}

	key := cachekeys.OrdersByDateRange(start, end)
	if list := fromCache[[]domain.Order](ctx, s, key); list != nil {
		return *list, nil
	}

	list, err := s.repo.ListOrdersByDateRange(ctx, start, end)
	if err != nil {
		s.logger.Error("list orders by date range", zap.Error(err))
		return nil, err
	}

	s.toCache(ctx, key, &list)
	return list, nil
}

// UpdateOrder diffs the stored snapshot against the incoming one and commits
// the new state together with its audit records atomically. Cache
// invalidation strictly follows the confirmed commit; a failed or cancelled
// write leaves the cache untouched.
func (s *Service) UpdateOrder(ctx context.Context, updated *domain.Order, userID uuid.UUID) (*domain.Order, error) {
	old, err := s.repo.ReadOrder(ctx, updated.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	history := DiffOrder(old, updated, userID, now)
	if len(history) == 0 {
		// Nothing changed: audit-silent, store untouched.
		return old, nil
	}

	updated.Created = old.Created
	updated.Updated = now

	saved, err := s.repo.UpdateOrder(ctx, updated, history)
	if err != nil {
		s.logger.Error("update order", zap.Error(err), zap.String("order", updated.ID.String()))
		return nil, err
	}

	patterns := cachekeys.OrderWritePatterns(saved.ID, saved.BilledToCustomerID)
	if old.BilledToCustomerID != saved.BilledToCustomerID {
		patterns = append(patterns, cachekeys.OrdersByCustomer(old.BilledToCustomerID))
	}
	s.invalidate(ctx, patterns)

	return saved, nil
}

// DeleteOrder removes the order and, via the storage cascade, its items.
// History records outlive the order.
func (s *Service) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	order, err := s.repo.ReadOrder(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteOrder(ctx, id); err != nil {
		s.logger.Error("delete order", zap.Error(err), zap.String("order", id.String()))
		return err
	}

	s.invalidate(ctx, cachekeys.OrderWritePatterns(id, order.BilledToCustomerID))
	return nil
}

func (s *Service) GetOrderItems(ctx context.Context, orderID uuid.UUID) ([]domain.OrderItem, error) {
	if _, err := s.repo.ReadOrder(ctx, orderID); err != nil {
		return nil, err
	}

	key := cachekeys.OrderItems(orderID)
	if list := fromCache[[]domain.OrderItem](ctx, s, key); list != nil {
		return *list, nil
	}

	list, err := s.repo.ListItemsByOrder(ctx, orderID)
	if err != nil {
		s.logger.Error("list order items", zap.Error(err))
		return nil, err
	}

	s.toCache(ctx, key, &list)
	return list, nil
}

// UpdateOrderItems reconciles a batch of item change requests against the
// order's current item set. Entries referencing unknown items and entries
// with an unknown change type fail individually without aborting the batch;
// everything that did apply commits atomically with its audit records.
func (s *Service) UpdateOrderItems(ctx context.Context, orderID, userID uuid.UUID, userName string,
	changes []domain.ItemChangeRequest) (*domain.ItemBatchResult, error) {

	if _, err := s.repo.ReadOrder(ctx, orderID); err != nil {
		return nil, err
	}

	existing, err := s.repo.ListItemsByOrder(ctx, orderID)
	if err != nil {
		s.logger.Error("load current items", zap.Error(err), zap.String("order", orderID.String()))
		return nil, err
	}
	byItemID := make(map[uuid.UUID]*domain.OrderItem, len(existing))
	for i := range existing {
		byItemID[existing[i].ItemID] = &existing[i]
	}

	now := time.Now().UTC()
	var batch domain.ItemBatch
	result := &domain.ItemBatchResult{}

	for _, req := range changes {
		current := byItemID[req.ItemID]

		record, err := DiffItemChange(orderID, current, req, userID, userName, now)
		if err != nil {
			result.Errors = append(result.Errors, domain.ItemChangeError{
				ItemID:     req.ItemID,
				ChangeType: req.ChangeType,
				Err:        err,
				Message:    err.Error(),
			})
			continue
		}

		switch req.ChangeType {
		case domain.ItemChangeAdd:
			batch.Add = append(batch.Add, domain.OrderItem{
				ID:           uuid.New(),
				OrderID:      orderID,
				ItemID:       req.ItemID,
				Qty:          req.Qty,
				ItemName:     req.ItemName,
				ItemCategory: req.ItemCategory,
				Price:        req.Price,
			})
		case domain.ItemChangeUpdate:
			updatedItem := *current
			updatedItem.Qty = req.Qty
			batch.Update = append(batch.Update, updatedItem)
		case domain.ItemChangeDelete:
			batch.Delete = append(batch.Delete, req.ItemID)
		}

		batch.History = append(batch.History, record)
		result.Applied++
	}

	if !batch.Empty() {
		if err := s.repo.ApplyItemBatch(ctx, orderID, batch); err != nil {
			s.logger.Error("apply item batch", zap.Error(err), zap.String("order", orderID.String()))
			return nil, err
		}
		s.invalidate(ctx, []string{cachekeys.OrderItems(orderID)})
	}

	return result, nil
}

func (s *Service) GetOrderHistory(ctx context.Context, orderID uuid.UUID) ([]domain.OrderHistory, error) {
	list, err := s.repo.ListOrderHistory(ctx, orderID)
	if err != nil {
		s.logger.Error("list order history", zap.Error(err))
		return nil, err
	}
	return list, nil
}

func (s *Service) GetOrderItemHistory(ctx context.Context, orderID uuid.UUID) ([]domain.OrderItemHistory, error) {
	list, err := s.repo.ListItemHistory(ctx, orderID)
	if err != nil {
		s.logger.Error("list order item history", zap.Error(err))
		return nil, err
	}
	return list, nil
}

func (s *Service) ListEventTypes(ctx context.Context) ([]domain.EventType, error) {
	if list := fromCache[[]domain.EventType](ctx, s, cachekeys.EventTypesAll); list != nil {
		return *list, nil
	}

	list, err := s.repo.ListEventTypes(ctx)
	if err != nil {
		s.logger.Error("list event types", zap.Error(err))
		return nil, err
	}

	s.toCache(ctx, cachekeys.EventTypesAll, &list)
	return list, nil
}

func (s *Service) CreateEventType(ctx context.Context, eventType *domain.EventType) (*domain.EventType, error) {
	eventType.ID = uuid.New()

	created, err := s.repo.CreateEventType(ctx, eventType)
	if err != nil {
		s.logger.Error("create event type", zap.Error(err))
		return nil, err
	}

	s.invalidate(ctx, []string{cachekeys.EventTypesAll})
	return created, nil
}

func (s *Service) DeleteEventType(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteEventType(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, []string{cachekeys.EventTypesAll})
	return nil
}

// fromCache reads a typed envelope from the cache. Any failure, miss or
// backend trouble alike, reads as a miss.
func fromCache[T any](ctx context.Context, s *Service, key string) *T {
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			s.logger.Warn("cache get", zap.Error(err), zap.String("key", key))
		}
		return nil
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		s.logger.Warn("cache decode", zap.Error(err), zap.String("key", key))
		return nil
	}
	return &value
}

func (s *Service) toCache(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("cache encode", zap.Error(err), zap.String("key", key))
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
		s.logger.Warn("cache set", zap.Error(err), zap.String("key", key))
	}
}

// invalidate runs after a confirmed commit. Failures are logged and
// swallowed: a stale entry expires with its TTL, the write already stands.
func (s *Service) invalidate(ctx context.Context, patterns []string) {
	if err := s.cache.InvalidateKeys(ctx, patterns); err != nil {
		s.logger.Warn("cache invalidate", zap.Error(err), zap.Strings("patterns", patterns))
	}
}
