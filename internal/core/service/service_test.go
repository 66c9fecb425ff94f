package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"om-svc-order/internal/core/cachekeys"
	"om-svc-order/internal/core/domain"
	"om-svc-order/internal/core/port/mock"
)

func newTestService(t *testing.T) (*Service, *mock.MockRepository, *mock.MockCache) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mock.NewMockRepository(ctrl)
	cache := mock.NewMockCache(ctrl)

	svc, err := NewService(repo, cache, time.Minute, zap.NewNop())
	require.NoError(t, err)
	return svc, repo, cache
}

func TestGetOrder_CacheHitSkipsRepository(t *testing.T) {
	svc, _, cache := newTestService(t)

	order := baseOrder()
	data, err := json.Marshal(order)
	require.NoError(t, err)

	cache.EXPECT().
		Get(gomock.Any(), cachekeys.Order(order.ID)).
		Return(data, nil)

	got, err := svc.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
	assert.Equal(t, order.DeliveryPickupNotes, got.DeliveryPickupNotes)
	assert.True(t, order.Amount.Cmp(got.Amount) == 0)
}

func TestGetOrder_CacheMissFillsCache(t *testing.T) {
	svc, repo, cache := newTestService(t)

	order := baseOrder()
	key := cachekeys.Order(order.ID)

	gomock.InOrder(
		cache.EXPECT().Get(gomock.Any(), key).Return(nil, domain.ErrCacheMiss),
		repo.EXPECT().ReadOrder(gomock.Any(), order.ID).Return(order, nil),
		cache.EXPECT().Set(gomock.Any(), key, gomock.Any(), time.Minute).Return(nil),
	)

	got, err := svc.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
}

func TestGetOrder_CacheFailureFallsThroughToRepository(t *testing.T) {
	svc, repo, cache := newTestService(t)

	order := baseOrder()
	key := cachekeys.Order(order.ID)

	cache.EXPECT().Get(gomock.Any(), key).Return(nil, errors.New("connection refused"))
	repo.EXPECT().ReadOrder(gomock.Any(), order.ID).Return(order, nil)
	cache.EXPECT().Set(gomock.Any(), key, gomock.Any(), time.Minute).Return(errors.New("connection refused"))

	got, err := svc.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
}

func TestGetOrder_NotFound(t *testing.T) {
	svc, repo, cache := newTestService(t)

	id := uuid.New()
	cache.EXPECT().Get(gomock.Any(), cachekeys.Order(id)).Return(nil, domain.ErrCacheMiss)
	repo.EXPECT().ReadOrder(gomock.Any(), id).Return(nil, domain.ErrDataNotFound)

	_, err := svc.GetOrder(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrDataNotFound)
}

func TestCreateOrder_InvalidatesAfterCommit(t *testing.T) {
	svc, repo, cache := newTestService(t)

	order := baseOrder()
	order.ID = uuid.Nil
	items := []domain.OrderItem{
		{ItemID: uuid.New(), Qty: 2, ItemName: "Tent", ItemCategory: "Structures"},
	}

	var persisted *domain.Order
	gomock.InOrder(
		repo.EXPECT().
			CreateOrder(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, o *domain.Order, got []domain.OrderItem) (*domain.Order, error) {
				require.Len(t, got, 1)
				assert.NotEqual(t, uuid.Nil, o.ID)
				assert.NotEqual(t, uuid.Nil, got[0].ID)
				assert.Equal(t, o.ID, got[0].OrderID)
				persisted = o
				return o, nil
			}),
		cache.EXPECT().
			InvalidateKeys(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, patterns []string) error {
				assert.Equal(t, cachekeys.OrderWritePatterns(persisted.ID, persisted.BilledToCustomerID), patterns)
				return nil
			}),
	)

	created, err := svc.CreateOrder(context.Background(), order, items)
	require.NoError(t, err)
	assert.False(t, created.Created.IsZero())
	assert.True(t, created.Updated.Equal(created.Created))
}

func TestCreateOrder_NoInvalidationOnFailure(t *testing.T) {
	svc, repo, _ := newTestService(t)

	repo.EXPECT().
		CreateOrder(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, domain.ErrConflictingData)

	_, err := svc.CreateOrder(context.Background(), baseOrder(), nil)
	assert.ErrorIs(t, err, domain.ErrConflictingData)
}

func TestUpdateOrder_CommitsDiffThenInvalidates(t *testing.T) {
	svc, repo, cache := newTestService(t)

	old := baseOrder()
	updated := cloneOrder(old)
	updated.Amount = decimal.MustParse("125.50")
	userID := uuid.New()

	gomock.InOrder(
		repo.EXPECT().ReadOrder(gomock.Any(), old.ID).Return(old, nil),
		repo.EXPECT().
			UpdateOrder(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, o *domain.Order, history []domain.OrderHistory) (*domain.Order, error) {
				require.Len(t, history, 1)
				assert.Equal(t, "Amount", history[0].PropertyName)
				assert.Equal(t, "100.00", history[0].ChangedFrom)
				assert.Equal(t, "125.50", history[0].ChangedTo)
				assert.Equal(t, userID, history[0].ChangedByUserID)
				assert.True(t, o.Created.Equal(old.Created))
				assert.True(t, o.Updated.After(old.Updated) || o.Updated.Equal(history[0].ChangedAt))
				return o, nil
			}),
		cache.EXPECT().InvalidateKeys(gomock.Any(), gomock.Any()).Return(nil),
	)

	saved, err := svc.UpdateOrder(context.Background(), updated, userID)
	require.NoError(t, err)
	assert.True(t, saved.Amount.Cmp(decimal.MustParse("125.50")) == 0)
}

func TestUpdateOrder_NoOpSkipsPersistenceAndInvalidation(t *testing.T) {
	svc, repo, _ := newTestService(t)

	old := baseOrder()
	updated := cloneOrder(old)

	repo.EXPECT().ReadOrder(gomock.Any(), old.ID).Return(old, nil)
	// No UpdateOrder, no InvalidateKeys: equal snapshots leave the store and
	// the cache untouched.

	saved, err := svc.UpdateOrder(context.Background(), updated, uuid.New())
	require.NoError(t, err)
	assert.True(t, saved.Updated.Equal(old.Updated))
}

func TestUpdateOrder_NoInvalidationOnPersistenceFailure(t *testing.T) {
	svc, repo, _ := newTestService(t)

	old := baseOrder()
	updated := cloneOrder(old)
	updated.DeliveryPickupNotes = "loading dock"

	repo.EXPECT().ReadOrder(gomock.Any(), old.ID).Return(old, nil)
	repo.EXPECT().
		UpdateOrder(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, domain.ErrInternal)

	_, err := svc.UpdateOrder(context.Background(), updated, uuid.New())
	assert.ErrorIs(t, err, domain.ErrInternal)
}

func TestUpdateOrder_CustomerChangePurgesOldCustomerListing(t *testing.T) {
	svc, repo, cache := newTestService(t)

	old := baseOrder()
	updated := cloneOrder(old)
	updated.BilledToCustomerID = uuid.New()

	repo.EXPECT().ReadOrder(gomock.Any(), old.ID).Return(old, nil)
	repo.EXPECT().
		UpdateOrder(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, o *domain.Order, _ []domain.OrderHistory) (*domain.Order, error) {
			return o, nil
		})
	cache.EXPECT().
		InvalidateKeys(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, patterns []string) error {
			assert.Contains(t, patterns, cachekeys.OrdersByCustomer(old.BilledToCustomerID))
			assert.Contains(t, patterns, cachekeys.OrdersByCustomer(updated.BilledToCustomerID))
			return nil
		})

	_, err := svc.UpdateOrder(context.Background(), updated, uuid.New())
	require.NoError(t, err)
}

func TestListOrdersByDateRange_RejectsInvertedRange(t *testing.T) {
	svc, _, _ := newTestService(t)

	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -1)

	_, err := svc.ListOrdersByDateRange(context.Background(), start, end)
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
}

func TestListOrdersByDateRange_CacheMiss(t *testing.T) {
	svc, repo, cache := newTestService(t)

	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 14)
	key := cachekeys.OrdersByDateRange(start, end)
	list := []domain.Order{*baseOrder()}

	gomock.InOrder(
		cache.EXPECT().Get(gomock.Any(), key).Return(nil, domain.ErrCacheMiss),
		repo.EXPECT().ListOrdersByDateRange(gomock.Any(), start, end).Return(list, nil),
		cache.EXPECT().Set(gomock.Any(), key, gomock.Any(), time.Minute).Return(nil),
	)

	got, err := svc.ListOrdersByDateRange(context.Background(), start, end)
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestUpdateOrderItems_MixedBatch(t *testing.T) {
	svc, repo, cache := newTestService(t)

	orderID := uuid.New()
	userID := uuid.New()
	existing := domain.OrderItem{
		ID:           uuid.New(),
		OrderID:      orderID,
		ItemID:       uuid.New(),
		Qty:          3,
		ItemName:     "Folding chair",
		ItemCategory: "Furniture",
	}
	unknownItemID := uuid.New()

	changes := []domain.ItemChangeRequest{
		{ItemID: uuid.New(), Qty: 4, ItemName: "Tablecloth", ItemCategory: "Linens", ChangeType: domain.ItemChangeAdd},
		{ItemID: existing.ItemID, Qty: 10, ChangeType: domain.ItemChangeUpdate},
		{ItemID: unknownItemID, Qty: 1, ChangeType: domain.ItemChangeUpdate},
		{ItemID: uuid.New(), ChangeType: domain.ItemChangeType("REPLACE")},
	}

	gomock.InOrder(
		repo.EXPECT().ReadOrder(gomock.Any(), orderID).Return(&domain.Order{ID: orderID}, nil),
		repo.EXPECT().ListItemsByOrder(gomock.Any(), orderID).Return([]domain.OrderItem{existing}, nil),
		repo.EXPECT().
			ApplyItemBatch(gomock.Any(), orderID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, batch domain.ItemBatch) error {
				require.Len(t, batch.Add, 1)
				require.Len(t, batch.Update, 1)
				assert.Empty(t, batch.Delete)
				assert.Equal(t, 10, batch.Update[0].Qty)
				assert.Equal(t, existing.ID, batch.Update[0].ID)
				require.Len(t, batch.History, 2)
				return nil
			}),
		cache.EXPECT().InvalidateKeys(gomock.Any(), []string{cachekeys.OrderItems(orderID)}).Return(nil),
	)

	result, err := svc.UpdateOrderItems(context.Background(), orderID, userID, "jordan", changes)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Applied)
	require.Len(t, result.Errors, 2)
	assert.ErrorIs(t, result.Errors[0].Err, domain.ErrItemNotInOrder)
	assert.Equal(t, unknownItemID, result.Errors[0].ItemID)
	assert.ErrorIs(t, result.Errors[1].Err, domain.ErrInvalidArgument)
}

func TestUpdateOrderItems_AllEntriesInvalid(t *testing.T) {
	svc, repo, _ := newTestService(t)

	orderID := uuid.New()
	changes := []domain.ItemChangeRequest{
		{ItemID: uuid.New(), ChangeType: domain.ItemChangeDelete},
	}

	repo.EXPECT().ReadOrder(gomock.Any(), orderID).Return(&domain.Order{ID: orderID}, nil)
	repo.EXPECT().ListItemsByOrder(gomock.Any(), orderID).Return(nil, nil)
	// Empty effective batch: nothing persisted, nothing invalidated.

	result, err := svc.UpdateOrderItems(context.Background(), orderID, uuid.New(), "jordan", changes)
	require.NoError(t, err)
	assert.Zero(t, result.Applied)
	require.Len(t, result.Errors, 1)
	assert.ErrorIs(t, result.Errors[0].Err, domain.ErrItemNotInOrder)
}

func TestDeleteOrder_InvalidatesEveryDerivedView(t *testing.T) {
	svc, repo, cache := newTestService(t)

	order := baseOrder()
	gomock.InOrder(
		repo.EXPECT().ReadOrder(gomock.Any(), order.ID).Return(order, nil),
		repo.EXPECT().DeleteOrder(gomock.Any(), order.ID).Return(nil),
		cache.EXPECT().
			InvalidateKeys(gomock.Any(), cachekeys.OrderWritePatterns(order.ID, order.BilledToCustomerID)).
			Return(nil),
	)

	require.NoError(t, svc.DeleteOrder(context.Background(), order.ID))
}

func TestEventTypes_CachedListAndWriteInvalidation(t *testing.T) {
	svc, repo, cache := newTestService(t)

	list := []domain.EventType{{ID: uuid.New(), Name: "Wedding"}}
	data, err := json.Marshal(list)
	require.NoError(t, err)

	// Cached read.
	cache.EXPECT().Get(gomock.Any(), cachekeys.EventTypesAll).Return(data, nil)
	got, err := svc.ListEventTypes(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Wedding", got[0].Name)

	// Write purges the cached listing.
	gomock.InOrder(
		repo.EXPECT().
			CreateEventType(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, et *domain.EventType) (*domain.EventType, error) {
				assert.NotEqual(t, uuid.Nil, et.ID)
				return et, nil
			}),
		cache.EXPECT().InvalidateKeys(gomock.Any(), []string{cachekeys.EventTypesAll}).Return(nil),
	)
	_, err = svc.CreateEventType(context.Background(), &domain.EventType{Name: "Festival"})
	require.NoError(t, err)
}
