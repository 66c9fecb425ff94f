package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"om-svc-order/internal/core/domain"
)

func baseOrder() *domain.Order {
	return &domain.Order{
		ID:                 uuid.MustParse("6f9619ff-8b86-4d01-b42d-00cf4fc964ff"),
		EventDate:          time.Date(2026, 6, 15, 18, 0, 0, 0, time.UTC),
		EventTypeID:        uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		BilledToCustomerID: uuid.MustParse("22222222-2222-2222-2222-222222222222"),
		BilledToAddressID:  uuid.MustParse("33333333-3333-3333-3333-333333333333"),
		ShippedToAddressID: uuid.MustParse("44444444-4444-4444-4444-444444444444"),
		Amount:             decimal.MustParse("100.00"),
		BalanceDue:         decimal.MustParse("50.00"),
		TaxRate:            decimal.MustParse("0.08"),
		TaxValue:           decimal.MustParse("8.00"),
		Deposit:            decimal.MustParse("25.00"),
		Discount:           decimal.MustParse("0.00"),
		ShippingCost:       decimal.MustParse("12.00"),
		ItemTotalValue:     decimal.MustParse("92.00"),
		DeliveryWindow: []domain.Interval{
			{
				Start: time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC),
				End:   time.Date(2026, 6, 15, 11, 0, 0, 0, time.UTC),
			},
		},
		PickupWindow:        nil,
		DeliveryPickupNotes: "side entrance",
		CurrentStatus:       domain.OrderStatusDraft,
		PaymentTerms:        domain.PaymentTermsNet30,
	}
}

func cloneOrder(o *domain.Order) *domain.Order {
	c := *o
	c.DeliveryWindow = append([]domain.Interval(nil), o.DeliveryWindow...)
	c.PickupWindow = append([]domain.Interval(nil), o.PickupWindow...)
	return &c
}

func TestDiffOrder_NoChanges(t *testing.T) {
	old := baseOrder()
	updated := cloneOrder(old)

	records := DiffOrder(old, updated, uuid.New(), time.Now().UTC())
	assert.Empty(t, records)
}

func TestDiffOrder_EqualValuesDifferentRepresentation(t *testing.T) {
	old := baseOrder()
	updated := cloneOrder(old)
	// Same instants in another zone, same decimal value at another scale:
	// neither is a change.
	loc := time.FixedZone("UTC+3", 3*60*60)
	updated.EventDate = old.EventDate.In(loc)
	updated.DeliveryWindow[0].Start = old.DeliveryWindow[0].Start.In(loc)
	updated.Amount = decimal.MustParse("100.0000")

	records := DiffOrder(old, updated, uuid.New(), time.Now().UTC())
	assert.Empty(t, records)
}

func TestDiffOrder_SingleAttribute(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	old := baseOrder()
	updated := cloneOrder(old)
	updated.Amount = decimal.MustParse("125.50")

	records := DiffOrder(old, updated, userID, now)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, old.ID, rec.OrderID)
	assert.Equal(t, "Amount", rec.PropertyName)
	assert.Equal(t, "100.00", rec.ChangedFrom)
	assert.Equal(t, "125.50", rec.ChangedTo)
	assert.Equal(t, userID, rec.ChangedByUserID)
	assert.True(t, rec.ChangedAt.Equal(now))
	assert.NotEqual(t, uuid.Nil, rec.ID)
}

func TestDiffOrder_MultipleAttributes(t *testing.T) {
	old := baseOrder()
	updated := cloneOrder(old)
	updated.CurrentStatus = domain.OrderStatusConfirmed
	updated.PaymentTerms = domain.PaymentTermsNet15
	updated.DeliveryPickupNotes = "front desk"
	updated.BilledToAddressID = uuid.New()

	records := DiffOrder(old, updated, uuid.New(), time.Now().UTC())
	require.Len(t, records, 4)

	byProp := map[string]domain.OrderHistory{}
	for _, r := range records {
		byProp[r.PropertyName] = r
	}
	assert.Contains(t, byProp, "BilledToAddressId")
	assert.Contains(t, byProp, "DeliveryPickupNotes")

	assert.Equal(t, "Draft", byProp["CurrentStatus"].ChangedFrom)
	assert.Equal(t, "Confirmed", byProp["CurrentStatus"].ChangedTo)
	assert.Equal(t, "Net30", byProp["PaymentTerms"].ChangedFrom)
	assert.Equal(t, "Net15", byProp["PaymentTerms"].ChangedTo)
}

func TestDiffOrder_WindowChangeIsOneRecord(t *testing.T) {
	old := baseOrder()
	updated := cloneOrder(old)
	updated.DeliveryWindow = []domain.Interval{
		{
			Start: time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 6, 15, 11, 0, 0, 0, time.UTC),
		},
		{
			Start: time.Date(2026, 6, 15, 14, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 6, 15, 16, 0, 0, 0, time.UTC),
		},
	}

	records := DiffOrder(old, updated, uuid.New(), time.Now().UTC())
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "DeliveryWindow", rec.PropertyName)
	assert.Equal(t,
		"2026-06-15T09:00:00Z/2026-06-15T11:00:00Z",
		rec.ChangedFrom)
	assert.Equal(t,
		"2026-06-15T09:00:00Z/2026-06-15T11:00:00Z; 2026-06-15T14:00:00Z/2026-06-15T16:00:00Z",
		rec.ChangedTo)
}

func TestDiffItemChange(t *testing.T) {
	orderID := uuid.New()
	userID := uuid.New()
	now := time.Now().UTC()

	existing := &domain.OrderItem{
		ID:           uuid.New(),
		OrderID:      orderID,
		ItemID:       uuid.New(),
		Qty:          3,
		ItemName:     "Folding chair",
		ItemCategory: "Furniture",
		Price:        decimal.MustParse("4.50"),
	}

	tests := []struct {
		name     string
		existing *domain.OrderItem
		req      domain.ItemChangeRequest
		wantErr  error
		wantOld  int
		wantNew  int
	}{
		{
			name: "add",
			req: domain.ItemChangeRequest{
				ItemID:       uuid.New(),
				Qty:          5,
				ItemName:     "Tablecloth",
				ItemCategory: "Linens",
				ChangeType:   domain.ItemChangeAdd,
			},
			wantOld: 0,
			wantNew: 5,
		},
		{
			name:     "update",
			existing: existing,
			req: domain.ItemChangeRequest{
				ItemID:     existing.ItemID,
				Qty:        8,
				ChangeType: domain.ItemChangeUpdate,
			},
			wantOld: 3,
			wantNew: 8,
		},
		{
			name:     "delete",
			existing: existing,
			req: domain.ItemChangeRequest{
				ItemID:     existing.ItemID,
				ChangeType: domain.ItemChangeDelete,
			},
			wantOld: 3,
			wantNew: 0,
		},
		{
			name: "update of unknown item",
			req: domain.ItemChangeRequest{
				ItemID:     uuid.New(),
				Qty:        2,
				ChangeType: domain.ItemChangeUpdate,
			},
			wantErr: domain.ErrItemNotInOrder,
		},
		{
			name: "delete of unknown item",
			req: domain.ItemChangeRequest{
				ItemID:     uuid.New(),
				ChangeType: domain.ItemChangeDelete,
			},
			wantErr: domain.ErrItemNotInOrder,
		},
		{
			name: "unknown change type",
			req: domain.ItemChangeRequest{
				ItemID:     uuid.New(),
				ChangeType: domain.ItemChangeType("UPSERT"),
			},
			wantErr: domain.ErrInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, err := DiffItemChange(orderID, tt.existing, tt.req, userID, "jordan", now)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, orderID, record.OrderID)
			assert.Equal(t, tt.req.ItemID, record.ItemID)
			assert.Equal(t, tt.req.ChangeType, record.ChangeType)
			assert.Equal(t, tt.wantOld, record.OldQuantity)
			assert.Equal(t, tt.wantNew, record.NewQuantity)
			assert.Equal(t, userID, record.ChangedByUserID)
			assert.Equal(t, "jordan", record.ChangedByUserName)

			if tt.existing != nil {
				// Name and category come from the stored item, not the request.
				assert.Equal(t, tt.existing.ItemName, record.ItemName)
				assert.Equal(t, tt.existing.ItemCategory, record.ItemCategory)
			} else {
				assert.Equal(t, tt.req.ItemName, record.ItemName)
			}
		})
	}
}
