package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"

	"om-svc-order/internal/core/domain"
)

// Canonical property names persisted in order_history.PropertyName. The
// vocabulary is additive-only: existing rows are never rewritten, so names
// must stay stable once released.
const (
	propEventDate           = "EventDate"
	propEventTypeID         = "EventTypeId"
	propBilledToCustomerID  = "BilledToCustomerId"
	propBilledToAddressID   = "BilledToAddressId"
	propShippedToAddressID  = "ShippedToAddressId"
	propAmount              = "Amount"
	propBalanceDue          = "BalanceDue"
	propTaxRate             = "TaxRate"
	propTaxValue            = "TaxValue"
	propDeposit             = "Deposit"
	propDiscount            = "Discount"
	propShippingCost        = "ShippingCost"
	propItemTotalValue      = "ItemTotalValue"
	propDeliveryWindow      = "DeliveryWindow"
	propPickupWindow        = "PickupWindow"
	propDeliveryPickupNotes = "DeliveryPickupNotes"
	propCurrentStatus       = "CurrentStatus"
	propPaymentTerms        = "PaymentTerms"
)

// DiffOrder compares an order's stored snapshot against the incoming one and
// returns one audit record per changed attribute. Equal snapshots produce an
// empty slice: a no-op update is audit-silent. ID, Created and Updated are
// not audited (ID is immutable, the timestamps are server-managed).
//
// DiffOrder is pure: persisting the records in the same transaction as the
// order row is the caller's job.
func DiffOrder(old, updated *domain.Order, userID uuid.UUID, now time.Time) []domain.OrderHistory {
	var records []domain.OrderHistory

	changed := func(property, from, to string) {
		records = append(records, domain.OrderHistory{
			ID:              uuid.New(),
			OrderID:         old.ID,
			PropertyName:    property,
			ChangedFrom:     from,
			ChangedTo:       to,
			ChangedAt:       now,
			ChangedByUserID: userID,
		})
	}
	diffTime := func(property string, from, to time.Time) {
		if !from.Equal(to) {
			changed(property, renderTime(from), renderTime(to))
		}
	}
	diffUUID := func(property string, from, to uuid.UUID) {
		if from != to {
			changed(property, from.String(), to.String())
		}
	}
	diffDecimal := func(property string, from, to decimal.Decimal) {
		if from.Cmp(to) != 0 {
			changed(property, from.String(), to.String())
		}
	}
	diffIntervals := func(property string, from, to []domain.Interval) {
		if !domain.IntervalsEqual(from, to) {
			changed(property, domain.RenderIntervals(from), domain.RenderIntervals(to))
		}
	}

	diffTime(propEventDate, old.EventDate, updated.EventDate)
	diffUUID(propEventTypeID, old.EventTypeID, updated.EventTypeID)
	diffUUID(propBilledToCustomerID, old.BilledToCustomerID, updated.BilledToCustomerID)
	diffUUID(propBilledToAddressID, old.BilledToAddressID, updated.BilledToAddressID)
	diffUUID(propShippedToAddressID, old.ShippedToAddressID, updated.ShippedToAddressID)

	diffDecimal(propAmount, old.Amount, updated.Amount)
	diffDecimal(propBalanceDue, old.BalanceDue, updated.BalanceDue)
	diffDecimal(propTaxRate, old.TaxRate, updated.TaxRate)
	diffDecimal(propTaxValue, old.TaxValue, updated.TaxValue)
	diffDecimal(propDeposit, old.Deposit, updated.Deposit)
	diffDecimal(propDiscount, old.Discount, updated.Discount)
	diffDecimal(propShippingCost, old.ShippingCost, updated.ShippingCost)
	diffDecimal(propItemTotalValue, old.ItemTotalValue, updated.ItemTotalValue)

	diffIntervals(propDeliveryWindow, old.DeliveryWindow, updated.DeliveryWindow)
	diffIntervals(propPickupWindow, old.PickupWindow, updated.PickupWindow)

	if old.DeliveryPickupNotes != updated.DeliveryPickupNotes {
		changed(propDeliveryPickupNotes, old.DeliveryPickupNotes, updated.DeliveryPickupNotes)
	}
	if old.CurrentStatus != updated.CurrentStatus {
		changed(propCurrentStatus, old.CurrentStatus.String(), updated.CurrentStatus.String())
	}
	if old.PaymentTerms != updated.PaymentTerms {
		changed(propPaymentTerms, old.PaymentTerms.String(), updated.PaymentTerms.String())
	}

	return records
}

// DiffItemChange builds the audit record for one item-level change. Update
// and Delete require the matching existing item; an unknown change type is
// an error, not a silent skip.
func DiffItemChange(orderID uuid.UUID, existing *domain.OrderItem, req domain.ItemChangeRequest,
	userID uuid.UUID, userName string, now time.Time) (domain.OrderItemHistory, error) {

	record := domain.OrderItemHistory{
		ID:                uuid.New(),
		OrderID:           orderID,
		ItemID:            req.ItemID,
		ItemName:          req.ItemName,
		ItemCategory:      req.ItemCategory,
		ChangeType:        req.ChangeType,
		ChangedAt:         now,
		ChangedByUserID:   userID,
		ChangedByUserName: userName,
	}

	switch req.ChangeType {
	case domain.ItemChangeAdd:
		record.OldQuantity = 0
		record.NewQuantity = req.Qty
	case domain.ItemChangeUpdate:
		if existing == nil {
			return domain.OrderItemHistory{}, domain.ErrItemNotInOrder
		}
		record.ItemName = existing.ItemName
		record.ItemCategory = existing.ItemCategory
		record.OldQuantity = existing.Qty
		record.NewQuantity = req.Qty
	case domain.ItemChangeDelete:
		if existing == nil {
			return domain.OrderItemHistory{}, domain.ErrItemNotInOrder
		}
		record.ItemName = existing.ItemName
		record.ItemCategory = existing.ItemCategory
		record.OldQuantity = existing.Qty
		record.NewQuantity = 0
	default:
		return domain.OrderItemHistory{}, domain.ErrInvalidArgument
	}

	return record, nil
}

func renderTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
