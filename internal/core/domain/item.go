package domain

import (
	"github.com/google/uuid"
	"github.com/govalues/decimal"
)

// OrderItem attaches a quantity of a catalog item to an order. Name, category
// and price are captured at the time of addition and never re-synced from the
// catalog.
type OrderItem struct {
	ID           uuid.UUID       `json:"id"`
	OrderID      uuid.UUID       `json:"orderId"`
	ItemID       uuid.UUID       `json:"itemId"`
	Qty          int             `json:"qty"`
	ItemName     string          `json:"itemName"`
	ItemCategory string          `json:"itemCategory"`
	Price        decimal.Decimal `json:"price"`
}

type ItemChangeType string

const (
	ItemChangeAdd    ItemChangeType = "ADD"
	ItemChangeUpdate ItemChangeType = "UPDATE"
	ItemChangeDelete ItemChangeType = "DELETE"
)

// ItemChangeRequest is one entry of an item-update batch.
type ItemChangeRequest struct {
	ItemID       uuid.UUID       `json:"itemId"`
	Qty          int             `json:"qty"`
	ItemName     string          `json:"itemName"`
	ItemCategory string          `json:"itemCategory"`
	Price        decimal.Decimal `json:"price"`
	ChangeType   ItemChangeType  `json:"changeType"`
}

// ItemBatch carries the item mutations of one reconciled batch together with
// the audit records they produced. The repository commits the whole batch
// atomically.
type ItemBatch struct {
	Add     []OrderItem
	Update  []OrderItem
	Delete  []uuid.UUID // catalog item ids, scoped to the order
	History []OrderItemHistory
}

// Empty reports whether the batch carries no mutations at all.
func (b ItemBatch) Empty() bool {
	return len(b.Add) == 0 && len(b.Update) == 0 && len(b.Delete) == 0
}

// ItemChangeError reports a per-entry reconciliation failure. The rest of the
// batch still applies.
type ItemChangeError struct {
	ItemID     uuid.UUID      `json:"itemId"`
	ChangeType ItemChangeType `json:"changeType"`
	Err        error          `json:"-"`
	Message    string         `json:"error"`
}

// ItemBatchResult is the outcome of one item-update batch.
type ItemBatchResult struct {
	Applied int               `json:"applied"`
	Errors  []ItemChangeError `json:"errors,omitempty"`
}
