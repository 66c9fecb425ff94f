package domain

import (
	"time"

	"github.com/google/uuid"
)

// OrderHistory is an immutable audit record of one order attribute's value
// change. Rows are only ever appended, never rewritten.
type OrderHistory struct {
	ID              uuid.UUID `json:"id"`
	OrderID         uuid.UUID `json:"orderId"`
	PropertyName    string    `json:"propertyName"`
	ChangedFrom     string    `json:"changedFrom"`
	ChangedTo       string    `json:"changedTo"`
	ChangedAt       time.Time `json:"changedAt"`
	ChangedByUserID uuid.UUID `json:"changedByUserId"`
}

// OrderItemHistory is an immutable audit record of one item-level
// add/update/delete. Add records carry OldQuantity 0, delete records carry
// NewQuantity 0.
type OrderItemHistory struct {
	ID                uuid.UUID      `json:"id"`
	OrderID           uuid.UUID      `json:"orderId"`
	ItemID            uuid.UUID      `json:"itemId"`
	ItemName          string         `json:"itemName"`
	ItemCategory      string         `json:"itemCategory"`
	OldQuantity       int            `json:"oldQuantity"`
	NewQuantity       int            `json:"newQuantity"`
	ChangeType        ItemChangeType `json:"changeType"`
	ChangedAt         time.Time      `json:"changedAt"`
	ChangedByUserID   uuid.UUID      `json:"changedByUserId"`
	ChangedByUserName string         `json:"changedByUserName"`
}
