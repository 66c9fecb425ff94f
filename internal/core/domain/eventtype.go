package domain

import "github.com/google/uuid"

// EventType is a reference entity orders point at. It is managed
// independently; deleting one does not cascade into orders.
type EventType struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
