package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
)

type OrderStatus int

const (
	OrderStatusDraft OrderStatus = iota + 1
	OrderStatusPending
	OrderStatusConfirmed
	OrderStatusInProgress
	OrderStatusReadyForDelivery
	OrderStatusOutForDelivery
	OrderStatusDelivered
	OrderStatusInUse
	OrderStatusPendingPickup
	OrderStatusPickupInProgress
	OrderStatusReturned
	OrderStatusComplete
	OrderStatusCancelled
)

var orderStatusNames = map[OrderStatus]string{
	OrderStatusDraft:            "Draft",
	OrderStatusPending:          "Pending",
	OrderStatusConfirmed:        "Confirmed",
	OrderStatusInProgress:       "InProgress",
	OrderStatusReadyForDelivery: "ReadyForDelivery",
	OrderStatusOutForDelivery:   "OutForDelivery",
	OrderStatusDelivered:        "Delivered",
	OrderStatusInUse:            "InUse",
	OrderStatusPendingPickup:    "PendingPickup",
	OrderStatusPickupInProgress: "PickupInProgress",
	OrderStatusReturned:         "Returned",
	OrderStatusComplete:         "Complete",
	OrderStatusCancelled:        "Cancelled",
}

func (s OrderStatus) String() string {
	if name, ok := orderStatusNames[s]; ok {
		return name
	}
	return "Unknown"
}

type PaymentTerms int

const (
	PaymentTermsDueOnReceipt PaymentTerms = iota + 1
	PaymentTermsNet15
	PaymentTermsNet30
	PaymentTermsNet60
)

var paymentTermsNames = map[PaymentTerms]string{
	PaymentTermsDueOnReceipt: "DueOnReceipt",
	PaymentTermsNet15:        "Net15",
	PaymentTermsNet30:        "Net30",
	PaymentTermsNet60:        "Net60",
}

func (p PaymentTerms) String() string {
	if name, ok := paymentTermsNames[p]; ok {
		return name
	}
	return "Unknown"
}

// Order is a customer's event order. ID is immutable after creation and
// Updated is set server-side on every committed change, never rolled back.
type Order struct {
	ID                  uuid.UUID       `json:"id"`
	Created             time.Time       `json:"created"`
	Updated             time.Time       `json:"updated"`
	EventDate           time.Time       `json:"eventDate"`
	EventTypeID         uuid.UUID       `json:"eventTypeId"`
	BilledToCustomerID  uuid.UUID       `json:"billedToCustomerId"`
	BilledToAddressID   uuid.UUID       `json:"billedToAddressId"`
	ShippedToAddressID  uuid.UUID       `json:"shippedToAddressId"`
	Amount              decimal.Decimal `json:"amount"`
	BalanceDue          decimal.Decimal `json:"balanceDue"`
	TaxRate             decimal.Decimal `json:"taxRate"`
	TaxValue            decimal.Decimal `json:"taxValue"`
	Deposit             decimal.Decimal `json:"deposit"`
	Discount            decimal.Decimal `json:"discount"`
	ShippingCost        decimal.Decimal `json:"shippingCost"`
	ItemTotalValue      decimal.Decimal `json:"itemTotalValue"`
	DeliveryWindow      []Interval      `json:"deliveryWindow"`
	PickupWindow        []Interval      `json:"pickupWindow"`
	DeliveryPickupNotes string          `json:"deliveryPickupNotes"`
	CurrentStatus       OrderStatus     `json:"currentStatus"`
	PaymentTerms        PaymentTerms    `json:"paymentTerms"`
}
