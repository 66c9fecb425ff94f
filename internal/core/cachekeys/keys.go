// Package cachekeys maps query shapes to deterministic cache keys. Keys of
// one resource family share a grep-able prefix so a writer can purge every
// cached view derived from its change without enumerating the query shapes
// that produced them.
package cachekeys

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Family prefixes. A trailing "*" marks a pattern for prefix invalidation.
const (
	OrderListPrefix  = "orders:list:"
	OrderDatePrefix  = "orders:date:"
	OrderDatesPrefix = "orders:dates:"

	EventTypesAll = "eventtypes:all"
)

const dayLayout = "2006-01-02"

func Order(id uuid.UUID) string {
	return "orders:id:" + id.String()
}

func OrderList(pageSize, currentNumber int) string {
	return fmt.Sprintf("%ssize:%d:num:%d", OrderListPrefix, pageSize, currentNumber)
}

func OrdersByCustomer(customerID uuid.UUID) string {
	return "orders:customer:" + customerID.String()
}

func OrdersByDate(day time.Time) string {
	return OrderDatePrefix + day.UTC().Format(dayLayout)
}

func OrdersByDateRange(start, end time.Time) string {
	return OrderDatesPrefix + start.UTC().Format(dayLayout) + ":" + end.UTC().Format(dayLayout)
}

func OrderItems(orderID uuid.UUID) string {
	return "orders:items:" + orderID.String()
}

// OrderWritePatterns is the invalidation set for a committed order write:
// the order's own view plus every listing family it may appear in.
func OrderWritePatterns(orderID, customerID uuid.UUID) []string {
	return []string{
		Order(orderID),
		OrderItems(orderID),
		OrdersByCustomer(customerID),
		OrderListPrefix + "*",
		OrderDatePrefix + "*",
		OrderDatesPrefix + "*",
	}
}
