package repository

import (
	"context"
	"encoding/json"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"om-svc-order/internal/adapter/storage"
	"om-svc-order/internal/core/domain"
)

type Repository struct {
	db *storage.DB
}

func NewRepository(db *storage.DB) (*Repository, error) {
	return &Repository{db: db}, nil
}

var orderColumns = []string{
	"id", "created", "updated", "event_date", "event_type_id",
	"billed_to_customer_id", "billed_to_address_id", "shipped_to_address_id",
	"amount", "balance_due", "tax_rate", "tax_value",
	"deposit", "discount", "shipping_cost", "item_total_value",
	"delivery_window", "pickup_window", "delivery_pickup_notes",
	"current_status", "payment_terms",
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	order := domain.Order{}
	var deliveryWindow, pickupWindow []byte

	err := row.Scan(
		&order.ID,
		&order.Created,
		&order.Updated,
		&order.EventDate,
		&order.EventTypeID,
		&order.BilledToCustomerID,
		&order.BilledToAddressID,
		&order.ShippedToAddressID,
		&order.Amount,
		&order.BalanceDue,
		&order.TaxRate,
		&order.TaxValue,
		&order.Deposit,
		&order.Discount,
		&order.ShippingCost,
		&order.ItemTotalValue,
		&deliveryWindow,
		&pickupWindow,
		&order.DeliveryPickupNotes,
		&order.CurrentStatus,
		&order.PaymentTerms,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(deliveryWindow, &order.DeliveryWindow); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(pickupWindow, &order.PickupWindow); err != nil {
		return nil, err
	}

	return &order, nil
}

func orderValues(order *domain.Order) ([]any, error) {
	deliveryWindow, err := json.Marshal(order.DeliveryWindow)
	if err != nil {
		return nil, err
	}
	pickupWindow, err := json.Marshal(order.PickupWindow)
	if err != nil {
		return nil, err
	}

	return []any{
		order.ID, order.Created, order.Updated, order.EventDate, order.EventTypeID,
		order.BilledToCustomerID, order.BilledToAddressID, order.ShippedToAddressID,
		order.Amount, order.BalanceDue, order.TaxRate, order.TaxValue,
		order.Deposit, order.Discount, order.ShippingCost, order.ItemTotalValue,
		deliveryWindow, pickupWindow, order.DeliveryPickupNotes,
		order.CurrentStatus, order.PaymentTerms,
	}, nil
}

func (or *Repository) insertHistory(ctx context.Context, tx pgx.Tx, history []domain.OrderHistory) error {
	for _, rec := range history {
		statement := or.db.QueryBuilder.Insert("order_history").
			Columns("id", "order_id", "property_name", "changed_from", "changed_to",
				"changed_at", "changed_by_user_id").
			Values(rec.ID, rec.OrderID, rec.PropertyName, rec.ChangedFrom, rec.ChangedTo,
				rec.ChangedAt, rec.ChangedByUserID)

		sql, args, err := statement.ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return err
		}
	}
	return nil
}

func (or *Repository) insertItemHistory(ctx context.Context, tx pgx.Tx, history []domain.OrderItemHistory) error {
	for _, rec := range history {
		statement := or.db.QueryBuilder.Insert("order_item_history").
			Columns("id", "order_id", "item_id", "item_name", "item_category",
				"old_quantity", "new_quantity", "change_type",
				"changed_at", "changed_by_user_id", "changed_by_user_name").
			Values(rec.ID, rec.OrderID, rec.ItemID, rec.ItemName, rec.ItemCategory,
				rec.OldQuantity, rec.NewQuantity, rec.ChangeType,
				rec.ChangedAt, rec.ChangedByUserID, rec.ChangedByUserName)

		sql, args, err := statement.ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return err
		}
	}
	return nil
}

func insertItem(ctx context.Context, tx pgx.Tx, builder *sq.StatementBuilderType, item domain.OrderItem) error {
	statement := builder.Insert("order_items").
		Columns("id", "order_id", "item_id", "qty", "item_name", "item_category", "price").
		Values(item.ID, item.OrderID, item.ItemID, item.Qty, item.ItemName, item.ItemCategory, item.Price)

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, sql, args...)
	return err
}

func (or *Repository) CreateOrder(ctx context.Context, order *domain.Order, items []domain.OrderItem) (*domain.Order, error) {
	err := pgx.BeginFunc(ctx, or.db, func(tx pgx.Tx) error {
		values, err := orderValues(order)
		if err != nil {
			return err
		}

		statement := or.db.QueryBuilder.Insert("orders").
			Columns(orderColumns...).
			Values(values...)

		sql, args, err := statement.ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return err
		}

		for _, item := range items {
			if err := insertItem(ctx, tx, or.db.QueryBuilder, item); err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, domain.ErrConflictingData
		}
		return nil, err
	}

	return order, nil
}

func (or *Repository) ReadOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	statement := or.db.QueryBuilder.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": id})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	order, err := scanOrder(or.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	return order, nil
}

func (or *Repository) listOrders(ctx context.Context, statement sq.SelectBuilder) ([]domain.Order, error) {
	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := or.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *order)
	}

	err = rows.Err()
	if err != nil {
		return nil, err
	}

	return list, nil
}

func (or *Repository) ListOrders(ctx context.Context, limit, offset int) ([]domain.Order, error) {
	statement := or.db.QueryBuilder.
		Select(orderColumns...).
		From("orders").
		OrderBy("event_date", "id").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	return or.listOrders(ctx, statement)
}

func (or *Repository) ListOrdersByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Order, error) {
	statement := or.db.QueryBuilder.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"billed_to_customer_id": customerID}).
		OrderBy("event_date", "id")

	return or.listOrders(ctx, statement)
}

func (or *Repository) ListOrdersByDate(ctx context.Context, day time.Time) ([]domain.Order, error) {
	statement := or.db.QueryBuilder.
		Select(orderColumns...).
		From("orders").
		Where(sq.Expr("event_date::date = ?::date", day.UTC())).
		OrderBy("event_date", "id")

	return or.listOrders(ctx, statement)
}

// ListOrdersByDateRange is exclusive on both ends.
func (or *Repository) ListOrdersByDateRange(ctx context.Context, start, end time.Time) ([]domain.Order, error) {
	statement := or.db.QueryBuilder.
		Select(orderColumns...).
		From("orders").
		Where(sq.Gt{"event_date": start}).
		Where(sq.Lt{"event_date": end}).
		OrderBy("current_status", "id")

	return or.listOrders(ctx, statement)
}

func (or *Repository) UpdateOrder(ctx context.Context, order *domain.Order, history []domain.OrderHistory) (*domain.Order, error) {
	err := pgx.BeginFunc(ctx, or.db, func(tx pgx.Tx) error {
		values, err := orderValues(order)
		if err != nil {
			return err
		}

		statement := or.db.QueryBuilder.Update("orders").
			Where(sq.Eq{"id": order.ID})
		for i, col := range orderColumns {
			if col == "id" || col == "created" {
				continue
			}
			statement = statement.Set(col, values[i])
		}

		sql, args, err := statement.ToSql()
		if err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrDataNotFound
		}

		return or.insertHistory(ctx, tx, history)
	})

	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, domain.ErrConflictingData
		}
		return nil, err
	}

	return order, nil
}

// DeleteOrder removes the order row; items follow via the cascade, history
// stays.
func (or *Repository) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	statement := or.db.QueryBuilder.
		Delete("orders").
		Where(sq.Eq{"id": id})

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}

	tag, err := or.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDataNotFound
	}
	return nil
}

func (or *Repository) ListItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]domain.OrderItem, error) {
	statement := or.db.QueryBuilder.
		Select("id", "order_id", "item_id", "qty", "item_name", "item_category", "price").
		From("order_items").
		Where(sq.Eq{"order_id": orderID}).
		OrderBy("item_name", "id")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := or.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]domain.OrderItem, 0)
	for rows.Next() {
		item := domain.OrderItem{}
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ItemID,
			&item.Qty,
			&item.ItemName,
			&item.ItemCategory,
			&item.Price,
		)
		if err != nil {
			return nil, err
		}
		list = append(list, item)
	}

	err = rows.Err()
	if err != nil {
		return nil, err
	}

	return list, nil
}

func (or *Repository) ApplyItemBatch(ctx context.Context, orderID uuid.UUID, batch domain.ItemBatch) error {
	err := pgx.BeginFunc(ctx, or.db, func(tx pgx.Tx) error {
		for _, item := range batch.Add {
			if err := insertItem(ctx, tx, or.db.QueryBuilder, item); err != nil {
				return err
			}
		}

		for _, item := range batch.Update {
			statement := or.db.QueryBuilder.Update("order_items").
				Set("qty", item.Qty).
				Where(sq.Eq{"order_id": orderID, "item_id": item.ItemID})

			sql, args, err := statement.ToSql()
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, sql, args...); err != nil {
				return err
			}
		}

		if len(batch.Delete) > 0 {
			statement := or.db.QueryBuilder.Delete("order_items").
				Where(sq.Eq{"order_id": orderID, "item_id": batch.Delete})

			sql, args, err := statement.ToSql()
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, sql, args...); err != nil {
				return err
			}
		}

		return or.insertItemHistory(ctx, tx, batch.History)
	})

	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == pgerrcode.UniqueViolation {
			return domain.ErrConflictingData
		}
		return err
	}

	return nil
}

func (or *Repository) ListOrderHistory(ctx context.Context, orderID uuid.UUID) ([]domain.OrderHistory, error) {
	statement := or.db.QueryBuilder.
		Select("id", "order_id", "property_name", "changed_from", "changed_to",
			"changed_at", "changed_by_user_id").
		From("order_history").
		Where(sq.Eq{"order_id": orderID}).
		OrderBy("changed_at", "id")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := or.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]domain.OrderHistory, 0)
	for rows.Next() {
		rec := domain.OrderHistory{}
		err := rows.Scan(
			&rec.ID,
			&rec.OrderID,
			&rec.PropertyName,
			&rec.ChangedFrom,
			&rec.ChangedTo,
			&rec.ChangedAt,
			&rec.ChangedByUserID,
		)
		if err != nil {
			return nil, err
		}
		list = append(list, rec)
	}

	err = rows.Err()
	if err != nil {
		return nil, err
	}

	return list, nil
}

func (or *Repository) ListItemHistory(ctx context.Context, orderID uuid.UUID) ([]domain.OrderItemHistory, error) {
	statement := or.db.QueryBuilder.
		Select("id", "order_id", "item_id", "item_name", "item_category",
			"old_quantity", "new_quantity", "change_type",
			"changed_at", "changed_by_user_id", "changed_by_user_name").
		From("order_item_history").
		Where(sq.Eq{"order_id": orderID}).
		OrderBy("changed_at", "id")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := or.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]domain.OrderItemHistory, 0)
	for rows.Next() {
		rec := domain.OrderItemHistory{}
		err := rows.Scan(
			&rec.ID,
			&rec.OrderID,
			&rec.ItemID,
			&rec.ItemName,
			&rec.ItemCategory,
			&rec.OldQuantity,
			&rec.NewQuantity,
			&rec.ChangeType,
			&rec.ChangedAt,
			&rec.ChangedByUserID,
			&rec.ChangedByUserName,
		)
		if err != nil {
			return nil, err
		}
		list = append(list, rec)
	}

	err = rows.Err()
	if err != nil {
		return nil, err
	}

	return list, nil
}

func (or *Repository) ListEventTypes(ctx context.Context) ([]domain.EventType, error) {
	statement := or.db.QueryBuilder.
		Select("id", "name").
		From("event_types").
		OrderBy("name")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := or.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]domain.EventType, 0)
	for rows.Next() {
		et := domain.EventType{}
		if err := rows.Scan(&et.ID, &et.Name); err != nil {
			return nil, err
		}
		list = append(list, et)
	}

	err = rows.Err()
	if err != nil {
		return nil, err
	}

	return list, nil
}

func (or *Repository) CreateEventType(ctx context.Context, eventType *domain.EventType) (*domain.EventType, error) {
	statement := or.db.QueryBuilder.Insert("event_types").
		Columns("id", "name").
		Values(eventType.ID, eventType.Name)

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	_, err = or.db.Exec(ctx, sql, args...)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, domain.ErrConflictingData
		}
		return nil, err
	}

	return eventType, nil
}

func (or *Repository) DeleteEventType(ctx context.Context, id uuid.UUID) error {
	statement := or.db.QueryBuilder.
		Delete("event_types").
		Where(sq.Eq{"id": id})

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}

	tag, err := or.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDataNotFound
	}
	return nil
}
