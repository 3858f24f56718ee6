package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gabinork/Gabi-Nork-Tech-2/internal/domain"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type postgresOrderRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresOrderRepository(db *sql.DB, logger *logrus.Logger) domain.OrderRepository {
	return &postgresOrderRepository{
		db:  db,
		log: logger,
	}
}

func (r *postgresOrderRepository) CreateOrder(ctx context.Context, order *domain.Order) (err error) {
	shipping, err := json.Marshal(order.Shipping)
	if err != nil {
		return fmt.Errorf("could not encode shipping details: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.log.Errorf("Repository: Failed to begin transaction: %v", err)
		return fmt.Errorf("could not start transaction: %w", err)
	}
	defer func() {
		if err != nil {
			r.log.Warnf("Repository: Rolling back transaction due to error: %v", err)
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				r.log.Errorf("Repository: Failed to rollback transaction: %v", rbErr)
			}
		}
	}()

	orderQuery := `
        INSERT INTO orders (id, client_id, customer_name, customer_email, shipping, total, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `
	_, err = tx.ExecContext(ctx, orderQuery,
		order.ID,
		order.ClientID,
		order.CustomerName,
		order.CustomerEmail,
		shipping,
		order.Total,
		order.Status,
		order.CreatedAt,
	)
	if err != nil {
		r.log.Errorf("Repository: Failed to insert order %s: %v", order.ID, err)
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return fmt.Errorf("order %s already exists", order.ID)
		}
		return fmt.Errorf("could not create order entry: %w", err)
	}

	itemQuery := `
        INSERT INTO order_items (order_id, product_id, name, unit_price, quantity)
        VALUES ($1, $2, $3, $4, $5)
    `
	stmt, err := tx.PrepareContext(ctx, itemQuery)
	if err != nil {
		r.log.Errorf("Repository: Failed to prepare order item statement: %v", err)
		return fmt.Errorf("could not prepare item statement: %w", err)
	}
	defer stmt.Close()

	for _, item := range order.Items {
		_, err = stmt.ExecContext(ctx, order.ID, item.ProductID, item.Name, item.UnitPrice, item.Quantity)
		if err != nil {
			r.log.Errorf("Repository: Failed to insert order item (product_id: %s, quantity: %d) for order %s: %v", item.ProductID, item.Quantity, order.ID, err)
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == "23514" {
				return fmt.Errorf("invalid item data (product_id: %s): %s", item.ProductID, pqErr.Message)
			}
			return fmt.Errorf("could not create order item (product_id: %s): %w", item.ProductID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		r.log.Errorf("Repository: Failed to commit transaction: %v", err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.log.Infof("Repository: Order %s created with %d items", order.ID, len(order.Items))
	return nil
}

const orderColumns = `id, client_id, customer_name, customer_email, shipping, total, status, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	order := &domain.Order{}
	var shipping []byte
	if err := row.Scan(
		&order.ID,
		&order.ClientID,
		&order.CustomerName,
		&order.CustomerEmail,
		&shipping,
		&order.Total,
		&order.Status,
		&order.CreatedAt,
	); err != nil {
		return nil, err
	}
	if len(shipping) > 0 {
		if err := json.Unmarshal(shipping, &order.Shipping); err != nil {
			return nil, fmt.Errorf("could not decode shipping details for order %s: %w", order.ID, err)
		}
	}
	return order, nil
}

func (r *postgresOrderRepository) GetOrderByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repository: Order with ID %s not found", id)
			return nil, fmt.Errorf("order with id %s: %w", id, domain.ErrOrderNotFound)
		}
		r.log.Errorf("Repository: Failed to get order by ID %s: %v", id, err)
		return nil, fmt.Errorf("could not retrieve order: %w", err)
	}

	order.Items, err = r.getOrderItems(ctx, id)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *postgresOrderRepository) ListOrdersByClientID(ctx context.Context, clientID string) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE client_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, clientID)
	if err != nil {
		r.log.Errorf("Repository: Failed to list orders for client %s: %v", clientID, err)
		return nil, fmt.Errorf("could not list orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			r.log.Errorf("Repository: Failed to scan order row for client %s: %v", clientID, err)
			return nil, fmt.Errorf("could not scan order: %w", err)
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	for i := range orders {
		orders[i].Items, err = r.getOrderItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
	}
	r.log.Infof("Repository: Listed %d orders for client %s", len(orders), clientID)
	return orders, nil
}

func (r *postgresOrderRepository) getOrderItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	query := `
        SELECT product_id, name, unit_price, quantity
        FROM order_items
        WHERE order_id = $1
    `
	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		r.log.Errorf("Repository: Failed to query order items for order ID %s: %v", orderID, err)
		return nil, fmt.Errorf("could not retrieve order items: %w", err)
	}
	defer rows.Close()

	items := []domain.OrderItem{}
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ProductID, &item.Name, &item.UnitPrice, &item.Quantity); err != nil {
			return nil, fmt.Errorf("could not scan order item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}
	return items, nil
}
