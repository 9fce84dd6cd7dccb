package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cb9060218-del/thunder-res-backend/internal/domain"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS menu_items (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			price NUMERIC(10,2) NOT NULL DEFAULT 0,
			category TEXT NOT NULL DEFAULT '',
			image_url TEXT NOT NULL DEFAULT '',
			available BOOLEAN NOT NULL DEFAULT TRUE
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id SERIAL PRIMARY KEY,
			table_no INTEGER NOT NULL,
			total NUMERIC(10,2) NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'pending',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			order_id INTEGER NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			item_id INTEGER NOT NULL REFERENCES menu_items(id),
			quantity INTEGER NOT NULL CHECK (quantity > 0)
		)`,
	}
	for _, stmt := range statements {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func (r *PostgresRepository) ListMenu(ctx context.Context, includeUnavailable bool) ([]domain.MenuItem, error) {
	query := `
		SELECT id, name, price, COALESCE(category, ''), COALESCE(image_url, ''), available
		FROM menu_items
		WHERE available = TRUE
		ORDER BY id ASC`
	if includeUnavailable {
		query = `
		SELECT id, name, price, COALESCE(category, ''), COALESCE(image_url, ''), available
		FROM menu_items
		ORDER BY id ASC`
	}

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.MenuItem{}
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Price, &item.Category, &item.ImageURL, &item.Available); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) AddMenuItem(ctx context.Context, item *domain.MenuItem) error {
	item.Available = true
	return r.DB.QueryRowContext(ctx,
		"INSERT INTO menu_items (name, price, category, image_url) VALUES ($1, $2, $3, $4) RETURNING id",
		item.Name, item.Price, item.Category, item.ImageURL,
	).Scan(&item.ID)
}

func (r *PostgresRepository) GetMenuPrices(ctx context.Context, ids []int) (map[int]float64, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, price FROM menu_items WHERE id = ANY($1)", pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	prices := make(map[int]float64, len(ids))
	for rows.Next() {
		var id int
		var price float64
		if err := rows.Scan(&id, &price); err != nil {
			return nil, err
		}
		prices[id] = price
	}
	return prices, rows.Err()
}

// CreateOrder inserts the order header and its line items in one transaction.
// Either everything commits or the rollback leaves no trace of the order.
func (r *PostgresRepository) CreateOrder(ctx context.Context, order *domain.Order, lines []domain.OrderLine) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx, `
		INSERT INTO orders (table_no, total, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, order.TableNo, order.Total, order.Status).Scan(&order.ID, &order.CreatedAt); err != nil {
		return err
	}

	for _, line := range lines {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, item_id, quantity)
			VALUES ($1, $2, $3)
		`, order.ID, line.ItemID, line.Quantity); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PostgresRepository) ListOrders(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, table_no, total, status, created_at
		FROM orders
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	index := map[int]int{}
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.ID, &order.TableNo, &order.Total, &order.Status, &order.CreatedAt); err != nil {
			return nil, err
		}
		order.Items = []domain.OrderItem{}
		index[order.ID] = len(orders)
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	itemRows, err := r.DB.QueryContext(ctx, `
		SELECT oi.order_id, m.name, m.price, oi.quantity
		FROM order_items oi
		JOIN menu_items m ON m.id = oi.item_id
		ORDER BY oi.order_id
	`)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var orderID int
		var item domain.OrderItem
		if err := itemRows.Scan(&orderID, &item.Name, &item.Price, &item.Quantity); err != nil {
			return nil, err
		}
		if pos, ok := index[orderID]; ok {
			orders[pos].Items = append(orders[pos].Items, item)
		}
	}
	return orders, itemRows.Err()
}

func (r *PostgresRepository) MarkOrderReady(ctx context.Context, orderID int) (int64, error) {
	result, err := r.DB.ExecContext(ctx,
		"UPDATE orders SET status = $1 WHERE id = $2", domain.StatusReady, orderID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
