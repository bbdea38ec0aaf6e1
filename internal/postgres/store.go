// Package postgres provides the PostgreSQL-backed catalog, inventory,
// and order store.
package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/danukusuma/gerai/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store implements the catalog, inventory, and order persistence
// interfaces on top of a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// Compile-time checks that Store satisfies the domain reader interfaces.
var (
	_ domain.CatalogReader   = (*Store)(nil)
	_ domain.InventoryReader = (*Store)(nil)
)

// NewStore creates a PostgreSQL-backed store.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// GetProduct returns the product with the given ID, or nil when no such
// product exists.
func (s *Store) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	const q = `
		SELECT id, name, category, base_price_cents, is_active, image_url, features
		FROM products
		WHERE id = $1`

	var p domain.Product
	err := s.pool.QueryRow(ctx, q, productID).Scan(
		&p.ID, &p.Name, &p.Category, &p.BasePriceCents, &p.IsActive, &p.ImageURL, &p.Features,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.Internal(err, "postgres.get_product", "failed to get product")
	}
	return &p, nil
}

// ListProducts returns every product in the catalog, active or not.
func (s *Store) ListProducts(ctx context.Context) ([]domain.Product, error) {
	const q = `
		SELECT id, name, category, base_price_cents, is_active, image_url, features
		FROM products
		ORDER BY name`

	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, domain.Internal(err, "postgres.list_products", "failed to list products")
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.BasePriceCents, &p.IsActive, &p.ImageURL, &p.Features); err != nil {
			return nil, domain.Internal(err, "postgres.list_products", "failed to scan product")
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "postgres.list_products", "failed to read products")
	}
	return products, nil
}

// GetInventory returns the inventory record for a product, or nil when
// the product has no record.
func (s *Store) GetInventory(ctx context.Context, productID string) (*domain.InventoryRecord, error) {
	const q = `
		SELECT product_id, quantity_on_hand
		FROM inventory
		WHERE product_id = $1`

	var rec domain.InventoryRecord
	err := s.pool.QueryRow(ctx, q, productID).Scan(&rec.ProductID, &rec.QuantityOnHand)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.Internal(err, "postgres.get_inventory", "failed to get inventory")
	}
	return &rec, nil
}

// SaveOrder inserts or replaces an order.
func (s *Store) SaveOrder(ctx context.Context, o domain.Order) error {
	lines, err := json.Marshal(o.Lines)
	if err != nil {
		return domain.Internal(err, "postgres.save_order", "failed to encode order lines")
	}
	totals, err := json.Marshal(o.Totals)
	if err != nil {
		return domain.Internal(err, "postgres.save_order", "failed to encode order totals")
	}
	history, err := json.Marshal(o.StatusHistory)
	if err != nil {
		return domain.Internal(err, "postgres.save_order", "failed to encode status history")
	}
	address, err := json.Marshal(o.ShippingAddress)
	if err != nil {
		return domain.Internal(err, "postgres.save_order", "failed to encode shipping address")
	}

	const q = `
		INSERT INTO orders (id, role, order_status, payment_status, lines, totals, status_history, shipping_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			order_status = EXCLUDED.order_status,
			payment_status = EXCLUDED.payment_status,
			status_history = EXCLUDED.status_history`

	_, err = s.pool.Exec(ctx, q,
		o.ID, string(o.Role), string(o.OrderStatus), string(o.PaymentStatus),
		lines, totals, history, address, o.CreatedAt,
	)
	if err != nil {
		return domain.Internal(err, "postgres.save_order", "failed to save order")
	}
	return nil
}

// GetOrder returns the order with the given ID.
func (s *Store) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	const q = `
		SELECT id, role, order_status, payment_status, lines, totals, status_history, shipping_address, created_at
		FROM orders
		WHERE id = $1`

	o, err := scanOrder(s.pool.QueryRow(ctx, q, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, domain.Internal(err, "postgres.get_order", "failed to get order")
	}
	return o, nil
}

// ListOrders returns all orders, newest first.
func (s *Store) ListOrders(ctx context.Context) ([]domain.Order, error) {
	const q = `
		SELECT id, role, order_status, payment_status, lines, totals, status_history, shipping_address, created_at
		FROM orders
		ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, domain.Internal(err, "postgres.list_orders", "failed to list orders")
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, domain.Internal(err, "postgres.list_orders", "failed to scan order")
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "postgres.list_orders", "failed to read orders")
	}
	return orders, nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o       domain.Order
		role    string
		status  string
		payment string
		lines   []byte
		totals  []byte
		history []byte
		address []byte
	)
	err := row.Scan(&o.ID, &role, &status, &payment, &lines, &totals, &history, &address, &o.CreatedAt)
	if err != nil {
		return nil, err
	}

	o.Role = domain.Role(role)
	o.OrderStatus = domain.OrderStatus(status)
	o.PaymentStatus = domain.PaymentStatus(payment)
	if err := json.Unmarshal(lines, &o.Lines); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(totals, &o.Totals); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(history, &o.StatusHistory); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(address, &o.ShippingAddress); err != nil {
		return nil, err
	}
	return &o, nil
}
