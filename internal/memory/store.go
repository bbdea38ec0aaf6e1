// Package memory provides in-memory catalog, inventory, and order storage.
// It backs tests and the STORE=memory development mode; production runs use
// the postgres package instead.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/danukusuma/gerai/internal/domain"
)

// Store holds catalog, inventory, and order data in process memory.
// Safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	products  map[string]domain.Product
	inventory map[string]domain.InventoryRecord
	orders    map[string]domain.Order
}

// Compile-time interface checks.
var (
	_ domain.CatalogReader   = (*Store)(nil)
	_ domain.InventoryReader = (*Store)(nil)
)

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		products:  make(map[string]domain.Product),
		inventory: make(map[string]domain.InventoryRecord),
		orders:    make(map[string]domain.Order),
	}
}

// PutProduct inserts or replaces a catalog record.
func (s *Store) PutProduct(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
}

// PutInventory inserts or replaces a stock record.
func (s *Store) PutInventory(rec domain.InventoryRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inventory[rec.ProductID] = rec
}

// GetProduct returns the product, or (nil, nil) when the ID is unknown.
func (s *Store) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[productID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// ListProducts returns all catalog records ordered by ID.
func (s *Store) ListProducts(ctx context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetInventory returns the stock record, or (nil, nil) when the ID is unknown.
func (s *Store) GetInventory(ctx context.Context, productID string) (*domain.InventoryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.inventory[productID]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// SaveOrder inserts or replaces an order.
func (s *Store) SaveOrder(ctx context.Context, order domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[order.ID] = order.Clone()
	return nil
}

// GetOrder returns a copy of the stored order.
func (s *Store) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	clone := o.Clone()
	return &clone, nil
}

// ListOrders returns all stored orders, newest first.
func (s *Store) ListOrders(ctx context.Context) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
