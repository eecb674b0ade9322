package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"petcare-hub/internal/domain/marketplace"
)

type marketplaceRepo struct {
	mu       sync.RWMutex
	products map[string]marketplace.Product
	orders   map[string]marketplace.Order
}

func NewMarketplaceRepo() marketplace.Repository {
	return &marketplaceRepo{
		products: make(map[string]marketplace.Product),
		orders:   make(map[string]marketplace.Order),
	}
}

func (r *marketplaceRepo) CreateProduct(ctx context.Context, p marketplace.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("product id required")
	}
	if _, exists := r.products[p.ID]; exists {
		return errors.New("product already exists")
	}
	r.products[p.ID] = p
	return nil
}

func (r *marketplaceRepo) UpdateProduct(ctx context.Context, p marketplace.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[p.ID]; !exists {
		return marketplace.ErrNotFound
	}
	r.products[p.ID] = p
	return nil
}

func (r *marketplaceRepo) GetProduct(ctx context.Context, id string) (marketplace.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return marketplace.Product{}, marketplace.ErrNotFound
	}
	return p, nil
}

func (r *marketplaceRepo) ListProducts(ctx context.Context, orgID string, includeInactive bool) ([]marketplace.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]marketplace.Product, 0)
	for _, p := range r.products {
		if orgID != "" && p.OrganizationID != orgID {
			continue
		}
		if !includeInactive && !p.Active {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *marketplaceRepo) CreateOrder(ctx context.Context, o marketplace.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(o.ID) == "" {
		return errors.New("order id required")
	}
	if _, exists := r.orders[o.ID]; exists {
		return errors.New("order already exists")
	}
	r.orders[o.ID] = cloneOrder(o)
	return nil
}

func (r *marketplaceRepo) UpdateOrder(ctx context.Context, o marketplace.Order, from marketplace.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, exists := r.orders[o.ID]
	if !exists {
		return marketplace.ErrNotFound
	}
	if cur.Status != from {
		return marketplace.ErrBadState
	}
	r.orders[o.ID] = cloneOrder(o)
	return nil
}

func (r *marketplaceRepo) GetOrder(ctx context.Context, id string) (marketplace.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return marketplace.Order{}, marketplace.ErrNotFound
	}
	return cloneOrder(o), nil
}

func (r *marketplaceRepo) ListOrdersByUser(ctx context.Context, userID string) ([]marketplace.Order, error) {
	return r.filterOrders(func(o marketplace.Order) bool { return o.UserID == userID }), nil
}

func (r *marketplaceRepo) ListOrdersByOrganization(ctx context.Context, orgID string) ([]marketplace.Order, error) {
	return r.filterOrders(func(o marketplace.Order) bool { return o.OrganizationID == orgID }), nil
}

func (r *marketplaceRepo) MarkPaid(ctx context.Context, o marketplace.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, exists := r.orders[o.ID]
	if !exists {
		return marketplace.ErrNotFound
	}
	if cur.Status != marketplace.OrderPending {
		return marketplace.ErrBadState
	}
	// primero validar todo, después descontar
	for _, it := range o.Items {
		p, ok := r.products[it.ProductID]
		if !ok || p.Stock < it.Quantity {
			return marketplace.ErrOutOfStock
		}
	}
	for _, it := range o.Items {
		p := r.products[it.ProductID]
		p.Stock -= it.Quantity
		p.UpdatedAt = o.UpdatedAt
		r.products[it.ProductID] = p
	}
	r.orders[o.ID] = cloneOrder(o)
	return nil
}

func (r *marketplaceRepo) filterOrders(keep func(marketplace.Order) bool) []marketplace.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]marketplace.Order, 0)
	for _, o := range r.orders {
		if keep(o) {
			out = append(out, cloneOrder(o))
		}
	}
	return out
}

func cloneOrder(o marketplace.Order) marketplace.Order {
	o.Items = append([]marketplace.OrderItem(nil), o.Items...)
	return o
}
