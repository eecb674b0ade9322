package marketplace

import "context"

// Repository devuelve ErrNotFound si la fila no existe.
type Repository interface {
	CreateProduct(ctx context.Context, p Product) error
	UpdateProduct(ctx context.Context, p Product) error
	GetProduct(ctx context.Context, id string) (Product, error)
	// ListProducts: activos, opcionalmente de una sola org. El resto de
	// filtros se aplica en memoria.
	ListProducts(ctx context.Context, orgID string, includeInactive bool) ([]Product, error)

	CreateOrder(ctx context.Context, o Order) error
	// UpdateOrder guarda solo si la orden sigue en from; si no, ErrBadState.
	UpdateOrder(ctx context.Context, o Order, from OrderStatus) error
	GetOrder(ctx context.Context, id string) (Order, error)
	ListOrdersByUser(ctx context.Context, userID string) ([]Order, error)
	ListOrdersByOrganization(ctx context.Context, orgID string) ([]Order, error)
	// MarkPaid pasa la orden de pending a pagada y descuenta stock en una
	// transacción. Si ya no estaba pending devuelve ErrBadState; sin stock
	// suficiente ErrOutOfStock. En ambos casos no toca nada.
	MarkPaid(ctx context.Context, o Order) error
}
