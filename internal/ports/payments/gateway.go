package payments

import "context"

// OrderRequest: amount en unidades menores (paise/centavos).
type OrderRequest struct {
	Amount   int64
	Currency string
	Receipt  string
	Notes    map[string]string
}

type Order struct {
	ID       string
	Amount   int64
	Currency string
	Receipt  string
	Status   string
}

type Gateway interface {
	CreateOrder(ctx context.Context, in OrderRequest) (Order, error)
	// VerifyPayment valida la firma que devuelve el checkout del proveedor.
	VerifyPayment(orderID, paymentID, signature string) bool
}
