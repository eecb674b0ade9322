package marketplace

import "time"

// @Enum food, toys, accessories, health, grooming, other
type Category string

const (
	CategoryFood        Category = "food"
	CategoryToys        Category = "toys"
	CategoryAccessories Category = "accessories"
	CategoryHealth      Category = "health"
	CategoryGrooming    Category = "grooming"
	CategoryOther       Category = "other"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryFood, CategoryToys, CategoryAccessories, CategoryHealth, CategoryGrooming, CategoryOther:
		return true
	}
	return false
}

// Product: precios en unidades menores (paise/centavos).
type Product struct {
	ID             string
	OrganizationID string

	Name        string
	Description string
	Category    Category

	PriceMinor int64
	Currency   string
	Stock      int
	Active     bool
	ImageKey   string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// @Enum pending, paid, cancelled, fulfilled
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderCancelled OrderStatus = "cancelled"
	OrderFulfilled OrderStatus = "fulfilled"
)

// OrderItem congela nombre y precio al momento de la compra.
type OrderItem struct {
	ProductID      string `json:"product_id"`
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	UnitPriceMinor int64  `json:"unit_price_minor"`
}

// Order es de un solo vendedor (una organización).
type Order struct {
	ID             string
	UserID         string
	OrganizationID string

	Items      []OrderItem
	TotalMinor int64
	Currency   string
	Status     OrderStatus

	PaymentOrderID string
	PaymentID      string

	CreatedAt time.Time
	UpdatedAt time.Time
}
