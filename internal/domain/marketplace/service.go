package marketplace

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"petcare-hub/internal/domain/media"
	"petcare-hub/internal/domain/organizations"
	"petcare-hub/internal/platform/logger"
	"petcare-hub/internal/ports/changefeed"
	"petcare-hub/internal/ports/payments"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrBadState     = errors.New("invalid state")
	ErrOutOfStock   = errors.New("out of stock")
	ErrBadSignature = errors.New("invalid payment signature")
	// ErrPaymentsUnavailable: no hay gateway configurado.
	ErrPaymentsUnavailable = errors.New("payments not configured")
)

const (
	DefaultCurrency = "INR"

	maxNameLen        = 120
	maxDescriptionLen = 4000
	maxQuantity       = 99
	maxPriceMinor     = 10_000_000_000
	maxItems          = 50
	defaultListLimit  = 50
)

// Organizations lo implementa organizations.Service.
type Organizations interface {
	Get(ctx context.Context, orgID string) (organizations.Organization, error)
	MemberRole(ctx context.Context, orgID, userID string) (organizations.Role, error)
}

type MediaStore interface {
	Upload(ctx context.Context, prefix string, r io.Reader) (media.Object, error)
	Delete(ctx context.Context, key string) error
}

// sellerTypes: organizaciones que pueden publicar productos.
var sellerTypes = map[organizations.Type]bool{
	organizations.TypeStore:   true,
	organizations.TypeClinic:  true,
	organizations.TypeGroomer: true,
}

type Service struct {
	repo    Repository
	orgs    Organizations
	gateway payments.Gateway
	media   MediaStore
	feed    changefeed.Publisher
	log     logger.Logger
	now     func() time.Time
}

type Option func(*Service)

func WithGateway(g payments.Gateway) Option {
	return func(s *Service) { s.gateway = g }
}

func WithMedia(m MediaStore) Option {
	return func(s *Service) { s.media = m }
}

func WithPublisher(p changefeed.Publisher) Option {
	return func(s *Service) {
		if p != nil {
			s.feed = p
		}
	}
}

func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo Repository, orgs Organizations, opts ...Option) *Service {
	s := &Service{
		repo: repo,
		orgs: orgs,
		feed: changefeed.Nop{},
		log:  logger.Nop(),
		now:  time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

type ProductInput struct {
	Name        string
	Description string
	Category    Category
	PriceMinor  int64
	Currency    string
	Stock       int
}

func (s *Service) CreateProduct(ctx context.Context, orgID, userID string, in ProductInput) (Product, error) {
	orgID = strings.TrimSpace(orgID)
	if err := s.requireSellerStaff(ctx, orgID, userID); err != nil {
		return Product{}, err
	}
	p := Product{
		ID:             uuid.NewString(),
		OrganizationID: orgID,
		Active:         true,
	}
	if err := applyProductInput(&p, in); err != nil {
		return Product{}, err
	}
	now := s.now()
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return Product{}, err
	}
	s.publishProduct(changefeed.Insert, p)
	return p, nil
}

type ProductPatch struct {
	Name        *string
	Description *string
	Category    *Category
	PriceMinor  *int64
	Stock       *int
	Active      *bool
}

func (s *Service) UpdateProduct(ctx context.Context, productID, userID string, in ProductPatch) (Product, error) {
	p, err := s.editableProduct(ctx, productID, userID)
	if err != nil {
		return Product{}, err
	}

	next := ProductInput{
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		PriceMinor:  p.PriceMinor,
		Currency:    p.Currency,
		Stock:       p.Stock,
	}
	if in.Name != nil {
		next.Name = *in.Name
	}
	if in.Description != nil {
		next.Description = *in.Description
	}
	if in.Category != nil {
		next.Category = *in.Category
	}
	if in.PriceMinor != nil {
		next.PriceMinor = *in.PriceMinor
	}
	if in.Stock != nil {
		next.Stock = *in.Stock
	}
	if err := applyProductInput(&p, next); err != nil {
		return Product{}, err
	}
	if in.Active != nil {
		p.Active = *in.Active
	}
	return s.saveProduct(ctx, p)
}

func (s *Service) SetProductImage(ctx context.Context, productID, userID string, r io.Reader) (Product, error) {
	if s.media == nil {
		return Product{}, fmt.Errorf("%w: media storage not configured", ErrBadState)
	}
	p, err := s.editableProduct(ctx, productID, userID)
	if err != nil {
		return Product{}, err
	}
	obj, err := s.media.Upload(ctx, "products/"+p.ID, r)
	if err != nil {
		return Product{}, err
	}
	old := p.ImageKey
	p.ImageKey = obj.Key
	updated, err := s.saveProduct(ctx, p)
	if err != nil {
		return Product{}, err
	}
	if old != "" {
		if err := s.media.Delete(ctx, old); err != nil {
			s.log.Warn("delete old product image", map[string]any{"product_id": p.ID, "key": old, "error": err})
		}
	}
	return updated, nil
}

// GetProduct: los inactivos solo los ve el staff del vendedor.
func (s *Service) GetProduct(ctx context.Context, productID, userID string) (Product, error) {
	p, err := s.getProduct(ctx, productID)
	if err != nil {
		return Product{}, err
	}
	if p.Active {
		return p, nil
	}
	if userID != "" {
		role, err := s.orgs.MemberRole(ctx, p.OrganizationID, userID)
		if err != nil {
			return Product{}, err
		}
		if role.IsStaff() {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

type ProductFilter struct {
	OrganizationID string
	Category       Category
	Query          string
	MinPriceMinor  int64
	MaxPriceMinor  int64
	InStock        bool
	Limit          int
}

// ListProducts es público: solo activos, filtros en memoria.
func (s *Service) ListProducts(ctx context.Context, f ProductFilter) ([]Product, error) {
	if f.Category != "" && !f.Category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, f.Category)
	}
	items, err := s.repo.ListProducts(ctx, strings.TrimSpace(f.OrganizationID), false)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]Product, 0, len(items))
	for _, p := range items {
		if !p.Active {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.MinPriceMinor > 0 && p.PriceMinor < f.MinPriceMinor {
			continue
		}
		if f.MaxPriceMinor > 0 && p.PriceMinor > f.MaxPriceMinor {
			continue
		}
		if f.InStock && p.Stock <= 0 {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Name+" "+p.Description), q) {
			continue
		}
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	limit := f.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ListOrganizationProducts incluye inactivos (staff del vendedor).
func (s *Service) ListOrganizationProducts(ctx context.Context, orgID, userID string) ([]Product, error) {
	role, err := s.orgs.MemberRole(ctx, orgID, userID)
	if err != nil {
		return nil, err
	}
	if !role.IsStaff() {
		return nil, ErrForbidden
	}
	return s.repo.ListProducts(ctx, strings.TrimSpace(orgID), true)
}

type CartItem struct {
	ProductID string
	Quantity  int
}

// CheckoutResult es la orden creada y la orden de pago del proveedor que el
// cliente usa para abrir el checkout.
type CheckoutResult struct {
	Order   Order
	Payment payments.Order
}

// Checkout arma una orden de un solo vendedor y crea la orden de pago con
// receipt = id de la orden. El stock se valida acá y se descuenta al pagar.
func (s *Service) Checkout(ctx context.Context, userID string, items []CartItem) (CheckoutResult, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return CheckoutResult{}, ErrInvalidInput
	}
	if s.gateway == nil {
		return CheckoutResult{}, ErrPaymentsUnavailable
	}
	if len(items) == 0 || len(items) > maxItems {
		return CheckoutResult{}, fmt.Errorf("%w: cart must have 1-%d items", ErrInvalidInput, maxItems)
	}

	// mismo producto dos veces = se suman cantidades
	qty := map[string]int{}
	order := make([]string, 0, len(items))
	for _, it := range items {
		id := strings.TrimSpace(it.ProductID)
		if id == "" || it.Quantity <= 0 || it.Quantity > maxQuantity {
			return CheckoutResult{}, fmt.Errorf("%w: each item needs product_id and quantity 1-%d", ErrInvalidInput, maxQuantity)
		}
		if _, seen := qty[id]; !seen {
			order = append(order, id)
		}
		qty[id] += it.Quantity
		if qty[id] > maxQuantity {
			return CheckoutResult{}, fmt.Errorf("%w: quantity above %d", ErrInvalidInput, maxQuantity)
		}
	}

	var (
		orgID    string
		currency string
		total    int64
		lines    = make([]OrderItem, 0, len(order))
	)
	for _, id := range order {
		p, err := s.getProduct(ctx, id)
		if err != nil {
			return CheckoutResult{}, err
		}
		if !p.Active {
			return CheckoutResult{}, fmt.Errorf("%w: product %s is not available", ErrBadState, p.ID)
		}
		if orgID == "" {
			orgID, currency = p.OrganizationID, p.Currency
		} else if p.OrganizationID != orgID {
			return CheckoutResult{}, fmt.Errorf("%w: all items must come from the same seller", ErrInvalidInput)
		} else if p.Currency != currency {
			return CheckoutResult{}, fmt.Errorf("%w: mixed currencies", ErrInvalidInput)
		}
		if p.Stock < qty[id] {
			return CheckoutResult{}, fmt.Errorf("%w: %s", ErrOutOfStock, p.Name)
		}
		lines = append(lines, OrderItem{
			ProductID:      p.ID,
			Name:           p.Name,
			Quantity:       qty[id],
			UnitPriceMinor: p.PriceMinor,
		})
		// filas previas al tope de precio pueden desbordar
		if p.PriceMinor > (math.MaxInt64-total)/int64(qty[id]) {
			return CheckoutResult{}, fmt.Errorf("%w: order total too large", ErrInvalidInput)
		}
		total += p.PriceMinor * int64(qty[id])
	}
	if total <= 0 {
		return CheckoutResult{}, fmt.Errorf("%w: order total must be positive", ErrInvalidInput)
	}

	now := s.now()
	o := Order{
		ID:             uuid.NewString(),
		UserID:         userID,
		OrganizationID: orgID,
		Items:          lines,
		TotalMinor:     total,
		Currency:       currency,
		Status:         OrderPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	pay, err := s.gateway.CreateOrder(ctx, payments.OrderRequest{
		Amount:   total,
		Currency: currency,
		Receipt:  o.ID,
		Notes:    map[string]string{"organization_id": orgID, "user_id": userID},
	})
	if err != nil {
		return CheckoutResult{}, fmt.Errorf("create payment order: %w", err)
	}
	o.PaymentOrderID = pay.ID

	if err := s.repo.CreateOrder(ctx, o); err != nil {
		return CheckoutResult{}, err
	}
	s.publishOrder(changefeed.Insert, o)
	return CheckoutResult{Order: o, Payment: pay}, nil
}

type PaymentConfirmation struct {
	PaymentOrderID string
	PaymentID      string
	Signature      string
}

// ConfirmPayment valida la firma del checkout, marca la orden pagada y
// descuenta stock. Confirmar dos veces el mismo pago es idempotente.
func (s *Service) ConfirmPayment(ctx context.Context, orderID, userID string, in PaymentConfirmation) (Order, error) {
	if s.gateway == nil {
		return Order{}, ErrPaymentsUnavailable
	}
	paymentOrderID := strings.TrimSpace(in.PaymentOrderID)
	paymentID := strings.TrimSpace(in.PaymentID)
	if paymentOrderID == "" || paymentID == "" || strings.TrimSpace(in.Signature) == "" {
		return Order{}, fmt.Errorf("%w: payment_order_id, payment_id and signature are required", ErrInvalidInput)
	}

	o, err := s.getOrder(ctx, orderID)
	if err != nil {
		return Order{}, err
	}
	if o.UserID != strings.TrimSpace(userID) {
		return Order{}, ErrForbidden
	}
	if o.PaymentOrderID != paymentOrderID {
		return Order{}, fmt.Errorf("%w: payment order does not match", ErrInvalidInput)
	}
	if !s.gateway.VerifyPayment(paymentOrderID, paymentID, in.Signature) {
		return Order{}, ErrBadSignature
	}

	switch o.Status {
	case OrderPaid, OrderFulfilled:
		if o.PaymentID == paymentID {
			return o, nil
		}
		return Order{}, fmt.Errorf("%w: order already paid", ErrBadState)
	case OrderCancelled:
		return Order{}, fmt.Errorf("%w: order is cancelled", ErrBadState)
	}

	o.Status = OrderPaid
	o.PaymentID = paymentID
	o.UpdatedAt = s.now()
	if err := s.repo.MarkPaid(ctx, o); err != nil {
		if errors.Is(err, ErrBadState) {
			// otra confirmación ganó la carrera
			return s.alreadyPaid(ctx, o.ID, paymentID)
		}
		if errors.Is(err, ErrOutOfStock) {
			s.log.Error("paid order without stock", map[string]any{"order_id": o.ID, "payment_id": paymentID})
		}
		return Order{}, err
	}
	s.publishOrder(changefeed.Update, o)
	return o, nil
}

func (s *Service) alreadyPaid(ctx context.Context, orderID, paymentID string) (Order, error) {
	cur, err := s.getOrder(ctx, orderID)
	if err != nil {
		return Order{}, err
	}
	if (cur.Status == OrderPaid || cur.Status == OrderFulfilled) && cur.PaymentID == paymentID {
		return cur, nil
	}
	return Order{}, fmt.Errorf("%w: order is %s", ErrBadState, cur.Status)
}

func (s *Service) CancelOrder(ctx context.Context, orderID, userID string) (Order, error) {
	o, err := s.getOrder(ctx, orderID)
	if err != nil {
		return Order{}, err
	}
	if o.UserID != strings.TrimSpace(userID) {
		return Order{}, ErrForbidden
	}
	if o.Status == OrderCancelled {
		return o, nil
	}
	if o.Status != OrderPending {
		return Order{}, fmt.Errorf("%w: only pending orders can be cancelled", ErrBadState)
	}
	return s.setOrderStatus(ctx, o, OrderCancelled)
}

func (s *Service) FulfillOrder(ctx context.Context, orderID, userID string) (Order, error) {
	o, err := s.getOrder(ctx, orderID)
	if err != nil {
		return Order{}, err
	}
	role, err := s.orgs.MemberRole(ctx, o.OrganizationID, userID)
	if err != nil {
		return Order{}, err
	}
	if !role.IsStaff() {
		return Order{}, ErrForbidden
	}
	if o.Status == OrderFulfilled {
		return o, nil
	}
	if o.Status != OrderPaid {
		return Order{}, fmt.Errorf("%w: only paid orders can be fulfilled", ErrBadState)
	}
	return s.setOrderStatus(ctx, o, OrderFulfilled)
}

// GetOrder: comprador o staff del vendedor.
func (s *Service) GetOrder(ctx context.Context, orderID, userID string) (Order, error) {
	o, err := s.getOrder(ctx, orderID)
	if err != nil {
		return Order{}, err
	}
	if o.UserID == userID {
		return o, nil
	}
	role, err := s.orgs.MemberRole(ctx, o.OrganizationID, userID)
	if err != nil {
		return Order{}, err
	}
	if !role.IsStaff() {
		return Order{}, ErrForbidden
	}
	return o, nil
}

func (s *Service) ListMyOrders(ctx context.Context, userID string) ([]Order, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}
	items, err := s.repo.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(items)
	return items, nil
}

func (s *Service) ListOrganizationOrders(ctx context.Context, orgID, userID string) ([]Order, error) {
	role, err := s.orgs.MemberRole(ctx, orgID, userID)
	if err != nil {
		return nil, err
	}
	if !role.IsStaff() {
		return nil, ErrForbidden
	}
	items, err := s.repo.ListOrdersByOrganization(ctx, strings.TrimSpace(orgID))
	if err != nil {
		return nil, err
	}
	sortNewestFirst(items)
	return items, nil
}

func (s *Service) setOrderStatus(ctx context.Context, o Order, st OrderStatus) (Order, error) {
	from := o.Status
	o.Status = st
	o.UpdatedAt = s.now()
	if err := s.repo.UpdateOrder(ctx, o, from); err != nil {
		return Order{}, err
	}
	s.publishOrder(changefeed.Update, o)
	return o, nil
}

func (s *Service) requireSellerStaff(ctx context.Context, orgID, userID string) error {
	if orgID == "" || strings.TrimSpace(userID) == "" {
		return ErrInvalidInput
	}
	org, err := s.orgs.Get(ctx, orgID)
	if err != nil {
		if errors.Is(err, organizations.ErrNotFound) {
			return fmt.Errorf("%w: organization", ErrNotFound)
		}
		return err
	}
	role, err := s.orgs.MemberRole(ctx, orgID, userID)
	if err != nil {
		return err
	}
	if !role.IsStaff() {
		return ErrForbidden
	}
	if !sellerTypes[org.Type] {
		return fmt.Errorf("%w: %s organizations cannot sell products", ErrBadState, org.Type)
	}
	return nil
}

func (s *Service) editableProduct(ctx context.Context, productID, userID string) (Product, error) {
	p, err := s.getProduct(ctx, productID)
	if err != nil {
		return Product{}, err
	}
	role, err := s.orgs.MemberRole(ctx, p.OrganizationID, userID)
	if err != nil {
		return Product{}, err
	}
	if !role.IsStaff() {
		return Product{}, ErrForbidden
	}
	return p, nil
}

func (s *Service) saveProduct(ctx context.Context, p Product) (Product, error) {
	p.UpdatedAt = s.now()
	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return Product{}, err
	}
	s.publishProduct(changefeed.Update, p)
	return p, nil
}

func (s *Service) getProduct(ctx context.Context, id string) (Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Product{}, ErrInvalidInput
	}
	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Product{}, fmt.Errorf("%w: product", ErrNotFound)
		}
		return Product{}, err
	}
	return p, nil
}

func (s *Service) getOrder(ctx context.Context, id string) (Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Order{}, ErrInvalidInput
	}
	o, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Order{}, fmt.Errorf("%w: order", ErrNotFound)
		}
		return Order{}, err
	}
	return o, nil
}

func applyProductInput(p *Product, in ProductInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" || len(name) > maxNameLen {
		return fmt.Errorf("%w: name must be 1-%d chars", ErrInvalidInput, maxNameLen)
	}
	if len(in.Description) > maxDescriptionLen {
		return fmt.Errorf("%w: description too long", ErrInvalidInput)
	}
	cat := Category(strings.ToLower(strings.TrimSpace(string(in.Category))))
	if cat == "" {
		cat = CategoryOther
	}
	if !cat.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, in.Category)
	}
	if in.PriceMinor <= 0 {
		return fmt.Errorf("%w: price must be positive", ErrInvalidInput)
	}
	if in.PriceMinor > maxPriceMinor {
		return fmt.Errorf("%w: price above %d", ErrInvalidInput, int64(maxPriceMinor))
	}
	if in.Stock < 0 {
		return fmt.Errorf("%w: stock cannot be negative", ErrInvalidInput)
	}
	cur := strings.ToUpper(strings.TrimSpace(in.Currency))
	if cur == "" {
		cur = DefaultCurrency
	}
	if len(cur) != 3 {
		return fmt.Errorf("%w: currency must be an ISO 4217 code", ErrInvalidInput)
	}

	p.Name = name
	p.Description = strings.TrimSpace(in.Description)
	p.Category = cat
	p.PriceMinor = in.PriceMinor
	p.Currency = cur
	p.Stock = in.Stock
	return nil
}

func (s *Service) publishProduct(t changefeed.ChangeType, p Product) {
	// productos activos son públicos: sin audiencia = todos
	c := changefeed.Change{
		Table: "products",
		Type:  t,
		Record: map[string]any{
			"id":              p.ID,
			"organization_id": p.OrganizationID,
			"name":            p.Name,
			"price_minor":     p.PriceMinor,
			"stock":           p.Stock,
			"active":          p.Active,
		},
		At: p.UpdatedAt,
	}
	if !p.Active {
		c.OrganizationID = p.OrganizationID
		c.MinRole = string(organizations.RoleStaff)
	}
	s.feed.Publish(c)
}

func (s *Service) publishOrder(t changefeed.ChangeType, o Order) {
	s.feed.Publish(changefeed.Change{
		Table: "orders",
		Type:  t,
		Record: map[string]any{
			"id":          o.ID,
			"status":      o.Status,
			"total_minor": o.TotalMinor,
			"currency":    o.Currency,
		},
		OrganizationID: o.OrganizationID,
		MinRole:        string(organizations.RoleStaff),
		UserIDs:        []string{o.UserID},
		At:             o.UpdatedAt,
	})
}

func sortNewestFirst(items []Order) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}
