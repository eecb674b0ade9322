package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"petcare-hub/internal/domain/marketplace"
)

type MarketplaceRepo struct {
	db *sql.DB
}

func NewMarketplaceRepo(db *sql.DB) *MarketplaceRepo {
	return &MarketplaceRepo{db: db}
}

const productColumns = `
	id, organization_id, name, description, category,
	price_minor, currency, stock, active, image_key,
	created_at, updated_at`

const orderColumns = `
	id, user_id, organization_id, items, total_minor, currency,
	status, payment_order_id, payment_id, created_at, updated_at`

func (r *MarketplaceRepo) CreateProduct(ctx context.Context, p marketplace.Product) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		p.ID, p.OrganizationID, p.Name, p.Description, p.Category,
		p.PriceMinor, p.Currency, p.Stock, p.Active, p.ImageKey,
		p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (r *MarketplaceRepo) UpdateProduct(ctx context.Context, p marketplace.Product) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name = $2, description = $3, category = $4, price_minor = $5, currency = $6,
		    stock = $7, active = $8, image_key = $9, updated_at = $10
		WHERE id = $1
	`, p.ID, p.Name, p.Description, p.Category, p.PriceMinor, p.Currency,
		p.Stock, p.Active, p.ImageKey, p.UpdatedAt)
	if err != nil {
		return err
	}
	return rowsAffectedOr(res, marketplace.ErrNotFound)
}

func (r *MarketplaceRepo) GetProduct(ctx context.Context, id string) (marketplace.Product, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return marketplace.Product{}, marketplace.ErrNotFound
	}
	return p, err
}

func (r *MarketplaceRepo) ListProducts(ctx context.Context, orgID string, includeInactive bool) ([]marketplace.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE ($1 = '' OR organization_id = $1)
		  AND ($2 OR active)
		ORDER BY created_at DESC
	`, orgID, includeInactive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]marketplace.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *MarketplaceRepo) CreateOrder(ctx context.Context, o marketplace.Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		o.ID, o.UserID, o.OrganizationID, string(items), o.TotalMinor, o.Currency,
		o.Status, o.PaymentOrderID, o.PaymentID, o.CreatedAt, o.UpdatedAt,
	)
	return err
}

func (r *MarketplaceRepo) UpdateOrder(ctx context.Context, o marketplace.Order, from marketplace.OrderStatus) error {
	return updateOrder(ctx, r.db, o, from)
}

func (r *MarketplaceRepo) GetOrder(ctx context.Context, id string) (marketplace.Order, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return marketplace.Order{}, marketplace.ErrNotFound
	}
	return o, err
}

func (r *MarketplaceRepo) ListOrdersByUser(ctx context.Context, userID string) ([]marketplace.Order, error) {
	return r.listOrders(ctx, `WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *MarketplaceRepo) ListOrdersByOrganization(ctx context.Context, orgID string) ([]marketplace.Order, error) {
	return r.listOrders(ctx, `WHERE organization_id = $1 ORDER BY created_at DESC`, orgID)
}

// MarkPaid toma la orden con un UPDATE condicional sobre status antes de
// descontar stock: una segunda confirmación no encuentra fila y no descuenta.
// Si algún producto no alcanza se hace rollback completo.
func (r *MarketplaceRepo) MarkPaid(ctx context.Context, o marketplace.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := updateOrder(ctx, tx, o, marketplace.OrderPending); err != nil {
		return err
	}
	for _, it := range o.Items {
		res, err := tx.ExecContext(ctx, `
			UPDATE products
			SET stock = stock - $2, updated_at = $3
			WHERE id = $1 AND stock >= $2
		`, it.ProductID, it.Quantity, o.UpdatedAt)
		if err != nil {
			return err
		}
		if err := rowsAffectedOr(res, marketplace.ErrOutOfStock); err != nil {
			return err
		}
	}
	return tx.Commit()
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// updateOrder: 0 filas => la orden no existe o ya cambió de estado.
func updateOrder(ctx context.Context, db execer, o marketplace.Order, from marketplace.OrderStatus) error {
	res, err := db.ExecContext(ctx, `
		UPDATE orders
		SET status = $2, payment_order_id = $3, payment_id = $4, updated_at = $5
		WHERE id = $1 AND status = $6
	`, o.ID, o.Status, o.PaymentOrderID, o.PaymentID, o.UpdatedAt, from)
	if err != nil {
		return err
	}
	return rowsAffectedOr(res, marketplace.ErrBadState)
}

func (r *MarketplaceRepo) listOrders(ctx context.Context, where string, args ...any) ([]marketplace.Order, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+orderColumns+` FROM orders `+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]marketplace.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func scanProduct(s rowScanner) (marketplace.Product, error) {
	var p marketplace.Product
	err := s.Scan(
		&p.ID, &p.OrganizationID, &p.Name, &p.Description, &p.Category,
		&p.PriceMinor, &p.Currency, &p.Stock, &p.Active, &p.ImageKey,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func scanOrder(s rowScanner) (marketplace.Order, error) {
	var o marketplace.Order
	var items []byte
	if err := s.Scan(
		&o.ID, &o.UserID, &o.OrganizationID, &items, &o.TotalMinor, &o.Currency,
		&o.Status, &o.PaymentOrderID, &o.PaymentID, &o.CreatedAt, &o.UpdatedAt,
	); err != nil {
		return marketplace.Order{}, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &o.Items); err != nil {
			return marketplace.Order{}, err
		}
	}
	return o, nil
}
