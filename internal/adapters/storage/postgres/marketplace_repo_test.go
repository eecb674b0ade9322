package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petcare-hub/internal/domain/marketplace"
)

func paidOrder() marketplace.Order {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return marketplace.Order{
		ID:             "ord-1",
		UserID:         "ana",
		OrganizationID: "store-1",
		Items: []marketplace.OrderItem{
			{ProductID: "p1", Name: "Alimento", Quantity: 2, UnitPriceMinor: 1500},
			{ProductID: "p2", Name: "Collar", Quantity: 1, UnitPriceMinor: 900},
		},
		TotalMinor:     3900,
		Currency:       "INR",
		Status:         marketplace.OrderPaid,
		PaymentOrderID: "order_X",
		PaymentID:      "pay_Y",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestMarkPaid_DecrementsStockAndUpdatesOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	o := paidOrder()
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE orders").
		WithArgs(o.ID, o.Status, o.PaymentOrderID, o.PaymentID, o.UpdatedAt, marketplace.OrderPending).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE products").WithArgs("p1", 2, o.UpdatedAt).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE products").WithArgs("p2", 1, o.UpdatedAt).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, NewMarketplaceRepo(db).MarkPaid(context.Background(), o))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkPaid_OutOfStockRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	o := paidOrder()
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE orders").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE products").WithArgs("p1", 2, o.UpdatedAt).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE products").WithArgs("p2", 1, o.UpdatedAt).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err = NewMarketplaceRepo(db).MarkPaid(context.Background(), o)
	assert.ErrorIs(t, err, marketplace.ErrOutOfStock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkPaid_AlreadyPaidDoesNotTouchStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// la orden ya no está pending: ningún UPDATE products
	o := paidOrder()
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE orders").
		WithArgs(o.ID, o.Status, o.PaymentOrderID, o.PaymentID, o.UpdatedAt, marketplace.OrderPending).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err = NewMarketplaceRepo(db).MarkPaid(context.Background(), o)
	assert.ErrorIs(t, err, marketplace.ErrBadState)
	assert.NoError(t, mock.ExpectationsWereMet())
}
