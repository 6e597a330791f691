package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"backoffice/internal/domain"
	id "backoffice/pkg/domain"
	"backoffice/pkg/platform/sentinel"
	txcontext "backoffice/pkg/platform/tx"
)

// OrderFinder loads the order aggregate a payment settles. The order module's
// postgres store satisfies this; its FindByID already rehydrates the attached
// payment from the payments table.
type OrderFinder interface {
	FindByID(ctx context.Context, orderID id.OrderID) (*domain.Order, error)
}

// Postgres persists payments. Rehydration delegates to the order store so the
// order/payment back-reference is built in one place.
type Postgres struct {
	db     *sql.DB
	orders OrderFinder
}

func NewPostgres(db *sql.DB, orders OrderFinder) *Postgres {
	return &Postgres{db: db, orders: orders}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Postgres) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

const uniqueViolation = "23505"

func (s *Postgres) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (id, order_id, amount, currency, method, status, transaction_id, failure_reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		payment.ID().String(),
		payment.Order().ID().String(),
		payment.Amount().Amount().String(),
		payment.Amount().Currency(),
		string(payment.Method()),
		string(payment.Status()),
		nullable(payment.TransactionID()),
		nullable(payment.FailureReason()),
		payment.CreatedAt(),
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, paymentID id.PaymentID) (*domain.Payment, error) {
	var rawOrderID string
	query := `SELECT order_id FROM payments WHERE id = $1`
	err := s.execer(ctx).QueryRowContext(ctx, query, paymentID.String()).Scan(&rawOrderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan payment order id: %w", err)
	}

	orderID, err := id.ParseOrderID(rawOrderID)
	if err != nil {
		return nil, fmt.Errorf("parse payment order id: %w", err)
	}
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	payment := order.Payment()
	if payment == nil {
		return nil, sentinel.ErrNotFound
	}
	return payment, nil
}

func (s *Postgres) Update(ctx context.Context, payment *domain.Payment) error {
	query := `
		UPDATE payments
		SET status = $2, transaction_id = $3, failure_reason = $4
		WHERE id = $1
	`
	result, err := s.execer(ctx).ExecContext(ctx, query,
		payment.ID().String(),
		string(payment.Status()),
		nullable(payment.TransactionID()),
		nullable(payment.FailureReason()),
	)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update payment rows affected: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
