package order

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

// Postgres persists orders across the orders and order_items tables. The
// payment reference is read from the payments table, which the payment module
// owns; AttachPayment therefore only verifies the order exists.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Postgres) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

const uniqueViolation = "23505"

// CreateIfNumberAvailable inserts the order and its items in one transaction
// so a failed item insert never leaves a headless order behind.
func (s *Postgres) CreateIfNumberAvailable(ctx context.Context, order *domain.Order) error {
	return txcontext.Run(ctx, s.db, func(ctx context.Context) error {
		query := `
			INSERT INTO orders (id, order_number, member_id, total_amount, currency, status, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`
		_, err := s.execer(ctx).ExecContext(ctx, query,
			order.ID().String(),
			order.OrderNumber(),
			order.Member().ID().String(),
			order.TotalAmount().Amount().String(),
			order.TotalAmount().Currency(),
			string(order.Status()),
			order.CreatedAt(),
		)
		if err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
				return sentinel.ErrConflict
			}
			return fmt.Errorf("insert order: %w", err)
		}

		for position, item := range order.Items() {
			if err := s.insertItem(ctx, order.ID(), position, item); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Postgres) insertItem(ctx context.Context, orderID id.OrderID, position int, item *domain.OrderItem) error {
	query := `
		INSERT INTO order_items (order_id, position, product_name, product_description, quantity, unit_price, currency)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		orderID.String(),
		position,
		item.ProductName(),
		item.ProductDescription(),
		item.Quantity(),
		item.UnitPrice().Amount().String(),
		item.UnitPrice().Currency(),
	)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, orderID id.OrderID) (*domain.Order, error) {
	query := `
		SELECT o.id, o.order_number, o.total_amount, o.currency, o.status, o.created_at,
		       m.id, m.email, m.name, m.phone, m.phone_region, m.status, m.created_at
		FROM orders o
		JOIN members m ON m.id = o.member_id
		WHERE o.id = $1
	`
	row := s.execer(ctx).QueryRowContext(ctx, query, orderID.String())

	var (
		rawOrderID    string
		orderNumber   string
		rawTotal      string
		currency      string
		rawStatus     string
		createdAt     sql.NullTime
		rawMemberID   string
		rawEmail      string
		memberName    string
		rawPhone      string
		phoneRegion   string
		rawMemberStat string
		memberCreated sql.NullTime
	)
	err := row.Scan(&rawOrderID, &orderNumber, &rawTotal, &currency, &rawStatus, &createdAt,
		&rawMemberID, &rawEmail, &memberName, &rawPhone, &phoneRegion, &rawMemberStat, &memberCreated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}

	member, err := rehydrateMember(rawMemberID, rawEmail, memberName, rawPhone, phoneRegion, rawMemberStat, memberCreated)
	if err != nil {
		return nil, err
	}

	parsedID, err := id.ParseOrderID(rawOrderID)
	if err != nil {
		return nil, fmt.Errorf("parse order id: %w", err)
	}
	total, err := domain.MoneyFromString(rawTotal, currency)
	if err != nil {
		return nil, fmt.Errorf("parse order total: %w", err)
	}
	status, err := domain.ParseOrderStatus(rawStatus)
	if err != nil {
		return nil, fmt.Errorf("parse order status: %w", err)
	}

	order := domain.RehydrateOrder(parsedID, orderNumber, member, total, status, createdAt.Time)
	if err := s.loadItems(ctx, order); err != nil {
		return nil, err
	}
	if err := s.loadPayment(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *Postgres) loadItems(ctx context.Context, order *domain.Order) error {
	query := `
		SELECT product_name, product_description, quantity, unit_price, currency
		FROM order_items
		WHERE order_id = $1
		ORDER BY position ASC
	`
	rows, err := s.execer(ctx).QueryContext(ctx, query, order.ID().String())
	if err != nil {
		return fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			name        string
			description string
			quantity    int
			rawPrice    string
			currency    string
		)
		if err := rows.Scan(&name, &description, &quantity, &rawPrice, &currency); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		unitPrice, err := domain.MoneyFromString(rawPrice, currency)
		if err != nil {
			return fmt.Errorf("parse item unit price: %w", err)
		}
		if err := order.AddItem(domain.RehydrateOrderItem(name, description, quantity, unitPrice)); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (s *Postgres) loadPayment(ctx context.Context, order *domain.Order) error {
	query := `
		SELECT id, amount, currency, method, status, transaction_id, failure_reason, created_at
		FROM payments
		WHERE order_id = $1
	`
	row := s.execer(ctx).QueryRowContext(ctx, query, order.ID().String())

	var (
		rawID         string
		rawAmount     string
		currency      string
		rawMethod     string
		rawStatus     string
		transactionID sql.NullString
		failureReason sql.NullString
		createdAt     sql.NullTime
	)
	err := row.Scan(&rawID, &rawAmount, &currency, &rawMethod, &rawStatus, &transactionID, &failureReason, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("scan order payment: %w", err)
	}

	paymentID, err := id.ParsePaymentID(rawID)
	if err != nil {
		return fmt.Errorf("parse payment id: %w", err)
	}
	amount, err := domain.MoneyFromString(rawAmount, currency)
	if err != nil {
		return fmt.Errorf("parse payment amount: %w", err)
	}
	method, err := domain.ParsePaymentMethod(rawMethod)
	if err != nil {
		return fmt.Errorf("parse payment method: %w", err)
	}
	status, err := domain.ParsePaymentStatus(rawStatus)
	if err != nil {
		return fmt.Errorf("parse payment status: %w", err)
	}

	payment := domain.RehydratePayment(paymentID, order, amount, method, status,
		transactionID.String, failureReason.String, createdAt.Time)
	return order.AttachPayment(payment)
}

func (s *Postgres) UpdateStatus(ctx context.Context, order *domain.Order) error {
	query := `UPDATE orders SET status = $2 WHERE id = $1`
	result, err := s.execer(ctx).ExecContext(ctx, query, order.ID().String(), string(order.Status()))
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update order rows affected: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) AppendItem(ctx context.Context, orderID id.OrderID, item *domain.OrderItem) error {
	var position int
	countQuery := `SELECT COUNT(*) FROM order_items WHERE order_id = $1`
	if err := s.execer(ctx).QueryRowContext(ctx, countQuery, orderID.String()).Scan(&position); err != nil {
		return fmt.Errorf("count order items: %w", err)
	}
	return s.insertItem(ctx, orderID, position, item)
}

// AttachPayment verifies the order exists; the payment row itself lives in
// the payments table and is written by the payment store.
func (s *Postgres) AttachPayment(ctx context.Context, orderID id.OrderID, _ *domain.Payment) error {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`
	if err := s.execer(ctx).QueryRowContext(ctx, query, orderID.String()).Scan(&exists); err != nil {
		return fmt.Errorf("check order exists: %w", err)
	}
	if !exists {
		return sentinel.ErrNotFound
	}
	return nil
}

func rehydrateMember(rawID, rawEmail, name, rawPhone, phoneRegion, rawStatus string, createdAt sql.NullTime) (*domain.Member, error) {
	memberID, err := id.ParseMemberID(rawID)
	if err != nil {
		return nil, fmt.Errorf("parse member id: %w", err)
	}
	email, err := domain.NewEmail(rawEmail)
	if err != nil {
		return nil, fmt.Errorf("parse member email: %w", err)
	}
	phone, err := domain.NewPhoneNumber(rawPhone, domain.PhoneRegion(phoneRegion))
	if err != nil {
		return nil, fmt.Errorf("parse member phone: %w", err)
	}
	status, err := domain.ParseMemberStatus(rawStatus)
	if err != nil {
		return nil, fmt.Errorf("parse member status: %w", err)
	}
	return domain.RehydrateMember(memberID, email, name, phone, status, createdAt.Time), nil
}
