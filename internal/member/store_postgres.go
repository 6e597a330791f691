package member

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

// Postgres persists members in the members table. Email uniqueness rides on
// the unique index over lower(email).
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
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

func (s *Postgres) CreateIfEmailAvailable(ctx context.Context, member *domain.Member) error {
	query := `
		INSERT INTO members (id, email, name, phone, phone_region, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		member.ID().String(),
		member.Email().String(),
		member.Name(),
		member.Phone().String(),
		string(member.Phone().Region()),
		string(member.Status()),
		member.CreatedAt(),
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert member: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, memberID id.MemberID) (*domain.Member, error) {
	query := `
		SELECT id, email, name, phone, phone_region, status, created_at
		FROM members
		WHERE id = $1
	`
	return s.scanMember(s.execer(ctx).QueryRowContext(ctx, query, memberID.String()))
}

func (s *Postgres) FindByEmail(ctx context.Context, email domain.Email) (*domain.Member, error) {
	query := `
		SELECT id, email, name, phone, phone_region, status, created_at
		FROM members
		WHERE lower(email) = lower($1)
	`
	return s.scanMember(s.execer(ctx).QueryRowContext(ctx, query, email.String()))
}

func (s *Postgres) Update(ctx context.Context, member *domain.Member) error {
	query := `
		UPDATE members
		SET email = $2, name = $3, phone = $4, phone_region = $5, status = $6
		WHERE id = $1
	`
	result, err := s.execer(ctx).ExecContext(ctx, query,
		member.ID().String(),
		member.Email().String(),
		member.Name(),
		member.Phone().String(),
		string(member.Phone().Region()),
		string(member.Status()),
	)
	if err != nil {
		return fmt.Errorf("update member: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update member rows affected: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) scanMember(row *sql.Row) (*domain.Member, error) {
	var (
		rawID       string
		rawEmail    string
		name        string
		rawPhone    string
		phoneRegion string
		rawStatus   string
		createdAt   sql.NullTime
	)
	err := row.Scan(&rawID, &rawEmail, &name, &rawPhone, &phoneRegion, &rawStatus, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan member: %w", err)
	}

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
