// Package contact stores incoming customer messages and the admin read flags.
package contact

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("message not found")
)

// ValidationError marks client-fixable input problems.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

type Repository interface {
	Create(ctx context.Context, m *Message) error
	List(ctx context.Context, page, limit int, isRead *bool) ([]Message, int, error)
	MarkRead(ctx context.Context, id string) error
	Stats(ctx context.Context) (*Stats, error)
}

// Validate applies the intake rules before any row is written.
func Validate(req *CreateRequest) (*Message, error) {
	name := strings.TrimSpace(req.Name)
	subject := strings.TrimSpace(req.Subject)
	message := strings.TrimSpace(req.Message)

	if len(name) < 2 {
		return nil, &ValidationError{Msg: "name must be at least 2 characters"}
	}
	email := strings.TrimSpace(req.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, &ValidationError{Msg: "email is not a valid email address"}
	}
	if len(subject) < 5 {
		return nil, &ValidationError{Msg: "subject must be at least 5 characters"}
	}
	if len(message) < 10 {
		return nil, &ValidationError{Msg: "message must be at least 10 characters"}
	}

	return &Message{
		ID:      uuid.NewString(),
		Name:    name,
		Email:   email,
		Phone:   strings.TrimSpace(req.Phone),
		Subject: subject,
		Message: message,
	}, nil
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Create(ctx context.Context, m *Message) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO contacts (id, name, email, phone, subject, message, is_read, created_at)
		VALUES ($1,$2,$3,NULLIF($4,''),$5,$6,FALSE,NOW())
	`, m.ID, m.Name, m.Email, m.Phone, m.Subject, m.Message)
	return err
}

func (r *PGRepo) List(ctx context.Context, page, limit int, isRead *bool) ([]Message, int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	where := ""
	args := []any{}
	if isRead != nil {
		where = " WHERE is_read = $1"
		args = append(args, *isRead)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM contacts`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT id, name, email, COALESCE(phone,''), subject, message, is_read, created_at
		FROM contacts%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Subject, &m.Message, &m.IsRead, &m.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, m)
	}
	return out, total, rows.Err()
}

func (r *PGRepo) MarkRead(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `UPDATE contacts SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) Stats(ctx context.Context) (*Stats, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var s Stats
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE NOT is_read),
		       COUNT(*) FILTER (WHERE is_read),
		       COUNT(*) FILTER (WHERE created_at >= NOW() - INTERVAL '7 days')
		FROM contacts
	`).Scan(&s.TotalMessages, &s.UnreadMessages, &s.ReadMessages, &s.ThisWeek)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
