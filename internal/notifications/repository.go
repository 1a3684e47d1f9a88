// internal/notifications/repository.go

package notifications

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrNotificationNotFound = errors.New("notification not found")

type Repository interface {
	Insert(ctx context.Context, n *Notification) error
	List(ctx context.Context, userID int64, limit, offset int) ([]*Notification, error)
	UnreadCount(ctx context.Context, userID int64) (int, error)
	MarkRead(ctx context.Context, userID, notificationID int64) error
	MarkAllRead(ctx context.Context, userID int64) error
	GetRecipientContact(ctx context.Context, userID int64) (email string, phone *string, err error)
	SavePushToken(ctx context.Context, userID int64, token string) error
	DeletePushToken(ctx context.Context, userID int64, token string) error
	GetPushTokens(ctx context.Context, userID int64) ([]string, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Insert(ctx context.Context, n *Notification) error {
	return r.db.QueryRowxContext(ctx, `
		INSERT INTO notifications (user_id, type, title, body, payload)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, n.UserID, n.Type, n.Title, n.Body, n.Payload).Scan(&n.ID, &n.CreatedAt)
}

func (r *postgresRepository) List(ctx context.Context, userID int64, limit, offset int) ([]*Notification, error) {
	notifications := []*Notification{}
	err := r.db.SelectContext(ctx, &notifications, `
		SELECT * FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	return notifications, err
}

func (r *postgresRepository) UnreadCount(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND NOT is_read`, userID)
	return count, err
}

func (r *postgresRepository) MarkRead(ctx context.Context, userID, notificationID int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`,
		notificationID, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *postgresRepository) MarkAllRead(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND NOT is_read`, userID)
	return err
}

func (r *postgresRepository) GetRecipientContact(ctx context.Context, userID int64) (string, *string, error) {
	var row struct {
		Email string  `db:"email"`
		Phone *string `db:"phone"`
	}
	err := r.db.GetContext(ctx, &row,
		`SELECT email, phone FROM users WHERE id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil, sql.ErrNoRows
	}
	if err != nil {
		return "", nil, err
	}
	return row.Email, row.Phone, nil
}

func (r *postgresRepository) SavePushToken(ctx context.Context, userID int64, token string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO push_tokens (user_id, token)
		VALUES ($1, $2)
		ON CONFLICT (token) DO UPDATE SET user_id = EXCLUDED.user_id
	`, userID, token)
	return err
}

func (r *postgresRepository) DeletePushToken(ctx context.Context, userID int64, token string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM push_tokens WHERE user_id = $1 AND token = $2`, userID, token)
	return err
}

func (r *postgresRepository) GetPushTokens(ctx context.Context, userID int64) ([]string, error) {
	tokens := []string{}
	err := r.db.SelectContext(ctx, &tokens,
		`SELECT token FROM push_tokens WHERE user_id = $1`, userID)
	return tokens, err
}
