// internal/messaging/repository.go

package messaging

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var (
	ErrMatchNotFound        = errors.New("match not found")
	ErrConversationNotFound = errors.New("conversation not found")
)

// matchRow is the slice of a match this package needs to resolve
// participants.
type matchRow struct {
	ID         int64 `db:"id"`
	WorkerID   int64 `db:"worker_id"`
	EmployerID int64 `db:"employer_id"`
}

type Repository interface {
	GetMatchParticipants(ctx context.Context, matchID int64) (workerID, employerID int64, err error)
	GetOrCreateConversation(ctx context.Context, matchID, workerID, employerID int64) (*Conversation, error)
	GetConversation(ctx context.Context, conversationID int64) (*Conversation, error)
	InsertMessage(ctx context.Context, msg *Message) error
	ListConversations(ctx context.Context, userID int64) ([]*ConversationSummary, error)
	ListMessages(ctx context.Context, conversationID int64, limit, offset int) ([]*Message, error)
	MarkRead(ctx context.Context, conversationID, readerID int64) error
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) GetMatchParticipants(ctx context.Context, matchID int64) (int64, int64, error) {
	var m matchRow
	err := r.db.GetContext(ctx, &m,
		`SELECT id, worker_id, employer_id FROM matches WHERE id = $1`, matchID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, 0, ErrMatchNotFound
	}
	if err != nil {
		return 0, 0, err
	}
	return m.WorkerID, m.EmployerID, nil
}

// GetOrCreateConversation is the lazy materialization point: the first
// message to a match creates its thread. The unique index on match_id
// plus ON CONFLICT keeps concurrent first messages on one row.
func (r *postgresRepository) GetOrCreateConversation(ctx context.Context, matchID, workerID, employerID int64) (*Conversation, error) {
	var c Conversation
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO conversations (match_id, worker_id, employer_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (match_id) DO UPDATE SET match_id = EXCLUDED.match_id
		RETURNING id, match_id, worker_id, employer_id, last_message_id, last_message_at, created_at
	`, matchID, workerID, employerID).StructScan(&c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepository) GetConversation(ctx context.Context, conversationID int64) (*Conversation, error) {
	var c Conversation
	err := r.db.GetContext(ctx, &c,
		`SELECT * FROM conversations WHERE id = $1`, conversationID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConversationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// InsertMessage appends the message and advances the conversation's
// last-message pointers in one transaction.
func (r *postgresRepository) InsertMessage(ctx context.Context, msg *Message) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowxContext(ctx, `
		INSERT INTO messages (conversation_id, sender_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, msg.ConversationID, msg.SenderID, msg.Content).Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE conversations SET last_message_id = $2, last_message_at = $3
		WHERE id = $1
	`, msg.ConversationID, msg.ID, msg.CreatedAt)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *postgresRepository) ListConversations(ctx context.Context, userID int64) ([]*ConversationSummary, error) {
	summaries := []*ConversationSummary{}
	err := r.db.SelectContext(ctx, &summaries, `
		SELECT c.id, c.match_id,
		       CASE WHEN c.worker_id = $1 THEN c.employer_id ELSE c.worker_id END AS counterpart_id,
		       CASE WHEN c.worker_id = $1
		            THEN COALESCE(ep.company_name, eu.username)
		            ELSE COALESCE(wp.display_name, wu.username)
		       END AS counterpart_name,
		       j.title AS job_title,
		       lm.content AS last_message,
		       c.last_message_at,
		       (SELECT COUNT(*) FROM messages msg
		        WHERE msg.conversation_id = c.id
		          AND msg.sender_id <> $1
		          AND msg.read_at IS NULL) AS unread_count
		FROM conversations c
		JOIN users wu ON wu.id = c.worker_id
		JOIN users eu ON eu.id = c.employer_id
		LEFT JOIN worker_profiles wp ON wp.user_id = c.worker_id
		LEFT JOIN employer_profiles ep ON ep.user_id = c.employer_id
		LEFT JOIN matches m ON m.id = c.match_id
		LEFT JOIN job_posts j ON j.id = m.job_id
		LEFT JOIN messages lm ON lm.id = c.last_message_id
		WHERE c.worker_id = $1 OR c.employer_id = $1
		ORDER BY COALESCE(c.last_message_at, c.created_at) DESC
	`, userID)
	return summaries, err
}

func (r *postgresRepository) ListMessages(ctx context.Context, conversationID int64, limit, offset int) ([]*Message, error) {
	messages := []*Message{}
	err := r.db.SelectContext(ctx, &messages, `
		SELECT * FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, conversationID, limit, offset)
	return messages, err
}

// MarkRead stamps every unread message from the other participant.
func (r *postgresRepository) MarkRead(ctx context.Context, conversationID, readerID int64) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE messages SET read_at = NOW()
		WHERE conversation_id = $1 AND sender_id <> $2 AND read_at IS NULL
	`, conversationID, readerID)
	return err
}
