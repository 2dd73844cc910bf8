package repository

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/portfolio/backend/internal/model"
)

// MessageRepository defines the persistence interface for contact messages.
// It is defined here (in repository) to avoid an import cycle with service.
type MessageRepository interface {
	// Save inserts a new message and populates msg.ID, msg.CreatedAt and
	// msg.IsRead from the store.
	Save(ctx context.Context, msg *model.Message) error

	// List returns all messages, newest first.
	List(ctx context.Context) ([]*model.Message, error)

	// MarkRead sets is_read on the given message and returns the updated
	// row. Returns ErrNotFound if the id does not exist.
	MarkRead(ctx context.Context, id int64) (*model.Message, error)
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS messages (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	subject TEXT NOT NULL,
	message TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	is_read BOOLEAN NOT NULL DEFAULT FALSE
)`

// PgMessageRepository is the PostgreSQL implementation of MessageRepository.
type PgMessageRepository struct {
	pool *pgxpool.Pool

	mu           sync.Mutex
	bootstrapped bool
}

// NewPgMessageRepository creates a PgMessageRepository backed by the given pool.
func NewPgMessageRepository(pool *pgxpool.Pool) *PgMessageRepository {
	return &PgMessageRepository{pool: pool}
}

// Ensure PgMessageRepository implements MessageRepository at compile time.
var _ MessageRepository = (*PgMessageRepository)(nil)

// Bootstrap ensures the messages table exists. Once it has succeeded it is
// a no-op; until then every operation re-attempts it and fails with the
// store error, so no statement ever runs against a missing schema.
func (r *PgMessageRepository) Bootstrap(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bootstrapped {
		return nil
	}
	if _, err := r.pool.Exec(ctx, createTableSQL); err != nil {
		return errors.Wrap(err, "create messages table")
	}
	r.bootstrapped = true
	return nil
}

// Save inserts a new messages row and populates the store-assigned fields
// from the RETURNING clause.
func (r *PgMessageRepository) Save(ctx context.Context, msg *model.Message) error {
	if err := r.Bootstrap(ctx); err != nil {
		return err
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO messages (name, email, subject, message)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, is_read`,
		msg.Name, msg.Email, msg.Subject, msg.Body,
	).Scan(&msg.ID, &msg.CreatedAt, &msg.IsRead)
	return errors.Wrap(err, "insert message")
}

// List returns all messages ordered by created_at descending.
func (r *PgMessageRepository) List(ctx context.Context) ([]*model.Message, error) {
	if err := r.Bootstrap(ctx); err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, email, subject, message, created_at, is_read
		 FROM messages
		 ORDER BY created_at DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "select messages")
	}
	defer rows.Close()

	var messages []*model.Message
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Body, &m.CreatedAt, &m.IsRead); err != nil {
			return nil, errors.Wrap(err, "scan message")
		}
		messages = append(messages, &m)
	}
	return messages, rows.Err()
}

// MarkRead sets is_read = TRUE and returns the updated row. The update is
// idempotent; marking an already-read message succeeds unchanged.
func (r *PgMessageRepository) MarkRead(ctx context.Context, id int64) (*model.Message, error) {
	if err := r.Bootstrap(ctx); err != nil {
		return nil, err
	}
	var m model.Message
	err := r.pool.QueryRow(ctx,
		`UPDATE messages SET is_read = TRUE
		 WHERE id = $1
		 RETURNING id, name, email, subject, message, created_at, is_read`,
		id,
	).Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Body, &m.CreatedAt, &m.IsRead)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "update message")
	}
	return &m, nil
}
