package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB reports store connectivity. *pgxpool.Pool satisfies it.
type DB interface {
	Ping(ctx context.Context) error
}

// NewPool creates a PostgreSQL connection pool. Connections are established
// lazily, so an unreachable server is not an error here; callers observe
// connectivity per operation (or via Ping).
func NewPool(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	return pgxpool.New(ctx, connString)
}
