// Package postgres holds the persistence-backed repositories. Admin-side
// writes go through bun; the hot public read path uses a pgx pool directly.
package postgres

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// NewPool opens a pgx connection pool for the public loader.
func NewPool(ctx context.Context, url string) (*pgxpool.Pool, error) {
	return pgxpool.Connect(ctx, url)
}

// NewDB opens a bun handle over pgdriver for the repository layer.
func NewDB(url string) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(url)))
	return bun.NewDB(sqldb, pgdialect.New())
}
