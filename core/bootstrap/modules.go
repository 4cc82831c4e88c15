package bootstrap

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// ServiceProvider wires application services using configuration and storage.
type ServiceProvider[T any] interface {
	Provide(ctx context.Context, cfg interface{}, db *sqlx.DB) (T, error)
}

// ServiceProviderFunc adapts a function to the ServiceProvider interface.
type ServiceProviderFunc[T any] func(ctx context.Context, cfg interface{}, db *sqlx.DB) (T, error)

// Provide executes the underlying function.
func (f ServiceProviderFunc[T]) Provide(ctx context.Context, cfg interface{}, db *sqlx.DB) (T, error) {
	return f(ctx, cfg, db)
}
