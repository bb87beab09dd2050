package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"shipment-tracking/internal/models"
)

// DB is satisfied by *pgxpool.Pool and *pgx.Conn.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Repository[T any] interface {
	Create(ctx context.Context, v *T) error
	GetByID(ctx context.Context, id int64) (*T, error)
	GetAll(ctx context.Context) ([]T, error)
	Update(ctx context.Context, v *T) error
	Delete(ctx context.Context, id int64) error
}

type (
	UserRepository         = Repository[models.User]
	DockingPointRepository = Repository[models.DockingPoint]
	ItemRepository         = Repository[models.Item]
	ShipmentRepository     = Repository[models.Shipment]
	NotificationRepository = Repository[models.Notification]
)
