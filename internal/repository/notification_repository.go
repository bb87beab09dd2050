package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"shipment-tracking/internal/models"
)

type notificationRepo struct {
	db DB
}

func NewNotificationRepository(db DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, n *models.Notification) error {
	if n == nil {
		return fmt.Errorf("%w: notification cannot be nil", ErrInvalidInput)
	}

	sql := `
		INSERT INTO notifications (user_id, message, status)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	if err := r.db.QueryRow(ctx, sql, n.UserID, n.Message, n.Read).Scan(&n.ID); err != nil {
		if ferr := fieldError(err, "notification", refs{"user": ref(n.UserID)}); ferr != nil {
			return ferr
		}
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

func (r *notificationRepo) GetByID(ctx context.Context, id int64) (*models.Notification, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: ID cannot be empty", ErrInvalidInput)
	}

	var n models.Notification
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, message, status FROM notifications WHERE id = $1`, id,
	).Scan(&n.ID, &n.UserID, &n.Message, &n.Read)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get notification by id %d: %w", id, err)
	}

	return &n, nil
}

func (r *notificationRepo) GetAll(ctx context.Context) ([]models.Notification, error) {
	rows, err := r.db.Query(ctx, `SELECT id, user_id, message, status FROM notifications ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to get all notifications: %w", err)
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.Read); err != nil {
			return nil, fmt.Errorf("failed to scan notifications: %w", err)
		}
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}

	return notifications, nil
}

func (r *notificationRepo) Update(ctx context.Context, n *models.Notification) error {
	if n == nil || n.ID <= 0 {
		return fmt.Errorf("%w: ID cannot be empty", ErrInvalidInput)
	}

	sql := `
		UPDATE notifications
		SET user_id = $1, message = $2, status = $3
		WHERE id = $4
		RETURNING id
	`

	if err := r.db.QueryRow(ctx, sql, n.UserID, n.Message, n.Read, n.ID).Scan(&n.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if ferr := fieldError(err, "notification", refs{"user": ref(n.UserID)}); ferr != nil {
			return ferr
		}
		return fmt.Errorf("failed to update notification %d: %w", n.ID, err)
	}

	return nil
}

func (r *notificationRepo) Delete(ctx context.Context, id int64) error {
	return deleteRow(ctx, r.db, "notifications", id)
}
