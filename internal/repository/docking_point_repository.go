package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"shipment-tracking/internal/models"
)

type dockingPointRepo struct {
	db DB
}

func NewDockingPointRepository(db DB) DockingPointRepository {
	return &dockingPointRepo{db: db}
}

func (r *dockingPointRepo) Create(ctx context.Context, p *models.DockingPoint) error {
	if p == nil {
		return fmt.Errorf("%w: docking point cannot be nil", ErrInvalidInput)
	}

	sql := `
		INSERT INTO docking_points (name, location, manager)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	if err := r.db.QueryRow(ctx, sql, p.Name, p.Location, p.Manager).Scan(&p.ID); err != nil {
		return fmt.Errorf("failed to create docking point: %w", err)
	}

	return nil
}

func (r *dockingPointRepo) GetByID(ctx context.Context, id int64) (*models.DockingPoint, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: ID cannot be empty", ErrInvalidInput)
	}

	var p models.DockingPoint
	err := r.db.QueryRow(ctx,
		`SELECT id, name, location, manager FROM docking_points WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.Location, &p.Manager)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get docking point by id %d: %w", id, err)
	}

	return &p, nil
}

func (r *dockingPointRepo) GetAll(ctx context.Context) ([]models.DockingPoint, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, location, manager FROM docking_points ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to get all docking points: %w", err)
	}
	defer rows.Close()

	var points []models.DockingPoint
	for rows.Next() {
		var p models.DockingPoint
		if err := rows.Scan(&p.ID, &p.Name, &p.Location, &p.Manager); err != nil {
			return nil, fmt.Errorf("failed to scan docking points: %w", err)
		}
		points = append(points, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}

	return points, nil
}

func (r *dockingPointRepo) Update(ctx context.Context, p *models.DockingPoint) error {
	if p == nil || p.ID <= 0 {
		return fmt.Errorf("%w: ID cannot be empty", ErrInvalidInput)
	}

	sql := `
		UPDATE docking_points
		SET name = $1, location = $2, manager = $3
		WHERE id = $4
		RETURNING id
	`

	if err := r.db.QueryRow(ctx, sql, p.Name, p.Location, p.Manager, p.ID).Scan(&p.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update docking point %d: %w", p.ID, err)
	}

	return nil
}

func (r *dockingPointRepo) Delete(ctx context.Context, id int64) error {
	return deleteRow(ctx, r.db, "docking_points", id)
}
