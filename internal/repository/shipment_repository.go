package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"shipment-tracking/internal/models"
)

type shipmentRepo struct {
	db DB
}

func NewShipmentRepository(db DB) ShipmentRepository {
	return &shipmentRepo{db: db}
}

const shipmentColumns = `id, item_id, driver_id, status, receiver, sender, tracking_code`

func scanShipment(row pgx.Row) (*models.Shipment, error) {
	var (
		s      models.Shipment
		status string
	)

	if err := row.Scan(&s.ID, &s.ItemID, &s.DriverID, &status, &s.Receiver, &s.Sender, &s.TrackingCode); err != nil {
		return nil, err
	}

	var err error
	if s.Status, err = models.ParseShipmentStatus(status); err != nil {
		return nil, fmt.Errorf("stored shipment %d: %w", s.ID, err)
	}

	return &s, nil
}

func checkShipment(s *models.Shipment) error {
	if s == nil {
		return fmt.Errorf("%w: shipment cannot be nil", ErrInvalidInput)
	}
	if s.ItemID <= 0 {
		return fmt.Errorf("%w: shipment item required", ErrInvalidInput)
	}
	if s.Status.String() == "" {
		return fmt.Errorf("%w: shipment status required", ErrInvalidInput)
	}
	return nil
}

func shipmentRefs(s *models.Shipment) refs {
	return refs{"item": ref(s.ItemID), "driver": s.DriverID}
}

func (r *shipmentRepo) Create(ctx context.Context, s *models.Shipment) error {
	if err := checkShipment(s); err != nil {
		return err
	}

	sql := `
		INSERT INTO shipments (
			item_id,
			driver_id,
			status,
			receiver,
			sender,
			tracking_code
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, sql,
		s.ItemID,
		s.DriverID,
		s.Status.String(),
		s.Receiver,
		s.Sender,
		s.TrackingCode,
	).Scan(&s.ID)
	if err != nil {
		if ferr := fieldError(err, "shipment", shipmentRefs(s)); ferr != nil {
			return ferr
		}
		return fmt.Errorf("failed to create shipment: %w", err)
	}

	return nil
}

func (r *shipmentRepo) GetByID(ctx context.Context, id int64) (*models.Shipment, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: ID cannot be empty", ErrInvalidInput)
	}

	s, err := scanShipment(r.db.QueryRow(ctx, `SELECT `+shipmentColumns+` FROM shipments WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get shipment by id %d: %w", id, err)
	}

	return s, nil
}

func (r *shipmentRepo) GetAll(ctx context.Context) ([]models.Shipment, error) {
	rows, err := r.db.Query(ctx, `SELECT `+shipmentColumns+` FROM shipments ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to get all shipments: %w", err)
	}
	defer rows.Close()

	var shipments []models.Shipment
	for rows.Next() {
		s, err := scanShipment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shipments: %w", err)
		}
		shipments = append(shipments, *s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}

	return shipments, nil
}

func (r *shipmentRepo) Update(ctx context.Context, s *models.Shipment) error {
	if err := checkShipment(s); err != nil {
		return err
	}
	if s.ID <= 0 {
		return fmt.Errorf("%w: ID cannot be empty", ErrInvalidInput)
	}

	sql := `
		UPDATE shipments
		SET
			item_id = $1,
			driver_id = $2,
			status = $3,
			receiver = $4,
			sender = $5,
			tracking_code = $6
		WHERE id = $7
		RETURNING id
	`

	err := r.db.QueryRow(ctx, sql,
		s.ItemID,
		s.DriverID,
		s.Status.String(),
		s.Receiver,
		s.Sender,
		s.TrackingCode,
		s.ID,
	).Scan(&s.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if ferr := fieldError(err, "shipment", shipmentRefs(s)); ferr != nil {
			return ferr
		}
		return fmt.Errorf("failed to update shipment %d: %w", s.ID, err)
	}

	return nil
}

func (r *shipmentRepo) Delete(ctx context.Context, id int64) error {
	return deleteRow(ctx, r.db, "shipments", id)
}
