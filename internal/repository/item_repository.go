package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"shipment-tracking/internal/models"
)

type itemRepo struct {
	db DB
}

func NewItemRepository(db DB) ItemRepository {
	return &itemRepo{db: db}
}

// weight is NUMERIC(10,2); it travels as text in both directions.
const itemColumns = `id, owner_id, barcode, name, description, weight::text, category`

func scanItem(row pgx.Row) (*models.Item, error) {
	var (
		it       models.Item
		weight   string
		category string
	)

	if err := row.Scan(&it.ID, &it.OwnerID, &it.Barcode, &it.Name, &it.Description, &weight, &category); err != nil {
		return nil, err
	}

	var err error
	if it.Weight, err = decimal.NewFromString(weight); err != nil {
		return nil, fmt.Errorf("stored item %d weight: %w", it.ID, err)
	}
	if it.Category, err = models.ParseCategory(category); err != nil {
		return nil, fmt.Errorf("stored item %d: %w", it.ID, err)
	}

	return &it, nil
}

func checkItem(it *models.Item) error {
	if it == nil {
		return fmt.Errorf("%w: item cannot be nil", ErrInvalidInput)
	}
	if it.Category.String() == "" {
		return fmt.Errorf("%w: item category required", ErrInvalidInput)
	}
	return nil
}

func (r *itemRepo) Create(ctx context.Context, it *models.Item) error {
	if err := checkItem(it); err != nil {
		return err
	}

	sql := `
		INSERT INTO items (
			owner_id,
			barcode,
			name,
			description,
			weight,
			category
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, sql,
		it.OwnerID,
		it.Barcode,
		it.Name,
		it.Description,
		it.Weight.String(),
		it.Category.String(),
	).Scan(&it.ID)
	if err != nil {
		if ferr := fieldError(err, "item", nil); ferr != nil {
			return ferr
		}
		return fmt.Errorf("failed to create item: %w", err)
	}

	return nil
}

func (r *itemRepo) GetByID(ctx context.Context, id int64) (*models.Item, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: ID cannot be empty", ErrInvalidInput)
	}

	it, err := scanItem(r.db.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get item by id %d: %w", id, err)
	}

	return it, nil
}

func (r *itemRepo) GetAll(ctx context.Context) ([]models.Item, error) {
	rows, err := r.db.Query(ctx, `SELECT `+itemColumns+` FROM items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to get all items: %w", err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan items: %w", err)
		}
		items = append(items, *it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}

	return items, nil
}

func (r *itemRepo) Update(ctx context.Context, it *models.Item) error {
	if err := checkItem(it); err != nil {
		return err
	}
	if it.ID <= 0 {
		return fmt.Errorf("%w: ID cannot be empty", ErrInvalidInput)
	}

	sql := `
		UPDATE items
		SET
			owner_id = $1,
			barcode = $2,
			name = $3,
			description = $4,
			weight = $5,
			category = $6
		WHERE id = $7
		RETURNING id
	`

	err := r.db.QueryRow(ctx, sql,
		it.OwnerID,
		it.Barcode,
		it.Name,
		it.Description,
		it.Weight.String(),
		it.Category.String(),
		it.ID,
	).Scan(&it.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if ferr := fieldError(err, "item", nil); ferr != nil {
			return ferr
		}
		return fmt.Errorf("failed to update item %d: %w", it.ID, err)
	}

	return nil
}

// Delete removes the item together with every shipment of it.
func (r *itemRepo) Delete(ctx context.Context, id int64) error {
	return deleteRow(ctx, r.db, "items", id)
}
