package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"shipment-tracking/internal/models"
)

type userRepo struct {
	db DB
}

func NewUserRepository(db DB) UserRepository {
	return &userRepo{db: db}
}

const userColumns = `id, docking_point_id, email, phone_number, password, role, status`

func scanUser(row pgx.Row) (*models.User, error) {
	var (
		u      models.User
		role   string
		status string
	)

	if err := row.Scan(&u.ID, &u.DockingPointID, &u.Email, &u.PhoneNumber, &u.Password, &role, &status); err != nil {
		return nil, err
	}

	var err error
	if u.Role, err = models.ParseRole(role); err != nil {
		return nil, fmt.Errorf("stored user %d: %w", u.ID, err)
	}
	if u.Status, err = models.ParseUserStatus(status); err != nil {
		return nil, fmt.Errorf("stored user %d: %w", u.ID, err)
	}

	return &u, nil
}

func checkUser(u *models.User) error {
	if u == nil {
		return fmt.Errorf("%w: user cannot be nil", ErrInvalidInput)
	}
	if u.Role.String() == "" {
		return fmt.Errorf("%w: user role required", ErrInvalidInput)
	}
	if u.Status.String() == "" {
		return fmt.Errorf("%w: user status required", ErrInvalidInput)
	}
	return nil
}

func (r *userRepo) Create(ctx context.Context, u *models.User) error {
	if err := checkUser(u); err != nil {
		return err
	}

	sql := `
		INSERT INTO users (
			docking_point_id,
			email,
			phone_number,
			password,
			role,
			status
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, sql,
		u.DockingPointID,
		u.Email,
		u.PhoneNumber,
		u.Password,
		u.Role.String(),
		u.Status.String(),
	).Scan(&u.ID)
	if err != nil {
		if ferr := fieldError(err, "user", refs{"docking_point": u.DockingPointID}); ferr != nil {
			return ferr
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: ID cannot be empty", ErrInvalidInput)
	}

	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by id %d: %w", id, err)
	}

	return u, nil
}

func (r *userRepo) GetAll(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan users: %w", err)
		}
		users = append(users, *u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}

	return users, nil
}

func (r *userRepo) Update(ctx context.Context, u *models.User) error {
	if err := checkUser(u); err != nil {
		return err
	}
	if u.ID <= 0 {
		return fmt.Errorf("%w: ID cannot be empty", ErrInvalidInput)
	}

	sql := `
		UPDATE users
		SET
			docking_point_id = $1,
			email = $2,
			phone_number = $3,
			password = $4,
			role = $5,
			status = $6
		WHERE id = $7
		RETURNING id
	`

	err := r.db.QueryRow(ctx, sql,
		u.DockingPointID,
		u.Email,
		u.PhoneNumber,
		u.Password,
		u.Role.String(),
		u.Status.String(),
		u.ID,
	).Scan(&u.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if ferr := fieldError(err, "user", refs{"docking_point": u.DockingPointID}); ferr != nil {
			return ferr
		}
		return fmt.Errorf("failed to update user %d: %w", u.ID, err)
	}

	return nil
}

// Delete removes the user and its notifications and unassigns it from shipments it drives.
func (r *userRepo) Delete(ctx context.Context, id int64) error {
	return deleteRow(ctx, r.db, "users", id)
}
