package repository

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrForeignKeyViolation = "23503"
	pgErrUniqueViolation     = "23505"
)

// constraintFields maps constraint names from the migrations to wire fields.
var constraintFields = map[string]string{
	"users_email_key":             "email",
	"users_docking_point_id_fkey": "docking_point",
	"items_barcode_key":           "barcode",
	"shipments_tracking_code_key": "tracking_code",
	"shipments_item_id_fkey":      "item",
	"shipments_driver_id_fkey":    "driver",
	"notifications_user_id_fkey":  "user",
}

// refs holds the foreign keys a write tried to store, by wire field.
type refs map[string]*int64

func ref(id int64) *int64 {
	return &id
}

// fieldError converts a unique or foreign-key violation raised by a write
// into a *FieldError. It returns nil for any other error.
func fieldError(err error, entity string, written refs) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}

	field, ok := constraintFields[pgErr.ConstraintName]
	if !ok {
		return nil
	}

	switch pgErr.Code {
	case pgErrUniqueViolation:
		return &FieldError{
			Field:   field,
			Err:     ErrDuplicate,
			Message: fmt.Sprintf("%s with this %s already exists.", entity, strings.ReplaceAll(field, "_", " ")),
		}
	case pgErrForeignKeyViolation:
		pk := ""
		if id := written[field]; id != nil {
			pk = strconv.FormatInt(*id, 10)
		}
		return &FieldError{
			Field:   field,
			Err:     ErrInvalidReference,
			Message: fmt.Sprintf("Invalid pk %q - object does not exist.", pk),
		}
	}

	return nil
}
