package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shipment-tracking/internal/models"
)

var userCols = []string{"id", "docking_point_id", "email", "phone_number", "password", "role", "status"}

func TestUserGetByIDWithoutDockingPoint(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows(userCols).
			AddRow(int64(1), (*int64)(nil), "d@example.com", "+100", "secret", "driver", "active"))

	u, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)

	assert.Nil(t, u.DockingPointID)
	assert.Equal(t, models.RoleDriver, u.Role)
	assert.Equal(t, models.UserActive, u.Status)
	assert.Equal(t, "secret", u.Password)
}

func TestUserGetByIDRejectsCorruptRole(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows(userCols).
			AddRow(int64(1), ref(2), "d@example.com", "+100", "secret", "pilot", "active"))

	_, err := repo.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, models.ErrUnknownCode)
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pgconn.PgError{Code: pgErrUniqueViolation, ConstraintName: "users_email_key"})

	err := repo.Create(context.Background(), &models.User{
		Email: "a@example.com", Role: models.RoleAdmin, Status: models.UserActive,
	})

	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "email", fe.Field)
	assert.Equal(t, "user with this email already exists.", fe.Message)
}

func TestUserCreateUnknownDockingPoint(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pgconn.PgError{Code: pgErrForeignKeyViolation, ConstraintName: "users_docking_point_id_fkey"})

	err := repo.Create(context.Background(), &models.User{
		DockingPointID: ref(99), Role: models.RoleManager, Status: models.UserActive,
	})

	require.ErrorIs(t, err, ErrInvalidReference)
	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "docking_point", fe.Field)
	assert.Equal(t, `Invalid pk "99" - object does not exist.`, fe.Message)
}

func TestUserDeleteClearsDriverAndCascadesNotifications(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE shipments SET driver_id = NULL WHERE driver_id = $1")).
		WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM notifications WHERE user_id = $1")).
		WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE id = $1")).
		WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDockingPointDeleteClearsUsers(t *testing.T) {
	mock := newMock(t)
	repo := NewDockingPointRepository(mock)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET docking_point_id = NULL WHERE docking_point_id = $1")).
		WithArgs(int64(2)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 4))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM docking_points WHERE id = $1")).
		WithArgs(int64(2)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), 2))
	assert.NoError(t, mock.ExpectationsWereMet())
}
