package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sirpyerre/hotel-booking/internal/core/domain"
)

var userCols = []string{"id", "name", "email", "password_hash", "phone", "role", "avatar", "is_active", "created_at", "updated_at"}

func TestUserRepository_Create_Duplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`INSERT INTO users`).WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.Create(context.Background(), &domain.User{ID: "u-1", Email: "a@example.com", Role: domain.RoleUser})
	assert.ErrorIs(t, err, domain.ErrUserExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	now := time.Now().UTC()
	mock.ExpectQuery(`FROM users WHERE email = \$1`).
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow("u-1", "Alice", "alice@example.com", "hash", "", "admin", "", true, now, now))

	u, err := repo.FindByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, u.Role)
	assert.True(t, u.IsActive)

	mock.ExpectQuery(`FROM users WHERE email = \$1`).
		WithArgs("ghost@example.com").
		WillReturnRows(sqlmock.NewRows(userCols))

	_, err = repo.FindByEmail(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepository_UpdateProfile(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	now := time.Now().UTC()
	mock.ExpectQuery(`UPDATE users SET name = \$1, phone = \$2, updated_at = \$3 WHERE id = \$4 RETURNING`).
		WithArgs("Bob", "555", sqlmock.AnyArg(), "u-1").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow("u-1", "Bob", "bob@example.com", "hash", "555", "user", "", true, now, now))

	name, phone := "Bob", "555"
	u, err := repo.UpdateProfile(context.Background(), "u-1", domain.ProfilePatch{Name: &name, Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "Bob", u.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).WithArgs("u-1").WillReturnError(&pq.Error{Code: "23503"})
	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).WithArgs("u-2").WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), "u-1"), domain.ErrUserHasBookings)
	assert.ErrorIs(t, repo.Delete(context.Background(), "u-2"), domain.ErrUserNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_SetActive(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	now := time.Now().UTC()
	mock.ExpectQuery(`UPDATE users SET is_active = \$1`).
		WithArgs(false, sqlmock.AnyArg(), "u-1").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow("u-1", "Bob", "bob@example.com", "hash", "", "user", "", false, now, now))

	u, err := repo.SetActive(context.Background(), "u-1", false)
	require.NoError(t, err)
	assert.False(t, u.IsActive)
}
