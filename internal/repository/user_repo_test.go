package repository

import (
	"context"
	"testing"
	"time"

	"github.com/hasan-mia/the-x-tribune-server/internal/model"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userRows(u *model.User) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "email", "first_name", "last_name", "password_hash",
		"avatar", "phone", "address", "status", "created_at",
		"role_id", "role_name", "role_score",
	}).AddRow(
		u.ID, u.Email, u.FirstName, u.LastName, u.PasswordHash,
		u.Avatar, u.Phone, u.Address, u.Status, u.CreatedAt,
		u.Role.ID, u.Role.Name, u.Role.Score,
	)
}

func sampleUser() *model.User {
	return &model.User{
		ID:           1,
		Email:        "jane@example.com",
		FirstName:    "Jane",
		LastName:     "Doe",
		PasswordHash: "$2a$10$hash",
		Role:         model.Role{ID: 2, Name: model.RoleNameAdmin, Score: 10},
		Status:       model.StatusActive,
		CreatedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestUserRepository_FindByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	want := sampleUser()
	mock.ExpectQuery(`u.email = \$1`).
		WithArgs(want.Email).
		WillReturnRows(userRows(want))

	repo := NewUserRepository(mock)
	got, err := repo.FindByEmail(context.Background(), want.Email)

	assert.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, model.RoleNameAdmin, got.Role.Name)
	assert.Equal(t, 10, got.Role.Score)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`u.email = \$1`).
		WithArgs("nobody@example.com").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "email", "first_name", "last_name", "password_hash",
			"avatar", "phone", "address", "status", "created_at",
			"role_id", "role_name", "role_score",
		}))

	repo := NewUserRepository(mock)
	got, err := repo.FindByEmail(context.Background(), "nobody@example.com")

	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	u := sampleUser()
	u.ID = 0
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(u.Email, u.FirstName, u.LastName, u.PasswordHash,
			u.Role.ID, u.Avatar, u.Phone, u.Address, u.Status, u.CreatedAt).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(42))

	repo := NewUserRepository(mock)
	err = repo.Create(context.Background(), u)

	assert.NoError(t, err)
	assert.Equal(t, 42, u.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateStatus(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`UPDATE users SET status = \$1 WHERE id = \$2`).
		WithArgs(model.StatusBlocked, 1).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	repo := NewUserRepository(mock)
	err = repo.UpdateStatus(context.Background(), 1, model.StatusBlocked)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateStatus_NoSuchUser(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`UPDATE users SET status = \$1 WHERE id = \$2`).
		WithArgs(model.StatusActive, 99).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := NewUserRepository(mock)
	err = repo.UpdateStatus(context.Background(), 99, model.StatusActive)

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	want := sampleUser()
	mock.ExpectQuery(`ORDER BY u.created_at DESC`).
		WillReturnRows(userRows(want))

	repo := NewUserRepository(mock)
	users, err := repo.List(context.Background())

	assert.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, want.Email, users[0].Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}
