package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"omenblog/internal/apperror"
	"omenblog/internal/models"
)

func setupMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	t.Cleanup(func() { sqlxDB.Close() })

	return sqlxDB, mock
}

var userColumns = []string{"user_id", "username", "password_hash", "role", "created_at"}

func TestUserRepository_CreateUser(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("creates a standard user with a hashed password", func(t *testing.T) {
		user := &models.User{Username: "jon"}

		mock.ExpectExec("INSERT INTO users").
			WithArgs(sqlmock.AnyArg(), "jon", sqlmock.AnyArg(), models.RoleStandard, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.CreateUser(ctx, user, "password123")

		require.NoError(t, err)
		assert.NotEmpty(t, user.UserID)
		assert.NotEqual(t, "password123", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate username is a conflict", func(t *testing.T) {
		user := &models.User{Username: "jon"}

		mock.ExpectExec("INSERT INTO users").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "users_username_key"})

		err := repo.CreateUser(ctx, user, "password123")

		require.Error(t, err)
		assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
		assert.Equal(t, "username already in use", err.Error())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("password longer than 72 bytes is a validation error", func(t *testing.T) {
		err := repo.CreateUser(ctx, &models.User{Username: "amy"}, strings.Repeat("é", 72))

		require.Error(t, err)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("other database errors are wrapped", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO users").
			WillReturnError(errors.New("connection reset"))

		err := repo.CreateUser(ctx, &models.User{Username: "amy"}, "password123")

		require.Error(t, err)
		assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
		assert.Contains(t, err.Error(), "creating user")
	})
}

func TestUserRepository_GetUserByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(userColumns).
			AddRow("u-1", "jon", "hash", models.RoleAdmin, time.Now())

		mock.ExpectQuery("SELECT (.+) FROM users WHERE user_id").
			WithArgs("u-1").
			WillReturnRows(rows)

		user, err := repo.GetUserByID(ctx, "u-1")

		require.NoError(t, err)
		assert.Equal(t, "jon", user.Username)
		assert.Equal(t, models.RoleAdmin, user.Role)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE user_id").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		user, err := repo.GetUserByID(ctx, "missing")

		assert.Nil(t, user)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_VerifyPassword(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("right-password"), bcrypt.MinCost)
	require.NoError(t, err)

	expectUser := func() {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE username").
			WithArgs("jon").
			WillReturnRows(sqlmock.NewRows(userColumns).
				AddRow("u-1", "jon", string(hash), models.RoleStandard, time.Now()))
	}

	t.Run("correct password", func(t *testing.T) {
		expectUser()

		user, err := repo.VerifyPassword(ctx, "jon", "right-password")

		require.NoError(t, err)
		assert.Equal(t, "u-1", user.UserID)
	})

	t.Run("wrong password and unknown user fail the same way", func(t *testing.T) {
		expectUser()
		_, wrongPassword := repo.VerifyPassword(ctx, "jon", "wrong-password")

		mock.ExpectQuery("SELECT (.+) FROM users WHERE username").
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)
		_, unknownUser := repo.VerifyPassword(ctx, "ghost", "wrong-password")

		assert.Equal(t, ErrInvalidCredentials, wrongPassword)
		assert.Equal(t, ErrInvalidCredentials, unknownUser)
	})

	t.Run("database failure is not reported as bad credentials", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE username").
			WithArgs("jon").
			WillReturnError(errors.New("timeout"))

		_, err := repo.VerifyPassword(ctx, "jon", "right-password")

		require.Error(t, err)
		assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
