package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/models"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})

	return &DB{
		DB:                 db,
		errorClassificator: NewPostgresErrorClassifier(),
		logger:             logger.Nop(),
	}, mock
}

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func TestCreateUser_Success(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	user := models.User{Email: "ana@example.com", Name: "Ana", Password: "plain", PasswordHash: "$argon2id$hash"}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.Email, user.Name, user.PasswordHash).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(1, now))

	created, err := repo.CreateUser(testContext(), user)
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.UserID)
	assert.Equal(t, now, created.CreatedAt)
	assert.Empty(t, created.Password)
}

func TestCreateUser_Errors(t *testing.T) {
	tests := []struct {
		name      string
		dbErr     error
		wantErr   error
		temporary bool
	}{
		{name: "duplicate email", dbErr: pgError(pgerrcode.UniqueViolation), wantErr: ErrEmailAlreadyExists},
		{name: "connection lost", dbErr: pgError(pgerrcode.ConnectionFailure), wantErr: ErrExecutingQuery, temporary: true},
		{name: "unexpected", dbErr: errors.New("db network error"), wantErr: ErrExecutingQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewUserRepository(db, logger.Nop())

			mock.ExpectQuery("INSERT INTO users").
				WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
				WillReturnError(tt.dbErr)

			_, err := repo.CreateUser(testContext(), models.User{Email: "ana@example.com"})
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.temporary, errors.Is(err, ErrTemporary))
		})
	}
}

func TestFindUserByEmail(t *testing.T) {
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db, logger.Nop())

		mock.ExpectQuery("SELECT id, email, name, password_hash, created_at").
			WithArgs("ana@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "password_hash", "created_at"}).
				AddRow(3, "ana@example.com", "Ana", "hash", now))

		found, err := repo.FindUserByEmail(testContext(), "ana@example.com")
		require.NoError(t, err)
		assert.Equal(t, models.User{UserID: 3, Email: "ana@example.com", Name: "Ana", PasswordHash: "hash", CreatedAt: now}, found)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db, logger.Nop())

		mock.ExpectQuery("SELECT id, email").
			WithArgs("nobody@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "password_hash", "created_at"}))

		_, err := repo.FindUserByEmail(testContext(), "nobody@example.com")
		assert.ErrorIs(t, err, ErrNoUserWasFound)
	})

	t.Run("by id no data found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db, logger.Nop())

		mock.ExpectQuery("WHERE id = ").
			WithArgs(int64(9)).
			WillReturnError(pgError(pgerrcode.NoDataFound))

		_, err := repo.FindUserByID(testContext(), 9)
		assert.ErrorIs(t, err, ErrNoUserWasFound)
	})
}

func TestUpdateUser(t *testing.T) {
	user := models.User{UserID: 3, Email: "new@example.com", Name: "Ana", PasswordHash: "hash"}

	t.Run("success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db, logger.Nop())

		now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
		mock.ExpectQuery("UPDATE users").
			WithArgs(user.Email, user.Name, user.PasswordHash, user.UserID).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

		updated, err := repo.UpdateUser(testContext(), user)
		require.NoError(t, err)
		assert.Equal(t, now, updated.CreatedAt)
		assert.Equal(t, "new@example.com", updated.Email)
	})

	t.Run("email taken", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db, logger.Nop())

		mock.ExpectQuery("UPDATE users").
			WillReturnError(pgError(pgerrcode.UniqueViolation))

		_, err := repo.UpdateUser(testContext(), user)
		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})

	t.Run("missing user", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db, logger.Nop())

		mock.ExpectQuery("UPDATE users").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.UpdateUser(testContext(), user)
		assert.ErrorIs(t, err, ErrNoUserWasFound)
	})
}

func TestDeleteUser(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db, logger.Nop())

		mock.ExpectExec("DELETE FROM users").WithArgs(int64(3)).WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.DeleteUser(testContext(), 3))
	})

	t.Run("missing", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db, logger.Nop())

		mock.ExpectExec("DELETE FROM users").WithArgs(int64(3)).WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.DeleteUser(testContext(), 3), ErrNoUserWasFound)
	})
}

func TestPostgresErrorClassifier(t *testing.T) {
	c := NewPostgresErrorClassifier()

	tests := []struct {
		name string
		err  error
		want ErrorClassification
	}{
		{name: "nil", err: nil, want: NonRetryable},
		{name: "plain error", err: errors.New("boom"), want: NonRetryable},
		{name: "connection failure", err: pgError(pgerrcode.ConnectionFailure), want: Retryable},
		{name: "serialization failure", err: pgError(pgerrcode.SerializationFailure), want: Retryable},
		{name: "deadlock", err: pgError(pgerrcode.DeadlockDetected), want: Retryable},
		{name: "cannot connect now", err: pgError(pgerrcode.CannotConnectNow), want: Retryable},
		{name: "wrapped retryable", err: errors.Join(errors.New("ctx"), pgError(pgerrcode.TransactionRollback)), want: Retryable},
		{name: "unique violation", err: pgError(pgerrcode.UniqueViolation), want: NonRetryable},
		{name: "syntax error", err: pgError(pgerrcode.SyntaxError), want: NonRetryable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.err))
		})
	}
}
