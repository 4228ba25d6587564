package user

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userCols = []string{
	"user_id", "email", "password", "user_name", "name", "address",
	"location", "profile_photo_url", "rating", "total_contrib", "created_at",
}

func userRow(id int, email string) *sqlmock.Rows {
	return sqlmock.NewRows(userCols).
		AddRow(id, email, "hashed", "tester", nil, nil, nil, nil, nil, 0, time.Now())
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WithArgs("a@b.com", "hashed", "tester").
			WillReturnRows(userRow(1, "a@b.com"))

		u, err := repo.Create(context.Background(), "a@b.com", "hashed", "tester")
		assert.NoError(t, err)
		assert.Equal(t, 1, u.ID)
		assert.Equal(t, "a@b.com", u.Email)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WillReturnError(errors.New("db error"))

		_, err := repo.Create(context.Background(), "a@b.com", "hashed", "tester")
		assert.Error(t, err)
	})
}

func TestRepository_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
			WithArgs("a@b.com").
			WillReturnRows(userRow(1, "a@b.com"))

		u, err := repo.FindByEmail(context.Background(), "a@b.com")
		assert.NoError(t, err)
		assert.Equal(t, "a@b.com", u.Email)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
			WithArgs("missing@b.com").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.FindByEmail(context.Background(), "missing@b.com")
		assert.ErrorIs(t, err, ErrEmailNotFound)
	})
}

func TestRepository_EmailExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Exists", func(t *testing.T) {
		mock.ExpectQuery("SELECT user_id FROM users WHERE email").
			WithArgs("a@b.com").
			WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(1))

		exists, err := repo.EmailExists(context.Background(), "a@b.com")
		assert.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("Missing", func(t *testing.T) {
		mock.ExpectQuery("SELECT user_id FROM users WHERE email").
			WithArgs("x@b.com").
			WillReturnError(sql.ErrNoRows)

		exists, err := repo.EmailExists(context.Background(), "x@b.com")
		assert.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestRepository_UpdateProfile(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("PartialUpdate", func(t *testing.T) {
		name := "New Name"
		mock.ExpectQuery(`UPDATE users SET user_name = \$1 WHERE user_id = \$2`).
			WithArgs(name, 1).
			WillReturnRows(userRow(1, "a@b.com"))

		_, err := repo.UpdateProfile(context.Background(), 1, UpdateProfileParams{UserName: &name})
		assert.NoError(t, err)
	})

	t.Run("NoFields", func(t *testing.T) {
		_, err := repo.UpdateProfile(context.Background(), 1, UpdateProfileParams{})
		assert.ErrorIs(t, err, ErrNoUpdateFields)
	})
}

func TestRepository_IncrementContribution(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectExec(`UPDATE users SET total_contrib = COALESCE\(total_contrib, 0\) \+ \$1`).
		WithArgs(5, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.IncrementContribution(context.Background(), 3, 5)
	assert.NoError(t, err)
}
