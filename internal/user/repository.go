package user

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"rewear-be/internal/logger"

	"go.uber.org/zap"
)

const userColumns = `user_id, email, password, user_name, name, address, location, profile_photo_url, rating, total_contrib, created_at`

type Repository interface {
	Create(ctx context.Context, email, password, userName string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	GetByID(ctx context.Context, id int) (User, error)
	UpdateProfile(ctx context.Context, id int, params UpdateProfileParams) (User, error)
	UpdateAddress(ctx context.Context, id int, address, location string) (User, error)
	IncrementContribution(ctx context.Context, id, quantity int) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, email, password, userName string) (User, error) {
	log := logger.FromCtx(ctx)

	var u User
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (email, password, user_name, total_contrib)
		 VALUES ($1, $2, $3, 0)
		 RETURNING `+userColumns,
		email, password, userName,
	).Scan(
		&u.ID, &u.Email, &u.Password, &u.UserName, &u.Name,
		&u.Address, &u.Location, &u.ProfilePhotoURL, &u.Rating,
		&u.TotalContrib, &u.CreatedAt,
	)

	if err != nil {
		log.Error("db: failed to insert user",
			zap.String("email", email),
			zap.Error(err),
		)
	}

	return u, err
}

func (r *repository) FindByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		email,
	).Scan(
		&u.ID, &u.Email, &u.Password, &u.UserName, &u.Name,
		&u.Address, &u.Location, &u.ProfilePhotoURL, &u.Rating,
		&u.TotalContrib, &u.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return u, ErrEmailNotFound
	}
	return u, err
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	var id int
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id FROM users WHERE email = $1`,
		email,
	).Scan(&id)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (User, error) {
	var u User
	err := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE user_id = $1`,
		id,
	).Scan(
		&u.ID, &u.Email, &u.Password, &u.UserName, &u.Name,
		&u.Address, &u.Location, &u.ProfilePhotoURL, &u.Rating,
		&u.TotalContrib, &u.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return u, ErrUserNotFound
	}
	return u, err
}

// UpdateProfile builds the SET clause from the fields actually provided.
// Password and email are never updatable through this path.
func (r *repository) UpdateProfile(ctx context.Context, id int, params UpdateProfileParams) (User, error) {
	set := make([]string, 0, 5)
	args := make([]interface{}, 0, 6)

	add := func(col string, val interface{}) {
		args = append(args, val)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if params.UserName != nil {
		add("user_name", *params.UserName)
	}
	if params.Name != nil {
		add("name", *params.Name)
	}
	if params.Address != nil {
		add("address", *params.Address)
	}
	if params.Location != nil {
		add("location", *params.Location)
	}
	if params.ProfilePhotoURL != nil {
		add("profile_photo_url", *params.ProfilePhotoURL)
	}

	if len(set) == 0 {
		return User{}, ErrNoUpdateFields
	}

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE users SET %s WHERE user_id = $%d RETURNING `+userColumns,
		strings.Join(set, ", "), len(args),
	)

	var u User
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&u.ID, &u.Email, &u.Password, &u.UserName, &u.Name,
		&u.Address, &u.Location, &u.ProfilePhotoURL, &u.Rating,
		&u.TotalContrib, &u.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return u, ErrUserNotFound
	}
	return u, err
}

func (r *repository) UpdateAddress(ctx context.Context, id int, address, location string) (User, error) {
	var u User
	err := r.db.QueryRowContext(ctx,
		`UPDATE users SET address = $1, location = $2 WHERE user_id = $3 RETURNING `+userColumns,
		address, location, id,
	).Scan(
		&u.ID, &u.Email, &u.Password, &u.UserName, &u.Name,
		&u.Address, &u.Location, &u.ProfilePhotoURL, &u.Rating,
		&u.TotalContrib, &u.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return u, ErrUserNotFound
	}
	return u, err
}

// IncrementContribution bumps the lifetime contribution counter with an
// atomic add so concurrent contributions never lose an increment.
func (r *repository) IncrementContribution(ctx context.Context, id, quantity int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET total_contrib = COALESCE(total_contrib, 0) + $1 WHERE user_id = $2`,
		quantity, id,
	)
	return err
}
