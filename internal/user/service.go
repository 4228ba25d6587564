package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rewear-be/internal/logger"
	"rewear-be/internal/storage"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Service interface {
	Signup(ctx context.Context, email, password, userName string) (User, string, error)
	Login(ctx context.Context, email, password string) (User, string, error)
	CheckEmail(ctx context.Context, email string) (bool, error)
	GetByID(ctx context.Context, id int) (User, error)
	UpdateProfile(ctx context.Context, id int, input UpdateProfileInput) (User, error)
	UpdateAddress(ctx context.Context, id int, address, location string) (User, error)
}

// UpdateProfileInput carries the profile edit form; ProfilePhoto is set
// only when the multipart request attached a new photo.
type UpdateProfileInput struct {
	UserName *string
	Name     *string
	Address  *string
	Location *string

	ProfilePhoto     []byte
	ProfilePhotoExt  string
	ProfilePhotoMime string
}

type service struct {
	repo    Repository
	storage storage.Gateway
}

func NewService(repo Repository, gw storage.Gateway) Service {
	return &service{repo: repo, storage: gw}
}

func (s *service) Signup(ctx context.Context, email, password, userName string) (User, string, error) {
	log := logger.FromCtx(ctx)

	if email == "" || password == "" || userName == "" {
		return User{}, "", ErrMissingFields
	}

	hashed, err := HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return User{}, "", err
	}

	u, err := s.repo.Create(ctx, email, hashed, userName)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == PgUniqueViolation {
			return User{}, "", ErrEmailExists
		}
		if strings.Contains(err.Error(), "users_email_key") {
			return User{}, "", ErrEmailExists
		}
		return User{}, "", err
	}

	token, err := GenerateJWT(u.ID, u.Email)
	if err != nil {
		log.Error("failed to generate jwt", zap.Int("user_id", u.ID), zap.Error(err))
		return User{}, "", err
	}

	log.Info("signup completed",
		zap.Int("user_id", u.ID),
		zap.String("email", email),
	)

	return u, token, nil
}

func (s *service) Login(ctx context.Context, email, password string) (User, string, error) {
	if email == "" || password == "" {
		return User{}, "", ErrMissingCredentials
	}

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return User{}, "", err
	}

	if !CheckPasswordHash(password, u.Password) {
		return User{}, "", ErrWrongPassword
	}

	token, err := GenerateJWT(u.ID, u.Email)
	return u, token, err
}

func (s *service) CheckEmail(ctx context.Context, email string) (bool, error) {
	return s.repo.EmailExists(ctx, email)
}

func (s *service) GetByID(ctx context.Context, id int) (User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateProfile(ctx context.Context, id int, input UpdateProfileInput) (User, error) {
	log := logger.FromCtx(ctx).With(zap.Int("user_id", id))

	params := UpdateProfileParams{
		UserName: input.UserName,
		Name:     input.Name,
		Address:  input.Address,
		Location: input.Location,
	}

	if len(input.ProfilePhoto) > 0 {
		ext := input.ProfilePhotoExt
		if ext == "" {
			ext = "png"
		}
		fileName := fmt.Sprintf("%d_%d.%s", id, time.Now().UnixMilli(), ext)

		url, err := s.storage.Upload(ctx, storage.BucketProfilePhotos, fileName,
			input.ProfilePhoto, input.ProfilePhotoMime, true)
		if err != nil {
			log.Error("failed to upload profile photo", zap.Error(err))
			return User{}, fmt.Errorf("failed to upload profile photo: %w", err)
		}

		params.ProfilePhotoURL = &url
	}

	if !params.HasAnyField() {
		return User{}, ErrNoUpdateFields
	}

	return s.repo.UpdateProfile(ctx, id, params)
}

func (s *service) UpdateAddress(ctx context.Context, id int, address, location string) (User, error) {
	address = strings.TrimSpace(address)
	location = strings.TrimSpace(location)

	if len(address) < 10 {
		return User{}, ErrAddressTooShort
	}
	if len(location) < 3 {
		return User{}, ErrLocationTooShort
	}

	return s.repo.UpdateAddress(ctx, id, address, location)
}
