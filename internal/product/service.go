package product

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"rewear-be/internal/logger"
	"rewear-be/internal/photo"
	"rewear-be/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, input CreateInput) (Product, error)
	List(ctx context.Context, filter ListFilter) ([]Product, error)
	Search(ctx context.Context, filter SearchFilter) ([]Detail, error)
	GetDetail(ctx context.Context, id int) (Detail, error)
	Delete(ctx context.Context, id int) error
}

// CreateInput carries the upload form. Photos maps view name to a
// base64-encoded PNG payload; front is mandatory.
type CreateInput struct {
	UserID      int
	ProductName string
	Price       float64
	Description *string
	Category    *string
	Size        *string
	Material    *string
	Quantity    int
	Photos      map[string]string
}

type service struct {
	repo    Repository
	storage storage.Gateway
}

func NewService(repo Repository, gw storage.Gateway) Service {
	return &service{repo: repo, storage: gw}
}

// Create runs the product upload write sequence: upload each present
// view in canonical order, then insert the row. A failure at any step
// deletes every file uploaded so far before surfacing the error.
func (s *service) Create(ctx context.Context, input CreateInput) (Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.Int("user_id", input.UserID),
		zap.String("product_name", input.ProductName),
	)

	if input.ProductName == "" || input.UserID == 0 || input.Price <= 0 {
		return Product{}, ErrMissingRequiredFields
	}
	if input.Photos["front"] == "" {
		return Product{}, ErrFrontPhotoRequired
	}
	if input.Quantity <= 0 {
		input.Quantity = 1
	}

	uploaded := map[string]string{} // view → public URL
	uploadedFiles := []string{}     // object names, in upload order

	rollbackUploads := func() {
		for i := len(uploadedFiles) - 1; i >= 0; i-- {
			if err := s.storage.Remove(ctx, storage.BucketProductPhotos, uploadedFiles[i]); err != nil {
				log.Warn("failed to remove uploaded photo during rollback",
					zap.String("file", uploadedFiles[i]),
					zap.Error(err),
				)
			}
		}
	}

	for _, view := range photo.Views {
		payload := input.Photos[view]
		if payload == "" {
			continue
		}

		data, err := decodeBase64Photo(payload)
		if err != nil {
			rollbackUploads()
			return Product{}, fmt.Errorf("%w (%s)", ErrInvalidPhotoPayload, view)
		}

		fileName := fmt.Sprintf("%d_%d_%s_%s.png",
			input.UserID, time.Now().UnixMilli(), randomSuffix(), view)

		url, err := s.storage.Upload(ctx, storage.BucketProductPhotos, fileName, data, "image/png", false)
		if err != nil {
			log.Error("photo upload failed",
				zap.String("view", view),
				zap.Error(err),
			)
			rollbackUploads()
			return Product{}, fmt.Errorf("failed to upload %s photo: %w", view, err)
		}

		uploaded[view] = url
		uploadedFiles = append(uploadedFiles, fileName)
	}

	p, err := s.repo.Insert(ctx, InsertParams{
		UserID:      input.UserID,
		ProductName: input.ProductName,
		Price:       input.Price,
		Description: input.Description,
		Category:    input.Category,
		Size:        input.Size,
		Material:    input.Material,
		Photo:       photo.Encode(uploaded),
		Quantity:    input.Quantity,
	})
	if err != nil {
		rollbackUploads()
		return Product{}, fmt.Errorf("database error: %w", err)
	}

	p.Photos = uploaded

	log.Info("product created",
		zap.Int("product_id", p.ID),
		zap.Int("photo_count", len(uploaded)),
	)

	return p, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]Product, error) {
	products, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	for i := range products {
		products[i].Photos = photo.Decode(products[i].Photo)
	}
	return products, nil
}

func (s *service) Search(ctx context.Context, filter SearchFilter) ([]Detail, error) {
	results, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	for i := range results {
		results[i].Photos = photo.Decode(results[i].Photo)
	}
	return results, nil
}

func (s *service) GetDetail(ctx context.Context, id int) (Detail, error) {
	d, err := s.repo.GetDetail(ctx, id)
	if err != nil {
		return d, err
	}

	d.Photos = photo.Decode(d.Photo)
	return d, nil
}

// Delete removes the row first, then the stored photo files. File
// removals are best effort; a dangling object is preferable to a
// dangling listing.
func (s *service) Delete(ctx context.Context, id int) error {
	log := logger.FromCtx(ctx).With(zap.Int("product_id", id))

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	for view, url := range photo.Decode(p.Photo) {
		fileName := storage.FileNameFromURL(url)
		if err := s.storage.Remove(ctx, storage.BucketProductPhotos, fileName); err != nil {
			log.Warn("failed to remove photo of deleted product",
				zap.String("view", view),
				zap.String("file", fileName),
				zap.Error(err),
			)
		}
	}

	log.Info("product deleted")
	return nil
}

func decodeBase64Photo(payload string) ([]byte, error) {
	// Tolerate data-URL wrapped payloads from the web client.
	if idx := strings.Index(payload, ";base64,"); idx >= 0 {
		payload = payload[idx+len(";base64,"):]
	}
	return base64.StdEncoding.DecodeString(payload)
}

func randomSuffix() string {
	return uuid.NewString()[:6]
}
