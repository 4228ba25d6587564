package grading

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"rewear-be/internal/logger"
	"rewear-be/internal/photo"
	"rewear-be/internal/product"

	"go.uber.org/zap"
)

const rubricPrompt = `You are a quality inspector for a second-hand clothing marketplace.
Inspect the attached product photos and assign one condition grade:

A - like new, no visible wear or defects
B - lightly used, minor wear, fully wearable
C - clearly used, visible wear or small defects, still wearable
D - heavily worn or damaged, limited wearability

Respond with JSON only, no surrounding text, in exactly this shape:
{"grade":"A|B|C|D","reason":"one sentence","details":{"condition":"short summary","defects":["list of defects, empty if none"],"wearability":"short assessment"}}

Product: %s
Category: %s
Material: %s`

type Service interface {
	GradeProduct(ctx context.Context, productID int) (Result, error)
	CheckGrade(ctx context.Context, productID int) (*string, error)
}

type service struct {
	productRepo product.Repository
	model       Model
	httpClient  *http.Client
}

func NewService(productRepo product.Repository, model Model) Service {
	return &service{
		productRepo: productRepo,
		model:       model,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
	}
}

// GradeProduct fetches the product's photos, asks the model for a
// verdict, and persists the grade. The product status is left alone;
// only the grade column changes.
func (s *service) GradeProduct(ctx context.Context, productID int) (Result, error) {
	log := logger.FromCtx(ctx).With(zap.Int("product_id", productID))

	p, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return Result{}, err
	}

	images := s.fetchPhotos(ctx, photo.Decode(p.Photo))
	if len(images) == 0 {
		return Result{}, ErrNoPhotos
	}

	prompt := fmt.Sprintf(rubricPrompt,
		p.ProductName, strValue(p.Category), strValue(p.Material))

	raw, err := s.model.Generate(ctx, prompt, images)
	if err != nil {
		log.Error("model call failed", zap.Error(err))
		return Result{}, fmt.Errorf("failed to grade product: %w", err)
	}

	result, err := parseResult(raw)
	if err != nil {
		log.Error("unparseable model response", zap.String("raw", raw))
		return Result{}, err
	}

	if err := s.productRepo.UpdateGrade(ctx, productID, result.Grade); err != nil {
		return Result{}, fmt.Errorf("failed to save grade: %w", err)
	}

	log.Info("product graded", zap.String("grade", result.Grade))
	return result, nil
}

func (s *service) CheckGrade(ctx context.Context, productID int) (*string, error) {
	p, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return p.Grade, nil
}

// fetchPhotos downloads each photo view in display order. A view that
// fails to download is skipped with a log entry rather than failing the
// whole grading run.
func (s *service) fetchPhotos(ctx context.Context, photos map[string]string) []ImagePart {
	log := logger.FromCtx(ctx)

	images := make([]ImagePart, 0, len(photos))
	for _, view := range photo.Views {
		url, ok := photos[view]
		if !ok || url == "" {
			continue
		}

		img, err := s.fetchOne(ctx, url)
		if err != nil {
			log.Warn("skipping unfetchable photo",
				zap.String("view", view),
				zap.String("url", url),
				zap.Error(err),
			)
			continue
		}
		images = append(images, img)
	}
	return images
}

func (s *service) fetchOne(ctx context.Context, url string) (ImagePart, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ImagePart{}, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return ImagePart{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ImagePart{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return ImagePart{}, err
	}

	mimeType := resp.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "image/png"
	}
	return ImagePart{MIMEType: mimeType, Data: data}, nil
}

// parseResult strips markdown code fences the model sometimes wraps its
// JSON in, then unmarshals and validates the grade.
func parseResult(raw string) (Result, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var result Result
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return Result{}, &InvalidResponseError{Raw: raw}
	}

	if !product.ValidGrades[result.Grade] {
		return Result{}, &InvalidResponseError{Raw: raw}
	}
	return result, nil
}

func strValue(s *string) string {
	if s == nil {
		return "unspecified"
	}
	return *s
}
