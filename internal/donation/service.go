package donation

import (
	"context"
	"fmt"
	"time"

	"rewear-be/internal/logger"
	"rewear-be/internal/storage"
	"rewear-be/internal/user"

	"go.uber.org/zap"
)

type Service interface {
	CreateCampaign(ctx context.Context, input CreateCampaignInput) (int, error)
	Contribute(ctx context.Context, input ContributeInput) (Contribution, error)
	SubmitReport(ctx context.Context, input SubmitReportInput) error
	List(ctx context.Context, status *string) ([]Donation, error)
	Get(ctx context.Context, id int) (Donation, error)
	Contributions(ctx context.Context, donationID int) ([]Contribution, error)
}

type service struct {
	repo     Repository
	userRepo user.Repository
	storage  storage.Gateway
	now      func() time.Time
}

func NewService(repo Repository, userRepo user.Repository, gw storage.Gateway) Service {
	return &service{repo: repo, userRepo: userRepo, storage: gw, now: time.Now}
}

// CreateCampaign runs the campaign write sequence: upload the campaign
// photo, then insert organization and donation transactionally. If the
// database step fails the uploaded photo is removed again.
func (s *service) CreateCampaign(ctx context.Context, input CreateCampaignInput) (int, error) {
	log := logger.FromCtx(ctx).With(
		zap.Int("creator_id", input.CreatorID),
		zap.String("campaign", input.CampaignName),
	)

	if input.CreatorID == 0 || input.OrganizationName == "" || input.OrganizationLicense == "" ||
		input.CampaignName == "" || input.TargetQuantity <= 0 ||
		input.EventDate.IsZero() || input.DonationDeadline.IsZero() {
		return 0, ErrMissingFields
	}
	if len(input.Photo) == 0 {
		return 0, ErrPhotoRequired
	}

	today := truncateToDay(s.now())
	if input.EventDate.Before(today) {
		return 0, ErrEventDateInPast
	}
	if input.DonationDeadline.Before(today) {
		return 0, ErrDeadlineInPast
	}
	if !input.DonationDeadline.Before(input.EventDate) {
		return 0, ErrDeadlineAfterEvent
	}

	fileName := fmt.Sprintf("campaign-%d-%s", s.now().UnixMilli(), input.PhotoName)
	photoURL, err := s.storage.Upload(ctx, storage.BucketDonationPhotos, fileName,
		input.Photo, input.PhotoMimeType, false)
	if err != nil {
		log.Error("failed to upload campaign photo", zap.Error(err))
		return 0, fmt.Errorf("failed to upload photo: %w", err)
	}

	donationID, err := s.repo.CreateCampaignTx(ctx, CreateCampaignParams{
		CreatorID:           input.CreatorID,
		OrganizationName:    input.OrganizationName,
		OrganizationLicense: input.OrganizationLicense,
		DonationTarget:      input.DonationTarget,
		DonationDesc:        input.Description,
		TargetQuantity:      input.TargetQuantity,
		EventDate:           input.EventDate,
		DonationDeadline:    input.DonationDeadline,
		CampaignPhotoURL:    photoURL,
	})
	if err != nil {
		s.removeUploaded(ctx, fileName)
		return 0, fmt.Errorf("failed to create donation: %w", err)
	}

	log.Info("donation campaign created", zap.Int("donation_id", donationID))
	return donationID, nil
}

// Contribute uploads the proof photo, inserts the contribution, then
// applies the quantity to the campaign's running total. A failure after
// the insert is surfaced but the contribution row stays; the donor's
// lifetime counter bump is fire and forget.
func (s *service) Contribute(ctx context.Context, input ContributeInput) (Contribution, error) {
	log := logger.FromCtx(ctx).With(
		zap.Int("donation_id", input.DonationID),
		zap.Int("donor_id", input.DonorID),
		zap.Int("quantity", input.Quantity),
	)

	if input.DonorID == 0 {
		return Contribution{}, ErrMissingFields
	}
	if input.Quantity <= 0 {
		return Contribution{}, ErrInvalidQuantity
	}
	if len(input.Photo) == 0 {
		return Contribution{}, ErrPhotoRequired
	}

	// Reject unknown campaigns before any side effect.
	if _, err := s.repo.GetByID(ctx, input.DonationID); err != nil {
		return Contribution{}, err
	}

	fileName := fmt.Sprintf("contribution-%d-%s", s.now().UnixMilli(), input.PhotoName)
	photoURL, err := s.storage.Upload(ctx, storage.BucketDonationPhotos, fileName,
		input.Photo, input.PhotoMimeType, false)
	if err != nil {
		log.Error("failed to upload contribution photo", zap.Error(err))
		return Contribution{}, fmt.Errorf("failed to upload photo: %w", err)
	}

	contribution, err := s.repo.InsertContribution(ctx, input.DonationID, input.DonorID, input.Quantity, photoURL)
	if err != nil {
		s.removeUploaded(ctx, fileName)
		return Contribution{}, fmt.Errorf("failed to add contribution: %w", err)
	}

	current, status, err := s.repo.ApplyContribution(ctx, input.DonationID, input.Quantity)
	if err != nil {
		// The contribution row already exists at this point and is
		// intentionally not rolled back.
		log.Error("failed to update donation quantity", zap.Error(err))
		return Contribution{}, fmt.Errorf("failed to update donation: %w", err)
	}

	if err := s.userRepo.IncrementContribution(ctx, input.DonorID, input.Quantity); err != nil {
		log.Warn("failed to update donor lifetime contribution", zap.Error(err))
	}

	log.Info("contribution added",
		zap.Int("contribution_id", contribution.ID),
		zap.Int("current_quantity", current),
		zap.String("donation_status", status),
	)

	return contribution, nil
}

// SubmitReport enforces creator-only, write-once report semantics.
func (s *service) SubmitReport(ctx context.Context, input SubmitReportInput) error {
	log := logger.FromCtx(ctx).With(
		zap.Int("donation_id", input.DonationID),
		zap.Int("requester_id", input.RequesterID),
	)

	if input.Description == "" {
		return ErrMissingFields
	}
	if len(input.Photo) == 0 {
		return ErrPhotoRequired
	}

	d, err := s.repo.GetByID(ctx, input.DonationID)
	if err != nil {
		return err
	}

	if d.CreatorID != input.RequesterID {
		return ErrNotCreator
	}
	if d.ReportSubmittedAt != nil {
		return ErrReportAlreadySubmitted
	}

	fileName := fmt.Sprintf("report-%d-%s", s.now().UnixMilli(), input.PhotoName)
	photoURL, err := s.storage.Upload(ctx, storage.BucketDonationPhotos, fileName,
		input.Photo, input.PhotoMimeType, false)
	if err != nil {
		log.Error("failed to upload report photo", zap.Error(err))
		return fmt.Errorf("failed to upload photo: %w", err)
	}

	if err := s.repo.SubmitReport(ctx, input.DonationID, input.Description, photoURL, s.now()); err != nil {
		s.removeUploaded(ctx, fileName)
		return fmt.Errorf("failed to submit report: %w", err)
	}

	log.Info("donation report submitted")
	return nil
}

func (s *service) List(ctx context.Context, status *string) ([]Donation, error) {
	return s.repo.List(ctx, status)
}

func (s *service) Get(ctx context.Context, id int) (Donation, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Contributions(ctx context.Context, donationID int) ([]Contribution, error) {
	return s.repo.ListContributions(ctx, donationID)
}

// removeUploaded is the compensating delete for an uploaded photo; its
// own failure is logged and swallowed.
func (s *service) removeUploaded(ctx context.Context, fileName string) {
	if err := s.storage.Remove(ctx, storage.BucketDonationPhotos, fileName); err != nil {
		logger.FromCtx(ctx).Warn("failed to remove uploaded photo during rollback",
			zap.String("file", fileName),
			zap.Error(err),
		)
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
