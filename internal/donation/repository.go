package donation

import (
	"context"
	"database/sql"
	"time"

	"rewear-be/internal/logger"

	"go.uber.org/zap"
)

const donationColumns = `d.donation_id, d.organization_id, d.creator_id, d.donation_target,
	d.donation_desc, d.target_quantity, d.current_quantity, d.donation_status,
	d.organization_license, d.event_date, d.donation_deadline, d.campaign_photo_url,
	d.report_description, d.report_photo_url, d.report_submitted_at`

type Repository interface {
	CreateCampaignTx(ctx context.Context, params CreateCampaignParams) (int, error)
	GetByID(ctx context.Context, id int) (Donation, error)
	List(ctx context.Context, status *string) ([]Donation, error)
	InsertContribution(ctx context.Context, donationID, donorID, quantity int, photoURL string) (Contribution, error)
	ApplyContribution(ctx context.Context, donationID, quantity int) (current int, status string, err error)
	ListContributions(ctx context.Context, donationID int) ([]Contribution, error)
	SubmitReport(ctx context.Context, id int, description, photoURL string, submittedAt time.Time) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// CreateCampaignTx inserts the organization and the donation that
// references it in one database transaction, so a failed donation
// insert never leaves an orphan organization behind.
func (r *repository) CreateCampaignTx(ctx context.Context, params CreateCampaignParams) (int, error) {
	log := logger.FromCtx(ctx).With(
		zap.Int("creator_id", params.CreatorID),
		zap.String("organization", params.OrganizationName),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var orgID int
	err = tx.QueryRowContext(ctx, `
		INSERT INTO organizations (user_id, organization_name, organization_type)
		VALUES ($1, $2, NULL)
		RETURNING organization_id
	`, params.CreatorID, params.OrganizationName).Scan(&orgID)
	if err != nil {
		log.Error("failed to insert organization", zap.Error(err))
		return 0, err
	}

	var donationID int
	err = tx.QueryRowContext(ctx, `
		INSERT INTO donations (
			organization_id, creator_id, donation_target, donation_desc,
			target_quantity, current_quantity, donation_status,
			organization_license, event_date, donation_deadline, campaign_photo_url
		) VALUES ($1, $2, $3, $4, $5, 0, $6, $7, $8, $9, $10)
		RETURNING donation_id
	`,
		orgID, params.CreatorID, params.DonationTarget, params.DonationDesc,
		params.TargetQuantity, StatusInProgress,
		params.OrganizationLicense, params.EventDate, params.DonationDeadline,
		params.CampaignPhotoURL,
	).Scan(&donationID)
	if err != nil {
		log.Error("failed to insert donation", zap.Int("organization_id", orgID), zap.Error(err))
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return donationID, nil
}

func scanDonation(row interface{ Scan(...interface{}) error }, withOrgName bool) (Donation, error) {
	var d Donation
	dest := []interface{}{
		&d.ID, &d.OrganizationID, &d.CreatorID, &d.DonationTarget,
		&d.DonationDesc, &d.TargetQuantity, &d.CurrentQuantity, &d.DonationStatus,
		&d.OrganizationLicense, &d.EventDate, &d.DonationDeadline, &d.CampaignPhotoURL,
		&d.ReportDescription, &d.ReportPhotoURL, &d.ReportSubmittedAt,
	}
	if withOrgName {
		dest = append(dest, &d.OrganizationName)
	}
	err := row.Scan(dest...)
	return d, err
}

func (r *repository) GetByID(ctx context.Context, id int) (Donation, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+donationColumns+`, o.organization_name
		FROM donations d
		JOIN organizations o ON o.organization_id = d.organization_id
		WHERE d.donation_id = $1
	`, id)

	d, err := scanDonation(row, true)
	if err == sql.ErrNoRows {
		return d, ErrDonationNotFound
	}
	return d, err
}

func (r *repository) List(ctx context.Context, status *string) ([]Donation, error) {
	query := `
		SELECT ` + donationColumns + `, o.organization_name
		FROM donations d
		JOIN organizations o ON o.organization_id = d.organization_id
	`
	args := []interface{}{}
	if status != nil {
		args = append(args, *status)
		query += ` WHERE d.donation_status = $1`
	}
	query += ` ORDER BY d.donation_deadline ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	donations := []Donation{}
	for rows.Next() {
		d, err := scanDonation(rows, true)
		if err != nil {
			return nil, err
		}
		donations = append(donations, d)
	}

	return donations, rows.Err()
}

func (r *repository) InsertContribution(ctx context.Context, donationID, donorID, quantity int, photoURL string) (Contribution, error) {
	var c Contribution
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO donation_contributions (donation_id, donor_id, quantity, photo_url)
		VALUES ($1, $2, $3, $4)
		RETURNING contribution_id, donation_id, donor_id, quantity, photo_url, created_at
	`, donationID, donorID, quantity, photoURL).Scan(
		&c.ID, &c.DonationID, &c.DonorID, &c.Quantity, &c.PhotoURL, &c.CreatedAt,
	)
	return c, err
}

// ApplyContribution bumps the running total atomically and flips the
// status to completed once the target is reached. Concurrent
// contributions each add their own quantity; none can be lost to a
// read-modify-write race.
func (r *repository) ApplyContribution(ctx context.Context, donationID, quantity int) (int, string, error) {
	var current int
	var status string

	err := r.db.QueryRowContext(ctx, `
		UPDATE donations
		SET current_quantity = current_quantity + $1,
		    donation_status = CASE
		        WHEN current_quantity + $1 >= target_quantity AND donation_status = $2
		        THEN $3
		        ELSE donation_status
		    END
		WHERE donation_id = $4
		RETURNING current_quantity, donation_status
	`, quantity, StatusInProgress, StatusCompleted, donationID).Scan(&current, &status)

	if err == sql.ErrNoRows {
		return 0, "", ErrDonationNotFound
	}
	return current, status, err
}

func (r *repository) ListContributions(ctx context.Context, donationID int) ([]Contribution, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT contribution_id, donation_id, donor_id, quantity, photo_url, created_at
		FROM donation_contributions
		WHERE donation_id = $1
		ORDER BY created_at DESC
	`, donationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contributions := []Contribution{}
	for rows.Next() {
		var c Contribution
		if err := rows.Scan(&c.ID, &c.DonationID, &c.DonorID, &c.Quantity, &c.PhotoURL, &c.CreatedAt); err != nil {
			return nil, err
		}
		contributions = append(contributions, c)
	}

	return contributions, rows.Err()
}

func (r *repository) SubmitReport(ctx context.Context, id int, description, photoURL string, submittedAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE donations
		SET report_description = $1,
		    report_photo_url = $2,
		    report_submitted_at = $3,
		    donation_status = $4
		WHERE donation_id = $5
	`, description, photoURL, submittedAt, StatusReported, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrDonationNotFound
	}
	return nil
}
