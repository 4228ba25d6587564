package donation

import "time"

const (
	StatusInProgress = "in progress"
	StatusCompleted  = "completed"
	StatusReported   = "reported"
)

type Organization struct {
	ID     int     `json:"organization_id"`
	UserID int     `json:"user_id"`
	Name   string  `json:"organization_name"`
	Type   *string `json:"organization_type"`
}

type Donation struct {
	ID                  int        `json:"donation_id"`
	OrganizationID      int        `json:"organization_id"`
	CreatorID           int        `json:"creator_id"`
	DonationTarget      string     `json:"donation_target"`
	DonationDesc        *string    `json:"donation_desc"`
	TargetQuantity      int        `json:"target_quantity"`
	CurrentQuantity     int        `json:"current_quantity"`
	DonationStatus      string     `json:"donation_status"`
	OrganizationLicense string     `json:"organization_license"`
	EventDate           time.Time  `json:"event_date"`
	DonationDeadline    time.Time  `json:"donation_deadline"`
	CampaignPhotoURL    string     `json:"campaign_photo_url"`
	ReportDescription   *string    `json:"report_description"`
	ReportPhotoURL      *string    `json:"report_photo_url"`
	ReportSubmittedAt   *time.Time `json:"report_submitted_at"`

	// OrganizationName is joined on read paths.
	OrganizationName string `json:"organization_name,omitempty"`
}

type Contribution struct {
	ID         int       `json:"contribution_id"`
	DonationID int       `json:"donation_id"`
	DonorID    int       `json:"donor_id"`
	Quantity   int       `json:"quantity"`
	PhotoURL   string    `json:"photo_url"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateCampaignParams is what the repository persists once the campaign
// photo is already uploaded.
type CreateCampaignParams struct {
	CreatorID           int
	OrganizationName    string
	OrganizationLicense string
	DonationTarget      string
	DonationDesc        string
	TargetQuantity      int
	EventDate           time.Time
	DonationDeadline    time.Time
	CampaignPhotoURL    string
}

// CreateCampaignInput is the raw campaign form.
type CreateCampaignInput struct {
	CreatorID           int
	OrganizationName    string
	OrganizationLicense string
	CampaignName        string
	DonationTarget      string
	Description         string
	TargetQuantity      int
	EventDate           time.Time
	DonationDeadline    time.Time

	Photo         []byte
	PhotoName     string
	PhotoMimeType string
}

type ContributeInput struct {
	DonationID int
	DonorID    int
	Quantity   int

	Photo         []byte
	PhotoName     string
	PhotoMimeType string
}

type SubmitReportInput struct {
	DonationID  int
	RequesterID int
	Description string

	Photo         []byte
	PhotoName     string
	PhotoMimeType string
}
