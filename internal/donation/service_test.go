package donation

import (
	"context"
	"errors"
	"testing"
	"time"

	"rewear-be/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateCampaignTx(ctx context.Context, params CreateCampaignParams) (int, error) {
	args := m.Called(ctx, params)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id int) (Donation, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Donation), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, status *string) ([]Donation, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Donation), args.Error(1)
}

func (m *MockRepository) InsertContribution(ctx context.Context, donationID, donorID, quantity int, photoURL string) (Contribution, error) {
	args := m.Called(ctx, donationID, donorID, quantity, photoURL)
	return args.Get(0).(Contribution), args.Error(1)
}

func (m *MockRepository) ApplyContribution(ctx context.Context, donationID, quantity int) (int, string, error) {
	args := m.Called(ctx, donationID, quantity)
	return args.Int(0), args.String(1), args.Error(2)
}

func (m *MockRepository) ListContributions(ctx context.Context, donationID int) ([]Contribution, error) {
	args := m.Called(ctx, donationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Contribution), args.Error(1)
}

func (m *MockRepository) SubmitReport(ctx context.Context, id int, description, photoURL string, submittedAt time.Time) error {
	args := m.Called(ctx, id, description, photoURL, submittedAt)
	return args.Error(0)
}

// MockUserRepository stubs the donor counter dependency
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, email, password, userName string) (user.User, error) {
	args := m.Called(ctx, email, password, userName)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (user.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int) (user.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id int, params user.UpdateProfileParams) (user.User, error) {
	args := m.Called(ctx, id, params)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockUserRepository) UpdateAddress(ctx context.Context, id int, address, location string) (user.User, error) {
	args := m.Called(ctx, id, address, location)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockUserRepository) IncrementContribution(ctx context.Context, id, quantity int) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

// MockStorage is a mock of the storage gateway
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Upload(ctx context.Context, bucket, fileName string, data []byte, contentType string, upsert bool) (string, error) {
	args := m.Called(ctx, bucket, fileName, data, contentType, upsert)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) Remove(ctx context.Context, bucket, fileName string) error {
	args := m.Called(ctx, bucket, fileName)
	return args.Error(0)
}

func (m *MockStorage) PublicURL(bucket, fileName string) string {
	args := m.Called(bucket, fileName)
	return args.String(0)
}

func newTestService(repo *MockRepository, userRepo *MockUserRepository, gw *MockStorage) *service {
	return &service{
		repo:     repo,
		userRepo: userRepo,
		storage:  gw,
		now:      func() time.Time { return time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC) },
	}
}

func campaignInput() CreateCampaignInput {
	return CreateCampaignInput{
		CreatorID:           7,
		OrganizationName:    "Yayasan Peduli",
		OrganizationLicense: "01.234.567.8-901.000",
		CampaignName:        "Winter Drive",
		DonationTarget:      "Warm clothing for flood victims",
		Description:         "Collecting jackets and blankets",
		TargetQuantity:      100,
		EventDate:           time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		DonationDeadline:    time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC),
		Photo:               []byte("campaign-photo"),
		PhotoName:           "drive.png",
		PhotoMimeType:       "image/png",
	}
}

func TestService_CreateCampaign_Success(t *testing.T) {
	repo := new(MockRepository)
	gw := new(MockStorage)
	svc := newTestService(repo, new(MockUserRepository), gw)

	gw.On("Upload", mock.Anything, "donation-photos", mock.AnythingOfType("string"),
		[]byte("campaign-photo"), "image/png", false).
		Return("https://cdn/campaign.png", nil)

	repo.On("CreateCampaignTx", mock.Anything, mock.MatchedBy(func(p CreateCampaignParams) bool {
		return p.CreatorID == 7 && p.CampaignPhotoURL == "https://cdn/campaign.png" && p.TargetQuantity == 100
	})).Return(55, nil)

	id, err := svc.CreateCampaign(context.Background(), campaignInput())
	require.NoError(t, err)
	assert.Equal(t, 55, id)
}

func TestService_CreateCampaign_DateValidation(t *testing.T) {
	svc := newTestService(new(MockRepository), new(MockUserRepository), new(MockStorage))

	t.Run("EventInPast", func(t *testing.T) {
		in := campaignInput()
		in.EventDate = time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
		in.DonationDeadline = time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC)
		_, err := svc.CreateCampaign(context.Background(), in)
		assert.ErrorIs(t, err, ErrEventDateInPast)
	})

	t.Run("DeadlineInPast", func(t *testing.T) {
		in := campaignInput()
		in.DonationDeadline = time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)
		_, err := svc.CreateCampaign(context.Background(), in)
		assert.ErrorIs(t, err, ErrDeadlineInPast)
	})

	t.Run("DeadlineOnEventDate", func(t *testing.T) {
		in := campaignInput()
		in.DonationDeadline = in.EventDate
		_, err := svc.CreateCampaign(context.Background(), in)
		assert.ErrorIs(t, err, ErrDeadlineAfterEvent)
	})
}

func TestService_CreateCampaign_DBFailureRemovesPhoto(t *testing.T) {
	repo := new(MockRepository)
	gw := new(MockStorage)
	svc := newTestService(repo, new(MockUserRepository), gw)

	var uploadedFile string
	gw.On("Upload", mock.Anything, "donation-photos", mock.AnythingOfType("string"),
		mock.Anything, "image/png", false).
		Run(func(args mock.Arguments) { uploadedFile = args.String(2) }).
		Return("https://cdn/campaign.png", nil)

	repo.On("CreateCampaignTx", mock.Anything, mock.Anything).
		Return(0, errors.New("insert failed"))

	gw.On("Remove", mock.Anything, "donation-photos", mock.AnythingOfType("string")).
		Return(nil).Once()

	_, err := svc.CreateCampaign(context.Background(), campaignInput())
	require.Error(t, err)
	gw.AssertCalled(t, "Remove", mock.Anything, "donation-photos", uploadedFile)
}

func contributeInput() ContributeInput {
	return ContributeInput{
		DonationID:    55,
		DonorID:       9,
		Quantity:      5,
		Photo:         []byte("proof"),
		PhotoName:     "proof.png",
		PhotoMimeType: "image/png",
	}
}

func TestService_Contribute_Success(t *testing.T) {
	repo := new(MockRepository)
	userRepo := new(MockUserRepository)
	gw := new(MockStorage)
	svc := newTestService(repo, userRepo, gw)

	repo.On("GetByID", mock.Anything, 55).
		Return(Donation{ID: 55, CurrentQuantity: 10, TargetQuantity: 20, DonationStatus: StatusInProgress}, nil)

	gw.On("Upload", mock.Anything, "donation-photos", mock.AnythingOfType("string"),
		[]byte("proof"), "image/png", false).
		Return("https://cdn/proof.png", nil)

	repo.On("InsertContribution", mock.Anything, 55, 9, 5, "https://cdn/proof.png").
		Return(Contribution{ID: 301, DonationID: 55, DonorID: 9, Quantity: 5}, nil)

	repo.On("ApplyContribution", mock.Anything, 55, 5).
		Return(15, StatusInProgress, nil)

	userRepo.On("IncrementContribution", mock.Anything, 9, 5).Return(nil)

	c, err := svc.Contribute(context.Background(), contributeInput())
	require.NoError(t, err)
	assert.Equal(t, 301, c.ID)
	userRepo.AssertExpectations(t)
}

func TestService_Contribute_DonationNotFound(t *testing.T) {
	repo := new(MockRepository)
	gw := new(MockStorage)
	svc := newTestService(repo, new(MockUserRepository), gw)

	repo.On("GetByID", mock.Anything, 55).Return(Donation{}, ErrDonationNotFound)

	_, err := svc.Contribute(context.Background(), contributeInput())
	assert.ErrorIs(t, err, ErrDonationNotFound)
	gw.AssertNotCalled(t, "Upload")
}

func TestService_Contribute_InsertFailureRemovesPhoto(t *testing.T) {
	repo := new(MockRepository)
	gw := new(MockStorage)
	svc := newTestService(repo, new(MockUserRepository), gw)

	repo.On("GetByID", mock.Anything, 55).
		Return(Donation{ID: 55, DonationStatus: StatusInProgress}, nil)
	gw.On("Upload", mock.Anything, "donation-photos", mock.AnythingOfType("string"),
		mock.Anything, "image/png", false).
		Return("https://cdn/proof.png", nil)
	repo.On("InsertContribution", mock.Anything, 55, 9, 5, "https://cdn/proof.png").
		Return(Contribution{}, errors.New("insert failed"))
	gw.On("Remove", mock.Anything, "donation-photos", mock.AnythingOfType("string")).
		Return(nil).Once()

	_, err := svc.Contribute(context.Background(), contributeInput())
	require.Error(t, err)
	gw.AssertNumberOfCalls(t, "Remove", 1)
}

func TestService_Contribute_ApplyFailureKeepsContribution(t *testing.T) {
	repo := new(MockRepository)
	gw := new(MockStorage)
	svc := newTestService(repo, new(MockUserRepository), gw)

	repo.On("GetByID", mock.Anything, 55).
		Return(Donation{ID: 55, DonationStatus: StatusInProgress}, nil)
	gw.On("Upload", mock.Anything, "donation-photos", mock.AnythingOfType("string"),
		mock.Anything, "image/png", false).
		Return("https://cdn/proof.png", nil)
	repo.On("InsertContribution", mock.Anything, 55, 9, 5, "https://cdn/proof.png").
		Return(Contribution{ID: 301}, nil)
	repo.On("ApplyContribution", mock.Anything, 55, 5).
		Return(0, "", errors.New("update failed"))

	_, err := svc.Contribute(context.Background(), contributeInput())
	require.Error(t, err)

	// The inserted contribution is not compensated; no photo removal either.
	gw.AssertNotCalled(t, "Remove")
}

func TestService_Contribute_CounterFailureIsSwallowed(t *testing.T) {
	repo := new(MockRepository)
	userRepo := new(MockUserRepository)
	gw := new(MockStorage)
	svc := newTestService(repo, userRepo, gw)

	repo.On("GetByID", mock.Anything, 55).
		Return(Donation{ID: 55, DonationStatus: StatusInProgress}, nil)
	gw.On("Upload", mock.Anything, "donation-photos", mock.AnythingOfType("string"),
		mock.Anything, "image/png", false).
		Return("https://cdn/proof.png", nil)
	repo.On("InsertContribution", mock.Anything, 55, 9, 5, "https://cdn/proof.png").
		Return(Contribution{ID: 301}, nil)
	repo.On("ApplyContribution", mock.Anything, 55, 5).
		Return(20, StatusCompleted, nil)
	userRepo.On("IncrementContribution", mock.Anything, 9, 5).
		Return(errors.New("counter update failed"))

	c, err := svc.Contribute(context.Background(), contributeInput())
	require.NoError(t, err)
	assert.Equal(t, 301, c.ID)
}

func reportInput() SubmitReportInput {
	return SubmitReportInput{
		DonationID:    55,
		RequesterID:   7,
		Description:   "Delivered to 40 families",
		Photo:         []byte("report"),
		PhotoName:     "report.png",
		PhotoMimeType: "image/png",
	}
}

func TestService_SubmitReport(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		gw := new(MockStorage)
		svc := newTestService(repo, new(MockUserRepository), gw)

		repo.On("GetByID", mock.Anything, 55).
			Return(Donation{ID: 55, CreatorID: 7, DonationStatus: StatusCompleted}, nil)
		gw.On("Upload", mock.Anything, "donation-photos", mock.AnythingOfType("string"),
			[]byte("report"), "image/png", false).
			Return("https://cdn/report.png", nil)
		repo.On("SubmitReport", mock.Anything, 55, "Delivered to 40 families",
			"https://cdn/report.png", mock.AnythingOfType("time.Time")).
			Return(nil)

		err := svc.SubmitReport(context.Background(), reportInput())
		assert.NoError(t, err)
	})

	t.Run("NotCreator", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, new(MockUserRepository), new(MockStorage))

		repo.On("GetByID", mock.Anything, 55).
			Return(Donation{ID: 55, CreatorID: 1}, nil)

		err := svc.SubmitReport(context.Background(), reportInput())
		assert.ErrorIs(t, err, ErrNotCreator)
	})

	t.Run("AlreadySubmitted", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, new(MockUserRepository), new(MockStorage))

		submitted := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
		repo.On("GetByID", mock.Anything, 55).
			Return(Donation{ID: 55, CreatorID: 7, ReportSubmittedAt: &submitted}, nil)

		err := svc.SubmitReport(context.Background(), reportInput())
		assert.ErrorIs(t, err, ErrReportAlreadySubmitted)
	})

	t.Run("UpdateFailureRemovesPhoto", func(t *testing.T) {
		repo := new(MockRepository)
		gw := new(MockStorage)
		svc := newTestService(repo, new(MockUserRepository), gw)

		repo.On("GetByID", mock.Anything, 55).
			Return(Donation{ID: 55, CreatorID: 7}, nil)
		gw.On("Upload", mock.Anything, "donation-photos", mock.AnythingOfType("string"),
			mock.Anything, "image/png", false).
			Return("https://cdn/report.png", nil)
		repo.On("SubmitReport", mock.Anything, 55, mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("update failed"))
		gw.On("Remove", mock.Anything, "donation-photos", mock.AnythingOfType("string")).
			Return(nil).Once()

		err := svc.SubmitReport(context.Background(), reportInput())
		require.Error(t, err)
		gw.AssertNumberOfCalls(t, "Remove", 1)
	})
}
