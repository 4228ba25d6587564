package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"rewear-be/internal/cart"
	"rewear-be/internal/donation"
	"rewear-be/internal/grading"
	"rewear-be/internal/product"
	"rewear-be/internal/transaction"
	"rewear-be/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// -- service mocks --

type MockUserService struct{ mock.Mock }

func (m *MockUserService) Signup(ctx context.Context, email, password, userName string) (user.User, string, error) {
	args := m.Called(ctx, email, password, userName)
	return args.Get(0).(user.User), args.String(1), args.Error(2)
}

func (m *MockUserService) Login(ctx context.Context, email, password string) (user.User, string, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(user.User), args.String(1), args.Error(2)
}

func (m *MockUserService) CheckEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, id int) (user.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, id int, input user.UpdateProfileInput) (user.User, error) {
	args := m.Called(ctx, id, input)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockUserService) UpdateAddress(ctx context.Context, id int, address, location string) (user.User, error) {
	args := m.Called(ctx, id, address, location)
	return args.Get(0).(user.User), args.Error(1)
}

type MockProductService struct{ mock.Mock }

func (m *MockProductService) Create(ctx context.Context, input product.CreateInput) (product.Product, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(product.Product), args.Error(1)
}

func (m *MockProductService) List(ctx context.Context, filter product.ListFilter) ([]product.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]product.Product), args.Error(1)
}

func (m *MockProductService) Search(ctx context.Context, filter product.SearchFilter) ([]product.Detail, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]product.Detail), args.Error(1)
}

func (m *MockProductService) GetDetail(ctx context.Context, id int) (product.Detail, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(product.Detail), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockGradingService struct{ mock.Mock }

func (m *MockGradingService) GradeProduct(ctx context.Context, productID int) (grading.Result, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(grading.Result), args.Error(1)
}

func (m *MockGradingService) CheckGrade(ctx context.Context, productID int) (*string, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*string), args.Error(1)
}

type MockCartService struct{ mock.Mock }

func (m *MockCartService) GetCart(ctx context.Context, userID int) (cart.View, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(cart.View), args.Error(1)
}

func (m *MockCartService) AddItem(ctx context.Context, params cart.AddItemParams) (cart.Item, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(cart.Item), args.Error(1)
}

func (m *MockCartService) UpdateItemQuantity(ctx context.Context, itemID, quantity int) (*cart.Item, error) {
	args := m.Called(ctx, itemID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Item), args.Error(1)
}

func (m *MockCartService) RemoveItem(ctx context.Context, itemID int) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func (m *MockCartService) Clear(ctx context.Context, userID int) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockTransactionService struct{ mock.Mock }

func (m *MockTransactionService) Checkout(ctx context.Context, params transaction.CheckoutParams) (transaction.Transaction, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(transaction.Transaction), args.Error(1)
}

func (m *MockTransactionService) History(ctx context.Context, filter transaction.HistoryFilter) ([]transaction.HistoryRow, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]transaction.HistoryRow), args.Error(1)
}

type MockDonationService struct{ mock.Mock }

func (m *MockDonationService) CreateCampaign(ctx context.Context, input donation.CreateCampaignInput) (int, error) {
	args := m.Called(ctx, input)
	return args.Int(0), args.Error(1)
}

func (m *MockDonationService) Contribute(ctx context.Context, input donation.ContributeInput) (donation.Contribution, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(donation.Contribution), args.Error(1)
}

func (m *MockDonationService) SubmitReport(ctx context.Context, input donation.SubmitReportInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

func (m *MockDonationService) List(ctx context.Context, status *string) ([]donation.Donation, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]donation.Donation), args.Error(1)
}

func (m *MockDonationService) Get(ctx context.Context, id int) (donation.Donation, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(donation.Donation), args.Error(1)
}

func (m *MockDonationService) Contributions(ctx context.Context, donationID int) ([]donation.Contribution, error) {
	args := m.Called(ctx, donationID)
	return args.Get(0).([]donation.Contribution), args.Error(1)
}

type testServer struct {
	*Server
	users        *MockUserService
	products     *MockProductService
	grader       *MockGradingService
	carts        *MockCartService
	transactions *MockTransactionService
	donations    *MockDonationService
	router       *gin.Engine
}

func newTestServer() *testServer {
	ts := &testServer{
		users:        new(MockUserService),
		products:     new(MockProductService),
		grader:       new(MockGradingService),
		carts:        new(MockCartService),
		transactions: new(MockTransactionService),
		donations:    new(MockDonationService),
	}
	ts.Server = NewServer(ts.users, ts.products, ts.grader, ts.carts, ts.transactions, ts.donations)
	ts.router = ts.Server.Router()
	return ts
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSignup(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		ts := newTestServer()
		ts.users.On("Signup", mock.Anything, "a@b.com", "secret", "andi").
			Return(user.User{ID: 7, Email: "a@b.com", UserName: "andi"}, "jwt-token", nil)

		w := doJSON(t, ts.router, http.MethodPost, "/api/auth/signup",
			gin.H{"email": "a@b.com", "password": "secret", "user_name": "andi"})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"success":true`)
		assert.Contains(t, w.Body.String(), `"token":"jwt-token"`)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		ts := newTestServer()
		ts.users.On("Signup", mock.Anything, "a@b.com", "secret", "andi").
			Return(user.User{}, "", user.ErrEmailExists)

		w := doJSON(t, ts.router, http.MethodPost, "/api/auth/signup",
			gin.H{"email": "a@b.com", "password": "secret", "user_name": "andi"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"success":false`)
	})
}

func TestLogin_WrongPassword(t *testing.T) {
	ts := newTestServer()
	ts.users.On("Login", mock.Anything, "a@b.com", "bad").
		Return(user.User{}, "", user.ErrWrongPassword)

	w := doJSON(t, ts.router, http.MethodPost, "/api/auth/login",
		gin.H{"email": "a@b.com", "password": "bad"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateProduct_FrontPhotoRequired(t *testing.T) {
	ts := newTestServer()
	ts.products.On("Create", mock.Anything, mock.Anything).
		Return(product.Product{}, product.ErrFrontPhotoRequired)

	w := doJSON(t, ts.router, http.MethodPost, "/api/products",
		gin.H{"user_id": 1, "product_name": "Jacket", "price": 100, "quantity": 1})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetProduct_NotFound(t *testing.T) {
	ts := newTestServer()
	ts.products.On("GetDetail", mock.Anything, 999).
		Return(product.Detail{}, product.ErrProductNotFound)

	w := doJSON(t, ts.router, http.MethodGet, "/api/products/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchProducts_PassesFilters(t *testing.T) {
	ts := newTestServer()
	ts.products.On("Search", mock.Anything, mock.MatchedBy(func(f product.SearchFilter) bool {
		return f.Query == "jacket" && f.Grade != nil && *f.Grade == "B" &&
			f.MinPrice != nil && *f.MinPrice == 100 && f.MaxPrice == nil
	})).Return([]product.Detail{}, nil)

	w := doJSON(t, ts.router, http.MethodGet, "/api/products/search?q=jacket&grade=B&minPrice=100", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	ts.products.AssertExpectations(t)
}

func TestGradeProduct_InvalidResponseCarriesDebug(t *testing.T) {
	ts := newTestServer()
	ts.grader.On("GradeProduct", mock.Anything, 42).
		Return(grading.Result{}, &grading.InvalidResponseError{Raw: "not json at all"})

	w := doJSON(t, ts.router, http.MethodPost, "/api/ai/grade-product", gin.H{"product_id": 42})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"debug_response":"not json at all"`)
}

func TestCheckGrade(t *testing.T) {
	ts := newTestServer()
	grade := "B"
	ts.grader.On("CheckGrade", mock.Anything, 42).Return(&grade, nil)

	w := doJSON(t, ts.router, http.MethodGet, "/api/ai/grade-product?product_id=42", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"grade":"B"`)
	assert.Contains(t, w.Body.String(), `"graded":true`)
}

func TestCheckout_InsufficientStock(t *testing.T) {
	ts := newTestServer()
	ts.transactions.On("Checkout", mock.Anything, mock.Anything).
		Return(transaction.Transaction{}, transaction.ErrInsufficientStock)

	w := doJSON(t, ts.router, http.MethodPost, "/api/transactions",
		gin.H{"buyer_id": 1, "seller_id": 2, "product_id": 42, "quantity": 5, "total_price": 500})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetCart_QueryUser(t *testing.T) {
	ts := newTestServer()
	ts.carts.On("GetCart", mock.Anything, 1).
		Return(cart.View{Cart: cart.Cart{ID: 10, UserID: 1}, Items: []cart.ItemDetail{}}, nil)

	w := doJSON(t, ts.router, http.MethodGet, "/api/carts?user_id=1", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"cart_id":10`)
}

func TestGetCart_Unauthenticated(t *testing.T) {
	ts := newTestServer()

	w := doJSON(t, ts.router, http.MethodGet, "/api/carts", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func multipartBody(t *testing.T, fields map[string]string, photoField, photoName string) (*bytes.Buffer, string) {
	t.Helper()

	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if photoField != "" {
		fw, err := mw.CreateFormFile(photoField, photoName)
		require.NoError(t, err)
		_, err = fw.Write([]byte("png-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return buf, mw.FormDataContentType()
}

func TestCreateCampaign_Multipart(t *testing.T) {
	ts := newTestServer()
	ts.donations.On("CreateCampaign", mock.Anything, mock.MatchedBy(func(in donation.CreateCampaignInput) bool {
		return in.CreatorID == 7 &&
			in.OrganizationName == "Yayasan Peduli" &&
			in.TargetQuantity == 100 &&
			in.EventDate.Format("2006-01-02") == "2026-01-15" &&
			len(in.Photo) > 0
	})).Return(55, nil)

	body, contentType := multipartBody(t, map[string]string{
		"creator_id":           "7",
		"organization_name":    "Yayasan Peduli",
		"organization_license": "01.234.567.8-901.000",
		"campaign_name":        "Winter Drive",
		"donation_target":      "Warm clothing",
		"description":          "Jackets",
		"target_quantity":      "100",
		"event_date":           "2026-01-15",
		"donation_deadline":    "2026-01-01",
	}, "photo", "drive.png")

	req := httptest.NewRequest(http.MethodPost, "/api/donations", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"donation_id":55`)
	ts.donations.AssertExpectations(t)
}

func TestSubmitReport_NotCreator(t *testing.T) {
	ts := newTestServer()
	ts.donations.On("SubmitReport", mock.Anything, mock.Anything).
		Return(donation.ErrNotCreator)

	body, contentType := multipartBody(t, map[string]string{
		"requester_id": "9",
		"description":  "Delivered",
	}, "photo", "report.png")

	req := httptest.NewRequest(http.MethodPost, "/api/donations/55/report", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateAddress_TokenOverridesClaimedID(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ts := newTestServer()

	ts.users.On("UpdateAddress", mock.Anything, 7, "Jl. Sudirman No. 10", "Jakarta").
		Return(user.User{ID: 7}, nil)

	token, err := user.GenerateJWT(7, "a@b.com")
	require.NoError(t, err)

	payload, _ := json.Marshal(gin.H{"user_id": 99, "address": "Jl. Sudirman No. 10", "location": "Jakarta"})
	req := httptest.NewRequest(http.MethodPatch, "/api/users/address", strings.NewReader(string(payload)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	ts.users.AssertExpectations(t)
}
