package donationservice

import (
	"context"
	"errors"
	"testing"

	"github.com/givehaven/givehaven/internal/config"
	"github.com/givehaven/givehaven/internal/domain"
	"github.com/givehaven/givehaven/internal/paystack"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*Service, *MockDonationRepo, *MockGateway) {
	ctrl := gomock.NewController(t)
	repo := NewMockDonationRepo(ctrl)
	gateway := NewMockGateway(ctrl)
	cfg := &config.Config{CallbackURL: "http://localhost:8080/api/donations/verify"}

	service := New(repo, gateway, cfg)
	defer ctrl.Finish()
	return service, repo, gateway
}

func TestCreate(t *testing.T) {
	service, repo, gateway := NewMock(t)
	issueID := 3

	tests := []struct {
		name          string
		req           CreateRequest
		prepareMock   func()
		expectedError error
		checkResult   func(t *testing.T, donation *domain.Donation, init *paystack.InitializeResult)
	}{
		{
			name: "Successful creation with explicit reference",
			req: CreateRequest{
				Email:     "donor@example.com",
				Amount:    3000,
				Reference: "ref_abc",
				IssueID:   &issueID,
			},
			prepareMock: func() {
				repo.EXPECT().FindByReference(context.Background(), "ref_abc").Return(nil, nil)
				repo.EXPECT().Save(context.Background(), gomock.Any()).DoAndReturn(func(ctx context.Context, donation *domain.Donation) error {
					donation.ID = 1
					return nil
				})
				gateway.EXPECT().
					Initialize(context.Background(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, req paystack.InitializeRequest) (*paystack.InitializeResult, error) {
						assert.Equal(t, "donor@example.com", req.Email)
						assert.Equal(t, 3000.0, req.Amount)
						assert.Equal(t, "NGN", req.Currency)
						assert.Equal(t, "ref_abc", req.Reference)
						assert.Equal(t, "3", req.IssueID)
						assert.Contains(t, req.CallbackURL, "donation_id=1")
						assert.Contains(t, req.CallbackURL, "issue_id=3")
						return &paystack.InitializeResult{
							AuthorizationURL: "https://checkout.paystack.com/abc123",
							AccessCode:       "abc123",
							Reference:        "ref_abc",
						}, nil
					})
			},
			checkResult: func(t *testing.T, donation *domain.Donation, init *paystack.InitializeResult) {
				assert.Equal(t, 1, donation.ID)
				assert.Equal(t, domain.PendingStatus, donation.Status)
				assert.Equal(t, "https://checkout.paystack.com/abc123", init.AuthorizationURL)
			},
		},
		{
			name: "Generates a reference when none given",
			req: CreateRequest{
				Email:  "donor@example.com",
				Amount: 500,
			},
			prepareMock: func() {
				repo.EXPECT().Save(context.Background(), gomock.Any()).Return(nil)
				gateway.EXPECT().
					Initialize(context.Background(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, req paystack.InitializeRequest) (*paystack.InitializeResult, error) {
						assert.NotEmpty(t, req.Reference)
						return &paystack.InitializeResult{Reference: req.Reference}, nil
					})
			},
			checkResult: func(t *testing.T, donation *domain.Donation, init *paystack.InitializeResult) {
				assert.NotEmpty(t, donation.Reference)
				assert.Equal(t, donation.Reference, init.Reference)
			},
		},
		{
			name:          "Rejects non-positive amount",
			req:           CreateRequest{Email: "donor@example.com", Amount: 0},
			prepareMock:   func() {},
			expectedError: ErrInvalidAmount,
		},
		{
			name:          "Rejects missing email",
			req:           CreateRequest{Amount: 3000},
			prepareMock:   func() {},
			expectedError: ErrEmailRequired,
		},
		{
			name: "Rejects duplicate reference",
			req: CreateRequest{
				Email:     "donor@example.com",
				Amount:    3000,
				Reference: "ref_abc",
			},
			prepareMock: func() {
				repo.EXPECT().FindByReference(context.Background(), "ref_abc").
					Return(&domain.Donation{ID: 7, Reference: "ref_abc"}, nil)
			},
			expectedError: ErrReferenceAlreadyUsed,
		},
		{
			name: "Save failure",
			req: CreateRequest{
				Email:  "donor@example.com",
				Amount: 3000,
			},
			prepareMock: func() {
				repo.EXPECT().Save(context.Background(), gomock.Any()).Return(errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
		{
			name: "Gateway initialization failure leaves donation pending",
			req: CreateRequest{
				Email:  "donor@example.com",
				Amount: 3000,
			},
			prepareMock: func() {
				repo.EXPECT().Save(context.Background(), gomock.Any()).Return(nil)
				gateway.EXPECT().
					Initialize(context.Background(), gomock.Any()).
					Return(nil, &paystack.GatewayError{StatusCode: 503, Message: "down"})
			},
			expectedError: &paystack.GatewayError{StatusCode: 503, Message: "down"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			donation, init, err := service.Create(context.Background(), tt.req)

			if tt.expectedError != nil {
				assert.EqualError(t, err, tt.expectedError.Error())
				assert.Nil(t, donation)
				assert.Nil(t, init)
			} else {
				assert.NoError(t, err)
				tt.checkResult(t, donation, init)
			}
		})
	}
}

func TestGetDonation(t *testing.T) {
	service, repo, _ := NewMock(t)

	tests := []struct {
		name          string
		prepareMock   func()
		expectedError error
	}{
		{
			name: "Donation found",
			prepareMock: func() {
				repo.EXPECT().FindByID(context.Background(), 1).
					Return(&domain.Donation{ID: 1, Reference: "ref_abc"}, nil)
			},
		},
		{
			name: "Database error",
			prepareMock: func() {
				repo.EXPECT().FindByID(context.Background(), 1).Return(nil, errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			donation, err := service.GetDonation(context.Background(), 1)

			if tt.expectedError != nil {
				assert.EqualError(t, err, tt.expectedError.Error())
				assert.Nil(t, donation)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, donation)
			}
		})
	}
}

func TestGetDonations(t *testing.T) {
	service, repo, _ := NewMock(t)

	tests := []struct {
		name          string
		prepareMock   func()
		expectedCount int
		expectedError error
	}{
		{
			name: "Donor has donations",
			prepareMock: func() {
				repo.EXPECT().FindByDonorID(context.Background(), 1).Return([]domain.Donation{
					{ID: 1, Reference: "ref_one"},
					{ID: 2, Reference: "ref_two"},
				}, nil)
			},
			expectedCount: 2,
		},
		{
			name: "Database error",
			prepareMock: func() {
				repo.EXPECT().FindByDonorID(context.Background(), 1).Return(nil, errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			donations, err := service.GetDonations(context.Background(), 1)

			if tt.expectedError != nil {
				assert.EqualError(t, err, tt.expectedError.Error())
			} else {
				assert.NoError(t, err)
				assert.Len(t, donations, tt.expectedCount)
			}
		})
	}
}
