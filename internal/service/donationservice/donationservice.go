package donationservice

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/givehaven/givehaven/internal/config"
	"github.com/givehaven/givehaven/internal/domain"
	"github.com/givehaven/givehaven/internal/paystack"
)

type DonationRepo interface {
	Save(ctx context.Context, donation *domain.Donation) error
	FindByID(ctx context.Context, id int) (*domain.Donation, error)
	FindByReference(ctx context.Context, reference string) (*domain.Donation, error)
	FindByDonorID(ctx context.Context, donorID int) ([]domain.Donation, error)
	UpdateStatus(ctx context.Context, id int, status string) error
	UpdateStatusByReference(ctx context.Context, reference string, status string) error
	FindStalePending(ctx context.Context, cutoff time.Time, limit uint32) ([]domain.Donation, error)
}

type Gateway interface {
	Initialize(ctx context.Context, req paystack.InitializeRequest) (*paystack.InitializeResult, error)
}

type Service struct {
	repo        DonationRepo
	gateway     Gateway
	callbackURL string
}

func New(repo DonationRepo, gateway Gateway, cfg *config.Config) *Service {
	return &Service{
		repo:        repo,
		gateway:     gateway,
		callbackURL: cfg.CallbackURL,
	}
}

const defaultCurrency = "NGN"

var (
	ErrInvalidAmount        = errors.New("donation amount must be greater than zero")
	ErrEmailRequired        = errors.New("donor email is required")
	ErrReferenceAlreadyUsed = errors.New("reference already used by another donation")
)

type CreateRequest struct {
	Email     string
	Amount    float64
	Currency  string
	Reference string
	IssueID   *int
	DonorID   *int
}

// Create records a pending donation and registers the transaction with
// the gateway. The donor is then redirected to the authorization URL;
// the verification callback finishes the flow.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*domain.Donation, *paystack.InitializeResult, error) {
	if req.Amount <= 0 {
		return nil, nil, ErrInvalidAmount
	}
	if req.Email == "" {
		return nil, nil, ErrEmailRequired
	}

	reference := req.Reference
	if reference == "" {
		reference = uuid.NewString()
	} else {
		existing, err := s.repo.FindByReference(ctx, reference)
		if err != nil {
			return nil, nil, err
		}
		if existing != nil {
			zap.L().Info("reference already used", zap.String("reference", reference))
			return nil, nil, ErrReferenceAlreadyUsed
		}
	}

	currency := req.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	donation := &domain.Donation{
		DonorID:   req.DonorID,
		IssueID:   req.IssueID,
		Reference: reference,
		Email:     req.Email,
		Amount:    req.Amount,
		Currency:  currency,
		Status:    domain.PendingStatus,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Save(ctx, donation); err != nil {
		zap.L().Error("can't save donation: ", zap.Error(err))
		return nil, nil, err
	}

	initReq := paystack.InitializeRequest{
		Email:       req.Email,
		Amount:      req.Amount,
		Currency:    currency,
		Reference:   reference,
		CallbackURL: s.buildCallbackURL(donation),
	}
	if donation.IssueID != nil {
		initReq.IssueID = strconv.Itoa(*donation.IssueID)
	}

	init, err := s.gateway.Initialize(ctx, initReq)
	if err != nil {
		// donation stays pending; the reconciler or a retried
		// initialization picks it up later
		zap.L().Error("can't initialize payment", zap.String("reference", reference), zap.Error(err))
		return nil, nil, err
	}

	return donation, init, nil
}

func (s *Service) GetDonation(ctx context.Context, id int) (*domain.Donation, error) {
	donation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		zap.L().Error("failed to get donation", zap.Error(err))
		return nil, err
	}
	return donation, nil
}

func (s *Service) GetDonations(ctx context.Context, donorID int) ([]domain.Donation, error) {
	donations, err := s.repo.FindByDonorID(ctx, donorID)
	if err != nil {
		zap.L().Error("failed to get donations", zap.Error(err))
		return nil, err
	}
	return donations, nil
}

// buildCallbackURL carries the donation id (and target issue) through
// the gateway redirect back to the verification endpoint.
func (s *Service) buildCallbackURL(donation *domain.Donation) string {
	cb, err := url.Parse(s.callbackURL)
	if err != nil {
		return s.callbackURL
	}
	q := cb.Query()
	q.Set("donation_id", strconv.Itoa(donation.ID))
	if donation.IssueID != nil {
		q.Set("issue_id", strconv.Itoa(*donation.IssueID))
	}
	cb.RawQuery = q.Encode()
	return cb.String()
}
