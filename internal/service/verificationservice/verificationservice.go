package verificationservice

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/givehaven/givehaven/internal/domain"
	"github.com/givehaven/givehaven/internal/paystack"
	"github.com/givehaven/givehaven/internal/service/donationservice"
	"github.com/givehaven/givehaven/internal/service/issueservice"
)

type Gateway interface {
	Verify(ctx context.Context, reference string) (*paystack.VerifyResult, error)
}

// Service settles the true outcome of a payment exactly once: it
// transitions the donation to a terminal status and, only on the first
// successful confirmation, applies the confirmed amount to the target
// issue's running total. All serialization comes from the storage
// layer; the service holds no state between invocations.
type Service struct {
	donationRepo donationservice.DonationRepo
	issueRepo    issueservice.IssueRepo
	gateway      Gateway
}

func New(donationRepo donationservice.DonationRepo, issueRepo issueservice.IssueRepo, gateway Gateway) *Service {
	return &Service{
		donationRepo: donationRepo,
		issueRepo:    issueRepo,
		gateway:      gateway,
	}
}

const (
	SuccessOutcome = "success"
	FailedOutcome  = "failed"
)

var ErrInvalidInput = errors.New("reference and donation id are required")

type Result struct {
	Outcome        string
	Amount         float64
	Message        string
	AlreadySettled bool
}

// Verify resolves one payment reference. Re-invocation is always safe:
// a donation already in a terminal status short-circuits with no side
// effects, and a run that failed before the status write left the
// donation pending, so the whole flow simply repeats.
func (s *Service) Verify(ctx context.Context, reference string, donationID int, issueID int) (*Result, error) {
	if reference == "" || donationID == 0 {
		return nil, ErrInvalidInput
	}

	donation, err := s.donationRepo.FindByID(ctx, donationID)
	if err != nil {
		return nil, err
	}
	if donation == nil {
		return nil, domain.ErrDonationNotFound
	}

	// Terminal statuses never transition again. Duplicate callbacks and
	// confirmation-page reloads land here.
	if domain.IsTerminalStatus(donation.Status) {
		if donation.Status == domain.FailedStatus {
			return &Result{Outcome: FailedOutcome, Message: "payment was declined", AlreadySettled: true}, nil
		}
		zap.L().Info("donation already settled", zap.Int("donationID", donationID))
		return &Result{Outcome: SuccessOutcome, Amount: donation.Amount, AlreadySettled: true}, nil
	}

	verification, err := s.gateway.Verify(ctx, reference)
	if err != nil {
		// A transport error means "unknown", not "denied": the donation
		// stays pending and the caller may retry.
		zap.L().Warn("payment verification unavailable",
			zap.String("reference", reference),
			zap.Error(err),
		)
		return nil, fmt.Errorf("can't verify payment: %w", err)
	}

	if !verification.Success {
		if err := s.donationRepo.UpdateStatusByReference(ctx, reference, domain.FailedStatus); err != nil {
			zap.L().Error("failed to mark donation failed", zap.Error(err))
			return nil, err
		}
		zap.L().Info("payment denied by gateway",
			zap.String("reference", reference),
			zap.String("status", verification.Status),
		)
		return &Result{Outcome: FailedOutcome, Message: denialMessage(verification)}, nil
	}

	confirmedAmount := verification.Amount
	if confirmedAmount != donation.Amount {
		// Reportable anomaly: the issue aggregate follows the gateway
		// truth, the donation's recorded amount is never rewritten.
		zap.L().Warn("gateway-confirmed amount differs from requested amount",
			zap.Int("donationID", donationID),
			zap.Float64("requested", donation.Amount),
			zap.Float64("confirmed", confirmedAmount),
		)
	}

	// Commit point. On failure the donation is still pending and a
	// retry repeats the whole verification.
	if err := s.donationRepo.UpdateStatus(ctx, donation.ID, domain.CompletedStatus); err != nil {
		zap.L().Error("failed to mark donation completed", zap.Error(err))
		return nil, fmt.Errorf("can't mark donation completed: %w", err)
	}

	if targetID := s.targetIssueID(issueID, verification, donation); targetID != 0 {
		if err := s.issueRepo.ApplyRaisedDelta(ctx, targetID, confirmedAmount); err != nil {
			// The donation is already completed, so a retry will
			// short-circuit and never apply this delta. Nothing here
			// compensates; the failure is surfaced for manual
			// reconciliation instead.
			zap.L().Error("confirmed donation not applied to issue total",
				zap.Int("donationID", donation.ID),
				zap.Int("issueID", targetID),
				zap.Float64("amount", confirmedAmount),
				zap.Error(err),
			)
			return nil, fmt.Errorf("donation confirmed but issue total not updated: %w", err)
		}
	}

	zap.L().Info("donation settled",
		zap.Int("donationID", donation.ID),
		zap.Float64("amount", confirmedAmount),
	)
	return &Result{Outcome: SuccessOutcome, Amount: confirmedAmount}, nil
}

// targetIssueID resolves the issue to credit: the explicit parameter
// wins, then the gateway's echoed metadata, then the donation row.
func (s *Service) targetIssueID(issueID int, verification *paystack.VerifyResult, donation *domain.Donation) int {
	if issueID != 0 {
		return issueID
	}
	if verification.IssueID != "" {
		id, err := strconv.Atoi(verification.IssueID)
		if err != nil {
			zap.L().Warn("unparsable issue id in gateway metadata", zap.String("issueID", verification.IssueID))
		} else {
			return id
		}
	}
	if donation.IssueID != nil {
		return *donation.IssueID
	}
	return 0
}

func denialMessage(verification *paystack.VerifyResult) string {
	if verification.GatewayResponse != "" {
		return verification.GatewayResponse
	}
	return verification.Status
}
