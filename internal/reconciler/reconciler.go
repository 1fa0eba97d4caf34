package reconciler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/givehaven/givehaven/internal/domain"
	"github.com/givehaven/givehaven/internal/paystack"
	"github.com/givehaven/givehaven/internal/service/donationservice"
	"github.com/givehaven/givehaven/internal/service/verificationservice"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	maxRetries    = 3
	retryInterval = time.Second * 1
)

var reconcilingDonations sync.Map

type Verifier interface {
	Verify(ctx context.Context, reference string, donationID int, issueID int) (*verificationservice.Result, error)
}

// Service периодически досверяет зависшие pending-пожертвования:
// доноры не всегда возвращаются на страницу колбэка после оплаты.
type Service struct {
	donationRepo   donationservice.DonationRepo
	verifier       Verifier
	limit          uint32
	staleAfter     time.Duration
	abandonAfter   time.Duration
	workerPool     WorkerPoolI
	updateInterval time.Duration
}

func New(donationRepo donationservice.DonationRepo, verifier Verifier) *Service {
	return &Service{
		donationRepo:   donationRepo,
		verifier:       verifier,
		limit:          1000,
		staleAfter:     time.Minute * 15,
		abandonAfter:   time.Hour * 24,
		workerPool:     NewWorkerPool(10),
		updateInterval: time.Minute * 1,
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("Reconciler service started")
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.updateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping reconciler")
			return
		case <-ticker.C:
			s.processDonations(ctx)
		}
	}
}

func (s *Service) processDonations(ctx context.Context) {
	cutoff := time.Now().Add(-s.staleAfter)
	donations, err := s.donationRepo.FindStalePending(ctx, cutoff, atomic.LoadUint32(&s.limit))
	if err != nil {
		zap.L().Error("Failed to fetch stale donations", zap.Error(err))
		return
	}

	var g errgroup.Group
	for _, donation := range donations {
		donation := donation

		if _, loaded := reconcilingDonations.LoadOrStore(donation.Reference, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer reconcilingDonations.Delete(donation.Reference)
				return s.handleDonation(ctx, donation)
			})
			if err != nil {
				reconcilingDonations.Delete(donation.Reference)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("Error reconciling donations", zap.Error(err))
	}
}

func (s *Service) handleDonation(ctx context.Context, donation domain.Donation) error {
	issueID := 0
	if donation.IssueID != nil {
		issueID = *donation.IssueID
	}

	for attempt := 1; attempt <= maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			result, err := s.verifier.Verify(ctx, donation.Reference, donation.ID, issueID)
			if err != nil {
				var gatewayErr *paystack.GatewayError
				if errors.As(err, &gatewayErr) {
					if attempt < maxRetries {
						retryAfter := retryInterval * time.Duration(attempt)
						zap.L().Warn(
							"Gateway unavailable, retrying",
							zap.String("reference", donation.Reference),
							zap.Int("attempt", attempt),
							zap.Duration("retryAfter", retryAfter),
						)
						time.Sleep(retryAfter)
						continue
					}
					// Ссылка, которую шлюз так и не подтвердил за сутки,
					// скорее всего никогда не была инициализирована —
					// закрываем, чтобы не сверять её на каждом проходе.
					if time.Since(donation.CreatedAt) > s.abandonAfter {
						if uerr := s.donationRepo.UpdateStatus(ctx, donation.ID, domain.FailedStatus); uerr != nil {
							return fmt.Errorf("failed to abandon donation %s: %w", donation.Reference, uerr)
						}
						zap.L().Warn(
							"Donation abandoned, gateway never confirmed the reference",
							zap.String("reference", donation.Reference),
							zap.Duration("age", time.Since(donation.CreatedAt)),
						)
						return nil
					}
				}
				// остаётся pending, подхватим на следующем проходе
				return fmt.Errorf("failed to reconcile donation %s: %w", donation.Reference, err)
			}

			zap.L().Info(
				"Donation reconciled",
				zap.String("reference", donation.Reference),
				zap.String("outcome", result.Outcome),
				zap.Bool("alreadySettled", result.AlreadySettled),
			)
			return nil
		}
	}
	return nil
}
