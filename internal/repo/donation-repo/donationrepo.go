package donationrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/givehaven/givehaven/internal/domain"
	"github.com/givehaven/givehaven/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

const donationColumns = "id, donor_id, issue_id, reference, email, amount, currency, status, created_at"

func scanDonation(row pgx.Row) (*domain.Donation, error) {
	var d domain.Donation
	err := row.Scan(&d.ID, &d.DonorID, &d.IssueID, &d.Reference, &d.Email, &d.Amount, &d.Currency, &d.Status, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Save inserts a new donation. The status always starts at pending.
func (r *Repository) Save(ctx context.Context, donation *domain.Donation) error {
	query := `
        INSERT INTO donations (donor_id, issue_id, reference, email, amount, currency, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id
    `
	donation.Status = domain.PendingStatus
	if donation.CreatedAt.IsZero() {
		donation.CreatedAt = time.Now()
	}
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		row := r.db.QueryRow(ctx, query,
			donation.DonorID, donation.IssueID, donation.Reference, donation.Email,
			donation.Amount, donation.Currency, donation.Status, donation.CreatedAt,
		)
		if err := row.Scan(&donation.ID); err != nil {
			zap.L().Error("can't save donation", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.Donation, error) {
	query := `
        SELECT ` + donationColumns + `
        FROM donations
        WHERE id = $1
    `
	donation, err := scanDonation(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find donation", zap.Error(err))
		return nil, err
	}
	return donation, nil
}

func (r *Repository) FindByReference(ctx context.Context, reference string) (*domain.Donation, error) {
	query := `
        SELECT ` + donationColumns + `
        FROM donations
        WHERE reference = $1
    `
	donation, err := scanDonation(r.db.QueryRow(ctx, query, reference))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find donation by reference", zap.Error(err))
		return nil, err
	}
	return donation, nil
}

func (r *Repository) FindByDonorID(ctx context.Context, donorID int) ([]domain.Donation, error) {
	query := `
        SELECT ` + donationColumns + `
        FROM donations
        WHERE donor_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, donorID)
	if err != nil {
		zap.L().Error("can't get donor donations", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var donations []domain.Donation
	for rows.Next() {
		var d domain.Donation
		err := rows.Scan(&d.ID, &d.DonorID, &d.IssueID, &d.Reference, &d.Email, &d.Amount, &d.Currency, &d.Status, &d.CreatedAt)
		if err != nil {
			zap.L().Error("can't scan donation row", zap.Error(err))
			return nil, err
		}
		donations = append(donations, d)
	}
	return donations, nil
}

// UpdateStatus is safe to call redundantly with the same terminal status.
func (r *Repository) UpdateStatus(ctx context.Context, id int, status string) error {
	query := `
        UPDATE donations
        SET status = $1
        WHERE id = $2
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		tag, err := r.db.Exec(ctx, query, status, id)
		if err != nil {
			zap.L().Error("failed to update donation status", zap.Error(err))
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrDonationNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

func (r *Repository) UpdateStatusByReference(ctx context.Context, reference string, status string) error {
	query := `
        UPDATE donations
        SET status = $1
        WHERE reference = $2
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		tag, err := r.db.Exec(ctx, query, status, reference)
		if err != nil {
			zap.L().Error("failed to update donation status by reference", zap.Error(err))
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrDonationNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

// FindStalePending returns pending donations created before cutoff, for
// the background reconciler.
func (r *Repository) FindStalePending(ctx context.Context, cutoff time.Time, limit uint32) ([]domain.Donation, error) {
	query := `
        SELECT ` + donationColumns + `
        FROM donations
        WHERE status = 'pending' AND created_at < $1
        ORDER BY created_at ASC
        LIMIT $2
    `
	rows, err := r.db.Query(ctx, query, cutoff, int(limit))
	if err != nil {
		zap.L().Error("can't get stale pending donations", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var donations []domain.Donation
	for rows.Next() {
		var d domain.Donation
		err := rows.Scan(&d.ID, &d.DonorID, &d.IssueID, &d.Reference, &d.Email, &d.Amount, &d.Currency, &d.Status, &d.CreatedAt)
		if err != nil {
			zap.L().Error("can't scan stale donation row", zap.Error(err))
			return nil, err
		}
		donations = append(donations, d)
	}
	return donations, nil
}
