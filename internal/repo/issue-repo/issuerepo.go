package issuerepo

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

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.Issue, error) {
	query := `
        SELECT id, title, description, target_amount, raised_amount, created_at
        FROM issues
        WHERE id = $1
    `
	row := r.db.QueryRow(ctx, query, id)
	var issue domain.Issue
	err := row.Scan(&issue.ID, &issue.Title, &issue.Description, &issue.TargetAmount, &issue.RaisedAmount, &issue.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find issue", zap.Error(err))
		return nil, err
	}
	return &issue, nil
}

func (r *Repository) List(ctx context.Context) ([]domain.Issue, error) {
	query := `
        SELECT id, title, description, target_amount, raised_amount, created_at
        FROM issues
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("can't get issues", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var issues []domain.Issue
	for rows.Next() {
		var issue domain.Issue
		err := rows.Scan(&issue.ID, &issue.Title, &issue.Description, &issue.TargetAmount, &issue.RaisedAmount, &issue.CreatedAt)
		if err != nil {
			zap.L().Error("can't scan issue row", zap.Error(err))
			return nil, err
		}
		issues = append(issues, issue)
	}
	return issues, nil
}

func (r *Repository) Save(ctx context.Context, issue *domain.Issue) error {
	query := `
        INSERT INTO issues (title, description, target_amount, raised_amount, created_at)
        VALUES ($1, $2, $3, 0, $4)
        RETURNING id
    `
	if issue.CreatedAt.IsZero() {
		issue.CreatedAt = time.Now()
	}
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		row := r.db.QueryRow(ctx, query, issue.Title, issue.Description, issue.TargetAmount, issue.CreatedAt)
		if err := row.Scan(&issue.ID); err != nil {
			zap.L().Error("can't save issue", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

// ApplyRaisedDelta adds delta to the running raised total as a single
// atomic increment at the storage layer. Concurrent donations to the
// same issue must not lose updates, so this is never read-modify-write.
func (r *Repository) ApplyRaisedDelta(ctx context.Context, id int, delta float64) error {
	query := `
        UPDATE issues
        SET raised_amount = raised_amount + $1
        WHERE id = $2
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		tag, err := r.db.Exec(ctx, query, delta, id)
		if err != nil {
			zap.L().Error("failed to apply raised amount delta", zap.Error(err))
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrIssueNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}
