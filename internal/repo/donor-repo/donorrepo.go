package donorrepo

import (
	"context"
	"errors"

	"github.com/givehaven/givehaven/internal/domain"
	"github.com/givehaven/givehaven/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (repo *Repository) FindByEmail(ctx context.Context, email string) (*domain.Donor, error) {
	var donor domain.Donor
	err := repo.db.QueryRow(ctx, "SELECT id, email, name, password_hash FROM donors WHERE email = $1", email).
		Scan(&donor.ID, &donor.Email, &donor.Name, &donor.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find donor", zap.Error(err))
		return nil, err
	}
	return &donor, nil
}

func (repo *Repository) Create(ctx context.Context, donor *domain.Donor) (*domain.Donor, error) {
	query := `
		INSERT INTO donors (email, name, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := repo.db.QueryRow(ctx, query, donor.Email, donor.Name, donor.PasswordHash).Scan(&donor.ID)
	if err != nil {
		zap.L().Error("can't save donor", zap.Error(err))
		return nil, err
	}
	return donor, nil
}
