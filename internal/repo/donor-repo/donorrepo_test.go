package donorrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/givehaven/givehaven/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func TestRepository_FindByEmail(t *testing.T) {
	repo, mock := NewMock(t)

	query := regexp.QuoteMeta(`SELECT id, email, name, password_hash FROM donors WHERE email = $1`)

	tests := []struct {
		name      string
		email     string
		mockSetup func()
		expectErr bool
		result    *domain.Donor
	}{
		{
			name:  "Donor exists",
			email: "donor@example.com",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "email", "name", "password_hash"}).
					AddRow(1, "donor@example.com", "Ada", "hashed")
				mock.ExpectQuery(query).WithArgs("donor@example.com").WillReturnRows(rows)
			},
			result: &domain.Donor{
				ID:           1,
				Email:        "donor@example.com",
				Name:         "Ada",
				PasswordHash: "hashed",
			},
		},
		{
			name:  "Donor does not exist",
			email: "missing@example.com",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs("missing@example.com").WillReturnError(pgx.ErrNoRows)
			},
			result: nil,
		},
		{
			name:  "Database error",
			email: "donor@example.com",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs("donor@example.com").WillReturnError(errors.New("database error"))
			},
			expectErr: true,
			result:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByEmail(context.Background(), tt.email)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.result, result)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)

	query := regexp.QuoteMeta(`INSERT INTO donors (email, name, password_hash) VALUES ($1, $2, $3) RETURNING id`)

	tests := []struct {
		name      string
		donor     *domain.Donor
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Successful creation",
			donor: &domain.Donor{
				Email:        "donor@example.com",
				Name:         "Ada",
				PasswordHash: "hashed",
			},
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id"}).AddRow(1)
				mock.ExpectQuery(query).
					WithArgs("donor@example.com", "Ada", "hashed").
					WillReturnRows(rows)
			},
		},
		{
			name: "Database error",
			donor: &domain.Donor{
				Email:        "donor@example.com",
				Name:         "Ada",
				PasswordHash: "hashed",
			},
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs("donor@example.com", "Ada", "hashed").
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.Create(context.Background(), tt.donor)
			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 1, result.ID)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
