package repo

import (
	"testing"

	"github.com/givehaven/givehaven/internal/pg"
	donationrepo "github.com/givehaven/givehaven/internal/repo/donation-repo"
	donorrepo "github.com/givehaven/givehaven/internal/repo/donor-repo"
	issuerepo "github.com/givehaven/givehaven/internal/repo/issue-repo"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*Repositories, pgxmock.PgxPoolIface) {
	ctrl := gomock.NewController(t)
	mockDB, err := pgxmock.NewPool()
	mockTxManager := pg.NewMockTXManager(ctrl)
	assert.NoError(t, err)
	repo := New(mockDB, mockTxManager)
	defer mockDB.Close()

	return repo, mockDB
}

func TestNew(t *testing.T) {
	repo, mock := NewMock(t)

	assert.NotNil(t, repo.DonorRepo)
	assert.NotNil(t, repo.DonationRepo)
	assert.NotNil(t, repo.IssueRepo)

	assert.IsType(t, &donorrepo.Repository{}, repo.DonorRepo)
	assert.IsType(t, &donationrepo.Repository{}, repo.DonationRepo)
	assert.IsType(t, &issuerepo.Repository{}, repo.IssueRepo)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unmet expectations: %v", err)
	}
}
