package issuerepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/givehaven/givehaven/internal/domain"
	"github.com/givehaven/givehaven/internal/pg"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	mockTxManager := pg.NewMockTXManager(ctrl)

	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB, mockTxManager)
	defer mockDB.Close()
	defer ctrl.Finish()

	return repo, mockDB, mockTxManager
}

func TestRepository_FindByID(t *testing.T) {
	repo, mock, _ := NewMock(t)
	timeNow := time.Now()

	query := regexp.QuoteMeta(`SELECT id, title, description, target_amount, raised_amount, created_at FROM issues WHERE id = $1`)

	tests := []struct {
		name      string
		id        int
		mockSetup func()
		expectErr bool
		result    *domain.Issue
	}{
		{
			name: "Issue exists",
			id:   1,
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "title", "description", "target_amount", "raised_amount", "created_at"}).
					AddRow(1, "School supplies", "Notebooks and uniforms", 250000.0, 13000.0, timeNow)
				mock.ExpectQuery(query).WithArgs(1).WillReturnRows(rows)
			},
			result: &domain.Issue{
				ID:           1,
				Title:        "School supplies",
				Description:  "Notebooks and uniforms",
				TargetAmount: 250000,
				RaisedAmount: 13000,
				CreatedAt:    timeNow,
			},
		},
		{
			name: "Issue does not exist",
			id:   99,
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(99).WillReturnError(pgx.ErrNoRows)
			},
			result: nil,
		},
		{
			name: "Database error",
			id:   1,
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(1).WillReturnError(errors.New("database error"))
			},
			expectErr: true,
			result:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByID(context.Background(), tt.id)
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

func TestRepository_List(t *testing.T) {
	repo, mock, _ := NewMock(t)
	timeNow := time.Now()

	query := regexp.QuoteMeta(`SELECT id, title, description, target_amount, raised_amount, created_at FROM issues ORDER BY created_at DESC`)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		count     int
	}{
		{
			name: "Issues found",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "title", "description", "target_amount", "raised_amount", "created_at"}).
					AddRow(2, "Medical fund", "", 500000.0, 0.0, timeNow).
					AddRow(1, "School supplies", "Notebooks and uniforms", 250000.0, 13000.0, timeNow)
				mock.ExpectQuery(query).WillReturnRows(rows)
			},
			count: 2,
		},
		{
			name: "No issues",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "title", "description", "target_amount", "raised_amount", "created_at"})
				mock.ExpectQuery(query).WillReturnRows(rows)
			},
			count: 0,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(query).WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.List(context.Background())
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Len(t, result, tt.count)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_Save(t *testing.T) {
	repo, mock, tx := NewMock(t)
	timeNow := time.Now()

	query := regexp.QuoteMeta(`INSERT INTO issues (title, description, target_amount, raised_amount, created_at) VALUES ($1, $2, $3, 0, $4) RETURNING id`)

	tests := []struct {
		name      string
		issue     *domain.Issue
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Successful save",
			issue: &domain.Issue{
				Title:        "School supplies",
				Description:  "Notebooks and uniforms",
				TargetAmount: 250000,
				CreatedAt:    timeNow,
			},
			mockSetup: func() {
				tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
					rows := pgxmock.NewRows([]string{"id"}).AddRow(1)
					mock.ExpectQuery(query).
						WithArgs("School supplies", "Notebooks and uniforms", 250000.0, timeNow).
						WillReturnRows(rows)
					return fn(ctx)
				})
			},
		},
		{
			name: "Database error",
			issue: &domain.Issue{
				Title:        "School supplies",
				Description:  "Notebooks and uniforms",
				TargetAmount: 250000,
				CreatedAt:    timeNow,
			},
			mockSetup: func() {
				tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
					mock.ExpectQuery(query).
						WithArgs("School supplies", "Notebooks and uniforms", 250000.0, timeNow).
						WillReturnError(errors.New("database error"))
					return fn(ctx)
				})
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := repo.Save(context.Background(), tt.issue)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 1, tt.issue.ID)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_ApplyRaisedDelta(t *testing.T) {
	repo, mock, tx := NewMock(t)

	query := regexp.QuoteMeta(`UPDATE issues SET raised_amount = raised_amount + $1 WHERE id = $2`)

	tests := []struct {
		name      string
		delta     float64
		mockSetup func()
		wantErr   error
	}{
		{
			name:  "Successful increment",
			delta: 3000,
			mockSetup: func() {
				tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
					mock.ExpectExec(query).
						WithArgs(3000.0, 1).
						WillReturnResult(pgxmock.NewResult("UPDATE", 1))
					return fn(ctx)
				})
			},
		},
		{
			name:  "Issue does not exist",
			delta: 3000,
			mockSetup: func() {
				tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
					mock.ExpectExec(query).
						WithArgs(3000.0, 1).
						WillReturnResult(pgxmock.NewResult("UPDATE", 0))
					return fn(ctx)
				})
			},
			wantErr: domain.ErrIssueNotFound,
		},
		{
			name:  "Database error",
			delta: 3000,
			mockSetup: func() {
				tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
					mock.ExpectExec(query).
						WithArgs(3000.0, 1).
						WillReturnError(errors.New("database error"))
					return fn(ctx)
				})
			},
			wantErr: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := repo.ApplyRaisedDelta(context.Background(), 1, tt.delta)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// Два пожертвования в один сбор: каждое отдаёт БД только свою дельту,
// порядок применения не влияет на итог.
func TestRepository_ApplyRaisedDelta_ConcurrentDeltas(t *testing.T) {
	repo, mock, tx := NewMock(t)

	query := regexp.QuoteMeta(`UPDATE issues SET raised_amount = raised_amount + $1 WHERE id = $2`)

	tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
		mock.ExpectExec(query).
			WithArgs(1000.0, 1).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		return fn(ctx)
	})
	tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
		mock.ExpectExec(query).
			WithArgs(2500.0, 1).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		return fn(ctx)
	})

	assert.NoError(t, repo.ApplyRaisedDelta(context.Background(), 1, 1000))
	assert.NoError(t, repo.ApplyRaisedDelta(context.Background(), 1, 2500))
	assert.NoError(t, mock.ExpectationsWereMet())
}
