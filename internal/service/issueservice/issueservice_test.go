package issueservice

import (
	"context"
	"errors"
	"testing"

	"github.com/givehaven/givehaven/internal/domain"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*Service, *MockIssueRepo) {
	ctrl := gomock.NewController(t)
	repo := NewMockIssueRepo(ctrl)
	service := New(repo)
	defer ctrl.Finish()
	return service, repo
}

func TestGetIssue(t *testing.T) {
	service, repo := NewMock(t)

	tests := []struct {
		name          string
		id            int
		prepareMock   func()
		expectedIssue *domain.Issue
		expectedError error
	}{
		{
			name: "Issue found",
			id:   1,
			prepareMock: func() {
				repo.EXPECT().FindByID(context.Background(), 1).
					Return(&domain.Issue{ID: 1, Title: "School supplies", TargetAmount: 250000}, nil)
			},
			expectedIssue: &domain.Issue{ID: 1, Title: "School supplies", TargetAmount: 250000},
		},
		{
			name: "Issue not found",
			id:   99,
			prepareMock: func() {
				repo.EXPECT().FindByID(context.Background(), 99).Return(nil, nil)
			},
			expectedError: domain.ErrIssueNotFound,
		},
		{
			name: "Database error",
			id:   1,
			prepareMock: func() {
				repo.EXPECT().FindByID(context.Background(), 1).Return(nil, errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			issue, err := service.GetIssue(context.Background(), tt.id)

			if tt.expectedError != nil {
				assert.EqualError(t, err, tt.expectedError.Error())
				assert.Nil(t, issue)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedIssue, issue)
			}
		})
	}
}

func TestGetIssues(t *testing.T) {
	service, repo := NewMock(t)

	tests := []struct {
		name          string
		prepareMock   func()
		expectedCount int
		expectedError error
	}{
		{
			name: "Issues found",
			prepareMock: func() {
				repo.EXPECT().List(context.Background()).Return([]domain.Issue{
					{ID: 1, Title: "School supplies"},
					{ID: 2, Title: "Medical fund"},
				}, nil)
			},
			expectedCount: 2,
		},
		{
			name: "Database error",
			prepareMock: func() {
				repo.EXPECT().List(context.Background()).Return(nil, errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			issues, err := service.GetIssues(context.Background())

			if tt.expectedError != nil {
				assert.EqualError(t, err, tt.expectedError.Error())
			} else {
				assert.NoError(t, err)
				assert.Len(t, issues, tt.expectedCount)
			}
		})
	}
}

func TestCreateIssue(t *testing.T) {
	service, repo := NewMock(t)

	tests := []struct {
		name          string
		issue         *domain.Issue
		prepareMock   func()
		expectedError error
	}{
		{
			name:  "Successful creation",
			issue: &domain.Issue{Title: "School supplies", TargetAmount: 250000},
			prepareMock: func() {
				repo.EXPECT().Save(context.Background(), gomock.Any()).DoAndReturn(func(ctx context.Context, issue *domain.Issue) error {
					issue.ID = 1
					return nil
				})
			},
		},
		{
			name:        "Title is required",
			issue:       &domain.Issue{TargetAmount: 250000},
			prepareMock: func() {},
			expectedError: ErrTitleRequired,
		},
		{
			name:  "Database error",
			issue: &domain.Issue{Title: "School supplies"},
			prepareMock: func() {
				repo.EXPECT().Save(context.Background(), gomock.Any()).Return(errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			issue, err := service.CreateIssue(context.Background(), tt.issue)

			if tt.expectedError != nil {
				assert.EqualError(t, err, tt.expectedError.Error())
				assert.Nil(t, issue)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 1, issue.ID)
			}
		})
	}
}
