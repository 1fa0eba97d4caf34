package issueservice

import (
	"context"
	"errors"

	"github.com/givehaven/givehaven/internal/domain"
	"go.uber.org/zap"
)

type IssueRepo interface {
	FindByID(ctx context.Context, id int) (*domain.Issue, error)
	List(ctx context.Context) ([]domain.Issue, error)
	Save(ctx context.Context, issue *domain.Issue) error
	ApplyRaisedDelta(ctx context.Context, id int, delta float64) error
}

type Service struct {
	repo IssueRepo
}

func New(repo IssueRepo) *Service {
	return &Service{
		repo: repo,
	}
}

var ErrTitleRequired = errors.New("issue title is required")

func (s *Service) GetIssue(ctx context.Context, id int) (*domain.Issue, error) {
	issue, err := s.repo.FindByID(ctx, id)
	if err != nil {
		zap.L().Error("failed to get issue", zap.Error(err))
		return nil, err
	}
	if issue == nil {
		return nil, domain.ErrIssueNotFound
	}
	return issue, nil
}

func (s *Service) GetIssues(ctx context.Context) ([]domain.Issue, error) {
	issues, err := s.repo.List(ctx)
	if err != nil {
		zap.L().Error("failed to get issues", zap.Error(err))
		return nil, err
	}
	return issues, nil
}

func (s *Service) CreateIssue(ctx context.Context, issue *domain.Issue) (*domain.Issue, error) {
	if issue.Title == "" {
		return nil, ErrTitleRequired
	}
	if err := s.repo.Save(ctx, issue); err != nil {
		zap.L().Error("can't save issue: ", zap.Error(err))
		return nil, err
	}
	return issue, nil
}
