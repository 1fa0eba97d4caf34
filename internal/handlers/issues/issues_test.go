package issues

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/givehaven/givehaven/internal/domain"
	"github.com/givehaven/givehaven/internal/dto"
	issueservice "github.com/givehaven/givehaven/internal/service/issueservice"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*IssueHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func TestGetIssuesHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		prepareMock   func()
		expectedCode  int
		expectedError string
		expectedLen   int
	}{
		{
			name: "Successful issue retrieval",
			prepareMock: func() {
				service.EXPECT().
					GetIssues(gomock.Any()).
					Return([]domain.Issue{
						{ID: 1, Title: "School supplies", TargetAmount: 250000, RaisedAmount: 13000},
						{ID: 2, Title: "Medical fund", TargetAmount: 500000},
					}, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  2,
		},
		{
			name: "Internal server error",
			prepareMock: func() {
				service.EXPECT().
					GetIssues(gomock.Any()).
					Return(nil, errors.New("error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Failed to fetch issues",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodGet, "/api/issues", nil)
			w := httptest.NewRecorder()

			handler.GetIssues(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
			if tt.expectedCode == http.StatusOK {
				var body []dto.IssueResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Len(t, body, tt.expectedLen)
			}
		})
	}
}

func TestGetIssueHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		id            string
		prepareMock   func()
		expectedCode  int
		expectedError string
		expectedBody  dto.IssueResponseDTO
	}{
		{
			name: "Successful issue retrieval",
			id:   "1",
			prepareMock: func() {
				service.EXPECT().
					GetIssue(gomock.Any(), 1).
					Return(&domain.Issue{ID: 1, Title: "School supplies", TargetAmount: 250000, RaisedAmount: 13000}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: dto.IssueResponseDTO{ID: 1, Title: "School supplies", TargetAmount: 250000, RaisedAmount: 13000},
		},
		{
			name:          "Invalid issue id",
			id:            "abc",
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid issue id",
		},
		{
			name: "Issue not found",
			id:   "99",
			prepareMock: func() {
				service.EXPECT().
					GetIssue(gomock.Any(), 99).
					Return(nil, domain.ErrIssueNotFound)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: domain.ErrIssueNotFound.Error(),
		},
		{
			name: "Internal server error",
			id:   "1",
			prepareMock: func() {
				service.EXPECT().
					GetIssue(gomock.Any(), 1).
					Return(nil, errors.New("error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodGet, "/api/issues/"+tt.id, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
			w := httptest.NewRecorder()

			handler.GetIssue(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
			if tt.expectedCode == http.StatusOK {
				var body dto.IssueResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, tt.expectedBody, body)
			}
		})
	}
}

func TestCreateIssueHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful issue creation",
			body: `{"title":"School supplies","target_amount":250000}`,
			prepareMock: func() {
				service.EXPECT().
					CreateIssue(gomock.Any(), &domain.Issue{Title: "School supplies", TargetAmount: 250000}).
					Return(&domain.Issue{ID: 1, Title: "School supplies", TargetAmount: 250000}, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:          "Invalid request body",
			body:          `{not json`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name: "Title is required",
			body: `{"target_amount":250000}`,
			prepareMock: func() {
				service.EXPECT().
					CreateIssue(gomock.Any(), gomock.Any()).
					Return(nil, issueservice.ErrTitleRequired)
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: issueservice.ErrTitleRequired.Error(),
		},
		{
			name: "Internal server error",
			body: `{"title":"School supplies","target_amount":250000}`,
			prepareMock: func() {
				service.EXPECT().
					CreateIssue(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodPost, "/api/issues", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			handler.CreateIssue(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
		})
	}
}
