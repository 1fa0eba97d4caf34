package issues

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/givehaven/givehaven/internal/domain"
	"github.com/givehaven/givehaven/internal/dto"
	issueservice "github.com/givehaven/givehaven/internal/service/issueservice"
	"github.com/givehaven/givehaven/pkg/utils"
)

type Service interface {
	GetIssue(ctx context.Context, id int) (*domain.Issue, error)
	GetIssues(ctx context.Context) ([]domain.Issue, error)
	CreateIssue(ctx context.Context, issue *domain.Issue) (*domain.Issue, error)
}

type IssueHandler struct {
	issueService Service
}

func New(issueService Service) *IssueHandler {
	return &IssueHandler{
		issueService: issueService,
	}
}

func toResponseDTO(issue *domain.Issue) dto.IssueResponseDTO {
	return dto.IssueResponseDTO{
		ID:           issue.ID,
		Title:        issue.Title,
		Description:  issue.Description,
		TargetAmount: issue.TargetAmount,
		RaisedAmount: issue.RaisedAmount,
		CreatedAt:    issue.CreatedAt,
	}
}

// GetIssues godoc
//
//	@Summary		List fundraising issues
//	@Description	List all fundraising issues with their running raised totals, newest first.
//	@Tags			Сборы
//	@Produce		json
//	@Success		200	{array}		dto.IssueResponseDTO
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/issues [get]
func (h *IssueHandler) GetIssues(w http.ResponseWriter, r *http.Request) {
	issues, err := h.issueService.GetIssues(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch issues")
		return
	}

	response := make([]dto.IssueResponseDTO, len(issues))
	for i, issue := range issues {
		response[i] = toResponseDTO(&issue)
	}

	utils.RespondWithJSON(w, http.StatusOK, response)
}

// GetIssue godoc
//
//	@Summary		Get one fundraising issue
//	@Description	Get a fundraising issue by id, including the amount raised so far.
//	@Tags			Сборы
//	@Produce		json
//	@Param			id	path		int	true	"Issue id"
//	@Success		200	{object}	dto.IssueResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid issue id"
//	@Failure		404	{object}	utils.Response	"Issue not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/issues/{id} [get]
func (h *IssueHandler) GetIssue(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid issue id")
		return
	}

	issue, err := h.issueService.GetIssue(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrIssueNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, toResponseDTO(issue))
}

// CreateIssue godoc
//
//	@Summary		Create a fundraising issue
//	@Description	Register a new fundraising need. The raised total always starts at zero.
//	@Tags			Сборы
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateIssueRequestDTO	true	"Issue payload"
//	@Success		201		{object}	dto.IssueResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"Not authorized"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/issues [post]
func (h *IssueHandler) CreateIssue(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateIssueRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	issue, err := h.issueService.CreateIssue(r.Context(), &domain.Issue{
		Title:        req.Title,
		Description:  req.Description,
		TargetAmount: req.TargetAmount,
	})
	if err != nil {
		if errors.Is(err, issueservice.ErrTitleRequired) {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, toResponseDTO(issue))
}
