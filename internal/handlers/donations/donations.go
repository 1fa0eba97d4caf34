package donations

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/givehaven/givehaven/internal/domain"
	"github.com/givehaven/givehaven/internal/dto"
	"github.com/givehaven/givehaven/internal/paystack"
	donationservice "github.com/givehaven/givehaven/internal/service/donationservice"
	verificationservice "github.com/givehaven/givehaven/internal/service/verificationservice"
	"github.com/givehaven/givehaven/pkg/auth"
	"github.com/givehaven/givehaven/pkg/utils"
)

type Service interface {
	Create(ctx context.Context, req donationservice.CreateRequest) (*domain.Donation, *paystack.InitializeResult, error)
	GetDonations(ctx context.Context, donorID int) ([]domain.Donation, error)
}

type VerificationService interface {
	Verify(ctx context.Context, reference string, donationID int, issueID int) (*verificationservice.Result, error)
}

type DonationHandler struct {
	donationService     Service
	verificationService VerificationService
}

func New(donationService Service, verificationService VerificationService) *DonationHandler {
	return &DonationHandler{
		donationService:     donationService,
		verificationService: verificationService,
	}
}

// Create godoc
//
//	@Summary		Start a donation
//	@Description	Create a pending donation and get the gateway checkout URL to redirect the donor to.
//	@Tags			Пожертвования
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateDonationRequestDTO	true	"Donation request payload"
//	@Success		201		{object}	dto.CreateDonationResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		409		{object}	utils.Response	"Reference already used"
//	@Failure		502		{object}	utils.Response	"Payment gateway unavailable"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/donations [post]
func (h *DonationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDonationRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	createReq := donationservice.CreateRequest{
		Email:     req.Email,
		Amount:    req.Amount,
		Currency:  req.Currency,
		Reference: req.Reference,
		IssueID:   req.IssueID,
	}
	if donorID, ok := auth.DonorIDFromContext(r.Context()); ok {
		createReq.DonorID = &donorID
	}

	donation, init, err := h.donationService.Create(r.Context(), createReq)
	if err != nil {
		var gatewayErr *paystack.GatewayError
		switch {
		case errors.Is(err, donationservice.ErrInvalidAmount),
			errors.Is(err, donationservice.ErrEmailRequired):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, donationservice.ErrReferenceAlreadyUsed):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		case errors.As(err, &gatewayErr):
			utils.RespondWithError(w, http.StatusBadGateway, "Payment gateway unavailable, please try again")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, dto.CreateDonationResponseDTO{
		DonationID:       donation.ID,
		Reference:        donation.Reference,
		AuthorizationURL: init.AuthorizationURL,
		AccessCode:       init.AccessCode,
	})
}

// Verify godoc
//
//	@Summary		Verify a donation payment
//	@Description	Gateway callback target: settle the true outcome of a payment by its reference. Safe to call repeatedly.
//	@Tags			Пожертвования
//	@Produce		json
//	@Param			reference	query		string	true	"Payment reference"
//	@Param			donation_id	query		int		true	"Donation id"
//	@Param			issue_id	query		int		false	"Target issue id"
//	@Success		200			{object}	dto.VerifyDonationResponseDTO
//	@Failure		400			{object}	utils.Response	"Missing reference or donation id"
//	@Failure		404			{object}	utils.Response	"Unknown donation"
//	@Failure		502			{object}	utils.Response	"Verification temporarily unavailable"
//	@Failure		500			{object}	utils.Response	"Internal server error"
//	@Router			/api/donations/verify [get]
func (h *DonationHandler) Verify(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	// the gateway redirect carries the reference as trxref as well
	reference := query.Get("reference")
	if reference == "" {
		reference = query.Get("trxref")
	}
	donationID, _ := strconv.Atoi(query.Get("donation_id"))
	issueID, _ := strconv.Atoi(query.Get("issue_id"))

	result, err := h.verificationService.Verify(r.Context(), reference, donationID, issueID)
	if err != nil {
		var gatewayErr *paystack.GatewayError
		switch {
		case errors.Is(err, verificationservice.ErrInvalidInput):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrDonationNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.As(err, &gatewayErr):
			// no claim about the final payment status
			utils.RespondWithError(w, http.StatusBadGateway, "Payment verification is temporarily unavailable, please try again")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.VerifyDonationResponseDTO{
		Outcome: result.Outcome,
		Amount:  result.Amount,
		Message: result.Message,
	})
}

// GetDonations godoc
//
//	@Summary		Get donation history
//	@Description	Get donations made by the authenticated donor, newest first.
//	@Tags			Пожертвования
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.DonationResponseDTO	"Donation history"
//	@Success		204	{object}	utils.Response			"No donations found"
//	@Failure		401	{object}	utils.Response			"Donor not authorized"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/user/donations [get]
func (h *DonationHandler) GetDonations(w http.ResponseWriter, r *http.Request) {
	donorID := r.Context().Value(auth.DonorIDKey).(int)

	donations, err := h.donationService.GetDonations(r.Context(), donorID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch donations")
		return
	}

	if len(donations) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "Donations not found")
		return
	}

	response := make([]dto.DonationResponseDTO, len(donations))
	for i, d := range donations {
		response[i] = dto.DonationResponseDTO{
			ID:        d.ID,
			Reference: d.Reference,
			Amount:    d.Amount,
			Currency:  d.Currency,
			Status:    d.Status,
			IssueID:   d.IssueID,
			CreatedAt: d.CreatedAt,
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, response)
}
