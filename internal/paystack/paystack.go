package paystack

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/givehaven/givehaven/internal/config"
	"github.com/givehaven/givehaven/pkg/clients"
	"go.uber.org/zap"
)

// minorUnitsPerMajor: the gateway speaks kobo/cents, the rest of the
// application speaks major units. This is the only conversion point.
const minorUnitsPerMajor = 100

const successStatus = "success"

var ErrNoCredentials = errors.New("paystack secret key is not configured")

// GatewayError covers transport failures and non-2xx gateway replies.
// It never represents a legitimately declined payment.
type GatewayError struct {
	StatusCode int
	Message    string
}

func (e *GatewayError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("gateway error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("gateway error: %s", e.Message)
}

type InitializeRequest struct {
	Email       string
	Amount      float64 // major units
	Currency    string
	Reference   string
	CallbackURL string
	IssueID     string
}

type InitializeResult struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

type VerifyResult struct {
	Success         bool
	Status          string
	Amount          float64 // major units
	Currency        string
	PaidAt          string
	IssueID         string // echoed back from initialize metadata
	GatewayResponse string // processor wording, e.g. "Approved" or "Declined"
	Message         string
}

type initializePayload struct {
	Email       string            `json:"email"`
	Amount      int64             `json:"amount"`
	Currency    string            `json:"currency,omitempty"`
	Reference   string            `json:"reference,omitempty"`
	CallbackURL string            `json:"callback_url,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type initializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type verifyData struct {
	Status          string `json:"status"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	Reference       string `json:"reference"`
	PaidAt          string `json:"paid_at"`
	GatewayResponse string `json:"gateway_response"`
	Metadata        struct {
		IssueID string `json:"issue_id"`
	} `json:"metadata"`
}

type Client struct {
	url    string
	secret string
	client clients.HTTPClientI
}

func New(cfg *config.Config, client clients.HTTPClientI) *Client {
	return &Client{
		url:    cfg.PaystackAddress,
		secret: cfg.PaystackSecret,
		client: client,
	}
}

func (c *Client) headers() http.Header {
	h := http.Header{}
	h.Set("Authorization", "Bearer "+c.secret)
	h.Set("Content-Type", "application/json")
	return h
}

// Initialize registers a transaction with the gateway and returns the
// checkout reference the donor is redirected to.
func (c *Client) Initialize(ctx context.Context, req InitializeRequest) (*InitializeResult, error) {
	if c.secret == "" {
		return nil, ErrNoCredentials
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	payload := initializePayload{
		Email:       req.Email,
		Amount:      toMinorUnits(req.Amount),
		Currency:    req.Currency,
		Reference:   req.Reference,
		CallbackURL: req.CallbackURL,
	}
	if req.IssueID != "" {
		payload.Metadata = map[string]string{"issue_id": req.IssueID}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("can't marshal initialize payload: %w", err)
	}

	statusCode, respBody, _, err := c.client.Post(c.url+"/transaction/initialize", c.headers(), body)
	if err != nil {
		return nil, &GatewayError{Message: err.Error()}
	}

	resp, err := parseResponse(statusCode, respBody)
	if err != nil {
		return nil, err
	}

	var data initializeData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("can't parse initialize response: %w", err)
	}

	return &InitializeResult{
		AuthorizationURL: data.AuthorizationURL,
		AccessCode:       data.AccessCode,
		Reference:        data.Reference,
	}, nil
}

// Verify asks the gateway for the true outcome of a transaction. A
// declined payment is a normal return with Success=false, not an error.
func (c *Client) Verify(ctx context.Context, reference string) (*VerifyResult, error) {
	if c.secret == "" {
		return nil, ErrNoCredentials
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	statusCode, respBody, _, err := c.client.Get(c.url+"/transaction/verify/"+reference, c.headers())
	if err != nil {
		return nil, &GatewayError{Message: err.Error()}
	}

	resp, err := parseResponse(statusCode, respBody)
	if err != nil {
		return nil, err
	}

	var data verifyData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("can't parse verify response: %w", err)
	}

	result := &VerifyResult{
		Success:         data.Status == successStatus,
		Status:          data.Status,
		Amount:          toMajorUnits(data.Amount),
		Currency:        data.Currency,
		PaidAt:          data.PaidAt,
		IssueID:         data.Metadata.IssueID,
		GatewayResponse: data.GatewayResponse,
		Message:         resp.Message,
	}
	zap.L().Debug("gateway verify completed",
		zap.String("reference", reference),
		zap.String("status", data.Status),
	)
	return result, nil
}

func parseResponse(statusCode int, body []byte) (*apiResponse, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		if statusCode < 200 || statusCode > 299 {
			return nil, &GatewayError{StatusCode: statusCode, Message: http.StatusText(statusCode)}
		}
		return nil, fmt.Errorf("can't parse gateway response: %w", err)
	}
	if statusCode < 200 || statusCode > 299 {
		return nil, &GatewayError{StatusCode: statusCode, Message: resp.Message}
	}
	return &resp, nil
}

func toMinorUnits(major float64) int64 {
	return int64(major*minorUnitsPerMajor + 0.5)
}

func toMajorUnits(minor int64) float64 {
	return float64(minor) / minorUnitsPerMajor
}
