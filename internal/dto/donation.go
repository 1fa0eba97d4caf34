package dto

import "time"

type CreateDonationRequestDTO struct {
	Email     string  `json:"email" example:"donor@example.com"`
	Amount    float64 `json:"amount" example:"3000"`
	Currency  string  `json:"currency,omitempty" example:"NGN"`
	Reference string  `json:"reference,omitempty" example:"ref_abc"`
	IssueID   *int    `json:"issue_id,omitempty" example:"1"`
}

type CreateDonationResponseDTO struct {
	DonationID       int    `json:"donation_id" example:"1"`
	Reference        string `json:"reference" example:"ref_abc"`
	AuthorizationURL string `json:"authorization_url" example:"https://checkout.paystack.com/abc123"`
	AccessCode       string `json:"access_code" example:"abc123"`
}

type VerifyDonationResponseDTO struct {
	Outcome string  `json:"outcome" example:"success"`
	Amount  float64 `json:"amount,omitempty" example:"3000"`
	Message string  `json:"message,omitempty" example:"Declined"`
}

type DonationResponseDTO struct {
	ID        int       `json:"id" example:"1"`
	Reference string    `json:"reference" example:"ref_abc"`
	Amount    float64   `json:"amount" example:"3000"`
	Currency  string    `json:"currency" example:"NGN"`
	Status    string    `json:"status" example:"completed"`
	IssueID   *int      `json:"issue_id,omitempty" example:"1"`
	CreatedAt time.Time `json:"created_at" example:"2024-05-01T12:00:00+01:00"`
}
