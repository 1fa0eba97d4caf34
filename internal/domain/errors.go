package domain

import "errors"

var (
	ErrDonationNotFound = errors.New("donation not found")
	ErrIssueNotFound    = errors.New("issue not found")
	ErrDonorNotFound    = errors.New("donor not found")
)
