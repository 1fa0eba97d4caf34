package service

import (
	"github.com/givehaven/givehaven/internal/config"
	"github.com/givehaven/givehaven/internal/handlers/auth"
	"github.com/givehaven/givehaven/internal/handlers/donations"
	"github.com/givehaven/givehaven/internal/handlers/issues"
	"github.com/givehaven/givehaven/internal/paystack"

	pkgauth "github.com/givehaven/givehaven/pkg/auth"

	"github.com/givehaven/givehaven/internal/repo"
	authservice "github.com/givehaven/givehaven/internal/service/authservice"
	donationservice "github.com/givehaven/givehaven/internal/service/donationservice"
	issueservice "github.com/givehaven/givehaven/internal/service/issueservice"
	verificationservice "github.com/givehaven/givehaven/internal/service/verificationservice"
)

type Services struct {
	AuthService         auth.Service
	DonationService     donations.Service
	IssueService        issues.Service
	VerificationService donations.VerificationService
}

func New(repo *repo.Repositories, gateway *paystack.Client, cfg *config.Config) *Services {
	authService := authservice.New(repo.DonorRepo, &pkgauth.HashService{}, &pkgauth.JWTService{})
	issueService := issueservice.New(repo.IssueRepo)
	donationService := donationservice.New(repo.DonationRepo, gateway, cfg)
	verificationService := verificationservice.New(repo.DonationRepo, repo.IssueRepo, gateway)

	return &Services{
		AuthService:         authService,
		DonationService:     donationService,
		IssueService:        issueService,
		VerificationService: verificationService,
	}
}
