package repo

import (
	"github.com/givehaven/givehaven/internal/pg"
	donationrepo "github.com/givehaven/givehaven/internal/repo/donation-repo"
	donorrepo "github.com/givehaven/givehaven/internal/repo/donor-repo"
	issuerepo "github.com/givehaven/givehaven/internal/repo/issue-repo"
	"github.com/givehaven/givehaven/internal/service/authservice"
	"github.com/givehaven/givehaven/internal/service/donationservice"
	"github.com/givehaven/givehaven/internal/service/issueservice"
)

type Repositories struct {
	DonorRepo    authservice.Repo
	DonationRepo donationservice.DonationRepo
	IssueRepo    issueservice.IssueRepo
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	donorRepo := donorrepo.New(conn)
	donationRepo := donationrepo.New(conn, txManager)
	issueRepo := issuerepo.New(conn, txManager)

	return &Repositories{
		DonorRepo:    donorRepo,
		DonationRepo: donationRepo,
		IssueRepo:    issueRepo,
	}
}
