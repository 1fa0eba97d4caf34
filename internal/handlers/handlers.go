package handlers

import (
	"net/http"

	_ "github.com/givehaven/givehaven/docs"
	authhandlers "github.com/givehaven/givehaven/internal/handlers/auth"
	donationshandlers "github.com/givehaven/givehaven/internal/handlers/donations"
	issueshandlers "github.com/givehaven/givehaven/internal/handlers/issues"
	"github.com/givehaven/givehaven/internal/service"
	"github.com/givehaven/givehaven/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type DonationHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Verify(w http.ResponseWriter, r *http.Request)
	GetDonations(w http.ResponseWriter, r *http.Request)
}

type IssueHandler interface {
	GetIssues(w http.ResponseWriter, r *http.Request)
	GetIssue(w http.ResponseWriter, r *http.Request)
	CreateIssue(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler     AuthHandler
	DonationHandler DonationHandler
	IssueHandler    IssueHandler
}

func New(s *service.Services) *Handlers {
	return &Handlers{
		AuthHandler:     authhandlers.New(s.AuthService),
		DonationHandler: donationshandlers.New(s.DonationService, s.VerificationService),
		IssueHandler:    issueshandlers.New(s.IssueService),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/api", func(r chi.Router) {
		r.Route("/donations", func(r chi.Router) {
			r.With(auth.OptionalAuthMiddleware).Post("/", h.DonationHandler.Create)
			r.Get("/verify", h.DonationHandler.Verify)
		})
		r.Route("/issues", func(r chi.Router) {
			r.Get("/", h.IssueHandler.GetIssues)
			r.Get("/{id}", h.IssueHandler.GetIssue)
			r.With(auth.AuthMiddleware).Post("/", h.IssueHandler.CreateIssue)
		})
		r.Route("/user", func(r chi.Router) {
			r.Post("/register", h.AuthHandler.Register)
			r.Post("/login", h.AuthHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(auth.AuthMiddleware)
				r.Get("/donations", h.DonationHandler.GetDonations)
			})
		})
	})

	return r
}
