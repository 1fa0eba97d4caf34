package authservice

import (
	"context"
	"errors"
	"time"

	"github.com/givehaven/givehaven/internal/domain"
	"github.com/givehaven/givehaven/pkg/auth"
	"go.uber.org/zap"
)

type Repo interface {
	FindByEmail(ctx context.Context, email string) (*domain.Donor, error)
	Create(ctx context.Context, donor *domain.Donor) (*domain.Donor, error)
}

type Service struct {
	donorRepo   Repo
	hashService auth.HashServiceInterface
	jwtService  auth.JWTServiceInterface
}

func New(repo Repo, hashService auth.HashServiceInterface, jwtService auth.JWTServiceInterface) *Service {
	return &Service{
		donorRepo:   repo,
		hashService: hashService,
		jwtService:  jwtService,
	}
}

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

func (s *Service) Register(ctx context.Context, email, name, password string) (*domain.Donor, error) {
	existing, err := s.donorRepo.FindByEmail(ctx, email)
	if err != nil {
		zap.L().Error("can't find donor: ", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		zap.L().Info("donor already exists", zap.String("email", email))
		return nil, ErrEmailTaken
	}
	hashedPassword, err := s.hashService.HashPassword(password)
	if err != nil {
		zap.L().Error("can't hash password: ", zap.Error(err))
		return nil, err
	}
	donor := &domain.Donor{
		Email:        email,
		Name:         name,
		PasswordHash: hashedPassword,
	}
	newDonor, err := s.donorRepo.Create(ctx, donor)
	if err != nil {
		zap.L().Error("can't create donor: ", zap.Error(err))
		return nil, err
	}

	zap.L().Info("donor successfully registered", zap.String("email", email))
	return newDonor, nil
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (*domain.Donor, error) {
	donor, err := s.donorRepo.FindByEmail(ctx, email)
	if err != nil || donor == nil {
		zap.L().Error("invalid credentials", zap.Error(err))
		return nil, ErrInvalidCredentials
	}
	if ok := s.hashService.ComparePassword(donor.PasswordHash, password); !ok {
		zap.L().Error("invalid credentials", zap.String("email", email))
		return nil, ErrInvalidCredentials
	}
	zap.L().Info("donor successfully authenticated", zap.String("email", email))
	return donor, nil
}

func (s *Service) GenerateToken(donorID int) (string, error) {
	expirationTime := time.Now().Add(15 * time.Minute)

	token, err := s.jwtService.GenerateJWT(donorID, expirationTime)
	if err != nil {
		zap.L().Error("can't generate token: ", zap.Error(err))
		return "", err
	}
	return token, nil
}
