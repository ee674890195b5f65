package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"doc-assistant-be/internal/dto"
	"doc-assistant-be/internal/entity"
	"doc-assistant-be/internal/pkg/logger"
	"doc-assistant-be/internal/pkg/serverutils"
	"doc-assistant-be/internal/repository/contract"
	"doc-assistant-be/internal/repository/specification"
	"doc-assistant-be/internal/repository/unitofwork"

	"golang.org/x/crypto/bcrypt"
)

// RefreshWindow bounds how long after the original login a token may be refreshed.
const RefreshWindow = 7 * 24 * time.Hour

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	VerifyToken(ctx context.Context, req *dto.TokenRequest) (*dto.VerifyTokenResponse, error)
	RefreshToken(ctx context.Context, req *dto.TokenRequest) (*dto.TokenResponse, error)
	CurrentUser(ctx context.Context, userId uint) (*entity.User, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	issuer     *serverutils.TokenIssuer
	logger     logger.ILogger
	now        func() time.Time
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, issuer *serverutils.TokenIssuer, logger logger.ILogger) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		issuer:     issuer,
		logger:     logger,
		now:        time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	req.Email = normalizeEmail(req.Email)
	req.FullName = strings.TrimSpace(req.FullName)
	if err := validate(req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hashStr := string(hash)

	user := &entity.User{
		Email:        req.Email,
		PasswordHash: &hashStr,
		FullName:     req.FullName,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		if errors.Is(err, contract.ErrDuplicateKey) {
			return nil, &ConflictError{Message: fmt.Sprintf("User with email %s already exists.", req.Email)}
		}
		return nil, err
	}

	s.logger.Info("AUTH", "User registered", map[string]interface{}{
		"user_id": user.Id,
	})

	return s.issue(user, time.Time{})
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validate(req); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == nil {
		s.logger.Info("AUTH", "Login rejected", map[string]interface{}{"reason": "unknown user"})
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Info("AUTH", "Login rejected", map[string]interface{}{
			"user_id": user.Id,
			"reason":  "password mismatch",
		})
		return nil, ErrInvalidCredentials
	}

	return s.issue(user, time.Time{})
}

func (s *authService) VerifyToken(ctx context.Context, req *dto.TokenRequest) (*dto.VerifyTokenResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	claims, err := s.issuer.Parse(req.Token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return &dto.VerifyTokenResponse{
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt,
	}, nil
}

// RefreshToken issues a new token carrying the original login time. Refresh
// is refused once RefreshWindow has passed since that login.
func (s *authService) RefreshToken(ctx context.Context, req *dto.TokenRequest) (*dto.TokenResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	claims, err := s.issuer.Parse(req.Token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.OrigIat.IsZero() || s.now().After(claims.OrigIat.Add(RefreshWindow)) {
		return nil, ErrRefreshExpired
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: claims.UserId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidToken
	}

	return s.issue(user, claims.OrigIat)
}

func (s *authService) CurrentUser(ctx context.Context, userId uint) (*entity.User, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return loadUser(ctx, uow, userId)
}

func (s *authService) issue(user *entity.User, origIat time.Time) (*dto.TokenResponse, error) {
	token, claims, err := s.issuer.Issue(user.Id, user.Email, origIat)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		Token:     token,
		ExpiresAt: claims.ExpiresAt,
		User:      user,
	}, nil
}

// loadUser resolves the authenticated caller. A token whose user row is gone
// is treated as unauthenticated.
func loadUser(ctx context.Context, uow unitofwork.UnitOfWork, userId uint) (*entity.User, error) {
	if userId == 0 {
		return nil, ErrUnauthenticated
	}
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnauthenticated
	}
	return user, nil
}
