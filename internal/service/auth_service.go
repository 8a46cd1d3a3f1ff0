package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/AniruddhAgrahari/sweet-shop-management-system/internal/apierror"
	"github.com/AniruddhAgrahari/sweet-shop-management-system/internal/config"
	"github.com/AniruddhAgrahari/sweet-shop-management-system/internal/dto"
	"github.com/AniruddhAgrahari/sweet-shop-management-system/internal/model"
	"github.com/AniruddhAgrahari/sweet-shop-management-system/internal/repository"
	"github.com/AniruddhAgrahari/sweet-shop-management-system/internal/security"
	"github.com/AniruddhAgrahari/sweet-shop-management-system/internal/token"
)

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	BootstrapAdmin(ctx context.Context, req dto.BootstrapAdminRequest) (*dto.UserResponse, error)
	ResetAdminPassword(ctx context.Context, req dto.ResetAdminPasswordRequest) (*dto.UserResponse, error)
}

type authService struct {
	repo   repository.UserRepository
	hasher security.Hasher
	tokens *token.Service
	cfg    *config.Config
}

func NewAuthService(repo repository.UserRepository, hasher security.Hasher, tokens *token.Service, cfg *config.Config) AuthService {
	return &authService{repo: repo, hasher: hasher, tokens: tokens, cfg: cfg}
}

// Register creates a customer identity. Public self-registration can never
// produce an admin; the role is fixed here, not taken from the request.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error) {
	if _, err := s.repo.FindByUsername(ctx, req.Username); err == nil {
		return nil, fmt.Errorf("%w: username already taken", apierror.ErrConflict)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         model.RoleCustomer,
	}
	// The unique indexes are the real guard: two concurrent registrations of
	// the same username/email race past the pre-check, but only one insert wins.
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, translateStorageErr(err)
	}
	return userToResponse(user), nil
}

// Login verifies credentials and mints a bearer token. The failure message is
// identical for unknown usernames and wrong passwords so that the endpoint
// cannot be used to enumerate accounts.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, apierror.ErrInvalidCredentials
	}
	if !s.hasher.Check(req.Password, user.PasswordHash) {
		return nil, apierror.ErrInvalidCredentials
	}

	accessToken, err := s.tokens.Issue(user.Username, user.Role)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresIn:   s.cfg.JWTExpirationMinutes * 60,
	}, nil
}

// BootstrapAdmin creates the first admin identity. Once any admin exists the
// path is permanently closed; there is no way back to zero admins from here.
func (s *authService) BootstrapAdmin(ctx context.Context, req dto.BootstrapAdminRequest) (*dto.UserResponse, error) {
	n, err := s.repo.CountAdmins(ctx)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, fmt.Errorf("%w: an admin account already exists", apierror.ErrForbidden)
	}
	if _, err := s.repo.FindByUsername(ctx, req.Username); err == nil {
		return nil, fmt.Errorf("%w: username already taken", apierror.ErrConflict)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Username:     req.Username,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}
	// The CountAdmins pre-check above is only a fast path: two bootstraps with
	// different usernames can both observe zero admins. The single-admin unique
	// index is the real gate, so a duplicate-key failure here means either the
	// username or the admin slot was taken in the meantime.
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if _, lookupErr := s.repo.FindByUsername(ctx, req.Username); lookupErr == nil {
				return nil, fmt.Errorf("%w: username already taken", apierror.ErrConflict)
			}
			return nil, fmt.Errorf("%w: an admin account already exists", apierror.ErrForbidden)
		}
		return nil, err
	}
	return userToResponse(user), nil
}

// ResetAdminPassword is a break-glass utility for local operators: it
// overwrites an admin's password hash without any user token, gated solely on
// the process setup secret. Never reachable when no secret is configured.
func (s *authService) ResetAdminPassword(ctx context.Context, req dto.ResetAdminPasswordRequest) (*dto.UserResponse, error) {
	if s.cfg.SetupSecret == "" ||
		subtle.ConstantTimeCompare([]byte(req.SetupSecret), []byte(s.cfg.SetupSecret)) != 1 {
		return nil, fmt.Errorf("%w: setup secret mismatch", apierror.ErrForbidden)
	}

	user, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil || user.Role != model.RoleAdmin {
		return nil, fmt.Errorf("%w: no admin account with that username", apierror.ErrNotFound)
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return nil, err
	}
	user.PasswordHash = hash
	return userToResponse(user), nil
}

// translateStorageErr maps GORM errors onto the API taxonomy; anything else
// propagates untouched as an internal failure.
func translateStorageErr(err error) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: username or email already taken", apierror.ErrConflict)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apierror.ErrNotFound
	default:
		return err
	}
}

func userToResponse(u *model.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Email:    u.Email,
		Role:     string(u.Role),
	}
}
