package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

// ValidationError carries the full list of violated registration rules.
// It unwraps to domain.ErrValidation so the error handler maps it to 400.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

func (e *ValidationError) Unwrap() error { return domain.ErrValidation }

// AuthService implements registration, login, and account administration.
type AuthService struct {
	repo     ports.UserRepository
	verifier ports.CredentialVerifier
}

func NewAuthService(repo ports.UserRepository, verifier ports.CredentialVerifier) *AuthService {
	return &AuthService{repo: repo, verifier: verifier}
}

// Register validates the payload, rejects duplicate emails, and persists a
// new account. The stored role is always RoleUser; nothing the client sends
// can influence it. No write happens unless every check passes.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	result := ValidateRegistration(input)
	if !result.Valid {
		return nil, &ValidationError{Errors: result.Errors}
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if err != domain.ErrUserNotFound {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     strings.TrimSpace(input.Username),
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return s.repo.Create(ctx, user)
}

// Login authenticates by email and password and issues a credential. A
// missing account and a wrong password produce the same error so the
// response cannot reveal whether the email is registered.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if err == domain.ErrUserNotFound {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	credential, err := s.verifier.Issue(ctx, domain.Identity{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
	if err != nil {
		return "", nil, fmt.Errorf("issue credential: %w", err)
	}

	return credential, user, nil
}

// Me loads the account behind an authenticated identity. Accounts are never
// deleted by this system, but a credential can in principle outlive its
// record, so absence maps to ErrUserNotFound rather than a 500.
func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

// ListUsers returns one page of accounts for the admin user screen.
func (s *AuthService) ListUsers(ctx context.Context, page domain.Page) ([]domain.User, int64, error) {
	return s.repo.List(ctx, page)
}

// UpdateRole sets the target account's role. The self-change guard runs
// before any repository access so a rejected request provably mutates
// nothing.
func (s *AuthService) UpdateRole(ctx context.Context, actor domain.Identity, targetID, role string) (*domain.User, error) {
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}
	if actor.ID == targetID {
		return nil, domain.ErrSelfRoleChange
	}

	return s.repo.UpdateRole(ctx, targetID, role)
}
