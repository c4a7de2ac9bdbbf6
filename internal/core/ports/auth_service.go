package ports

import (
	"context"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

// RegisterInput is the payload accepted by Register. Any role supplied by
// the client is ignored; new accounts always start as a regular user.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Me(ctx context.Context, userID string) (*domain.User, error)
	ListUsers(ctx context.Context, page domain.Page) ([]domain.User, int64, error)
	UpdateRole(ctx context.Context, actor domain.Identity, targetID, role string) (*domain.User, error)
}
