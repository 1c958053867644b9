package repository

import (
	"context"

	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/domain"
)

// UserFilter narrows user listings. Zero values match everything.
type UserFilter struct {
	Role        domain.Role
	ExcludeRole domain.Role
}

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Count(ctx context.Context) (int64, error)
	// Create inserts u, populates its ID and timestamps, and returns rows affected.
	Create(ctx context.Context, u *domain.User) (int64, error)
	CreateBatch(ctx context.Context, users []*domain.User) (int64, error)
	// UpdatePassword writes both hash columns and returns rows affected.
	UpdatePassword(ctx context.Context, id uint, passwordHash, confirmHash string) (int64, error)
	UpdateRole(ctx context.Context, id uint, role domain.Role) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter UserFilter, page domain.PageRequest) ([]*domain.User, int64, error)
	// ExistingEmails returns the subset of emails that already belong to an account.
	ExistingEmails(ctx context.Context, emails []string) ([]string, error)
}
