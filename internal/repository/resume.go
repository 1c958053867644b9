package repository

import (
	"context"

	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/domain"
)

// ResumeRepository scopes every lookup to the owning user.
type ResumeRepository interface {
	ListByUser(ctx context.Context, userID uint, page domain.PageRequest) ([]*domain.Resume, int64, error)
	FindByID(ctx context.Context, id, userID uint) (*domain.Resume, error)
	Create(ctx context.Context, r *domain.Resume) error
	Update(ctx context.Context, r *domain.Resume) error
	Delete(ctx context.Context, id, userID uint) error
}
