package repository

import (
	"context"

	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/domain"
)

type TemplateRepository interface {
	List(ctx context.Context) ([]*domain.Template, error)
	ListPage(ctx context.Context, page domain.PageRequest) ([]*domain.Template, int64, error)
	FindByID(ctx context.Context, id uint) (*domain.Template, error)
	Create(ctx context.Context, t *domain.Template) error
	Update(ctx context.Context, t *domain.Template) error
	Delete(ctx context.Context, id uint) error
}
