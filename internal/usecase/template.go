package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/domain"
	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/repository"
)

const maxTemplateNameLen = 100

type TemplateUsecase struct {
	templates repository.TemplateRepository
	logger    *slog.Logger
}

func NewTemplateUsecase(templates repository.TemplateRepository, logger *slog.Logger) *TemplateUsecase {
	return &TemplateUsecase{templates: templates, logger: logger.With("component", "template")}
}

type TemplateInput struct {
	Name        string
	Content     string
	ContentType domain.ContentType
}

func (in TemplateInput) validate() (TemplateInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || in.Content == "" {
		return in, fmt.Errorf("%w: name and content are required", domain.ErrValidation)
	}
	if len(in.Name) > maxTemplateNameLen {
		return in, fmt.Errorf("%w: name exceeds %d characters", domain.ErrValidation, maxTemplateNameLen)
	}
	switch in.ContentType {
	case "":
		in.ContentType = domain.ContentTypeHTML
	case domain.ContentTypeHTML, domain.ContentTypeJSON:
	default:
		return in, fmt.Errorf("%w: content type must be html or json", domain.ErrValidation)
	}
	return in, nil
}

func (u *TemplateUsecase) List(ctx context.Context) ([]*domain.Template, error) {
	templates, err := u.templates.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return templates, nil
}

func (u *TemplateUsecase) Get(ctx context.Context, id uint) (*domain.Template, error) {
	return u.templates.FindByID(ctx, id)
}

func (u *TemplateUsecase) Create(ctx context.Context, in TemplateInput) (*domain.Template, error) {
	in, err := in.validate()
	if err != nil {
		return nil, err
	}
	t := &domain.Template{Name: in.Name, Content: in.Content, ContentType: in.ContentType}
	if err := u.templates.Create(ctx, t); err != nil {
		return nil, err
	}
	u.logger.InfoContext(ctx, "template created", "template_id", t.ID)
	return t, nil
}

func (u *TemplateUsecase) Update(ctx context.Context, id uint, in TemplateInput) (*domain.Template, error) {
	in, err := in.validate()
	if err != nil {
		return nil, err
	}
	t := &domain.Template{ID: id, Name: in.Name, Content: in.Content, ContentType: in.ContentType}
	if err := u.templates.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete also removes every resume built on the template.
func (u *TemplateUsecase) Delete(ctx context.Context, id uint) error {
	if err := u.templates.Delete(ctx, id); err != nil {
		return err
	}
	u.logger.InfoContext(ctx, "template deleted", "template_id", id)
	return nil
}
