package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/domain"
	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/repository"
)

const (
	ResumePageSize   = 8
	minResumeNameLen = 3
	maxResumeNameLen = 100
)

// ResumeUsecase scopes every operation to the calling user.
type ResumeUsecase struct {
	resumes   repository.ResumeRepository
	templates repository.TemplateRepository
	users     repository.UserRepository
	logger    *slog.Logger
}

func NewResumeUsecase(
	resumes repository.ResumeRepository,
	templates repository.TemplateRepository,
	users repository.UserRepository,
	logger *slog.Logger,
) *ResumeUsecase {
	return &ResumeUsecase{
		resumes:   resumes,
		templates: templates,
		users:     users,
		logger:    logger.With("component", "resume"),
	}
}

type ResumeInput struct {
	TemplateID uint
	Name       string
	Content    string
}

// List returns one page of the user's resumes, newest first.
func (u *ResumeUsecase) List(ctx context.Context, userID uint, pageNumber int) (domain.Page[*domain.Resume], error) {
	page := domain.PageRequest{Number: pageNumber, Size: ResumePageSize}
	if !page.Valid() {
		return domain.Page[*domain.Resume]{}, fmt.Errorf("%w: invalid page number", domain.ErrValidation)
	}
	items, total, err := u.resumes.ListByUser(ctx, userID, page)
	if err != nil {
		return domain.Page[*domain.Resume]{}, fmt.Errorf("list resumes: %w", err)
	}
	return domain.Page[*domain.Resume]{Items: items, Total: total, Number: page.Number, Size: page.Size}, nil
}

func (u *ResumeUsecase) Get(ctx context.Context, userID, id uint) (*domain.Resume, error) {
	return u.resumes.FindByID(ctx, id, userID)
}

func (u *ResumeUsecase) Create(ctx context.Context, userID uint, in ResumeInput) (*domain.Resume, error) {
	name := strings.TrimSpace(in.Name)
	if err := validateResumeName(name); err != nil {
		return nil, err
	}
	if in.Content == "" {
		return nil, fmt.Errorf("%w: content is required", domain.ErrValidation)
	}
	if _, err := u.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	if err := u.checkTemplate(ctx, in.TemplateID); err != nil {
		return nil, err
	}

	r := &domain.Resume{UserID: userID, TemplateID: in.TemplateID, Name: name, Content: in.Content}
	if err := u.resumes.Create(ctx, r); err != nil {
		return nil, err
	}
	u.logger.InfoContext(ctx, "resume created", "resume_id", r.ID)
	return r, nil
}

// Update applies only the non-empty fields of in.
func (u *ResumeUsecase) Update(ctx context.Context, userID, id uint, in ResumeInput) (*domain.Resume, error) {
	r, err := u.resumes.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		if err := validateResumeName(name); err != nil {
			return nil, err
		}
		r.Name = name
	}
	if in.Content != "" {
		r.Content = in.Content
	}
	if in.TemplateID != 0 && in.TemplateID != r.TemplateID {
		if err := u.checkTemplate(ctx, in.TemplateID); err != nil {
			return nil, err
		}
		r.TemplateID = in.TemplateID
	}

	if err := u.resumes.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (u *ResumeUsecase) Delete(ctx context.Context, userID, id uint) error {
	return u.resumes.Delete(ctx, id, userID)
}

func (u *ResumeUsecase) checkTemplate(ctx context.Context, id uint) error {
	if id == 0 {
		return domain.ErrInvalidTemplate
	}
	_, err := u.templates.FindByID(ctx, id)
	if errors.Is(err, domain.ErrTemplateNotFound) {
		return domain.ErrInvalidTemplate
	}
	return err
}

func validateResumeName(name string) error {
	n := utf8.RuneCountInString(name)
	if n < minResumeNameLen || n > maxResumeNameLen {
		return fmt.Errorf("%w: name must be %d-%d characters", domain.ErrValidation, minResumeNameLen, maxResumeNameLen)
	}
	return nil
}
