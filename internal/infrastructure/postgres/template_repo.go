package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/domain"
	"gorm.io/gorm"
)

type TemplateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

func (r *TemplateRepository) List(ctx context.Context) ([]*domain.Template, error) {
	var recs []templateRecord
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return toTemplates(recs), nil
}

func (r *TemplateRepository) ListPage(ctx context.Context, page domain.PageRequest) ([]*domain.Template, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&templateRecord{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count templates: %w", err)
	}

	var recs []templateRecord
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&recs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list templates: %w", err)
	}
	return toTemplates(recs), total, nil
}

func (r *TemplateRepository) FindByID(ctx context.Context, id uint) (*domain.Template, error) {
	var rec templateRecord
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTemplateNotFound
		}
		return nil, fmt.Errorf("find template: %w", err)
	}
	return rec.toDomain(), nil
}

func (r *TemplateRepository) Create(ctx context.Context, t *domain.Template) error {
	rec := newTemplateRecord(t)
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("create template: %w", err)
	}
	*t = *rec.toDomain()
	return nil
}

func (r *TemplateRepository) Update(ctx context.Context, t *domain.Template) error {
	res := r.db.WithContext(ctx).
		Model(&templateRecord{ID: t.ID}).
		Updates(map[string]any{
			"name":         t.Name,
			"content":      t.Content,
			"content_type": string(t.ContentType),
		})
	if res.Error != nil {
		return fmt.Errorf("update template: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrTemplateNotFound
	}

	updated, err := r.FindByID(ctx, t.ID)
	if err != nil {
		return err
	}
	*t = *updated
	return nil
}

// Delete removes the template and, through the foreign key, every resume using it.
func (r *TemplateRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&templateRecord{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete template: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrTemplateNotFound
	}
	return nil
}

func toTemplates(recs []templateRecord) []*domain.Template {
	out := make([]*domain.Template, len(recs))
	for i := range recs {
		out[i] = recs[i].toDomain()
	}
	return out
}
