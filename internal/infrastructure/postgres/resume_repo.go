package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/domain"
	"gorm.io/gorm"
)

type ResumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) *ResumeRepository {
	return &ResumeRepository{db: db}
}

// ListByUser returns the user's resumes, newest first.
func (r *ResumeRepository) ListByUser(ctx context.Context, userID uint, page domain.PageRequest) ([]*domain.Resume, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&resumeRecord{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("count resumes: %w", err)
	}

	var recs []resumeRecord
	err = r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&recs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list resumes: %w", err)
	}

	out := make([]*domain.Resume, len(recs))
	for i := range recs {
		out[i] = recs[i].toDomain()
	}
	return out, total, nil
}

func (r *ResumeRepository) FindByID(ctx context.Context, id, userID uint) (*domain.Resume, error) {
	var rec resumeRecord
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrResumeNotFound
		}
		return nil, fmt.Errorf("find resume: %w", err)
	}
	return rec.toDomain(), nil
}

func (r *ResumeRepository) Create(ctx context.Context, res *domain.Resume) error {
	rec := newResumeRecord(res)
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return domain.ErrInvalidTemplate
		}
		return fmt.Errorf("create resume: %w", err)
	}
	*res = *rec.toDomain()
	return nil
}

func (r *ResumeRepository) Update(ctx context.Context, res *domain.Resume) error {
	result := r.db.WithContext(ctx).
		Model(&resumeRecord{}).
		Where("id = ? AND user_id = ?", res.ID, res.UserID).
		Updates(map[string]any{
			"name":        res.Name,
			"content":     res.Content,
			"template_id": res.TemplateID,
		})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrForeignKeyViolated) {
			return domain.ErrInvalidTemplate
		}
		return fmt.Errorf("update resume: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrResumeNotFound
	}

	updated, err := r.FindByID(ctx, res.ID, res.UserID)
	if err != nil {
		return err
	}
	*res = *updated
	return nil
}

func (r *ResumeRepository) Delete(ctx context.Context, id, userID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&resumeRecord{})
	if result.Error != nil {
		return fmt.Errorf("delete resume: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrResumeNotFound
	}
	return nil
}
