package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/domain"
	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/repository"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var rec userRecord
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return rec.toDomain(), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var rec userRecord
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", domain.NormalizeEmail(email)).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return rec.toDomain(), nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&userRecord{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) (int64, error) {
	rec := newUserRecord(u)
	res := r.db.WithContext(ctx).Create(rec)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return 0, domain.ErrDuplicateEmail
		}
		return 0, fmt.Errorf("create user: %w", res.Error)
	}
	*u = *rec.toDomain()
	return res.RowsAffected, nil
}

func (r *UserRepository) CreateBatch(ctx context.Context, users []*domain.User) (int64, error) {
	if len(users) == 0 {
		return 0, nil
	}
	recs := make([]*userRecord, len(users))
	for i, u := range users {
		recs[i] = newUserRecord(u)
	}

	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Create(&recs)
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrDuplicateEmail
		}
		return 0, fmt.Errorf("create users: %w", err)
	}

	for i, rec := range recs {
		*users[i] = *rec.toDomain()
	}
	return affected, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uint, passwordHash, confirmHash string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&userRecord{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"password_hash":         passwordHash,
			"confirm_password_hash": confirmHash,
		})
	if res.Error != nil {
		return 0, fmt.Errorf("update password: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, id uint, role domain.Role) error {
	res := r.db.WithContext(ctx).
		Model(&userRecord{}).
		Where("id = ?", id).
		Update("role", string(role))
	if res.Error != nil {
		return fmt.Errorf("update role: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Delete removes the user; their resumes go with them through the foreign key.
func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&userRecord{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context, filter repository.UserFilter, page domain.PageRequest) ([]*domain.User, int64, error) {
	query := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&userRecord{})
		if filter.Role != "" {
			q = q.Where("role = ?", string(filter.Role))
		}
		if filter.ExcludeRole != "" {
			q = q.Where("role <> ?", string(filter.ExcludeRole))
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	var recs []userRecord
	err := query().
		Order("id ASC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&recs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	users := make([]*domain.User, len(recs))
	for i := range recs {
		users[i] = recs[i].toDomain()
	}
	return users, total, nil
}

func (r *UserRepository) ExistingEmails(ctx context.Context, emails []string) ([]string, error) {
	if len(emails) == 0 {
		return nil, nil
	}
	normalized := make([]string, len(emails))
	for i, e := range emails {
		normalized[i] = domain.NormalizeEmail(e)
	}

	var found []string
	err := r.db.WithContext(ctx).
		Model(&userRecord{}).
		Where("LOWER(email) IN ?", normalized).
		Pluck("email", &found).Error
	if err != nil {
		return nil, fmt.Errorf("existing emails: %w", err)
	}
	for i, e := range found {
		found[i] = domain.NormalizeEmail(e)
	}
	return found, nil
}
