package postgres

import (
	"time"

	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/domain"
)

type userRecord struct {
	ID                  uint      `gorm:"primaryKey"`
	FirstName           string    `gorm:"size:100;not null"`
	LastName            string    `gorm:"size:100;not null;default:''"`
	Email               string    `gorm:"size:255;not null;uniqueIndex"`
	PasswordHash        string    `gorm:"not null;default:''"`
	ConfirmPasswordHash string    `gorm:"not null;default:''"`
	Role                string    `gorm:"size:20;not null;default:User;index"`
	JoinDate            time.Time `gorm:"type:date"`
	CreatedAt           time.Time
	UpdatedAt           time.Time

	Resumes []resumeRecord `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (userRecord) TableName() string { return "users" }

func (r *userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:                  r.ID,
		FirstName:           r.FirstName,
		LastName:            r.LastName,
		Email:               r.Email,
		PasswordHash:        r.PasswordHash,
		ConfirmPasswordHash: r.ConfirmPasswordHash,
		Role:                domain.Role(r.Role),
		JoinDate:            r.JoinDate,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}

func newUserRecord(u *domain.User) *userRecord {
	role := u.Role
	if role == "" {
		role = domain.RoleUser
	}
	return &userRecord{
		ID:                  u.ID,
		FirstName:           u.FirstName,
		LastName:            u.LastName,
		Email:               u.Email,
		PasswordHash:        u.PasswordHash,
		ConfirmPasswordHash: u.ConfirmPasswordHash,
		Role:                string(role),
		JoinDate:            u.JoinDate,
	}
}

type templateRecord struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:100;not null"`
	Content     string `gorm:"type:text;not null"`
	ContentType string `gorm:"size:10;not null;default:html"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Resumes []resumeRecord `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE"`
}

func (templateRecord) TableName() string { return "templates" }

func (r *templateRecord) toDomain() *domain.Template {
	return &domain.Template{
		ID:          r.ID,
		Name:        r.Name,
		Content:     r.Content,
		ContentType: domain.ContentType(r.ContentType),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func newTemplateRecord(t *domain.Template) *templateRecord {
	return &templateRecord{
		ID:          t.ID,
		Name:        t.Name,
		Content:     t.Content,
		ContentType: string(t.ContentType),
		CreatedAt:   t.CreatedAt,
	}
}

type resumeRecord struct {
	ID         uint      `gorm:"primaryKey"`
	UserID     uint      `gorm:"not null;index"`
	TemplateID uint      `gorm:"not null;index"`
	Name       string    `gorm:"size:100;not null"`
	Content    string    `gorm:"type:text;not null"`
	CreatedAt  time.Time `gorm:"index"`
	UpdatedAt  time.Time
}

func (resumeRecord) TableName() string { return "resumes" }

func (r *resumeRecord) toDomain() *domain.Resume {
	return &domain.Resume{
		ID:         r.ID,
		UserID:     r.UserID,
		TemplateID: r.TemplateID,
		Name:       r.Name,
		Content:    r.Content,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func newResumeRecord(r *domain.Resume) *resumeRecord {
	return &resumeRecord{
		ID:         r.ID,
		UserID:     r.UserID,
		TemplateID: r.TemplateID,
		Name:       r.Name,
		Content:    r.Content,
		CreatedAt:  r.CreatedAt,
	}
}
