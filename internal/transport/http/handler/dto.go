package handler

import (
	"time"

	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/domain"
)

// userResponse never carries password hashes.
type userResponse struct {
	ID        uint        `json:"id"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	JoinDate  string      `json:"joinDate"`
}

func newUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
		JoinDate:  u.JoinDate.Format(time.DateOnly),
	}
}

func newUserResponses(users []*domain.User) []userResponse {
	out := make([]userResponse, len(users))
	for i, u := range users {
		out[i] = newUserResponse(u)
	}
	return out
}

type templateResponse struct {
	ID          uint               `json:"id"`
	Name        string             `json:"name"`
	Content     string             `json:"content"`
	ContentType domain.ContentType `json:"contentType"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

func newTemplateResponse(t *domain.Template) templateResponse {
	return templateResponse{
		ID:          t.ID,
		Name:        t.Name,
		Content:     t.Content,
		ContentType: t.ContentType,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func newTemplateResponses(templates []*domain.Template) []templateResponse {
	out := make([]templateResponse, len(templates))
	for i, t := range templates {
		out[i] = newTemplateResponse(t)
	}
	return out
}

type resumeResponse struct {
	ID         uint      `json:"resumeId"`
	UserID     uint      `json:"userId"`
	TemplateID uint      `json:"templateId"`
	Name       string    `json:"name"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdDate"`
	UpdatedAt  time.Time `json:"modifiedDate"`
}

func newResumeResponse(r *domain.Resume) resumeResponse {
	return resumeResponse{
		ID:         r.ID,
		UserID:     r.UserID,
		TemplateID: r.TemplateID,
		Name:       r.Name,
		Content:    r.Content,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

type pageResponse[T any] struct {
	Items       []T   `json:"items"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
}

func newPageResponse[D, T any](p domain.Page[D], convert func(D) T) pageResponse[T] {
	items := make([]T, len(p.Items))
	for i, item := range p.Items {
		items[i] = convert(item)
	}
	return pageResponse[T]{
		Items:       items,
		Total:       p.Total,
		TotalPages:  p.TotalPages(),
		CurrentPage: p.Number,
		PageSize:    p.Size,
	}
}
