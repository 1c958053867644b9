package domain

import (
	"errors"
	"time"
)

var ErrResumeNotFound = errors.New("resume not found")

type Resume struct {
	ID         uint
	UserID     uint
	TemplateID uint
	Name       string
	Content    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
