package domain

import (
	"errors"
	"time"
)

var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidTemplate  = errors.New("template does not exist")
)

type ContentType string

const (
	ContentTypeHTML ContentType = "html"
	ContentTypeJSON ContentType = "json"
)

type Template struct {
	ID          uint
	Name        string
	Content     string
	ContentType ContentType
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
