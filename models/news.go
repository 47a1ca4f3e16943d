package models

import (
	"time"

	"gorm.io/gorm"
)

type ContentFormat string

const (
	FormatHTML     ContentFormat = "html"
	FormatMarkdown ContentFormat = "markdown"
)

type News struct {
	ID          uint           `json:"id" gorm:"primarykey"`
	Title       string         `json:"title" gorm:"not null"`
	Slug        string         `json:"slug" gorm:"uniqueIndex;not null"`
	Summary     string         `json:"summary"`
	Body        string         `json:"body" gorm:"type:text"`
	Format      ContentFormat  `json:"format" gorm:"default:'html'"`
	BodyHTML    string         `json:"body_html" gorm:"column:body_html;type:text"`
	Published   bool           `json:"published" gorm:"index"`
	PublishedAt *time.Time     `json:"published_at"`
	AuthorID    uint           `json:"author_id"`
	Author      *User          `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}
