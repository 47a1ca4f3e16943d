package models

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DiffKind int

const (
	DiffUnchanged DiffKind = iota
	DiffAdded
	DiffRemoved
)

func (k DiffKind) String() string {
	switch k {
	case DiffAdded:
		return "added"
	case DiffRemoved:
		return "removed"
	default:
		return "unchanged"
	}
}

func (k DiffKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *DiffKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "added":
		*k = DiffAdded
	case "removed":
		*k = DiffRemoved
	case "unchanged", "":
		*k = DiffUnchanged
	default:
		return fmt.Errorf("unknown diff kind %q", text)
	}
	return nil
}

// DiffPart is one span of a recorded edit.
type DiffPart struct {
	Value   string `json:"value"`
	Added   bool   `json:"added,omitempty"`
	Removed bool   `json:"removed,omitempty"`
}

// Kind resolves the flags to a single kind; removed wins over added.
func (p DiffPart) Kind() DiffKind {
	switch {
	case p.Removed:
		return DiffRemoved
	case p.Added:
		return DiffAdded
	default:
		return DiffUnchanged
	}
}

// Modification is one historical edit of a journal entry body.
type Modification struct {
	Date string     `json:"date"`
	Diff []DiffPart `json:"diff"`
}

// Time parses Date; ok is false for missing or malformed dates.
func (m Modification) Time() (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, m.Date); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// JournalEntry is an article of the official journal.
type JournalEntry struct {
	ID              uint                              `json:"id" gorm:"primarykey"`
	Title           string                            `json:"title" gorm:"not null"`
	NorNumber       string                            `json:"nor_number" gorm:"uniqueIndex;not null"`
	BodyHTML        string                            `json:"body_html" gorm:"column:body_html;type:text"`
	PublicationDate time.Time                         `json:"publication_date" gorm:"index"`
	AuthorName      string                            `json:"author_name"`
	AuthorRole      string                            `json:"author_role"`
	Modifications   datatypes.JSONSlice[Modification] `json:"modifications"`
	CreatedBy       uint                              `json:"created_by"`
	CreatedAt       time.Time                         `json:"created_at"`
	UpdatedAt       time.Time                         `json:"updated_at"`
	DeletedAt       gorm.DeletedAt                    `json:"-" gorm:"index"`
}
