package models

import (
	"time"

	"gorm.io/gorm"
)

type BallotChoice string

const (
	ChoicePour       BallotChoice = "pour"
	ChoiceContre     BallotChoice = "contre"
	ChoiceAbstention BallotChoice = "abstention"
)

func (c BallotChoice) Valid() bool {
	switch c {
	case ChoicePour, ChoiceContre, ChoiceAbstention:
		return true
	}
	return false
}

// Scrutin is a vote put to the council members.
type Scrutin struct {
	ID          uint           `json:"id" gorm:"primarykey"`
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description" gorm:"type:text"`
	OpensAt     time.Time      `json:"opens_at"`
	ClosesAt    time.Time      `json:"closes_at" gorm:"index"`
	Closed      bool           `json:"closed" gorm:"index"`
	Pour        int            `json:"pour" gorm:"not null;default:0"`
	Contre      int            `json:"contre" gorm:"not null;default:0"`
	Abstention  int            `json:"abstention" gorm:"not null;default:0"`
	CreatedBy   uint           `json:"created_by"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// AcceptsBallots reports whether a ballot cast at t is counted.
func (s Scrutin) AcceptsBallots(t time.Time) bool {
	if s.Closed {
		return false
	}
	if !s.OpensAt.IsZero() && t.Before(s.OpensAt) {
		return false
	}
	if !s.ClosesAt.IsZero() && !t.Before(s.ClosesAt) {
		return false
	}
	return true
}

type Ballot struct {
	ID        uint         `json:"id" gorm:"primarykey"`
	ScrutinID uint         `json:"scrutin_id" gorm:"not null;uniqueIndex:idx_ballot_voter"`
	UserID    uint         `json:"user_id" gorm:"not null;uniqueIndex:idx_ballot_voter"`
	Choice    BallotChoice `json:"choice" gorm:"not null"`
	CreatedAt time.Time    `json:"created_at"`
}
