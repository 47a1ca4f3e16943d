package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Survey struct {
	ID          uint             `json:"id" gorm:"primarykey"`
	Title       string           `json:"title" gorm:"not null"`
	Description string           `json:"description" gorm:"type:text"`
	Active      bool             `json:"active" gorm:"index"`
	Questions   []SurveyQuestion `json:"questions" gorm:"foreignKey:SurveyID"`
	CreatedBy   uint             `json:"created_by"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `json:"-" gorm:"index"`
}

type SurveyQuestion struct {
	ID       uint                        `json:"id" gorm:"primarykey"`
	SurveyID uint                        `json:"survey_id" gorm:"not null;index"`
	Label    string                      `json:"label" gorm:"not null"`
	Options  datatypes.JSONSlice[string] `json:"options"`
	Position int                         `json:"position"`
}

func (q SurveyQuestion) HasOption(option string) bool {
	for _, o := range q.Options {
		if o == option {
			return true
		}
	}
	return false
}

type SurveyAnswer struct {
	QuestionID uint   `json:"question_id"`
	Option     string `json:"option"`
}

type SurveyResponse struct {
	ID        uint                              `json:"id" gorm:"primarykey"`
	SurveyID  uint                              `json:"survey_id" gorm:"not null;uniqueIndex:idx_survey_respondent"`
	UserID    uint                              `json:"user_id" gorm:"not null;uniqueIndex:idx_survey_respondent"`
	Answers   datatypes.JSONSlice[SurveyAnswer] `json:"answers"`
	CreatedAt time.Time                         `json:"created_at"`
}

// QuestionResult counts the answers given to one question, per option.
type QuestionResult struct {
	QuestionID uint           `json:"question_id"`
	Label      string         `json:"label"`
	Counts     map[string]int `json:"counts"`
	Total      int            `json:"total"`
}

type SurveyResults struct {
	SurveyID  uint             `json:"survey_id"`
	Responses int              `json:"responses"`
	Questions []QuestionResult `json:"questions"`
}
