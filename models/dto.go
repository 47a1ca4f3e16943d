package models

import "time"

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     *Role  `json:"role,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type CreateJournalRequest struct {
	Title           string    `json:"title" validate:"required,min=1,max=255"`
	NorNumber       string    `json:"nor_number" validate:"required,max=64"`
	BodyHTML        string    `json:"body_html" validate:"required"`
	PublicationDate time.Time `json:"publication_date"`
	AuthorName      string    `json:"author_name" validate:"max=255"`
	AuthorRole      string    `json:"author_role" validate:"max=255"`
}

type AmendJournalRequest struct {
	Title    string `json:"title" validate:"max=255"`
	BodyHTML string `json:"body_html" validate:"required"`
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ClampPaging brings page to at least 1 and limit into [1, MaxPageSize],
// using DefaultPageSize when no positive limit was asked for.
func ClampPaging(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	switch {
	case limit < 1:
		limit = DefaultPageSize
	case limit > MaxPageSize:
		limit = MaxPageSize
	}
	return page, limit
}

type JournalListParams struct {
	Search string `form:"q"`
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=10"`
}

func (p *JournalListParams) Clamp() {
	p.Page, p.Limit = ClampPaging(p.Page, p.Limit)
}

type ConsolidatedParams struct {
	Collapsed string `form:"collapsed"`
	History   bool   `form:"history"`
	Tracked   bool   `form:"tracked"`
}

type CreateNewsRequest struct {
	Title     string        `json:"title" validate:"required,min=1,max=255"`
	Summary   string        `json:"summary" validate:"max=500"`
	Body      string        `json:"body" validate:"required"`
	Format    ContentFormat `json:"format" validate:"omitempty,oneof=html markdown"`
	Published bool          `json:"published"`
}

type NewsListParams struct {
	Page  int `form:"page,default=1"`
	Limit int `form:"limit,default=10"`
}

func (p *NewsListParams) Clamp() {
	p.Page, p.Limit = ClampPaging(p.Page, p.Limit)
}

type CreateEventRequest struct {
	Title       string    `json:"title" validate:"required,min=1,max=255"`
	Description string    `json:"description"`
	Location    string    `json:"location" validate:"max=255"`
	StartsAt    time.Time `json:"starts_at" validate:"required"`
	EndsAt      time.Time `json:"ends_at"`
	AllDay      bool      `json:"all_day"`
}

type CalendarParams struct {
	Year  int `form:"year"`
	Month int `form:"month"`
}

type CreateDocumentRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=255"`
	Category    string `json:"category" validate:"max=100"`
	URL         string `json:"url" validate:"required,url"`
	Description string `json:"description"`
}

type CreateScrutinRequest struct {
	Title       string    `json:"title" validate:"required,min=1,max=255"`
	Description string    `json:"description"`
	OpensAt     time.Time `json:"opens_at"`
	ClosesAt    time.Time `json:"closes_at"`
}

type CastBallotRequest struct {
	Choice BallotChoice `json:"choice" validate:"required,oneof=pour contre abstention"`
}

type CreateSurveyQuestion struct {
	Label   string   `json:"label" validate:"required,max=255"`
	Options []string `json:"options" validate:"required,min=2,dive,required"`
}

type CreateSurveyRequest struct {
	Title       string                 `json:"title" validate:"required,min=1,max=255"`
	Description string                 `json:"description"`
	Active      bool                   `json:"active"`
	Questions   []CreateSurveyQuestion `json:"questions" validate:"required,min=1,dive"`
}

type SurveyResponseRequest struct {
	Answers []SurveyAnswer `json:"answers" validate:"required,min=1"`
}

type SetSurveyActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

type SetRoleRequest struct {
	Role Role `json:"role"`
}
