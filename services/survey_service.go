package services

import (
	"context"
	"fmt"
	"strings"

	"bdl-cms/models"
	"bdl-cms/repositories"
)

type SurveyService interface {
	Create(ctx context.Context, req models.CreateSurveyRequest, caller models.Session) (*models.Survey, error)
	Get(ctx context.Context, id uint) (*models.Survey, error)
	List(ctx context.Context, activeOnly bool) ([]models.Survey, error)
	SetActive(ctx context.Context, id uint, active bool, caller models.Session) error
	Delete(ctx context.Context, id uint, caller models.Session) error
	// Respond stores the caller's answers. Every answer must name a question
	// of the survey and one of its options, each question at most once.
	Respond(ctx context.Context, id uint, req models.SurveyResponseRequest, caller models.Session) error
	Results(ctx context.Context, id uint) (*models.SurveyResults, error)
}

type surveyService struct {
	repo repositories.SurveyRepository
}

func NewSurveyService(repo repositories.SurveyRepository) SurveyService {
	return &surveyService{repo: repo}
}

func (s *surveyService) Create(ctx context.Context, req models.CreateSurveyRequest, caller models.Session) (*models.Survey, error) {
	if !caller.CanPublish {
		return nil, fmt.Errorf("creating survey: %w", models.ErrForbidden)
	}

	survey := &models.Survey{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Active:      req.Active,
		CreatedBy:   caller.UserID,
	}
	for i, q := range req.Questions {
		options := make([]string, 0, len(q.Options))
		seen := map[string]bool{}
		for _, o := range q.Options {
			o = strings.TrimSpace(o)
			if o == "" || seen[o] {
				continue
			}
			seen[o] = true
			options = append(options, o)
		}
		if len(options) < 2 {
			return nil, fmt.Errorf("question %d needs two distinct options: %w", i+1, models.ErrInvalid)
		}
		survey.Questions = append(survey.Questions, models.SurveyQuestion{
			Label:    strings.TrimSpace(q.Label),
			Options:  options,
			Position: i,
		})
	}

	if err := s.repo.Create(ctx, survey); err != nil {
		return nil, err
	}
	return survey, nil
}

func (s *surveyService) Get(ctx context.Context, id uint) (*models.Survey, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *surveyService) List(ctx context.Context, activeOnly bool) ([]models.Survey, error) {
	return s.repo.List(ctx, activeOnly)
}

func (s *surveyService) SetActive(ctx context.Context, id uint, active bool, caller models.Session) error {
	if !caller.CanPublish {
		return fmt.Errorf("updating survey %d: %w", id, models.ErrForbidden)
	}
	return s.repo.SetActive(ctx, id, active)
}

func (s *surveyService) Delete(ctx context.Context, id uint, caller models.Session) error {
	if !caller.CanPublish {
		return fmt.Errorf("deleting survey %d: %w", id, models.ErrForbidden)
	}
	return s.repo.Delete(ctx, id)
}

func (s *surveyService) Respond(ctx context.Context, id uint, req models.SurveyResponseRequest, caller models.Session) error {
	if !caller.Authenticated() {
		return fmt.Errorf("answering survey %d: %w", id, models.ErrUnauthorized)
	}

	survey, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !survey.Active {
		return fmt.Errorf("survey %d: %w", id, models.ErrClosed)
	}

	questions := make(map[uint]models.SurveyQuestion, len(survey.Questions))
	for _, q := range survey.Questions {
		questions[q.ID] = q
	}

	answered := map[uint]bool{}
	for _, a := range req.Answers {
		q, ok := questions[a.QuestionID]
		if !ok {
			return fmt.Errorf("question %d is not part of survey %d: %w", a.QuestionID, id, models.ErrInvalid)
		}
		if !q.HasOption(a.Option) {
			return fmt.Errorf("option %q of question %d: %w", a.Option, a.QuestionID, models.ErrInvalid)
		}
		if answered[a.QuestionID] {
			return fmt.Errorf("question %d answered twice: %w", a.QuestionID, models.ErrInvalid)
		}
		answered[a.QuestionID] = true
	}

	return s.repo.Respond(ctx, &models.SurveyResponse{
		SurveyID: id,
		UserID:   caller.UserID,
		Answers:  req.Answers,
	})
}

func (s *surveyService) Results(ctx context.Context, id uint) (*models.SurveyResults, error) {
	survey, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	responses, err := s.repo.Responses(ctx, id)
	if err != nil {
		return nil, err
	}

	results := &models.SurveyResults{SurveyID: survey.ID, Responses: len(responses)}
	index := make(map[uint]int, len(survey.Questions))
	for i, q := range survey.Questions {
		counts := make(map[string]int, len(q.Options))
		for _, o := range q.Options {
			counts[o] = 0
		}
		index[q.ID] = i
		results.Questions = append(results.Questions, models.QuestionResult{
			QuestionID: q.ID,
			Label:      q.Label,
			Counts:     counts,
		})
	}

	for _, r := range responses {
		for _, a := range r.Answers {
			i, ok := index[a.QuestionID]
			if !ok {
				continue
			}
			if _, known := results.Questions[i].Counts[a.Option]; !known {
				continue
			}
			results.Questions[i].Counts[a.Option]++
			results.Questions[i].Total++
		}
	}
	return results, nil
}
