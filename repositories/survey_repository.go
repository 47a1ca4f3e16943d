package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"bdl-cms/models"
)

type SurveyRepository interface {
	Create(ctx context.Context, survey *models.Survey) error
	GetByID(ctx context.Context, id uint) (*models.Survey, error)
	List(ctx context.Context, activeOnly bool) ([]models.Survey, error)
	SetActive(ctx context.Context, id uint, active bool) error
	Delete(ctx context.Context, id uint) error
	// Respond stores a response; a second response by the same user fails with
	// ErrConflict.
	Respond(ctx context.Context, response *models.SurveyResponse) error
	Responses(ctx context.Context, surveyID uint) ([]models.SurveyResponse, error)
}

type surveyRepository struct {
	db *gorm.DB
}

func NewSurveyRepository(db *gorm.DB) SurveyRepository {
	return &surveyRepository{db: db}
}

func orderedQuestions(db *gorm.DB) *gorm.DB {
	return db.Order("position asc, id asc")
}

func (r *surveyRepository) Create(ctx context.Context, survey *models.Survey) error {
	return r.db.WithContext(ctx).Create(survey).Error
}

func (r *surveyRepository) GetByID(ctx context.Context, id uint) (*models.Survey, error) {
	var survey models.Survey
	if err := r.db.WithContext(ctx).Preload("Questions", orderedQuestions).First(&survey, id).Error; err != nil {
		return nil, translate(err, "survey")
	}
	return &survey, nil
}

func (r *surveyRepository) List(ctx context.Context, activeOnly bool) ([]models.Survey, error) {
	var surveys []models.Survey
	query := r.db.WithContext(ctx).Preload("Questions", orderedQuestions).Order("created_at desc")
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	err := query.Find(&surveys).Error
	return surveys, err
}

func (r *surveyRepository) SetActive(ctx context.Context, id uint, active bool) error {
	res := r.db.WithContext(ctx).Model(&models.Survey{}).Where("id = ?", id).Update("active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "survey")
	}
	return nil
}

func (r *surveyRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Survey{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return translate(gorm.ErrRecordNotFound, "survey")
		}
		if err := tx.Where("survey_id = ?", id).Delete(&models.SurveyQuestion{}).Error; err != nil {
			return err
		}
		return tx.Where("survey_id = ?", id).Delete(&models.SurveyResponse{}).Error
	})
}

func (r *surveyRepository) Respond(ctx context.Context, response *models.SurveyResponse) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.SurveyResponse{}).
			Where("survey_id = ? AND user_id = ?", response.SurveyID, response.UserID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("survey already answered: %w", models.ErrConflict)
		}

		if err := tx.Create(response).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("survey already answered: %w", models.ErrConflict)
			}
			return err
		}
		return nil
	})
}

func (r *surveyRepository) Responses(ctx context.Context, surveyID uint) ([]models.SurveyResponse, error) {
	var responses []models.SurveyResponse
	err := r.db.WithContext(ctx).Where("survey_id = ?", surveyID).Order("id asc").Find(&responses).Error
	return responses, err
}
