package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"bdl-cms/models"
)

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id uint) (*models.Event, error)
	// Between returns the events overlapping [from, to).
	Between(ctx context.Context, from, to time.Time) ([]models.Event, error)
	Upcoming(ctx context.Context, from time.Time, limit int) ([]models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id uint) error
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepository) GetByID(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).First(&event, id).Error; err != nil {
		return nil, translate(err, "event")
	}
	return &event, nil
}

// Between loads by start date with a day of slack and filters on End, which
// depends on the all-day and missing-end rules of the model.
func (r *eventRepository) Between(ctx context.Context, from, to time.Time) ([]models.Event, error) {
	var candidates []models.Event
	err := r.db.WithContext(ctx).
		Where("starts_at < ? AND (ends_at >= ? OR starts_at >= ?)", to.UTC(), from.UTC(), from.AddDate(0, 0, -1).UTC()).
		Order("starts_at asc").
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	events := candidates[:0]
	for _, e := range candidates {
		if e.End().After(from) {
			events = append(events, e)
		}
	}
	return events, nil
}

func (r *eventRepository) Upcoming(ctx context.Context, from time.Time, limit int) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).
		Where("starts_at >= ? OR ends_at >= ?", from.UTC(), from.UTC()).
		Order("starts_at asc").
		Limit(limit).
		Find(&events).Error
	return events, err
}

func (r *eventRepository) Update(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

func (r *eventRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Event{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "event")
	}
	return nil
}
