package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bdl-cms/calendar"
	"bdl-cms/models"
	"bdl-cms/repositories"
)

type EventService interface {
	Create(ctx context.Context, req models.CreateEventRequest, caller models.Session) (*models.Event, error)
	Update(ctx context.Context, id uint, req models.CreateEventRequest, caller models.Session) (*models.Event, error)
	Get(ctx context.Context, id uint) (*models.Event, error)
	Delete(ctx context.Context, id uint, caller models.Session) error
	Upcoming(ctx context.Context, limit int) ([]models.Event, error)
	// Month returns the grid of the given month; a zero year or month means
	// the current one.
	Month(ctx context.Context, year, month int) (calendar.Month, error)
	// ICS exports the events from three months ago to a year ahead.
	ICS(ctx context.Context) (string, error)
}

type eventService struct {
	repo    repositories.EventRepository
	loc     *time.Location
	siteURL string
	now     func() time.Time
}

func NewEventService(repo repositories.EventRepository, loc *time.Location, siteURL string) EventService {
	if loc == nil {
		loc = time.UTC
	}
	return &eventService{repo: repo, loc: loc, siteURL: siteURL, now: time.Now}
}

func (s *eventService) Create(ctx context.Context, req models.CreateEventRequest, caller models.Session) (*models.Event, error) {
	if !caller.CanPublish {
		return nil, fmt.Errorf("creating event: %w", models.ErrForbidden)
	}

	event := &models.Event{}
	if err := s.apply(event, req); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventService) Update(ctx context.Context, id uint, req models.CreateEventRequest, caller models.Session) (*models.Event, error) {
	if !caller.CanPublish {
		return nil, fmt.Errorf("updating event %d: %w", id, models.ErrForbidden)
	}

	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(event, req); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// apply stores times in UTC; all-day events start at midnight in the site
// time zone.
func (s *eventService) apply(event *models.Event, req models.CreateEventRequest) error {
	if !req.EndsAt.IsZero() && req.EndsAt.Before(req.StartsAt) {
		return fmt.Errorf("event ends before it starts: %w", models.ErrInvalid)
	}

	start, end := req.StartsAt, req.EndsAt
	if req.AllDay {
		y, m, d := start.In(s.loc).Date()
		start = time.Date(y, m, d, 0, 0, 0, 0, s.loc)
	}

	event.Title = strings.TrimSpace(req.Title)
	event.Description = req.Description
	event.Location = req.Location
	event.AllDay = req.AllDay
	event.StartsAt = start.UTC()
	event.EndsAt = time.Time{}
	if !end.IsZero() {
		event.EndsAt = end.UTC()
	}
	return nil
}

func (s *eventService) Get(ctx context.Context, id uint) (*models.Event, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *eventService) Delete(ctx context.Context, id uint, caller models.Session) error {
	if !caller.CanPublish {
		return fmt.Errorf("deleting event %d: %w", id, models.ErrForbidden)
	}
	return s.repo.Delete(ctx, id)
}

func (s *eventService) Upcoming(ctx context.Context, limit int) ([]models.Event, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}
	return s.repo.Upcoming(ctx, s.now(), limit)
}

func (s *eventService) Month(ctx context.Context, year, month int) (calendar.Month, error) {
	now := s.now().In(s.loc)
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	if month < 1 || month > 12 {
		return calendar.Month{}, fmt.Errorf("month %d: %w", month, models.ErrInvalid)
	}

	from, to := calendar.Range(year, time.Month(month), s.loc)
	events, err := s.repo.Between(ctx, from, to)
	if err != nil {
		return calendar.Month{}, err
	}
	return calendar.MonthGrid(year, time.Month(month), localize(events, s.loc), s.loc), nil
}

func (s *eventService) ICS(ctx context.Context) (string, error) {
	now := s.now()
	events, err := s.repo.Between(ctx, now.AddDate(0, -3, 0), now.AddDate(1, 0, 0))
	if err != nil {
		return "", err
	}
	return calendar.ICS(localize(events, s.loc), s.siteURL, "Agenda du BDL"), nil
}

func localize(events []models.Event, loc *time.Location) []models.Event {
	for i := range events {
		events[i].StartsAt = events[i].StartsAt.In(loc)
		if !events[i].EndsAt.IsZero() {
			events[i].EndsAt = events[i].EndsAt.In(loc)
		}
	}
	return events
}
