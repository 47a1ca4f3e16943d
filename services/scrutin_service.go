package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"bdl-cms/models"
	"bdl-cms/repositories"
	"bdl-cms/tally"
)

// ScrutinResults is a scrutin with its counted outcome.
type ScrutinResults struct {
	Scrutin models.Scrutin `json:"scrutin"`
	Tally   tally.Result   `json:"tally"`
	Badge   string         `json:"badge,omitempty"`
	Open    bool           `json:"open"`
}

type ScrutinService interface {
	Create(ctx context.Context, req models.CreateScrutinRequest, caller models.Session) (*models.Scrutin, error)
	Get(ctx context.Context, id uint) (*models.Scrutin, error)
	List(ctx context.Context, openOnly bool) ([]models.Scrutin, error)
	// Cast records one ballot per user while the scrutin is open.
	Cast(ctx context.Context, id uint, req models.CastBallotRequest, caller models.Session) (*ScrutinResults, error)
	Results(ctx context.Context, id uint) (*ScrutinResults, error)
	Close(ctx context.Context, id uint, caller models.Session) error
	// CloseExpired closes the scrutins whose deadline has passed.
	CloseExpired(ctx context.Context) (int64, error)
}

type scrutinService struct {
	repo repositories.ScrutinRepository
	log  logrus.FieldLogger
	now  func() time.Time
}

func NewScrutinService(repo repositories.ScrutinRepository, log logrus.FieldLogger) ScrutinService {
	return &scrutinService{repo: repo, log: log, now: time.Now}
}

func (s *scrutinService) Create(ctx context.Context, req models.CreateScrutinRequest, caller models.Session) (*models.Scrutin, error) {
	if !caller.CanPublish {
		return nil, fmt.Errorf("opening a scrutin: %w", models.ErrForbidden)
	}
	if !req.ClosesAt.IsZero() && !req.ClosesAt.After(req.OpensAt) {
		return nil, fmt.Errorf("scrutin closes before it opens: %w", models.ErrInvalid)
	}

	scrutin := &models.Scrutin{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		CreatedBy:   caller.UserID,
	}
	if !req.OpensAt.IsZero() {
		scrutin.OpensAt = req.OpensAt.UTC()
	}
	if !req.ClosesAt.IsZero() {
		scrutin.ClosesAt = req.ClosesAt.UTC()
	}

	if err := s.repo.Create(ctx, scrutin); err != nil {
		return nil, err
	}
	return scrutin, nil
}

func (s *scrutinService) Get(ctx context.Context, id uint) (*models.Scrutin, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *scrutinService) List(ctx context.Context, openOnly bool) ([]models.Scrutin, error) {
	return s.repo.List(ctx, openOnly, s.now())
}

func (s *scrutinService) Cast(ctx context.Context, id uint, req models.CastBallotRequest, caller models.Session) (*ScrutinResults, error) {
	if !caller.CanVote {
		return nil, fmt.Errorf("voting: %w", models.ErrForbidden)
	}
	if !req.Choice.Valid() {
		return nil, fmt.Errorf("choice %q: %w", req.Choice, models.ErrInvalid)
	}

	scrutin, err := s.repo.CastBallot(ctx, &models.Ballot{
		ScrutinID: id,
		UserID:    caller.UserID,
		Choice:    req.Choice,
	}, s.now())
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"scrutin_id": id, "user_id": caller.UserID}).Info("Ballot cast")
	return s.results(scrutin), nil
}

func (s *scrutinService) Results(ctx context.Context, id uint) (*ScrutinResults, error) {
	scrutin, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.results(scrutin), nil
}

func (s *scrutinService) results(scrutin *models.Scrutin) *ScrutinResults {
	result := tally.Compute(scrutin.Pour, scrutin.Contre, scrutin.Abstention)
	return &ScrutinResults{
		Scrutin: *scrutin,
		Tally:   result,
		Badge:   result.Badge(),
		Open:    scrutin.AcceptsBallots(s.now()),
	}
}

func (s *scrutinService) Close(ctx context.Context, id uint, caller models.Session) error {
	if !caller.CanPublish {
		return fmt.Errorf("closing scrutin %d: %w", id, models.ErrForbidden)
	}
	return s.repo.Close(ctx, id)
}

func (s *scrutinService) CloseExpired(ctx context.Context) (int64, error) {
	n, err := s.repo.CloseExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.WithField("count", n).Info("Closed expired scrutins")
	}
	return n, nil
}
