package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"bdl-cms/cache"
	"bdl-cms/consolidated"
	"bdl-cms/helper"
	"bdl-cms/models"
	"bdl-cms/repositories"
)

type JournalService interface {
	Create(ctx context.Context, req models.CreateJournalRequest, caller models.Session) (*models.JournalEntry, error)
	List(ctx context.Context, params models.JournalListParams) ([]models.JournalEntry, int64, error)
	Get(ctx context.Context, id uint) (*models.JournalEntry, error)
	GetByNor(ctx context.Context, nor string) (*models.JournalEntry, error)
	// Amend replaces the body and records the edit as a modification.
	Amend(ctx context.Context, id uint, req models.AmendJournalRequest, caller models.Session) (*models.JournalEntry, error)
	// Overwrite replaces the body without recording a modification. Admin only.
	Overwrite(ctx context.Context, id uint, req models.AmendJournalRequest, caller models.Session) (*models.JournalEntry, error)
	Delete(ctx context.Context, id uint, caller models.Session) error
	Consolidated(ctx context.Context, id uint, opts consolidated.Options) (*consolidated.View, error)
	ConsolidatedHTML(ctx context.Context, nor string, opts consolidated.Options) ([]byte, error)
}

type journalService struct {
	repo  repositories.JournalRepository
	cache cache.Cache
	log   logrus.FieldLogger
	loc   *time.Location
	now   func() time.Time
}

func NewJournalService(repo repositories.JournalRepository, c cache.Cache, log logrus.FieldLogger, loc *time.Location) JournalService {
	if loc == nil {
		loc = time.UTC
	}
	return &journalService{
		repo:  repo,
		cache: c,
		log:   log,
		loc:   loc,
		now:   time.Now,
	}
}

func (s *journalService) Create(ctx context.Context, req models.CreateJournalRequest, caller models.Session) (*models.JournalEntry, error) {
	if !caller.CanPublish {
		return nil, fmt.Errorf("publishing to the journal: %w", models.ErrForbidden)
	}

	nor := strings.TrimSpace(req.NorNumber)
	exists, err := s.repo.ExistsNor(ctx, nor)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("NOR %s already used: %w", nor, models.ErrConflict)
	}

	entry := &models.JournalEntry{
		Title:           strings.TrimSpace(req.Title),
		NorNumber:       nor,
		BodyHTML:        helper.SanitizeHTML(req.BodyHTML),
		PublicationDate: req.PublicationDate,
		AuthorName:      req.AuthorName,
		AuthorRole:      req.AuthorRole,
		CreatedBy:       caller.UserID,
	}
	if entry.PublicationDate.IsZero() {
		entry.PublicationDate = s.now()
	}
	if entry.AuthorName == "" {
		entry.AuthorName = caller.Username
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"id": entry.ID, "nor": entry.NorNumber, "user_id": caller.UserID}).
		Info("Journal entry published")
	return entry, nil
}

func (s *journalService) List(ctx context.Context, params models.JournalListParams) ([]models.JournalEntry, int64, error) {
	return s.repo.GetList(ctx, params)
}

func (s *journalService) Get(ctx context.Context, id uint) (*models.JournalEntry, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *journalService) GetByNor(ctx context.Context, nor string) (*models.JournalEntry, error) {
	return s.repo.GetByNor(ctx, nor)
}

func (s *journalService) Amend(ctx context.Context, id uint, req models.AmendJournalRequest, caller models.Session) (*models.JournalEntry, error) {
	if !caller.CanPublish {
		return nil, fmt.Errorf("amending journal entry %d: %w", id, models.ErrForbidden)
	}

	body := helper.SanitizeHTML(req.BodyHTML)
	title := strings.TrimSpace(req.Title)

	// The diff is computed against the locked row so concurrent amendments
	// each append to the latest history.
	entry, err := s.repo.Modify(ctx, id, func(entry *models.JournalEntry) error {
		diff := consolidated.Compute(entry.BodyHTML, body)
		if diff == nil && (title == "" || title == entry.Title) {
			return repositories.ErrSkipSave
		}

		if diff != nil {
			entry.Modifications = append(entry.Modifications, models.Modification{
				Date: s.now().UTC().Format(time.RFC3339),
				Diff: diff,
			})
			entry.BodyHTML = body
		}
		if title != "" {
			entry.Title = title
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"id":            entry.ID,
		"nor":           entry.NorNumber,
		"user_id":       caller.UserID,
		"modifications": len(entry.Modifications),
	}).Info("Journal entry amended")
	return entry, nil
}

func (s *journalService) Overwrite(ctx context.Context, id uint, req models.AmendJournalRequest, caller models.Session) (*models.JournalEntry, error) {
	if !caller.IsAdmin {
		return nil, fmt.Errorf("overwriting journal entry %d: %w", id, models.ErrForbidden)
	}

	body := helper.SanitizeHTML(req.BodyHTML)
	title := strings.TrimSpace(req.Title)

	entry, err := s.repo.Modify(ctx, id, func(entry *models.JournalEntry) error {
		entry.BodyHTML = body
		if title != "" {
			entry.Title = title
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"id": entry.ID, "nor": entry.NorNumber, "user_id": caller.UserID}).
		Warn("Journal entry body overwritten without a modification record")
	return entry, nil
}

func (s *journalService) Delete(ctx context.Context, id uint, caller models.Session) error {
	if !caller.IsAdmin {
		return fmt.Errorf("deleting journal entry %d: %w", id, models.ErrForbidden)
	}
	return s.repo.Delete(ctx, id)
}

func (s *journalService) Consolidated(ctx context.Context, id uint, opts consolidated.Options) (*consolidated.View, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	opts.Location = s.loc
	return consolidated.Build(entry, opts), nil
}

// ConsolidatedHTML caches the default view only; any collapse, history or
// tracking option renders afresh.
func (s *journalService) ConsolidatedHTML(ctx context.Context, nor string, opts consolidated.Options) ([]byte, error) {
	entry, err := s.repo.GetByNor(ctx, nor)
	if err != nil {
		return nil, err
	}
	opts.Location = s.loc

	cacheable := len(opts.Collapsed) == 0 && !opts.ShowHistory && !opts.Tracked
	key := fmt.Sprintf("journal:%d:%d", entry.ID, entry.UpdatedAt.UnixNano())
	if cacheable {
		page, err := s.cache.Get(ctx, key)
		if err == nil {
			return page, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.log.WithError(err).Warn("Reading consolidated view from cache")
		}
	}

	page, err := consolidated.Build(entry, opts).HTML()
	if err != nil {
		return nil, err
	}

	if cacheable {
		if err := s.cache.Set(ctx, key, page, 0); err != nil {
			s.log.WithError(err).Warn("Caching consolidated view")
		}
	}
	return page, nil
}
