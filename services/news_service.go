package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bdl-cms/helper"
	"bdl-cms/models"
	"bdl-cms/repositories"
)

type NewsService interface {
	Create(ctx context.Context, req models.CreateNewsRequest, caller models.Session) (*models.News, error)
	Update(ctx context.Context, id uint, req models.CreateNewsRequest, caller models.Session) (*models.News, error)
	// Get returns ErrNotFound for unpublished news when public is set.
	Get(ctx context.Context, id uint, public bool) (*models.News, error)
	GetBySlug(ctx context.Context, slug string, public bool) (*models.News, error)
	List(ctx context.Context, params models.NewsListParams, public bool) ([]models.News, int64, error)
	Delete(ctx context.Context, id uint, caller models.Session) error
}

type newsService struct {
	repo repositories.NewsRepository
	now  func() time.Time
}

func NewNewsService(repo repositories.NewsRepository) NewsService {
	return &newsService{repo: repo, now: time.Now}
}

func (s *newsService) Create(ctx context.Context, req models.CreateNewsRequest, caller models.Session) (*models.News, error) {
	if !caller.CanPublish {
		return nil, fmt.Errorf("creating news: %w", models.ErrForbidden)
	}

	slug, err := s.uniqueSlug(ctx, req.Title)
	if err != nil {
		return nil, err
	}

	news := &models.News{Slug: slug, AuthorID: caller.UserID}
	if err := s.apply(news, req); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, news); err != nil {
		return nil, err
	}
	return news, nil
}

func (s *newsService) Update(ctx context.Context, id uint, req models.CreateNewsRequest, caller models.Session) (*models.News, error) {
	if !caller.CanPublish {
		return nil, fmt.Errorf("updating news %d: %w", id, models.ErrForbidden)
	}

	news, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(news, req); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, news); err != nil {
		return nil, err
	}
	return news, nil
}

// apply copies the request onto news and renders the body. The publication
// date is set the first time the news is published.
func (s *newsService) apply(news *models.News, req models.CreateNewsRequest) error {
	format := req.Format
	if format == "" {
		format = models.FormatHTML
	}

	rendered, err := helper.RenderBody(req.Body, format)
	if err != nil {
		return fmt.Errorf("rendering body: %w", models.ErrInvalid)
	}

	news.Title = strings.TrimSpace(req.Title)
	news.Summary = req.Summary
	news.Body = req.Body
	news.Format = format
	news.BodyHTML = rendered
	news.Published = req.Published
	if news.Published && news.PublishedAt == nil {
		now := s.now()
		news.PublishedAt = &now
	}
	return nil
}

func (s *newsService) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := helper.Slugify(title)
	if base == "" {
		base = "actualite"
	}

	slug := base
	for i := 2; ; i++ {
		exists, err := s.repo.SlugExists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s *newsService) Get(ctx context.Context, id uint, public bool) (*models.News, error) {
	news, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if public && !news.Published {
		return nil, fmt.Errorf("news %d: %w", id, models.ErrNotFound)
	}
	return news, nil
}

func (s *newsService) GetBySlug(ctx context.Context, slug string, public bool) (*models.News, error) {
	news, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if public && !news.Published {
		return nil, fmt.Errorf("news %s: %w", slug, models.ErrNotFound)
	}
	return news, nil
}

func (s *newsService) List(ctx context.Context, params models.NewsListParams, public bool) ([]models.News, int64, error) {
	return s.repo.GetList(ctx, params, public)
}

func (s *newsService) Delete(ctx context.Context, id uint, caller models.Session) error {
	if !caller.CanPublish {
		return fmt.Errorf("deleting news %d: %w", id, models.ErrForbidden)
	}
	return s.repo.Delete(ctx, id)
}
