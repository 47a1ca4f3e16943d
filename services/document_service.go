package services

import (
	"context"
	"fmt"
	"strings"

	"bdl-cms/models"
	"bdl-cms/repositories"
)

type DocumentService interface {
	Create(ctx context.Context, req models.CreateDocumentRequest, caller models.Session) (*models.Document, error)
	Update(ctx context.Context, id uint, req models.CreateDocumentRequest, caller models.Session) (*models.Document, error)
	Get(ctx context.Context, id uint) (*models.Document, error)
	List(ctx context.Context, category string) ([]models.Document, error)
	Categories(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, id uint, caller models.Session) error
}

type documentService struct {
	repo repositories.DocumentRepository
}

func NewDocumentService(repo repositories.DocumentRepository) DocumentService {
	return &documentService{repo: repo}
}

func (s *documentService) Create(ctx context.Context, req models.CreateDocumentRequest, caller models.Session) (*models.Document, error) {
	if !caller.CanPublish {
		return nil, fmt.Errorf("creating document: %w", models.ErrForbidden)
	}

	doc := &models.Document{}
	applyDocument(doc, req)
	if err := s.repo.Create(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *documentService) Update(ctx context.Context, id uint, req models.CreateDocumentRequest, caller models.Session) (*models.Document, error) {
	if !caller.CanPublish {
		return nil, fmt.Errorf("updating document %d: %w", id, models.ErrForbidden)
	}

	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyDocument(doc, req)
	if err := s.repo.Update(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func applyDocument(doc *models.Document, req models.CreateDocumentRequest) {
	doc.Title = strings.TrimSpace(req.Title)
	doc.Category = strings.ToLower(strings.TrimSpace(req.Category))
	doc.URL = req.URL
	doc.Description = req.Description
}

func (s *documentService) Get(ctx context.Context, id uint) (*models.Document, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *documentService) List(ctx context.Context, category string) ([]models.Document, error) {
	return s.repo.List(ctx, strings.ToLower(strings.TrimSpace(category)))
}

func (s *documentService) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}

func (s *documentService) Delete(ctx context.Context, id uint, caller models.Session) error {
	if !caller.CanPublish {
		return fmt.Errorf("deleting document %d: %w", id, models.ErrForbidden)
	}
	return s.repo.Delete(ctx, id)
}
