package repositories

import (
	"context"

	"gorm.io/gorm"

	"bdl-cms/models"
)

type DocumentRepository interface {
	Create(ctx context.Context, doc *models.Document) error
	GetByID(ctx context.Context, id uint) (*models.Document, error)
	List(ctx context.Context, category string) ([]models.Document, error)
	Categories(ctx context.Context) ([]string, error)
	Update(ctx context.Context, doc *models.Document) error
	Delete(ctx context.Context, id uint) error
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, doc *models.Document) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *documentRepository) GetByID(ctx context.Context, id uint) (*models.Document, error) {
	var doc models.Document
	if err := r.db.WithContext(ctx).First(&doc, id).Error; err != nil {
		return nil, translate(err, "document")
	}
	return &doc, nil
}

func (r *documentRepository) List(ctx context.Context, category string) ([]models.Document, error) {
	var docs []models.Document
	query := r.db.WithContext(ctx).Order("category asc, title asc")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	err := query.Find(&docs).Error
	return docs, err
}

func (r *documentRepository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).Model(&models.Document{}).
		Where("category <> ''").
		Distinct("category").
		Order("category asc").
		Pluck("category", &categories).Error
	return categories, err
}

func (r *documentRepository) Update(ctx context.Context, doc *models.Document) error {
	return r.db.WithContext(ctx).Save(doc).Error
}

func (r *documentRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Document{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "document")
	}
	return nil
}
