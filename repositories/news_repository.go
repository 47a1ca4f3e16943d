package repositories

import (
	"context"

	"gorm.io/gorm"

	"bdl-cms/models"
)

type NewsRepository interface {
	Create(ctx context.Context, news *models.News) error
	GetByID(ctx context.Context, id uint) (*models.News, error)
	GetBySlug(ctx context.Context, slug string) (*models.News, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	GetList(ctx context.Context, params models.NewsListParams, publishedOnly bool) ([]models.News, int64, error)
	Update(ctx context.Context, news *models.News) error
	Delete(ctx context.Context, id uint) error
}

type newsRepository struct {
	db *gorm.DB
}

func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepository{db: db}
}

func (r *newsRepository) Create(ctx context.Context, news *models.News) error {
	return translate(r.db.WithContext(ctx).Create(news).Error, "news")
}

func (r *newsRepository) GetByID(ctx context.Context, id uint) (*models.News, error) {
	var news models.News
	if err := r.db.WithContext(ctx).Preload("Author").First(&news, id).Error; err != nil {
		return nil, translate(err, "news")
	}
	return &news, nil
}

func (r *newsRepository) GetBySlug(ctx context.Context, slug string) (*models.News, error) {
	var news models.News
	if err := r.db.WithContext(ctx).Preload("Author").Where("slug = ?", slug).First(&news).Error; err != nil {
		return nil, translate(err, "news "+slug)
	}
	return &news, nil
}

func (r *newsRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(&models.News{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *newsRepository) GetList(ctx context.Context, params models.NewsListParams, publishedOnly bool) ([]models.News, int64, error) {
	var items []models.News
	var total int64

	query := r.db.WithContext(ctx).Model(&models.News{})
	if publishedOnly {
		query = query.Where("published = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Author").
		Order("published_at desc, id desc").
		Scopes(paginate(params.Page, params.Limit)).
		Find(&items).Error

	return items, total, err
}

func (r *newsRepository) Update(ctx context.Context, news *models.News) error {
	return translate(r.db.WithContext(ctx).Omit("Author").Save(news).Error, "news")
}

func (r *newsRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.News{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "news")
	}
	return nil
}
