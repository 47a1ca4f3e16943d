package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bdl-cms/models"
)

type JournalRepository interface {
	Create(ctx context.Context, entry *models.JournalEntry) error
	GetByID(ctx context.Context, id uint) (*models.JournalEntry, error)
	GetByNor(ctx context.Context, nor string) (*models.JournalEntry, error)
	ExistsNor(ctx context.Context, nor string) (bool, error)
	GetList(ctx context.Context, params models.JournalListParams) ([]models.JournalEntry, int64, error)
	Update(ctx context.Context, entry *models.JournalEntry) error
	// Modify loads the entry under a row lock, applies fn and saves the result
	// in the same transaction. When fn returns ErrSkipSave nothing is written
	// and the loaded entry is returned.
	Modify(ctx context.Context, id uint, fn func(*models.JournalEntry) error) (*models.JournalEntry, error)
	Delete(ctx context.Context, id uint) error
}

type journalRepository struct {
	db *gorm.DB
}

func NewJournalRepository(db *gorm.DB) JournalRepository {
	return &journalRepository{db: db}
}

func (r *journalRepository) Create(ctx context.Context, entry *models.JournalEntry) error {
	return translate(r.db.WithContext(ctx).Create(entry).Error, "journal entry")
}

func (r *journalRepository) GetByID(ctx context.Context, id uint) (*models.JournalEntry, error) {
	var entry models.JournalEntry
	if err := r.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		return nil, translate(err, "journal entry")
	}
	return &entry, nil
}

func (r *journalRepository) GetByNor(ctx context.Context, nor string) (*models.JournalEntry, error) {
	var entry models.JournalEntry
	if err := r.db.WithContext(ctx).Where("nor_number = ?", nor).First(&entry).Error; err != nil {
		return nil, translate(err, "journal entry "+nor)
	}
	return &entry, nil
}

func (r *journalRepository) ExistsNor(ctx context.Context, nor string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.JournalEntry{}).Where("nor_number = ?", nor).Count(&count).Error
	return count > 0, err
}

// GetList omits bodies and modifications; they are only needed on the detail view.
func (r *journalRepository) GetList(ctx context.Context, params models.JournalListParams) ([]models.JournalEntry, int64, error) {
	var entries []models.JournalEntry
	var total int64

	query := r.db.WithContext(ctx).Model(&models.JournalEntry{})
	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("title LIKE ? OR nor_number LIKE ?", like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Select("id", "title", "nor_number", "publication_date", "author_name", "author_role", "created_at", "updated_at").
		Order("publication_date desc, id desc").
		Scopes(paginate(params.Page, params.Limit)).
		Find(&entries).Error

	return entries, total, err
}

func (r *journalRepository) Update(ctx context.Context, entry *models.JournalEntry) error {
	return translate(r.db.WithContext(ctx).Save(entry).Error, "journal entry")
}

func (r *journalRepository) Modify(ctx context.Context, id uint, fn func(*models.JournalEntry) error) (*models.JournalEntry, error) {
	var entry models.JournalEntry
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&entry, id).Error; err != nil {
			return translate(err, "journal entry")
		}
		if err := fn(&entry); err != nil {
			return err
		}
		return translate(tx.Save(&entry).Error, "journal entry")
	})
	if errors.Is(err, ErrSkipSave) {
		return &entry, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *journalRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.JournalEntry{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "journal entry")
	}
	return nil
}
