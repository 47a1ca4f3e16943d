package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"bdl-cms/models"
)

// ErrSkipSave is returned by a Modify callback to leave the row untouched.
var ErrSkipSave = errors.New("nothing to save")

// translate maps gorm errors onto the model sentinels.
func translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", what, models.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", what, models.ErrConflict)
	default:
		return err
	}
}

func paginate(page, limit int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		page, limit := models.ClampPaging(page, limit)
		return db.Offset((page - 1) * limit).Limit(limit)
	}
}
