package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bdl-cms/models"
)

type ScrutinRepository interface {
	Create(ctx context.Context, scrutin *models.Scrutin) error
	GetByID(ctx context.Context, id uint) (*models.Scrutin, error)
	List(ctx context.Context, openOnly bool, now time.Time) ([]models.Scrutin, error)
	// CastBallot records the ballot and increments the matching counter in one
	// transaction. It fails with ErrClosed when the scrutin does not accept
	// ballots at now and with ErrConflict when the user already voted.
	CastBallot(ctx context.Context, ballot *models.Ballot, now time.Time) (*models.Scrutin, error)
	HasVoted(ctx context.Context, scrutinID, userID uint) (bool, error)
	// CloseExpired marks as closed every open scrutin whose deadline is not
	// after now, and returns how many were closed.
	CloseExpired(ctx context.Context, now time.Time) (int64, error)
	Close(ctx context.Context, id uint) error
}

type scrutinRepository struct {
	db *gorm.DB
}

func NewScrutinRepository(db *gorm.DB) ScrutinRepository {
	return &scrutinRepository{db: db}
}

var counterColumns = map[models.BallotChoice]string{
	models.ChoicePour:       "pour",
	models.ChoiceContre:     "contre",
	models.ChoiceAbstention: "abstention",
}

func (r *scrutinRepository) Create(ctx context.Context, scrutin *models.Scrutin) error {
	return r.db.WithContext(ctx).Create(scrutin).Error
}

func (r *scrutinRepository) GetByID(ctx context.Context, id uint) (*models.Scrutin, error) {
	var scrutin models.Scrutin
	if err := r.db.WithContext(ctx).First(&scrutin, id).Error; err != nil {
		return nil, translate(err, "scrutin")
	}
	return &scrutin, nil
}

func (r *scrutinRepository) List(ctx context.Context, openOnly bool, now time.Time) ([]models.Scrutin, error) {
	var items []models.Scrutin
	query := r.db.WithContext(ctx).Order("created_at desc")
	if openOnly {
		query = query.Where("closed = ?", false)
	}
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	if !openOnly {
		return items, nil
	}

	open := items[:0]
	for _, s := range items {
		if s.AcceptsBallots(now) {
			open = append(open, s)
		}
	}
	return open, nil
}

func (r *scrutinRepository) CastBallot(ctx context.Context, ballot *models.Ballot, now time.Time) (*models.Scrutin, error) {
	column, ok := counterColumns[ballot.Choice]
	if !ok {
		return nil, fmt.Errorf("choice %q: %w", ballot.Choice, models.ErrInvalid)
	}

	var scrutin models.Scrutin
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&scrutin, ballot.ScrutinID).Error; err != nil {
			return translate(err, "scrutin")
		}
		if !scrutin.AcceptsBallots(now) {
			return fmt.Errorf("scrutin %d: %w", scrutin.ID, models.ErrClosed)
		}

		var count int64
		if err := tx.Model(&models.Ballot{}).
			Where("scrutin_id = ? AND user_id = ?", ballot.ScrutinID, ballot.UserID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("ballot already cast: %w", models.ErrConflict)
		}

		if err := tx.Create(ballot).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("ballot already cast: %w", models.ErrConflict)
			}
			return err
		}

		if err := tx.Model(&scrutin).
			UpdateColumn(column, gorm.Expr(column+" + ?", 1)).Error; err != nil {
			return err
		}
		return tx.First(&scrutin, ballot.ScrutinID).Error
	})
	if err != nil {
		return nil, err
	}
	return &scrutin, nil
}

func (r *scrutinRepository) HasVoted(ctx context.Context, scrutinID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Ballot{}).
		Where("scrutin_id = ? AND user_id = ?", scrutinID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *scrutinRepository) CloseExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Scrutin{}).
		Where("closed = ? AND closes_at > ? AND closes_at <= ?", false, time.Time{}, now.UTC()).
		Update("closed", true)
	return res.RowsAffected, res.Error
}

func (r *scrutinRepository) Close(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&models.Scrutin{}).Where("id = ?", id).Update("closed", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "scrutin")
	}
	return nil
}
