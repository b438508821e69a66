package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/tndevelopers2024/scribe-api/internal/models"
)

// ErrStaleStatus indicates the item's status changed between read and write,
// failing the caller's expected-status check.
var ErrStaleStatus = errors.New("submission status changed concurrently")

// SubmissionFilter narrows submission item queries.
type SubmissionFilter struct {
	OwnerID  *uint
	Category *models.Category
	Status   *string
}

// ReviewUpdate describes a review decision to apply atomically with the
// owner's points adjustment.
type ReviewUpdate struct {
	ItemID         uint
	Status         string
	Feedback       string
	ReviewedBy     uint
	ReviewedAt     time.Time
	ExpectedStatus string
}

// SubmissionRepository defines data operations for portfolio entries.
type SubmissionRepository interface {
	List(ctx context.Context, filter SubmissionFilter) ([]models.SubmissionItem, error)
	GetByID(ctx context.Context, id uint) (models.SubmissionItem, error)
	Create(ctx context.Context, item *models.SubmissionItem) error
	Update(ctx context.Context, item *models.SubmissionItem) error
	Delete(ctx context.Context, id uint) error
	Review(ctx context.Context, update ReviewUpdate) (models.SubmissionItem, error)
	PendingCounts(ctx context.Context, ownerID uint) (map[models.Category]int64, error)
	RecountPoints(ctx context.Context, ownerID uint) (int, error)
}

type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository instantiates the repository.
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) List(ctx context.Context, filter SubmissionFilter) ([]models.SubmissionItem, error) {
	query := r.db.WithContext(ctx).Model(&models.SubmissionItem{})

	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}

	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var items []models.SubmissionItem
	if err := query.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}

	return items, nil
}

func (r *submissionRepository) GetByID(ctx context.Context, id uint) (models.SubmissionItem, error) {
	var item models.SubmissionItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return models.SubmissionItem{}, err
	}

	return item, nil
}

func (r *submissionRepository) Create(ctx context.Context, item *models.SubmissionItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *submissionRepository) Update(ctx context.Context, item *models.SubmissionItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete removes the entry and, when it was approved, decrements the owner's
// cached points inside the same transaction.
func (r *submissionRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.SubmissionItem
		if err := tx.First(&item, id).Error; err != nil {
			return err
		}

		if err := tx.Delete(&models.SubmissionItem{}, id).Error; err != nil {
			return err
		}

		if item.IsApproved() {
			return adjustPoints(tx, item.OwnerID, -1)
		}

		return nil
	})
}

// Review applies the status change and the compensating points delta in one
// transaction. The delta is derived from the status actually read inside the
// transaction, so concurrent reviewers cannot double-count a point. The final
// UPDATE is guarded by that read status; losing the race returns
// ErrStaleStatus.
func (r *submissionRepository) Review(ctx context.Context, update ReviewUpdate) (models.SubmissionItem, error) {
	var reviewed models.SubmissionItem

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.SubmissionItem
		if err := tx.First(&item, update.ItemID).Error; err != nil {
			return err
		}

		if update.ExpectedStatus != "" && item.Status != update.ExpectedStatus {
			return ErrStaleStatus
		}

		delta := 0
		switch {
		case update.Status == models.SubmissionStatusApproved && !item.IsApproved():
			delta = 1
		case update.Status != models.SubmissionStatusApproved && item.IsApproved():
			delta = -1
		}

		result := tx.Model(&models.SubmissionItem{}).
			Where("id = ? AND status = ?", item.ID, item.Status).
			Updates(map[string]interface{}{
				"status":      update.Status,
				"feedback":    update.Feedback,
				"reviewed_by": update.ReviewedBy,
				"reviewed_at": update.ReviewedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrStaleStatus
		}

		if delta != 0 {
			if err := adjustPoints(tx, item.OwnerID, delta); err != nil {
				return err
			}
		}

		return tx.First(&reviewed, item.ID).Error
	})
	if err != nil {
		return models.SubmissionItem{}, err
	}

	return reviewed, nil
}

func (r *submissionRepository) PendingCounts(ctx context.Context, ownerID uint) (map[models.Category]int64, error) {
	type categoryCount struct {
		Category models.Category
		Total    int64
	}

	var rows []categoryCount
	err := r.db.WithContext(ctx).Model(&models.SubmissionItem{}).
		Select("category, COUNT(*) AS total").
		Where("owner_id = ? AND status IN ?", ownerID, []string{models.SubmissionStatusPending, models.SubmissionStatusResubmitted}).
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.Category]int64, len(models.Categories()))
	for _, category := range models.Categories() {
		counts[category] = 0
	}
	for _, row := range rows {
		counts[row.Category] = row.Total
	}

	return counts, nil
}

// RecountPoints recomputes the owner's points from the approved-entry count
// and rewrites the cached total. Reconciliation safety net against drift.
func (r *submissionRepository) RecountPoints(ctx context.Context, ownerID uint) (int, error) {
	var total int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.SubmissionItem{}).
			Where("owner_id = ? AND status = ?", ownerID, models.SubmissionStatusApproved).
			Count(&total).Error; err != nil {
			return err
		}

		return tx.Model(&models.Student{}).
			Where("id = ?", ownerID).
			UpdateColumn("points", total).Error
	})
	if err != nil {
		return 0, err
	}

	return int(total), nil
}

func adjustPoints(tx *gorm.DB, studentID uint, delta int) error {
	return tx.Model(&models.Student{}).
		Where("id = ?", studentID).
		UpdateColumn("points", gorm.Expr("points + ?", delta)).Error
}
