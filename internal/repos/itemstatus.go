package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medaccred/accreditation-backend/internal/apperr"
	"github.com/medaccred/accreditation-backend/internal/logger"
	"github.com/medaccred/accreditation-backend/internal/types"
)

type ItemStatusRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.ItemStatus) ([]*types.ItemStatus, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.ItemStatus, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.ItemStatus, error)
	ListByAssignmentID(ctx context.Context, tx *gorm.DB, assignmentID uuid.UUID) ([]*types.ItemStatus, error)
	// ListByAssignmentAndItem can return multiple rows: (assignment, item) is
	// not constrained unique, unlike the institution-scoped records.
	ListByAssignmentAndItem(ctx context.Context, tx *gorm.DB, assignmentID, itemID uuid.UUID) ([]*types.ItemStatus, error)
	Update(ctx context.Context, tx *gorm.DB, row *types.ItemStatus) error
	DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type itemStatusRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewItemStatusRepo(db *gorm.DB, baseLog *logger.Logger) ItemStatusRepo {
	repoLog := baseLog.With("repo", "ItemStatusRepo")
	return &itemStatusRepo{db: db, log: repoLog}
}

func (r *itemStatusRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.ItemStatus) ([]*types.ItemStatus, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.ItemStatus{}, nil
	}
	for _, row := range rows {
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, apperr.FromDB(err)
	}
	return rows, nil
}

func (r *itemStatusRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.ItemStatus, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ItemStatus
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *itemStatusRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.ItemStatus, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ItemStatus
	if err := transaction.WithContext(ctx).
		Order("created_at").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *itemStatusRepo) ListByAssignmentID(ctx context.Context, tx *gorm.DB, assignmentID uuid.UUID) ([]*types.ItemStatus, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ItemStatus
	if assignmentID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("assignment_id = ?", assignmentID).
		Order("created_at").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *itemStatusRepo) ListByAssignmentAndItem(ctx context.Context, tx *gorm.DB, assignmentID, itemID uuid.UUID) ([]*types.ItemStatus, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ItemStatus
	if assignmentID == uuid.Nil || itemID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("assignment_id = ? AND item_id = ?", assignmentID, itemID).
		Order("created_at").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *itemStatusRepo) Update(ctx context.Context, tx *gorm.DB, row *types.ItemStatus) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil || row.ID == uuid.Nil {
		return nil
	}

	if err := transaction.WithContext(ctx).Save(row).Error; err != nil {
		return apperr.FromDB(err)
	}
	return nil
}

func (r *itemStatusRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(ids) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&types.ItemStatus{}).Error; err != nil {
		return err
	}
	return nil
}
