package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medaccred/accreditation-backend/internal/apperr"
	"github.com/medaccred/accreditation-backend/internal/logger"
	"github.com/medaccred/accreditation-backend/internal/types"
)

type EvidenceRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Evidence) ([]*types.Evidence, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Evidence, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Evidence, error)
	ListByAssignmentID(ctx context.Context, tx *gorm.DB, assignmentID uuid.UUID) ([]*types.Evidence, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
	Update(ctx context.Context, tx *gorm.DB, row *types.Evidence) error
	DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type evidenceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEvidenceRepo(db *gorm.DB, baseLog *logger.Logger) EvidenceRepo {
	repoLog := baseLog.With("repo", "EvidenceRepo")
	return &evidenceRepo{db: db, log: repoLog}
}

func (r *evidenceRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Evidence) ([]*types.Evidence, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.Evidence{}, nil
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

func (r *evidenceRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Evidence, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Evidence
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

func (r *evidenceRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Evidence, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Evidence
	if err := transaction.WithContext(ctx).
		Order("created_at").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *evidenceRepo) ListByAssignmentID(ctx context.Context, tx *gorm.DB, assignmentID uuid.UUID) ([]*types.Evidence, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Evidence
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

func (r *evidenceRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Evidence{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *evidenceRepo) Update(ctx context.Context, tx *gorm.DB, row *types.Evidence) error {
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

func (r *evidenceRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(ids) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&types.Evidence{}).Error; err != nil {
		return err
	}
	return nil
}
