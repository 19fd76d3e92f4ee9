package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medaccred/accreditation-backend/internal/apperr"
	"github.com/medaccred/accreditation-backend/internal/logger"
	"github.com/medaccred/accreditation-backend/internal/types"
)

// PGComplianceFilter narrows List. Nil fields mean no filter; an absent
// filter returns the unfiltered set.
type PGComplianceFilter struct {
	InstitutionID *uuid.UUID
	ItemID        *uuid.UUID
}

type PGComplianceRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.PGItemCompliance) (*types.PGItemCompliance, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.PGItemCompliance, error)
	GetByInstitutionAndItem(ctx context.Context, tx *gorm.DB, institutionID *uuid.UUID, itemID uuid.UUID) (*types.PGItemCompliance, error)
	List(ctx context.Context, tx *gorm.DB, filter PGComplianceFilter) ([]*types.PGItemCompliance, error)
	Update(ctx context.Context, tx *gorm.DB, row *types.PGItemCompliance) error
	DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type pgComplianceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPGComplianceRepo(db *gorm.DB, baseLog *logger.Logger) PGComplianceRepo {
	repoLog := baseLog.With("repo", "PGComplianceRepo")
	return &pgComplianceRepo{db: db, log: repoLog}
}

func (r *pgComplianceRepo) Create(ctx context.Context, tx *gorm.DB, row *types.PGItemCompliance) (*types.PGItemCompliance, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil, nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}

	// A second record for the same (institution, item) pair trips the
	// composite unique index and surfaces as ErrConflict.
	if err := transaction.WithContext(ctx).Create(row).Error; err != nil {
		return nil, apperr.FromDB(err)
	}
	return row, nil
}

func (r *pgComplianceRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.PGItemCompliance, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.PGItemCompliance
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

func (r *pgComplianceRepo) GetByInstitutionAndItem(ctx context.Context, tx *gorm.DB, institutionID *uuid.UUID, itemID uuid.UUID) (*types.PGItemCompliance, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	query := transaction.WithContext(ctx).Where("item_id = ?", itemID)
	if institutionID != nil {
		query = query.Where("institution_id = ?", *institutionID)
	} else {
		query = query.Where("institution_id IS NULL")
	}

	var result types.PGItemCompliance
	if err := query.First(&result).Error; err != nil {
		return nil, apperr.FromDB(err)
	}
	return &result, nil
}

func (r *pgComplianceRepo) List(ctx context.Context, tx *gorm.DB, filter PGComplianceFilter) ([]*types.PGItemCompliance, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	query := transaction.WithContext(ctx).Order("created_at")
	if filter.InstitutionID != nil {
		query = query.Where("institution_id = ?", *filter.InstitutionID)
	}
	if filter.ItemID != nil {
		query = query.Where("item_id = ?", *filter.ItemID)
	}

	var results []*types.PGItemCompliance
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *pgComplianceRepo) Update(ctx context.Context, tx *gorm.DB, row *types.PGItemCompliance) error {
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

func (r *pgComplianceRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(ids) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&types.PGItemCompliance{}).Error; err != nil {
		return err
	}
	return nil
}
