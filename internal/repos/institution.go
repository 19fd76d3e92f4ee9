package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medaccred/accreditation-backend/internal/apperr"
	"github.com/medaccred/accreditation-backend/internal/logger"
	"github.com/medaccred/accreditation-backend/internal/types"
)

type InstitutionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Institution) ([]*types.Institution, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Institution, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Institution, error)
	Update(ctx context.Context, tx *gorm.DB, row *types.Institution) error
	DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type institutionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInstitutionRepo(db *gorm.DB, baseLog *logger.Logger) InstitutionRepo {
	repoLog := baseLog.With("repo", "InstitutionRepo")
	return &institutionRepo{db: db, log: repoLog}
}

func (r *institutionRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Institution) ([]*types.Institution, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.Institution{}, nil
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

func (r *institutionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Institution, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Institution
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

func (r *institutionRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Institution, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Institution
	if err := transaction.WithContext(ctx).
		Order("name").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *institutionRepo) Update(ctx context.Context, tx *gorm.DB, row *types.Institution) error {
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

func (r *institutionRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(ids) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&types.Institution{}).Error; err != nil {
		return err
	}
	return nil
}
