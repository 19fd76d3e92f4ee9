package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medaccred/accreditation-backend/internal/apperr"
	"github.com/medaccred/accreditation-backend/internal/logger"
	"github.com/medaccred/accreditation-backend/internal/types"
)

type TemplateRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.ProformaTemplate) ([]*types.ProformaTemplate, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.ProformaTemplate, error)
	GetByCode(ctx context.Context, tx *gorm.DB, code string) (*types.ProformaTemplate, error)
	// GetWithHierarchy loads the template with its sections and items, both
	// ordered by sort_order with creation time as the tie-break.
	GetWithHierarchy(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.ProformaTemplate, error)
	List(ctx context.Context, tx *gorm.DB, activeOnly bool) ([]*types.ProformaTemplate, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
	Update(ctx context.Context, tx *gorm.DB, row *types.ProformaTemplate) error
	DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type templateRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTemplateRepo(db *gorm.DB, baseLog *logger.Logger) TemplateRepo {
	repoLog := baseLog.With("repo", "TemplateRepo")
	return &templateRepo{db: db, log: repoLog}
}

func (r *templateRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.ProformaTemplate) ([]*types.ProformaTemplate, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.ProformaTemplate{}, nil
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

func (r *templateRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.ProformaTemplate, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ProformaTemplate
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

func (r *templateRepo) GetByCode(ctx context.Context, tx *gorm.DB, code string) (*types.ProformaTemplate, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.ProformaTemplate
	if err := transaction.WithContext(ctx).
		Where("code = ?", code).
		First(&result).Error; err != nil {
		return nil, apperr.FromDB(err)
	}
	return &result, nil
}

func (r *templateRepo) GetWithHierarchy(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.ProformaTemplate, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.ProformaTemplate
	if err := transaction.WithContext(ctx).
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order, created_at")
		}).
		Preload("Sections.Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order, created_at")
		}).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, apperr.FromDB(err)
	}
	return &result, nil
}

func (r *templateRepo) List(ctx context.Context, tx *gorm.DB, activeOnly bool) ([]*types.ProformaTemplate, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	query := transaction.WithContext(ctx).Order("code")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var results []*types.ProformaTemplate
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *templateRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.ProformaTemplate{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *templateRepo) Update(ctx context.Context, tx *gorm.DB, row *types.ProformaTemplate) error {
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

func (r *templateRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(ids) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&types.ProformaTemplate{}).Error; err != nil {
		return err
	}
	return nil
}
