package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medaccred/accreditation-backend/internal/logger"
	"github.com/medaccred/accreditation-backend/internal/types"
)

type SectionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.ProformaSection) ([]*types.ProformaSection, error)
	ListByTemplateID(ctx context.Context, tx *gorm.DB, templateID uuid.UUID) ([]*types.ProformaSection, error)
	CountByTemplateID(ctx context.Context, tx *gorm.DB, templateID uuid.UUID) (int64, error)
	// DeleteByTemplateID removes every section under the template; items go
	// with them through the FK cascade. This is the reseed wipe.
	DeleteByTemplateID(ctx context.Context, tx *gorm.DB, templateID uuid.UUID) error
}

type sectionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSectionRepo(db *gorm.DB, baseLog *logger.Logger) SectionRepo {
	repoLog := baseLog.With("repo", "SectionRepo")
	return &sectionRepo{db: db, log: repoLog}
}

func (r *sectionRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.ProformaSection) ([]*types.ProformaSection, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.ProformaSection{}, nil
	}
	for _, row := range rows {
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *sectionRepo) ListByTemplateID(ctx context.Context, tx *gorm.DB, templateID uuid.UUID) ([]*types.ProformaSection, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ProformaSection
	if templateID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("template_id = ?", templateID).
		Order("sort_order, created_at").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *sectionRepo) CountByTemplateID(ctx context.Context, tx *gorm.DB, templateID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.ProformaSection{}).
		Where("template_id = ?", templateID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *sectionRepo) DeleteByTemplateID(ctx context.Context, tx *gorm.DB, templateID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if templateID == uuid.Nil {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("template_id = ?", templateID).
		Delete(&types.ProformaSection{}).Error; err != nil {
		return err
	}
	return nil
}
