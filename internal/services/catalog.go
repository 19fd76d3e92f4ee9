package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medaccred/accreditation-backend/internal/apperr"
	"github.com/medaccred/accreditation-backend/internal/logger"
	"github.com/medaccred/accreditation-backend/internal/repos"
	"github.com/medaccred/accreditation-backend/internal/types"
)

// CatalogService is the read surface over the checklist hierarchy. The only
// write it offers is template deletion, which takes the whole subtree and
// every compliance record referencing it with it.
type CatalogService interface {
	ListModules(ctx context.Context) ([]*types.Module, error)
	GetModule(ctx context.Context, id uuid.UUID) (*types.Module, error)
	ListTemplates(ctx context.Context, activeOnly bool) ([]*types.ProformaTemplate, error)
	GetTemplate(ctx context.Context, id uuid.UUID) (*types.ProformaTemplate, error)
	DeleteTemplate(ctx context.Context, id uuid.UUID) error
}

type catalogService struct {
	db           *gorm.DB
	log          *logger.Logger
	moduleRepo   repos.ModuleRepo
	templateRepo repos.TemplateRepo
}

func NewCatalogService(db *gorm.DB, log *logger.Logger, moduleRepo repos.ModuleRepo, templateRepo repos.TemplateRepo) CatalogService {
	serviceLog := log.With("service", "CatalogService")
	return &catalogService{
		db:           db,
		log:          serviceLog,
		moduleRepo:   moduleRepo,
		templateRepo: templateRepo,
	}
}

func (s *catalogService) ListModules(ctx context.Context) ([]*types.Module, error) {
	return s.moduleRepo.List(ctx, nil)
}

func (s *catalogService) GetModule(ctx context.Context, id uuid.UUID) (*types.Module, error) {
	rows, err := s.moduleRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: module %s", apperr.ErrNotFound, id)
	}
	return rows[0], nil
}

func (s *catalogService) ListTemplates(ctx context.Context, activeOnly bool) ([]*types.ProformaTemplate, error) {
	return s.templateRepo.List(ctx, nil, activeOnly)
}

func (s *catalogService) GetTemplate(ctx context.Context, id uuid.UUID) (*types.ProformaTemplate, error) {
	return s.templateRepo.GetWithHierarchy(ctx, nil, id)
}

// DeleteTemplate is irreversible: sections, items and, through the item FKs,
// every item status, pg compliance record and evidence link under them are
// removed in one cascade. There is no compensation path.
func (s *catalogService) DeleteTemplate(ctx context.Context, id uuid.UUID) error {
	rows, err := s.templateRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("%w: template %s", apperr.ErrNotFound, id)
	}
	s.log.Warn("Deleting template and its full compliance subtree", "template_id", id, "code", rows[0].Code)
	return s.templateRepo.DeleteByIDs(ctx, nil, []uuid.UUID{id})
}
