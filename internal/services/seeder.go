package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/medaccred/accreditation-backend/internal/apperr"
	"github.com/medaccred/accreditation-backend/internal/logger"
	"github.com/medaccred/accreditation-backend/internal/repos"
	"github.com/medaccred/accreditation-backend/internal/seed"
	"github.com/medaccred/accreditation-backend/internal/types"
)

type ImportResult struct {
	ModuleCode      string
	CreatedModule   bool
	CreatedTemplate bool
	Sections        int
	Items           int
}

// SeederService imports a catalog document. Importing is a REPLACE: module
// and template metadata are refreshed in place by code, but the template's
// sections and items are deleted and recreated on every run. Compliance
// records and evidence pointing at the old items are destroyed or orphaned by
// the item cascade — that is the documented contract, not an accident, which
// is why a run against an already-seeded template demands the replace flag.
type SeederService interface {
	Import(ctx context.Context, doc *seed.Document, replace bool) (*ImportResult, error)
}

type seederService struct {
	db           *gorm.DB
	log          *logger.Logger
	moduleRepo   repos.ModuleRepo
	templateRepo repos.TemplateRepo
	sectionRepo  repos.SectionRepo
	itemRepo     repos.ItemRepo
}

func NewSeederService(db *gorm.DB, log *logger.Logger, moduleRepo repos.ModuleRepo, templateRepo repos.TemplateRepo, sectionRepo repos.SectionRepo, itemRepo repos.ItemRepo) SeederService {
	serviceLog := log.With("service", "SeederService")
	return &seederService{
		db:           db,
		log:          serviceLog,
		moduleRepo:   moduleRepo,
		templateRepo: templateRepo,
		sectionRepo:  sectionRepo,
		itemRepo:     itemRepo,
	}
}

func (s *seederService) Import(ctx context.Context, doc *seed.Document, replace bool) (*ImportResult, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: nil seed document", apperr.ErrValidation)
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrValidation, err)
	}
	if len(doc.Sections) == 0 {
		s.log.Warn("Seed document has no sections, nothing to import", "module_code", doc.Module.Code)
		return &ImportResult{ModuleCode: doc.Module.Code}, nil
	}

	result := &ImportResult{ModuleCode: doc.Module.Code}

	// One transaction end to end: either the full replace lands or the
	// template keeps its prior sections and items.
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		module, created, err := s.upsertModule(ctx, tx, doc.Module)
		if err != nil {
			return err
		}
		result.CreatedModule = created

		template, created, err := s.upsertTemplate(ctx, tx, module, doc.Module)
		if err != nil {
			return err
		}
		result.CreatedTemplate = created

		existing, err := s.sectionRepo.CountByTemplateID(ctx, tx, template.ID)
		if err != nil {
			return err
		}
		if existing > 0 && !replace {
			return fmt.Errorf("%w: template %q already has %d sections; re-importing replaces them and destroys dependent compliance records, pass replace to confirm",
				apperr.ErrConflict, template.Code, existing)
		}

		if err := s.sectionRepo.DeleteByTemplateID(ctx, tx, template.ID); err != nil {
			return fmt.Errorf("clearing old sections: %w", err)
		}

		for sIdx, sectionDoc := range doc.Sections {
			section, err := s.createSection(ctx, tx, template, sectionDoc, sIdx+1)
			if err != nil {
				return err
			}
			result.Sections++

			items := make([]*types.ProformaItem, 0, len(sectionDoc.Items))
			for iIdx, itemDoc := range sectionDoc.Items {
				items = append(items, buildItem(section, itemDoc, iIdx+1))
			}
			if _, err := s.itemRepo.Create(ctx, tx, items); err != nil {
				return fmt.Errorf("creating items for section %q: %w", section.Code, err)
			}
			result.Items += len(items)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.log.Info("Seeded module",
		"module_code", result.ModuleCode,
		"sections", result.Sections,
		"items", result.Items,
	)
	return result, nil
}

func (s *seederService) upsertModule(ctx context.Context, tx *gorm.DB, meta seed.ModuleMeta) (*types.Module, bool, error) {
	module, err := s.moduleRepo.GetByCode(ctx, tx, meta.Code)
	if err == nil {
		module.DisplayName = meta.ResolvedTitle()
		module.Description = meta.Description
		if err := s.moduleRepo.Update(ctx, tx, module); err != nil {
			return nil, false, fmt.Errorf("refreshing module %q: %w", meta.Code, err)
		}
		return module, false, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, false, fmt.Errorf("looking up module %q: %w", meta.Code, err)
	}

	rows, err := s.moduleRepo.Create(ctx, tx, []*types.Module{{
		Code:        meta.Code,
		DisplayName: meta.ResolvedTitle(),
		Description: meta.Description,
	}})
	if err != nil {
		return nil, false, fmt.Errorf("creating module %q: %w", meta.Code, err)
	}
	return rows[0], true, nil
}

func (s *seederService) upsertTemplate(ctx context.Context, tx *gorm.DB, module *types.Module, meta seed.ModuleMeta) (*types.ProformaTemplate, bool, error) {
	template, err := s.templateRepo.GetByCode(ctx, tx, meta.Code)
	if err == nil {
		template.ModuleID = module.ID
		template.Title = meta.ResolvedTitle()
		template.AuthorityName = meta.ResolvedAuthority()
		template.Description = meta.Description
		template.Version = meta.ResolvedVersion()
		template.IsActive = true
		if err := s.templateRepo.Update(ctx, tx, template); err != nil {
			return nil, false, fmt.Errorf("refreshing template %q: %w", meta.Code, err)
		}
		return template, false, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, false, fmt.Errorf("looking up template %q: %w", meta.Code, err)
	}

	rows, err := s.templateRepo.Create(ctx, tx, []*types.ProformaTemplate{{
		ModuleID:      module.ID,
		Code:          meta.Code,
		Title:         meta.ResolvedTitle(),
		AuthorityName: meta.ResolvedAuthority(),
		Description:   meta.Description,
		Version:       meta.ResolvedVersion(),
		IsActive:      true,
	}})
	if err != nil {
		return nil, false, fmt.Errorf("creating template %q: %w", meta.Code, err)
	}
	return rows[0], true, nil
}

func (s *seederService) createSection(ctx context.Context, tx *gorm.DB, template *types.ProformaTemplate, doc seed.Section, idx int) (*types.ProformaSection, error) {
	code := doc.Code
	if code == "" {
		code = fmt.Sprintf("S%d", idx)
	}
	title := doc.Title
	if title == "" {
		title = code
	}
	weight := doc.Weight
	if weight == 0 {
		weight = idx
	}

	rows, err := s.sectionRepo.Create(ctx, tx, []*types.ProformaSection{{
		TemplateID:  template.ID,
		Code:        code,
		Title:       title,
		Description: doc.Description,
		Order:       idx,
		Weight:      weight,
	}})
	if err != nil {
		return nil, fmt.Errorf("creating section %q: %w", code, err)
	}
	return rows[0], nil
}

func buildItem(section *types.ProformaSection, doc seed.Item, idx int) *types.ProformaItem {
	code := doc.Code
	if code == "" {
		code = fmt.Sprintf("%s.%d", section.Code, idx)
	}
	weight := 1
	if doc.Weight != nil {
		weight = *doc.Weight
	}
	return &types.ProformaItem{
		SectionID:            section.ID,
		Code:                 code,
		RequirementText:      doc.Text,
		RequiredEvidenceType: doc.Evidence,
		// The document's item weight doubles as the 1-5 advisory level,
		// matching how the import format has always been read.
		ImportanceLevel:     doc.Weight,
		Order:               idx,
		Weight:              weight,
		MaxScore:            10,
		WeightagePercent:    100,
		IsLicensingCritical: doc.Critical,
	}
}
