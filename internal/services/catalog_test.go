package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/medaccred/accreditation-backend/internal/apperr"
	"github.com/medaccred/accreditation-backend/internal/services"
	"github.com/medaccred/accreditation-backend/internal/types"
)

func newCatalogService(f *fixture) services.CatalogService {
	return services.NewCatalogService(f.db, f.log, f.moduleRepo, f.templateRepo)
}

func TestCatalog_GetTemplateLoadsHierarchy(t *testing.T) {
	f := newFixture(t)
	svc := newCatalogService(f)
	ctx := context.Background()

	template, items := f.createCatalog(t, 1, 1)

	loaded, err := svc.GetTemplate(ctx, template.ID)
	if err != nil {
		t.Fatalf("get template: %v", err)
	}
	if len(loaded.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(loaded.Sections))
	}
	if len(loaded.Sections[0].Items) != len(items) {
		t.Fatalf("expected %d items, got %d", len(items), len(loaded.Sections[0].Items))
	}
}

func TestCatalog_DeleteTemplateCascades(t *testing.T) {
	f := newFixture(t)
	svc := newCatalogService(f)
	ctx := context.Background()

	template, items := f.createCatalog(t, 1)
	inst := f.createInstitution(t, "Khyber Medical College")
	program := f.createProgram(t, inst.ID)
	assignment := f.createAssignment(t, template.ID, program.ID)
	user := f.createUser(t)

	statuses, err := f.statusRepo.Create(ctx, nil, []*types.ItemStatus{{
		AssignmentID: assignment.ID,
		ItemID:       items[0].ID,
		Status:       types.ItemStatusCompliant,
	}})
	if err != nil {
		t.Fatalf("create status: %v", err)
	}
	if _, err := f.complianceRepo.Create(ctx, nil, &types.PGItemCompliance{
		InstitutionID: &inst.ID,
		ItemID:        items[0].ID,
		Status:        types.PGComplianceYes,
		UpdatedByID:   &user.ID,
	}); err != nil {
		t.Fatalf("create compliance: %v", err)
	}
	if _, err := f.evidenceRepo.Create(ctx, nil, []*types.Evidence{{
		AssignmentID: assignment.ID,
		ItemStatusID: &statuses[0].ID,
		FileKey:      "evidence/test",
	}}); err != nil {
		t.Fatalf("create evidence: %v", err)
	}

	if err := svc.DeleteTemplate(ctx, template.ID); err != nil {
		t.Fatalf("delete template: %v", err)
	}

	// Everything hanging off the template goes with it.
	for name, model := range map[string]any{
		"sections":     &types.ProformaSection{},
		"items":        &types.ProformaItem{},
		"assignments":  &types.Assignment{},
		"itemstatuses": &types.ItemStatus{},
		"compliance":   &types.PGItemCompliance{},
		"evidence":     &types.Evidence{},
	} {
		var count int64
		if err := f.db.Model(model).Count(&count).Error; err != nil {
			t.Fatalf("count %s: %v", name, err)
		}
		if count != 0 {
			t.Fatalf("%s survived the template cascade: %d rows", name, count)
		}
	}

	// The evaluated organizations are not part of the subtree.
	var instCount, programCount int64
	if err := f.db.Model(&types.Institution{}).Count(&instCount).Error; err != nil {
		t.Fatalf("count institutions: %v", err)
	}
	if err := f.db.Model(&types.Program{}).Count(&programCount).Error; err != nil {
		t.Fatalf("count programs: %v", err)
	}
	if instCount != 1 || programCount != 1 {
		t.Fatalf("institution or program lost to the cascade: %d, %d", instCount, programCount)
	}

	_, err = svc.GetTemplate(ctx, template.ID)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}
