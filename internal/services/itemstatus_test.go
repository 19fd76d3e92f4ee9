package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/medaccred/accreditation-backend/internal/apperr"
	"github.com/medaccred/accreditation-backend/internal/services"
	"github.com/medaccred/accreditation-backend/internal/types"
)

func newItemStatusService(f *fixture) services.ItemStatusService {
	return services.NewItemStatusService(f.db, f.log, f.itemRepo, f.assignmentRepo, f.statusRepo)
}

func TestItemStatus_CreateValidates(t *testing.T) {
	f := newFixture(t)
	svc := newItemStatusService(f)
	ctx := context.Background()

	template, items := f.createCatalog(t, 1)
	inst := f.createInstitution(t, "Khyber Medical College")
	program := f.createProgram(t, inst.ID)
	assignment := f.createAssignment(t, template.ID, program.ID)

	_, err := svc.Create(ctx, services.CreateItemStatusInput{
		AssignmentID: uuid.New(),
		ItemID:       items[0].ID,
	})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found for unknown assignment, got %v", err)
	}

	_, err = svc.Create(ctx, services.CreateItemStatusInput{
		AssignmentID: assignment.ID,
		ItemID:       items[0].ID,
		Status:       "YES",
	})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("institution-scoped vocabulary must be rejected here, got %v", err)
	}

	created, err := svc.Create(ctx, services.CreateItemStatusInput{
		AssignmentID: assignment.ID,
		ItemID:       items[0].ID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != types.ItemStatusPending {
		t.Fatalf("expected pending default, got %q", created.Status)
	}
}

func TestItemStatus_DuplicatePairPermitted(t *testing.T) {
	f := newFixture(t)
	svc := newItemStatusService(f)
	ctx := context.Background()

	template, items := f.createCatalog(t, 1)
	inst := f.createInstitution(t, "Khyber Medical College")
	program := f.createProgram(t, inst.ID)
	assignment := f.createAssignment(t, template.ID, program.ID)

	in := services.CreateItemStatusInput{
		AssignmentID: assignment.ID,
		ItemID:       items[0].ID,
		Status:       types.ItemStatusPartial,
	}
	if _, err := svc.Create(ctx, in); err != nil {
		t.Fatalf("first create: %v", err)
	}
	// Unlike pg_item_compliance there is no unique pair constraint.
	if _, err := svc.Create(ctx, in); err != nil {
		t.Fatalf("second create for same pair should pass: %v", err)
	}

	rows, err := svc.ListByAssignment(ctx, assignment.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
}

func TestItemStatus_DeleteDetachesEvidence(t *testing.T) {
	f := newFixture(t)
	svc := newItemStatusService(f)
	ctx := context.Background()

	template, items := f.createCatalog(t, 1)
	inst := f.createInstitution(t, "Khyber Medical College")
	program := f.createProgram(t, inst.ID)
	assignment := f.createAssignment(t, template.ID, program.ID)

	status, err := svc.Create(ctx, services.CreateItemStatusInput{
		AssignmentID: assignment.ID,
		ItemID:       items[0].ID,
		Status:       types.ItemStatusCompliant,
	})
	if err != nil {
		t.Fatalf("create status: %v", err)
	}
	evidence, err := f.evidenceRepo.Create(ctx, nil, []*types.Evidence{{
		AssignmentID: assignment.ID,
		ItemStatusID: &status.ID,
		FileKey:      "evidence/test",
	}})
	if err != nil {
		t.Fatalf("create evidence: %v", err)
	}

	if err := svc.Delete(ctx, status.ID); err != nil {
		t.Fatalf("delete status: %v", err)
	}

	reloaded, err := f.evidenceRepo.GetByIDs(ctx, nil, []uuid.UUID{evidence[0].ID})
	if err != nil {
		t.Fatalf("reload evidence: %v", err)
	}
	if len(reloaded) != 1 {
		t.Fatalf("evidence row must survive status deletion")
	}
	if reloaded[0].ItemStatusID != nil {
		t.Fatalf("evidence link should null out, got %v", reloaded[0].ItemStatusID)
	}
}

func TestItemStatus_UpdatePartialFields(t *testing.T) {
	f := newFixture(t)
	svc := newItemStatusService(f)
	ctx := context.Background()

	template, items := f.createCatalog(t, 1)
	inst := f.createInstitution(t, "Khyber Medical College")
	program := f.createProgram(t, inst.ID)
	assignment := f.createAssignment(t, template.ID, program.ID)

	status, err := svc.Create(ctx, services.CreateItemStatusInput{
		AssignmentID: assignment.ID,
		ItemID:       items[0].ID,
		Status:       types.ItemStatusPartial,
		Comment:      "two professors short",
		Score:        intPtr(5),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(ctx, status.ID, services.UpdateItemStatusInput{
		Score: intPtr(8),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Score == nil || *updated.Score != 8 {
		t.Fatalf("score not updated: %v", updated.Score)
	}
	if updated.Status != types.ItemStatusPartial || updated.Comment != "two professors short" {
		t.Fatalf("untouched fields must keep their values: %+v", updated)
	}

	// An explicit empty status on update is rejected, not treated as the
	// create-time default.
	if _, err := svc.Update(ctx, status.ID, services.UpdateItemStatusInput{
		Status: strPtr(""),
	}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error for empty status, got %v", err)
	}
}
