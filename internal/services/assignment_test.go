package services_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"

	"github.com/medaccred/accreditation-backend/internal/apperr"
	"github.com/medaccred/accreditation-backend/internal/services"
	"github.com/medaccred/accreditation-backend/internal/types"
)

func newAssignmentService(f *fixture) services.AssignmentService {
	return services.NewAssignmentService(f.db, f.log, f.templateRepo, f.programRepo, f.assignmentRepo, f.itemRepo, f.statusRepo)
}

func TestAssignment_CreateDefaultsToDraft(t *testing.T) {
	f := newFixture(t)
	svc := newAssignmentService(f)
	ctx := context.Background()

	template, _ := f.createCatalog(t, 1)
	inst := f.createInstitution(t, "Khyber Medical College")
	program := f.createProgram(t, inst.ID)

	assignment, err := svc.Create(ctx, services.CreateAssignmentInput{
		TemplateID: template.ID,
		ProgramID:  program.ID,
		Title:      "2026 inspection",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if assignment.Status != types.AssignmentStatusDraft {
		t.Fatalf("expected draft default, got %q", assignment.Status)
	}
}

func TestAssignment_CreateValidatesReferences(t *testing.T) {
	f := newFixture(t)
	svc := newAssignmentService(f)
	ctx := context.Background()

	template, _ := f.createCatalog(t, 1)
	inst := f.createInstitution(t, "Khyber Medical College")
	program := f.createProgram(t, inst.ID)

	_, err := svc.Create(ctx, services.CreateAssignmentInput{
		TemplateID: uuid.New(),
		ProgramID:  program.ID,
		Title:      "x",
	})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found for unknown template, got %v", err)
	}

	_, err = svc.Create(ctx, services.CreateAssignmentInput{
		TemplateID: template.ID,
		ProgramID:  program.ID,
		Title:      "x",
		Status:     "archived",
	})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}
}

func TestAssignment_StatusTransitionsUnguarded(t *testing.T) {
	f := newFixture(t)
	svc := newAssignmentService(f)
	ctx := context.Background()

	template, _ := f.createCatalog(t, 1)
	inst := f.createInstitution(t, "Khyber Medical College")
	program := f.createProgram(t, inst.ID)
	assignment := f.createAssignment(t, template.ID, program.ID)

	// Any vocabulary status may follow any other, including going backwards.
	for _, status := range []string{
		types.AssignmentStatusReviewed,
		types.AssignmentStatusDraft,
		types.AssignmentStatusSubmitted,
	} {
		updated, err := svc.Update(ctx, assignment.ID, services.UpdateAssignmentInput{Status: strPtr(status)})
		if err != nil {
			t.Fatalf("transition to %q: %v", status, err)
		}
		if updated.Status != status {
			t.Fatalf("expected %q, got %q", status, updated.Status)
		}
	}
}

func TestEnsureItemStatuses_BackfillsMissing(t *testing.T) {
	f := newFixture(t)
	svc := newAssignmentService(f)
	ctx := context.Background()

	template, items := f.createCatalog(t, 1, 1, 1)
	inst := f.createInstitution(t, "Khyber Medical College")
	program := f.createProgram(t, inst.ID)
	assignment := f.createAssignment(t, template.ID, program.ID)

	// One item already judged by hand.
	if _, err := f.statusRepo.Create(ctx, nil, []*types.ItemStatus{{
		AssignmentID: assignment.ID,
		ItemID:       items[0].ID,
		Status:       types.ItemStatusCompliant,
	}}); err != nil {
		t.Fatalf("seed status: %v", err)
	}

	all, err := svc.EnsureItemStatuses(ctx, assignment.ID)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected full coverage of 3 items, got %d", len(all))
	}
	for _, st := range all {
		if st.ItemID == items[0].ID && st.Status != types.ItemStatusCompliant {
			t.Fatalf("existing judgment must not be overwritten, got %q", st.Status)
		}
		if st.ItemID != items[0].ID && st.Status != types.ItemStatusPending {
			t.Fatalf("backfilled rows start pending, got %q", st.Status)
		}
	}

	// Idempotent: a second run creates nothing new.
	again, err := svc.EnsureItemStatuses(ctx, assignment.ID)
	if err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	if len(again) != 3 {
		t.Fatalf("second ensure changed coverage: %d", len(again))
	}
}

func TestRollup_WeightedAverage(t *testing.T) {
	f := newFixture(t)
	svc := newAssignmentService(f)
	ctx := context.Background()

	template, items := f.createCatalog(t, 2, 3, 5)
	inst := f.createInstitution(t, "Khyber Medical College")
	program := f.createProgram(t, inst.ID)
	assignment := f.createAssignment(t, template.ID, program.ID)

	// Item 0 (weight 2): 5/10. Item 1 (weight 3): 10/10. Item 2 (weight 5)
	// has no status row and stays out of the denominator.
	if _, err := f.statusRepo.Create(ctx, nil, []*types.ItemStatus{
		{AssignmentID: assignment.ID, ItemID: items[0].ID, Status: types.ItemStatusPartial, Score: intPtr(5)},
		{AssignmentID: assignment.ID, ItemID: items[1].ID, Status: types.ItemStatusCompliant, Score: intPtr(10)},
	}); err != nil {
		t.Fatalf("seed statuses: %v", err)
	}

	rollup, err := svc.Rollup(ctx, assignment.ID)
	if err != nil {
		t.Fatalf("rollup: %v", err)
	}
	if rollup.ItemCount != 2 || rollup.ScoredCount != 2 {
		t.Fatalf("expected 2 covered and scored items, got %+v", rollup)
	}
	if rollup.TotalWeight != 5 {
		t.Fatalf("expected total weight 5, got %d", rollup.TotalWeight)
	}
	// (2*0.5 + 3*1.0) / 5 = 0.8
	if math.Abs(rollup.Percent-80) > 1e-9 {
		t.Fatalf("expected 80%%, got %v", rollup.Percent)
	}
}

func TestRollup_DuplicateRowsAveraged(t *testing.T) {
	f := newFixture(t)
	svc := newAssignmentService(f)
	ctx := context.Background()

	template, items := f.createCatalog(t, 4)
	inst := f.createInstitution(t, "Khyber Medical College")
	program := f.createProgram(t, inst.ID)
	assignment := f.createAssignment(t, template.ID, program.ID)

	// Two judgments for the same item: 4/10 and 6/10 average to 0.5; a nil
	// score would count as zero instead.
	if _, err := f.statusRepo.Create(ctx, nil, []*types.ItemStatus{
		{AssignmentID: assignment.ID, ItemID: items[0].ID, Status: types.ItemStatusPartial, Score: intPtr(4)},
		{AssignmentID: assignment.ID, ItemID: items[0].ID, Status: types.ItemStatusPartial, Score: intPtr(6)},
	}); err != nil {
		t.Fatalf("seed statuses: %v", err)
	}

	rollup, err := svc.Rollup(ctx, assignment.ID)
	if err != nil {
		t.Fatalf("rollup: %v", err)
	}
	if rollup.ItemCount != 1 {
		t.Fatalf("duplicate rows are one covered item, got %d", rollup.ItemCount)
	}
	if rollup.TotalWeight != 4 {
		t.Fatalf("item weight must count once, got %d", rollup.TotalWeight)
	}
	if math.Abs(rollup.Percent-50) > 1e-9 {
		t.Fatalf("expected 50%%, got %v", rollup.Percent)
	}
}

func TestRollup_NilScoreCountsAsZero(t *testing.T) {
	f := newFixture(t)
	svc := newAssignmentService(f)
	ctx := context.Background()

	template, items := f.createCatalog(t, 1)
	inst := f.createInstitution(t, "Khyber Medical College")
	program := f.createProgram(t, inst.ID)
	assignment := f.createAssignment(t, template.ID, program.ID)

	if _, err := f.statusRepo.Create(ctx, nil, []*types.ItemStatus{
		{AssignmentID: assignment.ID, ItemID: items[0].ID, Status: types.ItemStatusPending},
	}); err != nil {
		t.Fatalf("seed status: %v", err)
	}

	rollup, err := svc.Rollup(ctx, assignment.ID)
	if err != nil {
		t.Fatalf("rollup: %v", err)
	}
	if rollup.ItemCount != 1 || rollup.ScoredCount != 0 {
		t.Fatalf("pending row covers the item but is unscored, got %+v", rollup)
	}
	if rollup.Percent != 0 {
		t.Fatalf("expected 0%%, got %v", rollup.Percent)
	}
}

func TestAssignment_DeleteCascadesStatusesAndEvidence(t *testing.T) {
	f := newFixture(t)
	svc := newAssignmentService(f)
	ctx := context.Background()

	template, items := f.createCatalog(t, 1, 1)
	inst := f.createInstitution(t, "Khyber Medical College")
	program := f.createProgram(t, inst.ID)
	assignment := f.createAssignment(t, template.ID, program.ID)

	statuses, err := svc.EnsureItemStatuses(ctx, assignment.ID)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if _, err := f.evidenceRepo.Create(ctx, nil, []*types.Evidence{{
		AssignmentID: assignment.ID,
		ItemStatusID: &statuses[0].ID,
		FileKey:      "evidence/" + assignment.ID.String() + "/report.pdf",
	}}); err != nil {
		t.Fatalf("seed evidence: %v", err)
	}

	if err := svc.Delete(ctx, assignment.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var statusCount, evidenceCount int64
	if err := f.db.Model(&types.ItemStatus{}).Count(&statusCount).Error; err != nil {
		t.Fatalf("count statuses: %v", err)
	}
	if err := f.db.Model(&types.Evidence{}).Count(&evidenceCount).Error; err != nil {
		t.Fatalf("count evidence: %v", err)
	}
	if statusCount != 0 || evidenceCount != 0 {
		t.Fatalf("delete left orphans: %d statuses, %d evidence", statusCount, evidenceCount)
	}

	// The catalog the assignment was judged against is untouched.
	found, err := f.itemRepo.GetByIDs(ctx, nil, []uuid.UUID{items[0].ID})
	if err != nil || len(found) != 1 {
		t.Fatalf("catalog item lost: %v (%d rows)", err, len(found))
	}
}
