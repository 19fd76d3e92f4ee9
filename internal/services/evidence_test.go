package services_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/medaccred/accreditation-backend/internal/apperr"
	"github.com/medaccred/accreditation-backend/internal/services"
	"github.com/medaccred/accreditation-backend/internal/types"
)

// memBucket keeps uploads in memory so the evidence flow can run without any
// object store.
type memBucket struct {
	files map[string][]byte
}

func newMemBucket() *memBucket {
	return &memBucket{files: map[string][]byte{}}
}

func (b *memBucket) UploadFile(_ context.Context, key string, file io.Reader) error {
	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}
	b.files[key] = data
	return nil
}

func (b *memBucket) DeleteFile(_ context.Context, key string) error {
	delete(b.files, key)
	return nil
}

func (b *memBucket) GetPublicURL(key string) string {
	return "https://cdn.test/" + key
}

func newEvidenceService(f *fixture, bucket services.BucketService) services.EvidenceService {
	return services.NewEvidenceService(f.db, f.log, bucket, f.assignmentRepo, f.statusRepo, f.evidenceRepo)
}

func TestEvidence_CreateUploadsAndLinks(t *testing.T) {
	f := newFixture(t)
	bucket := newMemBucket()
	svc := newEvidenceService(f, bucket)
	ctx := context.Background()

	template, items := f.createCatalog(t, 1)
	inst := f.createInstitution(t, "Khyber Medical College")
	program := f.createProgram(t, inst.ID)
	assignment := f.createAssignment(t, template.ID, program.ID)
	statuses, err := f.statusRepo.Create(ctx, nil, []*types.ItemStatus{{
		AssignmentID: assignment.ID,
		ItemID:       items[0].ID,
		Status:       types.ItemStatusCompliant,
	}})
	if err != nil {
		t.Fatalf("create status: %v", err)
	}

	evidence, err := svc.Create(ctx, services.CreateEvidenceInput{
		AssignmentID: assignment.ID,
		ItemStatusID: &statuses[0].ID,
		Description:  "faculty roster",
		FileName:     "roster.pdf",
		File:         bytes.NewReader([]byte("pdf bytes")),
	})
	if err != nil {
		t.Fatalf("create evidence: %v", err)
	}

	if !strings.HasPrefix(evidence.FileKey, "evidence/"+assignment.ID.String()+"/") {
		t.Fatalf("file key not namespaced to assignment: %q", evidence.FileKey)
	}
	if !strings.HasSuffix(evidence.FileKey, ".pdf") {
		t.Fatalf("file key lost its extension: %q", evidence.FileKey)
	}
	if evidence.FileURL != bucket.GetPublicURL(evidence.FileKey) {
		t.Fatalf("file url mismatch: %q", evidence.FileURL)
	}
	if _, ok := bucket.files[evidence.FileKey]; !ok {
		t.Fatalf("blob was never uploaded")
	}
}

func TestEvidence_RejectsForeignItemStatus(t *testing.T) {
	f := newFixture(t)
	svc := newEvidenceService(f, newMemBucket())
	ctx := context.Background()

	template, items := f.createCatalog(t, 1)
	inst := f.createInstitution(t, "Khyber Medical College")
	program := f.createProgram(t, inst.ID)
	assignmentA := f.createAssignment(t, template.ID, program.ID)
	assignmentB := f.createAssignment(t, template.ID, program.ID)

	statuses, err := f.statusRepo.Create(ctx, nil, []*types.ItemStatus{{
		AssignmentID: assignmentB.ID,
		ItemID:       items[0].ID,
		Status:       types.ItemStatusCompliant,
	}})
	if err != nil {
		t.Fatalf("create status: %v", err)
	}

	_, err = svc.Create(ctx, services.CreateEvidenceInput{
		AssignmentID: assignmentA.ID,
		ItemStatusID: &statuses[0].ID,
		FileName:     "roster.pdf",
		File:         bytes.NewReader([]byte("pdf bytes")),
	})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error for cross-assignment link, got %v", err)
	}
}

func TestEvidence_DeleteRemovesBlob(t *testing.T) {
	f := newFixture(t)
	bucket := newMemBucket()
	svc := newEvidenceService(f, bucket)
	ctx := context.Background()

	template, _ := f.createCatalog(t, 1)
	inst := f.createInstitution(t, "Khyber Medical College")
	program := f.createProgram(t, inst.ID)
	assignment := f.createAssignment(t, template.ID, program.ID)

	evidence, err := svc.Create(ctx, services.CreateEvidenceInput{
		AssignmentID: assignment.ID,
		FileName:     "photo.jpg",
		File:         bytes.NewReader([]byte("jpg bytes")),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(ctx, evidence.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := bucket.files[evidence.FileKey]; ok {
		t.Fatalf("blob should be removed with the row")
	}
	if _, err := svc.Get(ctx, evidence.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestEvidence_UpdateRelinks(t *testing.T) {
	f := newFixture(t)
	svc := newEvidenceService(f, newMemBucket())
	ctx := context.Background()

	template, items := f.createCatalog(t, 1)
	inst := f.createInstitution(t, "Khyber Medical College")
	program := f.createProgram(t, inst.ID)
	assignment := f.createAssignment(t, template.ID, program.ID)
	statuses, err := f.statusRepo.Create(ctx, nil, []*types.ItemStatus{{
		AssignmentID: assignment.ID,
		ItemID:       items[0].ID,
		Status:       types.ItemStatusCompliant,
	}})
	if err != nil {
		t.Fatalf("create status: %v", err)
	}

	evidence, err := svc.Create(ctx, services.CreateEvidenceInput{
		AssignmentID: assignment.ID,
		FileName:     "roster.pdf",
		File:         bytes.NewReader([]byte("pdf bytes")),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(ctx, evidence.ID, services.UpdateEvidenceInput{
		ItemStatusID: &statuses[0].ID,
		Description:  strPtr("linked after review"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ItemStatusID == nil || *updated.ItemStatusID != statuses[0].ID {
		t.Fatalf("item status link not applied: %v", updated.ItemStatusID)
	}
	if updated.Description != "linked after review" {
		t.Fatalf("description not applied: %q", updated.Description)
	}
}
