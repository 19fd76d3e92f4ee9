package services

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medaccred/accreditation-backend/internal/apperr"
	"github.com/medaccred/accreditation-backend/internal/logger"
	"github.com/medaccred/accreditation-backend/internal/repos"
	"github.com/medaccred/accreditation-backend/internal/types"
)

type CreateEvidenceInput struct {
	AssignmentID uuid.UUID
	ItemStatusID *uuid.UUID
	Description  string
	FileName     string
	File         io.Reader
}

type UpdateEvidenceInput struct {
	ItemStatusID *uuid.UUID
	Description  *string
}

type EvidenceService interface {
	Create(ctx context.Context, in CreateEvidenceInput) (*types.Evidence, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Evidence, error)
	List(ctx context.Context) ([]*types.Evidence, error)
	ListByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]*types.Evidence, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateEvidenceInput) (*types.Evidence, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type evidenceService struct {
	db             *gorm.DB
	log            *logger.Logger
	bucket         BucketService
	assignmentRepo repos.AssignmentRepo
	statusRepo     repos.ItemStatusRepo
	evidenceRepo   repos.EvidenceRepo
}

func NewEvidenceService(db *gorm.DB, log *logger.Logger, bucket BucketService, assignmentRepo repos.AssignmentRepo, statusRepo repos.ItemStatusRepo, evidenceRepo repos.EvidenceRepo) EvidenceService {
	serviceLog := log.With("service", "EvidenceService")
	return &evidenceService{
		db:             db,
		log:            serviceLog,
		bucket:         bucket,
		assignmentRepo: assignmentRepo,
		statusRepo:     statusRepo,
		evidenceRepo:   evidenceRepo,
	}
}

func (s *evidenceService) Create(ctx context.Context, in CreateEvidenceInput) (*types.Evidence, error) {
	if in.File == nil || in.FileName == "" {
		return nil, fmt.Errorf("%w: evidence file is required", apperr.ErrValidation)
	}

	assignments, err := s.assignmentRepo.GetByIDs(ctx, nil, []uuid.UUID{in.AssignmentID})
	if err != nil {
		return nil, err
	}
	if len(assignments) == 0 {
		return nil, fmt.Errorf("%w: assignment %s", apperr.ErrNotFound, in.AssignmentID)
	}
	if in.ItemStatusID != nil {
		statuses, err := s.statusRepo.GetByIDs(ctx, nil, []uuid.UUID{*in.ItemStatusID})
		if err != nil {
			return nil, err
		}
		if len(statuses) == 0 {
			return nil, fmt.Errorf("%w: item status %s", apperr.ErrNotFound, *in.ItemStatusID)
		}
		if statuses[0].AssignmentID != in.AssignmentID {
			return nil, fmt.Errorf("%w: item status belongs to a different assignment", apperr.ErrValidation)
		}
	}

	key := fmt.Sprintf("evidence/%s/%s%s", in.AssignmentID, uuid.New(), path.Ext(in.FileName))
	if err := s.bucket.UploadFile(ctx, key, in.File); err != nil {
		return nil, fmt.Errorf("uploading evidence file: %w", err)
	}

	rows, err := s.evidenceRepo.Create(ctx, nil, []*types.Evidence{{
		AssignmentID: in.AssignmentID,
		ItemStatusID: in.ItemStatusID,
		FileKey:      key,
		FileURL:      s.bucket.GetPublicURL(key),
		Description:  in.Description,
	}})
	if err != nil {
		// The row never landed; drop the uploaded blob rather than leak it.
		if delErr := s.bucket.DeleteFile(ctx, key); delErr != nil {
			s.log.Warn("Failed to remove orphaned evidence blob", "key", key, "error", delErr)
		}
		return nil, err
	}
	return rows[0], nil
}

func (s *evidenceService) Get(ctx context.Context, id uuid.UUID) (*types.Evidence, error) {
	rows, err := s.evidenceRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: evidence %s", apperr.ErrNotFound, id)
	}
	return rows[0], nil
}

func (s *evidenceService) List(ctx context.Context) ([]*types.Evidence, error) {
	return s.evidenceRepo.List(ctx, nil)
}

func (s *evidenceService) ListByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]*types.Evidence, error) {
	return s.evidenceRepo.ListByAssignmentID(ctx, nil, assignmentID)
}

func (s *evidenceService) Update(ctx context.Context, id uuid.UUID, in UpdateEvidenceInput) (*types.Evidence, error) {
	row, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.ItemStatusID != nil {
		statuses, err := s.statusRepo.GetByIDs(ctx, nil, []uuid.UUID{*in.ItemStatusID})
		if err != nil {
			return nil, err
		}
		if len(statuses) == 0 {
			return nil, fmt.Errorf("%w: item status %s", apperr.ErrNotFound, *in.ItemStatusID)
		}
		if statuses[0].AssignmentID != row.AssignmentID {
			return nil, fmt.Errorf("%w: item status belongs to a different assignment", apperr.ErrValidation)
		}
		row.ItemStatusID = in.ItemStatusID
	}
	if in.Description != nil {
		row.Description = *in.Description
	}

	if err := s.evidenceRepo.Update(ctx, nil, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *evidenceService) Delete(ctx context.Context, id uuid.UUID) error {
	row, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.evidenceRepo.DeleteByIDs(ctx, nil, []uuid.UUID{id}); err != nil {
		return err
	}
	// Blob removal is best effort; the row is already gone.
	if err := s.bucket.DeleteFile(ctx, row.FileKey); err != nil {
		s.log.Warn("Failed to delete evidence blob", "key", row.FileKey, "error", err)
	}
	return nil
}
