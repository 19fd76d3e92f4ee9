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

type CreateItemStatusInput struct {
	AssignmentID uuid.UUID
	ItemID       uuid.UUID
	Status       string
	Comment      string
	Score        *int
}

type UpdateItemStatusInput struct {
	Status  *string
	Comment *string
	Score   *int
}

type ItemStatusService interface {
	Create(ctx context.Context, in CreateItemStatusInput) (*types.ItemStatus, error)
	Get(ctx context.Context, id uuid.UUID) (*types.ItemStatus, error)
	List(ctx context.Context) ([]*types.ItemStatus, error)
	ListByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]*types.ItemStatus, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateItemStatusInput) (*types.ItemStatus, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type itemStatusService struct {
	core           complianceCore
	log            *logger.Logger
	assignmentRepo repos.AssignmentRepo
	statusRepo     repos.ItemStatusRepo
}

func NewItemStatusService(db *gorm.DB, log *logger.Logger, itemRepo repos.ItemRepo, assignmentRepo repos.AssignmentRepo, statusRepo repos.ItemStatusRepo) ItemStatusService {
	serviceLog := log.With("service", "ItemStatusService")
	return &itemStatusService{
		core:           complianceCore{db: db, log: serviceLog, itemRepo: itemRepo},
		log:            serviceLog,
		assignmentRepo: assignmentRepo,
		statusRepo:     statusRepo,
	}
}

func (s *itemStatusService) Create(ctx context.Context, in CreateItemStatusInput) (*types.ItemStatus, error) {
	status, err := s.core.resolveStatus(assignmentScope, in.Status)
	if err != nil {
		return nil, err
	}
	if in.AssignmentID == uuid.Nil {
		return nil, fmt.Errorf("%w: assignment id is required", apperr.ErrValidation)
	}

	var created *types.ItemStatus
	txErr := s.core.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assignments, err := s.assignmentRepo.GetByIDs(ctx, tx, []uuid.UUID{in.AssignmentID})
		if err != nil {
			return fmt.Errorf("looking up assignment: %w", err)
		}
		if len(assignments) == 0 {
			return fmt.Errorf("%w: assignment %s", apperr.ErrNotFound, in.AssignmentID)
		}
		if err := s.core.ensureItemExists(ctx, tx, in.ItemID); err != nil {
			return err
		}

		// Nothing prevents a second row for the same (assignment, item); the
		// store has no unique constraint there, unlike pg_item_compliance.
		rows, err := s.statusRepo.Create(ctx, tx, []*types.ItemStatus{{
			AssignmentID: in.AssignmentID,
			ItemID:       in.ItemID,
			Status:       status,
			Comment:      in.Comment,
			Score:        in.Score,
		}})
		if err != nil {
			return err
		}
		created = rows[0]
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return created, nil
}

func (s *itemStatusService) Get(ctx context.Context, id uuid.UUID) (*types.ItemStatus, error) {
	rows, err := s.statusRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: item status %s", apperr.ErrNotFound, id)
	}
	return rows[0], nil
}

func (s *itemStatusService) List(ctx context.Context) ([]*types.ItemStatus, error) {
	return s.statusRepo.List(ctx, nil)
}

func (s *itemStatusService) ListByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]*types.ItemStatus, error) {
	return s.statusRepo.ListByAssignmentID(ctx, nil, assignmentID)
}

func (s *itemStatusService) Update(ctx context.Context, id uuid.UUID, in UpdateItemStatusInput) (*types.ItemStatus, error) {
	row, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Status != nil {
		status, err := s.core.checkStatus(assignmentScope, *in.Status)
		if err != nil {
			return nil, err
		}
		row.Status = status
	}
	if in.Comment != nil {
		row.Comment = *in.Comment
	}
	if in.Score != nil {
		row.Score = in.Score
	}

	if err := s.statusRepo.Update(ctx, nil, row); err != nil {
		return nil, err
	}
	return row, nil
}

// Delete removes the judgment; linked evidence rows survive with their
// item_status reference nulled by the store.
func (s *itemStatusService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.statusRepo.DeleteByIDs(ctx, nil, []uuid.UUID{id})
}
