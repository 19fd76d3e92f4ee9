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

type CreateAssignmentInput struct {
	TemplateID uuid.UUID
	ProgramID  uuid.UUID
	Title      string
	Status     string
}

type UpdateAssignmentInput struct {
	Title  *string
	Status *string
}

// ComplianceRollup is the weighted compliance picture of one assignment:
// sum(item.weight * score/max_score) / sum(item.weight) over the items that
// have at least one recorded status. A row without an explicit score counts
// as zero. Duplicate rows for one item are averaged, never double-weighted.
type ComplianceRollup struct {
	AssignmentID uuid.UUID `json:"assignment_id"`
	ItemCount    int       `json:"item_count"`
	ScoredCount  int       `json:"scored_count"`
	TotalWeight  int       `json:"total_weight"`
	Percent      float64   `json:"percent"`
}

type AssignmentService interface {
	Create(ctx context.Context, in CreateAssignmentInput) (*types.Assignment, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Assignment, error)
	List(ctx context.Context) ([]*types.Assignment, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateAssignmentInput) (*types.Assignment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// EnsureItemStatuses backfills one pending status per template item that
	// has none yet. It is how an assignment reaches full coverage; nothing at
	// the store level forces it.
	EnsureItemStatuses(ctx context.Context, id uuid.UUID) ([]*types.ItemStatus, error)
	Rollup(ctx context.Context, id uuid.UUID) (*ComplianceRollup, error)
}

type assignmentService struct {
	db             *gorm.DB
	log            *logger.Logger
	templateRepo   repos.TemplateRepo
	programRepo    repos.ProgramRepo
	assignmentRepo repos.AssignmentRepo
	itemRepo       repos.ItemRepo
	statusRepo     repos.ItemStatusRepo
}

func NewAssignmentService(db *gorm.DB, log *logger.Logger, templateRepo repos.TemplateRepo, programRepo repos.ProgramRepo, assignmentRepo repos.AssignmentRepo, itemRepo repos.ItemRepo, statusRepo repos.ItemStatusRepo) AssignmentService {
	serviceLog := log.With("service", "AssignmentService")
	return &assignmentService{
		db:             db,
		log:            serviceLog,
		templateRepo:   templateRepo,
		programRepo:    programRepo,
		assignmentRepo: assignmentRepo,
		itemRepo:       itemRepo,
		statusRepo:     statusRepo,
	}
}

func (s *assignmentService) Create(ctx context.Context, in CreateAssignmentInput) (*types.Assignment, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("%w: assignment title is required", apperr.ErrValidation)
	}
	status := in.Status
	if status == "" {
		status = types.AssignmentStatusDraft
	}
	if !types.ValidAssignmentStatus(status) {
		return nil, fmt.Errorf("%w: invalid assignment status %q", apperr.ErrValidation, status)
	}

	var created *types.Assignment
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		templates, err := s.templateRepo.GetByIDs(ctx, tx, []uuid.UUID{in.TemplateID})
		if err != nil {
			return err
		}
		if len(templates) == 0 {
			return fmt.Errorf("%w: template %s", apperr.ErrNotFound, in.TemplateID)
		}
		programs, err := s.programRepo.GetByIDs(ctx, tx, []uuid.UUID{in.ProgramID})
		if err != nil {
			return err
		}
		if len(programs) == 0 {
			return fmt.Errorf("%w: program %s", apperr.ErrNotFound, in.ProgramID)
		}

		rows, err := s.assignmentRepo.Create(ctx, tx, []*types.Assignment{{
			TemplateID: in.TemplateID,
			ProgramID:  in.ProgramID,
			Title:      in.Title,
			Status:     status,
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

func (s *assignmentService) Get(ctx context.Context, id uuid.UUID) (*types.Assignment, error) {
	return s.assignmentRepo.GetWithItemStatuses(ctx, nil, id)
}

func (s *assignmentService) List(ctx context.Context) ([]*types.Assignment, error) {
	return s.assignmentRepo.List(ctx, nil)
}

// Update is a plain field update. Any status in the vocabulary can follow any
// other; the review workflow has never had transition guards.
func (s *assignmentService) Update(ctx context.Context, id uuid.UUID, in UpdateAssignmentInput) (*types.Assignment, error) {
	rows, err := s.assignmentRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: assignment %s", apperr.ErrNotFound, id)
	}
	row := rows[0]

	if in.Title != nil {
		if *in.Title == "" {
			return nil, fmt.Errorf("%w: assignment title is required", apperr.ErrValidation)
		}
		row.Title = *in.Title
	}
	if in.Status != nil {
		if !types.ValidAssignmentStatus(*in.Status) {
			return nil, fmt.Errorf("%w: invalid assignment status %q", apperr.ErrValidation, *in.Status)
		}
		row.Status = *in.Status
	}

	if err := s.assignmentRepo.Update(ctx, nil, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *assignmentService) Delete(ctx context.Context, id uuid.UUID) error {
	rows, err := s.assignmentRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("%w: assignment %s", apperr.ErrNotFound, id)
	}
	return s.assignmentRepo.DeleteByIDs(ctx, nil, []uuid.UUID{id})
}

func (s *assignmentService) EnsureItemStatuses(ctx context.Context, id uuid.UUID) ([]*types.ItemStatus, error) {
	var all []*types.ItemStatus
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assignments, err := s.assignmentRepo.GetByIDs(ctx, tx, []uuid.UUID{id})
		if err != nil {
			return err
		}
		if len(assignments) == 0 {
			return fmt.Errorf("%w: assignment %s", apperr.ErrNotFound, id)
		}
		assignment := assignments[0]

		items, err := s.itemRepo.ListByTemplateID(ctx, tx, assignment.TemplateID)
		if err != nil {
			return err
		}
		existing, err := s.statusRepo.ListByAssignmentID(ctx, tx, id)
		if err != nil {
			return err
		}

		covered := make(map[uuid.UUID]struct{}, len(existing))
		for _, st := range existing {
			covered[st.ItemID] = struct{}{}
		}

		var missing []*types.ItemStatus
		for _, item := range items {
			if _, ok := covered[item.ID]; ok {
				continue
			}
			missing = append(missing, &types.ItemStatus{
				AssignmentID: id,
				ItemID:       item.ID,
				Status:       types.ItemStatusPending,
			})
		}
		if _, err := s.statusRepo.Create(ctx, tx, missing); err != nil {
			return err
		}

		all = append(existing, missing...)
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return all, nil
}

func (s *assignmentService) Rollup(ctx context.Context, id uuid.UUID) (*ComplianceRollup, error) {
	assignments, err := s.assignmentRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(assignments) == 0 {
		return nil, fmt.Errorf("%w: assignment %s", apperr.ErrNotFound, id)
	}
	assignment := assignments[0]

	items, err := s.itemRepo.ListByTemplateID(ctx, nil, assignment.TemplateID)
	if err != nil {
		return nil, err
	}
	statuses, err := s.statusRepo.ListByAssignmentID(ctx, nil, id)
	if err != nil {
		return nil, err
	}

	byItem := make(map[uuid.UUID][]*types.ItemStatus)
	for _, st := range statuses {
		byItem[st.ItemID] = append(byItem[st.ItemID], st)
	}

	rollup := &ComplianceRollup{AssignmentID: id}
	var weightedSum float64
	for _, item := range items {
		rows, ok := byItem[item.ID]
		if !ok {
			continue
		}
		rollup.ItemCount++

		var ratioSum float64
		scored := false
		for _, st := range rows {
			score := 0
			if st.Score != nil {
				score = *st.Score
				scored = true
			}
			if item.MaxScore > 0 {
				ratioSum += float64(score) / float64(item.MaxScore)
			}
		}
		if scored {
			rollup.ScoredCount++
		}

		rollup.TotalWeight += item.Weight
		weightedSum += float64(item.Weight) * (ratioSum / float64(len(rows)))
	}

	if rollup.TotalWeight > 0 {
		rollup.Percent = 100 * weightedSum / float64(rollup.TotalWeight)
	}
	return rollup, nil
}
