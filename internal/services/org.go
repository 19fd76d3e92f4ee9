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

type CreateInstitutionInput struct {
	Name string
	City string
	Type string
}

type CreateProgramInput struct {
	InstitutionID uuid.UUID
	Name          string
	Level         string
	Discipline    string
}

// OrgService covers the entities being evaluated. The public API exposes them
// read-only; the create/delete paths exist for administrative tooling.
type OrgService interface {
	ListInstitutions(ctx context.Context) ([]*types.Institution, error)
	GetInstitution(ctx context.Context, id uuid.UUID) (*types.Institution, error)
	CreateInstitution(ctx context.Context, in CreateInstitutionInput) (*types.Institution, error)
	// DeleteInstitution cascades to programs and institution-scoped
	// compliance records, but not to any assignment's item statuses.
	DeleteInstitution(ctx context.Context, id uuid.UUID) error

	ListPrograms(ctx context.Context) ([]*types.Program, error)
	GetProgram(ctx context.Context, id uuid.UUID) (*types.Program, error)
	CreateProgram(ctx context.Context, in CreateProgramInput) (*types.Program, error)
	DeleteProgram(ctx context.Context, id uuid.UUID) error
}

type orgService struct {
	db              *gorm.DB
	log             *logger.Logger
	institutionRepo repos.InstitutionRepo
	programRepo     repos.ProgramRepo
}

func NewOrgService(db *gorm.DB, log *logger.Logger, institutionRepo repos.InstitutionRepo, programRepo repos.ProgramRepo) OrgService {
	serviceLog := log.With("service", "OrgService")
	return &orgService{
		db:              db,
		log:             serviceLog,
		institutionRepo: institutionRepo,
		programRepo:     programRepo,
	}
}

func (s *orgService) ListInstitutions(ctx context.Context) ([]*types.Institution, error) {
	return s.institutionRepo.List(ctx, nil)
}

func (s *orgService) GetInstitution(ctx context.Context, id uuid.UUID) (*types.Institution, error) {
	rows, err := s.institutionRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: institution %s", apperr.ErrNotFound, id)
	}
	return rows[0], nil
}

func (s *orgService) CreateInstitution(ctx context.Context, in CreateInstitutionInput) (*types.Institution, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: institution name is required", apperr.ErrValidation)
	}
	rows, err := s.institutionRepo.Create(ctx, nil, []*types.Institution{{
		Name: in.Name,
		City: in.City,
		Type: in.Type,
	}})
	if err != nil {
		return nil, err
	}
	return rows[0], nil
}

func (s *orgService) DeleteInstitution(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetInstitution(ctx, id); err != nil {
		return err
	}
	return s.institutionRepo.DeleteByIDs(ctx, nil, []uuid.UUID{id})
}

func (s *orgService) ListPrograms(ctx context.Context) ([]*types.Program, error) {
	return s.programRepo.List(ctx, nil)
}

func (s *orgService) GetProgram(ctx context.Context, id uuid.UUID) (*types.Program, error) {
	rows, err := s.programRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: program %s", apperr.ErrNotFound, id)
	}
	return rows[0], nil
}

func (s *orgService) CreateProgram(ctx context.Context, in CreateProgramInput) (*types.Program, error) {
	if in.Name == "" || in.Level == "" || in.Discipline == "" {
		return nil, fmt.Errorf("%w: program name, level and discipline are required", apperr.ErrValidation)
	}
	if _, err := s.GetInstitution(ctx, in.InstitutionID); err != nil {
		return nil, err
	}
	rows, err := s.programRepo.Create(ctx, nil, []*types.Program{{
		InstitutionID: in.InstitutionID,
		Name:          in.Name,
		Level:         in.Level,
		Discipline:    in.Discipline,
	}})
	if err != nil {
		return nil, err
	}
	return rows[0], nil
}

func (s *orgService) DeleteProgram(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetProgram(ctx, id); err != nil {
		return err
	}
	return s.programRepo.DeleteByIDs(ctx, nil, []uuid.UUID{id})
}
