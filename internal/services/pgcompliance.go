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

type CreatePGComplianceInput struct {
	InstitutionID *uuid.UUID
	ItemID        uuid.UUID
	Status        string
	Comment       string
	EvidenceURL   string
}

type UpdatePGComplianceInput struct {
	Status      *string
	Comment     *string
	EvidenceURL *string
}

// PGComplianceService manages institution-scoped compliance records. Every
// write takes the acting reviewer explicitly; updated_by is stamped from that
// identity and a client can never supply its own value.
type PGComplianceService interface {
	Create(ctx context.Context, actor uuid.UUID, in CreatePGComplianceInput) (*types.PGItemCompliance, error)
	Get(ctx context.Context, id uuid.UUID) (*types.PGItemCompliance, error)
	List(ctx context.Context, filter repos.PGComplianceFilter) ([]*types.PGItemCompliance, error)
	Update(ctx context.Context, actor uuid.UUID, id uuid.UUID, in UpdatePGComplianceInput) (*types.PGItemCompliance, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgComplianceService struct {
	core            complianceCore
	log             *logger.Logger
	institutionRepo repos.InstitutionRepo
	complianceRepo  repos.PGComplianceRepo
}

func NewPGComplianceService(db *gorm.DB, log *logger.Logger, itemRepo repos.ItemRepo, institutionRepo repos.InstitutionRepo, complianceRepo repos.PGComplianceRepo) PGComplianceService {
	serviceLog := log.With("service", "PGComplianceService")
	return &pgComplianceService{
		core:            complianceCore{db: db, log: serviceLog, itemRepo: itemRepo},
		log:             serviceLog,
		institutionRepo: institutionRepo,
		complianceRepo:  complianceRepo,
	}
}

func (s *pgComplianceService) Create(ctx context.Context, actor uuid.UUID, in CreatePGComplianceInput) (*types.PGItemCompliance, error) {
	if actor == uuid.Nil {
		return nil, fmt.Errorf("%w: acting user required", apperr.ErrUnauthorized)
	}
	status, err := s.core.resolveStatus(institutionScope, in.Status)
	if err != nil {
		return nil, err
	}

	var created *types.PGItemCompliance
	txErr := s.core.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.core.ensureItemExists(ctx, tx, in.ItemID); err != nil {
			return err
		}
		if in.InstitutionID != nil {
			insts, err := s.institutionRepo.GetByIDs(ctx, tx, []uuid.UUID{*in.InstitutionID})
			if err != nil {
				return fmt.Errorf("looking up institution: %w", err)
			}
			if len(insts) == 0 {
				return fmt.Errorf("%w: institution %s", apperr.ErrNotFound, *in.InstitutionID)
			}
		}

		actorID := actor
		row, err := s.complianceRepo.Create(ctx, tx, &types.PGItemCompliance{
			InstitutionID: in.InstitutionID,
			ItemID:        in.ItemID,
			Status:        status,
			Comment:       in.Comment,
			EvidenceURL:   in.EvidenceURL,
			UpdatedByID:   &actorID,
		})
		if err != nil {
			return err
		}
		created = row
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return created, nil
}

func (s *pgComplianceService) Get(ctx context.Context, id uuid.UUID) (*types.PGItemCompliance, error) {
	rows, err := s.complianceRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: compliance record %s", apperr.ErrNotFound, id)
	}
	return rows[0], nil
}

func (s *pgComplianceService) List(ctx context.Context, filter repos.PGComplianceFilter) ([]*types.PGItemCompliance, error) {
	return s.complianceRepo.List(ctx, nil, filter)
}

func (s *pgComplianceService) Update(ctx context.Context, actor uuid.UUID, id uuid.UUID, in UpdatePGComplianceInput) (*types.PGItemCompliance, error) {
	if actor == uuid.Nil {
		return nil, fmt.Errorf("%w: acting user required", apperr.ErrUnauthorized)
	}
	row, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Status != nil {
		status, err := s.core.checkStatus(institutionScope, *in.Status)
		if err != nil {
			return nil, err
		}
		row.Status = status
	}
	if in.Comment != nil {
		row.Comment = *in.Comment
	}
	if in.EvidenceURL != nil {
		row.EvidenceURL = *in.EvidenceURL
	}
	actorID := actor
	row.UpdatedByID = &actorID

	if err := s.complianceRepo.Update(ctx, nil, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *pgComplianceService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.complianceRepo.DeleteByIDs(ctx, nil, []uuid.UUID{id})
}
