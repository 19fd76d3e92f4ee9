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

// A compliance record exists in two scopes: per-assignment (ItemStatus) and
// per-institution (PGItemCompliance). The two tables drifted apart in every
// earlier iteration of this system (different status vocabularies, only one
// stamping updated_by), so the shared rules live in complianceCore and the
// scope differences are declared here, in one place.
type complianceScope struct {
	name          string
	defaultStatus string
	validStatus   func(string) bool
	// stampActor: institution-scoped records track who judged them;
	// assignment-scoped records never did, and that asymmetry is preserved.
	stampActor bool
}

var (
	assignmentScope = complianceScope{
		name:          "assignment",
		defaultStatus: types.ItemStatusPending,
		validStatus:   types.ValidItemStatus,
		stampActor:    false,
	}
	institutionScope = complianceScope{
		name:          "institution",
		defaultStatus: types.PGComplianceNo,
		validStatus:   types.ValidPGComplianceStatus,
		stampActor:    true,
	}
)

// complianceCore holds the validation shared by both record kinds.
type complianceCore struct {
	db       *gorm.DB
	log      *logger.Logger
	itemRepo repos.ItemRepo
}

// resolveStatus is the create-time rule: an omitted status falls back to the
// scope default.
func (c *complianceCore) resolveStatus(scope complianceScope, status string) (string, error) {
	if status == "" {
		return scope.defaultStatus, nil
	}
	return c.checkStatus(scope, status)
}

// checkStatus is the update-time rule: an explicitly supplied status must be
// a real vocabulary member, empty included.
func (c *complianceCore) checkStatus(scope complianceScope, status string) (string, error) {
	if !scope.validStatus(status) {
		return "", fmt.Errorf("%w: invalid %s-scoped status %q", apperr.ErrValidation, scope.name, status)
	}
	return status, nil
}

func (c *complianceCore) ensureItemExists(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) error {
	if itemID == uuid.Nil {
		return fmt.Errorf("%w: item id is required", apperr.ErrValidation)
	}
	items, err := c.itemRepo.GetByIDs(ctx, tx, []uuid.UUID{itemID})
	if err != nil {
		return fmt.Errorf("looking up item: %w", err)
	}
	if len(items) == 0 {
		return fmt.Errorf("%w: item %s", apperr.ErrNotFound, itemID)
	}
	return nil
}
