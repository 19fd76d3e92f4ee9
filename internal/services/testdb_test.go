package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/medaccred/accreditation-backend/internal/logger"
	"github.com/medaccred/accreditation-backend/internal/repos"
	"github.com/medaccred/accreditation-backend/internal/types"
)

// openTestDB builds an in-memory store with the real constraint graph, so
// cascade and unique-index behavior in these tests is the database's own,
// not something simulated in Go.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	// A second connection would get its own empty :memory: database.
	sqlDB.SetMaxOpenConns(1)
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}

	err = db.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.Module{},
		&types.ProformaTemplate{},
		&types.ProformaSection{},
		&types.ProformaItem{},
		&types.Institution{},
		&types.Program{},
		&types.Assignment{},
		&types.ItemStatus{},
		&types.PGItemCompliance{},
		&types.Evidence{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type fixture struct {
	db  *gorm.DB
	log *logger.Logger

	userRepo        repos.UserRepo
	userTokenRepo   repos.UserTokenRepo
	moduleRepo      repos.ModuleRepo
	templateRepo    repos.TemplateRepo
	sectionRepo     repos.SectionRepo
	itemRepo        repos.ItemRepo
	institutionRepo repos.InstitutionRepo
	programRepo     repos.ProgramRepo
	assignmentRepo  repos.AssignmentRepo
	statusRepo      repos.ItemStatusRepo
	complianceRepo  repos.PGComplianceRepo
	evidenceRepo    repos.EvidenceRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := openTestDB(t)
	log := logger.NewNop()
	return &fixture{
		db:              db,
		log:             log,
		userRepo:        repos.NewUserRepo(db, log),
		userTokenRepo:   repos.NewUserTokenRepo(db, log),
		moduleRepo:      repos.NewModuleRepo(db, log),
		templateRepo:    repos.NewTemplateRepo(db, log),
		sectionRepo:     repos.NewSectionRepo(db, log),
		itemRepo:        repos.NewItemRepo(db, log),
		institutionRepo: repos.NewInstitutionRepo(db, log),
		programRepo:     repos.NewProgramRepo(db, log),
		assignmentRepo:  repos.NewAssignmentRepo(db, log),
		statusRepo:      repos.NewItemStatusRepo(db, log),
		complianceRepo:  repos.NewPGComplianceRepo(db, log),
		evidenceRepo:    repos.NewEvidenceRepo(db, log),
	}
}

// createCatalog seeds one module/template/section with items of the given
// weights and returns the template plus the items in creation order.
func (f *fixture) createCatalog(t *testing.T, itemWeights ...int) (*types.ProformaTemplate, []*types.ProformaItem) {
	t.Helper()
	ctx := context.Background()

	modules, err := f.moduleRepo.Create(ctx, nil, []*types.Module{{
		Code:        "MBBS-" + uuid.NewString()[:8],
		DisplayName: "Undergraduate Medical Education",
	}})
	if err != nil {
		t.Fatalf("create module: %v", err)
	}
	templates, err := f.templateRepo.Create(ctx, nil, []*types.ProformaTemplate{{
		ModuleID:      modules[0].ID,
		Code:          modules[0].Code,
		Title:         "MBBS Proforma",
		AuthorityName: "PMDC",
		Version:       "1.0",
		IsActive:      true,
	}})
	if err != nil {
		t.Fatalf("create template: %v", err)
	}
	sections, err := f.sectionRepo.Create(ctx, nil, []*types.ProformaSection{{
		TemplateID: templates[0].ID,
		Code:       "S1",
		Title:      "Faculty",
		Order:      1,
		Weight:     1,
	}})
	if err != nil {
		t.Fatalf("create section: %v", err)
	}

	var items []*types.ProformaItem
	for i, w := range itemWeights {
		items = append(items, &types.ProformaItem{
			SectionID:        sections[0].ID,
			Code:             "S1." + uuid.NewString()[:4],
			RequirementText:  "requirement",
			Order:            i + 1,
			Weight:           w,
			MaxScore:         10,
			WeightagePercent: 100,
		})
	}
	items, err = f.itemRepo.Create(ctx, nil, items)
	if err != nil {
		t.Fatalf("create items: %v", err)
	}
	return templates[0], items
}

func (f *fixture) createInstitution(t *testing.T, name string) *types.Institution {
	t.Helper()
	rows, err := f.institutionRepo.Create(context.Background(), nil, []*types.Institution{{
		Name: name,
		City: "Lahore",
		Type: "public",
	}})
	if err != nil {
		t.Fatalf("create institution: %v", err)
	}
	return rows[0]
}

func (f *fixture) createProgram(t *testing.T, institutionID uuid.UUID) *types.Program {
	t.Helper()
	rows, err := f.programRepo.Create(context.Background(), nil, []*types.Program{{
		InstitutionID: institutionID,
		Name:          "MBBS",
		Level:         "UG",
		Discipline:    "Medicine",
	}})
	if err != nil {
		t.Fatalf("create program: %v", err)
	}
	return rows[0]
}

func (f *fixture) createAssignment(t *testing.T, templateID, programID uuid.UUID) *types.Assignment {
	t.Helper()
	rows, err := f.assignmentRepo.Create(context.Background(), nil, []*types.Assignment{{
		TemplateID: templateID,
		ProgramID:  programID,
		Title:      "2026 inspection",
		Status:     types.AssignmentStatusDraft,
	}})
	if err != nil {
		t.Fatalf("create assignment: %v", err)
	}
	return rows[0]
}

func (f *fixture) createUser(t *testing.T) *types.User {
	t.Helper()
	rows, err := f.userRepo.Create(context.Background(), nil, []*types.User{{
		Email:     uuid.NewString()[:8] + "@pmdc.org",
		Password:  "hashed",
		FirstName: "Test",
		LastName:  "Reviewer",
	}})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return rows[0]
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }
