package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/medaccred/accreditation-backend/internal/db"
	"github.com/medaccred/accreditation-backend/internal/logger"
	"github.com/medaccred/accreditation-backend/internal/repos"
	"github.com/medaccred/accreditation-backend/internal/seed"
	"github.com/medaccred/accreditation-backend/internal/services"
)

var (
	yamlPath string
	replace  bool
)

func getRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Imports a checklist definition into the catalog",
		Long: `Seed reads a YAML checklist definition and loads it into the database.

The module and template are matched by code: existing metadata is refreshed
in place, and the template's sections and items are replaced wholesale with
the document's content. Any compliance records pointing at the old items are
destroyed with them, so reseeding an already-populated template is refused
unless --replace is given.

Examples:
  seed --yaml checklists/mbbs.yaml
  seed --yaml checklists/mbbs.yaml --replace`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logMode := os.Getenv("LOG_MODE")
			if logMode == "" {
				logMode = "development"
			}
			log, err := logger.New(logMode)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer log.Sync()

			doc, err := seed.Load(yamlPath)
			if err != nil {
				return err
			}

			postgresService, err := db.NewPostgresService(log)
			if err != nil {
				return fmt.Errorf("connect to database: %w", err)
			}
			if err = postgresService.AutoMigrateAll(); err != nil {
				return fmt.Errorf("migrate database: %w", err)
			}
			thePG := postgresService.DB()

			moduleRepo := repos.NewModuleRepo(thePG, log)
			templateRepo := repos.NewTemplateRepo(thePG, log)
			sectionRepo := repos.NewSectionRepo(thePG, log)
			itemRepo := repos.NewItemRepo(thePG, log)
			seeder := services.NewSeederService(thePG, log, moduleRepo, templateRepo, sectionRepo, itemRepo)

			result, err := seeder.Import(context.Background(), doc, replace)
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}
			log.Info("Import complete",
				"module_code", doc.Module.Code,
				"sections", result.Sections,
				"items", result.Items,
			)
			return nil
		},
	}
	cmd.Flags().StringVar(&yamlPath, "yaml", "", "path to the checklist YAML document")
	cmd.Flags().BoolVar(&replace, "replace", false, "allow replacing a template that already has sections")
	_ = cmd.MarkFlagRequired("yaml")
	return cmd
}

func main() {
	if err := getRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
