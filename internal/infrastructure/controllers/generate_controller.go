package controllers

import (
	"context"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/arcanum-gg/patchforge/internal/domain/commands"
	"github.com/arcanum-gg/patchforge/internal/domain/entities"
)

// GenerateController handles the "generate" subcommand (the per-build step).
type GenerateController struct {
	command commands.Generate
}

// NewGenerateController creates a new GenerateController.
func NewGenerateController(command commands.Generate) *GenerateController {
	return &GenerateController{command: command}
}

// GetBind returns the Cobra command metadata for the generate controller.
func (it *GenerateController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "generate",
		Short: "Compute and merge entity diffs for the current build",
		Long: `Detect which entity data files changed since the last processed
state, compute structured field-level diffs, merge them into the
currently open patch, record timeline snapshots, and republish the
paginated changelogs.

This is the main command intended to run once per merged change.
Per-entity problems are reported as warnings; store-level problems
fail the whole step.`,
	}
}

// Execute runs the build step.
func (it *GenerateController) Execute(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	configPath, _ := cmd.Flags().GetString("config")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	verbose, _ := cmd.Flags().GetBool("verbose")
	before, _ := cmd.Flags().GetString("before")
	after, _ := cmd.Flags().GetString("after")

	// CI pipelines hand the commit range over through the environment.
	if before == "" {
		before = os.Getenv("BEFORE_SHA")
	}
	if after == "" {
		after = os.Getenv("AFTER_SHA")
	}

	settings, err := entities.LoadSettings(configPath)
	if err != nil {
		logger.Errorf("failed to load config: %v", err)
		exitCode(1)
		return
	}

	logger.Info("Generating patches from recent changes...")

	report, err := it.command.Execute(ctx, settings, commands.GenerateOptions{
		Before:  before,
		After:   after,
		DryRun:  dryRun,
		Verbose: verbose,
	})
	if err != nil {
		logger.Errorf("Build failed: %v", err)
		exitCode(1)
		return
	}

	logger.Infof(
		"Build complete for %s: %d changes merged, %d unchanged, %d warning(s)",
		report.Version, report.Merged, report.Skipped, len(report.Warnings),
	)
}

// AddFlags adds the generate-specific flags to the given Cobra command.
func (it *GenerateController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("before", "", "Revision marker of the prior state (default: last processed state)")
	cmd.Flags().String("after", "", "Revision marker of the current state (default: HEAD)")
}
