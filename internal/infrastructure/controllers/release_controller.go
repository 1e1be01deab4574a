package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/arcanum-gg/patchforge/internal/domain/commands"
	"github.com/arcanum-gg/patchforge/internal/domain/entities"
)

// ReleaseController handles the "release" subcommand.
type ReleaseController struct {
	command commands.Release
}

// NewReleaseController creates a new ReleaseController.
func NewReleaseController(command commands.Release) *ReleaseController {
	return &ReleaseController{command: command}
}

// GetBind returns the Cobra command metadata for the release controller.
func (it *ReleaseController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "release",
		Short: "Bump the data version and close the open patch",
		Long: `Increment the game data version, record the release notes in the
game config and CHANGELOG.md, and thereby close the currently open
patch: subsequent changes open a fresh patch for the new version.

A release is rejected while the open patch has zero changes.`,
	}
}

// Execute performs the release.
func (it *ReleaseController) Execute(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	configPath, _ := cmd.Flags().GetString("config")
	bump, _ := cmd.Flags().GetString("bump")
	notes, _ := cmd.Flags().GetString("notes")

	settings, err := entities.LoadSettings(configPath)
	if err != nil {
		logger.Errorf("failed to load config: %v", err)
		exitCode(1)
		return
	}

	version, err := it.command.Execute(ctx, settings, commands.ReleaseOptions{
		Bump:  entities.BumpType(bump),
		Notes: notes,
	})
	if err != nil {
		logger.Errorf("Release failed: %v", err)
		exitCode(1)
		return
	}

	logger.Infof("Released version %s", version)
}

// AddFlags adds the release-specific flags to the given Cobra command.
func (it *ReleaseController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("bump", "patch", "Version component to bump (major, minor, patch)")
	cmd.Flags().String("notes", "", "Release notes (required)")
}
