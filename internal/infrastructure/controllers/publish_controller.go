package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/arcanum-gg/patchforge/internal/domain/commands"
	"github.com/arcanum-gg/patchforge/internal/domain/entities"
)

// PublishController handles the "publish" subcommand.
type PublishController struct {
	command commands.Publish
}

// NewPublishController creates a new PublishController.
func NewPublishController(command commands.Publish) *PublishController {
	return &PublishController{command: command}
}

// GetBind returns the Cobra command metadata for the publish controller.
func (it *PublishController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "publish",
		Short: "Rebuild the paginated changelog documents",
		Long: `Serialize the patch store into the consumer-facing changelog
documents: the pagination index, one page file per chunk of patches
(newest first), and the latest-patch pointer.

Publishing is deterministic: an unchanged patch store produces
byte-identical output, which keeps static hosting caches valid.`,
	}
}

// Execute republishes the changelogs from the patch store.
func (it *PublishController) Execute(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	configPath, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	settings, err := entities.LoadSettings(configPath)
	if err != nil {
		logger.Errorf("failed to load config: %v", err)
		exitCode(1)
		return
	}

	if publishErr := it.command.Execute(ctx, settings); publishErr != nil {
		logger.Errorf("Publish failed: %v", publishErr)
		exitCode(1)
	}
}
