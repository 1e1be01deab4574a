package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/arcanum-gg/patchforge/internal/domain/entities"
	"github.com/arcanum-gg/patchforge/internal/domain/repositories"
)

// Publish is the interface for the publish command: rebuild the paginated
// changelog documents from the patch store.
type Publish interface {
	Execute(ctx context.Context, settings *entities.Settings) error
}

// PublishCommand serializes the patch store into the consumer-facing
// changelog documents. It can be run on its own whenever the changelogs
// must be republished; the output depends only on the store contents.
type PublishCommand struct {
	patches    repositories.PatchRepository
	changelogs repositories.ChangelogRepository
}

// NewPublishCommand creates a new PublishCommand with the given repositories.
func NewPublishCommand(
	patches repositories.PatchRepository,
	changelogs repositories.ChangelogRepository,
) *PublishCommand {
	return &PublishCommand{
		patches:    patches,
		changelogs: changelogs,
	}
}

// Execute rebuilds every changelog document from the patch store.
func (it *PublishCommand) Execute(ctx context.Context, settings *entities.Settings) error {
	logger.Infof("Building changelogs from %s...", settings.PatchesFile)

	allPatches, err := it.patches.Load(ctx, settings.PatchesPath())
	if err != nil {
		return fmt.Errorf("failed to load patch store: %w", err)
	}

	changelog, err := entities.BuildChangelog(allPatches, settings.PageSize)
	if err != nil {
		return fmt.Errorf("failed to build changelog: %w", err)
	}

	if writeErr := it.changelogs.Write(ctx, settings.OutputPath(), changelog); writeErr != nil {
		return fmt.Errorf("failed to write changelog documents: %w", writeErr)
	}

	logger.Infof(
		"Changelog build complete: %d patches across %d page(s).",
		changelog.Index.TotalPatches, changelog.Index.TotalPages,
	)
	return nil
}
