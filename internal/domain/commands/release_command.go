package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/arcanum-gg/patchforge/internal/domain/entities"
	"github.com/arcanum-gg/patchforge/internal/domain/repositories"
)

var errEmptyReleaseNotes = errors.New("release notes cannot be empty")

// Release is the interface for the release command.
type Release interface {
	Execute(ctx context.Context, settings *entities.Settings, opts ReleaseOptions) (string, error)
}

// ReleaseOptions holds the inputs of one release.
type ReleaseOptions struct {
	Bump  entities.BumpType
	Notes string
}

// ReleaseCommand closes the current build cycle: it verifies the open patch
// is publishable, bumps the data version, records the release note in the
// game config and inserts a section into CHANGELOG.md. After the bump the
// open patch is permanently closed because new changes open a patch for the
// new version.
type ReleaseCommand struct {
	patches     repositories.PatchRepository
	gameConfigs repositories.GameConfigRepository
	changelogs  repositories.ChangelogFileRepository
	now         func() time.Time
}

// NewReleaseCommand creates a new ReleaseCommand with the given repositories.
func NewReleaseCommand(
	patches repositories.PatchRepository,
	gameConfigs repositories.GameConfigRepository,
	changelogs repositories.ChangelogFileRepository,
) *ReleaseCommand {
	return &ReleaseCommand{
		patches:     patches,
		gameConfigs: gameConfigs,
		changelogs:  changelogs,
		now:         time.Now,
	}
}

// Execute performs the release and returns the new version.
func (it *ReleaseCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts ReleaseOptions,
) (string, error) {
	if opts.Notes == "" {
		return "", errEmptyReleaseNotes
	}

	gameConfig, err := it.gameConfigs.Load(ctx, settings.GameConfigPath())
	if err != nil {
		return "", fmt.Errorf("failed to read game config: %w", err)
	}
	current := gameConfig.CurrentVersion()

	if closeErr := it.checkOpenPatch(ctx, settings, current); closeErr != nil {
		return "", closeErr
	}

	next, err := entities.BumpVersion(current, opts.Bump)
	if err != nil {
		return "", err
	}
	logger.Infof("Releasing %s -> %s", current, next)

	moment := it.now().UTC()
	gameConfig.PrependRelease(entities.ReleaseNote{
		Version:     next,
		Date:        moment.Format(time.RFC3339),
		Description: opts.Notes,
	})
	if saveErr := it.gameConfigs.Save(ctx, settings.GameConfigPath(), gameConfig); saveErr != nil {
		return "", fmt.Errorf("failed to save game config: %w", saveErr)
	}

	content, err := it.changelogs.Read(ctx, settings.ChangelogPath())
	if err != nil {
		return "", fmt.Errorf("failed to read changelog: %w", err)
	}
	updated := entities.InsertReleaseSection(content, next, moment.Format(time.DateOnly), opts.Notes)
	if writeErr := it.changelogs.Write(ctx, settings.ChangelogPath(), updated); writeErr != nil {
		return "", fmt.Errorf("failed to write changelog: %w", writeErr)
	}

	logger.Infof("Release %s completed successfully.", next)
	return next, nil
}

// checkOpenPatch rejects the release when the patch being closed has zero
// changes: it must stay open instead of entering the permanent changelog.
func (it *ReleaseCommand) checkOpenPatch(
	ctx context.Context,
	settings *entities.Settings,
	version string,
) error {
	allPatches, err := it.patches.Load(ctx, settings.PatchesPath())
	if err != nil {
		return fmt.Errorf("failed to load patch store: %w", err)
	}

	for i := range allPatches {
		if allPatches[i].Version != version {
			continue
		}
		if finalizeErr := allPatches[i].Finalize(); finalizeErr != nil {
			return finalizeErr
		}
		return nil
	}

	// No patch was opened this cycle; the release carries notes only.
	logger.Debugf("No open patch for version %s", version)
	return nil
}
