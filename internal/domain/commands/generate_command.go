package commands

import (
	"context"
	"fmt"
	"sort"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/arcanum-gg/patchforge/internal/domain/entities"
	"github.com/arcanum-gg/patchforge/internal/domain/repositories"
)

// Generate is the interface for the generate command (the per-build step).
type Generate interface {
	Execute(ctx context.Context, settings *entities.Settings, opts GenerateOptions) (*BuildReport, error)
}

// GenerateOptions holds runtime options for a single build.
type GenerateOptions struct {
	Before  string // Revision marker override for the prior state
	After   string // Revision marker override for the current state
	DryRun  bool
	Verbose bool
}

// EntityWarning records a per-entity failure that did not abort the build.
type EntityWarning struct {
	Path string
	Err  error
}

// BuildReport summarizes one build: how many entity changes were merged,
// how many files produced no change, and the per-entity warnings collected
// along the way. A build with warnings still succeeds and publishes.
type BuildReport struct {
	Version  string
	Merged   int
	Skipped  int
	Warnings []EntityWarning
}

// GenerateCommand runs the full patch-history step for one build cycle:
// resolve the changed entity files, diff each one, merge the results into
// the open patch, record timeline snapshots, and republish the changelogs.
type GenerateCommand struct {
	revisions   repositories.RevisionRepository
	patches     repositories.PatchRepository
	timelines   repositories.TimelineRepository
	gameConfigs repositories.GameConfigRepository
	publish     Publish
	now         func() time.Time
}

// NewGenerateCommand creates a new GenerateCommand with the given repositories.
func NewGenerateCommand(
	revisions repositories.RevisionRepository,
	patches repositories.PatchRepository,
	timelines repositories.TimelineRepository,
	gameConfigs repositories.GameConfigRepository,
	publish Publish,
) *GenerateCommand {
	return &GenerateCommand{
		revisions:   revisions,
		patches:     patches,
		timelines:   timelines,
		gameConfigs: gameConfigs,
		publish:     publish,
		now:         time.Now,
	}
}

// Execute runs the build step. Per-entity failures are collected into the
// report; store-level failures abort with an error and leave the patch
// store untouched.
func (it *GenerateCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts GenerateOptions,
) (*BuildReport, error) {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	changeSet, err := it.revisions.ChangedEntities(ctx, repositories.RevisionQuery{
		RepoRoot:    settings.RepoRoot,
		DataDir:     settings.DataDir,
		PatchesFile: settings.PatchesFile,
		Before:      opts.Before,
		After:       opts.After,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve changed entities: %w", err)
	}

	logger.Infof("Comparing %q against %q", changeSet.Before, changeSet.After)

	gameConfig, err := it.gameConfigs.Load(ctx, settings.GameConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read game config: %w", err)
	}
	version := gameConfig.CurrentVersion()

	report := &BuildReport{Version: version}

	files := filterExcluded(settings, changeSet.Files)
	if len(files) == 0 {
		logger.Info("No data files changed.")
		return report, nil
	}

	// Deterministic processing order: repeated runs over identical inputs
	// must produce identical patch contents.
	sort.Slice(files, func(i, j int) bool {
		return files[i].TargetID() < files[j].TargetID()
	})

	allPatches, err := it.patches.Load(ctx, settings.PatchesPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load patch store: %w", err)
	}

	open, openIdx := findOpenPatch(allPatches, version)
	meta := it.buildMeta(ctx, settings, version)

	for _, file := range files {
		merged, mergeErr := it.processEntity(ctx, settings, changeSet, file, version, meta, &open)
		if mergeErr != nil {
			logger.Warnf("Skipping %s: %v", file.Path, mergeErr)
			report.Warnings = append(report.Warnings, EntityWarning{Path: file.Path, Err: mergeErr})
			continue
		}
		if merged {
			report.Merged++
		} else {
			report.Skipped++
		}
	}

	if report.Merged == 0 {
		logger.Info("No patchable entity changes found.")
		it.logWarnings(report)
		return report, nil
	}

	if openIdx >= 0 {
		allPatches[openIdx] = *open
		logger.Infof("Merged %d changes into existing patch %s", report.Merged, open.ID)
	} else {
		allPatches = append([]entities.Patch{*open}, allPatches...)
		logger.Infof("Opened new patch %s with %d changes", open.ID, report.Merged)
	}

	if opts.DryRun {
		logger.Info("Dry run: patch store and changelogs left untouched")
		it.logWarnings(report)
		return report, nil
	}

	if saveErr := it.patches.Save(ctx, settings.PatchesPath(), allPatches); saveErr != nil {
		return nil, fmt.Errorf("failed to save patch store: %w", saveErr)
	}

	if publishErr := it.publish.Execute(ctx, settings); publishErr != nil {
		return nil, fmt.Errorf("failed to publish changelogs: %w", publishErr)
	}

	it.logWarnings(report)
	return report, nil
}

// processEntity diffs a single changed file and merges the result.
// It returns false when the entity produced no change.
func (it *GenerateCommand) processEntity(
	ctx context.Context,
	settings *entities.Settings,
	changeSet *entities.ChangeSet,
	file entities.ChangedFile,
	version string,
	meta entities.PatchMeta,
	open **entities.Patch,
) (bool, error) {
	before, after, err := it.resolveStates(ctx, settings, changeSet, file, version)
	if err != nil {
		return false, err
	}

	changeType, diffs, err := entities.Diff(before, after)
	if err != nil {
		return false, err
	}
	if len(diffs) == 0 {
		logger.Debugf("No change in %s", file.Path)
		return false, nil
	}

	entry := entities.ChangeEntry{
		TargetID:   file.TargetID(),
		Name:       entityName(file, before, after),
		Field:      entities.FieldLabel(changeType, diffs),
		ChangeType: changeType,
		Category:   file.Category(),
		Diffs:      diffs,
	}

	merged, err := entities.MergeChange(*open, meta, entry)
	if err != nil {
		return false, err
	}
	*open = merged

	// Adds and edits extend the entity's timeline; deletes never do.
	if changeType != entities.ChangeTypeDelete {
		recordErr := it.timelines.Record(ctx, settings.TimelinePath(), entry.TargetID, entities.TimelineEntry{
			Version:  version,
			Date:     it.now().UTC().Format(time.DateOnly),
			Snapshot: after,
		})
		if recordErr != nil {
			return false, fmt.Errorf("failed to record timeline snapshot: %w", recordErr)
		}
	}

	logger.Debugf("Merged %s change for %s (%d diffs)", changeType, entry.TargetID, len(diffs))
	return true, nil
}

// resolveStates determines the before and after trees for one changed file.
// The before state prefers the last timeline snapshot preceding the current
// version so that repeated commits within one version diff cumulatively;
// it falls back to the content at the before marker.
func (it *GenerateCommand) resolveStates(
	ctx context.Context,
	settings *entities.Settings,
	changeSet *entities.ChangeSet,
	file entities.ChangedFile,
	version string,
) (entities.Value, entities.Value, error) {
	before := entities.Absent()
	after := entities.Absent()

	if file.Status != entities.StatusDeleted {
		current, err := it.revisions.ContentAt(ctx, settings.RepoRoot, changeSet.After, file.Path)
		if err != nil {
			return before, after, err
		}
		after = current
	}

	// First-ever build: everything is an add, there is no before state.
	if changeSet.Before == "" {
		return before, after, nil
	}

	if file.Status != entities.StatusAdded {
		if baseline, ok := it.timelineBaseline(ctx, settings, file.TargetID(), version); ok {
			before = baseline
		} else {
			prior, err := it.revisions.ContentAt(ctx, settings.RepoRoot, changeSet.Before, file.Path)
			if err != nil {
				return before, after, err
			}
			before = prior
		}
	}

	return before, after, nil
}

func (it *GenerateCommand) timelineBaseline(
	ctx context.Context,
	settings *entities.Settings,
	entityID, version string,
) (entities.Value, bool) {
	history, err := it.timelines.History(ctx, settings.TimelinePath(), entityID)
	if err != nil {
		logger.Debugf("No timeline baseline for %s: %v", entityID, err)
		return entities.Absent(), false
	}

	var timeline []entities.TimelineEntry
	for entry := range history {
		timeline = append(timeline, entry)
	}
	return entities.BaselineBefore(timeline, version)
}

func (it *GenerateCommand) buildMeta(
	ctx context.Context,
	settings *entities.Settings,
	version string,
) entities.PatchMeta {
	meta := entities.PatchMeta{
		Version:  version,
		Date:     it.now().UTC().Format(time.RFC3339),
		Category: entities.PatchCategoryContent,
	}

	author, err := it.revisions.HeadAuthor(ctx, settings.RepoRoot)
	if err != nil {
		logger.Debugf("Could not determine commit author: %v", err)
		return meta
	}
	if author != "" {
		logger.Infof("Contributor: %s", author)
		meta.Contributor = author
	}
	return meta
}

func (it *GenerateCommand) logWarnings(report *BuildReport) {
	if len(report.Warnings) == 0 {
		return
	}
	logger.Warnf("Build finished with %d entity warning(s):", len(report.Warnings))
	for _, warning := range report.Warnings {
		logger.Warnf("  %s: %v", warning.Path, warning.Err)
	}
}

func filterExcluded(settings *entities.Settings, files []entities.ChangedFile) []entities.ChangedFile {
	kept := make([]entities.ChangedFile, 0, len(files))
	for _, file := range files {
		if settings.IsExcluded(file.Path) {
			continue
		}
		kept = append(kept, file)
	}
	return kept
}

// findOpenPatch locates the patch block for the current version, if any.
// The patch for the version being built is the open one; everything else is
// closed history.
func findOpenPatch(patches []entities.Patch, version string) (*entities.Patch, int) {
	for i := range patches {
		if patches[i].Version == version {
			open := patches[i]
			return &open, i
		}
	}
	return nil, -1
}

func entityName(file entities.ChangedFile, before, after entities.Value) string {
	if name := after.StringField("name"); name != "" {
		return name
	}
	if name := before.StringField("name"); name != "" {
		return name
	}
	return file.TargetID()
}
