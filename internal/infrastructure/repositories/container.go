package repositories

import (
	"go.uber.org/dig"

	domainRepos "github.com/arcanum-gg/patchforge/internal/domain/repositories"
	gitRepo "github.com/arcanum-gg/patchforge/internal/infrastructure/repositories/git"
	"github.com/arcanum-gg/patchforge/internal/infrastructure/repositories/jsonstore"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register repository constructors
	if err := container.Provide(gitRepo.NewGitRevisionRepository); err != nil {
		return err
	}
	if err := container.Provide(jsonstore.NewPatchRepository); err != nil {
		return err
	}
	if err := container.Provide(jsonstore.NewTimelineRepository); err != nil {
		return err
	}
	if err := container.Provide(jsonstore.NewChangelogRepository); err != nil {
		return err
	}
	if err := container.Provide(jsonstore.NewGameConfigRepository); err != nil {
		return err
	}
	if err := container.Provide(jsonstore.NewChangelogFileRepository); err != nil {
		return err
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *gitRepo.GitRevisionRepository) domainRepos.RevisionRepository {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *jsonstore.PatchRepository) domainRepos.PatchRepository {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *jsonstore.TimelineRepository) domainRepos.TimelineRepository {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *jsonstore.ChangelogRepository) domainRepos.ChangelogRepository {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *jsonstore.GameConfigRepository) domainRepos.GameConfigRepository {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *jsonstore.ChangelogFileRepository) domainRepos.ChangelogFileRepository {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
