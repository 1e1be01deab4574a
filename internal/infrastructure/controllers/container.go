package controllers

import (
	"github.com/arcanum-gg/patchforge/internal/domain/entities"
	"go.uber.org/dig"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	if err := container.Provide(NewGenerateController); err != nil {
		return err
	}
	if err := container.Provide(NewPublishController); err != nil {
		return err
	}
	if err := container.Provide(NewReleaseController); err != nil {
		return err
	}
	if err := container.Provide(NewControllers); err != nil {
		return err
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(
	generateController *GenerateController,
	publishController *PublishController,
	releaseController *ReleaseController,
) *[]entities.Controller {
	return &[]entities.Controller{
		generateController,
		publishController,
		releaseController,
	}
}
