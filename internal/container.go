package internal

import (
	"github.com/arcanum-gg/patchforge/internal/domain/commands"
	"github.com/arcanum-gg/patchforge/internal/domain/entities"
	"github.com/arcanum-gg/patchforge/internal/infrastructure/controllers"
	"github.com/arcanum-gg/patchforge/internal/infrastructure/repositories"
	"go.uber.org/dig"
)

// AppInternal aggregates the CLI-facing controllers of the application.
type AppInternal struct {
	controllers *[]entities.Controller
}

// NewAppInternal creates the application context from the controller slice.
func NewAppInternal(ctrls *[]entities.Controller) *AppInternal {
	return &AppInternal{controllers: ctrls}
}

// GetControllers returns all registered controllers.
func (it *AppInternal) GetControllers() []entities.Controller {
	return *it.controllers
}

// RegisterProviders registers all internal providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register all layers (bottom-up: infrastructure repos -> domain entities -> domain commands -> controllers)
	if err := repositories.RegisterProviders(container); err != nil {
		return err
	}
	if err := entities.RegisterProviders(container); err != nil {
		return err
	}
	if err := commands.RegisterProviders(container); err != nil {
		return err
	}
	if err := controllers.RegisterProviders(container); err != nil {
		return err
	}

	// Register the main app internal
	if err := container.Provide(NewAppInternal); err != nil {
		return err
	}

	return nil
}
