package repositories

import (
	"context"

	"github.com/arcanum-gg/patchforge/internal/domain/entities"
)

// GameConfigRepository persists the release metadata file carrying the
// current data version and the release changelog.
type GameConfigRepository interface {
	Load(ctx context.Context, path string) (*entities.GameConfig, error)
	Save(ctx context.Context, path string, config *entities.GameConfig) error
}
