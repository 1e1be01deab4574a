package jsonstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/arcanum-gg/patchforge/internal/domain/entities"
)

// GameConfigRepository persists the release metadata file.
type GameConfigRepository struct{}

// NewGameConfigRepository creates a new GameConfigRepository.
func NewGameConfigRepository() *GameConfigRepository {
	return &GameConfigRepository{}
}

// Load reads and parses the game config file.
func (it *GameConfigRepository) Load(_ context.Context, path string) (*entities.GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config %q: %w", path, err)
	}

	var config entities.GameConfig
	if unmarshalErr := json.Unmarshal(data, &config); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse game config %q: %w", path, unmarshalErr)
	}
	return &config, nil
}

// Save atomically replaces the game config file.
func (it *GameConfigRepository) Save(_ context.Context, path string, config *entities.GameConfig) error {
	return writeJSONAtomic(path, config)
}
