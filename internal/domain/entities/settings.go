package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Settings is the top-level configuration for patchforge.
type Settings struct {
	// RepoRoot is the repository holding the entity data files.
	RepoRoot string `yaml:"repo_root"`
	// DataDir is the entity data directory, relative to RepoRoot.
	DataDir string `yaml:"data_dir"`
	// OutputDir receives the published changelog documents.
	OutputDir string `yaml:"output_dir"`
	// TimelineDir holds per-entity snapshot files.
	TimelineDir string `yaml:"timeline_dir"`
	// PatchesFile is the patch store, relative to RepoRoot.
	PatchesFile string `yaml:"patches_file"`
	// GameConfigFile carries the current data version, relative to RepoRoot.
	GameConfigFile string `yaml:"game_config_file"`
	// ChangelogFile is the human-readable changelog, relative to RepoRoot.
	ChangelogFile string `yaml:"changelog_file"`
	// PageSize is the number of patches per published page.
	PageSize int `yaml:"page_size"`
	// Exclude lists data files that never generate patch entries.
	Exclude []string `yaml:"exclude"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

var errNoConfigFile = errors.New("no configuration file found")

// DefaultSettings returns the settings used when no config file exists,
// matching the conventional repository layout.
func DefaultSettings() *Settings {
	return &Settings{
		RepoRoot:       ".",
		DataDir:        "data",
		OutputDir:      ".",
		TimelineDir:    "patch_history",
		PatchesFile:    "data/patches.json",
		GameConfigFile: "data/game_config.json",
		ChangelogFile:  "CHANGELOG.md",
		PageSize:       DefaultPageSize,
		Exclude: []string{
			"data/patches.json",
			"data/game_config.json",
			"data/queue.json",
			"data/audit.jsonl",
		},
	}
}

// NewSettings reads and parses a configuration file, expanding ${ENV_VAR}
// placeholders and filling unset fields with defaults.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	expanded := envVarPattern.ReplaceAllStringFunc(string(data), func(match string) string {
		name := envVarPattern.FindStringSubmatch(match)[1]
		return os.Getenv(name)
	})

	settings := DefaultSettings()
	if unmarshalErr := yaml.Unmarshal([]byte(expanded), settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	if validateErr := settings.validate(); validateErr != nil {
		return nil, validateErr
	}

	return settings, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path of the first file found or an error if none exists.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{".", ".config", "configs"}
	if homeDir != "" {
		locations = append(locations, homeDir, filepath.Join(homeDir, ".config"))
	}

	for _, location := range locations {
		candidate := filepath.Join(location, "patchforge.yaml")
		if _, statErr := os.Stat(candidate); statErr == nil {
			return candidate, nil
		}
	}

	return "", errNoConfigFile
}

// LoadSettings resolves the effective settings: an explicit path wins, then
// the first config file in a standard location, then the defaults.
func LoadSettings(path string) (*Settings, error) {
	if path != "" {
		return NewSettings(path)
	}

	found, err := FindConfigFile()
	if err != nil {
		logger.Debug("No config file found, using default settings")
		return DefaultSettings(), nil
	}

	logger.Infof("Using config file: %s", found)
	return NewSettings(found)
}

func (s *Settings) validate() error {
	if s.PageSize <= 0 {
		return fmt.Errorf("page_size must be positive, got %d", s.PageSize)
	}
	if s.DataDir == "" {
		return errors.New("data_dir must not be empty")
	}
	if s.PatchesFile == "" {
		return errors.New("patches_file must not be empty")
	}
	return nil
}

// IsExcluded reports whether a repo-relative data file is excluded from
// patch generation (the store files themselves, queue and audit artifacts).
func (s *Settings) IsExcluded(relPath string) bool {
	clean := filepath.ToSlash(relPath)
	for _, excluded := range s.Exclude {
		if clean == excluded {
			return true
		}
	}
	return false
}

// PatchesPath returns the absolute path of the patch store.
func (s *Settings) PatchesPath() string {
	return filepath.Join(s.RepoRoot, s.PatchesFile)
}

// GameConfigPath returns the absolute path of the game config file.
func (s *Settings) GameConfigPath() string {
	return filepath.Join(s.RepoRoot, s.GameConfigFile)
}

// TimelinePath returns the absolute path of the timeline directory.
func (s *Settings) TimelinePath() string {
	return filepath.Join(s.RepoRoot, s.TimelineDir)
}

// OutputPath returns the absolute path of the publish output directory.
func (s *Settings) OutputPath() string {
	return filepath.Join(s.RepoRoot, s.OutputDir)
}

// ChangelogPath returns the absolute path of CHANGELOG.md.
func (s *Settings) ChangelogPath() string {
	return filepath.Join(s.RepoRoot, s.ChangelogFile)
}
