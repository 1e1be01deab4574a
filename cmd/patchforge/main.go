package main

import (
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/arcanum-gg/patchforge/internal"
)

// flagAdder is implemented by controllers that carry subcommand-specific flags.
type flagAdder interface {
	AddFlags(cmd *cobra.Command)
}

func buildRootCommand() *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "patchforge",
		Short: "Patch-history engine for versioned game data",
		Long: `Derives structured change history from a git-backed entity data
repository and publishes it as paginated, consumer-facing documents.

Each build, patchforge detects which entity files changed, computes
field-level diffs between their prior and current states, merges the
results into the open patch for the current data version, appends
per-entity timeline snapshots, and regenerates the changelog pages.

Usage:
  patchforge generate   Process the current build (CI step)
  patchforge publish    Republish the changelog documents
  patchforge release    Bump the data version and close the open patch`,
		RunE: func(command *cobra.Command, _ []string) error {
			return command.Help()
		},
	}

	// Global persistent flags
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect patchforge.yaml)")
	cmd.PersistentFlags().Bool("dry-run", false,
		"Show what would be done without making changes")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")

	return cmd
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		ctrl := controller // capture for closure
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			Run: func(command *cobra.Command, arguments []string) {
				ctrl.Execute(command, arguments)
			},
		}

		// Add controller-specific flags
		if adder, ok := ctrl.(flagAdder); ok {
			adder.AddFlags(subCmd)
		}

		rootCmd.AddCommand(subCmd)
	}
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	cobraRoot := buildRootCommand()

	// Inject controllers via DIG
	appContext := injectAppContext()
	addSubcommands(cobraRoot, appContext)

	if err := cobraRoot.Execute(); err != nil {
		logger.Fatalf("Error executing 'patchforge': %s", err)
	}
}
