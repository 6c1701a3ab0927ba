// Package cli provides the command-line interface for Weave.
package cli

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/weave/internal/config"
	"github.com/jmylchreest/weave/internal/version"
)

var (
	// Global debug level: 0=warn, 1=info, 2=debug.
	globalDebug int

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "weave",
		Short: "A wallpaper and colour scheme manager",
		Long: `Weave manages wallpapers and colour schemes as one library: it imports
wallpaper images, extracts their dominant colours, ranks wallpapers against
a scheme variant by perceptual similarity, and applies the pair to your
desktop through external tools.`,
		Version:      version.Short(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return ensureDirs()
		},
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&globalDebug, "debug", "D", 0, "logging level: 0=warning, 1=info, 2=debug")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(wallpaperCmd)
	rootCmd.AddCommand(schemeCmd)
	rootCmd.AddCommand(generateCmd)
}

// newLogger creates the root logger at the level selected by --debug.
func newLogger() hclog.Logger {
	level := hclog.Warn
	switch globalDebug {
	case 1:
		level = hclog.Info
	case 2:
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "weave",
		Level:  level,
		Output: os.Stderr,
	})
}

// dirs returns the resolved data directories.
func dirs() config.Dirs {
	return config.ResolveDirs()
}

// ensureDirs creates the data directories before any command runs.
func ensureDirs() error {
	return config.EnsureDirs(dirs())
}

// settings loads the user settings with defaults.
func settings() (config.Settings, error) {
	s, err := config.Load()
	if err != nil {
		return config.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return s, nil
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print detailed version information including build date, commit hash, and Go version.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
	},
}
