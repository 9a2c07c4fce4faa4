package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"rubyfactor/pkg/config"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version. It is
// called by the main package with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the rubyfactor CLI and returns an error if any command
// fails. Logging defaults to info level on stderr; --verbose switches
// to debug level. The configuration is loaded once and attached to the
// command context.
func Execute() error {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          "rubyfactor",
		Short:        "rubyfactor rewrites Ruby specs and methods in place",
		Long:         `rubyfactor applies small, mechanical refactorings to Ruby source: extracting assignments into let bindings, extracting line ranges into methods, and adding method parameters.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(withConfig(ctx, cfg))
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("rubyfactor %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "configuration file (default "+config.DefaultFileName+" if present)")

	root.AddCommand(newExtractCmd())
	root.AddCommand(newAddParameterCmd())

	return root.ExecuteContext(context.Background())
}
