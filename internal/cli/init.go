package cli

import (
	"github.com/spf13/cobra"

	"github.com/JuulLabs-OSS/loogi-http/internal/app"
)

//nolint:gochecknoglobals // Cobra command requires a global definition.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with the default settings",
	Long: `Writes the default settings to the configuration file given with --config
(default is '.loogi-http.yaml'). An existing file is never overwritten.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		app.ExecuteInitCommand(cmd.Context(), configFilenameFromFlag)
	},
}
