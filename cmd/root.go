package cmd

import (
	"fmt"
	"os"

	"github.com/philipparndt/piewheel/internal/app"
	"github.com/philipparndt/piewheel/version"
	"github.com/spf13/cobra"
)

var opts app.Options

var rootCmd = &cobra.Command{
	Use:     "piewheel <sections.json>",
	Short:   "Interactive radial selection wheel",
	Long:    `Piewheel shows a radial selection menu built from a JSON section list and reports the chosen value. The file is reloaded live when it changes.`,
	Args:    cobra.ExactArgs(1),
	Version: version.GetFullVersion(),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts.SectionsFile = args[0]
		return app.Run(opts)
	},
}

func init() {
	rootCmd.Flags().IntVar(&opts.SectionCount, "section-count", 0,
		"fixed number of selectable slots; 0 sizes the wheel to the section list")
	rootCmd.Flags().BoolVar(&opts.AutoLock, "auto-lock", false,
		"lock the wheel again after every selection")
	rootCmd.Flags().BoolVar(&opts.StartLocked, "locked", false,
		"start with the wheel locked")
	rootCmd.Flags().BoolVar(&opts.NoWatch, "no-watch", false,
		"disable live reload of the sections file")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
