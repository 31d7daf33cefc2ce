// Command svgbridge bridges the rectangles of SVG files to shapes,
// and checks the accuracy of the SVG generator.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/benoitkugler/svgbridge/bridge"
	"github.com/benoitkugler/svgbridge/internal/config"
	"github.com/benoitkugler/svgbridge/internal/logging"
)

// app holds the state shared by the commands
type app struct {
	configPath string
	logLevel   string
	errorMode  string

	cfg    config.Config
	log    zerolog.Logger
	closer io.Closer
}

func newRootCmd() *cobra.Command {
	a := new(app)
	root := &cobra.Command{
		Use:   "svgbridge",
		Short: "Bridge SVG rectangles to shapes and check SVG generation accuracy",
		Long: `svgbridge maps the <rect> elements of SVG files to shapes,
resolving lengths and corner radii, and renders them.

It also runs the accuracy tests of the SVG generator, comparing
the markup of built-in drawings with reference files.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.closer != nil {
				_ = a.closer.Close()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.errorMode, "error-mode", "", "handling of unsupported elements (ignore, warn, strict)")

	root.AddCommand(a.rectCmd(), a.accuracyCmd(), a.watchCmd())
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if a.errorMode != "" {
		cfg.Bridge.ErrorMode = a.errorMode
	}
	a.cfg = cfg
	a.log, a.closer = logging.New(cmd.ErrOrStderr(), logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	})
	return nil
}

func (a *app) bridgeErrorMode() (bridge.ErrorMode, error) {
	return bridge.ParseErrorMode(a.cfg.Bridge.ErrorMode)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
