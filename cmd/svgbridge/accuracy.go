package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/benoitkugler/svgbridge/accuracy"
	"github.com/benoitkugler/svgbridge/painters"
	"github.com/benoitkugler/svgbridge/svggen"
)

func (a *app) accuracyCmd() *cobra.Command {
	var (
		refDir, saveDir string
		workers         int
		update          bool
	)
	cmd := &cobra.Command{
		Use:   "accuracy [painter...]",
		Short: "Compare the SVG of the built-in drawings with reference files",
		Long: `Renders each built-in drawing (all of them by default) to SVG and
compares the markup, line by line, with <ref-dir>/<painter>.svg.

With --update, the reference files are written instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("ref-dir") {
				a.cfg.Accuracy.ReferenceDir = refDir
			}
			if cmd.Flags().Changed("save-dir") {
				a.cfg.Accuracy.SaveDir = saveDir
			}
			if cmd.Flags().Changed("workers") {
				a.cfg.Accuracy.Workers = workers
			}
			tests, err := a.accuracyTests(args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if update {
				for _, test := range tests {
					markup, err := test.Generate()
					if err != nil {
						return err
					}
					if err := os.WriteFile(test.Reference, markup, 0o644); err != nil {
						return err
					}
					fmt.Fprintf(out, "%s: reference written to %s\n", test.Name, test.Reference)
				}
				return nil
			}

			suite := accuracy.Suite{Tests: tests, Workers: a.cfg.Accuracy.Workers}
			reports, err := suite.Run(cmd.Context())
			if err != nil {
				return err
			}
			for _, r := range reports {
				fmt.Fprintln(out, r)
			}
			summary := accuracy.Summarize(reports)
			fmt.Fprintln(out, summary)
			if summary.Failed != 0 {
				return errors.Errorf("%d accuracy test(s) failed", summary.Failed)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&refDir, "ref-dir", "", "directory of the reference files")
	cmd.Flags().StringVar(&saveDir, "save-dir", "", "directory where the markup of failed tests is saved")
	cmd.Flags().IntVar(&workers, "workers", 0, "number of tests run at once")
	cmd.Flags().BoolVar(&update, "update", false, "write the reference files instead of comparing")
	return cmd
}

func (a *app) accuracyTests(names []string) ([]*accuracy.Test, error) {
	if len(names) == 0 {
		names = painters.Names()
	}
	settings := a.cfg.Accuracy
	ctx := svggen.DefaultContext()
	ctx.Comment = settings.Comment
	if settings.Precision > 0 {
		ctx.Precision = settings.Precision
	}
	log := a.log.With().Str("command", "accuracy").Logger()

	var tests []*accuracy.Test
	for _, name := range names {
		p, ok := painters.Lookup(name)
		if !ok {
			return nil, errors.Errorf("unknown painter %q (available: %v)", name, painters.Names())
		}
		test := &accuracy.Test{
			Name:         name,
			Painter:      p,
			Reference:    filepath.Join(settings.ReferenceDir, name+".svg"),
			Context:      ctx,
			CanvasWidth:  settings.CanvasWidth,
			CanvasHeight: settings.CanvasHeight,
			Log:          &log,
		}
		if settings.SaveDir != "" {
			test.SaveSVG = filepath.Join(settings.SaveDir, name+".svg")
		}
		tests = append(tests, test)
	}
	return tests, nil
}
