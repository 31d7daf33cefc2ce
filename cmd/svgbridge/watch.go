package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/benoitkugler/svgbridge/internal/watch"
)

func (a *app) watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <file>",
		Short: "Print the shapes of an SVG file each time it changes",
		Long: `Bridges the <rect> elements of the file, then watches it.
When the file is saved, the changed attributes are applied to the
bridged elements, updating their shapes, which are printed again.
Invalid changes are reported and leave the previous shapes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := a.bridgeErrorMode()
			if err != nil {
				return err
			}
			s, err := watch.Open(args[0], mode, a.log)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printNodes(out, s.Nodes())

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
			defer stop()
			return watch.Watch(ctx, args[0], s, watch.DefaultDebounce, func(rep watch.Report, err error) {
				if err != nil {
					fmt.Fprintln(out, "error:", err)
				}
				fmt.Fprintln(out, "---")
				printNodes(out, s.Nodes())
			})
		},
	}
}
