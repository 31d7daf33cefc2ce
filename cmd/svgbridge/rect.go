package main

import (
	"fmt"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/benoitkugler/svgbridge/internal/watch"
	"github.com/benoitkugler/svgbridge/shape"
	"github.com/benoitkugler/svgbridge/svggen"
	"github.com/benoitkugler/svgbridge/svgpath"
	"github.com/benoitkugler/svgbridge/svgpdf"
	"github.com/benoitkugler/svgbridge/svgraster"
)

func (a *app) rectCmd() *cobra.Command {
	var pngOut, pdfOut, svgOut string
	cmd := &cobra.Command{
		Use:   "rect <file>",
		Short: "Print the shapes of the rectangles of an SVG file",
		Long: `Bridges the <rect> elements of the file and prints the resulting shapes,
one per line, in document order.

The shapes may also be rendered to PNG, PDF or SVG.`,
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
			printNodes(cmd.OutOrStdout(), s.Nodes())

			w, h := s.Document().Viewport()
			if pngOut != "" {
				img := svgraster.RasterNodes(s.Nodes(), int(math.Ceil(w)), int(math.Ceil(h)), svgpath.Identity)
				if err := writeFile(pngOut, func(f io.Writer) error { return png.Encode(f, img) }); err != nil {
					return err
				}
			}
			if pdfOut != "" {
				if err := writeFile(pdfOut, func(f io.Writer) error { return svgpdf.WriteNodes(f, s.Nodes(), w, h) }); err != nil {
					return err
				}
			}
			if svgOut != "" {
				g := svggen.NewGraphics(svggen.Context{Comment: a.cfg.Accuracy.Comment, Precision: a.cfg.Accuracy.Precision})
				g.SetCanvasSize(w, h)
				for _, n := range s.Nodes() {
					g.PaintNode(n)
				}
				if err := writeFile(svgOut, g.Stream); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&pngOut, "png", "", "render the shapes to this PNG file")
	cmd.Flags().StringVar(&pdfOut, "pdf", "", "render the shapes to this PDF file")
	cmd.Flags().StringVar(&svgOut, "svg", "", "write the shapes to this SVG file")
	return cmd
}

func printNodes(w io.Writer, nodes []*shape.Node) {
	for _, n := range nodes {
		fmt.Fprintln(w, n.Shape())
	}
}

func writeFile(path string, write func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing %s", path)
	}
	return f.Close()
}
