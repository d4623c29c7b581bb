package cli

import (
	"fmt"
	"math"

	"saba/pkg/render"

	"github.com/spf13/cobra"
)

func newRenderCommand(a *App) *cobra.Command {
	var (
		output    string
		full      bool
		reference string
		compare   render.CompareOptions
	)
	cmd := &cobra.Command{
		Use:   "render <url-or-file>",
		Short: "Render a page to a PNG image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := a.Open(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			items := loaded.Page.DisplayItems()

			width, height := a.Config.Browser.ViewportWidth, a.Config.Browser.ViewportHeight
			if full {
				height = max(height, int(math.Ceil(render.Extent(items).Height)))
			}
			r := render.NewRenderer(width, height)
			r.Render(items)
			if err := r.SavePNG(output); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rendered %s to %s (%dx%d, %d display items)\n",
				loaded.URL, output, width, height, len(items))

			if reference == "" {
				return nil
			}
			want, err := render.LoadPNG(reference)
			if err != nil {
				return err
			}
			res, err := render.Compare(r.Image(), want, compare)
			if err != nil {
				return err
			}
			if !res.Match {
				return fmt.Errorf("rendering differs from %s: %d of %d pixels, max difference %d",
					reference, res.DifferentPixels, res.TotalPixels, res.MaxDifference)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "matches %s\n", reference)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "saba.png", "output PNG file")
	cmd.Flags().BoolVar(&full, "full", false, "grow the image to fit the whole page")
	cmd.Flags().StringVar(&reference, "reference", "", "compare the result against this PNG")
	cmd.Flags().IntVar(&compare.Tolerance, "tolerance", 2, "per-channel difference allowed when comparing")
	cmd.Flags().Float64Var(&compare.MaxDifferentPercent, "max-diff-percent", 0, "share of differing pixels allowed when comparing")
	cmd.Flags().StringVar(&compare.DiffPath, "diff", "", "write a diff image here when the comparison fails")
	return cmd
}
