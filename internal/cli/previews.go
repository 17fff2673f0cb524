package cli

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/citymaps/cityposter/pkg/errors"
	"github.com/citymaps/cityposter/pkg/paper"
	"github.com/citymaps/cityposter/pkg/poster"
	"github.com/citymaps/cityposter/pkg/render/sink"
	"github.com/citymaps/cityposter/pkg/theme"
)

// Preview renders are kept small and fast: low DPI, modest radius, and
// thumbnails capped to this pixel height.
const (
	previewDistance  = 3000.0
	previewThumbSize = 600
	previewWorkers   = 4
)

func newThemesPreviewCmd() *cobra.Command {
	var (
		city     string
		lat      float64
		lon      float64
		distance float64
		output   string
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render a thumbnail of every theme for one location",
		Long: `Preview renders a small thumbnail of each installed theme side by side,
so styles can be compared before committing to a full render. Thumbnails
land in a previews/ directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			cfg := configFromContext(ctx)

			store := theme.NewStore(cfg.ThemesDir, logger)
			names := store.List()
			if len(names) == 0 {
				return errors.New(errors.ErrCodeThemeNotFound, "no themes found in %s", store.Dir())
			}

			if output == "" {
				output = filepath.Join(cfg.OutputDir, "previews")
			}
			if err := os.MkdirAll(output, 0o755); err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "creating %s", output)
			}

			gen, _ := newGenerator(ctx, cfg, "", false, logger)

			sp := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %d theme previews", len(names)))
			sp.Start()

			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(previewWorkers)
			for _, name := range names {
				g.Go(func() error {
					return renderPreview(gctx, gen, name, city, lat, lon, distance, output)
				})
			}
			if err := g.Wait(); err != nil {
				sp.StopWithError("Preview render failed")
				return err
			}
			sp.StopWithSuccess(fmt.Sprintf("Rendered %d previews", len(names)))

			for _, name := range names {
				printFile(filepath.Join(output, name+".png"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&city, "city", "Berlin", "city label for the preview posters")
	cmd.Flags().Float64Var(&lat, "lat", 52.5200, "preview latitude")
	cmd.Flags().Float64Var(&lon, "lon", 13.4050, "preview longitude")
	cmd.Flags().Float64Var(&distance, "distance", previewDistance, "preview radius in meters")
	cmd.Flags().StringVarP(&output, "output", "o", "", "preview output directory")

	return cmd
}

// renderPreview renders one theme at preview resolution and writes the
// downscaled thumbnail.
func renderPreview(ctx context.Context, gen *poster.Generator, name, city string,
	lat, lon, distance float64, dir string) error {

	fig, err := gen.Generate(ctx, poster.RenderConfig{
		Lat:      lat,
		Lon:      lon,
		City:     city,
		Theme:    name,
		Distance: distance,
		Paper:    paper.A4,
		DPI:      poster.PreviewDPI,
	})
	if err != nil {
		return errors.Wrap(errors.GetCode(err), err, "rendering %s preview", name)
	}

	data, err := sink.RenderPNG(fig)
	if err != nil {
		return err
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "decoding %s preview", name)
	}

	thumb := imaging.Fit(img, previewThumbSize, previewThumbSize, imaging.Lanczos)
	path := filepath.Join(dir, name+".png")
	if err := imaging.Save(thumb, path); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "writing %s", path)
	}
	return nil
}
