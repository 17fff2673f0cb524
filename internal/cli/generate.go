package cli

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/citymaps/cityposter/pkg/errors"
	"github.com/citymaps/cityposter/pkg/paper"
	"github.com/citymaps/cityposter/pkg/poster"
	"github.com/citymaps/cityposter/pkg/text"
)

// generateFlags collects every flag of the generate command.
type generateFlags struct {
	lat      float64
	lon      float64
	country  string
	theme    string
	distance float64
	paper    string
	dpi      int
	format   string
	output   string
	font     string

	subtitle      string
	customCity    string
	customCountry string
	customCoords  string
	coordsFormat  string
	textColor     string
	textX         int
	textY         int
	align         string
	noCoords      bool
	noCountry     bool

	show []string
	hide []string

	noCache bool
	print   bool
}

func newGenerateCmd() *cobra.Command {
	var f generateFlags

	cmd := &cobra.Command{
		Use:   "generate [city]",
		Short: "Render a city poster",
		Long: `Generate renders a poster for a city. The location comes from the city
name (geocoded via Nominatim) or from explicit --lat/--lon coordinates.

Examples:
  cityposter generate "Berlin" --theme noir_lights
  cityposter generate "Tokyo, Japan" --distance 12000 --paper A2 --format pdf
  cityposter generate --lat 40.7128 --lon -74.0060 --custom-city "NYC"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			city := ""
			if len(args) > 0 {
				city = args[0]
			}
			return runGenerate(cmd, city, f)
		},
	}

	cmd.Flags().Float64Var(&f.lat, "lat", math.NaN(), "latitude (skips geocoding)")
	cmd.Flags().Float64Var(&f.lon, "lon", math.NaN(), "longitude (skips geocoding)")
	cmd.Flags().StringVar(&f.country, "country", "", "country name for geocoding and the text block")
	cmd.Flags().StringVarP(&f.theme, "theme", "t", "", "theme name (see 'cityposter themes')")
	cmd.Flags().Float64VarP(&f.distance, "distance", "d", poster.DefaultDistance, "render radius in meters")
	cmd.Flags().StringVarP(&f.paper, "paper", "p", "", "paper size (A2-A5)")
	cmd.Flags().IntVar(&f.dpi, "dpi", 0, "raster resolution (default from config)")
	cmd.Flags().StringVarP(&f.format, "format", "f", "png", "output format: png, svg, or pdf")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file path (default derived from city and theme)")
	cmd.Flags().StringVar(&f.font, "font", "", "font family (default from config)")

	cmd.Flags().StringVar(&f.subtitle, "subtitle", "", "subtitle line under the city name")
	cmd.Flags().StringVar(&f.customCity, "custom-city", "", "override the displayed city name")
	cmd.Flags().StringVar(&f.customCountry, "custom-country", "", "override the displayed country name")
	cmd.Flags().StringVar(&f.customCoords, "custom-coords", "", "override the coordinate line")
	cmd.Flags().StringVar(&f.coordsFormat, "coords-format", "default", "coordinate style: default, decimal, compact, or dms")
	cmd.Flags().StringVar(&f.textColor, "text-color", "", "override the text color (hex)")
	cmd.Flags().IntVar(&f.textX, "text-x", 50, "horizontal text position, 0-100")
	cmd.Flags().IntVar(&f.textY, "text-y", 14, "vertical text position, 0-100")
	cmd.Flags().StringVar(&f.align, "align", "center", "text alignment: left, center, or right")
	cmd.Flags().BoolVar(&f.noCoords, "no-coords", false, "hide the coordinate line")
	cmd.Flags().BoolVar(&f.noCountry, "no-country", false, "hide the country line")

	cmd.Flags().StringSliceVar(&f.show, "show", nil, "force layers on (e.g. --show railways,hedges)")
	cmd.Flags().StringSliceVar(&f.hide, "hide", nil, "force layers off (e.g. --hide buildings)")

	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "bypass the geometry cache")
	cmd.Flags().BoolVar(&f.print, "print", false, "render at print resolution (600 DPI)")

	return cmd
}

func runGenerate(cmd *cobra.Command, city string, f generateFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	cfg := configFromContext(ctx)

	gen, c := newGenerator(ctx, cfg, f.font, f.noCache, logger)

	lat, lon := f.lat, f.lon
	country := f.country
	haveCoords := !math.IsNaN(lat) && !math.IsNaN(lon)
	if !haveCoords && city == "" {
		return errors.New(errors.ErrCodeInvalidInput,
			"provide a city name or explicit --lat/--lon coordinates")
	}

	themeName := f.theme
	if themeName == "" {
		themeName = cfg.DefaultTheme
	}
	paperName := f.paper
	if paperName == "" {
		paperName = cfg.DefaultPaper
	}
	size, err := paper.Parse(paperName)
	if err != nil {
		return err
	}

	dpi := f.dpi
	if dpi == 0 {
		dpi = cfg.DefaultDPI
	}
	if f.print {
		dpi = poster.PrintDPI
	}

	// One spinner spans the whole pipeline; each phase advances its
	// label.
	prog := newProgress(logger)
	sp := newSpinnerWithContext(ctx, "Preparing")
	sp.Start()

	geocoded := false
	if !haveCoords {
		sp.Advance(fmt.Sprintf("Locating %s", city))
		address := city
		if country != "" {
			address = city + ", " + country
		}
		result, err := newGeocoder(cfg, c, logger).Geocode(ctx, address)
		if err != nil {
			sp.StopWithError(fmt.Sprintf("Could not locate %q", address))
			return err
		}
		lat, lon = result.Lat, result.Lon
		geocoded = true
	}

	x, y := text.SliderToAxes(f.textX, f.textY)
	rc := poster.RenderConfig{
		Lat:      lat,
		Lon:      lon,
		City:     city,
		Country:  country,
		Theme:    themeName,
		Distance: f.distance,
		Paper:    size,
		DPI:      dpi,
		Layers:   layerOverrides(f.show, f.hide),
		Position: text.Position{
			X:           x,
			Y:           y,
			Alignment:   f.align,
			ShowCoords:  !f.noCoords,
			ShowCountry: !f.noCountry,
		},
		CustomCity:    f.customCity,
		CustomCountry: f.customCountry,
		Subtitle:      f.subtitle,
		CustomCoords:  f.customCoords,
		CoordsFormat:  text.CoordsFormat(f.coordsFormat),
		TextColor:     f.textColor,
	}

	sp.Advance(fmt.Sprintf("Rendering %s poster", themeName))
	fig, err := gen.Generate(ctx, rc)
	if err != nil {
		if sp.Cancelled() {
			sp.Stop()
			printWarning("Cancelled")
			return err
		}
		sp.StopWithError("Render failed")
		return err
	}

	sp.Advance("Saving poster")
	path := f.output
	if path == "" {
		path = filepath.Join(cfg.OutputDir, poster.Filename(city, themeName, f.format))
	}
	if err := gen.Save(fig, path); err != nil {
		sp.StopWithError("Save failed")
		return err
	}
	sp.StopWithSuccess("Poster saved")
	prog.done("Generated " + path)

	if geocoded {
		printDetail("Located at %.4f, %.4f", lat, lon)
	}
	printFile(path)
	w, h := fig.PixelSize()
	printStats(len(fig.Ops()), w, h, fig.DPI)
	if strings.EqualFold(filepath.Ext(path), ".png") && dpi < poster.PrintDPI {
		printNextStep("For print quality, re-run with", "--print")
	}
	return nil
}

// layerOverrides folds --show/--hide into the per-layer visibility map.
// Hide wins when a layer appears in both.
func layerOverrides(show, hide []string) map[string]bool {
	if len(show) == 0 && len(hide) == 0 {
		return nil
	}
	overrides := make(map[string]bool, len(show)+len(hide))
	for _, name := range show {
		overrides[strings.ToLower(strings.TrimSpace(name))] = true
	}
	for _, name := range hide {
		overrides[strings.ToLower(strings.TrimSpace(name))] = false
	}
	return overrides
}
