package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/citymaps/cityposter/pkg/errors"
	"github.com/citymaps/cityposter/pkg/paper"
	"github.com/citymaps/cityposter/pkg/poster"
	"github.com/citymaps/cityposter/pkg/render/sink"
	"github.com/citymaps/cityposter/pkg/text"
)

// generateRequest is the POST /api/generate body. Coordinates may be
// omitted when a city name is given and a geocoder is configured.
type generateRequest struct {
	City    string   `json:"city"`
	Country string   `json:"country"`
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`

	Theme        string            `json:"theme"`
	CustomColors map[string]string `json:"custom_colors"`
	Distance     float64           `json:"distance"`
	PaperSize    string            `json:"paper_size"`
	DPI          int               `json:"dpi"`
	Format       string            `json:"format"`

	Layers map[string]bool `json:"layers"`

	TextX         *float64 `json:"text_x"`
	TextY         *float64 `json:"text_y"`
	TextAlign     string   `json:"text_align"`
	ShowCoords    *bool    `json:"show_coords"`
	ShowCountry   *bool    `json:"show_country"`
	CustomCity    string   `json:"custom_city"`
	CustomCountry string   `json:"custom_country"`
	Subtitle      string   `json:"subtitle"`
	CustomCoords  string   `json:"custom_coords"`
	CoordsFormat  string   `json:"coords_format"`
	TextColor     string   `json:"text_color"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid request body: %v", err))
		return
	}

	cfg, err := s.buildConfig(r, req)
	if err != nil {
		writeError(w, err)
		return
	}

	fig, err := s.generator.Generate(r.Context(), cfg)
	if err != nil {
		writeError(w, err)
		return
	}

	switch strings.ToLower(req.Format) {
	case "", "png":
		data, err := sink.RenderPNG(fig)
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(data)
	case "svg":
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write(sink.RenderSVG(fig))
	case "pdf":
		data, err := sink.RenderPDF(fig)
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(data)
	default:
		writeError(w, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", req.Format))
	}
}

// buildConfig resolves the request into a render config, geocoding the
// city when no explicit coordinates are given.
func (s *Server) buildConfig(r *http.Request, req generateRequest) (poster.RenderConfig, error) {
	cfg := poster.RenderConfig{
		City:          req.City,
		Country:       req.Country,
		Theme:         req.Theme,
		CustomColors:  req.CustomColors,
		Distance:      req.Distance,
		DPI:           req.DPI,
		Layers:        req.Layers,
		CustomCity:    req.CustomCity,
		CustomCountry: req.CustomCountry,
		Subtitle:      req.Subtitle,
		CustomCoords:  req.CustomCoords,
		CoordsFormat:  text.CoordsFormat(req.CoordsFormat),
		TextColor:     req.TextColor,
	}

	if req.PaperSize != "" {
		size, err := paper.Parse(req.PaperSize)
		if err != nil {
			return cfg, err
		}
		cfg.Paper = size
	}

	pos := text.DefaultPosition()
	if req.TextX != nil {
		pos.X = *req.TextX
	}
	if req.TextY != nil {
		pos.Y = *req.TextY
	}
	if req.TextAlign != "" {
		pos.Alignment = req.TextAlign
	}
	if req.ShowCoords != nil {
		pos.ShowCoords = *req.ShowCoords
	}
	if req.ShowCountry != nil {
		pos.ShowCountry = *req.ShowCountry
	}
	cfg.Position = pos

	switch {
	case req.Lat != nil && req.Lon != nil:
		cfg.Lat, cfg.Lon = *req.Lat, *req.Lon
	case req.City == "":
		return cfg, errors.New(errors.ErrCodeInvalidInput, "either coordinates or a city name is required")
	case s.geocoder == nil:
		return cfg, errors.New(errors.ErrCodeInvalidInput, "no geocoder configured, coordinates are required")
	default:
		place := req.City
		if req.Country != "" {
			place += ", " + req.Country
		}
		result, err := s.geocoder.Geocode(r.Context(), place)
		if err != nil {
			return cfg, err
		}
		cfg.Lat, cfg.Lon = result.Lat, result.Lon
	}
	return cfg, nil
}

func (s *Server) handleThemes(w http.ResponseWriter, _ *http.Request) {
	names := s.themes.List()
	out := make([]map[string]string, 0, len(names))
	for _, name := range names {
		t := s.themes.Load(name)
		out = append(out, map[string]string{
			"name":        name,
			"display":     t.Name,
			"description": t.Description,
			"mode":        string(t.Mode()),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"themes": out})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidPaperSize, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidTheme, errors.ErrCodeInvalidDistance, errors.ErrCodeDistanceExceeded,
		errors.ErrCodeInvalidCoords:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeThemeNotFound, errors.ErrCodePlaceNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeNetwork, errors.ErrCodeStreetNetwork, errors.ErrCodeGeocode:
		status = http.StatusBadGateway
	case errors.ErrCodeRateLimited:
		status = http.StatusTooManyRequests
	case errors.ErrCodeTimeout:
		status = http.StatusGatewayTimeout
	}

	writeJSON(w, status, map[string]string{
		"error": errors.UserMessage(err),
		"code":  string(errors.GetCode(err)),
	})
}
