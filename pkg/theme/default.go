package theme

// Default returns the built-in fallback theme. It resolves every
// required key plus the detail-layer colors, so any render can proceed
// even when no theme file is installed.
func Default() Theme {
	return Theme{
		Name:        "Default",
		Description: "Built-in default theme",
		Values: map[string]any{
			"name":             "Default",
			"description":      "Built-in default theme",
			"bg":               "#FFFFFF",
			"text":             "#000000",
			"gradient_color":   "#000000",
			"water":            "#A8DADC",
			"parks":            "#90BE6D",
			"road_motorway":    "#F77F00",
			"road_primary":     "#F94144",
			"road_secondary":   "#F8961E",
			"road_tertiary":    "#F9C74F",
			"road_residential": "#90BE6D",
			"road_default":     "#CCCCCC",
			// Detail layer colors
			"buildings":      "#D0D0D0",
			"buildings_fill": "#E8E8E8",
			"paths":          "#B0B0B0",
			"farmland":       "#F5F5DC",
			"forest":         "#C8E6C9",
			"meadow":         "#E8F5E9",
			"waterways":      "#7CB9E8",
			"railways":       "#4A4A4A",
			"railways_dash":  "#FFFFFF",
			"hedges":         "#6B8E23",
			"leisure":        "#C5E1A5",
			"amenities":      "#E0E0E0",
			"amenities_edge": "#808080",
		},
	}
}
