package text

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/flopp/go-findfont"
)

// FontSet holds resolved font file paths per weight. An empty path
// means no font was found; sinks then fall back to their built-in
// face.
type FontSet struct {
	Bold    string
	Regular string
	Light   string
}

// Empty reports whether no font could be resolved at all.
func (f FontSet) Empty() bool {
	return f.Bold == "" && f.Regular == "" && f.Light == ""
}

// fontFamilies maps family IDs to their file names per weight.
// Families without a dedicated light cut reuse the regular one.
var fontFamilies = map[string]FontSet{
	"roboto": {
		Bold:    "Roboto-Bold.ttf",
		Regular: "Roboto-Regular.ttf",
		Light:   "Roboto-Light.ttf",
	},
	"playfair": {
		Bold:    "PlayfairDisplay-Bold.ttf",
		Regular: "PlayfairDisplay-Regular.ttf",
		Light:   "PlayfairDisplay-Regular.ttf",
	},
	"courier": {
		Bold:    "CourierPrime-Bold.ttf",
		Regular: "CourierPrime-Regular.ttf",
		Light:   "CourierPrime-Regular.ttf",
	},
	"dancing": {
		Bold:    "DancingScript-Bold.ttf",
		Regular: "DancingScript-Regular.ttf",
		Light:   "DancingScript-Regular.ttf",
	},
}

// DefaultFontFamily is used when the requested family is unknown.
const DefaultFontFamily = "roboto"

// systemFallbacks are tried via the system font index when the bundled
// files are missing. Monospace keeps the poster legible without the
// shipped fonts.
var systemFallbacks = []string{
	"DejaVuSansMono.ttf",
	"LiberationMono-Regular.ttf",
	"Courier New.ttf",
}

// FontFamilies lists the selectable family IDs.
func FontFamilies() []string {
	return []string{"courier", "dancing", "playfair", "roboto"}
}

// LoadFonts resolves the font files for family under dir. Missing
// files degrade to a system monospace face found through the font
// index; a render never fails for lack of fonts.
func LoadFonts(dir, family string, logger *log.Logger) FontSet {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	files, ok := fontFamilies[family]
	if !ok {
		logger.Warnf("Unknown font family %q, using %s", family, DefaultFontFamily)
		files = fontFamilies[DefaultFontFamily]
	}

	set := FontSet{
		Bold:    filepath.Join(dir, files.Bold),
		Regular: filepath.Join(dir, files.Regular),
		Light:   filepath.Join(dir, files.Light),
	}
	if exists(set.Bold) && exists(set.Regular) && exists(set.Light) {
		return set
	}

	for _, name := range systemFallbacks {
		if path, err := findfont.Find(name); err == nil {
			logger.Warnf("Bundled fonts missing under %s, using system font %s", dir, path)
			return FontSet{Bold: path, Regular: path, Light: path}
		}
	}

	logger.Warnf("No usable font found, falling back to built-in face")
	return FontSet{}
}

func exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
