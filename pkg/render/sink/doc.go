// Package sink materializes a render.Figure as an output file format:
//
//   - SVG: Vector output, rendered natively
//   - PNG: Raster output at the figure's DPI, drawn with gg
//   - PDF: Print-ready output (requires rsvg-convert)
//
// PDF conversion requires librsvg to be installed:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
package sink
