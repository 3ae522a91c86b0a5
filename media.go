/* ipp-print - IPP print client with PWG Raster payload generation
 *
 * Media size table
 */

package main

// MediaSize represents a named media size, in IPP units (1/100 mm)
type MediaSize struct {
	Name          string // PWG self-describing name
	Width, Height int    // Media width and height
}

// Media sizes the program knows how to rasterize for. Names
// follow the PWG self-describing convention, so they can be sent
// as the "media" job attribute as-is
var mediaSizes = []MediaSize{
	{"iso_a3_297x420mm", 29700, 42000},
	{"iso_a4_210x297mm", 21000, 29700},
	{"iso_a5_148x210mm", 14800, 21000},
	{"jis_b5_182x257mm", 18200, 25700},
	{"na_legal_8.5x14in", 21590, 35560},
	{"na_letter_8.5x11in", 21590, 27940},
}

// MediaByName looks up a media size by its self-describing name
func MediaByName(name string) (MediaSize, bool) {
	for _, m := range mediaSizes {
		if m.Name == name {
			return m, true
		}
	}

	return MediaSize{}, false
}

// MediaNames returns the names of all known media sizes, in the
// table order
func MediaNames() []string {
	names := make([]string, len(mediaSizes))
	for i, m := range mediaSizes {
		names[i] = m.Name
	}

	return names
}

// Points returns the media size in PostScript points (1/72 inch),
// rounded down
func (m MediaSize) Points() (w, h int) {
	return m.Width * 72 / 2540, m.Height * 72 / 2540
}

// Pixels returns the media size in pixels at the given resolution,
// rounded down
func (m MediaSize) Pixels(dpi int) (w, h int) {
	return m.Width * dpi / 2540, m.Height * dpi / 2540
}
