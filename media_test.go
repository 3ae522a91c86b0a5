/* ipp-print - IPP print client with PWG Raster payload generation
 *
 * Media size table test
 */

package main

import (
	"testing"
)

var testDataMediaPoints = []struct {
	name string
	w, h int
}{
	{"iso_a4_210x297mm", 595, 841},
	{"na_letter_8.5x11in", 612, 792},
	{"na_legal_8.5x14in", 612, 1008},
}

var testDataMediaPixels = []struct {
	name string
	dpi  int
	w, h int
}{
	{"iso_a4_210x297mm", 300, 2480, 3507},
	{"na_letter_8.5x11in", 300, 2550, 3300},
	{"na_letter_8.5x11in", 600, 5100, 6600},
}

// Test lookup by the self-describing name
func TestMediaByName(t *testing.T) {
	for _, name := range MediaNames() {
		m, ok := MediaByName(name)
		if !ok {
			t.Errorf("MediaByName(%q): not found", name)
			continue
		}

		if m.Name != name {
			t.Errorf("MediaByName(%q): got %q", name, m.Name)
		}

		if m.Width <= 0 || m.Height <= 0 {
			t.Errorf("MediaByName(%q): bad dimensions %dx%d",
				name, m.Width, m.Height)
		}
	}

	if _, ok := MediaByName("iso_a0_841x1189mm"); ok {
		t.Errorf("MediaByName: found a size that is not in the table")
	}
}

// Test conversion into PostScript points
func TestMediaPoints(t *testing.T) {
	for _, data := range testDataMediaPoints {
		m, ok := MediaByName(data.name)
		if !ok {
			t.Fatalf("MediaByName(%q): not found", data.name)
		}

		w, h := m.Points()
		if w != data.w || h != data.h {
			t.Errorf("%s: Points: expected %dx%d, got %dx%d",
				data.name, data.w, data.h, w, h)
		}
	}
}

// Test conversion into pixels
func TestMediaPixels(t *testing.T) {
	for _, data := range testDataMediaPixels {
		m, ok := MediaByName(data.name)
		if !ok {
			t.Fatalf("MediaByName(%q): not found", data.name)
		}

		w, h := m.Pixels(data.dpi)
		if w != data.w || h != data.h {
			t.Errorf("%s at %d dpi: expected %dx%d, got %dx%d",
				data.name, data.dpi, data.w, data.h, w, h)
		}
	}
}
