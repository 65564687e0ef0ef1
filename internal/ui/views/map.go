package views

import (
	"fmt"
	"math"
	"strings"

	"moviespot/internal/domain"
)

// Region spans used when centering the map on a fix
const (
	LatitudeDelta  = 0.0922
	LongitudeDelta = 0.0421
)

const (
	markerGlyph = "●"
	gridGlyph   = "·"
)

// Region is the rectangle of the earth shown by the map
type Region struct {
	Latitude       float64
	Longitude      float64
	LatitudeDelta  float64
	LongitudeDelta float64
}

// NewRegion centers a region on c
func NewRegion(c domain.Coordinates) Region {
	return Region{
		Latitude:       c.Latitude,
		Longitude:      c.Longitude,
		LatitudeDelta:  LatitudeDelta,
		LongitudeDelta: LongitudeDelta,
	}
}

// Project maps a point onto a cols x rows grid. Row 0 is the northern edge.
func (r Region) Project(lat, lon float64, cols, rows int) (col, row int, ok bool) {
	if cols <= 0 || rows <= 0 {
		return 0, 0, false
	}
	west := r.Longitude - r.LongitudeDelta/2
	north := r.Latitude + r.LatitudeDelta/2

	fx := (lon - west) / r.LongitudeDelta
	fy := (north - lat) / r.LatitudeDelta
	if fx < 0 || fx > 1 || fy < 0 || fy > 1 {
		return 0, 0, false
	}
	col = int(math.Round(fx * float64(cols-1)))
	row = int(math.Round(fy * float64(rows-1)))
	return col, row, true
}

// OpenStreetMapURL links to the same point on openstreetmap.org
func OpenStreetMapURL(c domain.Coordinates) string {
	return fmt.Sprintf("https://www.openstreetmap.org/?mlat=%.6f&mlon=%.6f#map=14/%.6f/%.6f",
		c.Latitude, c.Longitude, c.Latitude, c.Longitude)
}

// MapRenderer draws the location card map
type MapRenderer struct {
	styles *Styles
}

// NewMapRenderer creates a new map renderer
func NewMapRenderer(styles *Styles) *MapRenderer {
	return &MapRenderer{styles: styles}
}

// RenderGrid returns the bare grid with one marker at the fix
func (mr *MapRenderer) RenderGrid(c domain.Coordinates, cols, rows int) string {
	region := NewRegion(c)
	mcol, mrow, ok := region.Project(c.Latitude, c.Longitude, cols, rows)

	var b strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			switch {
			case ok && row == mrow && col == mcol:
				b.WriteString(mr.styles.Marker.Render(markerGlyph))
			case row%4 == 0 || col%8 == 0:
				b.WriteString(mr.styles.MapGrid.Render(gridGlyph))
			default:
				b.WriteByte(' ')
			}
		}
		if row < rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Render draws the bordered map with the coordinates and a link under it
func (mr *MapRenderer) Render(c domain.Coordinates, cols, rows int) string {
	var b strings.Builder
	b.WriteString(mr.styles.MapBox.Render(mr.RenderGrid(c, cols, rows)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %.6f  %s %.6f",
		mr.styles.Label.Render("Latitude:"), c.Latitude,
		mr.styles.Label.Render("Longitude:"), c.Longitude))
	if c.Source != "" {
		b.WriteString(mr.styles.Dim.Render(fmt.Sprintf("  (%s)", c.Source)))
	}
	b.WriteString("\n")
	b.WriteString(mr.styles.Link.Render(OpenStreetMapURL(c)))
	return b.String()
}
