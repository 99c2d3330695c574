package types

// Bounds is the visible map rectangle in decimal degrees.
type Bounds struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

// Contains reports whether a coordinate falls inside the rectangle.
func (b Bounds) Contains(c Coordinates) bool {
	return c.Lat >= b.South && c.Lat <= b.North &&
		c.Lng >= b.West && c.Lng <= b.East
}

// ViewportState is what the map reports after a pan or zoom. The core
// only reads it; the map interaction layer owns it.
type ViewportState struct {
	Center Coordinates `json:"center"`
	Zoom   int         `json:"zoom"`
	Bounds Bounds      `json:"bounds"`
}
