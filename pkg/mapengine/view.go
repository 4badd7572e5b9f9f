package mapengine

import (
	"math"
	"sync"

	"github.com/OCAP2/markermap/internal/geo"
	"github.com/golang/geo/s2"
	geom "github.com/peterstace/simplefeatures/geom"
)

// MaxResolution is the size of one pixel in metres at zoom 0 with 256px tiles.
const MaxResolution = 2 * geo.HalfWorld3857 / 256

// View is the center and zoom of a map, in the engine's planar projection.
type View struct {
	mu     sync.RWMutex
	center geom.XY
	zoom   float64
}

// NewView creates a view. An empty center point means the projection origin.
func NewView(center geom.Point, zoom float64) *View {
	v := &View{zoom: zoom}
	if c, ok := center.Coordinates(); ok {
		v.center = c.XY
	}
	return v
}

func (v *View) Center() geom.XY {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.center
}

func (v *View) SetCenter(center geom.XY) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.center = center
}

func (v *View) Zoom() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.zoom
}

func (v *View) SetZoom(zoom float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.zoom = zoom
}

// Resolution is the number of metres covered by one pixel at the current zoom.
func (v *View) Resolution() float64 {
	return MaxResolution / math.Pow(2, v.Zoom())
}

// GeoCenter returns the center as a geographic coordinate.
func (v *View) GeoCenter() s2.LatLng {
	lon, lat := geo.LonLatFromXY(v.Center())
	return s2.LatLngFromDegrees(lat, lon)
}
