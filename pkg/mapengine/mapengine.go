// Package mapengine is a headless slippy-map engine: a view over EPSG:3857, a
// tiled base layer, vector feature layers with icon styles, pixel hit testing
// and surface events. It does no drawing; a front end renders what it reports.
package mapengine

import (
	"errors"
	"reflect"

	"github.com/OCAP2/markermap/internal/geo"
	geom "github.com/peterstace/simplefeatures/geom"
)

var (
	// ErrIncomparableID is returned when a feature id cannot be used as a map key.
	ErrIncomparableID = errors.New("feature id is not comparable")
	// ErrInvalidViewport is returned for a map surface with no area.
	ErrInvalidViewport = errors.New("viewport must be at least 1x1 pixels")
	// ErrInvalidTileURL is returned for a tile URL template missing {z}, {x} or {y}.
	ErrInvalidTileURL = errors.New("tile url must contain {z}, {x} and {y}")
	// ErrInvalidCoordinates is returned for a coordinate that cannot be projected.
	ErrInvalidCoordinates = geo.ErrInvalidCoordinates
)

// Pixel is a position on the map surface, origin top-left, y pointing down.
type Pixel struct {
	X, Y float64
}

// FromLonLat projects a geographic coordinate into the engine's planar projection.
// NaN, infinite or polar latitudes yield ErrInvalidCoordinates.
func FromLonLat(longitude, latitude float64) (geom.Point, error) {
	return geo.Coords3857From4326(longitude, latitude)
}

// ToLonLat is the inverse of FromLonLat.
func ToLonLat(p geom.Point) (longitude, latitude float64, err error) {
	return geo.Coords4326From3857(p)
}

// IsComparable reports whether id can be used as a feature identity.
// nil is comparable. Structs and arrays holding a slice, map or func behind an
// interface field are not, since comparing or hashing them panics.
func IsComparable(id any) bool {
	if id == nil {
		return true
	}
	return reflect.ValueOf(id).Comparable()
}
