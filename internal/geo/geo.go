package geo

import (
	"errors"
	"fmt"
	"math"

	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/wroge/wgs84"
)

// Geographic input is always EPSG:4326 (longitude, latitude in degrees).
// Everything the map engine stores or hit-tests is EPSG:3857 (spherical mercator, metres).

// ErrInvalidCoordinates is returned when the coordinates are invalid
var ErrInvalidCoordinates = errors.New("invalid coordinates provided")

// HalfWorld3857 is half the width of the EPSG:3857 world in metres.
const HalfWorld3857 = 20037508.342789244

var (
	to3857   = wgs84.EPSG().Transform(4326, 3857)
	from3857 = wgs84.EPSG().Transform(3857, 4326)
)

// Coords3857From4326 creates a planar point from a longitude and latitude.
// Non-finite input yields ErrInvalidCoordinates.
func Coords3857From4326(longitude, latitude float64) (geom.Point, error) {
	if !finite(longitude) || !finite(latitude) {
		return geom.Point{}, ErrInvalidCoordinates
	}
	x, y, _ := to3857(longitude, latitude, 0)
	point, err := geom.NewPoint(
		geom.Coordinates{
			XY: geom.XY{X: x, Y: y},
		},
	)
	if err != nil {
		return geom.Point{}, fmt.Errorf("%w: %v", ErrInvalidCoordinates, err)
	}
	return point, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Coords4326From3857 returns the longitude and latitude of a planar point
func Coords4326From3857(point geom.Point) (longitude, latitude float64, err error) {
	coords, ok := point.Coordinates()
	if !ok {
		return 0, 0, ErrInvalidCoordinates
	}
	longitude, latitude = LonLatFromXY(coords.XY)
	return longitude, latitude, nil
}

// LonLatFromXY converts a raw EPSG:3857 pair to longitude and latitude.
func LonLatFromXY(xy geom.XY) (longitude, latitude float64) {
	longitude, latitude, _ = from3857(xy.X, xy.Y, 0)
	return longitude, latitude
}
