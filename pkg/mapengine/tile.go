package mapengine

import (
	"strconv"
	"strings"

	"github.com/OCAP2/markermap/internal/config"
	"github.com/paulmach/orb/maptile"
)

// DefaultMaxZoom is the deepest zoom level served by the public OSM tile servers.
const DefaultMaxZoom = 19

// OSMSource is an XYZ tile source with an OpenStreetMap style URL template.
type OSMSource struct {
	url     string
	maxZoom int
}

// NewOSMSource creates a tile source. An empty url selects the public OSM servers.
func NewOSMSource(url string) (*OSMSource, error) {
	if url == "" {
		url = config.DefaultTileURL
	}
	for _, p := range []string{"{z}", "{x}", "{y}"} {
		if !strings.Contains(url, p) {
			return nil, ErrInvalidTileURL
		}
	}
	return &OSMSource{url: url, maxZoom: DefaultMaxZoom}, nil
}

func (s *OSMSource) URL() string {
	return s.url
}

func (s *OSMSource) MaxZoom() int {
	return s.maxZoom
}

// TileURL fills the template for one tile.
func (s *OSMSource) TileURL(t maptile.Tile) string {
	return strings.NewReplacer(
		"{z}", strconv.FormatUint(uint64(t.Z), 10),
		"{x}", strconv.FormatUint(uint64(t.X), 10),
		"{y}", strconv.FormatUint(uint64(t.Y), 10),
	).Replace(s.url)
}
