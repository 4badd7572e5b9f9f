package mapengine

import (
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/OCAP2/markermap/internal/dispatcher"
	"github.com/OCAP2/markermap/internal/geo"
	"github.com/paulmach/orb/maptile"
	geom "github.com/peterstace/simplefeatures/geom"
)

// EventSingleClick fires for a click on the map surface.
const EventSingleClick = "singleclick"

// MapEvent is delivered to handlers registered with Map.On.
type MapEvent struct {
	Type       string
	Pixel      Pixel
	Coordinate geom.XY
}

// MapOptions configures NewMap.
type MapOptions struct {
	// Target names the surface the map is attached to
	Target string
	Layers []Layer
	View   *View
	Width  int
	Height int
	Logger *slog.Logger
}

// Map ties a view, a stack of layers and a surface of Width x Height pixels together.
type Map struct {
	target string
	layers []Layer
	view   *View
	width  int
	height int
	events *dispatcher.Dispatcher
	log    *slog.Logger
}

// NewMap creates a map. A nil View is centered on the projection origin at zoom 0.
func NewMap(opts MapOptions) (*Map, error) {
	if opts.Width < 1 || opts.Height < 1 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidViewport, opts.Width, opts.Height)
	}
	if opts.View == nil {
		opts.View = NewView(geom.Point{}, 0)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	events, err := dispatcher.New(opts.Logger)
	if err != nil {
		return nil, fmt.Errorf("creating event dispatcher: %w", err)
	}

	return &Map{
		target: opts.Target,
		layers: slices.Clone(opts.Layers),
		view:   opts.View,
		width:  opts.Width,
		height: opts.Height,
		events: events,
		log:    opts.Logger,
	}, nil
}

func (m *Map) Target() string {
	return m.target
}

// Layers returns the layers bottom to top.
func (m *Map) Layers() []Layer {
	return slices.Clone(m.layers)
}

func (m *Map) View() *View {
	return m.view
}

// Size returns the surface size in pixels.
func (m *Map) Size() (width, height int) {
	return m.width, m.height
}

// PixelFromCoordinate maps a planar coordinate onto the surface.
func (m *Map) PixelFromCoordinate(c geom.XY) Pixel {
	center := m.view.Center()
	res := m.view.Resolution()
	return Pixel{
		X: (c.X-center.X)/res + float64(m.width)/2,
		Y: (center.Y-c.Y)/res + float64(m.height)/2,
	}
}

// CoordinateFromPixel is the inverse of PixelFromCoordinate.
func (m *Map) CoordinateFromPixel(px Pixel) geom.XY {
	center := m.view.Center()
	res := m.view.Resolution()
	return geom.XY{
		X: center.X + (px.X-float64(m.width)/2)*res,
		Y: center.Y - (px.Y-float64(m.height)/2)*res,
	}
}

// On registers a handler for a surface event type and returns a key for Un.
func (m *Map) On(eventType string, handler func(MapEvent)) uint64 {
	return m.events.Register(eventType, func(e dispatcher.Event) error {
		if me, ok := e.Payload.(MapEvent); ok {
			handler(me)
		}
		return nil
	}, dispatcher.Logged())
}

// Un removes a handler registered with On.
func (m *Map) Un(key uint64) {
	m.events.Unregister(key)
}

// SingleClick delivers a single click at px to the map's handlers, as the
// surface does when the user clicks.
func (m *Map) SingleClick(px Pixel) error {
	return m.events.Dispatch(dispatcher.Event{
		Type: EventSingleClick,
		Payload: MapEvent{
			Type:       EventSingleClick,
			Pixel:      px,
			Coordinate: m.CoordinateFromPixel(px),
		},
	})
}

// FeaturePixel returns the surface pixel of a feature's point.
func (m *Map) FeaturePixel(f *Feature) (Pixel, bool) {
	c, ok := f.Geometry().Coordinates()
	if !ok {
		return Pixel{}, false
	}
	return m.PixelFromCoordinate(c.XY), true
}

// IconBox returns the surface rectangle covered by a feature's icon.
func (m *Map) IconBox(f *Feature) (geom.Envelope, bool) {
	p, ok := m.FeaturePixel(f)
	if !ok {
		return geom.Envelope{}, false
	}
	icon := f.Style().Icon
	dx, dy := icon.AnchorOffset()
	topLeft := geom.XY{X: p.X - dx, Y: p.Y - dy}
	bottomRight := geom.XY{X: topLeft.X + icon.Size[0], Y: topLeft.Y + icon.Size[1]}
	box, err := geom.NewEnvelope([]geom.XY{topLeft, bottomRight})
	if err != nil {
		return geom.Envelope{}, false
	}
	return box, true
}

// ForEachFeatureAtPixel calls fn for every feature drawn at px, top-most first:
// upper layers before lower ones, later features before earlier ones.
// Fully transparent icons are not hit. Returning true from fn stops the walk.
func (m *Map) ForEachFeatureAtPixel(px Pixel, fn func(f *Feature, layer *VectorLayer) bool) {
	at := geom.XY{X: px.X, Y: px.Y}
	for i := len(m.layers) - 1; i >= 0; i-- {
		vl, ok := m.layers[i].(*VectorLayer)
		if !ok {
			continue
		}
		features := vl.Source().Features()
		for j := len(features) - 1; j >= 0; j-- {
			f := features[j]
			if f.Style().Icon.Opacity <= 0 {
				continue
			}
			box, ok := m.IconBox(f)
			if !ok || !box.Contains(at) {
				continue
			}
			if fn(f, vl) {
				return
			}
		}
	}
}

// VisibleTiles lists the base layer tiles covering the surface at the view's
// zoom, rounded and capped at the source's max zoom. It is empty without a tile layer.
func (m *Map) VisibleTiles() []maptile.Tile {
	var source *OSMSource
	for _, l := range m.layers {
		if tl, ok := l.(*TileLayer); ok {
			source = tl.Source()
			break
		}
	}
	if source == nil {
		return nil
	}

	z := int(math.Round(m.view.Zoom()))
	z = max(0, min(z, source.MaxZoom()))
	n := 1 << z
	size := 2 * geo.HalfWorld3857 / float64(n)
	index := func(v float64) int {
		return max(0, min(int(math.Floor(v/size)), n-1))
	}

	topLeft := m.CoordinateFromPixel(Pixel{})
	bottomRight := m.CoordinateFromPixel(Pixel{X: float64(m.width), Y: float64(m.height)})
	minX, maxX := index(topLeft.X+geo.HalfWorld3857), index(bottomRight.X+geo.HalfWorld3857)
	minY, maxY := index(geo.HalfWorld3857-topLeft.Y), index(geo.HalfWorld3857-bottomRight.Y)

	tiles := make([]maptile.Tile, 0, (maxX-minX+1)*(maxY-minY+1))
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			tiles = append(tiles, maptile.Tile{X: uint32(x), Y: uint32(y), Z: maptile.Zoom(z)})
		}
	}
	return tiles
}
