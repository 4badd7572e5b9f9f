// Package markermap places icon markers on a map and routes single clicks on
// them to per-marker callbacks.
//
// A MarkerMap starts uninitialized. Initialize builds a map session: an OSM
// base layer and one marker layer, centered on a geographic coordinate.
// Marker identities are any comparable value. Lookups by identity are
// lenient: deleting an absent marker does nothing and moving an absent
// marker creates it.
package markermap

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/OCAP2/markermap/pkg/mapengine"
)

// ErrNotInitialized is returned by operations called before Initialize.
var ErrNotInitialized = errors.New("marker map is not initialized")

// Option configures a MarkerMap.
type Option func(*options)

type options struct {
	logger  *slog.Logger
	target  string
	tileURL string
	width   int
	height  int
	icon    mapengine.Icon
}

// WithLogger sets the logger for the map and its engine.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithTarget names the surface the map is attached to.
func WithTarget(target string) Option {
	return func(o *options) {
		o.target = target
	}
}

// WithTileURL sets the base layer tile URL template.
func WithTileURL(url string) Option {
	return func(o *options) {
		o.tileURL = url
	}
}

// WithViewport sets the surface size in pixels.
func WithViewport(width, height int) Option {
	return func(o *options) {
		o.width = width
		o.height = height
	}
}

// WithIcon sets the style every marker is drawn with.
func WithIcon(icon mapengine.Icon) Option {
	return func(o *options) {
		o.icon = icon
	}
}

// session is everything Initialize creates.
type session struct {
	m       *mapengine.Map
	base    *mapengine.TileLayer
	markers *mapengine.VectorLayer
	clicks  *ClickRegistry
}

// MarkerMap is a facade over one map session and its marker layer.
type MarkerMap struct {
	opts options
	log  *slog.Logger

	mu sync.RWMutex
	s  *session

	// log outputs owned by the map, see NewFromConfig
	closer io.Closer
}

// New creates an uninitialized MarkerMap.
func New(opts ...Option) *MarkerMap {
	o := options{
		target: "map",
		width:  800,
		height: 600,
		icon:   mapengine.DefaultIcon(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return &MarkerMap{
		opts: o,
		log:  o.logger.With("component", "markermap", "target", o.target),
	}
}

// Initialize creates the map session centered on longitude/latitude at zoom.
// Calling it again replaces the session; markers and click callbacks of the
// previous session are dropped.
func (mm *MarkerMap) Initialize(longitude, latitude, zoom float64) error {
	center, err := mapengine.FromLonLat(longitude, latitude)
	if err != nil {
		return fmt.Errorf("centering map: %w", err)
	}

	tiles, err := mapengine.NewOSMSource(mm.opts.tileURL)
	if err != nil {
		return fmt.Errorf("creating base layer: %w", err)
	}

	s := &session{
		base:    mapengine.NewTileLayer(tiles),
		markers: mapengine.NewVectorLayer(mapengine.NewVectorSource()),
		clicks:  NewClickRegistry(),
	}

	s.m, err = mapengine.NewMap(mapengine.MapOptions{
		Target: mm.opts.target,
		Layers: []mapengine.Layer{s.base, s.markers},
		View:   mapengine.NewView(center, zoom),
		Width:  mm.opts.width,
		Height: mm.opts.height,
		Logger: mm.opts.logger,
	})
	if err != nil {
		return fmt.Errorf("creating map: %w", err)
	}

	s.m.On(mapengine.EventSingleClick, func(e mapengine.MapEvent) {
		mm.markersOnClick(s, e.Pixel)
	})

	mm.mu.Lock()
	mm.s = s
	mm.mu.Unlock()

	ll := s.m.View().GeoCenter()
	mm.log.Info("Map initialized",
		"longitude", ll.Lng.Degrees(),
		"latitude", ll.Lat.Degrees(),
		"zoom", s.m.View().Zoom())
	return nil
}

func (mm *MarkerMap) current() *session {
	mm.mu.RLock()
	defer mm.mu.RUnlock()
	return mm.s
}

// Initialized reports whether Initialize has succeeded at least once.
func (mm *MarkerMap) Initialized() bool {
	return mm.current() != nil
}

// Map returns the engine map of the current session, nil before Initialize.
func (mm *MarkerMap) Map() *mapengine.Map {
	s := mm.current()
	if s == nil {
		return nil
	}
	return s.m
}

// markersOnClick invokes the callback of every marker drawn at px.
func (mm *MarkerMap) markersOnClick(s *session, px mapengine.Pixel) {
	var hits []any
	s.m.ForEachFeatureAtPixel(px, func(f *mapengine.Feature, layer *mapengine.VectorLayer) bool {
		if layer == s.markers {
			hits = append(hits, f.ID())
		}
		return false
	})

	for _, id := range hits {
		fn, ok := s.clicks.Get(id)
		if !ok {
			continue
		}
		mm.log.Debug("Marker clicked", "id", id, "x", px.X, "y", px.Y)
		fn(ClickEvent{ID: id})
	}
}

// AddMarker places a marker at longitude/latitude and returns its identity.
// A nil id lets the engine assign one. Identities are not checked for
// uniqueness; lookups by a shared identity find the earliest marker.
func (mm *MarkerMap) AddMarker(id any, longitude, latitude float64) (any, error) {
	s := mm.current()
	if s == nil {
		return nil, ErrNotInitialized
	}
	return mm.addMarker(s, id, longitude, latitude)
}

func (mm *MarkerMap) addMarker(s *session, id any, longitude, latitude float64) (any, error) {
	point, err := mapengine.FromLonLat(longitude, latitude)
	if err != nil {
		return nil, fmt.Errorf("adding marker: %w", err)
	}
	f := mapengine.NewFeature(point, mapengine.Style{Icon: mm.opts.icon})
	if id != nil {
		if err := f.SetID(id); err != nil {
			return nil, fmt.Errorf("adding marker: %w", err)
		}
	}
	s.markers.Source().AddFeature(f)

	mm.log.Debug("Marker added", "id", f.ID(), "longitude", longitude, "latitude", latitude)
	return f.ID(), nil
}

// DeleteMarkerByID removes the marker with the given identity and its click
// callback. Absent identities are ignored.
func (mm *MarkerMap) DeleteMarkerByID(id any) {
	s := mm.current()
	if s == nil {
		return
	}
	if f, ok := s.markers.Source().FeatureByID(id); ok {
		s.markers.Source().RemoveFeature(f)
		mm.log.Debug("Marker deleted", "id", id)
	}
	s.clicks.Delete(id)
}

// MoveMarker moves the marker with the given identity, keeping its style.
// If there is no such marker it is added, as AddMarker would.
func (mm *MarkerMap) MoveMarker(id any, longitude, latitude float64) error {
	s := mm.current()
	if s == nil {
		return ErrNotInitialized
	}
	if f, ok := s.markers.Source().FeatureByID(id); ok {
		point, err := mapengine.FromLonLat(longitude, latitude)
		if err != nil {
			return fmt.Errorf("moving marker: %w", err)
		}
		f.SetGeometry(point)
		mm.log.Debug("Marker moved", "id", id, "longitude", longitude, "latitude", latitude)
		return nil
	}
	_, err := mm.addMarker(s, id, longitude, latitude)
	return err
}

// RemoveAllMarkers clears the marker layer and every click callback.
func (mm *MarkerMap) RemoveAllMarkers() {
	s := mm.current()
	if s == nil {
		return
	}
	s.markers.Source().Clear()
	s.clicks.Reset()
	mm.log.Debug("All markers removed")
}

// MarkerCount returns the number of markers on the map.
func (mm *MarkerMap) MarkerCount() int {
	s := mm.current()
	if s == nil {
		return 0
	}
	return s.markers.Source().Len()
}

// OnMarkerSingleClick sets the callback for clicks on the marker with the
// given identity, replacing any previous one. The marker need not exist yet.
// A nil fn removes the callback.
func (mm *MarkerMap) OnMarkerSingleClick(id any, fn ClickFunc) {
	s := mm.current()
	if s == nil {
		return
	}
	if fn == nil {
		s.clicks.Delete(id)
		return
	}
	s.clicks.Set(id, fn)
}

// MarkerPixel returns the surface pixel at the middle of a marker's icon.
func (mm *MarkerMap) MarkerPixel(id any) (mapengine.Pixel, bool) {
	s := mm.current()
	if s == nil {
		return mapengine.Pixel{}, false
	}
	f, ok := s.markers.Source().FeatureByID(id)
	if !ok {
		return mapengine.Pixel{}, false
	}
	p, ok := s.m.FeaturePixel(f)
	if !ok {
		return mapengine.Pixel{}, false
	}
	icon := f.Style().Icon
	dx, dy := icon.AnchorOffset()
	return mapengine.Pixel{
		X: p.X - dx + icon.Size[0]/2,
		Y: p.Y - dy + icon.Size[1]/2,
	}, true
}

// Close releases log outputs opened by NewFromConfig. The map itself holds no
// resources.
func (mm *MarkerMap) Close() error {
	if mm.closer == nil {
		return nil
	}
	err := mm.closer.Close()
	mm.closer = nil
	return err
}
