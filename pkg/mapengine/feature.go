package mapengine

import (
	"sync"

	geom "github.com/peterstace/simplefeatures/geom"
)

// Feature is a point geometry with an identity and a style.
type Feature struct {
	mu       sync.RWMutex
	id       any
	geometry geom.Point
	style    Style
}

// NewFeature creates a feature without identity; a VectorSource assigns one on add.
func NewFeature(geometry geom.Point, style Style) *Feature {
	return &Feature{geometry: geometry, style: style}
}

func (f *Feature) ID() any {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.id
}

// SetID sets the identity. Identities must be comparable.
func (f *Feature) SetID(id any) error {
	if !IsComparable(id) {
		return ErrIncomparableID
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.id = id
	return nil
}

func (f *Feature) Geometry() geom.Point {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.geometry
}

// SetGeometry replaces the geometry in place; identity and style are kept.
func (f *Feature) SetGeometry(g geom.Point) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.geometry = g
}

func (f *Feature) Style() Style {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.style
}

func (f *Feature) SetStyle(s Style) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.style = s
}
