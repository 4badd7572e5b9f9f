package mapengine

import (
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// VectorSource holds the features of a vector layer in insertion order.
// Several features may share an identity; lookups by id return the first one.
type VectorSource struct {
	mu       sync.RWMutex
	features []*Feature
}

func NewVectorSource(features ...*Feature) *VectorSource {
	return &VectorSource{features: slices.Clone(features)}
}

// AddFeature appends f. A feature without identity is given a random UUID string.
func (s *VectorSource) AddFeature(f *Feature) {
	if f.ID() == nil {
		// nil is always comparable
		_ = f.SetID(uuid.NewString())
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.features = append(s.features, f)
}

// RemoveFeature removes f if it belongs to the source.
func (s *VectorSource) RemoveFeature(f *Feature) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := lo.IndexOf(s.features, f)
	if i < 0 {
		return false
	}
	s.features = slices.Delete(s.features, i, i+1)
	return true
}

// FeatureByID returns the first feature with the given identity.
func (s *VectorSource) FeatureByID(id any) (*Feature, bool) {
	if id == nil || !IsComparable(id) {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lo.Find(s.features, func(f *Feature) bool {
		return f.ID() == id
	})
}

// Features returns a snapshot of the features in insertion order.
func (s *VectorSource) Features() []*Feature {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.features)
}

func (s *VectorSource) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.features)
}

// Clear removes every feature.
func (s *VectorSource) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.features = nil
}
