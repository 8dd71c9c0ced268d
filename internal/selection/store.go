package selection

import (
	"fmt"
	"sync"

	"github.com/Rorical/RoriSteer/internal/apperr"
	"github.com/Rorical/RoriSteer/internal/models"
)

// Store holds the features chosen for steering in display order. Entries are
// keyed by (layer, index); descriptions may repeat across entries.
type Store struct {
	mu       sync.RWMutex
	features []models.SelectedFeature
}

func NewStore() *Store {
	return &Store{
		features: make([]models.SelectedFeature, 0),
	}
}

// Add appends the explanation with the given strength. It returns false and
// leaves the store untouched if the key is already selected.
func (s *Store) Add(e models.Explanation, initialStrength int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(e.Key()) >= 0 {
		return false
	}

	s.features = append(s.features, models.SelectedFeature{
		Description: e.Description,
		Layer:       e.Layer,
		Index:       e.Index,
		Strength:    models.ClampStrength(initialStrength),
	})
	return true
}

// SetStrength clamps value to [-100, 100] and updates only the matching entry.
func (s *Store) SetStrength(key models.FeatureKey, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(key)
	if i < 0 {
		return fmt.Errorf("set strength %s: %w", key, apperr.ErrNotFound)
	}
	s.features[i].Strength = models.ClampStrength(value)
	return nil
}

// AdjustStrength moves the stored strength by delta, clamped, and returns the
// new value.
func (s *Store) AdjustStrength(key models.FeatureKey, delta int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(key)
	if i < 0 {
		return 0, fmt.Errorf("adjust strength %s: %w", key, apperr.ErrNotFound)
	}
	s.features[i].Strength = models.ClampStrength(s.features[i].Strength + delta)
	return s.features[i].Strength, nil
}

// Remove deletes the matching entry, keeping the order of the rest. Removing
// an absent key is a no-op.
func (s *Store) Remove(key models.FeatureKey) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]models.SelectedFeature, 0, len(s.features))
	for _, f := range s.features {
		if f.Key() != key {
			kept = append(kept, f)
		}
	}
	removed := len(kept) != len(s.features)
	s.features = kept
	return removed
}

// Get returns the entry for key.
func (s *Store) Get(key models.FeatureKey) (models.SelectedFeature, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(key)
	if i < 0 {
		return models.SelectedFeature{}, false
	}
	return s.features[i], true
}

// List returns a snapshot; later mutations do not show through it.
func (s *Store) List() []models.SelectedFeature {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.SelectedFeature, len(s.features))
	copy(result, s.features)
	return result
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.features)
}

func (s *Store) indexOf(key models.FeatureKey) int {
	for i, f := range s.features {
		if f.Key() == key {
			return i
		}
	}
	return -1
}
