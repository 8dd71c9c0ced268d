package models

import "fmt"

const (
	MinStrength = -100
	MaxStrength = 100
)

// Explanation is a catalog search result.
type Explanation struct {
	Description string
	Layer       string
	Index       int
}

// FeatureKey identifies a feature. Descriptions are not unique, so the key
// is always (layer, index).
type FeatureKey struct {
	Layer string
	Index int
}

func (k FeatureKey) String() string {
	return fmt.Sprintf("%s/%d", k.Layer, k.Index)
}

func (e Explanation) Key() FeatureKey {
	return FeatureKey{Layer: e.Layer, Index: e.Index}
}

// SelectedFeature is an explanation the user picked, with its steering strength.
type SelectedFeature struct {
	Description string
	Layer       string
	Index       int
	Strength    int
}

func (f SelectedFeature) Key() FeatureKey {
	return FeatureKey{Layer: f.Layer, Index: f.Index}
}

// ClampStrength bounds a strength to [MinStrength, MaxStrength].
func ClampStrength(v int) int {
	if v < MinStrength {
		return MinStrength
	}
	if v > MaxStrength {
		return MaxStrength
	}
	return v
}
