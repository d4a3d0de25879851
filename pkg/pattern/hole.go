// Package pattern generates the holes a CNC router must drill for one
// part and one piece of hardware. Every generator works in the part-local
// frame (front-bottom-left reference); the dispatcher maps each hole into
// the machine frame of the part's origin corner before returning, so no
// caller ever sees part-local coordinates.
package pattern

import "github.com/google/uuid"

// Feature tags carried in hole metadata.
const (
	FeatureHingeCup        = "hinge_cup"
	FeatureDrawerFrontFix  = "drawer_front_fix"
	FeatureDrawerRearFix   = "drawer_rear_fix"
	FeatureSystem32Shelf   = "system32_shelf"
	FeatureDowelJoint      = "dowel_joint"
	FeatureBackPanelDowel  = "back_panel_dowel"
	FeatureBackNailerDowel = "back_nailer_dowel"
)

// HoleMeta records why a hole exists.
type HoleMeta struct {
	FeatureType string `json:"feature_type"`
	HardwareID  string `json:"hardware_id"`
}

// Hole is a single drilling in machine coordinates (mm). The id is an
// opaque label regenerated on every computation.
type Hole struct {
	ID       string   `json:"id"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Diameter float64  `json:"diameter"`
	Depth    float64  `json:"depth"`
	Meta     HoleMeta `json:"meta"`
}

func newHole(x, y, dia, depth float64, feature, hardwareID string) Hole {
	return Hole{
		ID:       uuid.NewString(),
		X:        x,
		Y:        y,
		Diameter: dia,
		Depth:    depth,
		Meta:     HoleMeta{FeatureType: feature, HardwareID: hardwareID},
	}
}
