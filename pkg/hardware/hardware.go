// Package hardware is the catalog of drilling hardware: concealed hinges,
// drawer slides, shelf-pin rows and dowel joints. Each spec names the
// pattern used to drill for it and carries that pattern's parameters.
package hardware

import "encoding/json"

// Pattern is the geometric strategy a piece of hardware is drilled with.
type Pattern string

const (
	PatternDoorHinge       Pattern = "door_hinge"
	PatternSide32Row       Pattern = "side_32_row"
	PatternFull32Row       Pattern = "full_32_row"
	PatternSideDowelJoint  Pattern = "side_dowel_joint"
	PatternBackPanelNailer Pattern = "back_panel_nailer"
)

// Category groups specs into the four sub-catalogs.
type Category string

const (
	CategoryHinge       Category = "hinge"
	CategoryDrawerSlide Category = "drawer_slide"
	CategoryShelfRow    Category = "shelf_row"
	CategoryDowel       Category = "dowel"
)

// Params is the sealed set of pattern-specific parameter structs. The
// concrete type decides the pattern.
type Params interface {
	Pattern() Pattern
	params()
}

// HingeParams describes a concealed hinge cup.
type HingeParams struct {
	CupDiameter float64 `json:"cup_diameter_mm"`
	CupDepth    float64 `json:"cup_depth_mm"`
	CupFromEdge float64 `json:"cup_from_edge_mm"` // door edge to cup rim
}

func (HingeParams) Pattern() Pattern { return PatternDoorHinge }
func (HingeParams) params()          {}

// SlideParams describes the fixing holes of a drawer runner on a side panel.
type SlideParams struct {
	RefRowFromFront float64 `json:"ref_row_from_front_mm"`
	RearHoleOffset  float64 `json:"rear_hole_offset_mm"` // measured from the front fixing hole
}

func (SlideParams) Pattern() Pattern { return PatternSide32Row }
func (SlideParams) params()          {}

// ShelfRowParams describes a full 32mm shelf-pin line.
type ShelfRowParams struct {
	FirstHoleOffset  float64 `json:"first_hole_offset_mm"`
	DistanceFromEdge float64 `json:"distance_from_edge_mm"`
}

func (ShelfRowParams) Pattern() Pattern { return PatternFull32Row }
func (ShelfRowParams) params()          {}

// DowelParams describes a four-dowel corner joint.
type DowelParams struct {
	Diameter   float64 `json:"dowel_diameter_mm"`
	Depth      float64 `json:"dowel_depth_mm"`
	EdgeOffset float64 `json:"edge_offset_mm"`
	EndOffset  float64 `json:"end_offset_mm"`
}

func (DowelParams) Pattern() Pattern { return PatternSideDowelJoint }
func (DowelParams) params()          {}

// BackNailerParams describes the dowel lines for a back panel and a nailer
// strip, both measured from the rear edge (width - offset).
type BackNailerParams struct {
	Diameter     float64 `json:"dowel_diameter_mm"`
	Depth        float64 `json:"dowel_depth_mm"`
	BackOffset   float64 `json:"back_offset_mm"`
	NailerOffset float64 `json:"nailer_offset_mm"`
	EndOffset    float64 `json:"end_offset_mm"`
}

func (BackNailerParams) Pattern() Pattern { return PatternBackPanelNailer }
func (BackNailerParams) params()          {}

// Spec is one catalog entry.
type Spec struct {
	ID       string
	Label    string
	Category Category
	Params   Params
}

// Pattern returns the drilling pattern of s, or "" when it has no
// parameters.
func (s Spec) Pattern() Pattern {
	if s.Params == nil {
		return ""
	}
	return s.Params.Pattern()
}

// MetadataJSON renders the pattern parameters as a JSON object.
func (s Spec) MetadataJSON() string {
	if s.Params == nil {
		return "{}"
	}
	b, err := json.Marshal(s.Params)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// MarshalJSON flattens s for API consumers.
func (s Spec) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID       string   `json:"id"`
		Label    string   `json:"label"`
		Category Category `json:"category"`
		Pattern  Pattern  `json:"pattern"`
		Params   Params   `json:"params"`
	}{s.ID, s.Label, s.Category, s.Pattern(), s.Params})
}
