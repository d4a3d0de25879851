// Package location flattens generated holes into drilling location
// records, the canonical rounded rows every exporter consumes.
package location

import (
	"math"

	"github.com/chazu/cabdrill/pkg/part"
	"github.com/chazu/cabdrill/pkg/pattern"
)

// Record is one drilling location. Field names follow the
// drilling_locations table.
type Record struct {
	PartID      string      `json:"part_id"`
	Seq         int         `json:"seq"`
	X           float64     `json:"x_mm"`
	Y           float64     `json:"y_mm"`
	Diameter    float64     `json:"diameter_mm"`
	Depth       float64     `json:"depth_mm"`
	HardwareID  string      `json:"hardware_id"`
	FeatureType string      `json:"feature_type"`
	Face        string      `json:"face"`
	Origin      part.Origin `json:"origin"`
}

// Round3 rounds v to three decimal places.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// Normalize converts holes into records for p. Sequence numbers are
// 1-based in hole order. An empty hole list or a part without a type
// yields an empty slice. holes is not modified.
func Normalize(p part.Descriptor, holes []pattern.Hole) []Record {
	if len(holes) == 0 || p.Type == "" {
		return []Record{}
	}

	partID := p.ID()
	face := p.FaceOrDefault()
	origin := p.Origin.OrDefault()

	records := make([]Record, len(holes))
	for i, h := range holes {
		records[i] = Record{
			PartID:      partID,
			Seq:         i + 1,
			X:           Round3(h.X),
			Y:           Round3(h.Y),
			Diameter:    Round3(h.Diameter),
			Depth:       Round3(h.Depth),
			HardwareID:  h.Meta.HardwareID,
			FeatureType: h.Meta.FeatureType,
			Face:        face,
			Origin:      origin,
		}
	}
	return records
}
