package part

import (
	"fmt"
	"math"
	"strconv"
)

// SystemPitch is the 32mm-system hole pitch in mm.
const SystemPitch = 32.0

// Type enumerates the cabinet part roles that drilling patterns target.
type Type string

const (
	TypeDoor             Type = "door"
	TypeDrawerFront      Type = "drawerFront"
	TypeCabinetSide      Type = "cabinetSide"
	TypeCabinetTopBottom Type = "cabinetTopBottom"
	TypeFixedShelf       Type = "fixedShelf"
	TypeAdjustableShelf  Type = "adjustableShelf"
	TypeNailerStrip      Type = "nailerStrip"
	TypeBackPanel        Type = "backPanel"
)

// Types lists every known part type in display order.
var Types = []Type{
	TypeDoor,
	TypeDrawerFront,
	TypeCabinetSide,
	TypeCabinetTopBottom,
	TypeFixedShelf,
	TypeAdjustableShelf,
	TypeNailerStrip,
	TypeBackPanel,
}

// Valid reports whether t is one of the known part types.
func (t Type) Valid() bool {
	for _, k := range Types {
		if k == t {
			return true
		}
	}
	return false
}

// Origin is the machine reference corner the operator zeroes the panel on.
type Origin string

const (
	OriginBottomLeft  Origin = "bottomLeft"
	OriginBottomRight Origin = "bottomRight"
	OriginTopLeft     Origin = "topLeft"
	OriginTopRight    Origin = "topRight"
)

// Valid reports whether o is a known corner. The empty origin is valid and
// behaves as bottomLeft.
func (o Origin) Valid() bool {
	switch o {
	case "", OriginBottomLeft, OriginBottomRight, OriginTopLeft, OriginTopRight:
		return true
	}
	return false
}

// OrDefault returns o, or bottomLeft when o is empty.
func (o Origin) OrDefault() Origin {
	if o == "" {
		return OriginBottomLeft
	}
	return o
}

// RowConfig selects one or two mirrored hole lines.
type RowConfig string

const (
	RowSingle RowConfig = "single"
	RowDouble RowConfig = "double"
)

// Double reports whether the configuration asks for the mirrored second line.
func (r RowConfig) Double() bool {
	return r == RowDouble
}

// MaxDimension is the largest panel length or width, in mm, holes are
// generated for.
const MaxDimension = 10000.0

// DefaultFace is the face label used when a descriptor leaves it empty.
const DefaultFace = "front"

// Carcass holds the overall cabinet sizes a template part was derived from.
type Carcass struct {
	Height            float64 `json:"carcass_height_mm"`
	Width             float64 `json:"carcass_width_mm"`
	Depth             float64 `json:"carcass_depth_mm"`
	MaterialThickness float64 `json:"material_thickness_mm"`
}

// DrillingRef names a piece of hardware to drill for and the row layout to
// drill it with.
type DrillingRef struct {
	HardwareID string    `json:"hardware_type"`
	RowConfig  RowConfig `json:"row_config,omitempty"`
}

// Descriptor describes a single panel to drill. Sizes are in mm.
// Length runs along the part's y axis, width along x.
type Descriptor struct {
	Type      Type      `json:"part_type"`
	Length    float64   `json:"length"`
	Width     float64   `json:"width"`
	Thickness float64   `json:"thickness"`
	Origin    Origin    `json:"origin,omitempty"`
	Face      string    `json:"face,omitempty"`
	RowConfig RowConfig `json:"row_config,omitempty"`

	// Set only for parts produced by a cabinet template.
	Role     string        `json:"role,omitempty"`
	Carcass  *Carcass      `json:"carcass,omitempty"`
	Drilling []DrillingRef `json:"drilling,omitempty"`
}

// FaceOrDefault returns the face label, or DefaultFace when unset.
func (d Descriptor) FaceOrDefault() string {
	if d.Face == "" {
		return DefaultFace
	}
	return d.Face
}

// WithRow returns a copy of d using the given row configuration. An empty
// row configuration leaves d's own setting in place.
func (d Descriptor) WithRow(r RowConfig) Descriptor {
	if r != "" {
		d.RowConfig = r
	}
	return d
}

// Drillable reports whether d has a known type and finite, positive length
// and width no larger than MaxDimension.
func (d Descriptor) Drillable() bool {
	return d.Type.Valid() && inRange(d.Length) && inRange(d.Width)
}

func inRange(v float64) bool {
	return !math.IsNaN(v) && v > 0 && v <= MaxDimension
}

// ID derives the part identifier {type}_{width}x{length}x{thickness}_mm.
// Two parts of the same type and size share an identifier.
func (d Descriptor) ID() string {
	return fmt.Sprintf("%s_%sx%sx%s_mm", d.Type,
		formatDim(d.Width), formatDim(d.Length), formatDim(d.Thickness))
}

func formatDim(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// MapOrigin maps a part-local point (front-bottom-left reference) into the
// machine frame for the given origin corner. Each corner is a reflection,
// so mapping twice with the same corner returns the original point.
func MapOrigin(x, y, width, length float64, o Origin) (float64, float64) {
	switch o {
	case OriginBottomRight:
		return width - x, y
	case OriginTopLeft:
		return x, length - y
	case OriginTopRight:
		return width - x, length - y
	default:
		return x, y
	}
}
