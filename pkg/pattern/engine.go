package pattern

import (
	"github.com/chazu/cabdrill/pkg/hardware"
	"github.com/chazu/cabdrill/pkg/part"
)

type dispatchKey struct {
	pattern hardware.Pattern
	part    part.Type
}

// dispatch is the complete set of supported (pattern, part type) pairs.
var dispatch = map[dispatchKey]generator{
	{hardware.PatternDoorHinge, part.TypeDoor}:        hingeCups,
	{hardware.PatternDoorHinge, part.TypeDrawerFront}: hingeCups,

	{hardware.PatternSide32Row, part.TypeCabinetSide}: slideRows,

	{hardware.PatternFull32Row, part.TypeCabinetSide}:     fullRow,
	{hardware.PatternFull32Row, part.TypeFixedShelf}:      fullRow,
	{hardware.PatternFull32Row, part.TypeAdjustableShelf}: fullRow,

	{hardware.PatternSideDowelJoint, part.TypeCabinetSide}:      sideDowels,
	{hardware.PatternSideDowelJoint, part.TypeCabinetTopBottom}: sideDowels,
	{hardware.PatternSideDowelJoint, part.TypeFixedShelf}:       sideDowels,

	{hardware.PatternBackPanelNailer, part.TypeCabinetSide}:      backNailer,
	{hardware.PatternBackPanelNailer, part.TypeCabinetTopBottom}: backNailer,
}

// resolve picks the generator for a pair. full_32_row drills any part type
// not listed in the table; other patterns have no fallback.
func resolve(pat hardware.Pattern, t part.Type) (generator, bool) {
	if g, ok := dispatch[dispatchKey{pat, t}]; ok {
		return g, true
	}
	if pat == hardware.PatternFull32Row {
		return fullRow, true
	}
	return nil, false
}

// Supports reports whether holes can be generated for the pair.
func Supports(pat hardware.Pattern, t part.Type) bool {
	_, ok := resolve(pat, t)
	return ok
}

// Lookup is the hardware lookup the engine needs.
type Lookup interface {
	Lookup(id string) (hardware.Spec, bool)
}

// Engine generates holes against a fixed hardware catalog.
type Engine struct {
	hw Lookup
}

// NewEngine returns an engine bound to the given catalog.
func NewEngine(hw Lookup) *Engine {
	return &Engine{hw: hw}
}

// Generate returns the holes for p and hardwareID in p's machine frame.
// It returns an empty slice when the hardware is unknown, the part is not
// drillable (see part.Descriptor.Drillable) or the pair is unsupported.
func (e *Engine) Generate(p part.Descriptor, hardwareID string) []Hole {
	if e == nil || e.hw == nil {
		return []Hole{}
	}
	spec, ok := e.hw.Lookup(hardwareID)
	if !ok {
		return []Hole{}
	}
	return GenerateFor(p, spec)
}

// Generate is Engine.Generate against an explicit catalog.
func Generate(hw Lookup, p part.Descriptor, hardwareID string) []Hole {
	return NewEngine(hw).Generate(p, hardwareID)
}

// GenerateFor generates holes for an already resolved spec.
func GenerateFor(p part.Descriptor, spec hardware.Spec) []Hole {
	if !p.Drillable() {
		return []Hole{}
	}
	gen, ok := resolve(spec.Pattern(), p.Type)
	if !ok {
		return []Hole{}
	}

	holes := gen(p, spec)
	if holes == nil {
		return []Hole{}
	}
	origin := p.Origin.OrDefault()
	for i := range holes {
		holes[i].X, holes[i].Y = part.MapOrigin(holes[i].X, holes[i].Y, p.Width, p.Length, origin)
	}
	return holes
}
