package pattern

import (
	"math"

	"github.com/chazu/cabdrill/pkg/hardware"
	"github.com/chazu/cabdrill/pkg/part"
)

const (
	// hingeInset is the distance from each door end to a hinge cup centre.
	hingeInset = 100.0

	// slideFrontY is the front fixing hole position on a drawer-slide line.
	slideFrontY = 37.0

	// Fixing and shelf-pin holes are always 5mm x 12mm.
	systemHoleDiameter = 5.0
	systemHoleDepth    = 12.0

	// rowTolerance absorbs pitch accumulation error at the last hole.
	rowTolerance = 0.1
)

// generator produces part-local holes for one hardware spec.
type generator func(p part.Descriptor, spec hardware.Spec) []Hole

// lines returns the x positions of one or two mirrored hole lines.
func lines(p part.Descriptor, fromEdge float64) []float64 {
	xs := []float64{fromEdge}
	if p.RowConfig.Double() {
		xs = append(xs, p.Width-fromEdge)
	}
	return xs
}

// ---------------------------------------------------------------------------
// door_hinge
// ---------------------------------------------------------------------------

func hingeCups(p part.Descriptor, spec hardware.Spec) []Hole {
	hp, ok := spec.Params.(hardware.HingeParams)
	if !ok {
		return nil
	}
	x := hp.CupFromEdge + hp.CupDiameter/2
	return []Hole{
		newHole(x, hingeInset, hp.CupDiameter, hp.CupDepth, FeatureHingeCup, spec.ID),
		newHole(x, p.Length-hingeInset, hp.CupDiameter, hp.CupDepth, FeatureHingeCup, spec.ID),
	}
}

// ---------------------------------------------------------------------------
// side_32_row
// ---------------------------------------------------------------------------

func slideRows(p part.Descriptor, spec hardware.Spec) []Hole {
	sp, ok := spec.Params.(hardware.SlideParams)
	if !ok {
		return nil
	}
	rearY := math.Min(math.Max(slideFrontY+sp.RearHoleOffset, 0), p.Length)

	var holes []Hole
	for _, x := range lines(p, sp.RefRowFromFront) {
		holes = append(holes,
			newHole(x, slideFrontY, systemHoleDiameter, systemHoleDepth, FeatureDrawerFrontFix, spec.ID),
			newHole(x, rearY, systemHoleDiameter, systemHoleDepth, FeatureDrawerRearFix, spec.ID),
		)
	}
	return holes
}

// ---------------------------------------------------------------------------
// full_32_row
// ---------------------------------------------------------------------------

func fullRow(p part.Descriptor, spec hardware.Spec) []Hole {
	rp, ok := spec.Params.(hardware.ShelfRowParams)
	if !ok {
		return nil
	}
	n := rowCount(p.Length, rp.FirstHoleOffset)
	if n == 0 {
		return nil
	}

	var holes []Hole
	for _, x := range lines(p, rp.DistanceFromEdge) {
		for i := 0; i < n; i++ {
			y := rp.FirstHoleOffset + float64(i)*part.SystemPitch
			holes = append(holes, newHole(x, y, systemHoleDiameter, systemHoleDepth, FeatureSystem32Shelf, spec.ID))
		}
	}
	return holes
}

// rowCount is the number of pitch steps from first to length-first,
// inclusive of both ends within rowTolerance. Non-finite inputs and rows
// longer than MaxDimension allows give zero.
func rowCount(length, first float64) int {
	if !isFinite(length) || !isFinite(first) {
		return 0
	}
	span := length - 2*first + rowTolerance
	if span < 0 || span > part.MaxDimension+rowTolerance {
		return 0
	}
	return int(math.Floor(span/part.SystemPitch)) + 1
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ---------------------------------------------------------------------------
// side_dowel_joint
// ---------------------------------------------------------------------------

func sideDowels(p part.Descriptor, spec hardware.Spec) []Hole {
	dp, ok := spec.Params.(hardware.DowelParams)
	if !ok {
		return nil
	}
	var holes []Hole
	for _, x := range []float64{dp.EdgeOffset, p.Width - dp.EdgeOffset} {
		for _, y := range []float64{dp.EndOffset, p.Length - dp.EndOffset} {
			holes = append(holes, newHole(x, y, dp.Diameter, dp.Depth, FeatureDowelJoint, spec.ID))
		}
	}
	return holes
}

// ---------------------------------------------------------------------------
// back_panel_nailer
// ---------------------------------------------------------------------------

func backNailer(p part.Descriptor, spec hardware.Spec) []Hole {
	bp, ok := spec.Params.(hardware.BackNailerParams)
	if !ok {
		return nil
	}
	rows := []struct {
		x       float64
		feature string
	}{
		{p.Width - bp.BackOffset, FeatureBackPanelDowel},
		{p.Width - bp.NailerOffset, FeatureBackNailerDowel},
	}
	var holes []Hole
	for _, r := range rows {
		for _, y := range []float64{bp.EndOffset, p.Length - bp.EndOffset} {
			holes = append(holes, newHole(r.x, y, bp.Diameter, bp.Depth, r.feature, spec.ID))
		}
	}
	return holes
}
