package part

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Part id
// ---------------------------------------------------------------------------

func TestIDFormat(t *testing.T) {
	tests := []struct {
		name   string
		d      Descriptor
		expect string
	}{
		{
			name:   "integer sizes",
			d:      Descriptor{Type: TypeFixedShelf, Length: 720, Width: 560, Thickness: 18},
			expect: "fixedShelf_560x720x18_mm",
		},
		{
			name:   "fractional sizes",
			d:      Descriptor{Type: TypeDoor, Length: 716.5, Width: 396.25, Thickness: 19},
			expect: "door_396.25x716.5x19_mm",
		},
		{
			name:   "empty type",
			d:      Descriptor{Length: 1, Width: 2, Thickness: 3},
			expect: "_2x1x3_mm",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, tt.d.ID())
		})
	}
}

func TestIDCollidesForSameSize(t *testing.T) {
	a := Descriptor{Type: TypeCabinetSide, Length: 720, Width: 560, Thickness: 18, Origin: OriginBottomLeft, Face: "front"}
	b := Descriptor{Type: TypeCabinetSide, Length: 720, Width: 560, Thickness: 18, Origin: OriginTopRight, Face: "back", Role: "right_side"}
	assert.Equal(t, a.ID(), b.ID())
}

// ---------------------------------------------------------------------------
// Origin mapping
// ---------------------------------------------------------------------------

func TestMapOrigin(t *testing.T) {
	const w, l = 560.0, 720.0
	tests := []struct {
		origin Origin
		x, y   float64
	}{
		{OriginBottomLeft, 37, 100},
		{"", 37, 100},
		{OriginBottomRight, 523, 100},
		{OriginTopLeft, 37, 620},
		{OriginTopRight, 523, 620},
	}
	for _, tt := range tests {
		x, y := MapOrigin(37, 100, w, l, tt.origin)
		assert.Equal(t, [2]float64{tt.x, tt.y}, [2]float64{x, y}, "MapOrigin(%q)", tt.origin)
	}
}

func TestMapOriginIsReflection(t *testing.T) {
	const w, l = 397.5, 713
	points := [][2]float64{{0, 0}, {w, l}, {37, 69}, {w / 2, 177.25}}
	for _, o := range []Origin{OriginBottomLeft, OriginBottomRight, OriginTopLeft, OriginTopRight} {
		for _, p := range points {
			x, y := MapOrigin(p[0], p[1], w, l, o)
			inside := x >= 0 && y >= 0 && x <= w && y <= l
			assert.True(t, inside, "%s: (%v, %v) mapped outside the panel to (%v, %v)", o, p[0], p[1], x, y)

			bx, by := MapOrigin(x, y, w, l, o)
			assert.Equal(t, p, [2]float64{bx, by}, "%s: mapping twice", o)
		}
	}
}

func TestMapOriginTopRightComposesMirrors(t *testing.T) {
	const w, l = 600.0, 900.0
	x, y := MapOrigin(40, 70, w, l, OriginBottomRight)
	x, y = MapOrigin(x, y, w, l, OriginTopLeft)
	tx, ty := MapOrigin(40, 70, w, l, OriginTopRight)
	assert.Equal(t, [2]float64{tx, ty}, [2]float64{x, y})
}

// ---------------------------------------------------------------------------
// Drillable
// ---------------------------------------------------------------------------

func TestDrillable(t *testing.T) {
	tests := []struct {
		name string
		d    Descriptor
		want bool
	}{
		{"shelf", Descriptor{Type: TypeFixedShelf, Length: 720, Width: 560}, true},
		{"longest panel", Descriptor{Type: TypeCabinetSide, Length: MaxDimension, Width: MaxDimension}, true},
		{"zero thickness still drillable", Descriptor{Type: TypeDoor, Length: 700, Width: 400}, true},
		{"unknown type", Descriptor{Type: "plinth", Length: 720, Width: 560}, false},
		{"empty type", Descriptor{Length: 720, Width: 560}, false},
		{"zero length", Descriptor{Type: TypeDoor, Width: 400}, false},
		{"negative width", Descriptor{Type: TypeDoor, Length: 700, Width: -1}, false},
		{"NaN length", Descriptor{Type: TypeDoor, Length: math.NaN(), Width: 400}, false},
		{"infinite width", Descriptor{Type: TypeDoor, Length: 700, Width: math.Inf(1)}, false},
		{"over max", Descriptor{Type: TypeDoor, Length: MaxDimension + 1, Width: 400}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.d.Drillable())
		})
	}
}

// ---------------------------------------------------------------------------
// Validation
// ---------------------------------------------------------------------------

func hasFinding(errs []ValidationError, field string, sev ValidationSeverity) bool {
	for _, e := range errs {
		if e.Field == field && e.Severity == sev {
			return true
		}
	}
	return false
}

func TestValidateGoodPart(t *testing.T) {
	d := Descriptor{Type: TypeFixedShelf, Length: 720, Width: 560, Thickness: 18, Origin: OriginBottomLeft}
	assert.Empty(t, Validate(d))
}

func TestValidateNonPositiveSize(t *testing.T) {
	errs := Validate(Descriptor{Type: TypeDoor, Length: 0, Width: -5, Thickness: 18})
	assert.True(t, hasFinding(errs, "length", SeverityError), "expected length error")
	assert.True(t, hasFinding(errs, "width", SeverityError), "expected width error")
	assert.True(t, HasErrors(errs))
}

func TestValidateOutOfRangeSize(t *testing.T) {
	errs := Validate(Descriptor{Type: TypeDoor, Length: 1e12, Width: math.NaN(), Thickness: 18})
	require.True(t, hasFinding(errs, "length", SeverityError), "expected length error, got %v", errs)
	assert.True(t, hasFinding(errs, "width", SeverityError), "expected width error, got %v", errs)
	for _, e := range errs {
		if e.Field == "length" {
			assert.Contains(t, e.Message, "at most 10000")
		}
	}
}

func TestValidateUnknownTypeIsError(t *testing.T) {
	errs := Validate(Descriptor{Type: "shelf)\nG1 Z-40 F9000\n(", Length: 720, Width: 560, Thickness: 18})
	require.Len(t, errs, 1)
	assert.Equal(t, "part_type", errs[0].Field)
	assert.Equal(t, SeverityError, errs[0].Severity)
	assert.Contains(t, errs[0].Message, "no holes")
}

func TestValidateWarnings(t *testing.T) {
	errs := Validate(Descriptor{Type: TypeDoor, Length: 100, Width: 100, Origin: "middle", RowConfig: "triple"})
	for _, field := range []string{"thickness", "origin", "row_config"} {
		assert.True(t, hasFinding(errs, field, SeverityWarning), "expected warning on %s, got %v", field, errs)
	}
	assert.False(t, HasErrors(errs), "warnings alone should not count as errors: %v", errs)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Error(), "[warning]")
}

func TestWithRowKeepsOwnSettingWhenEmpty(t *testing.T) {
	d := Descriptor{RowConfig: RowDouble}
	assert.Equal(t, RowDouble, d.WithRow("").RowConfig)
	assert.Equal(t, RowSingle, d.WithRow(RowSingle).RowConfig)
	assert.Equal(t, RowDouble, d.RowConfig, "WithRow must not mutate the receiver")
}
