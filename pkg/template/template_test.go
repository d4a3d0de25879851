package template

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/cabdrill/pkg/part"
)

func findRole(parts []part.Descriptor, role string) (part.Descriptor, bool) {
	for _, p := range parts {
		if p.Role == role {
			return p, true
		}
	}
	return part.Descriptor{}, false
}

func TestExpandUnknownTemplate(t *testing.T) {
	parts := DefaultCatalog().Expand("spaceship", Size{})
	require.NotNil(t, parts, "expected non-nil empty slice")
	assert.Empty(t, parts)
}

func TestExpandBaseCabinetDefaults(t *testing.T) {
	parts := DefaultCatalog().Expand("base_cabinet", Size{})

	tmpl, _ := DefaultCatalog().Get("base_cabinet")
	require.Len(t, parts, len(tmpl.Roles))

	side, ok := findRole(parts, "left_side")
	require.True(t, ok, "missing left_side")
	assert.Equal(t, part.TypeCabinetSide, side.Type)
	assert.Equal(t, 720.0, side.Length)
	assert.Equal(t, 560.0, side.Width)
	assert.Equal(t, 18.0, side.Thickness)

	require.Len(t, side.Drilling, 3)
	assert.Equal(t, "system32_row", side.Drilling[1].HardwareID)
	assert.Equal(t, part.RowDouble, side.Drilling[1].RowConfig)
	require.NotNil(t, side.Carcass, "carcass not stamped")
	assert.Equal(t, 600.0, side.Carcass.Width)
	assert.Equal(t, part.OriginBottomLeft, side.Origin)
	assert.Equal(t, part.DefaultFace, side.Face)

	bottom, _ := findRole(parts, "bottom")
	assert.Equal(t, 564.0, bottom.Length)

	back, _ := findRole(parts, "back_panel")
	assert.Equal(t, 6.0, back.Thickness)
}

func TestExpandCallerSizeOverridesDefaults(t *testing.T) {
	parts := DefaultCatalog().Expand("base_cabinet", Size{Width: 800, MaterialThickness: 19})

	bottom, _ := findRole(parts, "bottom")
	assert.Equal(t, 762.0, bottom.Length)
	assert.Equal(t, 19.0, bottom.Thickness)
	side, _ := findRole(parts, "left_side")
	assert.Equal(t, 720.0, side.Length, "height should fall back to template default")
}

func TestExpandFallsBackToHardcodedThickness(t *testing.T) {
	c := NewCatalog([]Template{{
		ID:       "bare",
		Defaults: Size{Height: 500},
		Roles:    []Role{{Name: "side", Type: part.TypeCabinetSide, Length: "carcass_height_mm", Width: "system_pitch_mm * 10"}},
	}})
	parts := c.Expand("bare", Size{})
	require.Len(t, parts, 1)
	assert.Equal(t, DefaultMaterialThickness, parts[0].Thickness)
	assert.Equal(t, 320.0, parts[0].Width)
}

func TestExpandBadExpressionBecomesZero(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	c := NewCatalog([]Template{{
		ID:       "broken",
		Defaults: Size{Height: 700, Width: 500, Depth: 300},
		Roles: []Role{
			{Name: "a", Type: part.TypeCabinetSide, Length: "carcass_height_mm +", Width: "carcass_depth_mm"},
			{Name: "b", Type: part.TypeFixedShelf, Length: "carcass_width_mm / 0", Width: "nonsense_mm"},
			{Name: "c", Type: part.TypeFixedShelf, Length: "carcass_width_mm", Width: "carcass_depth_mm"},
		},
	}}).WithLogger(logger)

	parts := c.Expand("broken", Size{})
	require.Len(t, parts, 3, "expansion must continue past failures")
	assert.Equal(t, 0.0, parts[0].Length)
	assert.Equal(t, 300.0, parts[0].Width)
	assert.Equal(t, 0.0, parts[1].Length)
	assert.Equal(t, 0.0, parts[1].Width)
	assert.Equal(t, 500.0, parts[2].Length)

	// A zeroed dimension leaves the part undrillable rather than infinite.
	assert.False(t, parts[1].Drillable())
	assert.True(t, parts[2].Drillable())

	logged := buf.String()
	assert.Equal(t, 3, strings.Count(logged, "level=WARN"), logged)
	assert.Contains(t, logged, "not finite", "division by zero should be reported as non-finite")
}

func TestExpandDoesNotAliasDrillingRefs(t *testing.T) {
	c := DefaultCatalog()
	parts := c.Expand("wall_cabinet", Size{})
	side, _ := findRole(parts, "left_side")
	side.Drilling[0].HardwareID = "mutated"

	again := c.Expand("wall_cabinet", Size{})
	side2, _ := findRole(again, "left_side")
	assert.NotEqual(t, "mutated", side2.Drilling[0].HardwareID, "expanded parts share drilling refs with the template")
}

func TestBuiltinTemplatesExpandCleanly(t *testing.T) {
	var buf bytes.Buffer
	c := DefaultCatalog().WithLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	for _, tmpl := range c.All() {
		for _, p := range c.Expand(tmpl.ID, Size{}) {
			assert.True(t, p.Length > 0 && p.Width > 0 && p.Thickness > 0,
				"%s/%s: non-positive size %vx%vx%v", tmpl.ID, p.Role, p.Length, p.Width, p.Thickness)
			assert.True(t, p.Drillable(), "%s/%s", tmpl.ID, p.Role)
		}
	}
	assert.Zero(t, buf.Len(), "built-in templates logged warnings:\n%s", buf.String())
}

func TestCatalogWith(t *testing.T) {
	base := DefaultCatalog()
	extended := base.With(Template{ID: "vanity", Label: "Vanity"})
	_, ok := extended.Get("vanity")
	require.True(t, ok, "extended catalog missing vanity")
	_, ok = base.Get("vanity")
	require.False(t, ok, "base catalog was mutated")
	assert.Len(t, extended.All(), len(base.All())+1)
}
