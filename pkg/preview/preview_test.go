package preview_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/cabdrill/pkg/hardware"
	"github.com/chazu/cabdrill/pkg/kernel"
	"github.com/chazu/cabdrill/pkg/kernel/sdfx"
	"github.com/chazu/cabdrill/pkg/part"
	"github.com/chazu/cabdrill/pkg/pattern"
	"github.com/chazu/cabdrill/pkg/preview"
)

// newKernel returns a coarse sdfx kernel; the tests only need topology.
func newKernel() kernel.Kernel {
	return sdfx.NewWithCells(80)
}

// ---------------------------------------------------------------------------
// Check
// ---------------------------------------------------------------------------

func TestCheckGeneratedHolesAreClean(t *testing.T) {
	reg := hardware.Default()
	cases := []struct {
		p  part.Descriptor
		hw string
	}{
		{part.Descriptor{Type: part.TypeDoor, Length: 700, Width: 400, Thickness: 18}, "blum_clip_top_110"},
		{part.Descriptor{Type: part.TypeCabinetSide, Length: 720, Width: 560, Thickness: 18, RowConfig: part.RowDouble}, "system32_row"},
		{part.Descriptor{Type: part.TypeCabinetSide, Length: 720, Width: 560, Thickness: 18, Origin: part.OriginTopRight}, "blum_tandem_500"},
		{part.Descriptor{Type: part.TypeCabinetTopBottom, Length: 564, Width: 560, Thickness: 18}, "dowel_side_joint_8mm"},
	}
	for _, c := range cases {
		holes := pattern.Generate(reg, c.p, c.hw)
		require.NotEmpty(t, holes, "%s/%s: no holes", c.p.Type, c.hw)
		assert.Empty(t, preview.Check(c.p, holes), "%s/%s", c.p.Type, c.hw)
	}
}

func TestCheckFlagsProblems(t *testing.T) {
	p := part.Descriptor{Type: part.TypeDoor, Length: 100, Width: 100, Thickness: 18}
	holes := []pattern.Hole{
		{ID: "ok", X: 50, Y: 50, Diameter: 5, Depth: 12},
		{ID: "out", X: 150, Y: 50, Diameter: 5, Depth: 12},
		{ID: "edge", X: 1, Y: 50, Diameter: 5, Depth: 12},
		{ID: "deep", X: 50, Y: 20, Diameter: 5, Depth: 18},
		{ID: "flat", X: 50, Y: 80, Diameter: 0, Depth: 12},
	}
	issues := preview.Check(p, holes)

	want := map[string]preview.IssueKind{
		"out":  preview.IssueOutside,
		"edge": preview.IssueBreaksEdge,
		"deep": preview.IssueThrough,
		"flat": preview.IssueDegenerate,
	}
	require.Len(t, issues, len(want), "%+v", issues)
	for _, is := range issues {
		assert.Equal(t, want[is.HoleID], is.Kind, "hole %s", is.HoleID)
	}
}

func TestCheckUnknownThicknessSkipsDepth(t *testing.T) {
	p := part.Descriptor{Type: part.TypeDoor, Length: 100, Width: 100}
	holes := []pattern.Hole{{ID: "a", X: 50, Y: 50, Diameter: 5, Depth: 40}}
	assert.Empty(t, preview.Check(p, holes))
}

func TestIssueKindString(t *testing.T) {
	assert.Equal(t, "breaks_edge", preview.IssueBreaksEdge.String())
	assert.Equal(t, "IssueKind(42)", preview.IssueKind(42).String())
}

// ---------------------------------------------------------------------------
// Panel
// ---------------------------------------------------------------------------

func TestPanelWithoutHoles(t *testing.T) {
	p := part.Descriptor{Type: part.TypeBackPanel, Length: 300, Width: 200, Thickness: 6}
	mesh, err := preview.Panel(newKernel(), p, nil)
	require.NoError(t, err)
	require.False(t, mesh.IsEmpty(), "mesh is empty")
	assert.Equal(t, "backPanel_200x300x6_mm", mesh.PartID)

	min, max := mesh.Bounds()
	want := [3]float64{200, 300, 6}
	for i := range 3 {
		// marching cubes snaps to its grid; allow one cell of slack.
		assert.GreaterOrEqual(t, min[i], -4.0, "axis %d min", i)
		assert.InDelta(t, want[i], max[i], 4, "axis %d max", i)
	}
}

func TestPanelBoresHoles(t *testing.T) {
	k := newKernel()
	p := part.Descriptor{Type: part.TypeDoor, Length: 300, Width: 200, Thickness: 18}
	plain, err := preview.Panel(k, p, nil)
	require.NoError(t, err)

	holes := []pattern.Hole{
		{ID: "a", X: 60, Y: 100, Diameter: 35, Depth: 13},
		{ID: "b", X: 60, Y: 200, Diameter: 35, Depth: 13},
		{ID: "skip", X: 100, Y: 150, Diameter: 0, Depth: 13},
	}
	drilled, err := preview.Panel(k, p, holes)
	require.NoError(t, err)
	assert.Greater(t, drilled.TriangleCount(), plain.TriangleCount(),
		"drilled panel should have more triangles than plain")
}

func TestPanelRejectsBadInput(t *testing.T) {
	_, err := preview.Panel(nil, part.Descriptor{Length: 1, Width: 1, Thickness: 1}, nil)
	assert.Error(t, err, "nil kernel")
	_, err = preview.Panel(newKernel(), part.Descriptor{Type: part.TypeDoor, Length: 100, Width: 100}, nil)
	assert.Error(t, err, "zero thickness")
}
