package sdfx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func near(t *testing.T, label string, got, want [3]float64, tol float64) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, want[i], got[i], tol, "%s[%d]", label, i)
	}
}

func TestBox(t *testing.T) {
	k := New()
	mesh, err := k.ToMesh(k.Box(100, 50, 25))
	require.NoError(t, err)
	require.False(t, mesh.IsEmpty(), "mesh is empty")
	require.NotZero(t, mesh.TriangleCount())
	assert.Len(t, mesh.Normals, len(mesh.Vertices))
	assert.Len(t, mesh.Indices, mesh.TriangleCount()*3)
}

func TestBoxMinCornerAtOrigin(t *testing.T) {
	k := New()
	min, max := k.Box(100, 50, 25).BoundingBox()
	near(t, "min", min, [3]float64{0, 0, 0}, 0.01)
	near(t, "max", max, [3]float64{100, 50, 25}, 0.01)
}

func TestCylinderCentred(t *testing.T) {
	k := New()
	min, max := k.Cylinder(50, 10).BoundingBox()
	near(t, "min", min, [3]float64{-10, -10, -25}, 0.01)
	near(t, "max", max, [3]float64{10, 10, 25}, 0.01)
}

func TestTranslate(t *testing.T) {
	k := New()
	min, max := k.Translate(k.Box(10, 10, 10), 100, 200, 300).BoundingBox()
	near(t, "min", min, [3]float64{100, 200, 300}, 0.5)
	near(t, "max", max, [3]float64{110, 210, 310}, 0.5)
}

func TestDifferenceAddsTriangles(t *testing.T) {
	k := NewWithCells(64)

	box := k.Box(100, 100, 20)
	boxMesh, err := k.ToMesh(box)
	require.NoError(t, err)

	hole := k.Translate(k.Cylinder(30, 20), 50, 50, 10)
	diffMesh, err := k.ToMesh(k.Difference(box, hole))
	require.NoError(t, err)
	require.False(t, diffMesh.IsEmpty(), "difference mesh is empty")
	assert.Greater(t, diffMesh.TriangleCount(), boxMesh.TriangleCount(),
		"difference should have more triangles than the box")
}

func TestUnionBounds(t *testing.T) {
	k := New()
	u := k.Union(k.Box(50, 50, 50), k.Translate(k.Box(50, 50, 50), 30, 0, 0))
	min, max := u.BoundingBox()
	near(t, "min", min, [3]float64{0, 0, 0}, 0.5)
	near(t, "max", max, [3]float64{80, 50, 50}, 0.5)
}

func TestNewWithCells(t *testing.T) {
	assert.Equal(t, DefaultMeshCells, NewWithCells(0).Cells())
	assert.Equal(t, 64, NewWithCells(64).Cells())
}

func TestToMeshNil(t *testing.T) {
	_, err := New().ToMesh(nil)
	assert.Error(t, err, "expected error for nil solid")
}
