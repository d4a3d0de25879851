// Package preview bores generated holes into a solid panel so the layout
// can be checked in 3D. It is a geometry check, not a renderer.
package preview

import (
	"fmt"

	"github.com/chazu/cabdrill/pkg/kernel"
	"github.com/chazu/cabdrill/pkg/part"
	"github.com/chazu/cabdrill/pkg/pattern"
)

// overshoot extends each bore above the top face so the cut never leaves
// a coincident skin.
const overshoot = 1.0

// IssueKind classifies a hole that does not fit the panel.
type IssueKind int

const (
	IssueOutside IssueKind = iota
	IssueBreaksEdge
	IssueThrough
	IssueDegenerate
)

func (k IssueKind) String() string {
	switch k {
	case IssueOutside:
		return "outside"
	case IssueBreaksEdge:
		return "breaks_edge"
	case IssueThrough:
		return "through"
	case IssueDegenerate:
		return "degenerate"
	}
	return fmt.Sprintf("IssueKind(%d)", int(k))
}

// MarshalText renders the kind by name.
func (k IssueKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Issue reports one problem hole.
type Issue struct {
	HoleID string    `json:"hole_id"`
	Kind   IssueKind `json:"kind"`
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
}

// Check reports holes that sit outside the panel, whose rim crosses an
// edge, that go deeper than the panel thickness, or that have no size.
// A thickness of zero skips the depth check.
func Check(p part.Descriptor, holes []pattern.Hole) []Issue {
	issues := []Issue{}
	for _, h := range holes {
		add := func(k IssueKind) {
			issues = append(issues, Issue{HoleID: h.ID, Kind: k, X: h.X, Y: h.Y})
		}
		r := h.Diameter / 2
		switch {
		case h.Diameter <= 0 || h.Depth <= 0:
			add(IssueDegenerate)
			continue
		case h.X < 0 || h.Y < 0 || h.X > p.Width || h.Y > p.Length:
			add(IssueOutside)
			continue
		case h.X-r < 0 || h.Y-r < 0 || h.X+r > p.Width || h.Y+r > p.Length:
			add(IssueBreaksEdge)
		}
		if p.Thickness > 0 && h.Depth >= p.Thickness {
			add(IssueThrough)
		}
	}
	return issues
}

// Panel builds the drilled panel as a mesh: a width x length x thickness
// board with one bore per hole, cut from the top face down to the hole
// depth. Degenerate holes are skipped.
func Panel(k kernel.Kernel, p part.Descriptor, holes []pattern.Hole) (*kernel.Mesh, error) {
	if k == nil {
		return nil, fmt.Errorf("preview: no geometry kernel")
	}
	if p.Length <= 0 || p.Width <= 0 || p.Thickness <= 0 {
		return nil, fmt.Errorf("preview: part %q needs positive length, width and thickness", p.Type)
	}

	board := k.Box(p.Width, p.Length, p.Thickness)

	var bores kernel.Solid
	for _, h := range holes {
		if h.Diameter <= 0 || h.Depth <= 0 {
			continue
		}
		height := h.Depth + overshoot
		zc := p.Thickness - h.Depth + height/2
		bore := k.Translate(k.Cylinder(height, h.Diameter/2), h.X, h.Y, zc)
		if bores == nil {
			bores = bore
		} else {
			bores = k.Union(bores, bore)
		}
	}

	solid := board
	if bores != nil {
		solid = k.Difference(board, bores)
	}

	mesh, err := k.ToMesh(solid)
	if err != nil {
		return nil, fmt.Errorf("preview: mesh %s: %w", p.ID(), err)
	}
	mesh.PartID = p.ID()
	return mesh, nil
}
