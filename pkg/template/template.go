// Package template expands cabinet templates into concrete part
// descriptors. A template lists part roles whose sizes are arithmetic
// expressions over the carcass dimensions; expanding it with a concrete
// carcass size yields one part.Descriptor per role.
package template

import (
	"log/slog"
	"math"
	"sort"

	"github.com/chazu/cabdrill/pkg/expr"
	"github.com/chazu/cabdrill/pkg/part"
)

// Expression variable names available to role dimensions.
const (
	VarCarcassHeight     = "carcass_height_mm"
	VarCarcassWidth      = "carcass_width_mm"
	VarCarcassDepth      = "carcass_depth_mm"
	VarMaterialThickness = "material_thickness_mm"
	VarSystemPitch       = "system_pitch_mm"
)

// DefaultMaterialThickness applies when neither the caller nor the template
// gives a material thickness.
const DefaultMaterialThickness = 18.0

// Size holds caller-supplied carcass dimensions. Zero fields fall back to
// the template defaults.
type Size struct {
	Height            float64 `json:"carcass_height_mm,omitempty"`
	Width             float64 `json:"carcass_width_mm,omitempty"`
	Depth             float64 `json:"carcass_depth_mm,omitempty"`
	MaterialThickness float64 `json:"material_thickness_mm,omitempty"`
}

// Role is one part slot in a template. Length, Width and Thickness are
// expressions; an empty Thickness means material_thickness_mm.
type Role struct {
	Name      string             `json:"name"`
	Type      part.Type          `json:"part_type"`
	Length    string             `json:"length"`
	Width     string             `json:"width"`
	Thickness string             `json:"thickness,omitempty"`
	Drilling  []part.DrillingRef `json:"drilling,omitempty"`
}

// Template is a cabinet family definition.
type Template struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Defaults Size   `json:"defaults"`
	Roles    []Role `json:"roles"`
}

// Catalog is an immutable set of templates keyed by id.
type Catalog struct {
	templates map[string]Template
	logger    *slog.Logger
}

// NewCatalog builds a catalog. Later templates replace earlier ones with
// the same id.
func NewCatalog(sets ...[]Template) *Catalog {
	c := &Catalog{templates: make(map[string]Template)}
	for _, set := range sets {
		for _, t := range set {
			c.templates[t.ID] = t
		}
	}
	return c
}

// DefaultCatalog returns a catalog of the built-in templates.
func DefaultCatalog() *Catalog {
	return NewCatalog(Builtin)
}

// WithLogger returns a copy of c that reports expression failures to l
// instead of the default slog logger.
func (c *Catalog) WithLogger(l *slog.Logger) *Catalog {
	cp := *c
	cp.logger = l
	return &cp
}

// With returns a new catalog holding c's templates plus extra.
func (c *Catalog) With(extra ...Template) *Catalog {
	n := NewCatalog(c.All(), extra)
	n.logger = c.logger
	return n
}

// Get returns the template with the given id.
func (c *Catalog) Get(id string) (Template, bool) {
	if c == nil {
		return Template{}, false
	}
	t, ok := c.templates[id]
	return t, ok
}

// All returns every template ordered by id.
func (c *Catalog) All() []Template {
	if c == nil {
		return nil
	}
	ids := make([]string, 0, len(c.templates))
	for id := range c.templates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]Template, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.templates[id])
	}
	return out
}

// Expand resolves the template and evaluates every role against the
// carcass size. An unknown template yields an empty slice. A role
// dimension that fails to evaluate, or evaluates to a non-finite value,
// becomes 0 and is logged; expansion always continues.
func (c *Catalog) Expand(templateID string, size Size) []part.Descriptor {
	t, ok := c.Get(templateID)
	if !ok {
		return []part.Descriptor{}
	}

	carcass := resolveCarcass(t.Defaults, size)
	vars := expr.Vars{
		VarCarcassHeight:     carcass.Height,
		VarCarcassWidth:      carcass.Width,
		VarCarcassDepth:      carcass.Depth,
		VarMaterialThickness: carcass.MaterialThickness,
		VarSystemPitch:       part.SystemPitch,
	}

	parts := make([]part.Descriptor, 0, len(t.Roles))
	for _, r := range t.Roles {
		thickness := r.Thickness
		if thickness == "" {
			thickness = VarMaterialThickness
		}
		cc := carcass
		d := part.Descriptor{
			Type:      r.Type,
			Length:    c.eval(t.ID, r.Name, "length", r.Length, vars),
			Width:     c.eval(t.ID, r.Name, "width", r.Width, vars),
			Thickness: c.eval(t.ID, r.Name, "thickness", thickness, vars),
			Origin:    part.OriginBottomLeft,
			Face:      part.DefaultFace,
			Role:      r.Name,
			Carcass:   &cc,
			Drilling:  append([]part.DrillingRef(nil), r.Drilling...),
		}
		parts = append(parts, d)
	}
	return parts
}

func resolveCarcass(defaults, size Size) part.Carcass {
	return part.Carcass{
		Height:            firstPositive(size.Height, defaults.Height),
		Width:             firstPositive(size.Width, defaults.Width),
		Depth:             firstPositive(size.Depth, defaults.Depth),
		MaterialThickness: firstPositive(size.MaterialThickness, defaults.MaterialThickness, DefaultMaterialThickness),
	}
}

func firstPositive(vals ...float64) float64 {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return 0
}

func (c *Catalog) eval(templateID, role, field, src string, vars expr.Vars) float64 {
	v, err := expr.Eval(src, vars)
	if err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
		return v
	}
	log := c.logger
	if log == nil {
		log = slog.Default()
	}
	if err != nil {
		log.Warn("template dimension failed to evaluate",
			"template", templateID, "role", role, "field", field,
			"expression", src, "error", err)
	} else {
		log.Warn("template dimension is not finite",
			"template", templateID, "role", role, "field", field,
			"expression", src, "value", v)
	}
	return 0
}
