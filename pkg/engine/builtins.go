package engine

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/cabdrill/pkg/hardware"
	"github.com/chazu/cabdrill/pkg/part"
	"github.com/chazu/cabdrill/pkg/template"
)

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

type sexpHardware struct {
	spec hardware.Spec
}

func (h *sexpHardware) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(hardware %q %s)", h.spec.ID, h.spec.Pattern())
}
func (h *sexpHardware) Type() *zygo.RegisteredType { return nil }

type sexpDrill struct {
	ref part.DrillingRef
}

func (d *sexpDrill) SexpString(ps *zygo.PrintState) string {
	if d.ref.RowConfig != "" {
		return fmt.Sprintf("(drill %q :row :%s)", d.ref.HardwareID, d.ref.RowConfig)
	}
	return fmt.Sprintf("(drill %q)", d.ref.HardwareID)
}
func (d *sexpDrill) Type() *zygo.RegisteredType { return nil }

type sexpRole struct {
	role template.Role
}

func (r *sexpRole) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(role %q :type :%s)", r.role.Name, r.role.Type)
}
func (r *sexpRole) Type() *zygo.RegisteredType { return nil }

type sexpTemplate struct {
	tpl template.Template
}

func (t *sexpTemplate) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(template %q %d roles)", t.tpl.ID, len(t.tpl.Roles))
}
func (t *sexpTemplate) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW checks if a Sexp is a preprocessed keyword string.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			continue
		}
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i++
		} else {
			result.kw[name] = zygo.SexpNull
		}
	}
	return result
}

// float reads a numeric keyword into dst. Missing keywords are an error
// only when required. Values must be finite and lie in [0, part.MaxDimension].
func (a kwArgs) float(fn, key string, dst *float64, required bool) error {
	v, ok := a.kw[key]
	if !ok {
		if required {
			return fmt.Errorf("%s: missing :%s", fn, key)
		}
		return nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", fn, key, err)
	}
	if math.IsNaN(f) || f < 0 || f > part.MaxDimension {
		return fmt.Errorf("%s: %s: %v out of range [0, %v]", fn, key, f, part.MaxDimension)
	}
	*dst = f
	return nil
}

// size is float for hole diameters and depths, which must also be non-zero.
func (a kwArgs) size(fn, key string, dst *float64) error {
	if err := a.float(fn, key, dst, true); err != nil {
		return err
	}
	if *dst == 0 {
		return fmt.Errorf("%s: %s: must be positive", fn, key)
	}
	return nil
}

// str reads a string keyword into dst.
func (a kwArgs) str(fn, key string, dst *string) error {
	v, ok := a.kw[key]
	if !ok {
		return nil
	}
	s, err := toString(v)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", fn, key, err)
	}
	*dst = s
	return nil
}

// name returns the leading positional string argument.
func (a kwArgs) name(fn string) (string, error) {
	if len(a.positional) < 1 {
		return "", fmt.Errorf("%s requires an id as first argument", fn)
	}
	s, err := toString(a.positional[0])
	if err != nil {
		return "", fmt.Errorf("%s: id: %w", fn, err)
	}
	if s == "" {
		return "", fmt.Errorf("%s: id must not be empty", fn)
	}
	return s, nil
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	return strings.TrimPrefix(str.S, kwPrefix), nil
}

// toDimension accepts either a number or an expression string.
func toDimension(s zygo.Sexp) (string, error) {
	if f, err := toFloat64(s); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	}
	str, ok := s.(*zygo.SexpStr)
	if !ok || strings.HasPrefix(str.S, kwPrefix) {
		return "", fmt.Errorf("expected number or expression string, got %s", s.SexpString(nil))
	}
	return str.S, nil
}

func toPartType(s zygo.Sexp) (part.Type, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return "", err
	}
	t := part.Type(name)
	if !t.Valid() {
		return "", fmt.Errorf("unknown part type %q", name)
	}
	return t, nil
}

func toRowConfig(s zygo.Sexp) (part.RowConfig, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return "", err
	}
	switch r := part.RowConfig(name); r {
	case part.RowSingle, part.RowDouble:
		return r, nil
	}
	return "", fmt.Errorf("invalid row %q, expected single or double", name)
}

// ---------------------------------------------------------------------------
// Catalog builder
// ---------------------------------------------------------------------------

// builder accumulates declarations in source order. Redefining an id
// replaces the earlier entry in place and records a warning.
type builder struct {
	hardware  []hardware.Spec
	hwIndex   map[string]int
	templates []template.Template
	tplIndex  map[string]int
	warnings  []EvalWarning
}

func newBuilder() *builder {
	return &builder{hwIndex: map[string]int{}, tplIndex: map[string]int{}}
}

func (b *builder) addHardware(s hardware.Spec) {
	if i, ok := b.hwIndex[s.ID]; ok {
		b.hardware[i] = s
		b.warnings = append(b.warnings, EvalWarning{ID: s.ID, Message: "hardware redefined; last definition wins"})
		return
	}
	b.hwIndex[s.ID] = len(b.hardware)
	b.hardware = append(b.hardware, s)
}

func (b *builder) addTemplate(t template.Template) {
	if i, ok := b.tplIndex[t.ID]; ok {
		b.templates[i] = t
		b.warnings = append(b.warnings, EvalWarning{ID: t.ID, Message: "template redefined; last definition wins"})
		return
	}
	b.tplIndex[t.ID] = len(b.templates)
	b.templates = append(b.templates, t)
}

func (b *builder) catalog() *Catalog {
	return &Catalog{
		Hardware:  append([]hardware.Spec{}, b.hardware...),
		Templates: append([]template.Template{}, b.templates...),
		Warnings:  b.warnings,
	}
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// hardwareBuiltin builds the params of one hardware kind from keyword args.
type hardwareBuiltin struct {
	name     string // as registered, after kebab conversion
	display  string // as written in source
	category hardware.Category
	params   func(fn string, a kwArgs) (hardware.Params, error)
}

var hardwareBuiltins = []hardwareBuiltin{
	// (hinge "id" :label "..." :cup-diameter 35 :cup-depth 13 :cup-from-edge 3)
	{"hinge", "hinge", hardware.CategoryHinge, func(fn string, a kwArgs) (hardware.Params, error) {
		var p hardware.HingeParams
		if err := firstErr(
			a.size(fn, "cup-diameter", &p.CupDiameter),
			a.size(fn, "cup-depth", &p.CupDepth),
			a.float(fn, "cup-from-edge", &p.CupFromEdge, false),
		); err != nil {
			return nil, err
		}
		return p, nil
	}},
	// (slide "id" :ref-row-from-front 37 :rear-hole-offset 224)
	{"slide", "slide", hardware.CategoryDrawerSlide, func(fn string, a kwArgs) (hardware.Params, error) {
		p := hardware.SlideParams{RefRowFromFront: 37}
		if err := firstErr(
			a.float(fn, "ref-row-from-front", &p.RefRowFromFront, false),
			a.float(fn, "rear-hole-offset", &p.RearHoleOffset, true),
		); err != nil {
			return nil, err
		}
		return p, nil
	}},
	// (shelf-row "id" :first-hole-offset 37 :distance-from-edge 37)
	{"shelf_row", "shelf-row", hardware.CategoryShelfRow, func(fn string, a kwArgs) (hardware.Params, error) {
		p := hardware.ShelfRowParams{FirstHoleOffset: 37, DistanceFromEdge: 37}
		if err := firstErr(
			a.float(fn, "first-hole-offset", &p.FirstHoleOffset, false),
			a.float(fn, "distance-from-edge", &p.DistanceFromEdge, false),
		); err != nil {
			return nil, err
		}
		return p, nil
	}},
	// (dowel-joint "id" :diameter 8 :depth 12 :edge-offset 37 :end-offset 9)
	{"dowel_joint", "dowel-joint", hardware.CategoryDowel, func(fn string, a kwArgs) (hardware.Params, error) {
		var p hardware.DowelParams
		if err := firstErr(
			a.size(fn, "diameter", &p.Diameter),
			a.size(fn, "depth", &p.Depth),
			a.float(fn, "edge-offset", &p.EdgeOffset, true),
			a.float(fn, "end-offset", &p.EndOffset, true),
		); err != nil {
			return nil, err
		}
		return p, nil
	}},
	// (back-nailer "id" :diameter 8 :depth 12 :back-offset 28 :nailer-offset 60 :end-offset 9)
	{"back_nailer", "back-nailer", hardware.CategoryDowel, func(fn string, a kwArgs) (hardware.Params, error) {
		var p hardware.BackNailerParams
		if err := firstErr(
			a.size(fn, "diameter", &p.Diameter),
			a.size(fn, "depth", &p.Depth),
			a.float(fn, "back-offset", &p.BackOffset, true),
			a.float(fn, "nailer-offset", &p.NailerOffset, true),
			a.float(fn, "end-offset", &p.EndOffset, true),
		); err != nil {
			return nil, err
		}
		return p, nil
	}},
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// registerBuiltins installs the catalog builtins into a zygomys environment.
// Declarations are collected into b.
//
// Source must be preprocessed with preprocessSource so that :keyword tokens
// arrive as recognizable string literals and kebab-case names resolve.
func registerBuiltins(env *zygo.Zlisp, b *builder) {
	for _, hb := range hardwareBuiltins {
		env.AddFunction(hb.name, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			pa := parseArgs(args)
			id, err := pa.name(hb.display)
			if err != nil {
				return zygo.SexpNull, err
			}
			spec := hardware.Spec{ID: id, Label: id, Category: hb.category}
			if err := pa.str(hb.display, "label", &spec.Label); err != nil {
				return zygo.SexpNull, err
			}
			params, err := hb.params(hb.display, pa)
			if err != nil {
				return zygo.SexpNull, err
			}
			spec.Params = params
			b.addHardware(spec)
			return &sexpHardware{spec: spec}, nil
		})
	}

	// -----------------------------------------------------------------------
	// (drill "system32_row" :row :double)
	// -----------------------------------------------------------------------
	env.AddFunction("drill", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		id, err := pa.name("drill")
		if err != nil {
			return zygo.SexpNull, err
		}
		ref := part.DrillingRef{HardwareID: id}
		if v, ok := pa.kw["row"]; ok {
			r, err := toRowConfig(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("drill: row: %w", err)
			}
			ref.RowConfig = r
		}
		return &sexpDrill{ref: ref}, nil
	})

	// -----------------------------------------------------------------------
	// (role "left_side" :type :cabinetSide
	//       :length "carcass_height_mm" :width "carcass_depth_mm"
	//       (drill ...) ...)
	// -----------------------------------------------------------------------
	env.AddFunction("role", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		roleName, err := pa.name("role")
		if err != nil {
			return zygo.SexpNull, err
		}
		r := template.Role{Name: roleName}

		v, ok := pa.kw["type"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("role: missing :type")
		}
		if r.Type, err = toPartType(v); err != nil {
			return zygo.SexpNull, fmt.Errorf("role: type: %w", err)
		}

		dims := []struct {
			key      string
			dst      *string
			required bool
		}{
			{"length", &r.Length, true},
			{"width", &r.Width, true},
			{"thickness", &r.Thickness, false},
		}
		for _, d := range dims {
			v, ok := pa.kw[d.key]
			if !ok {
				if d.required {
					return zygo.SexpNull, fmt.Errorf("role: missing :%s", d.key)
				}
				continue
			}
			s, err := toDimension(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("role: %s: %w", d.key, err)
			}
			*d.dst = s
		}

		for i, arg := range pa.positional[1:] {
			d, ok := arg.(*sexpDrill)
			if !ok {
				return zygo.SexpNull, fmt.Errorf("role: entry %d: expected drill, got %s", i+1, arg.SexpString(nil))
			}
			r.Drilling = append(r.Drilling, d.ref)
		}
		return &sexpRole{role: r}, nil
	})

	// -----------------------------------------------------------------------
	// (deftemplate "base_600" :label "..." :height 720 :width 600 :depth 560
	//              :thickness 18 (role ...) ...)
	// -----------------------------------------------------------------------
	env.AddFunction("deftemplate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		id, err := pa.name("deftemplate")
		if err != nil {
			return zygo.SexpNull, err
		}
		t := template.Template{ID: id, Label: id}
		if err := firstErr(
			pa.str("deftemplate", "label", &t.Label),
			pa.float("deftemplate", "height", &t.Defaults.Height, false),
			pa.float("deftemplate", "width", &t.Defaults.Width, false),
			pa.float("deftemplate", "depth", &t.Defaults.Depth, false),
			pa.float("deftemplate", "thickness", &t.Defaults.MaterialThickness, false),
		); err != nil {
			return zygo.SexpNull, err
		}

		for i, arg := range pa.positional[1:] {
			r, ok := arg.(*sexpRole)
			if !ok {
				return zygo.SexpNull, fmt.Errorf("deftemplate: entry %d: expected role, got %s", i+1, arg.SexpString(nil))
			}
			t.Roles = append(t.Roles, r.role)
		}
		if len(t.Roles) == 0 {
			return zygo.SexpNull, fmt.Errorf("deftemplate %q: no roles", id)
		}
		b.addTemplate(t)
		return &sexpTemplate{tpl: t}, nil
	})
}
