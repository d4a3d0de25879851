// Package pipeline wires the drilling stages together: hardware lookup,
// hole generation, normalization, SQL and file export. Every call is pure
// and recomputes from scratch.
package pipeline

import (
	"strings"

	"github.com/chazu/cabdrill/pkg/export"
	"github.com/chazu/cabdrill/pkg/hardware"
	"github.com/chazu/cabdrill/pkg/location"
	"github.com/chazu/cabdrill/pkg/part"
	"github.com/chazu/cabdrill/pkg/pattern"
	"github.com/chazu/cabdrill/pkg/sqlgen"
	"github.com/chazu/cabdrill/pkg/template"
)

// Result is everything computed for one part and hardware pair.
type Result struct {
	Part     part.Descriptor   `json:"part"`
	PartID   string            `json:"part_id"`
	Hardware *hardware.Spec    `json:"hardware"`
	Holes    []pattern.Hole    `json:"holes"`
	Records  []location.Record `json:"records"`
	SQL      sqlgen.Statements `json:"sql"`
	Files    []export.File     `json:"files"`
}

// Compute runs the full pipeline for p. Unknown hardware yields no holes
// and a nil Hardware, but SQL and files are still produced.
func Compute(reg pattern.Lookup, p part.Descriptor, hardwareID string) Result {
	var hw *hardware.Spec
	if reg != nil {
		if spec, ok := reg.Lookup(hardwareID); ok {
			hw = &spec
		}
	}

	holes := []pattern.Hole{}
	if hw != nil {
		holes = pattern.GenerateFor(p, *hw)
	}
	records := location.Normalize(p, holes)

	res := Result{
		Part:     p,
		Hardware: hw,
		Holes:    holes,
		Records:  records,
		SQL:      sqlgen.Emit(&p, hw, records),
		Files:    export.All(&p, hw, records),
	}
	if p.Type != "" {
		res.PartID = p.ID()
	}
	return res
}

// Batch is the result of computing every drilling reference of an
// expanded template.
type Batch struct {
	TemplateID string            `json:"template_id"`
	Parts      []part.Descriptor `json:"parts"`
	Results    []Result          `json:"results"`
	SQL        string            `json:"sql"`
}

// ComputeTemplate expands templateID with size and computes each part
// against each of its drilling references, applying the reference's row
// configuration. Parts without references appear in Parts only.
func ComputeTemplate(reg pattern.Lookup, catalog *template.Catalog, templateID string, size template.Size) Batch {
	b := Batch{TemplateID: templateID, Parts: []part.Descriptor{}, Results: []Result{}}
	if catalog == nil {
		return b
	}
	b.Parts = catalog.Expand(templateID, size)

	var sql []string
	for _, p := range b.Parts {
		for _, ref := range p.Drilling {
			r := Compute(reg, p.WithRow(ref.RowConfig), ref.HardwareID)
			b.Results = append(b.Results, r)
			if r.SQL.Combined != "" {
				sql = append(sql, r.SQL.Combined)
			}
		}
	}
	b.SQL = strings.Join(sql, "\n\n")
	return b
}

// HoleCount sums the holes of every result.
func (b Batch) HoleCount() int {
	n := 0
	for _, r := range b.Results {
		n += len(r.Holes)
	}
	return n
}
