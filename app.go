package main

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/chazu/cabdrill/pkg/engine"
	"github.com/chazu/cabdrill/pkg/hardware"
	"github.com/chazu/cabdrill/pkg/kernel"
	"github.com/chazu/cabdrill/pkg/kernel/sdfx"
	"github.com/chazu/cabdrill/pkg/part"
	"github.com/chazu/cabdrill/pkg/pattern"
	"github.com/chazu/cabdrill/pkg/pipeline"
	"github.com/chazu/cabdrill/pkg/preview"
	"github.com/chazu/cabdrill/pkg/sqlgen"
	"github.com/chazu/cabdrill/pkg/template"
)

// App is the backend binding surface. It holds the active hardware and
// template catalogs; every computation reads a snapshot of them and is
// otherwise stateless.
type App struct {
	engine *engine.Engine
	kernel kernel.Kernel

	mu        sync.RWMutex
	hardware  *hardware.Registry
	templates *template.Catalog
}

// EvalErrorData is a JSON-serializable catalog diagnostic.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// CatalogResult reports the outcome of loading catalog source.
type CatalogResult struct {
	Hardware  int             `json:"hardware"`
	Templates int             `json:"templates"`
	Errors    []EvalErrorData `json:"errors"`
	Warnings  []EvalErrorData `json:"warnings"`
}

// PreviewResult is a drilled panel mesh plus the geometry check findings.
type PreviewResult struct {
	PartID    string          `json:"part_id"`
	HoleCount int             `json:"hole_count"`
	Mesh      *kernel.Mesh    `json:"mesh"`
	Issues    []preview.Issue `json:"issues"`
}

// NewApp creates an App with the built-in catalogs and the sdfx kernel.
func NewApp() *App {
	return &App{
		engine:    engine.NewEngine(),
		kernel:    sdfx.New(),
		hardware:  hardware.Default(),
		templates: template.DefaultCatalog(),
	}
}

func (a *App) snapshot() (*hardware.Registry, *template.Catalog) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.hardware, a.templates
}

// Hardware lists every hardware spec, ordered by id.
func (a *App) Hardware() []hardware.Spec {
	reg, _ := a.snapshot()
	return reg.All()
}

// LookupHardware returns the hardware spec with the given id.
func (a *App) LookupHardware(id string) (hardware.Spec, bool) {
	reg, _ := a.snapshot()
	return reg.Lookup(id)
}

// Templates lists every cabinet template, ordered by id.
func (a *App) Templates() []template.Template {
	_, cat := a.snapshot()
	return cat.All()
}

// LookupTemplate returns the template with the given id.
func (a *App) LookupTemplate(id string) (template.Template, bool) {
	_, cat := a.snapshot()
	return cat.Get(id)
}

// Expand expands a template into part descriptors.
func (a *App) Expand(templateID string, size template.Size) []part.Descriptor {
	_, cat := a.snapshot()
	return cat.Expand(templateID, size)
}

// Compute runs the drilling pipeline for one part and hardware id.
func (a *App) Compute(p part.Descriptor, hardwareID string) pipeline.Result {
	reg, _ := a.snapshot()
	return pipeline.Compute(reg, p, hardwareID)
}

// ComputeTemplate expands a template and computes every drilling reference.
func (a *App) ComputeTemplate(templateID string, size template.Size) pipeline.Batch {
	reg, cat := a.snapshot()
	return pipeline.ComputeTemplate(reg, cat, templateID, size)
}

// Preview drills p for hardwareID and meshes the resulting panel.
func (a *App) Preview(p part.Descriptor, hardwareID string) (PreviewResult, error) {
	reg, _ := a.snapshot()
	holes := pattern.Generate(reg, p, hardwareID)

	mesh, err := preview.Panel(a.kernel, p, holes)
	if err != nil {
		return PreviewResult{}, err
	}
	return PreviewResult{
		PartID:    p.ID(),
		HoleCount: len(holes),
		Mesh:      mesh,
		Issues:    preview.Check(p, holes),
	}, nil
}

// Schema returns the DDL for the tables the emitted SQL targets.
func (a *App) Schema() string {
	return sqlgen.Schema()
}

// LoadCatalog evaluates catalog source and, when it succeeds, layers its
// hardware and templates over the active catalogs. A source with errors
// leaves the active catalogs untouched. The error return is reserved for
// fatal failures (panics, timeouts).
func (a *App) LoadCatalog(source string) (CatalogResult, error) {
	result := CatalogResult{
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}

	c, evalErrs, err := a.engine.LoadCatalog(source)
	if err != nil {
		return result, fmt.Errorf("load catalog: %w", err)
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{Line: e.Line, Col: e.Col, Message: e.Message})
		}
		return result, nil
	}

	for _, w := range c.Warnings {
		result.Warnings = append(result.Warnings, EvalErrorData{Message: fmt.Sprintf("%s: %s", w.ID, w.Message)})
	}
	result.Hardware = len(c.Hardware)
	result.Templates = len(c.Templates)

	a.mu.Lock()
	a.hardware = c.Registry(a.hardware)
	a.templates = c.TemplateCatalog(a.templates)
	a.mu.Unlock()

	return result, nil
}

// LoadCatalogFile reads and loads a catalog source file.
func (a *App) LoadCatalogFile(path string) (CatalogResult, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return CatalogResult{}, fmt.Errorf("read catalog %s: %w", path, err)
	}
	res, err := a.LoadCatalog(string(src))
	if err != nil {
		return res, err
	}
	if len(res.Errors) > 0 {
		return res, fmt.Errorf("catalog %s: %d error(s), first: %s", path, len(res.Errors), res.Errors[0].Message)
	}
	for _, w := range res.Warnings {
		slog.Warn("catalog warning", "path", path, "warning", w.Message)
	}
	return res, nil
}
