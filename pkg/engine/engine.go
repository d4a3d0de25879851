// Package engine loads shop catalogs written in a small Lisp. It wraps
// zygomys in a sandboxed environment and collects the hardware specs and
// cabinet templates the source declares.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/cabdrill/pkg/hardware"
	"github.com/chazu/cabdrill/pkg/template"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or a runtime error in catalog source.
type EvalError struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// EvalWarning is a non-fatal problem with an otherwise valid catalog.
type EvalWarning struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// Catalog is the output of a successful load.
type Catalog struct {
	Hardware  []hardware.Spec     `json:"hardware"`
	Templates []template.Template `json:"templates"`
	Warnings  []EvalWarning       `json:"warnings,omitempty"`
}

// Registry returns base extended with the catalog's hardware.
func (c *Catalog) Registry(base *hardware.Registry) *hardware.Registry {
	if c == nil || len(c.Hardware) == 0 {
		return base
	}
	return base.With(c.Hardware...)
}

// TemplateCatalog returns base extended with the catalog's templates.
func (c *Catalog) TemplateCatalog(base *template.Catalog) *template.Catalog {
	if c == nil || len(c.Templates) == 0 {
		return base
	}
	return base.With(c.Templates...)
}

// Engine wraps the zygomys interpreter. It is safe for concurrent use;
// each load creates a fresh sandboxed environment.
type Engine struct {
	mu         sync.Mutex
	generation uint64
	timeout    time.Duration

	// running counts evaluation goroutines that have not returned yet.
	running atomic.Int32
}

// NewEngine creates a new Engine with the default EvalTimeout.
func NewEngine() *Engine {
	return &Engine{timeout: EvalTimeout}
}

// WithTimeout sets the evaluation limit. Non-positive values restore the
// default.
func (e *Engine) WithTimeout(d time.Duration) *Engine {
	e.mu.Lock()
	defer e.mu.Unlock()
	if d <= 0 {
		d = EvalTimeout
	}
	e.timeout = d
	return e
}

// LoadCatalog evaluates catalog source and returns what it declares.
//
// Return semantics:
//   - On success: returns catalog + nil errors + nil error
//   - On parse/eval failure: returns nil catalog + eval errors + nil error
//   - On fatal failure (timeout, panic, superseded): returns nil + nil + error
func (e *Engine) LoadCatalog(source string) (*Catalog, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	timeout := e.timeout
	e.mu.Unlock()

	ch := make(chan evalResult, 1)
	var halt atomic.Bool

	e.running.Add(1)
	go func() {
		defer e.running.Add(-1)
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		c, evalErrs, err := e.evaluate(source, &halt)
		ch <- evalResult{catalog: c, errors: evalErrs, err: err}
	}()

	return waitWithTimeout(ch, gen, timeout, &e.mu, &e.generation, func() {
		halt.Store(true)
	})
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
// Setting halt aborts it at the next function call.
func (e *Engine) evaluate(source string, halt *atomic.Bool) (*Catalog, []EvalError, error) {
	// Empty source is a valid, empty catalog.
	if strings.TrimSpace(source) == "" {
		return &Catalog{}, nil, nil
	}

	env := zygo.NewZlispSandbox()
	defer env.Stop()

	haltOnCall(env, halt)

	b := newBuilder()
	registerBuiltins(env, b)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err), nil
	}
	if _, err := env.Run(); err != nil {
		return nil, parseZygomysError(err), nil
	}

	return b.catalog(), nil, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError values.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{
				Line:    line,
				Message: strings.TrimSpace(m[2]),
			}}
		}
	}

	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
