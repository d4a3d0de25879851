package engine

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	zygo "github.com/glycerine/zygomys/zygo"
)

// EvalTimeout is the default limit for a single catalog load.
const EvalTimeout = 5 * time.Second

// ErrEvalTimeout is returned when a load exceeds its limit.
var ErrEvalTimeout = errors.New("evaluation timed out")

// errHalted unwinds a sandbox whose load has already timed out.
var errHalted = errors.New("evaluation halted")

type evalResult struct {
	catalog *Catalog
	errors  []EvalError
	err     error
}

// haltOnCall makes env panic with errHalted at its next function call once
// halt is set. zygomys has no way to interrupt Run, so a loop that makes no
// calls at all keeps its goroutine until it ends on its own.
func haltOnCall(env *zygo.Zlisp, halt *atomic.Bool) {
	env.AddPreHook(func(*zygo.Zlisp, string, []zygo.Sexp) {
		if halt.Load() {
			panic(errHalted)
		}
	})
}

// waitWithTimeout waits for a result from ch, but returns ErrEvalTimeout
// if the evaluation exceeds timeout. A result whose generation is no longer
// current is discarded.
//
// On timeout onTimeout is called so the evaluation can be halted; its
// result, if any, is dropped.
func waitWithTimeout(
	ch <-chan evalResult,
	gen uint64,
	timeout time.Duration,
	mu *sync.Mutex,
	currentGen *uint64,
	onTimeout func(),
) (*Catalog, []EvalError, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		mu.Lock()
		current := *currentGen
		mu.Unlock()

		if gen != current {
			return nil, nil, fmt.Errorf("evaluation superseded by newer request")
		}
		return res.catalog, res.errors, res.err

	case <-timer.C:
		if onTimeout != nil {
			onTimeout()
		}
		return nil, nil, fmt.Errorf("%w after %s", ErrEvalTimeout, timeout)
	}
}
