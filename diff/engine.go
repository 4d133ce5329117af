package diff

import (
	"fmt"
	"maps"
	"slices"
)

// Engine computes an edit script between two sequences of lines.
//
// Implementations must return a coalesced script whose Orig sides concatenate to x and whose Final
// sides concatenate to y.
type Engine interface {
	Name() string
	Edits(x, y []string) []Edit
}

// Auto is the name of the pseudo engine that selects the best available engine.
const Auto = "auto"

// Engines are registered once during package initialization, the registry is read only afterwards.
var engines = map[string]Engine{}

// Priority order used by Auto. Engines that aren't compiled in are skipped.
var autoOrder = []string{"znkr", "native"}

func register(e Engine) {
	if _, ok := engines[e.Name()]; ok {
		panic("duplicate diff engine: " + e.Name())
	}
	engines[e.Name()] = e
}

func init() {
	register(native{})
}

// Lookup returns the engine with the given name. The name "auto" or an empty name selects the
// first available engine in priority order. Unknown engines and engines excluded from the build
// result in an error matching [ErrBackendUnavailable].
func Lookup(name string) (Engine, error) {
	if name == "" || name == Auto {
		for _, n := range autoOrder {
			if e, ok := engines[n]; ok {
				return e, nil
			}
		}
		return nil, fmt.Errorf("%w: no engine compiled in", ErrBackendUnavailable)
	}
	e, ok := engines[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBackendUnavailable, name)
	}
	return e, nil
}

// Engines returns the sorted names of all engines compiled into the binary.
func Engines() []string {
	return slices.Sorted(maps.Keys(engines))
}

// native is the in-process Myers engine.
type native struct{}

func (native) Name() string { return "native" }

func (native) Edits(x, y []string) []Edit {
	return fromSteps(myers(x, y))
}

func fromSteps(steps []step) []Edit {
	var b builder
	for _, s := range steps {
		switch s.op {
		case match:
			b.match(s.line)
		case del:
			b.delete(s.line)
		case ins:
			b.insert(s.line)
		}
	}
	return b.finish()
}
