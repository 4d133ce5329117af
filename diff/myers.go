package diff

// Implementation note: The native engine is an implementation of Myers' diff algorithm. These
// algorithms seem like magic when read in code. They are not magic though, but they do require a
// bit of reading to understand them. The following links give a good explanation of this algorithm
// and working on this code will likely require re-reading how the algorithm works:
//
// https://blog.jcoglan.com/2017/02/12/the-myers-diff-algorithm-part-1/
// https://blog.jcoglan.com/2017/02/15/the-myers-diff-algorithm-part-2/
// https://blog.jcoglan.com/2017/02/17/the-myers-diff-algorithm-part-3/
//
// Tie-break: among all shortest edit scripts, the greedy forward pass keeps the path that reaches
// furthest into x on every diagonal. When backtracking, a deletion is preferred over an insertion
// whenever both lead to an equally long path. As a result, deletions come before insertions inside
// a changed region and common lines are aligned as early as possible.

import (
	"fmt"
	"slices"
)

const debug bool = false

type stepOp int

const (
	match stepOp = iota // Lines match
	del                 // A line from x is missing in y
	ins                 // A line from y is missing in x
)

// step is a single line-level edit.
type step struct {
	op   stepOp
	line string
}

// myers performs a line wise diff of x and y and returns one step per line.
func myers(x, y []string) []step {
	var steps, suffix []step

	// Try to reduce the amount of work necessary by skipping a common prefix
	if n := longestCommonPrefix(x, y); n > 0 {
		steps = slices.Grow(steps, n)
		for i := range n {
			steps = append(steps, step{match, x[i]})
		}
		x = x[n:]
		y = y[n:]
	}

	// Try to reduce the amount of work necessary by skipping a common suffix
	if n := longestCommonSuffix(x, y); n > 0 {
		suffix = make([]step, 0, n)
		for i := range n {
			suffix = append(suffix, step{match, x[len(x)-n+i]})
		}
		x = x[:len(x)-n]
		y = y[:len(y)-n]
	}

	switch {
	case len(x) == 0 && len(y) == 0:
		// nothing left to do
	case len(x) == 0:
		steps = slices.Grow(steps, len(y))
		for i := range y {
			steps = append(steps, step{ins, y[i]})
		}
	case len(y) == 0:
		steps = slices.Grow(steps, len(x))
		for i := range x {
			steps = append(steps, step{del, x[i]})
		}
	default:
		steps = findShortestEditSequence(steps, x, y)
	}

	return append(steps, suffix...)
}

func longestCommonPrefix(x, y []string) int {
	n := min(len(x), len(y))
	for i := range n {
		if x[i] != y[i] {
			return i
		}
	}
	return n
}

func longestCommonSuffix(x, y []string) int {
	n := min(len(x), len(y))
	for i := range n {
		if x[len(x)-i-1] != y[len(y)-i-1] {
			return i
		}
	}
	return n
}

func findShortestEditSequence(steps []step, x, y []string) []step {
	if len(x)+len(y) < 0 {
		panic("inputs too large")
	}

	v := computeMyersGraph(x, y)

	// Appends steps in reverse order by backtracking along the edges in the myersGraph and
	// reverses them in place.
	preexisting := len(steps) // Used to reverse the appended steps.
	s := len(x)
	t := len(y)

	for d := v.maxDepth; ; d-- {
		k := s - t
		if debug {
			if max(k, -k)%2 != d%2 {
				panic("invariant violation")
			}
		}

		var prevK int
		switch {
		case d == 0:
			prevK = 0
		case k == -d || (k != d && v.get(d-1, k-1) < v.get(d-1, k+1)):
			prevK = k + 1
		default:
			prevK = k - 1
		}

		prevS := 0
		if d > 0 {
			prevS = v.get(d-1, prevK)
		}
		prevT := prevS - prevK

		for prevS < s && prevT < t {
			steps = append(steps, step{match, x[s-1]})
			s--
			t--
		}

		if d == 0 {
			break
		}

		if debug {
			if prevS == s && prevT == t {
				panic("invariant violation")
			}
		}
		if prevS == s {
			steps = append(steps, step{ins, y[prevT]})
		} else {
			if debug {
				if prevT != t {
					panic("invariant violation")
				}
			}
			steps = append(steps, step{del, x[prevS]})
		}

		s = prevS
		t = prevT
	}

	slices.Reverse(steps[preexisting:])
	return steps
}

// myersGraph stores the graph that is generated during findShortestEditSequence. The graph is
// stored in a flat slice and by storing the full graph, it's not necessary to record a trace at
// every depth iteration.
type myersGraph struct {
	v        []int
	maxDepth int
}

func (g *myersGraph) upgradeMaxDepth(maxDepth int) {
	if maxDepth < g.maxDepth {
		return
	}
	n := (maxDepth + 2) * (maxDepth + 1) / 2
	g.v = slices.Grow(g.v, n-len(g.v))
	g.v = g.v[:n]
	g.maxDepth = maxDepth
}

func (g *myersGraph) get(d, k int) int    { return g.v[g.index(d, k)] }
func (g *myersGraph) set(d, k int, v int) { g.v[g.index(d, k)] = v }

func (g *myersGraph) index(d, k int) int {
	if debug {
		if d < 0 || d > g.maxDepth {
			panic(fmt.Sprintf("d must be in [0, %v] but is %v", g.maxDepth, d))
		}
		if k < -d || k > d {
			panic(fmt.Sprintf("k must be in [%v, %v] but is %v", -d, d, k))
		}
		if k&1 != d&1 {
			panic(fmt.Sprintf("d and k must have same parity: %v vs %v", d, k))
		}
	}
	// The number of k's is always equal to d + 1. Therefore, we know how many k's were before
	// this d: (d + 1) * d / 2. The k's of this d are stored in steps of two starting at -d.
	return (d+1)*d/2 + (k+d)/2
}

func computeMyersGraph(x, y []string) myersGraph {
	v := myersGraph{maxDepth: -1}
	dMax := len(x) + len(y)
	for d := range dMax + 1 {
		v.upgradeMaxDepth(d)
		for k := -d; k <= d; k += 2 {
			var s int
			if d == 0 {
				s = 0
			} else if k == -d || (k != d && v.get(d-1, k-1) < v.get(d-1, k+1)) {
				s = v.get(d-1, k+1)
			} else {
				s = v.get(d-1, k-1) + 1
			}
			t := s - k

			if s < len(x) && t < len(y) {
				lcp := longestCommonPrefix(x[s:], y[t:])
				s += lcp
				t += lcp
			}

			v.set(d, k, s)

			if s >= len(x) && t >= len(y) {
				return v
			}
		}
	}
	panic("never reached")
}
