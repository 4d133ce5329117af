//go:build !nozdiff

package diff

import zdiff "znkr.io/diff"

func init() {
	register(znkr{})
}

// znkr delegates to znkr.io/diff, which falls back to heuristics on large inputs and scales much
// better than the native engine.
type znkr struct{}

func (znkr) Name() string { return "znkr" }

func (znkr) Edits(x, y []string) []Edit {
	var b builder
	for _, e := range zdiff.Edits(x, y) {
		switch e.Op {
		case zdiff.Match:
			b.match(e.X)
		case zdiff.Delete:
			b.delete(e.X)
		case zdiff.Insert:
			b.insert(e.Y)
		}
	}
	return b.finish()
}
