package diff

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLookup(t *testing.T) {
	wantAuto := "native"
	if _, ok := engines["znkr"]; ok {
		wantAuto = "znkr"
	}

	tests := []struct {
		name    string
		want    string
		wantErr error
	}{
		{name: "", want: wantAuto},
		{name: "auto", want: wantAuto},
		{name: "native", want: "native"},
		{name: "dmp", want: "dmp"},
		{name: "xdiff", wantErr: ErrBackendUnavailable},
		{name: "Native", wantErr: ErrBackendUnavailable},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("name=%q", tt.name), func(t *testing.T) {
			e, err := Lookup(tt.name)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Lookup(%q) error = %v, want %v", tt.name, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got := e.Name(); got != tt.want {
				t.Errorf("Lookup(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestEngines(t *testing.T) {
	got := Engines()
	for _, want := range []string{"dmp", "native"} {
		if !slices.Contains(got, want) {
			t.Errorf("Engines() = %q, missing %q", got, want)
		}
	}
	if !slices.IsSorted(got) {
		t.Errorf("Engines() = %q, not sorted", got)
	}
}

// testInputs returns pairs of inputs used to check invariants that hold for every engine.
func testInputs() [][2][]string {
	inputs := [][2][]string{
		{nil, nil},
		{{"a"}, nil},
		{nil, {"a"}},
		{{"a", "b", "c"}, {"a", "b", "c"}},
		{{"same", "old", "same"}, {"same", "new", "same"}},
		{strings.Split("ABCABBA", ""), strings.Split("CBABAC", "")},
		{{"", "", ""}, {""}},
		{{"a", "b", "c", "d"}, {"d", "c", "b", "a"}},
		{{"a", "  a", ""}, {"  a", "", "", "b", "a", "a"}},
		{{"a", "    b", "}", "", "", "", "b", "}"}, {"}", "", "", "    b"}},
	}
	rnd := rand.New(rand.NewPCG(1, 2))
	gen := func() []string {
		n := rnd.IntN(40)
		lines := make([]string, n)
		for i := range lines {
			lines[i] = string(rune('a' + rnd.IntN(5)))
		}
		return lines
	}
	for range 50 {
		inputs = append(inputs, [2][]string{gen(), gen()})
	}

	// Indented lines and blank lines give the indent heuristic something to work with.
	pool := []string{"a", "  a", "", "}", "    b", "b", "\tc"}
	genIndented := func() []string {
		n := rnd.IntN(16)
		lines := make([]string, n)
		for i := range lines {
			lines[i] = pool[rnd.IntN(len(pool))]
		}
		return lines
	}
	for range 200 {
		inputs = append(inputs, [2][]string{genIndented(), genIndented()})
	}
	return inputs
}

func TestEngineInvariants(t *testing.T) {
	for _, name := range Engines() {
		e, err := Lookup(name)
		if err != nil {
			t.Fatal(err)
		}
		t.Run(name, func(t *testing.T) {
			for i, in := range testInputs() {
				x, y := in[0], in[1]
				d := &Diff{edits: e.Edits(x, y)}
				if err := d.Check(x, y); err != nil {
					t.Errorf("input %d: %v", i, err)
				}
				if diff := cmp.Diff(d.edits, Reverse(Reverse(d.edits))); diff != "" {
					t.Errorf("input %d: reverse isn't an involution (-want +got):\n%s", i, diff)
				}
				if id := e.Edits(x, x); !(&Diff{edits: id}).IsEmpty() {
					t.Errorf("input %d: comparing x with itself isn't empty: %v", i, id)
				}

				hd, err := New(x, y, WithEngine(name), WithIndentHeuristic())
				if err != nil {
					t.Fatalf("input %d: New with indent heuristic: %v", i, err)
				}
				if err := hd.Check(x, y); err != nil {
					t.Errorf("input %d: with indent heuristic: %v", i, err)
				}
				if got, want := hd.LCS(), d.LCS(); got != want {
					t.Errorf("input %d: indent heuristic changed LCS() from %d to %d", i, want, got)
				}
			}
		})
	}
}

// lcs computes the length of the longest common subsequence with dynamic programming.
func lcs(x, y []string) int {
	dp := make([][]int, len(x)+1)
	for i := range dp {
		dp[i] = make([]int, len(y)+1)
	}
	for i := len(x) - 1; i >= 0; i-- {
		for j := len(y) - 1; j >= 0; j-- {
			if x[i] == y[j] {
				dp[i][j] = dp[i+1][j+1] + 1
			} else {
				dp[i][j] = max(dp[i+1][j], dp[i][j+1])
			}
		}
	}
	return dp[0][0]
}

func TestNativeIsMinimal(t *testing.T) {
	for i, in := range testInputs() {
		x, y := in[0], in[1]
		d := &Diff{edits: native{}.Edits(x, y)}
		if got, want := d.LCS(), lcs(x, y); got != want {
			t.Errorf("input %d: LCS() = %d, want %d", i, got, want)
		}
	}
}

func TestDMPEncoding(t *testing.T) {
	for _, i := range []int{0, 1, surrogateMin - 1, surrogateMin, surrogateMin + 1, maxLineRunes - 1} {
		r := encodeIndex(i)
		if r >= surrogateMin && r < surrogateMin+surrogateGap {
			t.Errorf("encodeIndex(%d) = %U, a surrogate", i, r)
		}
		if got := decodeIndex(r); got != i {
			t.Errorf("decodeIndex(encodeIndex(%d)) = %d", i, got)
		}
	}
}
