package diff

import (
	"errors"
	"strings"
	"testing"

	"github.com/aymanbagabas/go-udiff"
	"github.com/google/go-cmp/cmp"
	"github.com/pmezard/go-difflib/difflib"
)

const unifiedPatch = `diff --git a/a.txt b/a.txt
index 3b18e51..a0b1f4c 100644
--- a/a.txt
+++ b/a.txt
@@ -1,3 +1,3 @@
 a
-b
+B
 c
@@ -10,2 +10,3 @@ func section()
 x
+y
 z
`

const contextPatch = `*** a.txt	2024-01-01 00:00:00
--- b.txt	2024-01-01 00:00:00
***************
*** 1,3 ****
  a
! b
  c
--- 1,3 ----
  a
! B
  c
***************
*** 10,11 ****
--- 10,12 ----
  x
+ y
  z
`

func TestParsePatch(t *testing.T) {
	twoHunks := []Edit{
		CopyEdit([]string{"a"}),
		ChangeEdit([]string{"b"}, []string{"B"}),
		CopyEdit([]string{"c", "x"}),
		AddEdit([]string{"y"}),
		CopyEdit([]string{"z"}),
	}

	tests := []struct {
		name   string
		text   string
		format PatchFormat
		want   []Edit
	}{
		{
			name: "empty",
		},
		{
			name: "whitespace-only",
			text: "\n\n",
		},
		{
			name:   "unified",
			text:   unifiedPatch,
			format: Unified,
			want:   twoHunks,
		},
		{
			name: "unified-autodetect",
			text: unifiedPatch,
			want: twoHunks,
		},
		{
			name:   "context",
			text:   contextPatch,
			format: Context,
			want:   twoHunks,
		},
		{
			name: "context-autodetect",
			text: contextPatch,
			want: twoHunks,
		},
		{
			name: "unified-no-newline",
			text: "@@ -1 +1 @@\n-a\n\\ No newline at end of file\n+b\n\\ No newline at end of file\n",
			want: []Edit{
				ChangeEdit([]string{"a"}, []string{"b"}),
			},
		},
		{
			name: "unified-empty-context-line",
			text: "@@ -1,3 +1,2 @@\n a\n\n-c\n",
			want: []Edit{
				CopyEdit([]string{"a", ""}),
				DeleteEdit([]string{"c"}),
			},
		},
		{
			name: "unified-new-file",
			text: "--- /dev/null\n+++ b\n@@ -0,0 +1,2 @@\n+a\n+b\n",
			want: []Edit{
				AddEdit([]string{"a", "b"}),
			},
		},
		{
			name: "context-deletion-only",
			text: "***************\n*** 1,3 ****\n  a\n- b\n  c\n--- 1,2 ----\n",
			want: []Edit{
				CopyEdit([]string{"a"}),
				DeleteEdit([]string{"b"}),
				CopyEdit([]string{"c"}),
			},
		},
		{
			name: "context-mixed",
			text: "***************\n*** 1,4 ****\n- a\n  b\n! c\n  d\n--- 1,4 ----\n  b\n! C\n+ e\n  d\n",
			want: []Edit{
				DeleteEdit([]string{"a"}),
				CopyEdit([]string{"b"}),
				ChangeEdit([]string{"c"}, []string{"C", "e"}),
				CopyEdit([]string{"d"}),
			},
		},
		{
			name: "context-single-line-ranges",
			text: "***************\n*** 1 ****\n! a\n--- 1 ----\n! b\n",
			want: []Edit{
				ChangeEdit([]string{"a"}, []string{"b"}),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePatch(tt.text, tt.format)
			if err != nil {
				t.Fatalf("ParsePatch() = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParsePatch result is different (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParsePatchMalformed(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		format   PatchFormat
		wantLine int
	}{
		{
			name:     "no-hunk",
			text:     "garbage\nmore garbage\n",
			wantLine: 3,
		},
		{
			name:     "unified-as-context",
			text:     "@@ -1 +1 @@\n-a\n+b\n",
			format:   Context,
			wantLine: 4,
		},
		{
			name:     "unified-hunk-too-short",
			text:     "@@ -1,2 +1,2 @@\n a\n",
			wantLine: 3,
		},
		{
			name:     "unified-hunk-too-long",
			text:     "@@ -1 +1 @@\n a\n b\n",
			wantLine: 3,
		},
		{
			name:     "unified-too-many-deletions",
			text:     "@@ -1 +1,2 @@\n-a\n-b\n+c\n",
			wantLine: 3,
		},
		{
			name:     "unified-unknown-tag",
			text:     "@@ -1,2 +1,2 @@\n a\n?b\n",
			wantLine: 3,
		},
		{
			name:     "unified-trailing-garbage",
			text:     "@@ -1 +1 @@\n-a\n+b\n--- c\n",
			wantLine: 4,
		},
		{
			name:     "unified-count-overflow",
			text:     "@@ -1,99999999999999999999 +1 @@\n-a\n+b\n",
			wantLine: 1,
		},
		{
			name:     "context-missing-final-range",
			text:     "***************\n*** 1 ****\n! a\n",
			wantLine: 4,
		},
		{
			name:     "context-count-mismatch",
			text:     "***************\n*** 1,3 ****\n  a\n- b\n--- 1 ----\n  a\n",
			wantLine: 7,
		},
		{
			name:     "context-change-on-one-side",
			text:     "***************\n*** 1,2 ****\n  a\n! b\n--- 1,2 ----\n",
			wantLine: 6,
		},
		{
			name:     "context-lines-differ",
			text:     "***************\n*** 1,2 ****\n  a\n- b\n--- 1 ----\n  x\n",
			wantLine: 7,
		},
		{
			name:     "context-bad-prefix",
			text:     "***************\n*** 1,2 ****\n  a\n+ b\n--- 1 ----\n",
			wantLine: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePatch(tt.text, tt.format)
			if !errors.Is(err, ErrMalformedPatch) {
				t.Fatalf("ParsePatch() = %v, want %v", err, ErrMalformedPatch)
			}
			var perr *PatchError
			if !errors.As(err, &perr) {
				t.Fatalf("ParsePatch() = %T, want *PatchError", err)
			}
			if perr.Line != tt.wantLine {
				t.Errorf("PatchError.Line = %d, want %d (%v)", perr.Line, tt.wantLine, err)
			}
		})
	}
}

func TestParseHunkHeader(t *testing.T) {
	tests := []struct {
		line    string
		want    HunkHeader
		wantOK  bool
		wantErr bool
	}{
		{line: "@@ -1,3 +1,4 @@", want: HunkHeader{1, 3, 1, 4}, wantOK: true},
		{line: "@@ -5 +6 @@ func main() {", want: HunkHeader{5, 1, 6, 1}, wantOK: true},
		{line: "@@ -0,0 +1,2 @@", want: HunkHeader{0, 0, 1, 2}, wantOK: true},
		{line: " a"},
		{line: "@@ -1,99999999999999999999 +1 @@", wantOK: true, wantErr: true},
		{line: "@@ -99999999999999999999 +1 @@", wantOK: true, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok, err := ParseHunkHeader(tt.line)
			if ok != tt.wantOK || (err != nil) != tt.wantErr {
				t.Fatalf("ParseHunkHeader(%q) = _, %v, %v, want _, %v, error %v", tt.line, ok, err, tt.wantOK, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseHunkHeader result is different (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParsePatchFromUdiff(t *testing.T) {
	tests := []struct {
		name     string
		old, new string
	}{
		{
			name: "change",
			old:  "a\nb\nc\nd\n",
			new:  "a\nB\nc\nd\n",
		},
		{
			name: "insert-and-delete",
			old:  "one\ntwo\nthree\nfour\n",
			new:  "zero\none\ntwo\nfour\nfive\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patch := udiff.Unified("a", "b", tt.old, tt.new)
			d, err := FromPatch(patch, AutoDetect)
			if err != nil {
				t.Fatalf("FromPatch() = %v\n%s", err, patch)
			}
			if err := d.Check(SplitLines(tt.old), SplitLines(tt.new)); err != nil {
				t.Errorf("Check() = %v\n%s", err, patch)
			}
		})
	}
}

func TestParsePatchFromDifflib(t *testing.T) {
	tests := []struct {
		name     string
		old, new []string
	}{
		{
			name: "change",
			old:  []string{"a", "b", "c", "d"},
			new:  []string{"a", "B", "c", "d"},
		},
		{
			name: "insert-only",
			old:  []string{"a", "b", "c"},
			new:  []string{"a", "b", "x", "c"},
		},
		{
			name: "delete-only",
			old:  []string{"a", "b", "c"},
			new:  []string{"a", "c"},
		},
	}

	withNewlines := func(lines []string) []string {
		ret := make([]string, len(lines))
		for i, l := range lines {
			ret[i] = l + "\n"
		}
		return ret
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patch, err := difflib.GetContextDiffString(difflib.ContextDiff{
				A:        withNewlines(tt.old),
				B:        withNewlines(tt.new),
				FromFile: "a",
				ToFile:   "b",
				Context:  3,
			})
			if err != nil {
				t.Fatal(err)
			}
			if !strings.HasPrefix(patch, "*** a") {
				t.Fatalf("unexpected context diff:\n%s", patch)
			}
			d, err := FromPatch(patch, AutoDetect)
			if err != nil {
				t.Fatalf("FromPatch() = %v\n%s", err, patch)
			}
			if err := d.Check(tt.old, tt.new); err != nil {
				t.Errorf("Check() = %v\n%s", err, patch)
			}
		})
	}
}
