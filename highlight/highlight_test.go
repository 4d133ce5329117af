package highlight

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"znkr.io/diffkit/diff"
)

func TestEdits(t *testing.T) {
	edits := []diff.Edit{
		diff.CopyEdit([]string{"a"}),
		diff.ChangeEdit([]string{"b <x>"}, []string{"B", "C"}),
		diff.CopyEdit([]string{"d"}),
		diff.DeleteEdit([]string{"e"}),
	}
	want := []Line{
		{diff.Copy, 1, 1, "a"},
		{diff.Delete, 2, -1, "b &lt;x&gt;"},
		{diff.Add, -1, 2, "B"},
		{diff.Add, -1, 3, "C"},
		{diff.Copy, 3, 4, "d"},
		{diff.Delete, 4, -1, "e"},
	}
	got, err := Edits(edits)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Edits() result is different (-want +got):\n%s", diff)
	}
}

func TestEditsLang(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"lang", Lang("go")},
		{"filename", LangFromFilename("main.go")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Edits([]diff.Edit{diff.AddEdit([]string{"func main() {}"})}, tt.opt)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != 1 {
				t.Fatalf("Edits() returned %d lines, want 1", len(got))
			}
			content := string(got[0].Content)
			if !strings.Contains(content, `<span class="hl-b">func</span>`) {
				t.Errorf("Edits() = %q, want highlighted keyword", content)
			}
			if strings.Contains(content, "\n") {
				t.Errorf("Edits() = %q, contains a line break", content)
			}
		})
	}
}

func TestParseUnified(t *testing.T) {
	in := "--- a\n+++ b\n@@ -3,3 +3,3 @@\n a\n-b\n+B\n c\n\\ No newline at end of file\n@@ -10,0 +11,1 @@\n+x\n"
	want := []Line{
		{diff.Copy, 3, 3, "a"},
		{diff.Delete, 4, -1, "b"},
		{diff.Add, -1, 4, "B"},
		{diff.Copy, 5, 5, "c"},
		{diff.Add, -1, 11, "x"},
	}
	got, err := ParseUnified(in)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseUnified() result is different (-want +got):\n%s", diff)
	}
}

func TestParseUnifiedMalformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"unknown-tag", "@@ -1,2 +1,2 @@\n a\n?b\n"},
		{"count-overflow", "@@ -1,99999999999999999999 +1 @@\n-a\n+b\n"},
		{"start-overflow", "@@ -99999999999999999999 +1 @@\n-a\n+b\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseUnified(tt.text); err == nil {
				t.Errorf("ParseUnified() = nil, want error")
			}
		})
	}
}

func TestLinePredicates(t *testing.T) {
	tests := []struct {
		op                   diff.Op
		isCopy, isDel, isAdd bool
	}{
		{diff.Copy, true, false, false},
		{diff.Delete, false, true, false},
		{diff.Add, false, false, true},
	}
	for _, tt := range tests {
		l := &Line{Op: tt.op}
		if l.IsCopy() != tt.isCopy || l.IsDelete() != tt.isDel || l.IsAdd() != tt.isAdd {
			t.Errorf("predicates for %v = %v %v %v, want %v %v %v", tt.op,
				l.IsCopy(), l.IsDelete(), l.IsAdd(), tt.isCopy, tt.isDel, tt.isAdd)
		}
	}
}
