package diff

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCoalesce(t *testing.T) {
	tests := []struct {
		name  string
		edits []Edit
		want  []Edit
	}{
		{
			name: "empty",
		},
		{
			name: "join-copies",
			edits: []Edit{
				CopyEdit([]string{"a"}),
				CopyEdit([]string{"b", "c"}),
			},
			want: []Edit{
				CopyEdit([]string{"a", "b", "c"}),
			},
		},
		{
			name: "delete-and-add-become-change",
			edits: []Edit{
				CopyEdit([]string{"a"}),
				DeleteEdit([]string{"b"}),
				AddEdit([]string{"B"}),
				CopyEdit([]string{"c"}),
			},
			want: []Edit{
				CopyEdit([]string{"a"}),
				ChangeEdit([]string{"b"}, []string{"B"}),
				CopyEdit([]string{"c"}),
			},
		},
		{
			name: "add-before-delete",
			edits: []Edit{
				AddEdit([]string{"B"}),
				DeleteEdit([]string{"b"}),
			},
			want: []Edit{
				ChangeEdit([]string{"b"}, []string{"B"}),
			},
		},
		{
			name: "join-changes",
			edits: []Edit{
				ChangeEdit([]string{"a"}, []string{"A"}),
				DeleteEdit([]string{"b"}),
				ChangeEdit([]string{"c"}, []string{"C"}),
			},
			want: []Edit{
				ChangeEdit([]string{"a", "b", "c"}, []string{"A", "C"}),
			},
		},
		{
			name: "drop-empty",
			edits: []Edit{
				CopyEdit(nil),
				AddEdit([]string{}),
				DeleteEdit([]string{"a"}),
				CopyEdit([]string{}),
			},
			want: []Edit{
				DeleteEdit([]string{"a"}),
			},
		},
		{
			name: "copy-with-different-sides",
			edits: []Edit{
				{Copy, []string{"A"}, []string{"a"}},
				{Copy, []string{"B"}, []string{"b"}},
			},
			want: []Edit{
				{Copy, []string{"A", "B"}, []string{"a", "b"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Coalesce(tt.edits)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Coalesce result is different (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReverse(t *testing.T) {
	edits := []Edit{
		CopyEdit([]string{"a"}),
		ChangeEdit([]string{"b"}, []string{"B"}),
		DeleteEdit([]string{"c"}),
		CopyEdit([]string{"d"}),
		AddEdit([]string{"e"}),
	}
	want := []Edit{
		CopyEdit([]string{"a"}),
		ChangeEdit([]string{"B"}, []string{"b"}),
		AddEdit([]string{"c"}),
		CopyEdit([]string{"d"}),
		DeleteEdit([]string{"e"}),
	}

	got := Reverse(edits)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Reverse result is different (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(edits, Reverse(got)); diff != "" {
		t.Errorf("Reverse isn't an involution (-want +got):\n%s", diff)
	}
	if edits[2].Op != Delete {
		t.Errorf("Reverse modified its input")
	}
}

func TestOpString(t *testing.T) {
	tests := []struct {
		op   Op
		want string
	}{
		{Copy, "Copy"},
		{Add, "Add"},
		{Delete, "Delete"},
		{Change, "Change"},
		{Op(42), "Op(42)"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("Op(%d).String() = %q, want %q", int(tt.op), got, tt.want)
		}
	}
}
