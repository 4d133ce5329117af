package diff

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNew(t *testing.T) {
	x := []string{"same", "old", "same"}
	y := []string{"same", "new", "same"}
	want := []Edit{
		CopyEdit([]string{"same"}),
		ChangeEdit([]string{"old"}, []string{"new"}),
		CopyEdit([]string{"same"}),
	}

	for _, name := range append(Engines(), Auto) {
		t.Run(name, func(t *testing.T) {
			d, err := New(x, y, WithEngine(name))
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(want, d.Edits()); diff != "" {
				t.Errorf("Edits() result is different (-want +got):\n%s", diff)
			}
			if got := d.CountAdded(); got != 1 {
				t.Errorf("CountAdded() = %d, want 1", got)
			}
			if got := d.CountDeleted(); got != 1 {
				t.Errorf("CountDeleted() = %d, want 1", got)
			}
			if got := d.LCS(); got != 2 {
				t.Errorf("LCS() = %d, want 2", got)
			}
			if d.IsEmpty() {
				t.Errorf("IsEmpty() = true, want false")
			}
			if diff := cmp.Diff(x, d.Original()); diff != "" {
				t.Errorf("Original() result is different (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(y, d.Final()); diff != "" {
				t.Errorf("Final() result is different (-want +got):\n%s", diff)
			}
			if err := d.Check(x, y); err != nil {
				t.Errorf("Check() = %v", err)
			}
		})
	}
}

func TestNewUnknownEngine(t *testing.T) {
	_, err := New([]string{"a"}, []string{"b"}, WithEngine("xdiff"))
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Errorf("New() error = %v, want %v", err, ErrBackendUnavailable)
	}
}

func TestNewIdentical(t *testing.T) {
	x := []string{"a", "b", "c"}
	d, err := New(x, x)
	if err != nil {
		t.Fatal(err)
	}
	if !d.IsEmpty() {
		t.Errorf("IsEmpty() = false, want true")
	}
	want := []Edit{CopyEdit(x)}
	if diff := cmp.Diff(want, d.Edits()); diff != "" {
		t.Errorf("Edits() result is different (-want +got):\n%s", diff)
	}
}

func TestNewWithIndentHeuristic(t *testing.T) {
	x := []string{"{", "\ta", "}", "{", "\tc", "}"}
	y := []string{"{", "\ta", "}", "{", "\tb", "}", "{", "\tc", "}"}
	d, err := New(x, y, WithEngine("native"), WithIndentHeuristic())
	if err != nil {
		t.Fatal(err)
	}
	want := []Edit{
		CopyEdit([]string{"{", "\ta", "}"}),
		AddEdit([]string{"{", "\tb", "}"}),
		CopyEdit([]string{"{", "\tc", "}"}),
	}
	if diff := cmp.Diff(want, d.Edits()); diff != "" {
		t.Errorf("Edits() result is different (-want +got):\n%s", diff)
	}
}

func TestDiffReverse(t *testing.T) {
	x := strings.Split("ABCABBA", "")
	y := strings.Split("CBABAC", "")
	d, err := New(x, y)
	if err != nil {
		t.Fatal(err)
	}
	r := d.Reverse()
	if err := r.Check(y, x); err != nil {
		t.Errorf("Reverse().Check() = %v", err)
	}
	if got, want := r.CountAdded(), d.CountDeleted(); got != want {
		t.Errorf("Reverse().CountAdded() = %d, want %d", got, want)
	}
	if diff := cmp.Diff(d.Edits(), r.Reverse().Edits()); diff != "" {
		t.Errorf("Reverse().Reverse() result is different (-want +got):\n%s", diff)
	}
}

func TestCheck(t *testing.T) {
	x := []string{"a", "b"}
	y := []string{"a", "c"}
	tests := []struct {
		name    string
		edits   []Edit
		wantErr bool
	}{
		{
			name: "valid",
			edits: []Edit{
				CopyEdit([]string{"a"}),
				ChangeEdit([]string{"b"}, []string{"c"}),
			},
		},
		{
			name: "wrong-original",
			edits: []Edit{
				CopyEdit([]string{"a"}),
				ChangeEdit([]string{"x"}, []string{"c"}),
			},
			wantErr: true,
		},
		{
			name: "wrong-final",
			edits: []Edit{
				CopyEdit([]string{"a"}),
				ChangeEdit([]string{"b"}, []string{"x"}),
			},
			wantErr: true,
		},
		{
			name: "delete-then-add",
			edits: []Edit{
				CopyEdit([]string{"a"}),
				DeleteEdit([]string{"b"}),
				AddEdit([]string{"c"}),
			},
		},
		{
			name: "adjacent-copies",
			edits: []Edit{
				CopyEdit([]string{"a"}),
				CopyEdit(nil),
				ChangeEdit([]string{"b"}, []string{"c"}),
			},
			wantErr: true,
		},
		{
			name: "malformed-change",
			edits: []Edit{
				CopyEdit([]string{"a"}),
				{Change, []string{"b"}, nil},
				AddEdit([]string{"c"}),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &Diff{edits: tt.edits}
			err := d.Check(x, y)
			if gotErr := err != nil; gotErr != tt.wantErr {
				t.Errorf("Check() = %v, want error: %v", err, tt.wantErr)
			}
		})
	}
}

func TestFromEdits(t *testing.T) {
	d := FromEdits([]Edit{
		CopyEdit([]string{"a"}),
		DeleteEdit([]string{"b"}),
		AddEdit([]string{"c"}),
	})
	want := []Edit{
		CopyEdit([]string{"a"}),
		ChangeEdit([]string{"b"}, []string{"c"}),
	}
	if diff := cmp.Diff(want, d.Edits()); diff != "" {
		t.Errorf("Edits() result is different (-want +got):\n%s", diff)
	}
}
