package session

import (
	"testing"

	"github.com/prompter-cli/prompter/internal/model"
)

func TestSetFilesSelectsEverything(t *testing.T) {
	s := New()
	s.SetFiles([]string{"a.py", "lib/b.py"})

	if s.SelectedCount() != 2 {
		t.Fatalf("SelectedCount = %d", s.SelectedCount())
	}

	// A rebuild replaces prior state entirely.
	s.Toggle("a.py")
	s.SetFiles([]string{"a.py"})
	if !s.Selection["a.py"] {
		t.Error("rebuild should reset a.py to selected")
	}
	if _, ok := s.Selection["lib/b.py"]; ok {
		t.Error("rebuild should drop files no longer in the candidate list")
	}
}

func TestToggle(t *testing.T) {
	s := New()
	s.SetFiles([]string{"a.py"})

	s.Toggle("a.py")
	if s.Selection["a.py"] {
		t.Error("expected a.py deselected")
	}
	s.Toggle("a.py")
	if !s.Selection["a.py"] {
		t.Error("expected a.py reselected")
	}

	s.Toggle("unknown.py")
	if _, ok := s.Selection["unknown.py"]; ok {
		t.Error("toggling an unknown path must not add it")
	}
}

func TestSetFolderCascades(t *testing.T) {
	s := New()
	s.SetFiles([]string{"a.py", "lib/b.py", "lib/sub/c.py", "libx/d.py"})

	s.SetFolder("lib", false)

	if !s.Selection["a.py"] {
		t.Error("a.py is outside lib and should stay selected")
	}
	if s.Selection["lib/b.py"] || s.Selection["lib/sub/c.py"] {
		t.Error("descendants of lib should be deselected")
	}
	if !s.Selection["libx/d.py"] {
		t.Error("libx is a sibling, not a descendant, of lib")
	}

	s.SetFolder("", true)
	if s.SelectedCount() != 4 {
		t.Errorf("root cascade should reselect everything, got %d", s.SelectedCount())
	}
}

func TestSelectedFilesSorted(t *testing.T) {
	s := New()
	s.SetFiles([]string{"z.py", "a.py", "m.py"})
	s.Toggle("m.py")

	got := s.SelectedFiles()
	want := []string{"a.py", "z.py"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestEditSelection(t *testing.T) {
	s := New()
	s.SetEdits([]model.ParsedEdit{
		{Filename: "a.py", NewContent: "x"},
		{Filename: "b.py", NewContent: "y"},
	})

	if !s.EditSelected("a.py") || !s.EditSelected("b.py") {
		t.Error("all edits start selected")
	}

	s.ToggleEdit("a.py")
	if s.EditSelected("a.py") {
		t.Error("expected a.py edit deselected")
	}
	if !s.EditSelected("b.py") {
		t.Error("b.py edit should be untouched")
	}
}
