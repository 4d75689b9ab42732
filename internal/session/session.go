// Package session holds the per-session mutable state: which files are
// selected for the prompt, the edits parsed from the last pasted
// response, and the backup records accumulated by applies. The struct is
// owned by the caller and passed through each operation; there is no
// hidden global.
package session

import (
	"sort"
	"strings"

	"github.com/prompter-cli/prompter/internal/model"
)

type Session struct {
	// Selection maps a relative file path to its "included" flag.
	Selection map[string]bool
	// Edits are the parsed edits pending apply, in source order.
	Edits []model.ParsedEdit
	// EditSelection maps an edit's filename to its "apply this one" flag.
	EditSelection map[string]bool
	// Backups accumulates one record per displaced file, oldest first.
	// Restores leave their records in place.
	Backups []model.BackupRecord
}

func New() *Session {
	return &Session{
		Selection:     make(map[string]bool),
		EditSelection: make(map[string]bool),
	}
}

// SetFiles rebuilds the selection map for a fresh candidate list,
// selecting everything. Called whenever the filter or extension
// configuration changes.
func (s *Session) SetFiles(rels []string) {
	s.Selection = make(map[string]bool, len(rels))
	for _, rel := range rels {
		s.Selection[rel] = true
	}
}

// Toggle flips one file's flag. Unknown paths are ignored.
func (s *Session) Toggle(rel string) {
	if _, ok := s.Selection[rel]; ok {
		s.Selection[rel] = !s.Selection[rel]
	}
}

// SetFolder sets the flag of every file at or below relDir. relDir ""
// addresses the whole tree.
func (s *Session) SetFolder(relDir string, on bool) {
	prefix := relDir
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	for rel := range s.Selection {
		if prefix == "" || strings.HasPrefix(rel, prefix) {
			s.Selection[rel] = on
		}
	}
}

// SelectedFiles returns the included relative paths in sorted order.
func (s *Session) SelectedFiles() []string {
	out := make([]string, 0, len(s.Selection))
	for rel, on := range s.Selection {
		if on {
			out = append(out, rel)
		}
	}
	sort.Strings(out)
	return out
}

// SelectedCount returns the number of included files.
func (s *Session) SelectedCount() int {
	n := 0
	for _, on := range s.Selection {
		if on {
			n++
		}
	}
	return n
}

// SetEdits stores a freshly parsed edit list, selecting every edit for
// apply.
func (s *Session) SetEdits(edits []model.ParsedEdit) {
	s.Edits = edits
	s.EditSelection = make(map[string]bool, len(edits))
	for _, e := range edits {
		s.EditSelection[e.Filename] = true
	}
}

// ToggleEdit flips one parsed edit's apply flag.
func (s *Session) ToggleEdit(filename string) {
	if _, ok := s.EditSelection[filename]; ok {
		s.EditSelection[filename] = !s.EditSelection[filename]
	}
}

// EditSelected reports whether an edit is marked for apply.
func (s *Session) EditSelected(filename string) bool {
	return s.EditSelection[filename]
}
