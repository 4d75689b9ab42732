package patch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prompter-cli/prompter/internal/model"
)

// BackupSuffix is appended to a file's path when an apply displaces it.
const BackupSuffix = ".bak"

// Apply writes the selected edits under baseDir. A file that already
// exists at a target path is first renamed to its .bak sibling and a
// BackupRecord is appended to *backups. A .bak left over from an earlier
// apply of the same file is overwritten by the rename.
//
// The write is all-or-nothing per file: the first failure aborts the rest
// of the batch and is returned with the failing filename, but files
// already written stay written. There is no rollback.
func Apply(baseDir string, edits []model.ParsedEdit, selected func(filename string) bool, backups *[]model.BackupRecord) (applied []string, err error) {
	for _, edit := range edits {
		if selected != nil && !selected(edit.Filename) {
			continue
		}
		target := filepath.Join(baseDir, edit.Filename)

		if info, statErr := os.Stat(target); statErr == nil && !info.IsDir() {
			backupPath := target + BackupSuffix
			if renameErr := os.Rename(target, backupPath); renameErr != nil {
				return applied, fmt.Errorf("error applying changes to %s: %w", edit.Filename, renameErr)
			}
			*backups = append(*backups, model.BackupRecord{
				OriginalPath: target,
				BackupPath:   backupPath,
			})
		}

		if dir := filepath.Dir(target); dir != "" {
			if mkErr := os.MkdirAll(dir, 0755); mkErr != nil {
				return applied, fmt.Errorf("error applying changes to %s: %w", edit.Filename, mkErr)
			}
		}

		if writeErr := os.WriteFile(target, []byte(edit.NewContent), 0644); writeErr != nil {
			return applied, fmt.Errorf("error applying changes to %s: %w", edit.Filename, writeErr)
		}
		applied = append(applied, edit.Filename)
	}
	return applied, nil
}

// Restore reverses one apply: it deletes the current file (if present) and
// renames the backup back to its original path. The matching record is
// looked up by backup path and is intentionally left in the list; a second
// restore of the same record fails on the rename like any other I/O error.
func Restore(backups []model.BackupRecord, backupPath string) (model.BackupRecord, error) {
	var record model.BackupRecord
	found := false
	for _, b := range backups {
		if b.BackupPath == backupPath {
			record = b
			found = true
			break
		}
	}
	if !found {
		return model.BackupRecord{}, fmt.Errorf("backup file not found in records: %s", backupPath)
	}

	if _, err := os.Stat(record.OriginalPath); err == nil {
		if err := os.Remove(record.OriginalPath); err != nil {
			return record, fmt.Errorf("error restoring backup: %w", err)
		}
	}
	if err := os.Rename(record.BackupPath, record.OriginalPath); err != nil {
		return record, fmt.Errorf("error restoring backup: %w", err)
	}
	return record, nil
}

// Label is one selectable backup entry for display.
type Label struct {
	Name  string // basename of the backup file
	Value string // full backup path
}

// Labels exposes every held record for a selection list, stale entries
// included.
func Labels(backups []model.BackupRecord) []Label {
	labels := make([]Label, 0, len(backups))
	for _, b := range backups {
		labels = append(labels, Label{
			Name:  filepath.Base(b.BackupPath),
			Value: b.BackupPath,
		})
	}
	return labels
}
