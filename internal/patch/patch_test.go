package patch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prompter-cli/prompter/internal/model"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func all(string) bool { return true }

func TestApplyCreatesNewFileWithoutBackup(t *testing.T) {
	dir := t.TempDir()
	edits := []model.ParsedEdit{{Filename: "a.py", NewContent: "print(1)"}}
	var backups []model.BackupRecord

	applied, err := Apply(dir, edits, all, &backups)
	if err != nil {
		t.Fatal(err)
	}
	if len(applied) != 1 || applied[0] != "a.py" {
		t.Fatalf("applied = %v", applied)
	}
	if len(backups) != 0 {
		t.Fatalf("expected zero backup records, got %v", backups)
	}
	if got := readFile(t, filepath.Join(dir, "a.py")); got != "print(1)" {
		t.Errorf("content = %q", got)
	}
}

func TestApplyBacksUpExistingFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a.py")
	if err := os.WriteFile(target, []byte("original"), 0644); err != nil {
		t.Fatal(err)
	}

	var backups []model.BackupRecord
	edits := []model.ParsedEdit{{Filename: "a.py", NewContent: "updated"}}
	if _, err := Apply(dir, edits, all, &backups); err != nil {
		t.Fatal(err)
	}

	if len(backups) != 1 {
		t.Fatalf("expected one backup record, got %d", len(backups))
	}
	if backups[0].OriginalPath != target || backups[0].BackupPath != target+".bak" {
		t.Errorf("record = %+v", backups[0])
	}
	if got := readFile(t, target); got != "updated" {
		t.Errorf("target = %q", got)
	}
	if got := readFile(t, target+".bak"); got != "original" {
		t.Errorf("backup = %q", got)
	}
}

func TestApplyTwiceOverwritesBackup(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a.py")
	var backups []model.BackupRecord

	first := []model.ParsedEdit{{Filename: "a.py", NewContent: "v1"}}
	if _, err := Apply(dir, first, all, &backups); err != nil {
		t.Fatal(err)
	}
	second := []model.ParsedEdit{{Filename: "a.py", NewContent: "v2"}}
	if _, err := Apply(dir, second, all, &backups); err != nil {
		t.Fatal(err)
	}

	// First apply created the file, second one backed it up.
	if len(backups) != 1 {
		t.Fatalf("expected one backup record, got %d", len(backups))
	}
	if got := readFile(t, target+".bak"); got != "v1" {
		t.Errorf("backup should hold the first run's content, got %q", got)
	}
	if got := readFile(t, target); got != "v2" {
		t.Errorf("target = %q", got)
	}
}

func TestApplyCreatesParentDirectories(t *testing.T) {
	dir := t.TempDir()
	edits := []model.ParsedEdit{{Filename: "src/pkg/deep.py", NewContent: "x"}}
	var backups []model.BackupRecord

	if _, err := Apply(dir, edits, all, &backups); err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, filepath.Join(dir, "src", "pkg", "deep.py")); got != "x" {
		t.Errorf("content = %q", got)
	}
}

func TestApplyHonorsSelection(t *testing.T) {
	dir := t.TempDir()
	edits := []model.ParsedEdit{
		{Filename: "a.py", NewContent: "a"},
		{Filename: "b.py", NewContent: "b"},
	}
	var backups []model.BackupRecord

	applied, err := Apply(dir, edits, func(f string) bool { return f == "b.py" }, &backups)
	if err != nil {
		t.Fatal(err)
	}
	if len(applied) != 1 || applied[0] != "b.py" {
		t.Fatalf("applied = %v", applied)
	}
	if _, err := os.Stat(filepath.Join(dir, "a.py")); !os.IsNotExist(err) {
		t.Error("a.py should not have been written")
	}
}

func TestApplyAbortsBatchOnFailureKeepsEarlierWrites(t *testing.T) {
	dir := t.TempDir()

	// Make the second target unwritable by placing a directory at its path.
	if err := os.MkdirAll(filepath.Join(dir, "b.py"), 0755); err != nil {
		t.Fatal(err)
	}

	edits := []model.ParsedEdit{
		{Filename: "a.py", NewContent: "a"},
		{Filename: "b.py", NewContent: "b"},
		{Filename: "c.py", NewContent: "c"},
	}
	var backups []model.BackupRecord

	applied, err := Apply(dir, edits, all, &backups)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "b.py") {
		t.Errorf("error should name the failing file: %v", err)
	}
	if len(applied) != 1 || applied[0] != "a.py" {
		t.Errorf("files before the failure stay applied, got %v", applied)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "c.py")); !os.IsNotExist(statErr) {
		t.Error("c.py should not have been written after the failure")
	}
	if got := readFile(t, filepath.Join(dir, "a.py")); got != "a" {
		t.Errorf("a.py = %q", got)
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a.py")
	if err := os.WriteFile(target, []byte("before"), 0644); err != nil {
		t.Fatal(err)
	}

	var backups []model.BackupRecord
	edits := []model.ParsedEdit{{Filename: "a.py", NewContent: "after"}}
	if _, err := Apply(dir, edits, all, &backups); err != nil {
		t.Fatal(err)
	}

	record, err := Restore(backups, target+".bak")
	if err != nil {
		t.Fatal(err)
	}
	if record.OriginalPath != target {
		t.Errorf("record = %+v", record)
	}
	if got := readFile(t, target); got != "before" {
		t.Errorf("restore should bring back the original bytes, got %q", got)
	}
	if _, statErr := os.Stat(target + ".bak"); !os.IsNotExist(statErr) {
		t.Error("backup file should be gone after restore")
	}
}

func TestRestoreUnknownBackup(t *testing.T) {
	if _, err := Restore(nil, "/nowhere/a.py.bak"); err == nil {
		t.Fatal("expected a not-found error")
	} else if !strings.Contains(err.Error(), "not found") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRestoreTwiceFails(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a.py")
	if err := os.WriteFile(target, []byte("before"), 0644); err != nil {
		t.Fatal(err)
	}

	var backups []model.BackupRecord
	if _, err := Apply(dir, []model.ParsedEdit{{Filename: "a.py", NewContent: "after"}}, all, &backups); err != nil {
		t.Fatal(err)
	}
	if _, err := Restore(backups, target+".bak"); err != nil {
		t.Fatal(err)
	}

	// The record is still listed but the backup file no longer exists.
	if len(backups) != 1 {
		t.Fatalf("record should remain after restore, got %d", len(backups))
	}
	if _, err := Restore(backups, target+".bak"); err == nil {
		t.Error("second restore of a consumed backup should fail")
	}
}

func TestLabels(t *testing.T) {
	backups := []model.BackupRecord{
		{OriginalPath: "/p/a.py", BackupPath: "/p/a.py.bak"},
		{OriginalPath: "/p/sub/b.py", BackupPath: "/p/sub/b.py.bak"},
	}
	labels := Labels(backups)
	if len(labels) != 2 {
		t.Fatalf("got %d labels", len(labels))
	}
	if labels[0].Name != "a.py.bak" || labels[0].Value != "/p/a.py.bak" {
		t.Errorf("labels[0] = %+v", labels[0])
	}
}
