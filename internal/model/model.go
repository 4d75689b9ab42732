package model

// ParsedEdit is one file replacement extracted from a model response.
// It only exists after a fully valid parse; the parser never emits a
// partial list.
type ParsedEdit struct {
	Filename   string // relative path, exactly as written by the model
	NewContent string // full replacement body, possibly empty
}

// BackupRecord remembers where a pre-existing file was moved before an
// apply overwrote it.
type BackupRecord struct {
	OriginalPath string
	BackupPath   string // OriginalPath + ".bak"
}

// SourceFile is one selected project file, read and ready for prompt
// assembly.
type SourceFile struct {
	Filename    string // path relative to the project folder
	DisplayPath string // "<folder basename>/<relative path>"
	Content     string
}

// Summary holds the results of an operation for display.
type Summary struct {
	Applied []string
	Failed  []string
	Message string
}
