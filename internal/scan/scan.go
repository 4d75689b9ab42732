package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/prompter-cli/prompter/internal/model"
)

// Options controls which files Collect returns.
type Options struct {
	// Extensions is the lowercase allow-list (with leading dots). Empty
	// means no extension filter.
	Extensions []string
	// Exclusions are tokens that hide a path when they match a path
	// segment or appear anywhere in the path.
	Exclusions []string
	// UseGitignore additionally drops entries matched by the root
	// .gitignore, when one exists.
	UseGitignore bool
}

// Excluded reports whether a relative path is hidden or matches an
// exclusion token. Dot-prefixed path segments are always hidden.
func Excluded(relPath string, exclusions []string) bool {
	segments := strings.Split(filepath.ToSlash(relPath), "/")
	for _, seg := range segments {
		if seg == "." || seg == ".." || seg == "" {
			continue
		}
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	for _, token := range exclusions {
		if token == "" {
			continue
		}
		for _, seg := range segments {
			if seg == token {
				return true
			}
		}
		if strings.Contains(relPath, token) {
			return true
		}
	}
	return false
}

// Collect walks root and returns the sorted relative paths of files that
// pass the exclusion filter and the extension allow-list.
func Collect(root string, opts Options) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("invalid project folder %q: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project path %q is not a directory", root)
	}

	var ignorer gitignore.IgnoreParser
	if opts.UseGitignore {
		ignorePath := filepath.Join(root, ".gitignore")
		if _, err := os.Stat(ignorePath); err == nil {
			ignorer, err = gitignore.CompileIgnoreFile(ignorePath)
			if err != nil {
				return nil, fmt.Errorf("compiling %s: %w", ignorePath, err)
			}
		}
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil || rel == "." {
			return nil
		}

		if Excluded(rel, opts.Exclusions) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if ignorer != nil && ignorer.MatchesPath(rel) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !allowedExtension(d.Name(), opts.Extensions) {
			return nil
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

func allowedExtension(name string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	lower := strings.ToLower(name)
	for _, ext := range extensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// ReadFile returns the file content, or a placeholder comment when the
// file cannot be read. Callers treat the placeholder as content so a
// broken file never aborts prompt assembly.
func ReadFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Sprintf("<!-- Could not read file: %v -->", err)
	}
	return string(data)
}

// ReadSelected reads the selected relative paths under root. Files whose
// content is blank are dropped.
func ReadSelected(root string, rels []string) []model.SourceFile {
	base := filepath.Base(strings.TrimRight(root, string(filepath.Separator)))
	var out []model.SourceFile
	for _, rel := range rels {
		content := ReadFile(filepath.Join(root, rel))
		if strings.TrimSpace(content) == "" {
			continue
		}
		out = append(out, model.SourceFile{
			Filename:    rel,
			DisplayPath: base + "/" + rel,
			Content:     content,
		})
	}
	return out
}
