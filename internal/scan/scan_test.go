package scan

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestExcluded(t *testing.T) {
	cases := []struct {
		path       string
		exclusions []string
		want       bool
	}{
		{"src/main.py", nil, false},
		{".git/config", nil, true},
		{"src/.hidden/file.py", nil, true},
		{"node_modules/pkg/index.js", []string{"node_modules"}, true},
		{"src/main.py", []string{"node_modules"}, false},
		{"my_node_modules_copy/x.py", []string{"node_modules"}, true}, // substring match
		{"venv/lib/x.py", []string{"venv"}, true},
	}
	for _, c := range cases {
		if got := Excluded(c.path, c.exclusions); got != c.want {
			t.Errorf("Excluded(%q, %v) = %v, want %v", c.path, c.exclusions, got, c.want)
		}
	}
}

func TestCollect(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "main.py"), "print(1)\n")
	writeFile(t, filepath.Join(root, "lib", "util.py"), "x = 1\n")
	writeFile(t, filepath.Join(root, "lib", "notes.txt"), "notes\n")
	writeFile(t, filepath.Join(root, ".git", "config"), "[core]\n")
	writeFile(t, filepath.Join(root, "node_modules", "pkg", "index.js"), "x\n")

	files, err := Collect(root, Options{
		Extensions: []string{".py"},
		Exclusions: []string{"node_modules"},
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"lib/util.py", "main.py"}
	if len(files) != len(want) {
		t.Fatalf("got %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestCollectNoExtensionFilter(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.py"), "x\n")
	writeFile(t, filepath.Join(root, "b.txt"), "y\n")

	files, err := Collect(root, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("empty allow-list should keep everything, got %v", files)
	}
}

func TestCollectRespectsGitignore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "keep.py"), "x\n")
	writeFile(t, filepath.Join(root, "generated.py"), "y\n")
	writeFile(t, filepath.Join(root, ".gitignore"), "generated.py\n")

	files, err := Collect(root, Options{Extensions: []string{".py"}, UseGitignore: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0] != "keep.py" {
		t.Fatalf("expected only keep.py, got %v", files)
	}
}

func TestCollectInvalidRoot(t *testing.T) {
	if _, err := Collect(filepath.Join(t.TempDir(), "missing"), Options{}); err == nil {
		t.Error("expected an error for a missing project folder")
	}
}

func TestReadFilePlaceholderOnError(t *testing.T) {
	got := ReadFile(filepath.Join(t.TempDir(), "missing.py"))
	if !strings.HasPrefix(got, "<!-- Could not read file:") {
		t.Errorf("expected placeholder comment, got %q", got)
	}
}

func TestReadSelectedSkipsBlankFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.py"), "print(1)\n")
	writeFile(t, filepath.Join(root, "blank.py"), "   \n\n")

	files := ReadSelected(root, []string{"a.py", "blank.py"})
	if len(files) != 1 {
		t.Fatalf("expected blank file to be dropped, got %d entries", len(files))
	}
	if files[0].Filename != "a.py" {
		t.Errorf("Filename = %q", files[0].Filename)
	}
	if files[0].DisplayPath != filepath.Base(root)+"/a.py" {
		t.Errorf("DisplayPath = %q", files[0].DisplayPath)
	}
}
