package localdocs

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func newTestFolder(t *testing.T) *Folder {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"beta.md":   "# Beta\n",
		"alpha.txt": "alpha contents",
		".hidden":   "secret",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}
	return New(dir)
}

func TestList(t *testing.T) {
	f := newTestFolder(t)

	names, err := f.List()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []string{"alpha.txt", "beta.md"}
	if !reflect.DeepEqual(names, expected) {
		t.Errorf("got %v, want %v", names, expected)
	}
}

func TestListMissingDir(t *testing.T) {
	f := New(filepath.Join(t.TempDir(), "nope"))
	if _, err := f.List(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestContent(t *testing.T) {
	f := newTestFolder(t)

	content, err := f.Content("alpha.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content != "alpha contents" {
		t.Errorf("got %q", content)
	}
}

func TestContentRejectsBadNames(t *testing.T) {
	f := newTestFolder(t)

	for _, name := range []string{"", "missing.md", "../escape.md", "nested", ".hidden", "a/b.md"} {
		if _, err := f.Content(name); !errors.Is(err, ErrNotFound) {
			t.Errorf("Content(%q): expected ErrNotFound, got %v", name, err)
		}
	}
}
