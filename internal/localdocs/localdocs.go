package localdocs

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrNotFound reports a missing or inaccessible document.
var ErrNotFound = errors.New("document not found")

// Folder reads documentation files from a local directory.
type Folder struct {
	dir string
}

// New creates a Folder over dir. The directory does not have to exist
// yet; List and Content report ErrNotFound when it is missing.
func New(dir string) *Folder {
	return &Folder{dir: dir}
}

// Dir returns the folder path.
func (f *Folder) Dir() string { return f.dir }

// List returns the filenames in the folder, sorted. Subdirectories and
// dotfiles are skipped.
func (f *Folder) List() ([]string, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, f.dir)
		}
		return nil, fmt.Errorf("read docs dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Content returns the text of a single file by bare filename. PDF files
// are text extracted; everything else is returned verbatim. Names with
// path separators are rejected so callers cannot escape the folder.
func (f *Folder) Content(filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		return "", fmt.Errorf("%w: %s", ErrNotFound, filename)
	}
	path := filepath.Join(f.dir, filename)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotFound, filename)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", filename, err)
	}
	if strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return extractPDF(data)
	}
	return string(data), nil
}

// extractPDF pulls plain text out of a PDF, skipping pages that fail to
// extract.
func extractPDF(content []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var textBuilder strings.Builder
	numPages := reader.NumPage()
	for pageNum := 1; pageNum <= numPages; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() || page.V.Key("Contents").Kind() == pdf.Null {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}
	return textBuilder.String(), nil
}
