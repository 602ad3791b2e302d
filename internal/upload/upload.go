package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// allowedExtensions is the image extension allow-list, matched
// case-insensitively against the uploaded filename.
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// Store persists uploaded images under a single directory.
type Store struct {
	dir string
}

// NewStore creates the upload directory if needed and returns a Store.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Allowed reports whether the filename carries an allowed image extension.
func Allowed(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// SanitizeFilename strips path components and any character outside
// [A-Za-z0-9._-], and removes leading dots so the result can never
// escape the upload directory or hide as a dotfile.
func SanitizeFilename(name string) string {
	name = filepath.Base(filepath.ToSlash(name))
	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.TrimLeft(name, ".")
	return name
}

// Save writes the uploaded file under a current-time-prefixed, sanitized
// name and returns that name. Files with a disallowed extension are
// skipped silently: ok is false and no error is raised, matching the
// forum's lenient upload behavior.
func (s *Store) Save(fh *multipart.FileHeader) (name string, ok bool, err error) {
	if fh == nil || !Allowed(fh.Filename) {
		return "", false, nil
	}

	name = fmt.Sprintf("%d_%s", time.Now().Unix(), SanitizeFilename(fh.Filename))

	src, err := fh.Open()
	if err != nil {
		return "", false, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", false, fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", false, fmt.Errorf("write upload: %w", err)
	}
	return name, true, nil
}
