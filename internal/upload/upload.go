package upload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// SafeFilename strips path components and rejects anything but simple
// names with a known extension, so uploads cannot escape the target dir.
func SafeFilename(name string) (string, error) {
	base := filepath.Base(strings.TrimSpace(name))
	if base == "." || base == ".." || base == "" || base == string(filepath.Separator) {
		return "", fmt.Errorf("invalid filename %q", name)
	}
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	ext := strings.ToLower(filepath.Ext(base))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("extension %q not allowed", ext)
	}
	return base, nil
}

// Save writes the uploaded content under dir and returns the stored path.
// The name is sanitized and prefixed with a fresh UUID, so two uploads
// sharing a client filename never overwrite each other. The directory is
// created on first use.
func Save(dir, name string, content io.Reader) (string, error) {
	safe, err := SafeFilename(name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, uuid.NewString()+"_"+safe)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, content); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

// SaveAs stores content under a fixed target name, replacing any
// previous file. Used for the singleton seal image.
func SaveAs(dir, target string, content io.Reader) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, target)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, content); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}
