package upload

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestSafeFilename(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "plain pdf", in: "booth-intro.pdf", want: "booth-intro.pdf"},
		{name: "path traversal stripped", in: "../../etc/passwd.png", want: "passwd.png"},
		{name: "spaces replaced", in: "my booth.pdf", want: "my_booth.pdf"},
		{name: "bad extension", in: "script.sh", wantErr: true},
		{name: "no extension", in: "README", wantErr: true},
		{name: "empty", in: "  ", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SafeFilename(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("SafeFilename(%q) = %q, want error", tc.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("SafeFilename(%q): %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("SafeFilename(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSaveConfinesToDir(t *testing.T) {
	dir := t.TempDir()
	path, err := Save(dir, "../escape.pdf", bytes.NewReader([]byte("content")))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(path, dir) {
		t.Fatalf("path %q escaped dir %q", path, dir)
	}
	if !strings.HasSuffix(path, "_escape.pdf") {
		t.Fatalf("path %q should end with the sanitized name", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "content" {
		t.Fatalf("content = %q", data)
	}
}

func TestSaveKeepsSameNamedUploadsApart(t *testing.T) {
	dir := t.TempDir()
	first, err := Save(dir, "intro.pdf", bytes.NewReader([]byte("booth A deck")))
	if err != nil {
		t.Fatalf("Save first: %v", err)
	}
	second, err := Save(dir, "intro.pdf", bytes.NewReader([]byte("booth B deck")))
	if err != nil {
		t.Fatalf("Save second: %v", err)
	}
	if first == second {
		t.Fatalf("both uploads stored at %q", first)
	}
	data, err := os.ReadFile(first)
	if err != nil {
		t.Fatalf("read back first: %v", err)
	}
	if string(data) != "booth A deck" {
		t.Fatalf("first upload was replaced: now %q", data)
	}
}

func TestSaveAsReplaces(t *testing.T) {
	dir := t.TempDir()
	if _, err := SaveAs(dir, "seal.png", bytes.NewReader([]byte("first"))); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	path, err := SaveAs(dir, "seal.png", bytes.NewReader([]byte("second")))
	if err != nil {
		t.Fatalf("SaveAs replace: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "second" {
		t.Fatalf("content = %q, want the replacement", data)
	}
}
