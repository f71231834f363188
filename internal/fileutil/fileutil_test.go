package fileutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "data.xml")

	written, err := WriteFile(path, []byte("<conversation/>"), false)
	if err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if written != path {
		t.Errorf("written path = %q, want %q", written, path)
	}

	data, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "<conversation/>" {
		t.Errorf("data = %q", data)
	}
}

func TestWriteReadCompressed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.xml")
	content := strings.Repeat("<message>hello</message>\n", 100)

	written, err := WriteFile(path, []byte(content), true)
	if err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if written != path+XzSuffix {
		t.Errorf("written path = %q, want xz suffix", written)
	}

	raw, _ := os.ReadFile(written)
	if len(raw) >= len(content) {
		t.Errorf("compressed size %d not smaller than input %d", len(raw), len(content))
	}

	data, err := ReadFile(written)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != content {
		t.Error("decompressed data differs from input")
	}
}

func TestFindFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.xml", "a.xml", "notes.txt", "c.xml.xz"} {
		if _, err := WriteFile(filepath.Join(dir, name), []byte("x"), false); err != nil {
			t.Fatalf("setup failed: %v", err)
		}
	}
	if _, err := WriteFile(filepath.Join(dir, "nested", "d.xml"), []byte("x"), false); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	paths, err := FindFiles(dir, ".xml")
	if err != nil {
		t.Fatalf("FindFiles failed: %v", err)
	}

	var names []string
	for _, p := range paths {
		rel, _ := filepath.Rel(dir, p)
		names = append(names, rel)
	}

	want := []string{"a.xml", "b.xml", "c.xml.xz", filepath.Join("nested", "d.xml")}
	if len(names) != len(want) {
		t.Fatalf("FindFiles = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("FindFiles[%d] = %q, want %q (sorted)", i, names[i], want[i])
		}
	}
}

func TestRemoveExtension(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"tickets.json", "tickets"},
		{"tickets.dump.json", "tickets"},
		{"noext", "noext"},
		{filepath.Join("dir", "file.json"), "file"},
	}

	for _, tt := range tests {
		if got := RemoveExtension(tt.input); got != tt.want {
			t.Errorf("RemoveExtension(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSwapExtension(t *testing.T) {
	tests := []struct {
		path string
		ext  string
		want string
	}{
		{"conv_1.xml", ".html", "conv_1.html"},
		{"conv_1.xml.xz", ".tsv", "conv_1.tsv"},
		{filepath.Join("out", "data.xml"), ".txt", filepath.Join("out", "data.txt")},
	}

	for _, tt := range tests {
		if got := SwapExtension(tt.path, tt.ext); got != tt.want {
			t.Errorf("SwapExtension(%q, %q) = %q, want %q", tt.path, tt.ext, got, tt.want)
		}
	}
}

func TestEnsureTrailingSeparator(t *testing.T) {
	sep := string(os.PathSeparator)

	if got := EnsureTrailingSeparator("out"); got != "out"+sep {
		t.Errorf("EnsureTrailingSeparator(out) = %q", got)
	}
	if got := EnsureTrailingSeparator("out" + sep); got != "out"+sep {
		t.Errorf("EnsureTrailingSeparator(out%s) = %q", sep, got)
	}
	if got := EnsureTrailingSeparator(""); got != "" {
		t.Errorf("EnsureTrailingSeparator(\"\") = %q", got)
	}
}
