// Package fileutil provides file reading, writing, and discovery
// helpers for the normalizing and exporting pipelines.
//
// Artifacts may be stored xz-compressed: WriteFile compresses when
// asked, and ReadFile transparently decompresses any path ending in
// ".xz".
package fileutil

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/parleybank/parley/core/errors"
)

// XzSuffix marks compressed artifacts.
const XzSuffix = ".xz"

// ReadFile reads a UTF-8 text file, decompressing it when the path
// carries the xz suffix.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	if !strings.HasSuffix(path, XzSuffix) {
		return data, nil
	}

	reader, err := xz.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "opening xz stream %s", path)
	}
	decompressed, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrapf(err, "decompressing %s", path)
	}
	return decompressed, nil
}

// WriteFile writes a UTF-8 text file, creating parent directories as
// needed. With compress set, the data is xz-compressed and the suffix
// appended to the path.
func WriteFile(path string, data []byte, compress bool) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", errors.Wrapf(err, "creating directory for %s", path)
	}

	if compress {
		path += XzSuffix
		var buf bytes.Buffer
		writer, err := xz.NewWriter(&buf)
		if err != nil {
			return "", errors.Wrapf(err, "opening xz stream for %s", path)
		}
		if _, err := writer.Write(data); err != nil {
			return "", errors.Wrapf(err, "compressing %s", path)
		}
		if err := writer.Close(); err != nil {
			return "", errors.Wrapf(err, "finishing xz stream for %s", path)
		}
		data = buf.Bytes()
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", errors.Wrapf(err, "writing %s", path)
	}
	return path, nil
}

// FindFiles walks a directory tree and returns the paths of regular
// files matching any of the given extensions (compressed variants
// included), sorted for deterministic processing order.
func FindFiles(root string, extensions ...string) ([]string, error) {
	var paths []string

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		name := strings.TrimSuffix(path, XzSuffix)
		for _, ext := range extensions {
			if strings.HasSuffix(name, ext) {
				paths = append(paths, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walking %s", root)
	}

	sort.Strings(paths)
	return paths, nil
}

// RemoveExtension returns the base filename without its extension
// chain, so "tickets.dump.json" labels as "tickets".
func RemoveExtension(filename string) string {
	base := filepath.Base(filename)
	if i := strings.Index(base, "."); i >= 0 {
		return base[:i]
	}
	return base
}

// SwapExtension replaces a path's artifact extension with another,
// dropping any compression suffix first.
func SwapExtension(path, ext string) string {
	path = strings.TrimSuffix(path, XzSuffix)
	old := filepath.Ext(path)
	return strings.TrimSuffix(path, old) + ext
}

// EnsureTrailingSeparator appends the OS path separator if the path
// does not already end with one.
func EnsureTrailingSeparator(path string) string {
	if path == "" || strings.HasSuffix(path, string(os.PathSeparator)) {
		return path
	}
	return path + string(os.PathSeparator)
}
