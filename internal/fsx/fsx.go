// Package fsx supplies the filesystem abstraction split and merge run
// against: an afero.Fs, defaulting to the real OS in cmd/gcodeclean and
// to an in-memory filesystem in tests.
package fsx

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// OS returns the real operating-system filesystem.
func OS() afero.Fs { return afero.NewOsFs() }

// Mem returns a fresh in-memory filesystem, for tests.
func Mem() afero.Fs { return afero.NewMemMapFs() }

// ListFiles returns the names of the regular files directly inside dir,
// sorted, ignoring subdirectories.
func ListFiles(fs afero.Fs, dir string) ([]string, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, errors.Wrapf(err, "fsx: reading directory %q", dir)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// ReadLines reads path and splits it into lines, stripping the trailing
// newline of each.
func ReadLines(fs afero.Fs, path string) ([]string, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "fsx: reading %q", path)
	}
	return splitLines(string(data)), nil
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			line := s[start:i]
			if len(line) > 0 && line[len(line)-1] == '\r' {
				line = line[:len(line)-1]
			}
			lines = append(lines, line)
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

// WriteLines joins lines with "\n" and writes the result to path,
// creating or truncating it.
func WriteLines(fs afero.Fs, path string, lines []string) error {
	content := ""
	for i, l := range lines {
		if i > 0 {
			content += "\n"
		}
		content += l
	}
	if len(lines) > 0 {
		content += "\n"
	}
	if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
		return errors.Wrapf(err, "fsx: writing %q", path)
	}
	return nil
}
