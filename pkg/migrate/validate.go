package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/multierr"
)

var sqlFileRe = regexp.MustCompile(`^(\d{14})_[a-z0-9_]+\.sql$`)

// ValidateDir validates migration filenames and basic goose headers. All
// problems are collected so one run reports every offending file.
func ValidateDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("dir is required")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read dir %q: %w", dir, err)
	}

	seen := map[string]string{} // version -> filename
	var errs []error

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".sql") {
			continue
		}

		m := sqlFileRe.FindStringSubmatch(name)
		if m == nil {
			errs = append(errs, fmt.Errorf("invalid migration filename %q (expected YYYYMMDDHHMMSS_name.sql)", name))
			continue
		}

		version := m[1]
		if prev, ok := seen[version]; ok {
			errs = append(errs, fmt.Errorf("duplicate migration version %s in %q and %q", version, prev, name))
			continue
		}
		seen[version] = name

		full := filepath.Join(dir, name)
		b, err := os.ReadFile(full)
		if err != nil {
			errs = append(errs, fmt.Errorf("read file %q: %w", full, err))
			continue
		}

		txt := string(b)
		if !strings.Contains(txt, "-- +goose Up") {
			errs = append(errs, fmt.Errorf("migration %q missing \"-- +goose Up\"", name))
		}
		if !strings.Contains(txt, "-- +goose Down") {
			errs = append(errs, fmt.Errorf("migration %q missing \"-- +goose Down\"", name))
		}
	}

	return multierr.Combine(errs...)
}
