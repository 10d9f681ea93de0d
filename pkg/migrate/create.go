package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const sqlMigrationTemplate = `-- +goose Up
-- +goose StatementBegin
SELECT 'up SQL query';
-- +goose StatementEnd

-- +goose Down
-- +goose StatementBegin
SELECT 'down SQL query';
-- +goose StatementEnd
`

// CreateSQLMigration writes a timestamped goose SQL migration skeleton into
// dir and returns its path.
func CreateSQLMigration(dir, name string) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("dir is required")
	}
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.ReplaceAll(slug, " ", "_")
	if slug == "" {
		return "", fmt.Errorf("name is required")
	}

	filename := fmt.Sprintf("%s_%s.sql", time.Now().UTC().Format("20060102150405"), slug)
	path := filepath.Join(dir, filename)

	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("migration already exists: %s", path)
	}
	if err := os.WriteFile(path, []byte(sqlMigrationTemplate), 0o644); err != nil {
		return "", fmt.Errorf("write migration: %w", err)
	}
	return path, nil
}
