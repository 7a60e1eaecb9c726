package posts

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed data/sql/migrations/*.sql
var migrationsFS embed.FS

// GetMigrationsFS returns the embedded migration files so host applications
// can run them through their own migration tooling.
func GetMigrationsFS() embed.FS {
	return migrationsFS
}

// Migrate applies the embedded schema migrations, in filename order, against
// the index database. It is idempotent: every statement uses IF NOT EXISTS.
func (m *Module) Migrate(ctx context.Context) error {
	if m.db == nil {
		return ErrIndexFeatureDisabled
	}

	entries, err := fs.Glob(migrationsFS, "data/sql/migrations/*.sql")
	if err != nil {
		return fmt.Errorf("posts: list migrations: %w", err)
	}
	sort.Strings(entries)

	for _, name := range entries {
		script, err := migrationsFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("posts: read migration %s: %w", name, err)
		}
		if _, err := m.db.ExecContext(ctx, string(script)); err != nil {
			return fmt.Errorf("posts: apply migration %s: %w", name, err)
		}
	}
	return nil
}
