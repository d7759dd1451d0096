package repositories

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
)

// Open creates the repository named by a connection string:
// sqlite://<path> or postgresql://... Migrations are read from the
// sqlite or postgres subdirectory of migrationsDir.
func Open(ctx context.Context, connStr string, migrationsDir string) (Repository, error) {
	u, err := url.Parse(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %v", err)
	}

	switch u.Scheme {
	case "sqlite":
		path := u.Host + u.Path
		if path == "" {
			return nil, fmt.Errorf("sqlite connection string has no path")
		}
		repository, err := NewSQLiteRepository(ctx, path, filepath.Join(migrationsDir, "sqlite"))
		if err != nil {
			return nil, fmt.Errorf("failed to create SQLite repository: %v", err)
		}
		return repository, nil
	case "postgres", "postgresql":
		repository, err := NewPostgresRepository(ctx, u.String(), filepath.Join(migrationsDir, "postgres"))
		if err != nil {
			return nil, fmt.Errorf("failed to create Postgres repository: %v", err)
		}
		return repository, nil
	default:
		return nil, fmt.Errorf("unknown database type %q", u.Scheme)
	}
}
