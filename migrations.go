package l10n

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed data/sql/migrations
var migrationsFS embed.FS

const migrationsRoot = "data/sql/migrations"

// goose keeps its base FS and dialect in package state.
var gooseMu sync.Mutex

// GetMigrationsFS returns the embedded migration files for this package.
// Files live under one directory per dialect.
func GetMigrationsFS() embed.FS {
	return migrationsFS
}

// MigrationsFor returns the migrations of one dialect ("postgres" or
// "sqlite") rooted at the dialect directory.
func MigrationsFor(dialect string) (fs.FS, error) {
	name, _, err := migrationDialect(dialect)
	if err != nil {
		return nil, err
	}
	return fs.Sub(migrationsFS, migrationsRoot+"/"+name)
}

// Migrate applies the pending goose migrations of dialect to db.
func Migrate(ctx context.Context, db *sql.DB, dialect string) error {
	name, gooseDialect, err := migrationDialect(dialect)
	if err != nil {
		return err
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect(gooseDialect); err != nil {
		return fmt.Errorf("l10n: set migration dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, migrationsRoot+"/"+name); err != nil {
		return fmt.Errorf("l10n: run migrations: %w", err)
	}
	return nil
}

func migrationDialect(dialect string) (string, string, error) {
	switch name := strings.ToLower(strings.TrimSpace(dialect)); name {
	case "postgres":
		return name, "postgres", nil
	case "sqlite":
		return name, "sqlite3", nil
	default:
		return "", "", fmt.Errorf("l10n: no migrations for dialect %q", dialect)
	}
}
