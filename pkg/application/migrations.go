package application

import (
	"context"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// MigrationManager collects embedded SQL migrations from every module
// and applies them in registration order.
type MigrationManager interface {
	RegisterSchema(fsys fs.FS, dir string)
	Run(ctx context.Context) error
}

type schemaSource struct {
	fsys fs.FS
	dir  string
}

type migrationManager struct {
	pool    *pgxpool.Pool
	sources []schemaSource
}

func NewMigrationManager(pool *pgxpool.Pool) MigrationManager {
	return &migrationManager{pool: pool}
}

func (m *migrationManager) RegisterSchema(fsys fs.FS, dir string) {
	m.sources = append(m.sources, schemaSource{fsys: fsys, dir: dir})
}

func (m *migrationManager) Run(ctx context.Context) error {
	db := stdlib.OpenDBFromPool(m.pool)
	defer func() { _ = db.Close() }()

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	for _, src := range m.sources {
		sub, err := fs.Sub(src.fsys, src.dir)
		if err != nil {
			return err
		}
		goose.SetBaseFS(sub)
		if err := goose.UpContext(ctx, db, "."); err != nil {
			return err
		}
	}
	goose.SetBaseFS(nil)
	return nil
}
