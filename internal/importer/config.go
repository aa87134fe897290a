package importer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/meltforce/hevystats/internal/config"
	"github.com/meltforce/hevystats/internal/storage"
)

// FromConfig builds an Importer for cfg, connecting to Postgres when the
// database set source is enabled. The returned func releases the connection.
func FromConfig(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Importer, func(), error) {
	imp := New(cfg.Data, log)
	if !cfg.Database.Enabled {
		return imp, func() {}, nil
	}

	db, err := storage.New(ctx, cfg.Database.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("connecting database: %w", err)
	}
	imp.UseDatabase(db, cfg.Database.Table)
	log.Info("database connected", "table", cfg.Database.Table)
	return imp, db.Close, nil
}
