// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pdiddy/internmatch/internal/artifact"
	"github.com/pdiddy/internmatch/internal/catalog"
	"github.com/pdiddy/internmatch/internal/engine"
	"github.com/pdiddy/internmatch/internal/logger"
	"github.com/pdiddy/internmatch/pkg/types"
)

// openEngine returns an engine backed by the catalog store. When a model
// bundle exists it is imported and published; otherwise the first ranking
// fits lazily from the store. The caller closes the returned store.
func openEngine(cfg types.AppConfig) (*engine.Engine, *catalog.Store, error) {
	store, err := catalog.NewStore(cfg.Catalog)
	if err != nil {
		return nil, nil, err
	}
	eng := engine.New(cfg.Engine, engine.WithSource(store), engine.WithLogger(appLog))

	if !artifact.Exists(cfg.Artifacts.Dir) {
		appLog.Info("no model bundle, fitting from catalog store on demand",
			zap.String("dir", cfg.Artifacts.Dir), zap.String("db", store.Path()))
		return eng, store, nil
	}
	snap, meta, err := artifact.Import(cfg.Artifacts.Dir)
	if err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("importing model bundle: %w", err)
	}
	fields := []zap.Field{zap.String("dir", cfg.Artifacts.Dir), zap.Int(logger.FieldRows, snap.Rows())}
	if meta != nil {
		fields = append(fields, zap.String(logger.FieldBundleID, meta.BundleID), zap.String("model_version", meta.ModelVersion))
	}
	appLog.Info("imported model bundle", fields...)
	eng.Publish(snap)
	return eng, store, nil
}

// catalogRecords returns the catalog in row order: from the store when it
// holds rows, otherwise from the model bundle.
func catalogRecords(ctx context.Context, cfg types.AppConfig, store *catalog.Store) ([]types.InternshipRecord, error) {
	records, err := store.Records(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) > 0 || !artifact.Exists(cfg.Artifacts.Dir) {
		return records, nil
	}
	snap, _, err := artifact.Import(cfg.Artifacts.Dir)
	if err != nil {
		return nil, fmt.Errorf("importing model bundle: %w", err)
	}
	return snap.Records, nil
}
