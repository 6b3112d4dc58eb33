// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/internmatch/internal/logger"
	"github.com/pdiddy/internmatch/pkg/types"
)

// Source supplies the catalog for fits triggered by the engine itself.
type Source interface {
	Records(ctx context.Context) ([]types.InternshipRecord, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) ([]types.InternshipRecord, error)

// Records calls f.
func (f SourceFunc) Records(ctx context.Context) ([]types.InternshipRecord, error) {
	return f(ctx)
}

// Option configures an Engine.
type Option func(*Engine)

// WithSource sets the catalog source used by Refit and by the lazy fit on
// the first ranking request.
func WithSource(src Source) Option {
	return func(e *Engine) { e.source = src }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.log = logger.OrNop(l) }
}

// Engine serves rankings from the current snapshot. Fits are serialized;
// rankings never lock.
type Engine struct {
	cfg    types.EngineConfig
	source Source
	log    *zap.Logger

	fitMu sync.Mutex
	snap  atomic.Pointer[Snapshot]
}

// New returns an engine with no published snapshot.
func New(cfg types.EngineConfig, opts ...Option) *Engine {
	e := &Engine{cfg: WithDefaults(cfg), log: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the effective engine configuration.
func (e *Engine) Config() types.EngineConfig {
	return e.cfg
}

// Snapshot returns the published snapshot, or nil before the first fit.
func (e *Engine) Snapshot() *Snapshot {
	return e.snap.Load()
}

// Ready reports whether a snapshot is published.
func (e *Engine) Ready() bool {
	return e.snap.Load() != nil
}

// Publish makes s the current snapshot.
func (e *Engine) Publish(s *Snapshot) {
	e.snap.Store(s)
	e.log.Info("published snapshot",
		zap.Int(logger.FieldRows, s.Rows()),
		zap.Any("vocabulary_sizes", s.Spaces.VocabularySizes()),
	)
}

// Fit builds a snapshot from records and publishes it. On failure the
// previous snapshot stays in place.
func (e *Engine) Fit(ctx context.Context, records []types.InternshipRecord) (*Snapshot, error) {
	e.fitMu.Lock()
	defer e.fitMu.Unlock()
	return e.fitLocked(ctx, records)
}

// Refit reloads the catalog from the source and publishes a new snapshot.
func (e *Engine) Refit(ctx context.Context) (*Snapshot, error) {
	e.fitMu.Lock()
	defer e.fitMu.Unlock()

	records, err := e.load(ctx)
	if err != nil {
		return nil, err
	}
	return e.fitLocked(ctx, records)
}

func (e *Engine) load(ctx context.Context) ([]types.InternshipRecord, error) {
	if e.source == nil {
		return nil, types.NewError(types.KindNotFitted, "no catalog source configured")
	}
	records, err := e.source.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	if len(records) == 0 {
		return nil, types.NewError(types.KindEmptyCatalog, "catalog source returned no rows")
	}
	return records, nil
}

func (e *Engine) fitLocked(ctx context.Context, records []types.InternshipRecord) (*Snapshot, error) {
	start := time.Now()
	snap, err := Build(ctx, records, e.cfg)
	if err != nil {
		e.log.Error("fit failed", zap.Int(logger.FieldRows, len(records)), zap.Error(err))
		return nil, err
	}
	e.log.Info("fitted catalog",
		zap.Int(logger.FieldRows, snap.Rows()),
		zap.Duration("duration", time.Since(start)),
	)
	e.Publish(snap)
	return snap, nil
}

// Current returns the published snapshot, fitting from the source first
// when nothing is published yet.
func (e *Engine) Current(ctx context.Context) (*Snapshot, error) {
	if s := e.snap.Load(); s != nil {
		return s, nil
	}

	e.fitMu.Lock()
	defer e.fitMu.Unlock()
	if s := e.snap.Load(); s != nil {
		return s, nil
	}

	e.log.Info("no snapshot published, fitting lazily")
	records, err := e.load(ctx)
	if err == nil {
		var s *Snapshot
		if s, err = e.fitLocked(ctx, records); err == nil {
			return s, nil
		}
	}
	if errors.Is(err, types.ErrEmptyCatalog) || errors.Is(err, types.ErrNotFitted) {
		return nil, err
	}
	return nil, types.WrapError(types.KindNotFitted, err, "lazy fit failed")
}

// Rank ranks the catalog for p. topK 0 means the configured default;
// a negative topK is invalid input.
func (e *Engine) Rank(ctx context.Context, p types.CandidateProfile, topK int) ([]types.RecommendationResult, error) {
	if topK < 0 {
		return nil, types.NewError(types.KindInvalidInput, "top_k must not be negative, got %d", topK)
	}
	if topK == 0 {
		topK = e.cfg.TopK
	}
	snap, err := e.Current(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Rank(p, topK)
}

// Recommend is Rank with failures, including panics, reported in the
// response instead of returned.
func (e *Engine) Recommend(ctx context.Context, p types.CandidateProfile, topK int) (resp types.RecommendationResponse) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("ranking panicked", zap.Any("panic", r))
			resp = types.RecommendationResponse{
				Results: []types.RecommendationResult{},
				Error:   types.Detail(fmt.Errorf("ranking failed: %v", r)),
			}
		}
	}()

	results, err := e.Rank(ctx, p, topK)
	if err != nil {
		e.log.Warn("ranking failed", zap.Error(err))
		return types.RecommendationResponse{Results: []types.RecommendationResult{}, Error: types.Detail(err)}
	}
	return types.RecommendationResponse{Results: results}
}
