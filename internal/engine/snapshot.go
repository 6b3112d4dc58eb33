// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package engine fits catalog snapshots and ranks candidates against them.
// A Snapshot is immutable once built; the Engine publishes snapshots with
// a single atomic pointer swap so concurrent rankers never observe a
// partially updated set of feature spaces.
package engine

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/internmatch/internal/education"
	"github.com/pdiddy/internmatch/internal/features"
	"github.com/pdiddy/internmatch/pkg/types"
)

// Snapshot is a fitted catalog: the records and the three feature spaces
// whose row i is records[i].
type Snapshot struct {
	Records   []types.InternshipRecord
	Spaces    features.Set
	Weights   types.Weights
	Education education.Scorer
	FittedAt  time.Time
}

// Rows returns the catalog size.
func (s *Snapshot) Rows() int {
	return len(s.Records)
}

// Build fits the three feature spaces over records. The spaces are fit
// concurrently; any failure fails the whole build.
func Build(ctx context.Context, records []types.InternshipRecord, cfg types.EngineConfig) (*Snapshot, error) {
	cfg = WithDefaults(cfg)

	corpora, err := features.BuildCorpora(records)
	if err != nil {
		return nil, err
	}

	var set features.Set
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		sp, err := features.Fit(features.FieldMain, corpora.Main, features.OptionsFromConfig(cfg.Main))
		set.Main = sp
		return err
	})
	g.Go(func() error {
		sp, err := features.Fit(features.FieldIndustry, corpora.Industry, features.OptionsFromConfig(cfg.Industry))
		set.Industry = sp
		return err
	})
	g.Go(func() error {
		sp, err := features.Fit(features.FieldLocation, corpora.Location, features.OptionsFromConfig(cfg.Location))
		set.Location = sp
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fitting feature spaces: %w", err)
	}

	snap := &Snapshot{
		Records:   append([]types.InternshipRecord(nil), records...),
		Spaces:    set,
		Weights:   cfg.Weights,
		Education: education.NewScorer(cfg.MinEducationRank, cfg.MaxEducationRank),
		FittedAt:  time.Now().UTC(),
	}
	return snap, nil
}

// NewSnapshot assembles a snapshot from restored parts, checking that every
// space is aligned with records.
func NewSnapshot(records []types.InternshipRecord, spaces features.Set, weights types.Weights, scorer education.Scorer) (*Snapshot, error) {
	if err := spaces.Validate(len(records)); err != nil {
		return nil, err
	}
	if scorer.Hierarchy == nil {
		scorer.Hierarchy = education.DefaultHierarchy
	}
	return &Snapshot{
		Records:   append([]types.InternshipRecord(nil), records...),
		Spaces:    spaces,
		Weights:   weights,
		Education: scorer,
		FittedAt:  time.Now().UTC(),
	}, nil
}

// WithDefaults fills unset fields of cfg from types.DefaultEngineConfig.
// Weights are replaced only when all four are zero.
func WithDefaults(cfg types.EngineConfig) types.EngineConfig {
	def := types.DefaultEngineConfig()
	if cfg.Weights == (types.Weights{}) {
		cfg.Weights = def.Weights
	}
	if cfg.TopK <= 0 {
		cfg.TopK = def.TopK
	}
	if cfg.MinEducationRank <= 0 {
		cfg.MinEducationRank = def.MinEducationRank
	}
	if cfg.MaxEducationRank <= 0 {
		cfg.MaxEducationRank = def.MaxEducationRank
	}
	if cfg.Main.NgramMax <= 0 {
		cfg.Main = def.Main
	}
	if cfg.Industry.NgramMax <= 0 {
		cfg.Industry = def.Industry
	}
	if cfg.Location.NgramMax <= 0 {
		cfg.Location = def.Location
	}
	return cfg
}
