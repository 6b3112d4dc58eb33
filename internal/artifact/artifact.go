// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package artifact exports fitted snapshots as a self-describing bundle
// directory and imports them back without refitting. Row i of every
// exported matrix is row i of the exported catalog.
package artifact

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/internmatch/internal/education"
	"github.com/pdiddy/internmatch/internal/engine"
	"github.com/pdiddy/internmatch/internal/features"
	"github.com/pdiddy/internmatch/pkg/types"
)

// FormatVersion is the bundle layout written by Export.
const FormatVersion = 1

// Bundle member file names.
const (
	MainFile     = "space-main.json"
	IndustryFile = "space-industry.json"
	LocationFile = "space-location.json"
	CatalogFile  = "catalog.json"
	WeightsFile  = "weights.yaml"
	MetadataFile = "metadata.yaml"
)

var spaceFiles = map[string]string{
	features.FieldMain:     MainFile,
	features.FieldIndustry: IndustryFile,
	features.FieldLocation: LocationFile,
}

// Metadata describes a bundle.
type Metadata struct {
	FormatVersion   int               `yaml:"format_version" json:"format_version"`
	ModelVersion    string            `yaml:"model_version" json:"model_version"`
	BundleID        string            `yaml:"bundle_id" json:"bundle_id"`
	CreatedAt       time.Time         `yaml:"created_at" json:"created_at"`
	Education       EducationMeta     `yaml:"education" json:"education"`
	Rows            int               `yaml:"rows" json:"rows"`
	VocabularySizes map[string]int    `yaml:"vocabulary_sizes" json:"vocabulary_sizes"`
	Checksums       map[string]string `yaml:"checksums" json:"checksums"`
}

// EducationMeta records the education table the bundle was fitted with.
type EducationMeta struct {
	Hierarchy education.Hierarchy `yaml:"hierarchy" json:"hierarchy"`
	MinRank   int                 `yaml:"min_rank" json:"min_rank"`
	MaxRank   int                 `yaml:"max_rank" json:"max_rank"`
}

// Manifest lists what Export wrote.
type Manifest struct {
	Dir      string            `json:"dir" yaml:"dir"`
	BundleID string            `json:"bundle_id" yaml:"bundle_id"`
	Files    map[string]string `json:"files" yaml:"files"`
}

type spaceFile struct {
	Name    string            `json:"name"`
	Options features.Options  `json:"options"`
	Terms   []string          `json:"terms"`
	IDF     []float64         `json:"idf"`
	Rows    []features.Vector `json:"rows"`
}

type catalogFile struct {
	Records []types.InternshipRecord `json:"records"`
}

// Export writes snap into dir, creating it if needed.
func Export(dir string, snap *engine.Snapshot, modelVersion string) (Manifest, error) {
	if snap == nil {
		return Manifest{}, types.NewError(types.KindNotFitted, "nothing to export")
	}
	if err := snap.Spaces.Validate(snap.Rows()); err != nil {
		return Manifest{}, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Manifest{}, fmt.Errorf("creating bundle directory: %w", err)
	}

	meta := Metadata{
		FormatVersion: FormatVersion,
		ModelVersion:  modelVersion,
		BundleID:      uuid.NewString(),
		CreatedAt:     time.Now().UTC().Truncate(time.Second),
		Education: EducationMeta{
			Hierarchy: snap.Education.Hierarchy,
			MinRank:   snap.Education.MinRank,
			MaxRank:   snap.Education.MaxRank,
		},
		Rows:            snap.Rows(),
		VocabularySizes: snap.Spaces.VocabularySizes(),
		Checksums:       make(map[string]string),
	}
	man := Manifest{Dir: dir, BundleID: meta.BundleID, Files: make(map[string]string)}

	write := func(name string, data []byte) error {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
		sum := sha256.Sum256(data)
		meta.Checksums[name] = hex.EncodeToString(sum[:])
		man.Files[name] = path
		return nil
	}

	for _, sp := range snap.Spaces.Spaces() {
		data, err := json.Marshal(spaceFile{
			Name:    sp.Name(),
			Options: sp.Options(),
			Terms:   sp.Terms(),
			IDF:     sp.IDF(),
			Rows:    sp.Matrix(),
		})
		if err != nil {
			return Manifest{}, fmt.Errorf("encoding %s space: %w", sp.Name(), err)
		}
		if err := write(spaceFiles[sp.Name()], data); err != nil {
			return Manifest{}, err
		}
	}

	data, err := json.MarshalIndent(catalogFile{Records: snap.Records}, "", "  ")
	if err != nil {
		return Manifest{}, fmt.Errorf("encoding catalog: %w", err)
	}
	if err := write(CatalogFile, data); err != nil {
		return Manifest{}, err
	}

	data, err = yaml.Marshal(snap.Weights)
	if err != nil {
		return Manifest{}, fmt.Errorf("encoding weights: %w", err)
	}
	if err := write(WeightsFile, data); err != nil {
		return Manifest{}, err
	}

	data, err = yaml.Marshal(&meta)
	if err != nil {
		return Manifest{}, fmt.Errorf("encoding metadata: %w", err)
	}
	path := filepath.Join(dir, MetadataFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return Manifest{}, fmt.Errorf("writing %s: %w", MetadataFile, err)
	}
	man.Files[MetadataFile] = path

	return man, nil
}

// Exists reports whether dir holds every mandatory bundle member.
func Exists(dir string) bool {
	for _, name := range mandatory() {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return false
		}
	}
	return true
}

func mandatory() []string {
	return []string{MainFile, IndustryFile, LocationFile, CatalogFile}
}

// Import restores the snapshot exported to dir. Missing or unreadable
// mandatory members, a metadata document that fails validation, checksum
// mismatches and misaligned rows fail with an artifact error. Missing
// weights or metadata fall back to defaults.
func Import(dir string) (*engine.Snapshot, *Metadata, error) {
	raw := make(map[string][]byte)
	for _, name := range mandatory() {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, nil, types.WrapError(types.KindArtifact, err, "reading bundle member %s", name)
		}
		raw[name] = data
	}
	for _, name := range []string{WeightsFile, MetadataFile} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, nil, types.WrapError(types.KindArtifact, err, "reading bundle member %s", name)
		}
		raw[name] = data
	}

	var meta *Metadata
	if data, ok := raw[MetadataFile]; ok {
		m, err := decodeMetadata(data)
		if err != nil {
			return nil, nil, err
		}
		if err := verifyChecksums(m.Checksums, raw); err != nil {
			return nil, nil, err
		}
		meta = m
	}

	var spaces features.Set
	for _, field := range []string{features.FieldMain, features.FieldIndustry, features.FieldLocation} {
		sp, err := decodeSpace(field, raw[spaceFiles[field]])
		if err != nil {
			return nil, nil, err
		}
		switch field {
		case features.FieldMain:
			spaces.Main = sp
		case features.FieldIndustry:
			spaces.Industry = sp
		case features.FieldLocation:
			spaces.Location = sp
		}
	}

	var cat catalogFile
	if err := json.Unmarshal(raw[CatalogFile], &cat); err != nil {
		return nil, nil, types.WrapError(types.KindArtifact, err, "decoding %s", CatalogFile)
	}
	if meta != nil && meta.Rows != len(cat.Records) {
		return nil, nil, types.NewError(types.KindArtifact,
			"metadata records %d rows, catalog has %d", meta.Rows, len(cat.Records))
	}

	weights := types.DefaultWeights()
	if data, ok := raw[WeightsFile]; ok {
		if err := yaml.Unmarshal(data, &weights); err != nil {
			return nil, nil, types.WrapError(types.KindArtifact, err, "decoding %s", WeightsFile)
		}
	}

	scorer := education.NewScorer(0, 0)
	if meta != nil && len(meta.Education.Hierarchy) > 0 {
		scorer = education.Scorer{
			Hierarchy: meta.Education.Hierarchy,
			MinRank:   meta.Education.MinRank,
			MaxRank:   meta.Education.MaxRank,
		}
	}

	snap, err := engine.NewSnapshot(cat.Records, spaces, weights, scorer)
	if err != nil {
		return nil, nil, types.WrapError(types.KindArtifact, err, "bundle rows are misaligned")
	}
	return snap, meta, nil
}

func decodeMetadata(data []byte) (*Metadata, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, types.WrapError(types.KindArtifact, err, "decoding %s", MetadataFile)
	}
	if err := validateMetadata(doc); err != nil {
		return nil, types.WrapError(types.KindArtifact, err, "invalid %s", MetadataFile)
	}
	var m Metadata
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, types.WrapError(types.KindArtifact, err, "decoding %s", MetadataFile)
	}
	if m.FormatVersion != FormatVersion {
		return nil, types.NewError(types.KindArtifact,
			"unsupported bundle format_version %d (want %d)", m.FormatVersion, FormatVersion)
	}
	return &m, nil
}

func verifyChecksums(sums map[string]string, raw map[string][]byte) error {
	names := make([]string, 0, len(sums))
	for name := range sums {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		data, ok := raw[name]
		if !ok {
			continue
		}
		sum := sha256.Sum256(data)
		if hex.EncodeToString(sum[:]) != sums[name] {
			return types.NewError(types.KindArtifact, "checksum mismatch for %s", name)
		}
	}
	return nil
}

func decodeSpace(field string, data []byte) (*features.Space, error) {
	var sf spaceFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return nil, types.WrapError(types.KindArtifact, err, "decoding %s space", field)
	}
	if sf.Name != field {
		return nil, types.NewError(types.KindArtifact, "%s holds space %q", spaceFiles[field], sf.Name)
	}
	sp, err := features.Restore(sf.Name, sf.Options, sf.Terms, sf.IDF, sf.Rows)
	if err != nil {
		return nil, types.WrapError(types.KindArtifact, err, "restoring %s space", field)
	}
	return sp, nil
}
