// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package artifact

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/internmatch/internal/engine"
	"github.com/pdiddy/internmatch/pkg/types"
)

// --- test helpers ---

func sampleSnapshot(t *testing.T) *engine.Snapshot {
	t.Helper()
	records := []types.InternshipRecord{
		{ID: "1", Company: "Acme", Role: "Data Analyst Intern", Location: "Bangalore", Industry: "Technology",
			RequiredSkills: "Python, SQL, Excel", RoleLevel: types.RoleEntry, CompanySize: types.CompanySmall},
		{ID: "2", Company: "Globex Corporation", Role: "Marketing Intern", Location: "Mumbai", Industry: "Marketing",
			RequiredSkills: "SEO, Content Writing", RoleLevel: types.RoleEntry, CompanySize: types.CompanyLarge},
		{ID: "3", Company: "Initech", Role: "Backend Developer", Location: "Remote", Industry: "Technology",
			RequiredSkills: "Go, Docker", RoleLevel: types.RoleMid, CompanySize: types.CompanySmall},
	}
	cfg := types.DefaultEngineConfig()
	cfg.Weights = types.Weights{Main: 0.6, Industry: 0.2, Location: 0.1, Education: 0.1}
	snap, err := engine.Build(context.Background(), records, cfg)
	require.NoError(t, err)
	return snap
}

func profile() types.CandidateProfile {
	return types.CandidateProfile{
		Skills:             []string{"Python", "Go"},
		EducationLevel:     "MCA",
		SectorInterest:     "Technology",
		LocationPreference: "Remote",
	}
}

func exported(t *testing.T) (string, *engine.Snapshot) {
	t.Helper()
	snap := sampleSnapshot(t)
	dir := filepath.Join(t.TempDir(), "bundle")
	_, err := Export(dir, snap, "1.2.0")
	require.NoError(t, err)
	return dir, snap
}

// --- tests ---

func TestExportManifest(t *testing.T) {
	snap := sampleSnapshot(t)
	dir := filepath.Join(t.TempDir(), "bundle")

	man, err := Export(dir, snap, "1.2.0")
	require.NoError(t, err)
	assert.Equal(t, dir, man.Dir)
	assert.NotEmpty(t, man.BundleID)
	for _, name := range []string{MainFile, IndustryFile, LocationFile, CatalogFile, WeightsFile, MetadataFile} {
		assert.FileExists(t, man.Files[name])
	}
	assert.True(t, Exists(dir))
	assert.False(t, Exists(t.TempDir()))
}

func TestRoundTripRanksIdentically(t *testing.T) {
	dir, before := exported(t)

	after, meta, err := Import(dir)
	require.NoError(t, err)
	require.NotNil(t, meta)

	assert.Equal(t, before.Records, after.Records)
	assert.Equal(t, before.Weights, after.Weights)
	assert.Equal(t, before.Spaces.VocabularySizes(), after.Spaces.VocabularySizes())
	assert.Equal(t, "1.2.0", meta.ModelVersion)
	assert.Equal(t, 3, meta.Rows)
	assert.Equal(t, FormatVersion, meta.FormatVersion)

	want, err := before.Rank(profile(), 3)
	require.NoError(t, err)
	got, err := after.Rank(profile(), 3)
	require.NoError(t, err)

	a, _ := json.Marshal(want)
	b, _ := json.Marshal(got)
	assert.JSONEq(t, string(a), string(b))
}

func TestImportWithoutOptionalMembers(t *testing.T) {
	dir, _ := exported(t)
	require.NoError(t, os.Remove(filepath.Join(dir, WeightsFile)))
	require.NoError(t, os.Remove(filepath.Join(dir, MetadataFile)))

	snap, meta, err := Import(dir)
	require.NoError(t, err)
	assert.Nil(t, meta)
	assert.Equal(t, types.DefaultWeights(), snap.Weights)
	assert.Equal(t, 3, snap.Education.MinRank)
}

func TestImportMissingMandatoryMember(t *testing.T) {
	for _, name := range []string{MainFile, IndustryFile, LocationFile, CatalogFile} {
		t.Run(name, func(t *testing.T) {
			dir, _ := exported(t)
			require.NoError(t, os.Remove(filepath.Join(dir, name)))

			_, _, err := Import(dir)
			require.ErrorIs(t, err, types.ErrArtifact)
			assert.Contains(t, err.Error(), name)
		})
	}
}

func TestImportChecksumMismatch(t *testing.T) {
	dir, _ := exported(t)
	path := filepath.Join(dir, CatalogFile)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, append(data, '\n'), 0o644))

	_, _, err = Import(dir)
	require.ErrorIs(t, err, types.ErrArtifact)
	assert.Contains(t, err.Error(), "checksum mismatch")
}

func TestImportCorruptSpace(t *testing.T) {
	dir, _ := exported(t)
	require.NoError(t, os.Remove(filepath.Join(dir, MetadataFile)))
	require.NoError(t, os.WriteFile(filepath.Join(dir, IndustryFile), []byte("{not json"), 0o644))

	_, _, err := Import(dir)
	assert.ErrorIs(t, err, types.ErrArtifact)
}

func TestImportSwappedSpaces(t *testing.T) {
	dir, _ := exported(t)
	require.NoError(t, os.Remove(filepath.Join(dir, MetadataFile)))
	main, err := os.ReadFile(filepath.Join(dir, MainFile))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, LocationFile), main, 0o644))

	_, _, err = Import(dir)
	require.ErrorIs(t, err, types.ErrArtifact)
}

func TestImportMisalignedCatalog(t *testing.T) {
	dir, snap := exported(t)
	require.NoError(t, os.Remove(filepath.Join(dir, MetadataFile)))

	data, err := json.Marshal(catalogFile{Records: snap.Records[:2]})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, CatalogFile), data, 0o644))

	_, _, err = Import(dir)
	require.ErrorIs(t, err, types.ErrArtifact)
	assert.Contains(t, err.Error(), "misaligned")
}

func TestImportRejectsBadMetadata(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m map[string]any)
		want   string
	}{
		{"unsupported format", func(m map[string]any) { m["format_version"] = 99 }, "format_version"},
		{"missing model version", func(m map[string]any) { delete(m, "model_version") }, "model_version"},
		{"wrong rows", func(m map[string]any) { m["rows"] = 7 }, "rows"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, _ := exported(t)
			path := filepath.Join(dir, MetadataFile)
			data, err := os.ReadFile(path)
			require.NoError(t, err)

			var doc map[string]any
			require.NoError(t, yaml.Unmarshal(data, &doc))
			tt.mutate(doc)
			data, err = yaml.Marshal(doc)
			require.NoError(t, err)
			require.NoError(t, os.WriteFile(path, data, 0o644))

			_, _, err = Import(dir)
			require.ErrorIs(t, err, types.ErrArtifact)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateMetadataReportsFields(t *testing.T) {
	err := validateMetadata(map[string]any{"format_version": "one"})
	var se *SchemaError
	require.ErrorAs(t, err, &se)
	assert.NotEmpty(t, se.Errors)
	assert.True(t, strings.HasPrefix(se.Error(), "metadata does not match schema"))
}

func TestExportRequiresSnapshot(t *testing.T) {
	_, err := Export(t.TempDir(), nil, "1.0.0")
	assert.ErrorIs(t, err, types.ErrNotFitted)
}
