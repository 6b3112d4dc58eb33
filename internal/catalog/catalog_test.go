// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/internmatch/internal/httputil"
	"github.com/pdiddy/internmatch/pkg/types"
)

const sampleCSV = `id,company,role,location,industry,required_skills,stipend
1,Acme Technologies,Data Analyst Intern,Bangalore,Technology,"Python, SQL, Excel",10000
2,Globex Corporation,Marketing Intern,Mumbai,Marketing,"SEO, Content Writing",8000
3,Initech,Senior Software Engineer,Remote,Technology,"Go, Kubernetes",
4,Umbrella Labs,Research Associate,New  Delhi,,"python,  Statistics",5000
`

// --- test helpers ---

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(types.CatalogConfig{DataDir: filepath.Join(t.TempDir(), "data")})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRecords(t *testing.T) []types.InternshipRecord {
	t.Helper()
	records, err := ReadCSV(strings.NewReader(sampleCSV), DefaultClassifier())
	require.NoError(t, err)
	return records
}

// --- classifier tests ---

func TestKeywordRoleLevel(t *testing.T) {
	tests := []struct {
		role string
		want types.RoleLevel
	}{
		{"Data Analyst Intern", types.RoleEntry},
		{"Senior Software Engineer", types.RoleSenior},
		{"Tech Lead", types.RoleSenior},
		{"Research Associate", types.RoleMid},
		{"Sr. Developer", types.RoleSenior},
		{"Content Writer", types.RoleEntry},
		{"", types.RoleEntry},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			assert.Equal(t, tt.want, KeywordRoleLevel(tt.role))
		})
	}
}

func TestKeywordCompanySize(t *testing.T) {
	assert.Equal(t, types.CompanyLarge, KeywordCompanySize("Globex Corporation"))
	assert.Equal(t, types.CompanyLarge, KeywordCompanySize("Tata Consultancy Services Ltd."))
	assert.Equal(t, types.CompanyMedium, KeywordCompanySize("Acme Technologies"))
	assert.Equal(t, types.CompanySmall, KeywordCompanySize("Initech"))
}

func TestClassifierSwappable(t *testing.T) {
	c := Classifier{
		RoleLevel: func(string) types.RoleLevel { return types.RoleMid },
	}
	r := types.InternshipRecord{Role: "Intern", Company: "Globex Corporation"}
	c.Apply(&r)
	assert.Equal(t, types.RoleMid, r.RoleLevel)
	assert.Equal(t, types.CompanySmall, r.CompanySize)
}

// --- loader tests ---

func TestReadCSV(t *testing.T) {
	records := sampleRecords(t)
	require.Len(t, records, 4)

	assert.Equal(t, "1", records[0].ID)
	assert.Equal(t, "Python, SQL, Excel", records[0].RequiredSkills)
	assert.Equal(t, types.RoleEntry, records[0].RoleLevel)
	assert.Equal(t, types.CompanyMedium, records[0].CompanySize)

	assert.Equal(t, types.RoleSenior, records[2].RoleLevel)
	assert.Equal(t, "New Delhi", records[3].Location)
	assert.Equal(t, "", records[3].Industry)
	assert.Equal(t, "python, Statistics", records[3].RequiredSkills)
}

func TestReadCSVMissingColumns(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("id,company,role\n1,a,b\n"), DefaultClassifier())
	require.ErrorIs(t, err, types.ErrData)
	assert.Contains(t, err.Error(), "industry, location, required_skills")
}

func TestReadCSVEmpty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""), DefaultClassifier())
	assert.ErrorIs(t, err, types.ErrData)
}

func TestReadCSVShortRowsAndMissingIDs(t *testing.T) {
	in := "company,id,role,location,industry,required_skills\nAcme,,Intern\n"
	records, err := ReadCSV(strings.NewReader(in), DefaultClassifier())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "row-1", records[0].ID)
	assert.Equal(t, "Intern", records[0].Role)
	assert.Equal(t, "", records[0].RequiredSkills)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "internships.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	records, err := LoadFile(path, DefaultClassifier())
	require.NoError(t, err)
	assert.Len(t, records, 4)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.csv"), DefaultClassifier())
	assert.ErrorIs(t, err, types.ErrData)
}

func TestFetch(t *testing.T) {
	old := httputil.RetryBaseDelay
	httputil.RetryBaseDelay = time.Millisecond
	defer func() { httputil.RetryBaseDelay = old }()

	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte(sampleCSV))
	}))
	defer ts.Close()

	records, err := Fetch(context.Background(), ts.URL, FetchOptions{Client: ts.Client(), Token: "tok", Retries: 2}, DefaultClassifier())
	require.NoError(t, err)
	assert.Len(t, records, 4)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestFetchNotFound(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	_, err := Fetch(context.Background(), ts.URL, FetchOptions{Client: ts.Client(), Retries: 1}, DefaultClassifier())
	assert.ErrorIs(t, err, types.ErrData)
}

// --- store tests ---

func TestNewStoreCreatesDBFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	store, err := NewStore(types.CatalogConfig{DataDir: dir})
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(filepath.Join(dir, dbFile))
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, dbFile), store.Path())
}

func TestStoreReplaceKeepsOrder(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	records := sampleRecords(t)

	require.NoError(t, store.Replace(ctx, "sample.csv", records))
	got, err := store.Records(ctx)
	require.NoError(t, err)
	assert.Equal(t, records, got)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	info, ok, err := store.LastIngest(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "sample.csv", info.Source)
	assert.Equal(t, 4, info.Rows)
	assert.WithinDuration(t, time.Now(), info.IngestedAt, time.Minute)

	// A second replace swaps the whole catalog.
	require.NoError(t, store.Replace(ctx, "again", records[:1]))
	n, err = store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestStoreLastIngestEmpty(t *testing.T) {
	store := testStore(t)
	_, ok, err := store.LastIngest(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStoreLastIngestBadTimestamp(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	_, err := store.db.ExecContext(ctx,
		`INSERT INTO ingest_log (ingested_at, source, rows) VALUES ('yesterday', 'x.csv', 3)`)
	require.NoError(t, err)

	_, ok, err := store.LastIngest(ctx)
	assert.False(t, ok)
	assert.ErrorIs(t, err, types.ErrData)
}

func TestStoreSearch(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	require.NoError(t, store.Replace(ctx, "sample.csv", sampleRecords(t)))

	got, err := store.Search(ctx, "python", 10)
	require.NoError(t, err)
	ids := make([]string, len(got))
	for i, r := range got {
		ids[i] = r.ID
	}
	assert.ElementsMatch(t, []string{"1", "4"}, ids)

	got, err = store.Search(ctx, "kubernetes", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "3", got[0].ID)

	_, err = store.Search(ctx, "  ", 10)
	assert.ErrorIs(t, err, types.ErrInvalidInput)
}

func TestFTSQuery(t *testing.T) {
	assert.Equal(t, `"c++" "node.js"`, ftsQuery("  c++   node.js "))
	assert.Equal(t, `"say" """hi"""`, ftsQuery(`say "hi"`))
	assert.Equal(t, `"-excel" "py*"`, ftsQuery("-excel py*"))
}

func TestStoreSearchLiteralWords(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	require.NoError(t, store.Replace(ctx, "skills", []types.InternshipRecord{
		{ID: "1", Company: "Acme", Role: "Backend Intern", Location: "Pune", Industry: "Technology", RequiredSkills: "C++, Node.js"},
		{ID: "2", Company: "Globex", Role: "Tools Intern", Location: "Delhi", Industry: "Technology", RequiredSkills: "C#, SQL"},
	}))

	for _, q := range []string{"c++", "node.js", "C++ Pune"} {
		got, err := store.Search(ctx, q, 10)
		require.NoError(t, err, q)
		require.Len(t, got, 1, q)
		assert.Equal(t, "1", got[0].ID, q)
	}

	got, err := store.Search(ctx, "c#", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)

	got, err = store.Search(ctx, "100%", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

// --- browse tests ---

func TestBrowse(t *testing.T) {
	records := sampleRecords(t)

	tests := []struct {
		name     string
		filter   Filter
		wantIDs  []string
		filtered int
	}{
		{"no filter", Filter{}, []string{"1", "2", "3", "4"}, 4},
		{"sector substring", Filter{Industry: "tech"}, []string{"1", "3"}, 2},
		{"location case-insensitive", Filter{Location: "MUMBAI"}, []string{"2"}, 1},
		{"skill", Filter{Skill: "python"}, []string{"1", "4"}, 2},
		{"company", Filter{Company: "globex"}, []string{"2"}, 1},
		{"limit", Filter{Limit: 2}, []string{"1", "2"}, 4},
		{"offset", Filter{Limit: 2, Offset: 3}, []string{"4"}, 4},
		{"offset past end", Filter{Offset: 10}, []string{}, 4},
		{"no match", Filter{Industry: "aerospace"}, []string{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Browse(records, tt.filter)
			ids := []string{}
			for _, r := range page.Internships {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, 4, page.TotalCount)
			assert.Equal(t, tt.filtered, page.FilteredCount)
		})
	}
}

func TestHead(t *testing.T) {
	records := sampleRecords(t)
	assert.Len(t, Head(records, 2), 2)
	assert.Len(t, Head(records, 20), 4)
	assert.Empty(t, Head(nil, 20))
}

func TestFacets(t *testing.T) {
	records := sampleRecords(t)
	assert.Equal(t, []string{"Marketing", "Technology"}, Sectors(records))
	assert.Equal(t, []string{"Bangalore", "Mumbai", "New Delhi", "Remote"}, Locations(records))
	assert.Equal(t,
		[]string{"Content Writing", "Excel", "Go", "Kubernetes", "Python", "SEO", "SQL", "Statistics"},
		Skills(records))
}
