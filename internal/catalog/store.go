// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/internmatch/pkg/types"
)

const dbFile = "catalog.db"

// Store persists the catalog in a SQLite database. Rows keep the order in
// which they were loaded; that order is the row order of every feature
// matrix fitted from the store.
type Store struct {
	db         *sql.DB
	path       string
	fts        bool
	maxResults int
}

// NewStore opens or creates dataDir/catalog.db and its schema.
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: dbPath, maxResults: 20}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// FullText reports whether the FTS5 index is available. Without it Search
// falls back to substring matching.
func (s *Store) FullText() bool {
	return s.fts
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS internships (
			position INTEGER PRIMARY KEY,
			id TEXT NOT NULL,
			company TEXT NOT NULL,
			role TEXT NOT NULL,
			location TEXT NOT NULL,
			industry TEXT NOT NULL,
			required_skills TEXT NOT NULL,
			role_level TEXT NOT NULL,
			company_size TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_internships_id ON internships(id)`,
		`CREATE TABLE IF NOT EXISTS ingest_log (
			ingested_at TEXT NOT NULL,
			source TEXT NOT NULL,
			rows INTEGER NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='internships_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}
	if ftsExists > 0 {
		s.fts = true
		return nil
	}

	// The fts5 module is compiled in only with the sqlite_fts5 build tag.
	if _, err := s.db.Exec(
		`CREATE VIRTUAL TABLE internships_fts USING fts5(
			role, company, required_skills, industry, location,
			content=internships, content_rowid=position,
			tokenize="unicode61 tokenchars '+#'")`,
	); err != nil {
		if strings.Contains(err.Error(), "no such module") {
			return nil
		}
		return fmt.Errorf("creating FTS table: %w", err)
	}
	triggers := []string{
		`CREATE TRIGGER internships_ai AFTER INSERT ON internships BEGIN
			INSERT INTO internships_fts(rowid, role, company, required_skills, industry, location)
			VALUES (new.position, new.role, new.company, new.required_skills, new.industry, new.location);
		END`,
		`CREATE TRIGGER internships_ad AFTER DELETE ON internships BEGIN
			INSERT INTO internships_fts(internships_fts, rowid, role, company, required_skills, industry, location)
			VALUES ('delete', old.position, old.role, old.company, old.required_skills, old.industry, old.location);
		END`,
	}
	for _, stmt := range triggers {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("creating FTS infrastructure: %w", err)
		}
	}
	s.fts = true
	return nil
}

// Replace swaps the stored catalog for records in one transaction. A
// failed replace leaves the previous catalog intact.
func (s *Store) Replace(ctx context.Context, source string, records []types.InternshipRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM internships`); err != nil {
		return fmt.Errorf("clearing catalog: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO internships (position, id, company, role, location, industry, required_skills, role_level, company_size)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.ExecContext(ctx,
			i+1, r.ID, r.Company, r.Role, r.Location, r.Industry,
			r.RequiredSkills, string(r.RoleLevel), string(r.CompanySize),
		); err != nil {
			return fmt.Errorf("inserting record %s: %w", r.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO ingest_log (ingested_at, source, rows) VALUES (?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339), source, len(records),
	); err != nil {
		return fmt.Errorf("recording ingest: %w", err)
	}

	return tx.Commit()
}

// Records returns the catalog in load order.
func (s *Store) Records(ctx context.Context) ([]types.InternshipRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, company, role, location, industry, required_skills, role_level, company_size
		 FROM internships ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	return scanRecords(rows)
}

// Count returns the number of stored rows.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM internships`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting catalog: %w", err)
	}
	return n, nil
}

// IngestInfo describes the most recent ingest.
type IngestInfo struct {
	IngestedAt time.Time
	Source     string
	Rows       int
}

// LastIngest returns the most recent ingest, or ok=false when the store
// has never been filled.
func (s *Store) LastIngest(ctx context.Context) (info IngestInfo, ok bool, err error) {
	var at string
	err = s.db.QueryRowContext(ctx,
		`SELECT ingested_at, source, rows FROM ingest_log ORDER BY rowid DESC LIMIT 1`,
	).Scan(&at, &info.Source, &info.Rows)
	if err == sql.ErrNoRows {
		return IngestInfo{}, false, nil
	}
	if err != nil {
		return IngestInfo{}, false, fmt.Errorf("reading ingest log: %w", err)
	}
	if info.IngestedAt, err = time.Parse(time.RFC3339, at); err != nil {
		return IngestInfo{}, false, types.WrapError(types.KindData, err, "ingest log timestamp %q", at)
	}
	return info, true, nil
}

// Search returns records matching query, best matches first. Every
// whitespace-separated word must appear in one of the text columns; words
// are matched literally, so "c++" and "node.js" are plain terms.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]types.InternshipRecord, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, types.NewError(types.KindInvalidInput, "search query is empty")
	}
	if limit <= 0 {
		limit = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	if s.fts {
		qb.WriteString(
			`SELECT i.id, i.company, i.role, i.location, i.industry, i.required_skills, i.role_level, i.company_size
			FROM internships_fts
			JOIN internships i ON i.position = internships_fts.rowid
			WHERE internships_fts MATCH ?
			ORDER BY internships_fts.rank, i.position`)
		args = append(args, ftsQuery(query))
	} else {
		qb.WriteString(
			`SELECT id, company, role, location, industry, required_skills, role_level, company_size
			FROM internships WHERE 1=1`)
		for _, word := range strings.Fields(strings.ToLower(query)) {
			qb.WriteString(` AND lower(role || ' ' || company || ' ' || required_skills || ' ' || industry || ' ' || location) LIKE ? ESCAPE '\'`)
			args = append(args, "%"+likeEscaper.Replace(word)+"%")
		}
		qb.WriteString(` ORDER BY position`)
	}
	qb.WriteString(` LIMIT ?`)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("searching catalog: %w", err)
	}
	return scanRecords(rows)
}

// ftsQuery quotes every word as an FTS5 string so operator characters such
// as '+', '.', '#', '-' and '*' are never parsed as query syntax.
func ftsQuery(query string) string {
	words := strings.Fields(query)
	for i, w := range words {
		words[i] = `"` + strings.ReplaceAll(w, `"`, `""`) + `"`
	}
	return strings.Join(words, " ")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func scanRecords(rows *sql.Rows) ([]types.InternshipRecord, error) {
	defer rows.Close()

	var out []types.InternshipRecord
	for rows.Next() {
		var (
			r           types.InternshipRecord
			level, size string
		)
		if err := rows.Scan(&r.ID, &r.Company, &r.Role, &r.Location, &r.Industry,
			&r.RequiredSkills, &level, &size); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		r.RoleLevel = types.RoleLevel(level)
		r.CompanySize = types.CompanySize(size)
		out = append(out, r)
	}
	return out, rows.Err()
}
