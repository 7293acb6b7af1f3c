// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists fetched articles in a local SQLite database
// with a full-text index over titles and abstracts. The store is a
// downstream convenience: the resolver never reads from it.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pubmed-harvester/pkg/types"
)

const (
	dbFile            = "harvest.db"
	defaultMaxResults = 20
	storedDateFmt     = "2006-01-02"
)

// Store manages the article SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the article database at
// cfg.DataDir/harvest.db, creating the schema if it does not exist.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "data"
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, maxResults: maxResults}
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

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS articles (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			pubmed_id TEXT NOT NULL UNIQUE,
			kind TEXT NOT NULL,
			title TEXT,
			abstract TEXT,
			journal TEXT,
			doi TEXT,
			publication_date TEXT,
			authors TEXT,
			fetched_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_kind ON articles(kind)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='articles_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE articles_fts USING fts5(title, abstract, content=articles, content_rowid=rowid)`,
			`CREATE TRIGGER articles_ai AFTER INSERT ON articles BEGIN
				INSERT INTO articles_fts(rowid, title, abstract) VALUES (new.rowid, new.title, new.abstract);
			END`,
			`CREATE TRIGGER articles_ad AFTER DELETE ON articles BEGIN
				INSERT INTO articles_fts(articles_fts, rowid, title, abstract) VALUES('delete', old.rowid, old.title, old.abstract);
			END`,
			`CREATE TRIGGER articles_au AFTER UPDATE ON articles BEGIN
				INSERT INTO articles_fts(articles_fts, rowid, title, abstract) VALUES('delete', old.rowid, old.title, old.abstract);
				INSERT INTO articles_fts(rowid, title, abstract) VALUES (new.rowid, new.title, new.abstract);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// Save upserts the given articles and returns the number written.
// Articles without a pubmed id are skipped.
func (s *Store) Save(ctx context.Context, articles []types.Article) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO articles (pubmed_id, kind, title, abstract, journal, doi, publication_date, authors, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(pubmed_id) DO UPDATE SET
			kind=excluded.kind, title=excluded.title, abstract=excluded.abstract,
			journal=excluded.journal, doi=excluded.doi,
			publication_date=excluded.publication_date, authors=excluded.authors,
			fetched_at=excluded.fetched_at`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	saved := 0
	for _, a := range articles {
		base := a.Base()
		if base.PubmedID == "" {
			continue
		}

		var journal string
		if paper, ok := a.(*types.Paper); ok {
			journal = paper.Journal
		}

		authorsJSON, err := json.Marshal(base.Authors)
		if err != nil {
			return saved, fmt.Errorf("marshaling authors for %s: %w", base.PubmedID, err)
		}

		var pubDate string
		if !base.PublicationDate.IsZero() {
			pubDate = base.PublicationDate.Format(storedDateFmt)
		}

		if _, err := stmt.ExecContext(ctx,
			base.PubmedID, string(a.Kind()), base.Title, base.Abstract,
			journal, base.DOI, pubDate, string(authorsJSON), now,
		); err != nil {
			return saved, fmt.Errorf("inserting article %s: %w", base.PubmedID, err)
		}
		saved++
	}

	if err := tx.Commit(); err != nil {
		return saved, fmt.Errorf("committing transaction: %w", err)
	}
	return saved, nil
}

// QueryOptions holds parameters for store queries.
type QueryOptions struct {
	// Query is the FTS5 full-text search string over title and abstract.
	Query string

	// Kind filters by article variant.
	Kind types.ArticleKind

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Kind == ""
}

// QueryResult is one stored article row.
type QueryResult struct {
	PubmedID        string         `json:"pubmed_id" yaml:"pubmed_id"`
	Kind            string         `json:"kind" yaml:"kind"`
	Title           string         `json:"title" yaml:"title"`
	Abstract        string         `json:"abstract" yaml:"abstract"`
	Journal         string         `json:"journal,omitempty" yaml:"journal,omitempty"`
	DOI             string         `json:"doi,omitempty" yaml:"doi,omitempty"`
	PublicationDate string         `json:"publication_date,omitempty" yaml:"publication_date,omitempty"`
	Authors         []types.Author `json:"authors" yaml:"authors"`
}

// Retrieve queries stored articles with optional full-text search and a
// kind filter. Full-text queries are ranked by relevance; structured
// queries sort by publication date descending.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT a.pubmed_id, a.kind, a.title, a.abstract, a.journal, a.doi,
				a.publication_date, a.authors
			FROM articles_fts
			JOIN articles a ON a.rowid = articles_fts.rowid
			WHERE articles_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT a.pubmed_id, a.kind, a.title, a.abstract, a.journal, a.doi,
				a.publication_date, a.authors
			FROM articles a
			WHERE 1=1`)
	}

	if opts.Kind != "" {
		qb.WriteString(` AND a.kind = ?`)
		args = append(args, string(opts.Kind))
	}

	if useFTS {
		qb.WriteString(` ORDER BY articles_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY a.publication_date DESC, a.pubmed_id`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying articles: %w", err)
	}
	defer rows.Close()

	var results []QueryResult
	for rows.Next() {
		var (
			qr          QueryResult
			journal     sql.NullString
			doi         sql.NullString
			pubDate     sql.NullString
			authorsJSON sql.NullString
		)
		if err := rows.Scan(
			&qr.PubmedID, &qr.Kind, &qr.Title, &qr.Abstract,
			&journal, &doi, &pubDate, &authorsJSON,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		qr.Journal = journal.String
		qr.DOI = doi.String
		qr.PublicationDate = pubDate.String
		if authorsJSON.Valid {
			json.Unmarshal([]byte(authorsJSON.String), &qr.Authors)
		}

		results = append(results, qr)
	}

	return results, rows.Err()
}

// Count returns the number of stored articles.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM articles`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting articles: %w", err)
	}
	return n, nil
}

// ExportYAML writes the articles matching opts to path as YAML.
func (s *Store) ExportYAML(ctx context.Context, path string, opts QueryOptions) error {
	results, err := s.exportResults(ctx, opts)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(results)
	if err != nil {
		return fmt.Errorf("marshaling export: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the articles matching opts to path as indented JSON.
func (s *Store) ExportJSON(ctx context.Context, path string, opts QueryOptions) error {
	results, err := s.exportResults(ctx, opts)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling export: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *Store) exportResults(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	if opts.MaxResults <= 0 {
		// Exports default to everything, not the query default.
		n, err := s.Count(ctx)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return []QueryResult{}, nil
		}
		opts.MaxResults = n
	}
	return s.Retrieve(ctx, opts)
}
