// Package glossary persists user-defined terminology in sqlite. Terms for a
// language pair are loaded as a map and pinned in the translation prompt, so
// recurring domain vocabulary translates consistently across documents.
package glossary

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
	_ "modernc.org/sqlite"
)

// Entry is one glossary row.
type Entry struct {
	ID         string
	SourceLang string
	TargetLang string
	SourceTerm string
	TargetTerm string
	CreatedAt  time.Time
}

// Store is a sqlite-backed glossary. One term translation per
// (source_lang, target_lang, source_term); re-adding replaces.
type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS glossary (
		id TEXT PRIMARY KEY,
		source_lang TEXT NOT NULL,
		target_lang TEXT NOT NULL,
		source_term TEXT NOT NULL,
		target_term TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(source_lang, target_lang, source_term)
	);

	CREATE INDEX IF NOT EXISTS idx_glossary_pair ON glossary(source_lang, target_lang);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Add inserts or replaces the translation of sourceTerm for a language pair.
func (s *Store) Add(ctx context.Context, sourceLang, targetLang, sourceTerm, targetTerm string) error {
	sourceTerm = normalizeTerm(sourceTerm)
	targetTerm = strings.TrimSpace(targetTerm)
	if sourceTerm == "" || targetTerm == "" {
		return fmt.Errorf("glossary terms must be non-empty")
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO glossary (id, source_lang, target_lang, source_term, target_term)
		 VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(), normalizeLang(sourceLang), normalizeLang(targetLang), sourceTerm, targetTerm)
	return err
}

// Terms returns every term for a language pair as a source → target map,
// ready to attach to a translation request.
func (s *Store) Terms(ctx context.Context, sourceLang, targetLang string) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT source_term, target_term FROM glossary WHERE source_lang = ? AND target_lang = ?`,
		normalizeLang(sourceLang), normalizeLang(targetLang))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	terms := make(map[string]string)
	for rows.Next() {
		var src, tgt string
		if err := rows.Scan(&src, &tgt); err != nil {
			return nil, err
		}
		terms[src] = tgt
	}
	return terms, rows.Err()
}

// List returns glossary entries, optionally filtered by language pair (pass
// empty strings to return everything).
func (s *Store) List(ctx context.Context, sourceLang, targetLang string) ([]Entry, error) {
	query := `SELECT id, source_lang, target_lang, source_term, target_term, created_at FROM glossary`
	var args []interface{}

	sourceLang = normalizeLang(sourceLang)
	targetLang = normalizeLang(targetLang)
	switch {
	case sourceLang != "" && targetLang != "":
		query += ` WHERE source_lang = ? AND target_lang = ?`
		args = append(args, sourceLang, targetLang)
	case sourceLang != "":
		query += ` WHERE source_lang = ?`
		args = append(args, sourceLang)
	case targetLang != "":
		query += ` WHERE target_lang = ?`
		args = append(args, targetLang)
	}
	query += ` ORDER BY source_lang, target_lang, source_term`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.SourceLang, &e.TargetLang, &e.SourceTerm, &e.TargetTerm, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Delete removes an entry by ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM glossary WHERE id = ?`, id)
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}

// normalizeTerm trims whitespace and applies Unicode NFC normalization so
// visually identical terms map to one row.
func normalizeTerm(term string) string {
	return norm.NFC.String(strings.TrimSpace(term))
}

// normalizeLang lowercases a language code so pairs match regardless of how
// the code was typed.
func normalizeLang(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
