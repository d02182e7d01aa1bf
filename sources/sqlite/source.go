// Package sqlite serves locale tables from a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	fakedata "github.com/goliatone/go-fakedata"
	_ "modernc.org/sqlite"
)

const (
	kindFormat = "format"
	kindPool   = "pool"
)

// Source implements fakedata.Source and fakedata.LocaleLister on SQLite
type Source struct {
	db *sql.DB
}

var (
	_ fakedata.Source       = &Source{}
	_ fakedata.LocaleLister = &Source{}
)

// Open opens or creates the database at path and ensures the schema exists.
// ":memory:" gives a private in-memory database.
func Open(path string) (*Source, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("sqlite source: path is required")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create source dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// every connection to :memory: is a distinct database
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Source{db: db}, nil
}

// Close releases the database
func (s *Source) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load implements fakedata.Source
func (s *Source) Load(locale string) (*fakedata.LocaleTable, error) {
	return s.LoadContext(context.Background(), locale)
}

// LoadContext reads the table of locale, fakedata.ErrLocaleNotFound when the
// database has no such locale.
func (s *Source) LoadContext(ctx context.Context, locale string) (*fakedata.LocaleTable, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("sqlite source: not configured")
	}

	table := &fakedata.LocaleTable{}
	err := s.db.QueryRowContext(ctx,
		`SELECT code, name, fallback FROM locales WHERE code = ?`, locale,
	).Scan(&table.Code, &table.Name, &table.Fallback)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", fakedata.ErrLocaleNotFound, locale)
	}
	if err != nil {
		return nil, fmt.Errorf("load locale %q: %w", locale, err)
	}

	if table.Formats, err = s.loadFormats(ctx, locale); err != nil {
		return nil, err
	}
	if table.Pools, err = s.loadPools(ctx, locale); err != nil {
		return nil, err
	}
	if err := s.loadEmptyKeys(ctx, table); err != nil {
		return nil, err
	}
	return table, nil
}

// loadEmptyKeys restores declared entries that have no rows, so resolving them
// reports fakedata.ErrEmptyPool rather than a missing key.
func (s *Source) loadEmptyKeys(ctx context.Context, table *fakedata.LocaleTable) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT kind, key FROM entry_keys WHERE locale = ? ORDER BY kind, key`, table.Code)
	if err != nil {
		return fmt.Errorf("load keys of %q: %w", table.Code, err)
	}
	defer rows.Close()

	for rows.Next() {
		var kind, key string
		if err := rows.Scan(&kind, &key); err != nil {
			return fmt.Errorf("scan key of %q: %w", table.Code, err)
		}
		switch kind {
		case kindFormat:
			if _, ok := table.Formats[key]; !ok {
				table.Formats[key] = nil
			}
		case kindPool:
			if _, ok := table.Pools[key]; !ok {
				table.Pools[key] = fakedata.Pool{}
			}
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate keys of %q: %w", table.Code, err)
	}
	return nil
}

func (s *Source) loadFormats(ctx context.Context, locale string) (map[string][]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, template FROM formats WHERE locale = ? ORDER BY key, position`, locale)
	if err != nil {
		return nil, fmt.Errorf("load formats of %q: %w", locale, err)
	}
	defer rows.Close()

	formats := make(map[string][]string)
	for rows.Next() {
		var key, template string
		if err := rows.Scan(&key, &template); err != nil {
			return nil, fmt.Errorf("scan format of %q: %w", locale, err)
		}
		formats[key] = append(formats[key], template)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate formats of %q: %w", locale, err)
	}
	return formats, nil
}

func (s *Source) loadPools(ctx context.Context, locale string) (map[string]fakedata.Pool, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, value, weight FROM pools WHERE locale = ? ORDER BY key, position`, locale)
	if err != nil {
		return nil, fmt.Errorf("load pools of %q: %w", locale, err)
	}
	defer rows.Close()

	type poolRows struct {
		values   []string
		weights  []float64
		weighted bool
	}
	collected := make(map[string]*poolRows)
	for rows.Next() {
		var (
			key, value string
			weight     sql.NullFloat64
		)
		if err := rows.Scan(&key, &value, &weight); err != nil {
			return nil, fmt.Errorf("scan pool of %q: %w", locale, err)
		}
		p, ok := collected[key]
		if !ok {
			p = &poolRows{}
			collected[key] = p
		}
		p.values = append(p.values, value)
		if weight.Valid {
			p.weights = append(p.weights, weight.Float64)
			p.weighted = true
		} else {
			p.weights = append(p.weights, 1)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pools of %q: %w", locale, err)
	}

	pools := make(map[string]fakedata.Pool, len(collected))
	for key, p := range collected {
		pool := fakedata.Pool{Values: p.values}
		if p.weighted {
			pool.Weights = p.weights
		}
		pools[key] = pool
	}
	return pools, nil
}

// Locales lists the stored locale codes, sorted
func (s *Source) Locales() ([]string, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("sqlite source: not configured")
	}

	rows, err := s.db.Query(`SELECT code FROM locales ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list locales: %w", err)
	}
	defer rows.Close()

	var locales []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("scan locale: %w", err)
		}
		locales = append(locales, code)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate locales: %w", err)
	}
	return locales, nil
}

// Import replaces the stored data of table.Code with table in one transaction
func (s *Source) Import(ctx context.Context, table *fakedata.LocaleTable) (err error) {
	if s == nil || s.db == nil {
		return errors.New("sqlite source: not configured")
	}
	if table == nil || strings.TrimSpace(table.Code) == "" {
		return errors.New("sqlite source: locale code is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import of %q: %w", table.Code, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, stmt := range []string{
		`DELETE FROM formats WHERE locale = ?`,
		`DELETE FROM pools WHERE locale = ?`,
		`DELETE FROM entry_keys WHERE locale = ?`,
		`DELETE FROM locales WHERE code = ?`,
	} {
		if _, err = tx.ExecContext(ctx, stmt, table.Code); err != nil {
			return fmt.Errorf("clear %q: %w", table.Code, err)
		}
	}

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO locales (code, name, fallback) VALUES (?, ?, ?)`,
		table.Code, table.Name, table.Fallback,
	); err != nil {
		return fmt.Errorf("insert locale %q: %w", table.Code, err)
	}

	for _, key := range sortedKeys(table.Formats) {
		if err = insertKey(ctx, tx, table.Code, kindFormat, key); err != nil {
			return err
		}
		for position, template := range table.Formats[key] {
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO formats (locale, key, position, template) VALUES (?, ?, ?, ?)`,
				table.Code, key, position, template,
			); err != nil {
				return fmt.Errorf("insert format %s/%s: %w", table.Code, key, err)
			}
		}
	}

	for _, key := range sortedKeys(table.Pools) {
		if err = insertKey(ctx, tx, table.Code, kindPool, key); err != nil {
			return err
		}
		pool := table.Pools[key]
		for position, value := range pool.Values {
			var weight sql.NullFloat64
			if pool.Weighted() && position < len(pool.Weights) {
				weight = sql.NullFloat64{Float64: pool.Weights[position], Valid: true}
			}
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO pools (locale, key, position, value, weight) VALUES (?, ?, ?, ?, ?)`,
				table.Code, key, position, value, weight,
			); err != nil {
				return fmt.Errorf("insert pool %s/%s: %w", table.Code, key, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit import of %q: %w", table.Code, err)
	}
	return nil
}

func insertKey(ctx context.Context, tx *sql.Tx, locale, kind, key string) error {
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO entry_keys (locale, kind, key) VALUES (?, ?, ?)`,
		locale, kind, key,
	); err != nil {
		return fmt.Errorf("insert %s key %s/%s: %w", kind, locale, key, err)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
