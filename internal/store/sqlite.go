package store

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/nvandessel/chromaroot/internal/chroma"
	"github.com/nvandessel/chromaroot/internal/constants"
	"github.com/nvandessel/chromaroot/internal/palette"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLitePaletteStore implements PaletteStore on a SQLite database at
// <root>/.chromaroot/palette.db.
type SQLitePaletteStore struct {
	mu     sync.RWMutex
	db     *sql.DB
	dbPath string
}

// NewSQLitePaletteStore opens (creating if needed) the catalog under projectRoot.
func NewSQLitePaletteStore(projectRoot string) (*SQLitePaletteStore, error) {
	dataDir, err := EnsureDataDir(projectRoot)
	if err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dataDir, constants.PaletteDBName)

	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with single writer
	db.SetMaxOpenConns(1)

	if err := InitSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLitePaletteStore{db: db, dbPath: dbPath}, nil
}

// Path returns the database file path.
func (s *SQLitePaletteStore) Path() string {
	return s.dbPath
}

// Put inserts or replaces a swatch after checking it against its seed.
func (s *SQLitePaletteStore) Put(ctx context.Context, sw palette.Swatch) error {
	if err := sw.Validate(); err != nil {
		return fmt.Errorf("put swatch: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var digit, angle, num, den, step, baseAngle sql.NullInt64
	switch sw.Seed.Kind {
	case palette.SeedDigit:
		digit = nullInt(sw.Seed.Digit)
		angle = nullInt(sw.Seed.Angle)
	case palette.SeedFraction:
		num = nullInt(sw.Seed.Fraction.Numerator)
		den = nullInt(sw.Seed.Fraction.Denominator)
		rot := chroma.DefaultRotation()
		if sw.Seed.Rotation != nil {
			rot = *sw.Seed.Rotation
		}
		step = nullInt(rot.Step)
		baseAngle = nullInt(rot.BaseAngle)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO swatches (
			name, seed_kind, digit, angle, numerator, denominator, step, base_angle,
			c, m, y, k, css, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			seed_kind = excluded.seed_kind,
			digit = excluded.digit,
			angle = excluded.angle,
			numerator = excluded.numerator,
			denominator = excluded.denominator,
			step = excluded.step,
			base_angle = excluded.base_angle,
			c = excluded.c,
			m = excluded.m,
			y = excluded.y,
			k = excluded.k,
			css = excluded.css,
			updated_at = excluded.updated_at`,
		sw.Name, string(sw.Seed.Kind), digit, angle, num, den, step, baseAngle,
		sw.CMYK.C, sw.CMYK.M, sw.CMYK.Y, sw.CMYK.K, sw.CSS, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert swatch %q: %w", sw.Name, err)
	}
	return nil
}

const selectSwatch = `
	SELECT name, seed_kind, digit, angle, numerator, denominator, step, base_angle,
		c, m, y, k, css
	FROM swatches`

// Get retrieves a swatch by name. Returns nil if not found.
func (s *SQLitePaletteStore) Get(ctx context.Context, name string) (*palette.Swatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, selectSwatch+` WHERE name = ?`, name)
	sw, err := scanSwatch(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get swatch %q: %w", name, err)
	}
	return &sw, nil
}

// List returns all swatches sorted by name.
func (s *SQLitePaletteStore) List(ctx context.Context) ([]palette.Swatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, selectSwatch+` ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list swatches: %w", err)
	}
	defer rows.Close()

	out := make([]palette.Swatch, 0)
	for rows.Next() {
		sw, err := scanSwatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan swatch: %w", err)
		}
		out = append(out, sw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate swatches: %w", err)
	}
	return out, nil
}

// Delete removes a swatch by name.
func (s *SQLitePaletteStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM swatches WHERE name = ?`, name); err != nil {
		return fmt.Errorf("failed to delete swatch %q: %w", name, err)
	}
	return nil
}

// Close closes the database.
func (s *SQLitePaletteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSwatch(row rowScanner) (palette.Swatch, error) {
	var sw palette.Swatch
	var kind string
	var digit, angle, num, den, step, baseAngle sql.NullInt64
	err := row.Scan(&sw.Name, &kind, &digit, &angle, &num, &den, &step, &baseAngle,
		&sw.CMYK.C, &sw.CMYK.M, &sw.CMYK.Y, &sw.CMYK.K, &sw.CSS)
	if err != nil {
		return palette.Swatch{}, err
	}

	sw.Seed.Kind = palette.SeedKind(kind)
	switch sw.Seed.Kind {
	case palette.SeedDigit:
		sw.Seed.Digit = int(digit.Int64)
		sw.Seed.Angle = int(angle.Int64)
	case palette.SeedFraction:
		sw.Seed.Fraction = &chroma.Fraction{Numerator: int(num.Int64), Denominator: int(den.Int64)}
		sw.Seed.Rotation = &chroma.Rotation{Step: int(step.Int64), BaseAngle: int(baseAngle.Int64)}
	}
	return sw, nil
}

func nullInt(v int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(v), Valid: true}
}
