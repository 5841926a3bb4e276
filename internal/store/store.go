// Package store keeps a history of discovery runs in SQLite so a previous
// snapshot can be rendered again without calling the provider.
package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"tasnim.dev/aws-netmap/internal/snapshot"
)

//go:embed schema.sql
var schemaFS embed.FS

// timeLayout is fixed width so taken_at sorts correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrNoRuns is returned by Latest when nothing has been recorded yet.
var ErrNoRuns = errors.New("no recorded runs")

// Run describes one recorded snapshot.
type Run struct {
	ID        string
	TakenAt   time.Time
	AccountID string
	Region    string
	Counts    snapshot.Counts
}

type Store struct {
	db *sql.DB
}

// dataSourceName builds a file: URI for path with the connection pragmas.
func dataSourceName(path string) string {
	u := url.URL{
		Scheme:   "file",
		OmitHost: true,
		Path:     filepath.ToSlash(path),
		RawQuery: "_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)",
	}
	return u.String()
}

// Open opens or creates the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	dsn := dataSourceName(path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	db.SetMaxOpenConns(1)

	schema, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("reading schema: %w", err)
	}
	if _, err := db.Exec(string(schema)); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores snap as a new run.
func (s *Store) Record(ctx context.Context, snap *snapshot.Snapshot) (Run, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return Run{}, fmt.Errorf("encoding snapshot: %w", err)
	}

	run := Run{
		ID:        uuid.NewString(),
		TakenAt:   snap.TakenAt.UTC(),
		AccountID: snap.AccountID,
		Region:    snap.Region,
		Counts:    snap.Counts(),
	}
	c := run.Counts
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, taken_at, account_id, region, vpcs, subnets, security_groups, interfaces, network_acls, instances, snapshot)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.TakenAt.Format(timeLayout), run.AccountID, run.Region,
		c.Vpcs, c.Subnets, c.SecurityGroups, c.Interfaces, c.NetworkAcls, c.Instances, string(data))
	if err != nil {
		return Run{}, fmt.Errorf("inserting run: %w", err)
	}
	return run, nil
}

const runColumns = `id, taken_at, account_id, region, vpcs, subnets, security_groups, interfaces, network_acls, instances`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner, extra ...any) (Run, error) {
	var (
		r       Run
		takenAt string
	)
	dest := []any{&r.ID, &takenAt, &r.AccountID, &r.Region,
		&r.Counts.Vpcs, &r.Counts.Subnets, &r.Counts.SecurityGroups,
		&r.Counts.Interfaces, &r.Counts.NetworkAcls, &r.Counts.Instances}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return Run{}, err
	}
	t, err := time.Parse(timeLayout, takenAt)
	if err != nil {
		return Run{}, fmt.Errorf("parsing taken_at: %w", err)
	}
	r.TakenAt = t
	return r, nil
}

// List returns up to limit runs, newest first. A limit <= 0 returns all.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY taken_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Latest returns the most recently taken snapshot.
func (s *Store) Latest(ctx context.Context) (*snapshot.Snapshot, Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+`, snapshot FROM runs ORDER BY taken_at DESC, rowid DESC LIMIT 1`)
	return s.load(row)
}

// Get returns the snapshot recorded under id.
func (s *Store) Get(ctx context.Context, id string) (*snapshot.Snapshot, Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+`, snapshot FROM runs WHERE id = ?`, id)
	return s.load(row)
}

func (s *Store) load(row *sql.Row) (*snapshot.Snapshot, Run, error) {
	var data string
	r, err := scanRun(row, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, Run{}, ErrNoRuns
	}
	if err != nil {
		return nil, Run{}, fmt.Errorf("loading run: %w", err)
	}

	var snap snapshot.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, Run{}, fmt.Errorf("decoding snapshot: %w", err)
	}
	return &snap, r, nil
}
