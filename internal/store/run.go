package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/reactive-kit/gears/internal/gr1"
)

// Run is one archived encoding run. Realizable is nil until a solver
// has reported a verdict.
type Run struct {
	ID         string
	CreatedAt  time.Time
	ModelPath  string
	SpecHash   string
	SpecJSON   string
	Realizable *bool
}

// ErrRunNotFound is returned by GetRun and SetRealizable for unknown
// run IDs.
var ErrRunNotFound = errors.New("run not found")

// HashSpec returns the sha256 hex digest of the specification's wire
// JSON. The JSON is NFC-normalized first so the hash is stable across
// Unicode representations of the same variable names.
func HashSpec(spec *gr1.Spec) (string, error) {
	data, err := json.Marshal(spec)
	if err != nil {
		return "", fmt.Errorf("hash spec: %w", err)
	}
	sum := sha256.Sum256([]byte(norm.NFC.String(string(data))))
	return hex.EncodeToString(sum[:]), nil
}

// SaveRun archives a specification and returns the stored record with
// a fresh UUID.
func (s *Store) SaveRun(ctx context.Context, spec *gr1.Spec, modelPath string) (*Run, error) {
	specJSON, err := json.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("save run: %w", err)
	}
	hash, err := HashSpec(spec)
	if err != nil {
		return nil, fmt.Errorf("save run: %w", err)
	}

	run := &Run{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
		ModelPath: modelPath,
		SpecHash:  hash,
		SpecJSON:  string(specJSON),
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, created_at, model_path, spec_hash, spec_json, realizable)
		VALUES (?, ?, ?, ?, ?, NULL)
	`,
		run.ID,
		run.CreatedAt.Format(time.RFC3339Nano),
		run.ModelPath,
		run.SpecHash,
		run.SpecJSON,
	)
	if err != nil {
		return nil, fmt.Errorf("save run: %w", err)
	}
	return run, nil
}

// GetRun loads one run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, model_path, spec_hash, spec_json, realizable
		FROM runs
		WHERE id = ?
	`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get run %s: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}
	return run, nil
}

// ListRuns returns all runs, newest first. Ties on timestamp are
// broken by ID so the order is deterministic.
func (s *Store) ListRuns(ctx context.Context) ([]*Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, model_path, spec_hash, spec_json, realizable
		FROM runs
		ORDER BY created_at DESC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// SetRealizable records a solver verdict for a run.
func (s *Store) SetRealizable(ctx context.Context, id string, realizable bool) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE runs SET realizable = ? WHERE id = ?
	`, boolToInt(realizable), id)
	if err != nil {
		return fmt.Errorf("set realizable for %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set realizable for %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("set realizable for %s: %w", id, ErrRunNotFound)
	}
	return nil
}

// Spec decodes the archived wire JSON back into a specification.
func (r *Run) Spec() (*gr1.Spec, error) {
	var spec gr1.Spec
	if err := json.Unmarshal([]byte(r.SpecJSON), &spec); err != nil {
		return nil, fmt.Errorf("decode run %s spec: %w", r.ID, err)
	}
	return &spec, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var (
		run        Run
		createdAt  string
		realizable sql.NullInt64
	)
	if err := row.Scan(&run.ID, &createdAt, &run.ModelPath, &run.SpecHash, &run.SpecJSON, &realizable); err != nil {
		return nil, err
	}
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	run.CreatedAt = t
	if realizable.Valid {
		v := realizable.Int64 != 0
		run.Realizable = &v
	}
	return &run, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
