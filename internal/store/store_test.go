package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reactive-kit/gears/internal/gr1"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testSpec() *gr1.Spec {
	spec := gr1.New()
	spec.SysVars["loc"] = gr1.IntRange{Lo: 0, Hi: 2}
	spec.EnvVars["park"] = gr1.BoolDomain{}
	spec.SysSafety = []string{"(loc = 0) -> X((loc = 1))"}
	spec.SysProg = []string{"loc = 2"}
	return spec
}

func TestOpenAppliesPragmas(t *testing.T) {
	s := openTestStore(t)

	assert.NoError(t, s.verifyPragma("journal_mode", "wal"))
	assert.NoError(t, s.verifyPragma("foreign_keys", "1"))
	assert.NoError(t, s.verifyPragma("busy_timeout", "5000"))
	assert.NoError(t, s.verifyPragma("user_version", "1"))
}

func TestOpenIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	assert.NoError(t, s.Close())
}

func TestSaveAndGetRun(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	saved, err := s.SaveRun(ctx, testSpec(), "models/robot.yaml")
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.NotEmpty(t, saved.SpecHash)
	assert.Nil(t, saved.Realizable)

	got, err := s.GetRun(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, "models/robot.yaml", got.ModelPath)
	assert.Equal(t, saved.SpecHash, got.SpecHash)
	assert.True(t, saved.CreatedAt.Equal(got.CreatedAt))
	assert.Nil(t, got.Realizable)

	spec, err := got.Spec()
	require.NoError(t, err)
	assert.Equal(t, testSpec(), spec)
}

func TestGetRunNotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetRun(context.Background(), "no-such-run")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestListRuns(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	a, err := s.SaveRun(ctx, testSpec(), "a.yaml")
	require.NoError(t, err)
	b, err := s.SaveRun(ctx, testSpec(), "b.yaml")
	require.NoError(t, err)

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	ids := []string{runs[0].ID, runs[1].ID}
	assert.ElementsMatch(t, []string{a.ID, b.ID}, ids)
	assert.False(t, runs[0].CreatedAt.Before(runs[1].CreatedAt))
}

func TestSetRealizable(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run, err := s.SaveRun(ctx, testSpec(), "a.yaml")
	require.NoError(t, err)

	require.NoError(t, s.SetRealizable(ctx, run.ID, true))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Realizable)
	assert.True(t, *got.Realizable)

	assert.ErrorIs(t, s.SetRealizable(ctx, "no-such-run", false), ErrRunNotFound)
}

func TestHashSpecStable(t *testing.T) {
	h1, err := HashSpec(testSpec())
	require.NoError(t, err)
	h2, err := HashSpec(testSpec())
	require.NoError(t, err)
	assert.Equal(t, h1, h2)

	changed := testSpec()
	changed.SysProg = append(changed.SysProg, "park")
	h3, err := HashSpec(changed)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)
}

// The same variable name in composed and decomposed Unicode form must
// hash identically.
func TestHashSpecNFC(t *testing.T) {
	composed := gr1.New()
	composed.SysVars["caf\u00e9"] = gr1.BoolDomain{}
	decomposed := gr1.New()
	decomposed.SysVars["cafe\u0301"] = gr1.BoolDomain{}

	h1, err := HashSpec(composed)
	require.NoError(t, err)
	h2, err := HashSpec(decomposed)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
}
