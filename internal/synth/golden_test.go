package synth

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reactive-kit/gears/internal/gr1"
)

// End-to-end: an open system model merged with a hand-written goal,
// snapshotted as the pretty dump.
func TestMergeOpenSystemGolden(t *testing.T) {
	base := gr1.New()
	base.SysProg = []string{"X0"}

	spec, warns, err := Merge(base, openSys(), nil, Options{Must: MustXor}, Options{})
	require.NoError(t, err)
	assert.Empty(t, warns)

	g := goldie.New(t)
	g.Assert(t, "merge_open_system", []byte(spec.Pretty()))
}
