package dimfield

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatticeSizes(t *testing.T) {
	for d := 1; d <= 8; d++ {
		l, err := buildLattice(d, DefaultVertexCap, nil)
		require.NoError(t, err)
		assert.Equal(t, 1<<uint(d), l.count, "dimension %d", d)
		assert.Equal(t, d, l.dim)
		assert.Len(t, l.coords, l.count*d)
		assert.Len(t, l.momentum, l.count*d)
	}
}

func TestLatticeCapTruncates(t *testing.T) {
	l, err := buildLattice(6, 10, nil)
	require.NoError(t, err)
	assert.Equal(t, 10, l.count)
}

func TestLatticeCornerBits(t *testing.T) {
	l, err := buildLattice(4, DefaultVertexCap, nil)
	require.NoError(t, err)
	for i := 0; i < l.count; i++ {
		v := l.vertex(i)
		for j := 0; j < 4; j++ {
			want := Real(-1)
			if i&(1<<uint(j)) != 0 {
				want = 1
			}
			if v[j] != want {
				t.Fatalf("vertex %d coord %d: got %v want %v", i, j, v[j], want)
			}
		}
	}
}

func TestLatticeParallelMatchesSerial(t *testing.T) {
	// dimension 11 crosses the worker fan-out threshold (2048 vertices)
	par, err := buildLattice(11, DefaultVertexCap, nil)
	require.NoError(t, err)
	require.Greater(t, par.count, ParallelThreshold)

	serial := make([]Real, par.count*par.dim)
	fillCorners(serial, 0, par.count, par.dim)
	assert.Equal(t, serial, par.coords)
}

func TestLatticeDistance(t *testing.T) {
	// d==1 uses the raw scalar coordinate difference
	l1, err := buildLattice(1, DefaultVertexCap, nil)
	require.NoError(t, err)
	assert.Equal(t, Real(2), l1.distanceTo(1))

	// higher dimensions use the Euclidean norm
	l3, err := buildLattice(3, DefaultVertexCap, nil)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, l3.distanceTo(1), 1e-12)            // one axis flipped
	assert.InDelta(t, 2*math.Sqrt(3), l3.distanceTo(7), 1e-12) // all three flipped
}

func TestLatticeRejectsBadArguments(t *testing.T) {
	_, err := buildLattice(0, 16, nil)
	assert.ErrorIs(t, err, ErrConfiguration)
	_, err = buildLattice(MaxDimensionsCap+1, 16, nil)
	assert.ErrorIs(t, err, ErrConfiguration)
	_, err = buildLattice(3, 0, nil)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestLatticeAllocationFailureSurfaces(t *testing.T) {
	boom := func(n int) ([]Real, error) { return nil, errors.New("no memory") }
	_, err := buildLattice(3, 16, boom)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrResourceExhaustion)
}

func TestVertexCount(t *testing.T) {
	cases := []struct{ dim, cap, want int }{
		{1, 1 << 20, 2},
		{3, 1 << 20, 8},
		{10, 1 << 20, 1024},
		{20, 1 << 20, 1 << 20},
		{10, 100, 100},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("d%d_cap%d", tc.dim, tc.cap), func(t *testing.T) {
			assert.Equal(t, tc.want, vertexCount(tc.dim, tc.cap))
		})
	}
}
