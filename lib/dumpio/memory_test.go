package dumpio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryDumpGhostZones(t *testing.T) {
	n, ng := [3]int{4, 3, 2}, 1
	names := PrimNamesIHARM()[:8]

	noGhost := newTestMemoryDump(t, names, n, ng, false)
	ghost := newTestMemoryDump(t, names, n, ng, true)

	rho, err := noGhost.ReadVar("RHO", nil)
	require.NoError(t, err)
	require.NotNil(t, rho)
	assert.Equal(t, []int{4, 3, 2}, rho.Shape)
	assert.Equal(t, cellValue(0, 1, 1, 1), rho.At(0, 0, 0))
	assert.Equal(t, cellValue(0, 4, 3, 2), rho.At(3, 2, 1))

	rhoGhost, err := ghost.ReadVar("RHO", nil)
	require.NoError(t, err)
	require.NotNil(t, rhoGhost)
	assert.Equal(t, []int{6, 5, 4}, rhoGhost.Shape)
	assert.Equal(t, cellValue(0, 0, 0, 0), rhoGhost.At(0, 0, 0))
	assert.Equal(t, cellValue(0, 5, 4, 3), rhoGhost.At(5, 4, 3))

	assert.Equal(t, false, noGhost.Params()["ghost_zones"])
	assert.Equal(t, true, ghost.Params()["ghost_zones"])
	assert.False(t, noGhost.GhostZones())
	assert.True(t, ghost.GhostZones())
}

func TestMemoryDumpReadVar(t *testing.T) {
	n, ng := [3]int{4, 3, 2}, 2
	d := newTestMemoryDump(t, extraPrimNames, n, ng, false)

	tests := []struct {
		name  string
		shape []int
		first int
	}{
		{"RHO", []int{4, 3, 2}, 0},
		{"rho", []int{4, 3, 2}, 0},
		{"Rho", []int{4, 3, 2}, 0},
		{"u", []int{4, 3, 2}, 1},
		{"uu", []int{4, 3, 2}, 1},
		{"b1", []int{4, 3, 2}, 5},
		{"B2", []int{4, 3, 2}, 6},
		{"KTOT", []int{4, 3, 2}, 8},
		{"KEL_WERNER", []int{4, 3, 2}, 9},
		{"Kel_Werner", []int{4, 3, 2}, 9},
		{"uvec", []int{3, 4, 3, 2}, 2},
		{"B", []int{3, 4, 3, 2}, 5},
		{"all", []int{10, 4, 3, 2}, 0},
		{"prims", []int{10, 4, 3, 2}, 0},
	}

	for i := range tests {
		arr, err := d.ReadVar(tests[i].name, nil)
		require.NoError(t, err, "%d) %s", i, tests[i].name)
		require.NotNil(t, arr, "%d) %s", i, tests[i].name)
		assert.Equal(t, tests[i].shape, arr.Shape, "%d) %s", i, tests[i].name)
		assert.Equal(t, cellValue(tests[i].first, ng, ng, ng), arr.Data[0],
			"%d) %s", i, tests[i].name)
	}

	// The second component of a vector is the next primitive.
	uvec, err := d.ReadVar("uvec", nil)
	require.NoError(t, err)
	assert.Equal(t, cellValue(3, ng+1, ng+2, ng+1), uvec.At(1, 1, 2, 1))
}

func TestMemoryDumpFixedNamesAnyCase(t *testing.T) {
	d := newTestMemoryDump(t, PrimNamesIHARM()[:8], [3]int{2, 2, 2}, 0, false)

	for name, v := range map[string]int{
		"RHO": 0, "rho": 0, "Rho": 0, "uu": 1, "Uu": 1, "u1": 2, "b1": 5,
		"b3": 7,
	} {
		idx := IndexOf(name, nil, nil)
		assert.Equal(t, SingleIndex(v), idx, name)

		arr, err := d.ReadVar(name, nil)
		require.NoError(t, err, name)
		if assert.NotNil(t, arr, name) {
			assert.Equal(t, cellValue(v, 0, 0, 0), arr.Data[0], name)
		}
	}

	// Canonical names past the fixed primitives aren't in this file.
	arr, err := d.ReadVar("ktot", nil)
	assert.NoError(t, err)
	assert.Nil(t, arr)
}

func TestMemoryDumpMissing(t *testing.T) {
	d := newTestMemoryDump(t, extraPrimNames, [3]int{2, 2, 2}, 0, false)

	for _, name := range []string{"KEL_ROWAN", "Kel_Rowan", "KEL_CONSTANT",
		"nonexistent_xyz"} {
		arr, err := d.ReadVar(name, nil)
		assert.NoError(t, err, name)
		assert.Nil(t, arr, name)
	}

	// Vectors which run past the end of the file are missing too.
	short := newTestMemoryDump(t, PrimNamesIHARM()[:4], [3]int{2, 2, 2}, 0,
		false)
	arr, err := short.ReadVar("uvec", nil)
	assert.NoError(t, err)
	assert.Nil(t, arr)
}

func TestMemoryDumpSelection(t *testing.T) {
	n, ng := [3]int{4, 3, 2}, 1
	d := newTestMemoryDump(t, extraPrimNames, n, ng, false)

	sel := &Selection{{1, 3}, {0, 0}, {1, 2}}
	arr, err := d.ReadVar("UU", sel)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 1}, arr.Shape)
	assert.Equal(t, cellValue(1, 2, 1, 2), arr.At(0, 0, 0))
	assert.Equal(t, cellValue(1, 3, 3, 2), arr.At(1, 2, 0))

	_, err = d.ReadVar("UU", &Selection{{0, 5}, {}, {}})
	assert.Error(t, err)
}

func TestMemoryDumpParams(t *testing.T) {
	d := newTestMemoryDump(t, extraPrimNames, [3]int{4, 3, 2}, 1, false)
	p := d.Params()
	assert.NoError(t, p.Validate())
	assert.Equal(t, 10, p["n_prim"])
	assert.Equal(t, extraPrimNames, p["prim_names"])

	p["junk"] = 1
	require.NoError(t, d.ReadParams())
	assert.False(t, d.Params().Has("junk"))
	assert.NoError(t, d.Close())
}

func TestNewMemoryDumpFailure(t *testing.T) {
	n, ng := [3]int{4, 3, 2}, 1

	tests := []struct {
		names []string
		prims *Array
	}{
		{[]string{"RHO"}, NewArray(1, 6, 5)},
		{[]string{"RHO"}, NewArray(1, 4, 3, 2)},
		{[]string{"RHO", "UU"}, NewArray(1, 6, 5, 4)},
		{[]string{"RHO", "RHO"}, NewArray(2, 6, 5, 4)},
		{nil, NewArray(15, 6, 5, 4)},
	}

	for i := range tests {
		p := testParams(n, ng)
		if tests[i].names != nil {
			p["prim_names"] = tests[i].names
		}
		_, err := NewMemoryDump(p, tests[i].prims, Options{})
		assert.Error(t, err, "%d)", i)
	}

	p := testParams(n, ng)
	delete(p, "dx2")
	_, err := NewMemoryDump(p, NewArray(1, 6, 5, 4), Options{})
	assert.Error(t, err)

	// Without prim_names, the iharm names are used.
	d, err := NewMemoryDump(testParams(n, ng), NewArray(3, 6, 5, 4), Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"RHO", "UU", "U1"}, d.Params()["prim_names"])
}
