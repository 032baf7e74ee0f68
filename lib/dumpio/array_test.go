package dumpio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArray(t *testing.T) {
	arr := NewArray(2, 3, 4)
	assert.Equal(t, []int{2, 3, 4}, arr.Shape)
	assert.Equal(t, 24, arr.Len())

	arr.Set(5, 1, 2, 3)
	assert.Equal(t, 5.0, arr.At(1, 2, 3))
	assert.Equal(t, 5.0, arr.Data[23])

	c := arr.Component(1)
	assert.Equal(t, []int{3, 4}, c.Shape)
	assert.Equal(t, 5.0, c.At(2, 3))

	// Components share memory.
	c.Set(7, 0, 0)
	assert.Equal(t, 7.0, arr.At(1, 0, 0))

	assert.Panics(t, func() { arr.At(2, 0, 0) })
	assert.Panics(t, func() { arr.At(0, 0) })
	assert.Panics(t, func() { arr.Component(2) })
}

func TestSelectionResolve(t *testing.T) {
	dims := [3]int{8, 4, 2}

	var nilSel *Selection
	bounds, err := nilSel.Resolve(dims)
	require.NoError(t, err)
	assert.Equal(t, [3]Range{{0, 8}, {0, 4}, {0, 2}}, bounds)

	tests := []struct {
		sel    Selection
		bounds [3]Range
		valid  bool
	}{
		{Selection{{0, 0}, {0, 0}, {0, 0}},
			[3]Range{{0, 8}, {0, 4}, {0, 2}}, true},
		{Selection{{2, 5}, {1, 0}, {0, 1}},
			[3]Range{{2, 5}, {1, 4}, {0, 1}}, true},
		{Selection{{0, 9}, {0, 0}, {0, 0}}, [3]Range{}, false},
		{Selection{{-1, 3}, {0, 0}, {0, 0}}, [3]Range{}, false},
		{Selection{{3, 3}, {0, 0}, {0, 0}}, [3]Range{}, false},
		{Selection{{0, 0}, {4, 0}, {0, 0}}, [3]Range{}, false},
	}

	for i := range tests {
		sel := tests[i].sel
		bounds, err := sel.Resolve(dims)
		if !tests[i].valid {
			assert.Error(t, err, "%d) %v", i, sel)
			continue
		}
		if assert.NoError(t, err, "%d) %v", i, sel) {
			assert.Equal(t, tests[i].bounds, bounds, "%d) %v", i, sel)
		}
	}
}

func TestSpatialBounds(t *testing.T) {
	n, ng := [3]int{4, 3, 2}, 2

	bounds, full, err := spatialBounds(n, ng, false, nil)
	require.NoError(t, err)
	assert.Equal(t, [3]int{8, 7, 6}, full)
	assert.Equal(t, [3]Range{{2, 6}, {2, 5}, {2, 4}}, bounds)

	bounds, _, err = spatialBounds(n, ng, true, nil)
	require.NoError(t, err)
	assert.Equal(t, [3]Range{{0, 8}, {0, 7}, {0, 6}}, bounds)

	sel := &Selection{{1, 2}, {0, 0}, {1, 0}}
	bounds, _, err = spatialBounds(n, ng, false, sel)
	require.NoError(t, err)
	assert.Equal(t, [3]Range{{3, 4}, {2, 5}, {3, 4}}, bounds)

	// Ghost cells can only be selected when they're included.
	_, _, err = spatialBounds(n, ng, false, &Selection{{0, 6}, {}, {}})
	assert.Error(t, err)
	_, _, err = spatialBounds(n, ng, true, &Selection{{0, 6}, {}, {}})
	assert.NoError(t, err)
}
