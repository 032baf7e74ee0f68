package dumpio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamsAccessors(t *testing.T) {
	p := Params{
		"n1": 128, "n2": "64", "n3": int64(32), "gam": 1.444, "a": "0.9375",
		"coordinates": "fmks", "prim_names": []string{"RHO", "UU"},
		"bad": "not a number",
	}

	n1, err := p.Int("n1")
	require.NoError(t, err)
	assert.Equal(t, 128, n1)

	n2, err := p.Int("n2")
	require.NoError(t, err)
	assert.Equal(t, 64, n2)

	n3, err := p.Int("n3")
	require.NoError(t, err)
	assert.Equal(t, 32, n3)

	a, err := p.Float("a")
	require.NoError(t, err)
	assert.Equal(t, 0.9375, a)

	coords, err := p.String("coordinates")
	require.NoError(t, err)
	assert.Equal(t, "fmks", coords)

	names, err := p.Strings("prim_names")
	require.NoError(t, err)
	assert.Equal(t, []string{"RHO", "UU"}, names)

	_, err = p.Int("bad")
	assert.Error(t, err)
	_, err = p.Float("bad")
	assert.Error(t, err)
	_, err = p.Float("missing")
	assert.Error(t, err)
	_, err = p.String("missing")
	assert.Error(t, err)

	assert.True(t, p.Has("gam"))
	assert.False(t, p.Has("missing"))
}

func TestParamsValidate(t *testing.T) {
	n := [3]int{8, 4, 2}
	require.NoError(t, testParams(n, 2).Validate())

	tests := []struct {
		key string
		val interface{}
	}{
		{"n1", 0},
		{"n2", -4},
		{"ng", -1},
		{"n3", "three"},
	}
	for i := range tests {
		p := testParams(n, 2)
		p[tests[i].key] = tests[i].val
		assert.Error(t, p.Validate(), "%d) %s = %v", i,
			tests[i].key, tests[i].val)
	}

	for _, key := range append(append([]string{}, GridKeys...), ScalarKeys...) {
		p := testParams(n, 2)
		delete(p, key)
		err := p.Validate()
		if assert.Error(t, err, "missing %s", key) {
			assert.Contains(t, err.Error(), key)
		}
	}
}

func TestParamsDims(t *testing.T) {
	n, ng, err := testParams([3]int{8, 4, 2}, 3).Dims()
	require.NoError(t, err)
	assert.Equal(t, [3]int{8, 4, 2}, n)
	assert.Equal(t, 3, ng)
}

func TestParamsKeys(t *testing.T) {
	p := Params{"b": 1, "a": 2, "c": 3}
	assert.Equal(t, []string{"a", "b", "c"}, p.Keys())
}
