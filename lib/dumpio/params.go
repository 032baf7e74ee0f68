package dumpio

import (
	"fmt"
	"sort"

	"github.com/spf13/cast"
)

// GridKeys are the Params entries a grid constructor needs.
var GridKeys = []string{"n1", "n2", "n3", "ng", "coordinates",
	"startx1", "startx2", "startx3", "dx1", "dx2", "dx3"}

// ScalarKeys are the single-valued run metadata every format fills in.
var ScalarKeys = []string{"gam", "a", "t", "n_step", "dt", "n_prim"}

// Params maps parameter names to scalar or small values. Formats store
// whatever types are natural for them; the accessors convert.
type Params map[string]interface{}

func (p Params) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Int returns p[key] as an int.
func (p Params) Int(key string) (int, error) {
	v, ok := p[key]
	if !ok {
		return 0, fmt.Errorf("The parameter '%s' is not set.", key)
	}
	i, err := cast.ToIntE(v)
	if err != nil {
		return 0, fmt.Errorf("The parameter '%s' is not an integer: %w", key, err)
	}
	return i, nil
}

// Float returns p[key] as a float64.
func (p Params) Float(key string) (float64, error) {
	v, ok := p[key]
	if !ok {
		return 0, fmt.Errorf("The parameter '%s' is not set.", key)
	}
	x, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, fmt.Errorf("The parameter '%s' is not a number: %w", key, err)
	}
	return x, nil
}

// String returns p[key] as a string.
func (p Params) String(key string) (string, error) {
	v, ok := p[key]
	if !ok {
		return "", fmt.Errorf("The parameter '%s' is not set.", key)
	}
	return cast.ToStringE(v)
}

// Strings returns p[key] as a []string.
func (p Params) Strings(key string) ([]string, error) {
	v, ok := p[key]
	if !ok {
		return nil, fmt.Errorf("The parameter '%s' is not set.", key)
	}
	return cast.ToStringSliceE(v)
}

// Require returns an error naming the first key that isn't in p.
func (p Params) Require(keys ...string) error {
	for _, key := range keys {
		if !p.Has(key) {
			return fmt.Errorf("The parameter '%s' is required, but the "+
				"params only contain %s.", key, p.Keys())
		}
	}
	return nil
}

// Validate checks that p can be used to build a grid and has the standard
// scalars.
func (p Params) Validate() error {
	if err := p.Require(GridKeys...); err != nil {
		return err
	}
	if err := p.Require(ScalarKeys...); err != nil {
		return err
	}
	for _, key := range []string{"n1", "n2", "n3"} {
		n, err := p.Int(key)
		if err != nil {
			return err
		}
		if n <= 0 {
			return fmt.Errorf("The parameter '%s' is %d, but grid "+
				"dimensions must be positive.", key, n)
		}
	}
	ng, err := p.Int("ng")
	if err != nil {
		return err
	}
	if ng < 0 {
		return fmt.Errorf("The parameter 'ng' is %d, but it can't be "+
			"negative.", ng)
	}
	return nil
}

// Keys returns the keys of p in sorted order.
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p))
	for key := range p {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Dims returns (n1, n2, n3) and ng.
func (p Params) Dims() (n [3]int, ng int, err error) {
	for dim, key := range []string{"n1", "n2", "n3"} {
		if n[dim], err = p.Int(key); err != nil {
			return n, 0, err
		}
	}
	ng, err = p.Int("ng")
	return n, ng, err
}
