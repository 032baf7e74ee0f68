package dumpio

import (
	"fmt"
)

// MemoryDump is an object that implements the DumpFile interface but is
// initialized directly from arrays. It's used for testing and for building
// dumps in memory before writing them. See the DumpFile interface for method
// documentation.
type MemoryDump struct {
	Base
	src   Params
	names []string
	prims *Array
}

// NewMemoryDump creates a MemoryDump from params and a primitives array of
// shape [n_prim, n1+2ng, n2+2ng, n3+2ng]. The primitive names are taken from
// p["prim_names"], or from PrimNamesIHARM if it's missing.
func NewMemoryDump(p Params, prims *Array, opts Options) (*MemoryDump, error) {
	if err := p.Require(GridKeys...); err != nil {
		return nil, err
	}
	n, ng, err := p.Dims()
	if err != nil {
		return nil, err
	}
	if len(prims.Shape) != 4 {
		return nil, fmt.Errorf("Primitives must have 4 dimensions, not "+
			"shape %v.", prims.Shape)
	}
	for dim := 0; dim < 3; dim++ {
		if prims.Shape[dim+1] != n[dim]+2*ng {
			return nil, fmt.Errorf("Primitives have shape %v, but a "+
				"%dx%dx%d grid with %d ghost zones needs %d cells along "+
				"axis %d.", prims.Shape, n[0], n[1], n[2], ng,
				n[dim]+2*ng, dim+1)
		}
	}

	var names []string
	if p.Has("prim_names") {
		if names, err = p.Strings("prim_names"); err != nil {
			return nil, err
		}
	} else {
		if prims.Shape[0] > len(primNamesIHARM) {
			return nil, fmt.Errorf("%d primitives were given without "+
				"prim_names, but only %d have default names.",
				prims.Shape[0], len(primNamesIHARM))
		}
		names = PrimNamesIHARM()[:prims.Shape[0]]
	}
	if len(names) != prims.Shape[0] {
		return nil, fmt.Errorf("%d primitive names were given for %d "+
			"primitives.", len(names), prims.Shape[0])
	}
	if s, ok := containsDuplicates(names); ok {
		return nil, fmt.Errorf("'%s' occurs multiple times in the list of "+
			"primitive names, %s.", s, names)
	}

	d := &MemoryDump{Base: NewBase(opts), src: p, names: names, prims: prims}
	if err := d.ReadParams(); err != nil {
		return nil, err
	}
	return d, nil
}

// ReadParams copies the source params and fills in n_prim and prim_names.
func (d *MemoryDump) ReadParams() error {
	p := Params{}
	for key, v := range d.src {
		p[key] = v
	}
	p["n_prim"] = len(d.names)
	p["prim_names"] = append([]string{}, d.names...)
	d.setParams(p)
	return nil
}

func (d *MemoryDump) ReadVar(name string, sel *Selection) (*Array, error) {
	nPrim := len(d.names)
	idx := resolveName(name, d.names)
	if !idx.InRange(nPrim) {
		return nil, nil
	}

	n, ng, err := d.src.Dims()
	if err != nil {
		return nil, err
	}
	bounds, full, err := spatialBounds(n, ng, d.GhostZones(), sel)
	if err != nil {
		return nil, err
	}

	lo, hi := idx.Bounds(nPrim)
	arr := newVarArray(idx.IsSingle(), hi-lo, bounds)
	cells := len(arr.Data) / (hi - lo)
	for v := lo; v < hi; v++ {
		extractBlock(d.prims.Component(v).Data, full, bounds,
			arr.Data[(v-lo)*cells:])
	}
	return arr, nil
}

func (d *MemoryDump) Close() error { return nil }

// containsDuplicates tests whether any strings show up multiple times.
// If so, it returns one of those strings and true, otherwise it returns
// an empty string and false.
func containsDuplicates(s []string) (string, bool) {
	seen := map[string]bool{}
	for _, x := range s {
		if seen[x] {
			return x, true
		}
		seen[x] = true
	}
	return "", false
}
