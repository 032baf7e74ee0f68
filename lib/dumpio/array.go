package dumpio

import (
	"fmt"
)

// Array is a dense, row-major array of float64 values.
type Array struct {
	Shape []int
	Data  []float64
}

// NewArray allocates a zeroed Array with the given shape.
func NewArray(shape ...int) *Array {
	n := 1
	for _, s := range shape {
		n *= s
	}
	return &Array{Shape: append([]int{}, shape...), Data: make([]float64, n)}
}

func (arr *Array) Len() int { return len(arr.Data) }

// offset converts a multi-dimensional index into an offset into Data.
func (arr *Array) offset(idx []int) int {
	if len(idx) != len(arr.Shape) {
		panic(fmt.Sprintf("Array has %d dimensions, but was indexed with %d.",
			len(arr.Shape), len(idx)))
	}
	off := 0
	for i := range idx {
		if idx[i] < 0 || idx[i] >= arr.Shape[i] {
			panic(fmt.Sprintf("Index %v is out of range for shape %v.",
				idx, arr.Shape))
		}
		off = off*arr.Shape[i] + idx[i]
	}
	return off
}

func (arr *Array) At(idx ...int) float64     { return arr.Data[arr.offset(idx)] }
func (arr *Array) Set(v float64, idx ...int) { arr.Data[arr.offset(idx)] = v }

// Component returns the i-th slab along the leading axis, sharing memory with
// arr.
func (arr *Array) Component(i int) *Array {
	if len(arr.Shape) == 0 || i < 0 || i >= arr.Shape[0] {
		panic(fmt.Sprintf("Component %d is out of range for shape %v.",
			i, arr.Shape))
	}
	n := len(arr.Data) / arr.Shape[0]
	return &Array{
		Shape: append([]int{}, arr.Shape[1:]...),
		Data:  arr.Data[i*n : (i+1)*n],
	}
}

// Range is a half-open range [Lo, Hi) along one axis. Hi == 0 means "to the
// end of the axis".
type Range struct {
	Lo, Hi int
}

// Selection picks a sub-box of the three spatial axes. A nil *Selection means
// the full extent.
type Selection [3]Range

// Resolve converts sel into concrete bounds for axes with lengths dims. It
// returns an error if any range falls outside its axis or is empty.
func (sel *Selection) Resolve(dims [3]int) ([3]Range, error) {
	out := [3]Range{}
	for dim := 0; dim < 3; dim++ {
		out[dim] = Range{0, dims[dim]}
		if sel == nil {
			continue
		}
		r := sel[dim]
		if r.Hi == 0 {
			r.Hi = dims[dim]
		}
		if r.Lo < 0 || r.Hi > dims[dim] || r.Lo >= r.Hi {
			return out, fmt.Errorf("The selection %d:%d along axis %d "+
				"doesn't fit inside an axis of length %d.",
				sel[dim].Lo, sel[dim].Hi, dim+1, dims[dim])
		}
		out[dim] = r
	}
	return out, nil
}

// extractBlock copies the cells in bounds out of a full (ghost-inclusive)
// block with dimensions full, writing them to out starting at out[0].
func extractBlock(block []float64, full [3]int, bounds [3]Range, out []float64) {
	k := 0
	for i := bounds[0].Lo; i < bounds[0].Hi; i++ {
		for j := bounds[1].Lo; j < bounds[1].Hi; j++ {
			start := (i*full[1]+j)*full[2] + bounds[2].Lo
			n := bounds[2].Hi - bounds[2].Lo
			copy(out[k:k+n], block[start:start+n])
			k += n
		}
	}
}

// spatialBounds converts a selection into bounds inside a full block with ng
// ghost cells on each side. If ghostZones is false, the ghost cells are
// stripped before sel is applied.
func spatialBounds(
	n [3]int, ng int, ghostZones bool, sel *Selection,
) (bounds [3]Range, full [3]int, err error) {
	var visible [3]int
	for dim := 0; dim < 3; dim++ {
		full[dim] = n[dim] + 2*ng
		visible[dim] = n[dim]
		if ghostZones {
			visible[dim] = full[dim]
		}
	}

	bounds, err = sel.Resolve(visible)
	if err != nil {
		return bounds, full, err
	}

	if !ghostZones {
		for dim := 0; dim < 3; dim++ {
			bounds[dim].Lo += ng
			bounds[dim].Hi += ng
		}
	}
	return bounds, full, nil
}
