/*package stats computes summary statistics of variables read from dumps.*/
package stats

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/phil-mansfield/harmio/lib/dumpio"
)

// Summary gives the number of cells and the min, max, mean, and standard
// deviation of a variable.
type Summary struct {
	N                      int
	Min, Max, Mean, StdDev float64
}

// Summarize returns the Summary of every value in arr. An empty or nil array
// gives a zero Summary.
func Summarize(arr *dumpio.Array) Summary {
	if arr == nil || arr.Len() == 0 {
		return Summary{}
	}
	x := arr.Data
	mean, std := stat.MeanStdDev(x, nil)
	if len(x) == 1 {
		std = 0
	}
	return Summary{
		N: len(x), Min: floats.Min(x), Max: floats.Max(x),
		Mean: mean, StdDev: std,
	}
}

// Components returns one Summary per slab along the leading axis of arr, e.g.
// one per component of "uvec" or "B".
func Components(arr *dumpio.Array) []Summary {
	if arr == nil || len(arr.Shape) == 0 {
		return nil
	}
	out := make([]Summary, arr.Shape[0])
	for i := range out {
		out[i] = Summarize(arr.Component(i))
	}
	return out
}

func (s Summary) String() string {
	return fmt.Sprintf("n=%d min=%.6g max=%.6g mean=%.6g std=%.6g",
		s.N, s.Min, s.Max, s.Mean, s.StdDev)
}
