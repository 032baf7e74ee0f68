package dumpio

/* names.go contains the shared primitive variable naming conventions. Anything
that writes its primitives as a single array (iharm3d, KORAL, etc.) uses the
iharm ordering, so most formats can resolve names with IndexOf alone. */

import (
	"strings"
)

var (
	primNamesIHARM = []string{"RHO", "UU", "U1", "U2", "U3", "B1", "B2", "B3",
		"KTOT", "KEL_CONSTANT", "KEL_KAWAZURA", "KEL_WERNER", "KEL_ROWAN",
		"KEL_SHARMA"}

	// There is no Kel_Constant here. Files written with these names never
	// carried it.
	primNamesNew = []string{"rho", "u", "u1", "u2", "u3", "B1", "B2", "B3",
		"KTOT", "Kel_Kawazura", "Kel_Werner", "Kel_Rowan", "Kel_Sharma"}
)

// PrimNamesIHARM returns a copy of the canonical, upper-case primitive names
// in iharm order.
func PrimNamesIHARM() []string { return append([]string{}, primNamesIHARM...) }

// PrimNamesNew returns a copy of the mixed-case primitive names used by newer
// formats.
func PrimNamesNew() []string { return append([]string{}, primNamesNew...) }

// IndexOf returns the position of the variable vname along the leading
// (variable) axis of a primitives array.
//
// eprimNames and eprimIndices give the names and positions of the "extra"
// primitives actually present in a file, for formats where those fields don't
// have fixed positions. A nil eprimNames means no such list was supplied.
// When a list is supplied, a canonical name that isn't in it is not an error:
// resolution continues with the remaining rules, and usually ends with
// NotFound.
//
// Besides single names, "uvec" and "B" resolve to three-wide spans and
// "prims", "primitives" and "all" resolve to the whole axis. Anything else is
// NotFound.
func IndexOf(vname string, eprimNames []string, eprimIndices []int) Index {
	upper := strings.ToUpper(vname)

	if i := findString(primNamesIHARM, upper); i != -1 {
		if eprimNames == nil {
			return SingleIndex(i)
		}
		if j := findString(eprimNames, upper); j != -1 && j < len(eprimIndices) {
			return SingleIndex(eprimIndices[j])
		}
	}

	if i := findString(primNamesNew, vname); i != -1 {
		return SingleIndex(i)
	}

	// Vectors
	switch vname {
	case "uvec":
		return SpanIndex(IndexOf("u1", nil, nil).lo, IndexOf("u3", nil, nil).lo+1)
	case "B":
		return SpanIndex(IndexOf("B1", nil, nil).lo, IndexOf("B3", nil, nil).lo+1)
	case "prims", "primitives", "all":
		return AllIndex()
	}

	return NotFound
}

// findString returns the index of the first instance of target in x and -1 if
// target isn't in x.
func findString(x []string, target string) int {
	for i := range x {
		if x[i] == target {
			return i
		}
	}
	return -1
}
