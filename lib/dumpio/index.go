package dumpio

import (
	"fmt"
)

type indexKind uint8

const (
	notFoundKind indexKind = iota
	singleKind
	spanKind
	allKind
)

// Index selects part of the leading axis of a primitives array: a single
// position, a half-open span, or the whole axis. The zero value is NotFound.
type Index struct {
	kind   indexKind
	lo, hi int
}

// NotFound is the Index returned for names that don't resolve to anything.
var NotFound = Index{}

// SingleIndex returns an Index selecting position i.
func SingleIndex(i int) Index { return Index{singleKind, i, i + 1} }

// SpanIndex returns an Index selecting the half-open range [lo, hi).
func SpanIndex(lo, hi int) Index { return Index{spanKind, lo, hi} }

// AllIndex returns an Index selecting the whole axis.
func AllIndex() Index { return Index{kind: allKind} }

func (idx Index) Found() bool    { return idx.kind != notFoundKind }
func (idx Index) IsSingle() bool { return idx.kind == singleKind }
func (idx Index) IsAll() bool    { return idx.kind == allKind }

// Single returns the selected position. ok is false unless idx is a single
// index.
func (idx Index) Single() (i int, ok bool) {
	if idx.kind != singleKind {
		return 0, false
	}
	return idx.lo, true
}

// Bounds resolves idx against an axis of length n and returns the half-open
// range it covers. NotFound resolves to the empty range [0, 0).
func (idx Index) Bounds(n int) (lo, hi int) {
	switch idx.kind {
	case singleKind, spanKind:
		return idx.lo, idx.hi
	case allKind:
		return 0, n
	}
	return 0, 0
}

// Len returns the number of positions idx covers along an axis of length n.
func (idx Index) Len(n int) int {
	lo, hi := idx.Bounds(n)
	return hi - lo
}

// InRange reports whether idx fits inside an axis of length n.
func (idx Index) InRange(n int) bool {
	if !idx.Found() {
		return false
	}
	lo, hi := idx.Bounds(n)
	return lo >= 0 && lo < hi && hi <= n
}

func (idx Index) String() string {
	switch idx.kind {
	case singleKind:
		return fmt.Sprintf("%d", idx.lo)
	case spanKind:
		return fmt.Sprintf("%d:%d", idx.lo, idx.hi)
	case allKind:
		return ":"
	}
	return "<not found>"
}
