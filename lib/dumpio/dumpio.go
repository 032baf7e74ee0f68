/*package dumpio contains the interfaces and shared naming conventions for
reading GRMHD simulation dump files. Adding support for a new file format
requires writing a struct that implements DumpFile and a Format that knows how
to open it and how to read its time cheaply. Most formats will want to embed
Base and resolve variable names through IndexOf.
*/
package dumpio

import (
	"errors"
)

var (
	// ErrNotImplemented is returned by every Base method that a concrete
	// format is expected to override.
	ErrNotImplemented = errors.New("dumpio: not implemented")
	// ErrUnknownFormat is returned when no registered Format recognizes a
	// file.
	ErrUnknownFormat = errors.New("dumpio: unknown dump format")
)

// Options are the construction options shared by all formats.
type Options struct {
	// GhostZones controls whether arrays returned by ReadVar include the
	// boundary cells around each spatial axis.
	GhostZones bool
}

// DumpFile is an abstraction over a single open dump file. Implementations
// hold their file handle until Close is called and read on demand.
type DumpFile interface {
	// Params returns the metadata of the dump: at least enough to build a
	// grid (see GridKeys), plus scalars like gam, a, t and n_step.
	Params() Params
	// ReadParams (re)populates Params from the file. Calling it again is
	// harmless.
	ReadParams() error
	// ReadVar reads the variable with the given name. sel narrows the
	// spatial extent; nil means everything. If the variable is not in the
	// file, ReadVar returns a nil Array and a nil error.
	ReadVar(name string, sel *Selection) (*Array, error)
	// GhostZones reports whether ReadVar includes ghost zones.
	GhostZones() bool
	// Close releases the file handle.
	Close() error
}

// Format is the type-level half of a file format: things that can be done
// with a file name and no open DumpFile.
type Format interface {
	// Name is a short identifier for the format, e.g. "raw".
	Name() string
	// Match reports whether fname looks like a file of this format. It
	// should be cheap (an extension or a magic number).
	Match(fname string) bool
	// Open opens fname. The returned DumpFile owns the file handle.
	Open(fname string, opts Options) (DumpFile, error)
	// DumpTime returns the simulation time stored in fname without reading
	// any field data.
	DumpTime(fname string) (float64, error)
}

// Type checking
var (
	_ DumpFile = &RawDump{}
	_ DumpFile = &MemoryDump{}
	_ Format   = RawFormat{}
)
