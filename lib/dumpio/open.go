package dumpio

import (
	"fmt"
	"sync"
)

var (
	formatsMu sync.RWMutex
	formats   = []Format{RawFormat{}}
)

// Register adds a Format. Formats are tried in registration order, so later
// formats only see files no earlier format matched.
func Register(f Format) {
	formatsMu.Lock()
	defer formatsMu.Unlock()
	formats = append(formats, f)
}

// Formats returns the registered formats.
func Formats() []Format {
	formatsMu.RLock()
	defer formatsMu.RUnlock()
	return append([]Format{}, formats...)
}

// FormatFor returns the first registered Format which matches fname.
func FormatFor(fname string) (Format, error) {
	for _, f := range Formats() {
		if f.Match(fname) {
			return f, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", fname, ErrUnknownFormat)
}

// Open opens fname with whichever format recognizes it.
func Open(fname string, opts Options) (DumpFile, error) {
	f, err := FormatFor(fname)
	if err != nil {
		return nil, err
	}
	return f.Open(fname, opts)
}

// DumpTime returns the simulation time of fname with whichever format
// recognizes it.
func DumpTime(fname string) (float64, error) {
	f, err := FormatFor(fname)
	if err != nil {
		return 0, err
	}
	return f.DumpTime(fname)
}
