package dumpio

// Base is meant to be embedded by concrete DumpFile implementations. It
// stores the params and the ghost zone option, and every method a format has
// to provide itself returns ErrNotImplemented.
type Base struct {
	params     Params
	ghostZones bool
}

// NewBase creates a Base with empty params.
func NewBase(opts Options) Base {
	return Base{params: Params{}, ghostZones: opts.GhostZones}
}

func (b *Base) Params() Params {
	if b.params == nil {
		b.params = Params{}
	}
	return b.params
}

func (b *Base) GhostZones() bool { return b.ghostZones }

// setParams replaces the params wholesale. The ghost_zones entry always
// reflects the construction option.
func (b *Base) setParams(p Params) {
	p["ghost_zones"] = b.ghostZones
	b.params = p
}

func (b *Base) ReadParams() error { return ErrNotImplemented }

func (b *Base) ReadVar(name string, sel *Selection) (*Array, error) {
	return nil, ErrNotImplemented
}

func (b *Base) Close() error { return ErrNotImplemented }

// DumpTime is the type-level get-time hook. Formats provide their own.
func (b *Base) DumpTime(fname string) (float64, error) {
	return 0, ErrNotImplemented
}
