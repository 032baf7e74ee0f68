package dumpio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/DataDog/zstd"
	"github.com/rs/zerolog/log"
)

// WriteOptions control how a raw dump is written.
type WriteOptions struct {
	// Compress zstd-compresses each variable's block.
	Compress bool
	// Level is the zstd compression level. Zero means zstd.DefaultCompression.
	Level int
	// Order is the byte order of the file. nil means little endian.
	Order binary.ByteOrder
}

// Writer is a class which handles writing raw dumps to disk. The pattern is
// that you create a single writer with NewWriter, add every primitive to it
// in order with AddField, and finally call Flush() when you want to write
// everything to disk.
type Writer struct {
	fname string
	opts  WriteOptions
	hd    rawHeader
	names []string
	edges []uint64
	data  *bytes.Buffer
}

// NewWriter creates a Writer targeting fname. p must pass Params.Validate;
// n_prim and prim_names are ignored since they come from the added fields.
func NewWriter(fname string, p Params, opts WriteOptions) (*Writer, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if opts.Order == nil {
		opts.Order = binary.LittleEndian
	}
	if opts.Level == 0 {
		opts.Level = zstd.DefaultCompression
	}

	hd, err := headerFromParams(p)
	if err != nil {
		return nil, err
	}
	if opts.Compress {
		hd.Flags |= rawCompressedFlag
	}

	return &Writer{
		fname: fname, opts: opts, hd: hd,
		edges: []uint64{0}, data: &bytes.Buffer{},
	}, nil
}

// AddField adds the next primitive to the file. block must hold the full
// ghost-inclusive grid in row-major order.
func (wr *Writer) AddField(name string, block []float64) error {
	if n, _ := wr.hd.blockCells(); int64(len(block)) != n {
		return fmt.Errorf("The file %s stores %d cells per variable, but "+
			"was given a new variable, %s, with %d cells.",
			wr.fname, n, name, len(block))
	}
	if len(name) > maxRawNameLen {
		return fmt.Errorf("The variable name '%s' is longer than %d bytes.",
			name, maxRawNameLen)
	}
	if findString(wr.names, name) != -1 {
		return fmt.Errorf("'%s' was added to %s more than once.",
			name, wr.fname)
	}

	raw := &bytes.Buffer{}
	if err := binary.Write(raw, wr.opts.Order, block); err != nil {
		return err
	}

	b := raw.Bytes()
	if wr.opts.Compress {
		var err error
		b, err = zstd.CompressLevel(nil, b, wr.opts.Level)
		if err != nil {
			return fmt.Errorf("zstd error while writing block '%s': %s",
				name, err.Error())
		}
	}

	wr.data.Write(b)
	wr.names = append(wr.names, name)
	wr.edges = append(wr.edges, uint64(wr.data.Len()))
	return nil
}

// Flush writes the header, the names, the block table and the data to disk.
// The file is written next to fname and renamed into place, so a failed
// Flush never leaves a partial dump at fname.
func (wr *Writer) Flush() error {
	tmp := wr.fname + ".tmp"
	fp, err := os.Create(tmp)
	if err != nil {
		return err
	}

	err = wr.write(fp)
	if closeErr := fp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmp, wr.fname)
	}
	if err != nil {
		os.Remove(tmp)
		return err
	}

	log.Debug().Str("file", wr.fname).Int("n_prim", len(wr.names)).
		Int("data_bytes", wr.data.Len()).Msg("wrote raw dump")
	return nil
}

func (wr *Writer) write(fp io.Writer) error {
	order := wr.opts.Order
	hd := wr.hd
	hd.NPrim = int64(len(wr.names))

	if err := binary.Write(fp, order, uint32(RawMagicNumber)); err != nil {
		return err
	}
	if err := binary.Write(fp, order, uint32(RawVersion)); err != nil {
		return err
	}
	if err := binary.Write(fp, order, &hd); err != nil {
		return err
	}

	nNames := make([]uint32, len(wr.names))
	for i := range wr.names {
		nNames[i] = uint32(len(wr.names[i]))
	}
	if err := binary.Write(fp, order, uint32(len(nNames))); err != nil {
		return err
	}
	if err := binary.Write(fp, order, nNames); err != nil {
		return err
	}
	for i := range wr.names {
		if _, err := fp.Write([]byte(wr.names[i])); err != nil {
			return err
		}
	}

	if err := binary.Write(fp, order, wr.edges); err != nil {
		return err
	}
	_, err := fp.Write(wr.data.Bytes())
	return err
}

// WriteRaw writes every primitive of d to fname in the raw format. d must
// have been opened with ghost zones, unless it has none.
func WriteRaw(fname string, d DumpFile, opts WriteOptions) error {
	p := d.Params()
	n, ng, err := p.Dims()
	if err != nil {
		return err
	}
	if ng > 0 && !d.GhostZones() {
		return fmt.Errorf("Cannot write %s from a dump opened without ghost "+
			"zones: the source has %d ghost zones.", fname, ng)
	}

	names, err := p.Strings("prim_names")
	if err != nil {
		return err
	}

	wr, err := NewWriter(fname, p, opts)
	if err != nil {
		return err
	}

	for _, name := range names {
		arr, err := d.ReadVar(name, nil)
		if err != nil {
			return err
		} else if arr == nil {
			return fmt.Errorf("The source dump lists '%s' as a primitive, "+
				"but can't read it.", name)
		}
		if err := wr.AddField(name, arr.Data); err != nil {
			return err
		}
	}

	log.Debug().Str("file", fname).Ints("n", n[:]).Msg("converted dump")
	return wr.Flush()
}

// headerFromParams builds the fixed-width header from validated params.
func headerFromParams(p Params) (rawHeader, error) {
	hd := rawHeader{}
	n, ng, err := p.Dims()
	if err != nil {
		return hd, err
	}
	hd.N1, hd.N2, hd.N3, hd.NG = int64(n[0]), int64(n[1]), int64(n[2]),
		int64(ng)

	nStep, err := p.Int("n_step")
	if err != nil {
		return hd, err
	}
	hd.NStep = int64(nStep)

	floats := []struct {
		key string
		x   *float64
	}{
		{"t", &hd.T}, {"dt", &hd.Dt}, {"gam", &hd.Gam}, {"a", &hd.A},
		{"startx1", &hd.StartX[0]}, {"startx2", &hd.StartX[1]},
		{"startx3", &hd.StartX[2]},
		{"dx1", &hd.DX[0]}, {"dx2", &hd.DX[1]}, {"dx3", &hd.DX[2]},
	}
	for _, f := range floats {
		if *f.x, err = p.Float(f.key); err != nil {
			return hd, err
		}
	}

	coords, err := p.String("coordinates")
	if err != nil {
		return hd, err
	}
	if len(coords) > len(hd.Coordinates) {
		return hd, fmt.Errorf("The coordinate system name '%s' is longer "+
			"than %d bytes.", coords, len(hd.Coordinates))
	}
	copy(hd.Coordinates[:], coords)

	return hd, nil
}
