package dumpio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/DataDog/zstd"
	"github.com/rs/zerolog/log"
)

const (
	// RawMagicNumber is an arbitrary number at the start of all raw dump
	// files which should help identify when the code is run on something
	// else by accident.
	RawMagicNumber = 0x48524d44
	// RawReverseMagicNumber is the magic number if read on a machine with
	// flipped endianness.
	RawReverseMagicNumber = 0x444d5248
	RawVersion            = 1
	// RawExtension is the file extension written by harmio.
	RawExtension = ".hdump"

	rawCompressedFlag = 1 << 0
	// nFixedPrims is the number of primitives which always come first and
	// in iharm order. Everything after them is an extra primitive.
	nFixedPrims = 8
	// maxRawNameLen is the longest variable name a raw dump may store.
	maxRawNameLen = 256
	// minRawPrimBytes is the smallest number of bytes a primitive can take
	// up in the names and block tables.
	minRawPrimBytes = 4 + 8
)

// rawHeader is a struct with the same fields as the fixed-width header of a
// raw dump.
type rawHeader struct {
	N1, N2, N3, NG, NPrim, NStep int64
	T, Dt, Gam, A                float64
	StartX, DX                   [3]float64
	Flags                        uint32
	Coordinates                  [12]byte
}

func (hd *rawHeader) compressed() bool { return hd.Flags&rawCompressedFlag != 0 }

func (hd *rawHeader) coordinates() string {
	return strings.TrimRight(string(hd.Coordinates[:]), "\x00")
}

func (hd *rawHeader) dims() [3]int {
	return [3]int{int(hd.N1), int(hd.N2), int(hd.N3)}
}

// blockCells is the number of cells in one variable's block, ghost zones
// included. ok is false if the grid isn't positive or is too large for
// 8*cells to fit in an int64.
func (hd *rawHeader) blockCells() (cells int64, ok bool) {
	if hd.NG < 0 || hd.NG > math.MaxInt32 {
		return 0, false
	}
	cells = 1
	for _, n := range []int64{hd.N1, hd.N2, hd.N3} {
		if n <= 0 || n > math.MaxInt32 {
			return 0, false
		}
		w := n + 2*hd.NG
		if w > math.MaxInt64/8/cells {
			return 0, false
		}
		cells *= w
	}
	return cells, true
}

// checkEdges makes sure the block table is ordered, that it fits in the
// dataBytes bytes after it, and, for uncompressed files, that every block
// holds exactly one grid.
func (hd *rawHeader) checkEdges(edges []uint64, dataBytes int64) error {
	cells, _ := hd.blockCells()
	if edges[0] != 0 {
		return fmt.Errorf("the first block starts at %d instead of 0", edges[0])
	}
	for v := 0; v+1 < len(edges); v++ {
		if edges[v+1] < edges[v] {
			return fmt.Errorf("block %d ends at %d but starts at %d",
				v, edges[v+1], edges[v])
		} else if !hd.compressed() && edges[v+1]-edges[v] != uint64(8*cells) {
			return fmt.Errorf("block %d has %d bytes, but the grid needs %d",
				v, edges[v+1]-edges[v], 8*cells)
		}
	}
	if end := edges[len(edges)-1]; end > uint64(dataBytes) {
		return fmt.Errorf("the blocks end at byte %d, but only %d bytes of "+
			"data follow the block table", end, dataBytes)
	}
	return nil
}

// RawFormat implements Format for harmio's raw binary dumps.
type RawFormat struct{}

func (RawFormat) Name() string { return "raw" }

// Match reports whether fname starts with the raw magic number. Files that
// can't be opened don't match.
func (RawFormat) Match(fname string) bool {
	f, err := os.Open(fname)
	if err != nil {
		return false
	}
	defer f.Close()

	_, err = checkRawFile(fname, f)
	return err == nil
}

func (RawFormat) Open(fname string, opts Options) (DumpFile, error) {
	return OpenRaw(fname, opts)
}

// DumpTime reads the time out of the fixed-width header of fname.
func (RawFormat) DumpTime(fname string) (float64, error) {
	f, err := os.Open(fname)
	if err != nil {
		return 0, fmt.Errorf("The file %s cannot be opened. The system "+
			"error is: \"%s\"", fname, err.Error())
	}
	defer f.Close()

	order, err := checkRawFile(fname, f)
	if err != nil {
		return 0, err
	}
	hd := rawHeader{}
	if err := binary.Read(f, order, &hd); err != nil {
		return 0, fmt.Errorf("Could not read the header of %s: %w", fname, err)
	}
	return hd.T, nil
}

// RawDump is an open raw dump file. See the DumpFile interface for a
// description of the methods.
type RawDump struct {
	Base
	fname      string
	f          *os.File
	order      binary.ByteOrder
	hd         rawHeader
	names      []string
	edges      []uint64
	dataOffset int64
}

// OpenRaw opens a raw dump and reads its params. The file stays open until
// Close is called. If anything goes wrong, the file is closed before
// returning.
func OpenRaw(fname string, opts Options) (*RawDump, error) {
	info, err := os.Stat(fname)
	if err != nil {
		return nil, fmt.Errorf("The file %s cannot be opened. The system "+
			"error is: \"%s\"", fname, err.Error())
	} else if info.IsDir() {
		return nil, fmt.Errorf("The file %s is a directory, not a dump file.",
			fname)
	}

	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}

	d := &RawDump{Base: NewBase(opts), fname: fname, f: f}
	if err := d.ReadParams(); err != nil {
		f.Close()
		return nil, err
	}

	log.Debug().
		Str("file", fname).
		Int64("n_prim", d.hd.NPrim).
		Bool("compressed", d.hd.compressed()).
		Msg("opened raw dump")
	return d, nil
}

// ReadParams re-reads the header, the variable names and the block table.
func (d *RawDump) ReadParams() error {
	if _, err := d.f.Seek(0, io.SeekStart); err != nil {
		return err
	}

	order, err := checkRawFile(d.fname, d.f)
	if err != nil {
		return err
	}

	info, err := d.f.Stat()
	if err != nil {
		return err
	}

	hd := rawHeader{}
	if err := binary.Read(d.f, order, &hd); err != nil {
		return fmt.Errorf("Could not read the header of %s: %w", d.fname, err)
	}
	if _, ok := hd.blockCells(); !ok || hd.NPrim < 0 ||
		hd.NPrim > info.Size()/minRawPrimBytes {
		return fmt.Errorf("%s is not a valid raw dump: its header gives a "+
			"%dx%dx%d grid with %d ghost zones and %d primitives.",
			d.fname, hd.N1, hd.N2, hd.N3, hd.NG, hd.NPrim)
	}

	names, err := readNames(d.f, order, hd.NPrim)
	if err != nil {
		return fmt.Errorf("Could not read the variable names of %s: %w",
			d.fname, err)
	}

	edges := make([]uint64, hd.NPrim+1)
	if err := binary.Read(d.f, order, edges); err != nil {
		return fmt.Errorf("Could not read the block table of %s: %w",
			d.fname, err)
	}

	dataOffset, err := d.f.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	if err := hd.checkEdges(edges, info.Size()-dataOffset); err != nil {
		return fmt.Errorf("The block table of %s is corrupted: %w",
			d.fname, err)
	}

	d.order, d.hd, d.names, d.edges, d.dataOffset =
		order, hd, names, edges, dataOffset
	d.setParams(hd.params(names))
	return nil
}

// params converts the header into the standard Params keys.
func (hd *rawHeader) params(names []string) Params {
	p := Params{
		"n1": int(hd.N1), "n2": int(hd.N2), "n3": int(hd.N3),
		"ng": int(hd.NG), "n_prim": int(hd.NPrim),
		"prim_names": append([]string{}, names...),
		"n_step": int(hd.NStep),
		"t": hd.T, "dt": hd.Dt, "gam": hd.Gam, "a": hd.A,
		"coordinates": hd.coordinates(),
	}
	for dim := 0; dim < 3; dim++ {
		p[fmt.Sprintf("startx%d", dim+1)] = hd.StartX[dim]
		p[fmt.Sprintf("dx%d", dim+1)] = hd.DX[dim]
	}
	return p
}

// Close closes the file associated with the RawDump.
func (d *RawDump) Close() error {
	if d.f == nil {
		return nil
	}
	err := d.f.Close()
	d.f = nil
	return err
}

// resolve finds the leading-axis Index of a variable in this file. See
// resolveName.
func (d *RawDump) resolve(name string) Index {
	return resolveName(name, d.names)
}

func (d *RawDump) ReadVar(name string, sel *Selection) (*Array, error) {
	if d.f == nil {
		return nil, fmt.Errorf("Cannot read '%s' from %s after it has been "+
			"closed.", name, d.fname)
	}

	idx := d.resolve(name)
	nPrim := int(d.hd.NPrim)
	if !idx.InRange(nPrim) {
		return nil, nil
	}

	bounds, full, err := spatialBounds(d.hd.dims(), int(d.hd.NG),
		d.GhostZones(), sel)
	if err != nil {
		return nil, err
	}

	// arr is allocated after the first block has been read.
	lo, hi := idx.Bounds(nPrim)
	var arr *Array
	cells := 0
	for v := lo; v < hi; v++ {
		block, err := d.readBlock(v)
		if err != nil {
			return nil, err
		}
		if arr == nil {
			arr = newVarArray(idx.IsSingle(), hi-lo, bounds)
			cells = len(arr.Data) / (hi - lo)
		}
		extractBlock(block, full, bounds, arr.Data[(v-lo)*cells:])
	}

	return arr, nil
}

// readBlock reads the full ghost-inclusive block of variable v.
func (d *RawDump) readBlock(v int) ([]float64, error) {
	start, end := d.edges[v], d.edges[v+1]

	b := make([]byte, end-start)
	if _, err := d.f.ReadAt(b, d.dataOffset+int64(start)); err != nil {
		return nil, fmt.Errorf("Could not read block '%s' of %s: %w",
			d.names[v], d.fname, err)
	}

	if d.hd.compressed() {
		var err error
		b, err = zstd.Decompress(nil, b)
		if err != nil {
			return nil, fmt.Errorf("zstd error while reading block '%s': %s",
				d.names[v], err.Error())
		}
	}

	cells, _ := d.hd.blockCells()
	if int64(len(b)) != 8*cells {
		return nil, fmt.Errorf("Block '%s' of %s has %d bytes, but a "+
			"%dx%dx%d grid with %d ghost zones needs %d.", d.names[v],
			d.fname, len(b), d.hd.N1, d.hd.N2, d.hd.N3, d.hd.NG, 8*cells)
	}

	log.Debug().Str("file", d.fname).Str("var", d.names[v]).
		Int("bytes", int(end-start)).Msg("read block")
	out := make([]float64, cells)
	if err := binary.Read(bytes.NewReader(b), d.order, out); err != nil {
		return nil, err
	}
	return out, nil
}

// resolveName is shared by every format which stores its primitives as one
// array with the names listed in the file. Canonical names of the fixed
// primitives resolve case-insensitively on their own. Only the later
// canonical names depend on which extra primitives the file lists.
func resolveName(name string, names []string) Index {
	if i := findString(names, name); i != -1 {
		return SingleIndex(i)
	}
	if i, ok := IndexOf(name, nil, nil).Single(); ok && i < nFixedPrims {
		return SingleIndex(i)
	}

	eprimNames, eprimIndices := []string{}, []int{}
	for i := nFixedPrims; i < len(names); i++ {
		eprimNames = append(eprimNames, strings.ToUpper(names[i]))
		eprimIndices = append(eprimIndices, i)
	}
	return IndexOf(name, eprimNames, eprimIndices)
}

// newVarArray allocates the output array for k variables over the given
// spatial bounds. Single variables drop the leading axis.
func newVarArray(single bool, k int, bounds [3]Range) *Array {
	shape := []int{}
	if !single {
		shape = append(shape, k)
	}
	for dim := 0; dim < 3; dim++ {
		shape = append(shape, bounds[dim].Hi-bounds[dim].Lo)
	}
	return NewArray(shape...)
}

// readNames reads a uint32 count, the uint32 lengths, and then the bytes of
// each name. The count must be nPrim.
func readNames(
	rd io.Reader, order binary.ByteOrder, nPrim int64,
) ([]string, error) {
	var nNames uint32
	if err := binary.Read(rd, order, &nNames); err != nil {
		return nil, err
	}
	if int64(nNames) != nPrim {
		return nil, fmt.Errorf("the file has %d primitives but %d variable "+
			"names", nPrim, nNames)
	}
	lengths := make([]uint32, nNames)
	if err := binary.Read(rd, order, lengths); err != nil {
		return nil, err
	}
	for i := range lengths {
		if lengths[i] > maxRawNameLen {
			return nil, fmt.Errorf("variable name %d is %d bytes long, more "+
				"than the limit of %d", i, lengths[i], maxRawNameLen)
		}
	}

	names := make([]string, nNames)
	for i := range names {
		b := make([]byte, lengths[i])
		if _, err := io.ReadFull(rd, b); err != nil {
			return nil, err
		}
		names[i] = string(b)
	}
	return names, nil
}

// checkRawFile reads in the file's magic number and version number and makes
// sure that harmio can actually read it. If it can, the byte order is
// returned. Otherwise an error is returned.
func checkRawFile(fname string, rd io.Reader) (binary.ByteOrder, error) {
	var magicNumber, version uint32

	order := binary.ByteOrder(binary.LittleEndian)
	if err := binary.Read(rd, order, &magicNumber); err != nil {
		return nil, fmt.Errorf("%s is too small to be a raw dump: %w",
			fname, err)
	}

	switch magicNumber {
	case RawMagicNumber:
	case RawReverseMagicNumber:
		order = binary.BigEndian
	default:
		return nil, fmt.Errorf("%s is not a raw dump. All raw dumps begin "+
			"with either the 32-bit integer %x or %x. This file begins "+
			"with %x.", fname, RawMagicNumber, RawReverseMagicNumber,
			magicNumber)
	}

	if err := binary.Read(rd, order, &version); err != nil {
		return nil, err
	}
	if version > RawVersion {
		return nil, fmt.Errorf("The file %s was written with raw dump "+
			"version %d, but this version of harmio only reads up to "+
			"version %d.", fname, version, RawVersion)
	}

	return order, nil
}
