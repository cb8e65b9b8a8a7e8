package encoding

import (
	"fmt"

	"github.com/arloliu/cfgpack/format"
	"github.com/arloliu/cfgpack/internal/bitstream"
)

// Pools holds the four pool writers of one record being encoded.
type Pools struct {
	Int    *bitstream.Writer
	Bool   *bitstream.Writer
	String *bitstream.Writer
	Tag    *bitstream.Writer
}

// NewPools creates empty pool writers. Call Release when done.
func NewPools() *Pools {
	return &Pools{
		Int:    bitstream.NewWriter(),
		Bool:   bitstream.NewWriter(),
		String: bitstream.NewWriter(),
		Tag:    bitstream.NewWriter(),
	}
}

// Writer returns the writer of pool p.
func (p *Pools) Writer(pool format.Pool) *bitstream.Writer {
	switch pool {
	case format.PoolInt:
		return p.Int
	case format.PoolBool:
		return p.Bool
	case format.PoolString:
		return p.String
	case format.PoolTag:
		return p.Tag
	default:
		panic(fmt.Sprintf("encoding: invalid pool %d", pool))
	}
}

// Positions returns the current bit length of every pool, in canonical order.
func (p *Pools) Positions() [format.NumPools]int {
	return [format.NumPools]int{p.Int.BitLen(), p.Bool.BitLen(), p.String.BitLen(), p.Tag.BitLen()}
}

// Release returns the pool buffers.
func (p *Pools) Release() {
	p.Int.Release()
	p.Bool.Release()
	p.String.Release()
	p.Tag.Release()
}

// PoolReaders holds the four pool cursors of one record being decoded.
type PoolReaders struct {
	Int    *bitstream.Reader
	Bool   *bitstream.Reader
	String *bitstream.Reader
	Tag    *bitstream.Reader
}

// NewPoolReaders creates cursors over the byte ranges of the four pools, in canonical order.
func NewPoolReaders(pools [format.NumPools][]byte) *PoolReaders {
	return &PoolReaders{
		Int:    bitstream.NewReader(pools[format.PoolInt]),
		Bool:   bitstream.NewReader(pools[format.PoolBool]),
		String: bitstream.NewReader(pools[format.PoolString]),
		Tag:    bitstream.NewReader(pools[format.PoolTag]),
	}
}

// Reader returns the cursor of pool p.
func (p *PoolReaders) Reader(pool format.Pool) *bitstream.Reader {
	switch pool {
	case format.PoolInt:
		return p.Int
	case format.PoolBool:
		return p.Bool
	case format.PoolString:
		return p.String
	case format.PoolTag:
		return p.Tag
	default:
		panic(fmt.Sprintf("encoding: invalid pool %d", pool))
	}
}

// Seek moves every cursor to the given bit offsets.
func (p *PoolReaders) Seek(offsets [format.NumPools]int) error {
	for i, off := range offsets {
		if err := p.Reader(format.Pool(i)).Seek(off); err != nil { //nolint:gosec
			return fmt.Errorf("%s: %w", format.Pool(i), err) //nolint:gosec
		}
	}

	return nil
}

// CheckExhausted verifies that every pool was consumed up to its padding.
func (p *PoolReaders) CheckExhausted() error {
	for i := range format.NumPools {
		if err := p.Reader(format.Pool(i)).CheckExhausted(); err != nil { //nolint:gosec
			return fmt.Errorf("%s: %w", format.Pool(i), err) //nolint:gosec
		}
	}

	return nil
}
