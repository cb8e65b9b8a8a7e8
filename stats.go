package cfgpack

import (
	"github.com/arloliu/cfgpack/format"
	"github.com/arloliu/cfgpack/internal/walk"
	"github.com/arloliu/cfgpack/section"
)

// Stats describes one encoded record.
type Stats struct {
	// PoolBits is the number of bits written to each pool, before padding.
	PoolBits [format.NumPools]int
	// PoolBytes is the padded byte length of each pool.
	PoolBytes [format.NumPools]int
	// HeaderBytes is the size of the pool-length header.
	HeaderBytes int
	// TotalBytes is the size of the encoded record.
	TotalBytes int

	// Values is the number of values encoded, array elements included.
	Values int
	// Kinds counts values per kind.
	Kinds [format.NumKinds]int
	// StringModes counts strings per format.StringMode.
	StringModes [2]int
	// MaxDepth is the deepest array nesting in the record.
	MaxDepth int
}

func newStats(width format.HeaderWidth, bits [format.NumPools]int, ws *walk.Stats) Stats {
	s := Stats{
		PoolBits:    bits,
		HeaderBytes: section.PoolHeaderSize(width),
		Values:      ws.Values,
		Kinds:       ws.Kinds,
		StringModes: ws.StringModes,
		MaxDepth:    ws.MaxDepth,
	}

	s.TotalBytes = s.HeaderBytes
	for i, b := range bits {
		s.PoolBytes[i] = (b + 7) / 8
		s.TotalBytes += s.PoolBytes[i]
	}

	return s
}

// PaddingBits returns the number of zero bits added to align pools to bytes.
func (s Stats) PaddingBits() int {
	n := 0
	for i, b := range s.PoolBits {
		n += 8*s.PoolBytes[i] - b
	}

	return n
}
