package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEngines(t *testing.T) {
	require.Equal(t, binary.LittleEndian, GetLittleEndianEngine())
	require.Equal(t, binary.BigEndian, GetBigEndianEngine())

	require.Equal(t, GetBigEndianEngine(), ForOrder(true))
	require.Equal(t, GetLittleEndianEngine(), ForOrder(false))
}

func TestEngine_HeaderFields(t *testing.T) {
	le := GetLittleEndianEngine()
	be := GetBigEndianEngine()

	require.Equal(t, []byte{0x34, 0x12}, le.AppendUint16(nil, 0x1234))
	require.Equal(t, []byte{0x12, 0x34}, be.AppendUint16(nil, 0x1234))
	require.Equal(t, []byte{0x78, 0x56, 0x34, 0x12}, le.AppendUint32(nil, 0x12345678))
	require.Equal(t, []byte{0x12, 0x34, 0x56, 0x78}, be.AppendUint32(nil, 0x12345678))

	buf := make([]byte, 8)
	be.PutUint64(buf, 0xCF10_0000_0000_0001)
	require.Equal(t, uint64(0xCF10_0000_0000_0001), be.Uint64(buf))
	require.NotEqual(t, uint64(0xCF10_0000_0000_0001), le.Uint64(buf))
}

func TestName(t *testing.T) {
	require.Equal(t, "little-endian", Name(GetLittleEndianEngine()))
	require.Equal(t, "big-endian", Name(GetBigEndianEngine()))
}
