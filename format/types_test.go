package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{KindInteger, KindBoolean, KindString, KindArray} {
		require.True(t, k.Valid())
	}
	require.False(t, Kind(NumKinds).Valid())

	aliases := map[string]Kind{
		"integer": KindInteger, "int": KindInteger,
		"boolean": KindBoolean, "bool": KindBoolean,
		"string": KindString, "str": KindString,
		"array": KindArray, "list": KindArray,
	}
	for name, want := range aliases {
		got, ok := ParseKind(name)
		require.True(t, ok, name)
		require.Equal(t, want, got)
	}

	_, ok := ParseKind("float")
	require.False(t, ok)
}

func TestHeaderWidth(t *testing.T) {
	require.True(t, HeaderCompact.Valid())
	require.True(t, HeaderWide.Valid())
	require.False(t, HeaderWidth(3).Valid())

	require.Equal(t, uint64(65535), HeaderCompact.MaxPoolBytes())
	require.Equal(t, uint64(1<<32-1), HeaderWide.MaxPoolBytes())
}

func TestParseCompression(t *testing.T) {
	for _, ct := range []CompressionType{CompressionNone, CompressionZstd, CompressionS2, CompressionLZ4} {
		name := map[CompressionType]string{
			CompressionNone: "none", CompressionZstd: "zstd", CompressionS2: "s2", CompressionLZ4: "lz4",
		}[ct]
		got, ok := ParseCompression(name)
		require.True(t, ok)
		require.Equal(t, ct, got)
	}

	_, ok := ParseCompression("gzip")
	require.False(t, ok)
	require.Equal(t, "Unknown", CompressionType(0x7F).String())
}

func TestStringers(t *testing.T) {
	require.Equal(t, "Array", KindArray.String())
	require.Equal(t, "StringPool", PoolString.String())
	require.Equal(t, "Radix", ModeRadix.String())
	require.Equal(t, "Wide", HeaderWide.String())
}
