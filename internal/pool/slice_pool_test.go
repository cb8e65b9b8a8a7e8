package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlicePool_GetRelease(t *testing.T) {
	p := NewSlicePool[*int](4)

	s, release := p.Get()
	require.Empty(t, s)
	require.GreaterOrEqual(t, cap(s), 4)

	a, b := 1, 2
	s = append(s, &a, &b)
	release(s)

	s2, release2 := p.Get()
	defer func() { release2(s2) }()
	require.Empty(t, s2, "pooled slices are handed out empty")
	for _, v := range s2[:cap(s2)] {
		require.Nil(t, v, "released elements are cleared")
	}
}

func TestSlicePool_ReleaseGrownSlice(t *testing.T) {
	p := NewSlicePool[int](1)

	s, release := p.Get()
	for i := range 100 {
		s = append(s, i)
	}
	release(s)

	s2, release2 := p.Get()
	defer func() { release2(s2) }()
	require.Empty(t, s2)
}
