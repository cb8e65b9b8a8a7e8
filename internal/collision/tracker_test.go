package collision

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/cfgpack/errs"
	"github.com/arloliu/cfgpack/internal/hash"
)

func TestNewTracker(t *testing.T) {
	tracker := NewTracker()

	require.NotNil(t, tracker)
	require.Empty(t, tracker.names)
	require.False(t, tracker.hasCollision)
}

func TestTracker_Track_Success(t *testing.T) {
	tracker := NewTracker()

	pos, err := tracker.Track("listen_port")
	require.NoError(t, err)
	require.Equal(t, 0, pos)

	pos, err = tracker.Track("")
	require.NoError(t, err)
	require.Equal(t, 1, pos)

	pos, err = tracker.Track("hosts")
	require.NoError(t, err)
	require.Equal(t, 2, pos)

	require.False(t, tracker.hasCollision)
	require.Equal(t, []string{"listen_port", "", "hosts"}, tracker.names)

	got, ok := tracker.Lookup("hosts")
	require.True(t, ok)
	require.Equal(t, 2, got)

	_, ok = tracker.Lookup("")
	require.False(t, ok)
	_, ok = tracker.Lookup("missing")
	require.False(t, ok)
}

func TestTracker_Track_UnnamedSlotsRepeat(t *testing.T) {
	tracker := NewTracker()

	for i := range 3 {
		pos, err := tracker.Track("")
		require.NoError(t, err)
		require.Equal(t, i, pos)
	}
}

func TestTracker_Track_Duplicate(t *testing.T) {
	tracker := NewTracker()

	_, err := tracker.Track("timeout")
	require.NoError(t, err)

	_, err = tracker.Track("timeout")
	require.ErrorIs(t, err, errs.ErrDuplicateSlotName)
	require.Len(t, tracker.names, 1)
}

func TestTracker_Collision(t *testing.T) {
	tracker := NewTracker()

	// Simulate a collision by planting a different name under the hash of "beta".
	_, err := tracker.Track("alpha")
	require.NoError(t, err)
	tracker.byHash[hash.ID("beta")] = 0

	pos, err := tracker.Track("beta")
	require.NoError(t, err)
	require.Equal(t, 1, pos)
	require.True(t, tracker.hasCollision)

	got, ok := tracker.Lookup("beta")
	require.True(t, ok)
	require.Equal(t, 1, got)

	_, err = tracker.Track("beta")
	require.ErrorIs(t, err, errs.ErrDuplicateSlotName)
}
