package collision

import (
	"github.com/arloliu/cfgpack/errs"
	"github.com/arloliu/cfgpack/internal/hash"
)

// Tracker indexes schema slot names by their 64-bit hash and detects duplicate names.
// Unnamed slots take a position but are not indexed.
type Tracker struct {
	byHash       map[uint64]int // Hash → slot position
	collided     map[string]int // Names whose hash is already owned by a different name
	names        []string       // Slot names in position order
	hasCollision bool           // Whether a hash collision has been detected
}

// NewTracker creates a new name tracker.
func NewTracker() *Tracker {
	return &Tracker{
		byHash: make(map[uint64]int),
		names:  make([]string, 0),
	}
}

// Track records the next slot name and returns its position.
//
// Returns errs.ErrDuplicateSlotName if a non-empty name was already tracked.
//
// Note: Hash collisions (different names, same hash) are NOT errors. The colliding name is
// stored in a side table and Lookup falls back to it.
func (t *Tracker) Track(name string) (int, error) {
	pos := len(t.names)
	if name == "" {
		t.names = append(t.names, name)
		return pos, nil
	}

	h := hash.ID(name)
	if existing, exists := t.byHash[h]; exists {
		if t.names[existing] == name {
			return 0, errs.ErrDuplicateSlotName
		}
		if _, dup := t.collided[name]; dup {
			return 0, errs.ErrDuplicateSlotName
		}

		if t.collided == nil {
			t.collided = make(map[string]int)
		}
		t.collided[name] = pos
		t.hasCollision = true
	} else {
		t.byHash[h] = pos
	}

	t.names = append(t.names, name)

	return pos, nil
}

// Lookup returns the position of a tracked name.
func (t *Tracker) Lookup(name string) (int, bool) {
	if name == "" {
		return 0, false
	}

	if pos, ok := t.byHash[hash.ID(name)]; ok && t.names[pos] == name {
		return pos, true
	}
	if t.hasCollision {
		pos, ok := t.collided[name]
		return pos, ok
	}

	return 0, false
}
