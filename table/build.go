package table

import (
	"container/heap"
	"sync"
)

// FromCounts builds a Huffman table from per-byte frequencies.
//
// Every byte receives a frequency floor of one, so the result is always complete. When the
// optimal code would exceed MaxCodeLen, frequencies are halved (keeping the floor) and the
// code rebuilt until it fits. The result depends only on counts.
func FromCounts(counts [NumSymbols]uint64) *Table {
	freqs := counts
	for i := range freqs {
		freqs[i] = max(freqs[i], 1)
	}

	for {
		lengths, longest := huffmanLengths(freqs)
		if longest <= MaxCodeLen {
			t := &Table{lengths: lengths}
			t.build()

			return t
		}

		for i := range freqs {
			freqs[i] = max(freqs[i]/2, 1)
		}
	}
}

// Train counts the bytes of a representative corpus and builds a table from them.
func Train(samples ...[]byte) *Table {
	var counts [NumSymbols]uint64
	for _, s := range samples {
		for _, b := range s {
			counts[b]++
		}
	}

	return FromCounts(counts)
}

var commonTable = sync.OnceValue(func() *Table {
	var counts [NumSymbols]uint64

	// Printable ASCII baseline; everything else keeps the floor of one.
	for c := 32; c < 127; c++ {
		counts[c] = 200
	}

	weights := []struct {
		chars string
		count uint64
	}{
		{" ", 18000},
		{"e", 10000},
		{"t", 7000},
		{"a", 6500},
		{"o", 6000},
		{"in", 5500},
		{"s", 5000},
		{"h", 4800},
		{"r", 4700},
		{"dl", 3500},
		{"cu", 2500},
		{"mw", 2000},
		{"f", 1800},
		{"gy", 1600},
		{"p", 1500},
		{"b", 1200},
		{"v", 800},
		{"k", 600},
		{"/-_.", 400},
		{"[]{}()\\", 300},
		{"jx", 100},
		{"q", 80},
		{"z", 60},
	}
	for _, w := range weights {
		for i := 0; i < len(w.chars); i++ {
			counts[w.chars[i]] = w.count
		}
	}

	return FromCounts(counts)
})

// Common returns the built-in table, tuned for English words, identifiers and paths.
//
// It is the default table of a codec configured without WithTable.
func Common() *Table {
	return commonTable()
}

type huffNode struct {
	freq   uint64
	order  int // tie-breaker: leaves by byte value, internal nodes by creation order
	symbol int // -1 for internal nodes
	left   *huffNode
	right  *huffNode
}

type huffHeap []*huffNode

func (h huffHeap) Len() int { return len(h) }
func (h huffHeap) Less(i, j int) bool {
	if h[i].freq != h[j].freq {
		return h[i].freq < h[j].freq
	}

	return h[i].order < h[j].order
}
func (h huffHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *huffHeap) Push(x any) {
	*h = append(*h, x.(*huffNode)) //nolint:forcetypeassert
}

func (h *huffHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]

	return x
}

// huffmanLengths returns the code length of every symbol and the longest length.
// All frequencies must be non-zero.
func huffmanLengths(freqs [NumSymbols]uint64) ([NumSymbols]uint8, int) {
	nodes := make(huffHeap, 0, NumSymbols)
	for sym, f := range freqs {
		nodes = append(nodes, &huffNode{freq: f, order: sym, symbol: sym})
	}
	heap.Init(&nodes)

	order := NumSymbols
	for nodes.Len() > 1 {
		a := heap.Pop(&nodes).(*huffNode) //nolint:forcetypeassert
		b := heap.Pop(&nodes).(*huffNode) //nolint:forcetypeassert
		heap.Push(&nodes, &huffNode{freq: a.freq + b.freq, order: order, symbol: -1, left: a, right: b})
		order++
	}

	var lengths [NumSymbols]uint8
	longest := 0

	type item struct {
		node  *huffNode
		depth int
	}
	stack := []item{{node: nodes[0], depth: 0}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if it.node.symbol >= 0 {
			// Depths beyond 255 saturate; they only matter for being > MaxCodeLen.
			lengths[it.node.symbol] = uint8(min(it.depth, 255)) //nolint:gosec
			longest = max(longest, it.depth)

			continue
		}
		stack = append(stack, item{it.node.left, it.depth + 1}, item{it.node.right, it.depth + 1})
	}

	return lengths, longest
}
