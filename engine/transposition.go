package engine

import "unsafe"

const clusterSize = 4

// perftTable caches subtree counts by position hash and remaining depth.
type perftTable struct {
	entries      []perftEntry
	clusterCount uint64
}

type perftEntry struct {
	Hash  uint64
	Nodes uint64
	Depth int32
}

// newPerftTable sizes the table to roughly mb megabytes. Zero or less
// disables caching.
func newPerftTable(mb int) *perftTable {
	if mb <= 0 {
		return nil
	}
	entrySize := uint64(unsafe.Sizeof(perftEntry{}))
	clusterCount := uint64(mb) * 1024 * 1024 / (entrySize * clusterSize)
	if clusterCount == 0 {
		clusterCount = 1
	}
	return &perftTable{
		entries:      make([]perftEntry, clusterCount*clusterSize),
		clusterCount: clusterCount,
	}
}

func (t *perftTable) get(hash uint64, depth int) (uint64, bool) {
	if t == nil {
		return 0, false
	}
	base := int(hash % t.clusterCount * clusterSize)
	for i := 0; i < clusterSize; i++ {
		e := &t.entries[base+i]
		if e.Hash == hash && e.Depth == int32(depth) {
			return e.Nodes, true
		}
	}
	return 0, false
}

func (t *perftTable) store(hash uint64, depth int, nodes uint64) {
	if t == nil {
		return
	}
	base := int(hash % t.clusterCount * clusterSize)
	target := -1

	// Prefer an empty slot, otherwise replace the shallowest entry
	for i := 0; i < clusterSize; i++ {
		if t.entries[base+i].Depth == 0 {
			target = base + i
			break
		}
	}
	if target == -1 {
		target = base
		for i := 1; i < clusterSize; i++ {
			if t.entries[base+i].Depth < t.entries[target].Depth {
				target = base + i
			}
		}
	}
	t.entries[target] = perftEntry{Hash: hash, Nodes: nodes, Depth: int32(depth)}
}
