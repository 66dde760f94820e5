package domain

// NeedsRebuild decides whether a unit must be rebuilt. It is a pure function
// over exactly these inputs:
//
//   - force bypasses the cache unconditionally.
//   - A nil entry means the unit has never been built (cold cache).
//   - A hash mismatch means the source tree changed since the last build.
//   - A matching entry with missing output guards against manually deleted
//     output directories.
func NeedsRebuild(entry *UnitEntry, currentHash string, outputExists, force bool) bool {
	if force {
		return true
	}
	if entry == nil {
		return true
	}
	if entry.Hash != currentHash {
		return true
	}
	if !outputExists {
		return true
	}
	return false
}
