package tile

// Tile coordinates are packed into a single uint64 map key rather than a
// composed string so lookups don't allocate. Coordinates are biased before
// packing so negative tiles round-trip.

const keyBias = int64(1) << 31

// Key packs a tile coordinate pair into a uint64.
func Key(tx, tz int) uint64 {
	return uint64(uint32(int64(tx)+keyBias))<<32 | uint64(uint32(int64(tz)+keyBias))
}

// Unkey splits a packed key back into the tile coordinate pair.
func Unkey(k uint64) (int, int) {
	tx := int(int64(k>>32) - keyBias)
	tz := int(int64(k&0xffffffff) - keyBias)
	return tx, tz
}
