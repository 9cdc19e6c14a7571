package fixture

import (
	"encoding/binary"
	"math/bits"

	"github.com/spaolacci/murmur3"
	"github.com/zeebo/xxh3"
)

// hashedID derives the identifier of item i from the fixture seed with
// MurmurHash3-32. Distinct items can collide; selectors do not need unique
// identifiers.
func hashedID(seed uint64, i int) int32 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(i))
	return int32(murmur3.Sum32WithSeed(buf[:], uint32(seed)^uint32(seed>>32)))
}

// hashedScore derives the score of item i from the fixture seed with xxHash3.
// The result is uniform in [0, 1), or one of levels evenly spaced values when
// levels > 0.
func hashedScore(seed uint64, i int, levels int) float64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], seed)
	binary.LittleEndian.PutUint64(buf[8:16], uint64(i))
	return scoreFromBits(xxh3.Hash(buf[:]), levels)
}

// scoreFromBits maps 64 uniformly random bits to a score.
func scoreFromBits(h uint64, levels int) float64 {
	if levels > 0 {
		return float64(fastRange32(h, uint32(levels))) / float64(levels)
	}
	return float64(h>>11) / (1 << 53)
}

// fastRange32 maps a 64-bit hash uniformly to [0, n) by taking the high word
// of the product, which avoids modulo bias.
func fastRange32(hash uint64, n uint32) uint32 {
	if n == 0 {
		return 0
	}
	hi, _ := bits.Mul64(hash, uint64(n))
	return uint32(hi)
}
