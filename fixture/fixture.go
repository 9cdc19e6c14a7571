// Package fixture generates, checksums and persists benchmark input for the
// top-N selectors.
//
// A Fixture is owned by the caller and passed explicitly to whatever consumes
// it. Consumers read it through Feed or Prefix and must not modify it;
// Checksum lets a harness confirm that nothing did.
package fixture

import (
	"encoding/binary"
	"math"
	"math/rand/v2"

	"github.com/cespare/xxhash/v2"

	topnerrors "github.com/axt/topnselect/errors"
)

// Source identifies how a fixture's items were produced.
type Source uint8

const (
	// SourceRandom draws ids and scores from a PCG generator seeded with
	// the fixture seed.
	SourceRandom Source = 0

	// SourceHashed derives item i from the seed and i alone: the id from
	// MurmurHash3 and the score from xxHash3.
	SourceHashed Source = 1
)

// String returns the source name.
func (s Source) String() string {
	switch s {
	case SourceRandom:
		return "random"
	case SourceHashed:
		return "hashed"
	default:
		return "unknown"
	}
}

// ParseSource maps a name produced by Source.String back to its Source.
func ParseSource(name string) (Source, bool) {
	switch name {
	case "random":
		return SourceRandom, true
	case "hashed":
		return SourceHashed, true
	}
	return 0, false
}

// Sink receives items. Every selector satisfies it.
type Sink interface {
	Sink(id int32, score float64)
}

// Fixture is a fixed sequence of (id, score) items.
type Fixture struct {
	IDs    []int32
	Scores []float64

	Seed   uint64
	Source Source
	Levels int // number of distinct scores, 0 for continuous
}

// GenerateOption is a functional option for Generate.
type GenerateOption func(*generateConfig)

type generateConfig struct {
	seed   uint64
	source Source
	levels int
}

// WithSeed sets the generator seed. Default is 1.
func WithSeed(seed uint64) GenerateOption {
	return func(c *generateConfig) {
		c.seed = seed
	}
}

// WithSource sets how items are produced. Default is SourceRandom.
func WithSource(s Source) GenerateOption {
	return func(c *generateConfig) {
		c.source = s
	}
}

// WithLevels quantizes scores to levels evenly spaced values in [0, 1),
// which produces many ties and exercises the id tie-break.
func WithLevels(levels int) GenerateOption {
	return func(c *generateConfig) {
		c.levels = levels
	}
}

// Generate creates a fixture of n items.
func Generate(n int, opts ...GenerateOption) (*Fixture, error) {
	if n <= 0 {
		return nil, topnerrors.ErrEmptyFixture
	}
	cfg := &generateConfig{seed: 1}
	for _, opt := range opts {
		opt(cfg)
	}
	cfg.levels = max(cfg.levels, 0)

	f := &Fixture{
		IDs:    make([]int32, n),
		Scores: make([]float64, n),
		Seed:   cfg.seed,
		Source: cfg.source,
		Levels: cfg.levels,
	}

	switch cfg.source {
	case SourceHashed:
		for i := range n {
			f.IDs[i] = hashedID(cfg.seed, i)
			f.Scores[i] = hashedScore(cfg.seed, i, cfg.levels)
		}
	default:
		f.Source = SourceRandom
		rng := rand.New(rand.NewPCG(cfg.seed, cfg.seed^0x9E3779B97F4A7C15))
		for i := range n {
			f.IDs[i] = int32(rng.Uint32())
			f.Scores[i] = scoreFromBits(rng.Uint64(), cfg.levels)
		}
	}
	return f, nil
}

// Len returns the number of items.
func (f *Fixture) Len() int { return len(f.IDs) }

// Prefix returns a fixture viewing the first n items. It shares storage with f.
func (f *Fixture) Prefix(n int) *Fixture {
	n = min(max(n, 0), f.Len())
	return &Fixture{
		IDs:    f.IDs[:n:n],
		Scores: f.Scores[:n:n],
		Seed:   f.Seed,
		Source: f.Source,
		Levels: f.Levels,
	}
}

// Clone returns a deep copy of f.
func (f *Fixture) Clone() *Fixture {
	c := *f
	c.IDs = append([]int32(nil), f.IDs...)
	c.Scores = append([]float64(nil), f.Scores...)
	return &c
}

// Feed sinks the first n items of f into s.
func (f *Fixture) Feed(s Sink, n int) {
	n = min(n, f.Len())
	ids, scores := f.IDs[:n], f.Scores[:n]
	for i := range ids {
		s.Sink(ids[i], scores[i])
	}
}

// checksumChunk is the number of items encoded per hasher write.
const checksumChunk = 1024

// Checksum returns the xxHash64 of the little-endian encoding of all ids
// followed by all scores, the same bytes a saved file holds after its header.
func (f *Fixture) Checksum() uint64 {
	d := xxhash.New()
	var buf [checksumChunk * 8]byte
	for start := 0; start < len(f.IDs); start += checksumChunk {
		chunk := f.IDs[start:min(start+checksumChunk, len(f.IDs))]
		for i, id := range chunk {
			binary.LittleEndian.PutUint32(buf[i*4:], uint32(id))
		}
		_, _ = d.Write(buf[:len(chunk)*4])
	}
	for start := 0; start < len(f.Scores); start += checksumChunk {
		chunk := f.Scores[start:min(start+checksumChunk, len(f.Scores))]
		for i, s := range chunk {
			binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(s))
		}
		_, _ = d.Write(buf[:len(chunk)*8])
	}
	return d.Sum64()
}
