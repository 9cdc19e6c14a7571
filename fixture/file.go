package fixture

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/edsrzf/mmap-go"

	topnerrors "github.com/axt/topnselect/errors"
)

// Save writes f to path, replacing any existing file.
// File layout: [Header 40B][IDs 4×n][Scores 8×n]
//
// The file is pre-allocated and written through a shared memory mapping.
func (f *Fixture) Save(path string) (err error) {
	if f.Len() == 0 {
		return topnerrors.ErrEmptyFixture
	}
	if len(f.IDs) != len(f.Scores) {
		return fmt.Errorf("fixture has %d ids but %d scores", len(f.IDs), len(f.Scores))
	}
	count := uint64(f.Len())
	size := fileSize(count)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create fixture file: %w", err)
	}
	defer func() {
		err = errors.Join(err, file.Close())
	}()

	if err := reserveFile(file, int64(size)); err != nil {
		return fmt.Errorf("allocate fixture file: %w", err)
	}

	mm, err := mmap.MapRegion(file, int(size), mmap.RDWR, 0, 0)
	if err != nil {
		return fmt.Errorf("mmap fixture file: %w", err)
	}
	data := []byte(mm)
	prefaultForWrite(data)

	h := header{
		Magic:    magic,
		Version:  version,
		Source:   f.Source,
		Count:    count,
		Seed:     f.Seed,
		Checksum: f.Checksum(),
		Levels:   uint32(f.Levels),
	}
	h.encodeTo(data[:headerSize])

	idRegion := data[headerSize : headerSize+count*4]
	for i, id := range f.IDs {
		binary.LittleEndian.PutUint32(idRegion[i*4:], uint32(id))
	}
	scoreRegion := data[headerSize+count*4:]
	for i, s := range f.Scores {
		binary.LittleEndian.PutUint64(scoreRegion[i*8:], math.Float64bits(s))
	}

	if err := mm.Flush(); err != nil {
		return errors.Join(fmt.Errorf("flush fixture file: %w", err), mm.Unmap())
	}
	if err := mm.Unmap(); err != nil {
		return fmt.Errorf("unmap fixture file: %w", err)
	}
	return nil
}

// Load reads a fixture written by Save and verifies its checksum.
// The returned fixture owns its memory; the file is unmapped before return.
func Load(path string) (*Fixture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixture file: %w", err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat fixture file: %w", err)
	}
	if stat.Size() < headerSize {
		return nil, topnerrors.ErrTruncatedFile
	}

	adviseSequential(file, stat.Size())

	mm, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap fixture file: %w", err)
	}
	f, err := decode([]byte(mm))
	return f, errors.Join(err, mm.Unmap())
}

// decode parses a complete fixture image.
func decode(data []byte) (*Fixture, error) {
	h, err := decodeHeader(data)
	if err != nil {
		return nil, err
	}
	if h.Count == 0 {
		return nil, topnerrors.ErrEmptyFixture
	}
	if h.Count > uint64(math.MaxInt32) || uint64(len(data)) != fileSize(h.Count) {
		return nil, fmt.Errorf("%w: %d bytes for %d items", topnerrors.ErrTruncatedFile, len(data), h.Count)
	}

	if got := xxhash.Sum64(data[headerSize:]); got != h.Checksum {
		return nil, fmt.Errorf("%w: got %016x, want %016x", topnerrors.ErrChecksumFailed, got, h.Checksum)
	}

	n := int(h.Count)
	f := &Fixture{
		IDs:    make([]int32, n),
		Scores: make([]float64, n),
		Seed:   h.Seed,
		Source: h.Source,
		Levels: int(h.Levels),
	}
	idRegion := data[headerSize : headerSize+n*4]
	for i := range f.IDs {
		f.IDs[i] = int32(binary.LittleEndian.Uint32(idRegion[i*4:]))
	}
	scoreRegion := data[headerSize+n*4:]
	for i := range f.Scores {
		f.Scores[i] = math.Float64frombits(binary.LittleEndian.Uint64(scoreRegion[i*8:]))
	}
	return f, nil
}
