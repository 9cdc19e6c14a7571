package fixture

import (
	"encoding/binary"

	topnerrors "github.com/axt/topnselect/errors"
)

const (
	// magic number for fixture files, "TNSF" in little-endian
	magic = uint32(0x46534E54)

	// version is the current format version
	version = uint16(0x0001)

	// headerSize is the exact size of the serialized header (40 bytes)
	headerSize = 40

	// itemSize is the on-disk size of one item: int32 id + float64 score
	itemSize = 4 + 8
)

// header is the 40-byte fixture file header.
//
// Layout:
//
//	Offset  Size  Field     Type
//	0       4     Magic     0x46534E54 ("TNSF")
//	4       2     Version   0x0001
//	6       1     Source    uint8 (0=random, 1=hashed)
//	7       1     Reserved  zero
//	8       8     Count     uint64_le
//	16      8     Seed      uint64_le
//	24      8     Checksum  uint64_le (xxHash64 of the item regions)
//	32      4     Levels    uint32_le (0 = continuous scores)
//	36      4     Reserved  zero
//
// The header is followed by Count little-endian int32 ids and then Count
// little-endian float64 scores.
type header struct {
	Magic    uint32
	Version  uint16
	Source   Source
	Count    uint64
	Seed     uint64
	Checksum uint64
	Levels   uint32
}

// encodeTo serializes the header to an existing buffer.
func (h *header) encodeTo(buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:4], h.Magic)
	binary.LittleEndian.PutUint16(buf[4:6], h.Version)
	buf[6] = uint8(h.Source)
	buf[7] = 0
	binary.LittleEndian.PutUint64(buf[8:16], h.Count)
	binary.LittleEndian.PutUint64(buf[16:24], h.Seed)
	binary.LittleEndian.PutUint64(buf[24:32], h.Checksum)
	binary.LittleEndian.PutUint32(buf[32:36], h.Levels)
	clear(buf[36:40])
}

// decodeHeader parses a 40-byte header.
func decodeHeader(buf []byte) (*header, error) {
	if len(buf) < headerSize {
		return nil, topnerrors.ErrTruncatedFile
	}
	h := &header{
		Magic:    binary.LittleEndian.Uint32(buf[0:4]),
		Version:  binary.LittleEndian.Uint16(buf[4:6]),
		Source:   Source(buf[6]),
		Count:    binary.LittleEndian.Uint64(buf[8:16]),
		Seed:     binary.LittleEndian.Uint64(buf[16:24]),
		Checksum: binary.LittleEndian.Uint64(buf[24:32]),
		Levels:   binary.LittleEndian.Uint32(buf[32:36]),
	}
	if h.Magic != magic {
		return nil, topnerrors.ErrInvalidMagic
	}
	if h.Version != version {
		return nil, topnerrors.ErrInvalidVersion
	}
	return h, nil
}

// fileSize returns the exact file size for count items.
func fileSize(count uint64) uint64 {
	return headerSize + count*itemSize
}
