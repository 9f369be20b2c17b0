package flashlog

import (
	"encoding/binary"

	"github.com/hupe1980/flashlog/blockstore"
)

// On-flash layout. The format is fixed for compatibility with existing
// regions; all integers are little-endian.
//
//	offset 0:    region header: 8-byte magic "flashlog",
//	             uint32 payload size, uint32 slot count
//	offset 4096: slot 0
//	slot i:      at 4096 + i*(4+payloadSize):
//	             uint32 sequence number, then payloadSize payload bytes
//
// A sequence number of 0xFFFFFFFF marks an unused slot. That is the erased
// state of NOR flash, so freshly erased slots are unused without any
// additional write.
const (
	// EraseUnitSize mirrors blockstore.EraseUnitSize for callers that only
	// import this package.
	EraseUnitSize = blockstore.EraseUnitSize

	regionMagic = "flashlog"

	headerSize = 16

	// slot0Offset reserves a full erase unit for the header so that slot
	// eviction never touches it.
	slot0Offset = 4096

	slotHeaderSize = 4

	// unusedSeq is the erased-state sentinel. Sequence numbers wrap after
	// 4 billion entries; the flash will have worn out first.
	unusedSeq = 0xFFFFFFFF
)

type regionHeader struct {
	payloadSize uint32
	slotCount   uint32
}

func encodeRegionHeader(h regionHeader) []byte {
	buf := make([]byte, headerSize)
	copy(buf[0:8], regionMagic)
	binary.LittleEndian.PutUint32(buf[8:12], h.payloadSize)
	binary.LittleEndian.PutUint32(buf[12:16], h.slotCount)
	return buf
}

// decodeRegionHeader parses buf. ok is false when the magic is absent,
// i.e. the region was never initialized (or was initialized by something
// else entirely).
func decodeRegionHeader(buf []byte) (h regionHeader, ok bool) {
	if string(buf[0:8]) != regionMagic {
		return regionHeader{}, false
	}
	h.payloadSize = binary.LittleEndian.Uint32(buf[8:12])
	h.slotCount = binary.LittleEndian.Uint32(buf[12:16])
	return h, true
}

// validSlotSize reports whether payload+header is a power of two that fits
// in one erase unit.
func validSlotSize(payloadSize int) bool {
	if payloadSize <= 0 {
		return false
	}
	slot := payloadSize + slotHeaderSize
	return slot <= EraseUnitSize && slot&(slot-1) == 0
}
