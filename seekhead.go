package webm

import "fmt"

// seekEntryCount is the SeekHead's fixed capacity. The reserved region
// is sized for exactly this many entries, at each entry's worst case,
// and is never grown: a fifth AddSeekEntry call is simply dropped.
const seekEntryCount = 4

// maxSeekEntrySize is the worst-case payload size of one Seek
// sub-element: a SeekID value at its largest legal element-ID width (4
// bytes) plus a SeekPosition value at its largest practical width (8
// bytes, covering any offset a 64-bit stream position can hold).
var maxSeekEntrySize = uint64(UintElementSize(idSeekID, 0xFFFFFFFF) + UintElementSize(idSeekPosition, ^uint64(0)))

type seekEntry struct {
	id  uint32
	pos uint64
}

// SeekHead is the Segment's small seek directory: up to four (element
// ID, payload offset) pairs, reserved up front at worst-case size and
// back-patched once the real entries are known, with the unused tail
// of the reservation padded by a Void element so nothing downstream
// ever shifts.
type SeekHead struct {
	entries  [seekEntryCount]seekEntry
	used     int
	startPos int64
}

func newSeekHead() *SeekHead {
	return &SeekHead{startPos: -1}
}

func (s *SeekHead) reservedSize() uint64 {
	entry := uint64(MasterElementSize(idSeek, maxSeekEntrySize)) + maxSeekEntrySize
	return uint64(MasterElementSize(idSeekHead, uint64(seekEntryCount)*entry)) + uint64(seekEntryCount)*entry
}

// Write reserves the SeekHead's fixed-capacity region as a single Void
// element, recording where that region starts so Finalize can come
// back and fill it in.
func (s *SeekHead) Write(w Writer) error {
	s.startPos = w.Position()
	if _, err := WriteVoidElement(w, s.reservedSize()); err != nil {
		return wrapWriterErr(err)
	}
	return nil
}

// AddSeekEntry records a (element-id, payload-offset) pair, where pos
// is relative to the Segment's own payload start. It returns false,
// without error, if the directory is already full — callers log and
// move on rather than treat a dropped seek entry as fatal.
func (s *SeekHead) AddSeekEntry(id uint32, pos uint64) bool {
	if s.used >= seekEntryCount {
		return false
	}
	s.entries[s.used] = seekEntry{id: id, pos: pos}
	s.used++
	return true
}

// Finalize overwrites the reserved region with the real SeekHead master
// and its entries, then pads whatever's left with a Void element so
// the region's total footprint is unchanged. It is a no-op on a
// non-seekable Writer or an empty directory.
func (s *SeekHead) Finalize(w Writer) error {
	if !w.Seekable() || s.used == 0 {
		return nil
	}

	type sized struct {
		id   uint32
		pos  uint64
		size uint64
	}
	sizedEntries := make([]sized, s.used)
	var payloadSize uint64
	for i := 0; i < s.used; i++ {
		e := s.entries[i]
		inner := uint64(UintElementSize(idSeekID, uint64(e.id))) + uint64(UintElementSize(idSeekPosition, e.pos))
		payloadSize += uint64(MasterElementSize(idSeek, inner)) + inner
		sizedEntries[i] = sized{id: e.id, pos: e.pos, size: inner}
	}

	cur := w.Position()
	if err := w.SetPosition(s.startPos); err != nil {
		return wrapWriterErr(err)
	}

	if err := WriteMasterElement(w, idSeekHead, payloadSize); err != nil {
		return wrapWriterErr(err)
	}
	for _, se := range sizedEntries {
		if err := WriteMasterElement(w, idSeek, se.size); err != nil {
			return wrapWriterErr(err)
		}
		if err := WriteUintElement(w, idSeekID, uint64(se.id)); err != nil {
			return wrapWriterErr(err)
		}
		if err := WriteUintElement(w, idSeekPosition, se.pos); err != nil {
			return wrapWriterErr(err)
		}
	}

	reserved := s.reservedSize()
	written := uint64(w.Position() - s.startPos)
	if written > reserved {
		return fmt.Errorf("webm: SeekHead wrote %d bytes, overflowing its %d-byte reservation", written, reserved)
	}
	if remaining := reserved - written; remaining > 0 {
		if _, err := WriteVoidElement(w, remaining); err != nil {
			return wrapWriterErr(err)
		}
	}

	if err := w.SetPosition(cur); err != nil {
		return wrapWriterErr(err)
	}
	return nil
}
