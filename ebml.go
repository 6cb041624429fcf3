package webm

import (
	"encoding/binary"
	"fmt"
	"math"
)

// idWidth returns the number of significant bytes in an EBML element ID,
// derived from the magnitude of the value itself: IDs are conventionally
// written with exactly as many hex digit pairs as their on-wire width.
func idWidth(id uint32) int {
	switch {
	case id <= 0xFF:
		return 1
	case id <= 0xFFFF:
		return 2
	case id <= 0xFFFFFF:
		return 3
	default:
		return 4
	}
}

func writeID(w Writer, id uint32) error {
	width := idWidth(id)
	var buf [4]byte
	v := id
	for i := width - 1; i >= 0; i-- {
		buf[i] = byte(v)
		v >>= 8
	}
	_, err := w.Write(buf[:width])
	return err
}

// serializeInt writes value as width big-endian bytes, taking the low
// width*8 bits.
func serializeInt(w Writer, value uint64, width int) error {
	var buf [8]byte
	v := value
	for i := width - 1; i >= 0; i-- {
		buf[i] = byte(v)
		v >>= 8
	}
	_, err := w.Write(buf[:width])
	return err
}

// varintSize returns the minimal EBML var-int width that can hold v,
// reserving the all-ones payload of each width as that width's "unknown
// size" marker.
func varintSize(v uint64) int {
	for n := 1; n < 8; n++ {
		if v < (uint64(1)<<uint(7*n))-1 {
			return n
		}
	}
	return 8
}

// writeVarInt writes v using the minimal EBML var-int width.
func writeVarInt(w Writer, v uint64) error {
	return writeVarIntWidth(w, v, varintSize(v))
}

// writeVarIntWidth writes v as an EBML var-int using exactly width
// bytes, setting the length-marker bit. The marker bit sits at bit
// position 7*width (0-indexed from the LSB of the width-byte big-endian
// value), which lands in the correct place within the first byte for
// every width from 1 to 8.
func writeVarIntWidth(w Writer, v uint64, width int) error {
	if width < 1 || width > 8 {
		return fmt.Errorf("%w: var-int width %d out of range 1..8", ErrInvalidArgument, width)
	}
	encoded := v | (uint64(1) << uint(7*width))
	return serializeInt(w, encoded, width)
}

// unknownSizeValue is the all-ones 56-bit payload that, written as an
// 8-byte var-int, marks an element's size as not-yet-known.
const unknownSizeValue = (uint64(1) << 56) - 1

func writeUnknownSize(w Writer) error {
	return writeVarIntWidth(w, unknownSizeValue, 8)
}

// patchSize seeks back to pos, overwrites the reserved 8-byte var-int
// size placeholder with payloadSize, then restores the writer's
// position. It is a no-op on a non-seekable Writer.
func patchSize(w Writer, pos int64, payloadSize uint64) error {
	if !w.Seekable() {
		return nil
	}
	cur := w.Position()
	if cur < 0 {
		return wrapWriterErr(fmt.Errorf("writer position unavailable"))
	}
	if err := w.SetPosition(pos); err != nil {
		return wrapWriterErr(err)
	}
	if err := writeVarIntWidth(w, payloadSize, 8); err != nil {
		return wrapWriterErr(err)
	}
	if err := w.SetPosition(cur); err != nil {
		return wrapWriterErr(err)
	}
	return nil
}

// uintSize returns the minimal number of big-endian bytes needed to
// hold v, with a floor of 1 (an element with value 0 is still written
// with a single zero byte).
func uintSize(v uint64) int {
	n := 1
	for v>>(uint(8*n)) != 0 {
		n++
	}
	return n
}

func elementHeaderSize(id uint32, payloadSize uint64) int {
	return idWidth(id) + varintSize(payloadSize)
}

// UintElementSize predicts the byte count WriteUintElement will write.
func UintElementSize(id uint32, v uint64) int {
	n := uintSize(v)
	return elementHeaderSize(id, uint64(n)) + n
}

// WriteUintElement writes a complete unsigned-integer element: ID,
// var-int size, then the minimal big-endian encoding of v.
func WriteUintElement(w Writer, id uint32, v uint64) error {
	n := uintSize(v)
	if err := writeID(w, id); err != nil {
		return err
	}
	if err := writeVarInt(w, uint64(n)); err != nil {
		return err
	}
	return serializeInt(w, v, n)
}

// FloatElementSize predicts the byte count WriteFloatElement will
// write. Floats are always stored at IEEE-754 single precision.
func FloatElementSize(id uint32, v float64) int {
	return elementHeaderSize(id, 4) + 4
}

// WriteFloatElement writes a complete float element at 4-byte (single)
// precision.
func WriteFloatElement(w Writer, id uint32, v float64) error {
	if err := writeID(w, id); err != nil {
		return err
	}
	if err := writeVarInt(w, 4); err != nil {
		return err
	}
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], math.Float32bits(float32(v)))
	_, err := w.Write(buf[:])
	return err
}

// StringElementSize predicts the byte count WriteStringElement will
// write.
func StringElementSize(id uint32, v string) int {
	return elementHeaderSize(id, uint64(len(v))) + len(v)
}

// WriteStringElement writes a complete string (ASCII/UTF-8) element.
func WriteStringElement(w Writer, id uint32, v string) error {
	if err := writeID(w, id); err != nil {
		return err
	}
	if err := writeVarInt(w, uint64(len(v))); err != nil {
		return err
	}
	_, err := w.Write([]byte(v))
	return err
}

// BinaryElementSize predicts the byte count WriteBinaryElement will
// write.
func BinaryElementSize(id uint32, v []byte) int {
	return elementHeaderSize(id, uint64(len(v))) + len(v)
}

// WriteBinaryElement writes a complete opaque-binary element.
func WriteBinaryElement(w Writer, id uint32, v []byte) error {
	if err := writeID(w, id); err != nil {
		return err
	}
	if err := writeVarInt(w, uint64(len(v))); err != nil {
		return err
	}
	_, err := w.Write(v)
	return err
}

// MasterElementSize predicts the byte count of a master element's
// header (ID + size var-int) given its payload size; the payload
// itself is written separately by the caller.
func MasterElementSize(id uint32, payloadSize uint64) int {
	return elementHeaderSize(id, payloadSize)
}

// WriteMasterElement writes a master element's ID and var-int size.
// The caller writes the payload immediately afterward.
func WriteMasterElement(w Writer, id uint32, payloadSize uint64) error {
	if err := writeID(w, id); err != nil {
		return err
	}
	return writeVarInt(w, payloadSize)
}

// WriteVoidElement writes a Void element (ID 0xEC) whose *total* on-wire
// footprint, header included, is exactly size bytes. It is used to pad
// out a reserved region whose real content turned out smaller than the
// worst case reserved for it.
func WriteVoidElement(w Writer, size uint64) (uint64, error) {
	if size < 2 {
		return 0, fmt.Errorf("%w: void element size %d too small", ErrInvalidArgument, size)
	}
	// Use the narrowest size var-int whose width can hold the payload
	// that is left over; a payload on a width's reserved all-ones value
	// (127 for width 1) is written at the next width instead.
	idw := uint64(idWidth(idVoid))
	width := 1
	for ; width < 8; width++ {
		if varintSize(size-idw-uint64(width)) <= width {
			break
		}
	}
	payloadSize := size - idw - uint64(width)
	if err := writeID(w, idVoid); err != nil {
		return 0, err
	}
	if err := writeVarIntWidth(w, payloadSize, width); err != nil {
		return 0, err
	}
	if payloadSize > 0 {
		zeros := make([]byte, payloadSize)
		if _, err := w.Write(zeros); err != nil {
			return 0, err
		}
	}
	return size, nil
}

// writeSimpleBlock writes one SimpleBlock element and returns its total
// on-wire size (to be accumulated into the enclosing Cluster's
// payload_size). trackNumber is encoded as a 1-byte EBML var-int, so it
// must fall in 1..127.
func writeSimpleBlock(w Writer, trackNumber uint64, relativeTimecode int16, keyframe bool, frame []byte) (uint64, error) {
	if trackNumber == 0 || trackNumber > 127 {
		return 0, fmt.Errorf("%w: track number %d out of range 1..127", ErrInvalidArgument, trackNumber)
	}
	inner := uint64(1 + 2 + 1 + len(frame))
	if err := writeID(w, idSimpleBlock); err != nil {
		return 0, err
	}
	if err := writeVarIntWidth(w, inner, 4); err != nil {
		return 0, err
	}
	if err := writeVarIntWidth(w, trackNumber, 1); err != nil {
		return 0, err
	}
	var tcBuf [2]byte
	binary.BigEndian.PutUint16(tcBuf[:], uint16(relativeTimecode))
	if _, err := w.Write(tcBuf[:]); err != nil {
		return 0, err
	}
	var flags byte
	if keyframe {
		flags |= 0x80
	}
	if _, err := w.Write([]byte{flags}); err != nil {
		return 0, err
	}
	if len(frame) > 0 {
		if _, err := w.Write(frame); err != nil {
			return 0, err
		}
	}
	return uint64(idWidth(idSimpleBlock)) + 4 + inner, nil
}
