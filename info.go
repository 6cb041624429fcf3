package webm

import "fmt"

// defaultTimecodeScale is the number of nanoseconds one timecode tick
// represents; all Cluster/SimpleBlock/CuePoint timestamps are measured
// in this many nanoseconds.
const defaultTimecodeScale = 1_000_000

// SegmentInfo holds the Segment-wide metadata written once, in the
// Info element, immediately after the SeekHead reservation.
type SegmentInfo struct {
	TimecodeScale uint64

	// Duration is in timecode-scale units. A non-positive value means
	// "absent"; Segment sets it to a placeholder before the first
	// Write so the field's slot is reserved, then overwrites it for
	// real during Finalize.
	Duration float64

	MuxingApp  string
	WritingApp string

	durationPos int64
}

func newSegmentInfo() *SegmentInfo {
	return &SegmentInfo{
		TimecodeScale: defaultTimecodeScale,
		Duration:      -1,
		MuxingApp:     driverVersion,
		WritingApp:    driverVersion,
		durationPos:   -1,
	}
}

func (s *SegmentInfo) payloadSize() int {
	size := UintElementSize(idTimecodeScale, s.TimecodeScale)
	if s.Duration > 0 {
		size += FloatElementSize(idDuration, s.Duration)
	}
	size += StringElementSize(idMuxingApp, s.MuxingApp)
	size += StringElementSize(idWritingApp, s.WritingApp)
	return size
}

// Write emits the Info element. If Duration is positive at the time of
// this call, its position is recorded so Finalize can patch it later.
func (s *SegmentInfo) Write(w Writer) error {
	if s.MuxingApp == "" || s.WritingApp == "" {
		return fmt.Errorf("%w: SegmentInfo muxing/writing app must be set", ErrInvalidArgument)
	}

	ps := uint64(s.payloadSize())
	if err := WriteMasterElement(w, idInfo, ps); err != nil {
		return wrapWriterErr(err)
	}
	if err := WriteUintElement(w, idTimecodeScale, s.TimecodeScale); err != nil {
		return wrapWriterErr(err)
	}
	if s.Duration > 0 {
		s.durationPos = w.Position()
		if err := WriteFloatElement(w, idDuration, s.Duration); err != nil {
			return wrapWriterErr(err)
		}
	}
	if err := WriteStringElement(w, idMuxingApp, s.MuxingApp); err != nil {
		return wrapWriterErr(err)
	}
	if err := WriteStringElement(w, idWritingApp, s.WritingApp); err != nil {
		return wrapWriterErr(err)
	}
	return nil
}

// Finalize patches the Duration field with its real value. It is a
// no-op if Duration was never reserved a slot, or the Writer can't
// seek.
func (s *SegmentInfo) Finalize(w Writer) error {
	if s.durationPos < 0 || !w.Seekable() {
		return nil
	}
	cur := w.Position()
	if err := w.SetPosition(s.durationPos); err != nil {
		return wrapWriterErr(err)
	}
	if err := WriteFloatElement(w, idDuration, s.Duration); err != nil {
		return wrapWriterErr(err)
	}
	if err := w.SetPosition(cur); err != nil {
		return wrapWriterErr(err)
	}
	return nil
}
