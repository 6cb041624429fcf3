package webm

import "fmt"

// TrackType discriminates the two track payload kinds this muxer
// supports.
type TrackType uint8

const (
	TrackTypeVideo TrackType = 1
	TrackTypeAudio TrackType = 2
)

// StereoMode is the Matroska stereoscopic video layout tag. Only the
// five values below are legal; anything else is rejected by
// VideoTrack.SetStereoMode.
type StereoMode uint8

const (
	StereoModeMono              StereoMode = 0
	StereoModeSideBySideLeft    StereoMode = 1
	StereoModeTopBottomRight    StereoMode = 2
	StereoModeTopBottomLeft     StereoMode = 3
	StereoModeSideBySideRight   StereoMode = 11
)

func validStereoMode(m StereoMode) bool {
	switch m {
	case StereoModeMono, StereoModeSideBySideLeft, StereoModeTopBottomRight, StereoModeTopBottomLeft, StereoModeSideBySideRight:
		return true
	}
	return false
}

// VideoTrack is the Video-kind payload of a video Track.
type VideoTrack struct {
	PixelWidth    uint64
	PixelHeight   uint64
	DisplayWidth  uint64 // 0 means absent
	DisplayHeight uint64 // 0 means absent
	FrameRate     float64
	StereoMode    StereoMode
	HasStereoMode bool
}

// SetStereoMode validates and sets the track's stereo layout. Valid
// values are 0 (mono), 1, 2, 3, and 11.
func (v *VideoTrack) SetStereoMode(mode StereoMode) error {
	if !validStereoMode(mode) {
		return fmt.Errorf("%w: stereo mode %d not in {0,1,2,3,11}", ErrInvalidArgument, mode)
	}
	v.StereoMode = mode
	v.HasStereoMode = true
	return nil
}

func (v *VideoTrack) payloadSize() int {
	size := UintElementSize(idPixelWidth, v.PixelWidth)
	size += UintElementSize(idPixelHeight, v.PixelHeight)
	if v.DisplayWidth > 0 {
		size += UintElementSize(idDisplayWidth, v.DisplayWidth)
	}
	if v.DisplayHeight > 0 {
		size += UintElementSize(idDisplayHeight, v.DisplayHeight)
	}
	if v.HasStereoMode {
		size += UintElementSize(idStereoMode, uint64(v.StereoMode))
	}
	if v.FrameRate > 0 {
		size += FloatElementSize(idFrameRate, v.FrameRate)
	}
	return size
}

func (v *VideoTrack) write(w Writer) error {
	ps := uint64(v.payloadSize())
	if err := WriteMasterElement(w, idVideo, ps); err != nil {
		return err
	}
	if err := WriteUintElement(w, idPixelWidth, v.PixelWidth); err != nil {
		return err
	}
	if err := WriteUintElement(w, idPixelHeight, v.PixelHeight); err != nil {
		return err
	}
	if v.DisplayWidth > 0 {
		if err := WriteUintElement(w, idDisplayWidth, v.DisplayWidth); err != nil {
			return err
		}
	}
	if v.DisplayHeight > 0 {
		if err := WriteUintElement(w, idDisplayHeight, v.DisplayHeight); err != nil {
			return err
		}
	}
	if v.HasStereoMode {
		if err := WriteUintElement(w, idStereoMode, uint64(v.StereoMode)); err != nil {
			return err
		}
	}
	if v.FrameRate > 0 {
		if err := WriteFloatElement(w, idFrameRate, v.FrameRate); err != nil {
			return err
		}
	}
	return nil
}

// AudioTrack is the Audio-kind payload of an audio Track.
type AudioTrack struct {
	SampleRate float64
	Channels   uint64 // 0 is normalized to 1 on write
	BitDepth   uint64 // 0 means absent
}

func (a *AudioTrack) channels() uint64 {
	if a.Channels == 0 {
		return 1
	}
	return a.Channels
}

func (a *AudioTrack) payloadSize() int {
	size := FloatElementSize(idSamplingFrequency, a.SampleRate)
	size += UintElementSize(idChannels, a.channels())
	if a.BitDepth > 0 {
		size += UintElementSize(idBitDepth, a.BitDepth)
	}
	return size
}

func (a *AudioTrack) write(w Writer) error {
	ps := uint64(a.payloadSize())
	if err := WriteMasterElement(w, idAudio, ps); err != nil {
		return err
	}
	if err := WriteFloatElement(w, idSamplingFrequency, a.SampleRate); err != nil {
		return err
	}
	if err := WriteUintElement(w, idChannels, a.channels()); err != nil {
		return err
	}
	if a.BitDepth > 0 {
		if err := WriteUintElement(w, idBitDepth, a.BitDepth); err != nil {
			return err
		}
	}
	return nil
}

// Track is a single entry in the Tracks element. It is a tagged variant
// rather than an interface hierarchy: Type names which of Video/Audio
// is populated, and callers branch on Type the same way the rest of
// this package dispatches on an explicit tag instead of a type switch.
type Track struct {
	Number  uint64
	UID     uint64
	Type    TrackType
	CodecID string

	CodecPrivate []byte
	Language     string
	Name         string

	Video *VideoTrack
	Audio *AudioTrack
}

func (t *Track) payloadSize() int {
	size := UintElementSize(idTrackNumber, t.Number)
	size += UintElementSize(idTrackUID, t.UID)
	size += UintElementSize(idTrackType, uint64(t.Type))
	if t.CodecID != "" {
		size += StringElementSize(idCodecID, t.CodecID)
	}
	if len(t.CodecPrivate) > 0 {
		size += BinaryElementSize(idCodecPrivate, t.CodecPrivate)
	}
	if t.Language != "" {
		size += StringElementSize(idLanguage, t.Language)
	}
	if t.Name != "" {
		size += StringElementSize(idName, t.Name)
	}
	if t.Video != nil {
		size += MasterElementSize(idVideo, uint64(t.Video.payloadSize())) + t.Video.payloadSize()
	}
	if t.Audio != nil {
		size += MasterElementSize(idAudio, uint64(t.Audio.payloadSize())) + t.Audio.payloadSize()
	}
	return size
}

// Size predicts the total byte count Write will produce for this
// TrackEntry, including its own header.
func (t *Track) Size() int {
	ps := t.payloadSize()
	return MasterElementSize(idTrackEntry, uint64(ps)) + ps
}

// Write emits this Track as a complete TrackEntry element.
func (t *Track) Write(w Writer) error {
	start := w.Position()
	ps := uint64(t.payloadSize())
	if err := WriteMasterElement(w, idTrackEntry, ps); err != nil {
		return wrapWriterErr(err)
	}
	if err := WriteUintElement(w, idTrackNumber, t.Number); err != nil {
		return wrapWriterErr(err)
	}
	if err := WriteUintElement(w, idTrackUID, t.UID); err != nil {
		return wrapWriterErr(err)
	}
	if err := WriteUintElement(w, idTrackType, uint64(t.Type)); err != nil {
		return wrapWriterErr(err)
	}
	if t.CodecID != "" {
		if err := WriteStringElement(w, idCodecID, t.CodecID); err != nil {
			return wrapWriterErr(err)
		}
	}
	if len(t.CodecPrivate) > 0 {
		if err := WriteBinaryElement(w, idCodecPrivate, t.CodecPrivate); err != nil {
			return wrapWriterErr(err)
		}
	}
	if t.Language != "" {
		if err := WriteStringElement(w, idLanguage, t.Language); err != nil {
			return wrapWriterErr(err)
		}
	}
	if t.Name != "" {
		if err := WriteStringElement(w, idName, t.Name); err != nil {
			return wrapWriterErr(err)
		}
	}
	if t.Video != nil {
		if err := t.Video.write(w); err != nil {
			return wrapWriterErr(err)
		}
	}
	if t.Audio != nil {
		if err := t.Audio.write(w); err != nil {
			return wrapWriterErr(err)
		}
	}
	if start >= 0 {
		got := w.Position() - start
		if want := int64(t.Size()); got != want {
			return fmt.Errorf("webm: TrackEntry size mismatch: wrote %d, predicted %d", got, want)
		}
	}
	return nil
}

// trackTable is the ordered collection backing the Tracks element.
// Track numbers are assigned sequentially starting at 1, in add order.
type trackTable struct {
	tracks []*Track
}

func (t *trackTable) add(tr *Track) uint64 {
	tr.Number = uint64(len(t.tracks) + 1)
	t.tracks = append(t.tracks, tr)
	return tr.Number
}

func (t *trackTable) byNumber(n uint64) *Track {
	for _, tr := range t.tracks {
		if tr.Number == n {
			return tr
		}
	}
	return nil
}

func (t *trackTable) payloadSize() int {
	size := 0
	for _, tr := range t.tracks {
		size += tr.Size()
	}
	return size
}

func (t *trackTable) write(w Writer) error {
	ps := uint64(t.payloadSize())
	if err := WriteMasterElement(w, idTracks, ps); err != nil {
		return wrapWriterErr(err)
	}
	for _, tr := range t.tracks {
		if err := tr.Write(w); err != nil {
			return err
		}
	}
	return nil
}
