package webm

import (
	"fmt"
	"log/slog"
	"time"
)

// Mode controls how a Segment finalizes. ModeFile assumes the Writer is
// seekable and patches every reserved size field (Cluster, Segment,
// SeekHead, SegmentInfo.Duration) on Finalize. ModeLive assumes the
// Writer is a one-way stream: clusters are left with their "unknown
// size" marker standing and no SeekHead/Cues/Duration patch is
// attempted.
type Mode uint8

const (
	ModeFile Mode = iota
	ModeLive
)

// Option configures a Segment at construction time.
type Option func(*Segment)

// WithMode selects File or Live finalization behavior. Default
// ModeFile.
func WithMode(m Mode) Option { return func(s *Segment) { s.mode = m } }

// WithMaxClusterDuration forces a new Cluster for any frame whose
// timestamp is d or more past the current cluster's base timecode.
// Zero (the default) disables the duration boundary.
func WithMaxClusterDuration(d time.Duration) Option {
	return func(s *Segment) { s.maxClusterDuration = uint64(d.Nanoseconds()) }
}

// WithMaxClusterSize forces a new Cluster for the next frame once the
// current cluster's payload has reached n bytes. The frame that carries
// the payload past n still goes into the current cluster, so a cluster
// can end up larger than n. Zero (the default) disables the size
// boundary.
func WithMaxClusterSize(n uint64) Option {
	return func(s *Segment) { s.maxClusterSize = n }
}

// WithCues enables or disables Cues emission. Default enabled.
func WithCues(enabled bool) Option { return func(s *Segment) { s.outputCues = enabled } }

// WithLogger overrides the Segment's logger. Default slog.Default(),
// tagged with a "component" attribute.
func WithLogger(l *slog.Logger) Option {
	return func(s *Segment) { s.logger = l.With("component", "webm.segment") }
}

type queuedFrame struct {
	data      []byte
	track     uint64
	timestamp uint64
	keyframe  bool
}

// Segment is the top-level muxer: it owns the Track table, the
// SeekHead directory, the SegmentInfo, the Cues collection, and the
// sequence of Clusters, and it is the only type callers drive directly.
type Segment struct {
	writer Writer
	logger *slog.Logger

	tracks   trackTable
	seekHead *SeekHead
	info     *SegmentInfo
	cues     Cues

	clusters []*Cluster
	queue    []*queuedFrame

	mode Mode

	headerWritten bool
	finalized     bool
	newCluster    bool
	newCuePoint   bool

	maxClusterDuration uint64
	maxClusterSize     uint64

	hasVideo bool

	sizePosition  int64
	payloadPos    int64
	lastTimestamp uint64

	outputCues bool
	cuesTrack  uint64
}

// NewSegment creates a Segment that will write to w once the first
// frame arrives.
func NewSegment(w Writer, opts ...Option) *Segment {
	s := &Segment{
		writer:       w,
		logger:       defaultLogger(),
		seekHead:     newSeekHead(),
		info:         newSegmentInfo(),
		mode:         ModeFile,
		outputCues:   true,
		newCluster:   true,
		sizePosition: -1,
		payloadPos:   -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddVideoTrack registers a VP8 video track and returns its assigned
// track number.
func (s *Segment) AddVideoTrack(width, height uint64) uint64 {
	tr := &Track{
		Type:    TrackTypeVideo,
		CodecID: "V_VP8",
		UID:     MakeUID(),
		Video:   &VideoTrack{PixelWidth: width, PixelHeight: height},
	}
	num := s.tracks.add(tr)
	s.hasVideo = true
	return num
}

// AddAudioTrack registers a Vorbis audio track and returns its
// assigned track number. channels of 0 is normalized to 1.
func (s *Segment) AddAudioTrack(sampleRate float64, channels uint64) uint64 {
	tr := &Track{
		Type:    TrackTypeAudio,
		CodecID: "A_VORBIS",
		UID:     MakeUID(),
		Audio:   &AudioTrack{SampleRate: sampleRate, Channels: channels},
	}
	return s.tracks.add(tr)
}

// Track exposes a previously added track for further configuration
// (CodecPrivate, Language, Name, stereo mode, display dimensions, frame
// rate, bit depth). It must be called before the first AddFrame, since
// the Tracks element is written when the Segment header is written.
func (s *Segment) Track(number uint64) *Track {
	return s.tracks.byNumber(number)
}

func (s *Segment) writeHeader() error {
	if err := writeEBMLHeader(s.writer); err != nil {
		return err
	}

	if err := writeID(s.writer, idSegment); err != nil {
		return wrapWriterErr(err)
	}
	s.sizePosition = s.writer.Position()
	if err := writeUnknownSize(s.writer); err != nil {
		return wrapWriterErr(err)
	}
	s.payloadPos = s.writer.Position()

	if s.mode == ModeFile && s.writer.Seekable() {
		// Reserve the Duration element's slot before Info is written,
		// so Finalize can come back and patch it with the real value.
		s.info.Duration = 1.0
		if err := s.seekHead.Write(s.writer); err != nil {
			return err
		}
	}

	if !s.seekHead.AddSeekEntry(idInfo, uint64(s.writer.Position()-s.payloadPos)) {
		s.logger.Debug("SeekHead directory full, dropping Info entry")
	}
	if err := s.info.Write(s.writer); err != nil {
		return err
	}

	if !s.seekHead.AddSeekEntry(idTracks, uint64(s.writer.Position()-s.payloadPos)) {
		s.logger.Debug("SeekHead directory full, dropping Tracks entry")
	}
	if err := s.tracks.write(s.writer); err != nil {
		return err
	}

	s.headerWritten = true
	return nil
}

func (s *Segment) firstVideoOrFirstTrack() uint64 {
	for _, tr := range s.tracks.tracks {
		if tr.Type == TrackTypeVideo {
			return tr.Number
		}
	}
	if len(s.tracks.tracks) > 0 {
		return s.tracks.tracks[0].Number
	}
	return 0
}

func (s *Segment) addCuePoint(timestamp uint64) error {
	pos := s.writer.Position()
	if pos < 0 {
		return wrapWriterErr(fmt.Errorf("writer position unavailable"))
	}
	cluster := s.clusters[len(s.clusters)-1]
	s.cues.Add(&CuePoint{
		Time:            timestamp / s.info.TimecodeScale,
		Track:           s.cuesTrack,
		ClusterPosition: uint64(pos - s.payloadPos),
		BlockNumber:     uint64(cluster.BlocksAdded() + 1),
	})
	return nil
}

// AddFrame appends one compressed media frame belonging to track.
// timestamp is nanoseconds since the start of the stream. Frames on
// audio tracks are held back (and copied, since they outlive this
// call) whenever a video track exists, so they land in the same
// cluster as the video keyframe that follows them; frames written
// straight through are never copied, matching the original's direct
// write path.
func (s *Segment) AddFrame(frame []byte, track uint64, timestamp uint64, keyframe bool) error {
	if s.finalized {
		return fmt.Errorf("%w: AddFrame called after Finalize", ErrStateError)
	}
	if track == 0 || track > 127 {
		return fmt.Errorf("%w: track number %d out of range 1..127", ErrInvalidArgument, track)
	}
	tr := s.tracks.byNumber(track)
	if tr == nil {
		return fmt.Errorf("%w: unknown track number %d", ErrInvalidArgument, track)
	}

	if !s.headerWritten {
		if err := s.writeHeader(); err != nil {
			return err
		}
		if !s.seekHead.AddSeekEntry(idCluster, uint64(s.writer.Position()-s.payloadPos)) {
			s.logger.Debug("SeekHead directory full, dropping Cluster entry")
		}
		if s.outputCues && s.cuesTrack == 0 {
			s.cuesTrack = s.firstVideoOrFirstTrack()
		}
	}

	if s.hasVideo && tr.Type == TrackTypeAudio {
		cp := make([]byte, len(frame))
		copy(cp, frame)
		s.queue = append(s.queue, &queuedFrame{data: cp, track: track, timestamp: timestamp, keyframe: keyframe})
		return nil
	}

	switch {
	case keyframe && tr.Type == TrackTypeVideo:
		s.newCluster = true
	case len(s.clusters) > 0:
		cur := s.clusters[len(s.clusters)-1]
		clusterStart := cur.Timecode() * s.info.TimecodeScale
		switch {
		case s.maxClusterDuration > 0 && timestamp-clusterStart >= s.maxClusterDuration:
			s.newCluster = true
		case s.maxClusterSize > 0 && cur.PayloadSize() >= s.maxClusterSize:
			s.newCluster = true
		}
	}

	if s.newCluster {
		if err := s.flushLessThan(timestamp); err != nil {
			return err
		}

		timecode := timestamp / s.info.TimecodeScale
		if len(s.queue) > 0 {
			if audioTimecode := s.queue[0].timestamp / s.info.TimecodeScale; audioTimecode < timecode {
				timecode = audioTimecode
			}
		}

		if s.mode == ModeFile && len(s.clusters) > 0 {
			if err := s.clusters[len(s.clusters)-1].Finalize(); err != nil {
				return err
			}
		}
		s.clusters = append(s.clusters, newCluster(timecode, s.writer))

		if s.mode == ModeFile && s.outputCues {
			s.newCuePoint = true
		}
		s.newCluster = false
	}

	if err := s.flushAll(); err != nil {
		return err
	}

	cluster := s.clusters[len(s.clusters)-1]

	if s.newCuePoint && track == s.cuesTrack {
		if err := s.addCuePoint(timestamp); err != nil {
			return err
		}
		s.newCuePoint = false
	}

	relative := int64(timestamp/s.info.TimecodeScale) - int64(cluster.Timecode())
	if err := cluster.AddFrame(frame, track, relative, keyframe); err != nil {
		return err
	}

	if timestamp > s.lastTimestamp {
		s.lastTimestamp = timestamp
	}
	return nil
}

// flushAll drains the entire audio queue into the current cluster, in
// order. Called once a cluster exists: at the end of AddFrame's
// boundary handling, and again from Finalize to drain whatever is
// still queued when the stream ends.
func (s *Segment) flushAll() error {
	if len(s.queue) == 0 || len(s.clusters) == 0 {
		return nil
	}
	cluster := s.clusters[len(s.clusters)-1]
	for _, qf := range s.queue {
		if s.newCuePoint && qf.track == s.cuesTrack {
			if err := s.addCuePoint(qf.timestamp); err != nil {
				return err
			}
			s.newCuePoint = false
		}
		relative := int64(qf.timestamp/s.info.TimecodeScale) - int64(cluster.Timecode())
		if err := cluster.AddFrame(qf.data, qf.track, relative, qf.keyframe); err != nil {
			return err
		}
		if qf.timestamp > s.lastTimestamp {
			s.lastTimestamp = qf.timestamp
		}
	}
	s.queue = s.queue[:0]
	return nil
}

// flushLessThan drains queued frames into the current cluster, but
// only as long as the *next* queued frame's timestamp is <= t; the
// tail frame (whichever one is last in the queue when this is called)
// is never flushed here; only flushAll can emit it. This is the
// resolution of the "audio-flush boundary" open question, pinned to
// the original's WriteFramesLessThan behavior.
func (s *Segment) flushLessThan(t uint64) error {
	if len(s.queue) == 0 || len(s.clusters) == 0 {
		return nil
	}
	cluster := s.clusters[len(s.clusters)-1]
	shift := 0
	for i := 1; i < len(s.queue); i++ {
		if s.queue[i].timestamp > t {
			break
		}
		prev := s.queue[i-1]
		if s.newCuePoint && prev.track == s.cuesTrack {
			if err := s.addCuePoint(prev.timestamp); err != nil {
				return err
			}
			s.newCuePoint = false
		}
		relative := int64(prev.timestamp/s.info.TimecodeScale) - int64(cluster.Timecode())
		if err := cluster.AddFrame(prev.data, prev.track, relative, prev.keyframe); err != nil {
			return err
		}
		if prev.timestamp > s.lastTimestamp {
			s.lastTimestamp = prev.timestamp
		}
		shift++
	}
	if shift > 0 {
		copy(s.queue, s.queue[shift:])
		s.queue = s.queue[:len(s.queue)-shift]
	}
	return nil
}

// Finalize drains any remaining queued audio, closes out the last
// cluster, writes Cues, patches the SeekHead and SegmentInfo.Duration,
// and patches the Segment's own reserved size field. On ModeLive it
// only drains the queue: no Cues are written and no field is patched.
// On a non-seekable Writer in ModeFile, Cues are written but the
// size-patching steps are skipped and the "unknown size" markers are
// left standing.
func (s *Segment) Finalize() error {
	if s.finalized {
		return fmt.Errorf("%w: Finalize called twice", ErrStateError)
	}
	if !s.headerWritten {
		s.finalized = true
		return nil
	}

	if err := s.flushAll(); err != nil {
		return err
	}

	if s.mode == ModeFile {
		if len(s.clusters) > 0 {
			if err := s.clusters[len(s.clusters)-1].Finalize(); err != nil {
				return err
			}
		}

		s.info.Duration = float64(s.lastTimestamp) / float64(s.info.TimecodeScale)
		if err := s.info.Finalize(s.writer); err != nil {
			return err
		}

		if !s.seekHead.AddSeekEntry(idCues, uint64(s.writer.Position()-s.payloadPos)) {
			s.logger.Debug("SeekHead directory full, dropping Cues entry")
		}
		if err := s.cues.Write(s.writer); err != nil {
			return err
		}

		if err := s.seekHead.Finalize(s.writer); err != nil {
			return err
		}

		if s.writer.Seekable() {
			segmentSize := uint64(s.writer.Position() - s.sizePosition - 8)
			if err := patchSize(s.writer, s.sizePosition, segmentSize); err != nil {
				return err
			}
		}
	}

	s.finalized = true
	return nil
}
