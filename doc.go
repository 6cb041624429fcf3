// Package webm implements a muxer for the WebM profile of Matroska: EBML
// container framing, VP8 video and Vorbis audio tracks, and the
// Segment/Cluster/SeekHead/Cues structure a producer needs in order to
// emit a valid, seekable byte stream to a caller-supplied sink.
//
// Demuxing, codec bitstream parsing, and any file or CLI front-end are
// out of scope; callers drive the muxer with AddFrame calls and supply
// their own Writer.
package webm
