package webm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentInfoWriteMatchesPredictedSize(t *testing.T) {
	info := newSegmentInfo()
	info.Duration = 1.0 // placeholder, mirrors Segment.writeHeader
	w := NewSliceWriter()
	require.NoError(t, info.Write(w))
	assert.Equal(t, info.payloadSize(), w.Len()-elementHeaderSize(idInfo, uint64(info.payloadSize())))

	elems, err := readTestElements(w.Bytes())
	require.NoError(t, err)
	require.Len(t, elems, 1)
	assert.Equal(t, idInfo, elems[0].id)

	children, err := readTestElements(elems[0].payload)
	require.NoError(t, err)
	scale, ok := findTestElement(children, idTimecodeScale)
	require.True(t, ok)
	assert.Equal(t, uint64(defaultTimecodeScale), readTestUint(scale.payload))

	muxApp, ok := findTestElement(children, idMuxingApp)
	require.True(t, ok)
	assert.Equal(t, driverVersion, string(muxApp.payload))
}

func TestSegmentInfoFinalizePatchesZeroDuration(t *testing.T) {
	info := newSegmentInfo()
	info.Duration = 1.0
	w := NewSliceWriter()
	require.NoError(t, info.Write(w))

	// the real duration computes to exactly zero, e.g. a single frame
	// at timestamp zero; Finalize must still patch the reserved slot.
	info.Duration = 0.0
	require.NoError(t, info.Finalize(w))

	elems, err := readTestElements(w.Bytes())
	require.NoError(t, err)
	children, err := readTestElements(elems[0].payload)
	require.NoError(t, err)
	dur, ok := findTestElement(children, idDuration)
	require.True(t, ok)
	assert.Equal(t, float64(0), readTestFloat(dur.payload))
}

func TestSegmentInfoFinalizeNoopWhenDurationNeverReserved(t *testing.T) {
	info := newSegmentInfo()
	w := NewSliceWriter()
	require.NoError(t, info.Write(w))
	before := append([]byte(nil), w.Bytes()...)

	info.Duration = 5
	require.NoError(t, info.Finalize(w))
	assert.Equal(t, before, w.Bytes())
}

func TestSegmentInfoFinalizeNoopOnNonSeekableWriter(t *testing.T) {
	info := newSegmentInfo()
	info.Duration = 1.0
	var buf sinkBuffer
	w := NewStreamWriter(&buf)
	require.NoError(t, info.Write(w))
	before := append([]byte(nil), buf.data...)

	info.Duration = 9
	require.NoError(t, info.Finalize(w))
	assert.Equal(t, before, buf.data)
}

func TestSegmentInfoRejectsEmptyAppStrings(t *testing.T) {
	info := newSegmentInfo()
	info.MuxingApp = ""
	w := NewSliceWriter()
	err := info.Write(w)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
