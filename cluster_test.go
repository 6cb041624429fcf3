package webm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClusterWriteHeaderOnFirstFrame(t *testing.T) {
	w := NewSliceWriter()
	c := newCluster(5, w)
	require.NoError(t, c.AddFrame([]byte{1, 2, 3}, 1, 0, true))
	assert.Equal(t, 1, c.BlocksAdded())

	elems, err := readTestElements(w.Bytes())
	require.NoError(t, err)
	require.Len(t, elems, 1)
	assert.Equal(t, idCluster, elems[0].id)

	children, err := readTestElements(elems[0].payload)
	require.NoError(t, err)
	tc, ok := findTestElement(children, idTimecode)
	require.True(t, ok)
	assert.Equal(t, uint64(5), readTestUint(tc.payload))

	_, ok = findTestElement(children, idSimpleBlock)
	assert.True(t, ok)
}

func TestClusterFinalizePatchesSizeOnSeekableWriter(t *testing.T) {
	w := NewSliceWriter()
	c := newCluster(0, w)
	require.NoError(t, c.AddFrame([]byte{1, 2, 3, 4}, 1, 0, true))
	require.NoError(t, c.AddFrame([]byte{5, 6}, 1, 1, false))
	require.NoError(t, c.Finalize())

	elems, err := readTestElements(w.Bytes())
	require.NoError(t, err)
	require.Len(t, elems, 1)
	assert.Equal(t, uint64(len(elems[0].payload)), c.PayloadSize())
}

func TestClusterLeavesUnknownSizeOnNonSeekableWriter(t *testing.T) {
	var buf sinkBuffer
	w := NewStreamWriter(&buf)
	c := newCluster(0, w)
	require.NoError(t, c.AddFrame([]byte{1, 2}, 1, 0, true))
	require.NoError(t, c.Finalize())

	_, _, unknown, err := readTestSize(buf.data, idWidth(idCluster))
	require.NoError(t, err)
	assert.True(t, unknown)
}

func TestClusterRejectsOutOfRangeRelativeTimecode(t *testing.T) {
	w := NewSliceWriter()
	c := newCluster(0, w)
	err := c.AddFrame([]byte{1}, 1, 40000, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestClusterFinalizeTwiceErrors(t *testing.T) {
	w := NewSliceWriter()
	c := newCluster(0, w)
	require.NoError(t, c.AddFrame([]byte{1}, 1, 0, true))
	require.NoError(t, c.Finalize())
	err := c.Finalize()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStateError)
}

// sinkBuffer is a minimal io.Writer used to exercise StreamWriter
// without pulling in bytes.Buffer's own growth semantics.
type sinkBuffer struct {
	data []byte
}

func (s *sinkBuffer) Write(p []byte) (int, error) {
	s.data = append(s.data, p...)
	return len(p), nil
}
