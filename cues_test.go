package webm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCuePointWriteMatchesPredictedSize(t *testing.T) {
	cp := &CuePoint{Time: 10, Track: 1, ClusterPosition: 200, BlockNumber: 3}
	w := NewSliceWriter()
	require.NoError(t, cp.Write(w))
	assert.Equal(t, cp.Size(), w.Len())

	elems, err := readTestElements(w.Bytes())
	require.NoError(t, err)
	require.Len(t, elems, 1)
	children, err := readTestElements(elems[0].payload)
	require.NoError(t, err)
	tp, ok := findTestElement(children, idCueTrackPositions)
	require.True(t, ok)
	tpChildren, err := readTestElements(tp.payload)
	require.NoError(t, err)
	blockNum, ok := findTestElement(tpChildren, idCueBlockNumber)
	require.True(t, ok)
	assert.Equal(t, uint64(3), readTestUint(blockNum.payload))
}

func TestCuePointOmitsBlockNumberWhenOne(t *testing.T) {
	cp := &CuePoint{Time: 0, Track: 1, ClusterPosition: 50, BlockNumber: 1}
	w := NewSliceWriter()
	require.NoError(t, cp.Write(w))
	elems, err := readTestElements(w.Bytes())
	require.NoError(t, err)
	children, err := readTestElements(elems[0].payload)
	require.NoError(t, err)
	tp, ok := findTestElement(children, idCueTrackPositions)
	require.True(t, ok)
	tpChildren, err := readTestElements(tp.payload)
	require.NoError(t, err)
	_, ok = findTestElement(tpChildren, idCueBlockNumber)
	assert.False(t, ok)
}

func TestCuePointRejectsZeroTrackOrPosition(t *testing.T) {
	w := NewSliceWriter()
	err := (&CuePoint{Time: 0, Track: 0, ClusterPosition: 10}).Write(w)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	err = (&CuePoint{Time: 0, Track: 1, ClusterPosition: 0}).Write(w)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCuesWriteIsNoopWhenEmpty(t *testing.T) {
	var cues Cues
	w := NewSliceWriter()
	require.NoError(t, cues.Write(w))
	assert.Equal(t, 0, w.Len())
}

func TestCuesWritesAllPointsInOrder(t *testing.T) {
	var cues Cues
	cues.Add(&CuePoint{Time: 0, Track: 1, ClusterPosition: 10, BlockNumber: 1})
	cues.Add(&CuePoint{Time: 1000, Track: 1, ClusterPosition: 9000, BlockNumber: 1})
	assert.Equal(t, 2, cues.Count())

	w := NewSliceWriter()
	require.NoError(t, cues.Write(w))

	elems, err := readTestElements(w.Bytes())
	require.NoError(t, err)
	require.Len(t, elems, 1)
	points, err := readTestElements(elems[0].payload)
	require.NoError(t, err)
	require.Len(t, points, 2)
	for _, p := range points {
		assert.Equal(t, idCuePoint, p.id)
	}
}
