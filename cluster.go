package webm

import "fmt"

type clusterState uint8

const (
	clusterFresh clusterState = iota
	clusterHeaderWritten
	clusterFinalized
)

// Cluster buffers nothing: its header is written lazily on the first
// AddFrame call, and every subsequent frame is serialized straight to
// the underlying Writer. Only its reserved size field is ever
// revisited, by Finalize.
type Cluster struct {
	timecode     uint64
	writer       Writer
	state        clusterState
	payloadSize  uint64
	sizePosition int64
	blocksAdded  int
}

func newCluster(timecode uint64, w Writer) *Cluster {
	return &Cluster{timecode: timecode, writer: w, sizePosition: -1}
}

// Timecode returns the cluster's base timecode, in timecode-scale
// units.
func (c *Cluster) Timecode() uint64 { return c.timecode }

// PayloadSize returns the number of payload bytes written into this
// cluster so far (used by the Segment's max-cluster-size boundary
// check).
func (c *Cluster) PayloadSize() uint64 { return c.payloadSize }

// BlocksAdded returns how many SimpleBlocks this cluster holds.
func (c *Cluster) BlocksAdded() int { return c.blocksAdded }

func (c *Cluster) writeHeader() error {
	if err := writeID(c.writer, idCluster); err != nil {
		return wrapWriterErr(err)
	}
	c.sizePosition = c.writer.Position()
	if err := writeUnknownSize(c.writer); err != nil {
		return wrapWriterErr(err)
	}
	if err := WriteUintElement(c.writer, idTimecode, c.timecode); err != nil {
		return wrapWriterErr(err)
	}
	c.payloadSize += uint64(UintElementSize(idTimecode, c.timecode))
	c.state = clusterHeaderWritten
	return nil
}

// AddFrame appends one SimpleBlock. relativeTimecode is already offset
// from the cluster's own base timecode and must fit a signed 16-bit
// field.
func (c *Cluster) AddFrame(frame []byte, trackNumber uint64, relativeTimecode int64, keyframe bool) error {
	if c.state == clusterFinalized {
		return fmt.Errorf("%w: Cluster.AddFrame called after Finalize", ErrStateError)
	}
	if relativeTimecode < -32768 || relativeTimecode > 32767 {
		return fmt.Errorf("%w: relative timecode %d out of signed 16-bit range", ErrInvalidArgument, relativeTimecode)
	}
	if c.state == clusterFresh {
		if err := c.writeHeader(); err != nil {
			return err
		}
	}
	n, err := writeSimpleBlock(c.writer, trackNumber, int16(relativeTimecode), keyframe, frame)
	if err != nil {
		return wrapWriterErr(err)
	}
	c.payloadSize += n
	c.blocksAdded++
	return nil
}

// Finalize patches the cluster's reserved size field with its true
// payload size. It is a no-op on a non-seekable Writer (the reserved
// "unknown size" marker is left standing, which is itself valid EBML)
// and on a cluster that never received a frame.
func (c *Cluster) Finalize() error {
	if c.state == clusterFinalized {
		return fmt.Errorf("%w: Cluster.Finalize called twice", ErrStateError)
	}
	if c.state == clusterFresh {
		c.state = clusterFinalized
		return nil
	}
	if c.writer.Seekable() {
		if err := patchSize(c.writer, c.sizePosition, c.payloadSize); err != nil {
			return err
		}
	}
	c.state = clusterFinalized
	return nil
}
