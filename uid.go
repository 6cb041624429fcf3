package webm

import (
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"
)

// driverVersion identifies this library in SegmentInfo's muxing-app and
// writing-app strings.
const driverVersion = "tetsuo/webm-1.0.0"

var (
	uidOnce sync.Once
	uidRand *rand.Rand
)

// initUIDRand seeds the package-local PRNG once per process, from a
// freshly generated UUID rather than a wall-clock seed, so two
// processes started in the same instant still diverge.
func initUIDRand() {
	u := uuid.New()
	var seed [32]byte
	copy(seed[:16], u[:])
	copy(seed[16:], u[:])
	uidRand = rand.New(rand.NewChaCha8(seed))
}

// MakeUID returns a fresh 56-bit track UID with its top byte forced to
// zero. The top byte is kept zero so the value can never collide with
// an EBML var-int length-marker byte pattern when later re-encoded.
// Track.UID is normally populated by AddVideoTrack/AddAudioTrack, but
// MakeUID is exported for callers assembling a Track by hand.
func MakeUID() uint64 {
	uidOnce.Do(initUIDRand)
	var uid uint64
	for i := 0; i < 7; i++ {
		uid <<= 8
		n := uidRand.IntN(1<<12) >> 4
		uid |= uint64(n) & 0xFF
	}
	return uid
}
