// Package coin expands a seed into a deterministic stream of coin tosses.
//
// The stream is the ChaCha20 keystream keyed by the 32-byte seed, with an
// all-zero nonce and the block counter starting at zero. Every draw consumes
// keystream bytes and never rewinds, so the value of draw i depends only on
// the seed and on i.
package coin

import (
	"encoding/binary"
	"fmt"
	"math/rand/v2"

	"github.com/louisbranch/hexagram/internal/oracle/seed"
	"golang.org/x/crypto/chacha20"
)

// Toss outcomes. Three tosses sum to a line code in 6..9.
const (
	Tails = 2
	Heads = 3
)

// headsThreshold splits the uint64 range in half: draws below it are tails.
const headsThreshold = 1 << 63

var zeroNonce [chacha20.NonceSize]byte

// Generator is a single-owner keystream reader. It is not safe for concurrent
// use; each reading constructs its own.
type Generator struct {
	stream *chacha20.Cipher
	word   [8]byte
}

var _ rand.Source = (*Generator)(nil)

// New returns a Generator keyed by s.
func New(s seed.Seed) *Generator {
	stream, err := chacha20.NewUnauthenticatedCipher(s[:], zeroNonce[:])
	if err != nil {
		// Unreachable: key and nonce sizes are fixed by the types above.
		panic(fmt.Sprintf("coin: init chacha20: %v", err))
	}
	return &Generator{stream: stream}
}

// FromBytes returns a Generator keyed by b. It panics unless b is exactly
// seed.Size bytes long.
func FromBytes(b []byte) *Generator {
	if len(b) != seed.Size {
		panic(fmt.Sprintf("coin: seed must be %d bytes, got %d", seed.Size, len(b)))
	}
	var s seed.Seed
	copy(s[:], b)
	return New(s)
}

// Read fills p with the next len(p) keystream bytes.
func (g *Generator) Read(p []byte) (int, error) {
	clear(p)
	g.stream.XORKeyStream(p, p)
	return len(p), nil
}

// Uint64 returns the next eight keystream bytes as a little-endian integer.
func (g *Generator) Uint64() uint64 {
	clear(g.word[:])
	g.stream.XORKeyStream(g.word[:], g.word[:])
	return binary.LittleEndian.Uint64(g.word[:])
}

// Toss flips one fair coin, returning Tails or Heads.
func (g *Generator) Toss() int {
	if g.Uint64() < headsThreshold {
		return Tails
	}
	return Heads
}
