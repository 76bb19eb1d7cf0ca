package rng

import (
	"crypto/sha256"
	"encoding/binary"
	"math"
	"math/rand"

	"github.com/mathcrusader/vargen/pkg/mverrors"
)

// MinSeedLength is the minimum number of caller-supplied entropy bytes an
// Engine requires. Shorter seeds are rejected with InvalidArgument.
//
// Pinned at 16 bytes of caller seed. The internal version tag (see
// versionTag below) is hashed in separately and does not count toward
// this minimum.
const MinSeedLength = 16

// versionTag is folded into every seed derivation so that a future change
// to how Engine derives its internal state does not silently reproduce
// the same sequence under a different meaning.
const versionTag = "vargen-rng-v1"

// Engine is a seeded deterministic pseudo-random integer source. It is
// not safe for concurrent use; the engine is single-threaded per the
// module's concurrency model.
type Engine struct {
	seed   int64
	source *rand.Rand
}

// NewEngine derives an Engine from seed. seed must contain at least
// MinSeedLength bytes of entropy.
func NewEngine(seed []byte) (*Engine, error) {
	if len(seed) < MinSeedLength {
		return nil, &mverrors.InvalidArgument{Message: "seed must be at least 16 bytes"}
	}

	h := sha256.New()
	h.Write([]byte(versionTag))
	h.Write(seed)
	digest := h.Sum(nil)
	derived := int64(binary.BigEndian.Uint64(digest[:8]))

	return &Engine{
		seed:   derived,
		source: rand.New(rand.NewSource(derived)),
	}, nil
}

// Seed returns the derived internal seed, useful for debugging which
// sequence an Engine is running.
func (e *Engine) Seed() int64 {
	return e.seed
}

// Int returns a pseudo-random integer in [0, n). It requires n >= 1.
func (e *Engine) Int(n int64) (int64, error) {
	if n < 1 {
		return 0, &mverrors.InvalidArgument{Message: "Int: n must be >= 1"}
	}
	return e.source.Int63n(n), nil
}

// IntRange returns a pseudo-random integer in [lo, hi] inclusive. It
// requires lo <= hi.
func (e *Engine) IntRange(lo, hi int64) (int64, error) {
	if lo > hi {
		return 0, &mverrors.InvalidArgument{Message: "IntRange: lo must be <= hi"}
	}
	if lo == hi {
		return lo, nil
	}
	// The two's-complement difference gives the exact width even when
	// lo and hi straddle zero and hi-lo would overflow int64.
	span := uint64(hi) - uint64(lo)
	if span >= math.MaxInt64 {
		// Range wider than Int can draw. Rejection sample full 64-bit
		// values; acceptance probability is at least 1/2.
		for {
			v := int64(e.source.Uint64())
			if v >= lo && v <= hi {
				return v, nil
			}
		}
	}
	n, err := e.Int(int64(span) + 1)
	if err != nil {
		return 0, err
	}
	return lo + n, nil
}

// Shuffle pseudo-randomizes the order of n elements using swap.
// Deterministic given the Engine's seed and prior draws.
func (e *Engine) Shuffle(n int, swap func(i, j int)) {
	e.source.Shuffle(n, swap)
}
