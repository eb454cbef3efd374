package natsbridge

import (
	rand "math/rand/v2"
	"time"
)

const recreateBackoffMultiplier = 1.6

// jitterBackoff computes the pause before the next iterator recreation.
//
// A missed heartbeat usually means the server (or the route to it) is
// struggling; rebuilding the iterator in a tight loop piles pull requests
// onto a broker that is trying to recover. Successive recreations therefore
// grow the previous delay by mult and land on a random point between base
// and that grown value ("Full Jitter",
// https://aws.amazon.com/blogs/architecture/exponential-backoff-and-jitter/),
// never exceeding capDur. The randomness also keeps many subscriptions that
// lost the same server from recreating in lockstep.
//
// prev <= 0 starts the sequence at base. A mult below 1 cannot shrink the
// delay. A capDur at or below base pins every delay to capDur.
//
// rng may be nil, in which case the shared package PRNG is used; tests pass
// a seeded rng for reproducible sequences.
func jitterBackoff(prev, base time.Duration, mult float64, capDur time.Duration, rng *rand.Rand) time.Duration {
	if base <= 0 {
		base = 50 * time.Millisecond
	}
	if mult < 1.0 {
		mult = 1.0
	}
	if capDur > 0 && capDur < base {
		return capDur
	}

	if prev <= 0 {
		if capDur > 0 && base > capDur {
			return capDur
		}

		return base
	}

	span := time.Duration(float64(prev)*mult) - base
	if span <= 0 {
		span = base
	}
	var jitter int64
	if rng != nil {
		jitter = rng.Int64N(int64(span))
	} else {
		jitter = rand.Int64N(int64(span)) //nolint:gosec // non-crypto recreation jitter
	}

	next := base + time.Duration(jitter)
	if capDur > 0 && next > capDur {
		return capDur
	}

	return next
}

// newBackoffRNG returns a seeded RNG for deterministic delay sequences in
// tests, or nil for seed == 0 so production callers fall through to the
// package-level PRNG.
//
//nolint:gosec
func newBackoffRNG(seed int64) *rand.Rand {
	if seed == 0 {
		return nil
	}
	s1 := uint64(seed)
	s2 := s1 ^ 0x9e3779b97f4a7c15

	return rand.New(rand.NewPCG(s1, s2))
}
