package main

import (
	"math/rand"
	"time"
)

// newRNG seeds a generator for production use. Tests hand the finders a
// fixed-seed generator instead, which makes every strategy deterministic.
func newRNG() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// pickOne returns one element chosen uniformly at random, or false when the
// slice is empty. Every random selection in the discovery pipelines goes
// through here.
func pickOne[T any](rng *rand.Rand, items []T) (T, bool) {
	var zero T
	if len(items) == 0 {
		return zero, false
	}
	return items[rng.Intn(len(items))], true
}

// randomDateBetween draws a uniformly random calendar date in [start, end].
func randomDateBetween(rng *rand.Rand, start, end time.Time) time.Time {
	days := int(end.Sub(start).Hours() / 24)
	if days <= 0 {
		return start
	}
	return start.AddDate(0, 0, rng.Intn(days+1))
}

func shuffledCopy(rng *rand.Rand, items []string) []string {
	out := make([]string, len(items))
	copy(out, items)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
