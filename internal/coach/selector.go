package coach

import "time"

// Pool size cap shared by all selectors.
const poolMax = 500

// Day periods used as coarse time buckets in selection seeds.
const (
	periodMorning   = "morning"
	periodAfternoon = "afternoon"
	periodEvening   = "evening"
)

func dayPeriod(now time.Time) string {
	switch hour := now.Hour(); {
	case hour < 12:
		return periodMorning
	case hour < 18:
		return periodAfternoon
	default:
		return periodEvening
	}
}

// IndexStore remembers the last pool index each selector served, so a repeat
// view never shows the same phrase twice in a row. Implementations must be
// safe for concurrent use.
type IndexStore interface {
	LastIndex(key string) (int, bool)
	SetLastIndex(key string, index int)
}

// hashSeed is a polynomial rolling hash with 32-bit wraparound, matched to
// the product's established seed values so a given identity keeps reproducing
// the same phrase within a time bucket.
func hashSeed(value string) int {
	var hash int32
	for _, r := range value {
		hash = (hash << 5) - hash + int32(r)
	}
	// Negation alone would leave math.MinInt32 negative.
	return int(hash & 0x7fffffff)
}

func pick(items []string, seed int) string {
	return items[seed%len(items)]
}

// selector deterministically maps a seed onto a phrase pool. The pool is the
// cartesian product of its vocabularies capped at poolMax; offset is an odd
// per-selector step used to sidestep a collision with the previously served
// index.
type selector struct {
	pool   []string
	offset int
}

func newSelector(offset int, vocabs ...[]string) *selector {
	return &selector{
		pool:   buildPool(poolMax, vocabs...),
		offset: offset,
	}
}

// buildPool joins one entry from each vocabulary with spaces, in
// lexicographic index order, truncated at cap entries.
func buildPool(capSize int, vocabs ...[]string) []string {
	pool := []string{""}
	for _, vocab := range vocabs {
		next := make([]string, 0, len(pool)*len(vocab))
		for _, prefix := range pool {
			for _, part := range vocab {
				if prefix == "" {
					next = append(next, part)
				} else {
					next = append(next, prefix+" "+part)
				}
			}
		}
		pool = next
	}
	if len(pool) > capSize {
		pool = pool[:capSize]
	}
	return pool
}

// choose resolves the seed to a pool entry, perturbing away from the last
// index served under key when they collide, and records the chosen index.
func (s *selector) choose(store IndexStore, key string, seed int) (string, int) {
	index := seed % len(s.pool)
	if last, ok := store.LastIndex(key); ok && last == index {
		index = (index + s.offset) % len(s.pool)
	}
	store.SetLastIndex(key, index)
	return s.pool[index], index
}
