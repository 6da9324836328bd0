package recommend

import (
	"math/rand"

	"github.com/aurachat/aura/backend/internal/model/catalog"
)

// Selector samples catalog entries for a coarse mood bucket.
type Selector struct {
	catalog *catalog.Catalog
	rng     *rand.Rand
}

// NewSelector validates that the catalog loaded at startup. An empty catalog
// is a construction failure, never a per-request one.
func NewSelector(c *catalog.Catalog, rng *rand.Rand) (*Selector, error) {
	if c == nil || c.Len() == 0 {
		return nil, catalog.ErrEmptyCatalog
	}
	return &Selector{catalog: c, rng: rng}, nil
}

// Select returns up to count entries tagged with the given mood bucket,
// sampled uniformly without replacement. Selection intentionally varies
// between identical requests. Fewer matches than count returns the whole
// filtered set; zero matches returns an empty slice.
func (s *Selector) Select(category string, count int) []catalog.Entry {
	matches := s.catalog.ByMood(category)
	if count <= 0 || len(matches) == 0 {
		return []catalog.Entry{}
	}
	if len(matches) <= count {
		return matches
	}

	if s.rng != nil {
		s.rng.Shuffle(len(matches), func(i, j int) {
			matches[i], matches[j] = matches[j], matches[i]
		})
	} else {
		rand.Shuffle(len(matches), func(i, j int) {
			matches[i], matches[j] = matches[j], matches[i]
		})
	}
	return matches[:count]
}
