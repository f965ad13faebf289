package difficulty

import (
	"fmt"
	"sync"

	"github.com/abhisek/bounce/internal/skilldef"
)

// Cache memoizes per-skill difficulty scores by structural key.
// Implementations must be safe for concurrent use.
type Cache interface {
	Get(key string) (float64, bool)
	Put(key string, score float64)
	Reset()
	Len() int
}

// MemoryCache is an unbounded, never-evicting Cache. Skill definitions are
// immutable once loaded, so entries never go stale.
type MemoryCache struct {
	mu     sync.RWMutex
	scores map[string]float64
}

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{scores: make(map[string]float64)}
}

func (c *MemoryCache) Get(key string) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.scores[key]
	return v, ok
}

func (c *MemoryCache) Put(key string, score float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scores[key] = score
}

// Reset drops every cached score.
func (c *MemoryCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.scores)
}

func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.scores)
}

// cacheKey derives the structural key from everything the score depends on.
func cacheKey(s skilldef.SkillDefinition) string {
	return fmt.Sprintf("%s|%s|%g|%v|%t", s.Name, s.Position, s.Flips, s.Twists, s.IsBackSkill)
}
