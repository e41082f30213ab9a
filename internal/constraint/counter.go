package constraint

// Counter is a reference-counted multiset.
type Counter[K comparable] struct {
	counts map[K]int
}

// NewCounter returns an empty multiset.
func NewCounter[K comparable]() *Counter[K] {
	return &Counter[K]{counts: make(map[K]int)}
}

// Add inserts one occurrence of k and reports whether k was absent before.
func (c *Counter[K]) Add(k K) bool {
	c.counts[k]++
	return c.counts[k] == 1
}

// Remove drops one occurrence of k and reports whether it was the last.
// Removing an absent key is a no-op.
func (c *Counter[K]) Remove(k K) bool {
	n, ok := c.counts[k]
	if !ok {
		return false
	}
	if n == 1 {
		delete(c.counts, k)
		return true
	}
	c.counts[k] = n - 1
	return false
}

// Count returns the occurrences of k.
func (c *Counter[K]) Count(k K) int { return c.counts[k] }

// Unique returns the number of distinct keys present.
func (c *Counter[K]) Unique() int { return len(c.counts) }
