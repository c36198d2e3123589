package sieve

// Counters is a binary indexed tree over the positions of a BitSieve.
// After Init, and provided every Unset on the sieve is paired with an
// Update here, Query(i) equals the number of set positions in [0, i].
type Counters struct {
	tree []int32
}

// NewCounters allocates counters for sieves up to the given size.
func NewCounters(size int64) *Counters {
	return &Counters{tree: make([]int32, size+1)}
}

// Init rebuilds the tree from the sieve's current contents in O(n).
func (c *Counters) Init(s *BitSieve) {
	n := int64(len(c.tree)) - 1
	for i := int64(1); i <= n; i++ {
		c.tree[i] = 0
	}
	for i := int64(1); i <= n; i++ {
		if s.Bit(i - 1) {
			c.tree[i]++
		}
		if j := i + i&(-i); j <= n {
			c.tree[j] += c.tree[i]
		}
	}
}

// Query returns the number of set positions in [0, i].
func (c *Counters) Query(i int64) int64 {
	var sum int64
	for j := i + 1; j > 0; j -= j & (-j) {
		sum += int64(c.tree[j])
	}
	return sum
}

// Update records that position i was cleared.
func (c *Counters) Update(i int64) {
	n := int64(len(c.tree)) - 1
	for j := i + 1; j <= n; j += j & (-j) {
		c.tree[j]--
	}
}
