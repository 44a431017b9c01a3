package ccg

import (
	"sync"
)

// Constituent is an entry of the chart: a category proven over a span. A leaf
// has no rule and holds the word it comes from. Other constituents point to
// the one (unary rule) or two (binary rule) constituents they were built from.
// Children may be shared by several parents.
type Constituent struct {
	Category Category

	// Word and Position of a leaf
	Word     string
	Position int

	// Rule that produced this constituent, nil for leaves
	Rule *Rule

	// Backpointers. Right is nil for constituents produced by unary rules
	Left  *Constituent
	Right *Constituent
}

// IsLeaf reports whether c comes directly from the lexicon
func (c *Constituent) IsLeaf() bool {
	return c.Rule == nil
}

// Raised reports whether c was produced by a unary rule
func (c *Constituent) Raised() bool {
	return c.Rule != nil && c.Rule.Arity() == 1
}

// Children returns the backpointers of c
func (c *Constituent) Children() []*Constituent {
	switch {
	case c.Left == nil:
		return nil
	case c.Right == nil:
		return []*Constituent{c.Left}
	}
	return []*Constituent{c.Left, c.Right}
}

// String returns the category of c, followed by the word for leaves
func (c *Constituent) String() string {
	if c.IsLeaf() {
		return c.Category.String() + ":" + c.Word
	}
	return c.Category.String()
}

// constituentPool allocates constituents in batches. All constituents of a
// chart live in its pool
const _PoolBatchSize = 1024

type constituentPool struct {
	mu     sync.Mutex
	nodes  [][]Constituent
	row    int
	column int
}

// newConstituentPool creates a new instance of constituentPool
func newConstituentPool() *constituentPool {
	return &constituentPool{
		nodes: [][]Constituent{make([]Constituent, _PoolBatchSize)},
	}
}

// Get allocates a new Constituent from pool
func (pool *constituentPool) Get() *Constituent {
	pool.mu.Lock()
	defer pool.mu.Unlock()

	node := &pool.nodes[pool.row][pool.column]
	pool.column++
	if pool.column >= _PoolBatchSize {
		pool.nodes = append(pool.nodes, make([]Constituent, _PoolBatchSize))
		pool.row++
		pool.column = 0
	}
	return node
}

// Len returns the number of constituents allocated from pool
func (pool *constituentPool) Len() int {
	pool.mu.Lock()
	defer pool.mu.Unlock()
	return pool.row*_PoolBatchSize + pool.column
}

// newLeaf creates a leaf constituent
func (pool *constituentPool) newLeaf(category Category, word string, position int) *Constituent {
	node := pool.Get()
	node.Category = category
	node.Word = word
	node.Position = position
	return node
}

// newRaised creates a constituent from a unary rule
func (pool *constituentPool) newRaised(category Category, rule *Rule, child *Constituent) *Constituent {
	assert(rule.Arity() == 1, "newRaised: not a unary rule")
	node := pool.Get()
	node.Category = category
	node.Rule = rule
	node.Left = child
	return node
}

// newCombined creates a constituent from a binary rule
func (pool *constituentPool) newCombined(category Category, rule *Rule, left, right *Constituent) *Constituent {
	assert(rule.Arity() == 2, "newCombined: not a binary rule")
	node := pool.Get()
	node.Category = category
	node.Rule = rule
	node.Left = left
	node.Right = right
	return node
}
