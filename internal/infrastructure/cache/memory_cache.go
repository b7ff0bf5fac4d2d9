package cache

import (
	"container/list"
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/harborbank/servicing/internal/domain/model"
	"github.com/harborbank/servicing/internal/domain/port"
)

// DefaultCapacity bounds the in-memory cache when no capacity is configured.
const DefaultCapacity = 1024

// EvictionPolicy decides which loan to drop when the cache is full. Calls
// are made under the cache lock, so implementations need no locking of
// their own.
type EvictionPolicy interface {
	// Touch records an access so the policy can rank the key.
	Touch(key string)
	// Remove forgets the key entirely.
	Remove(key string)
	// Victim returns the next key to evict, or false when it has none.
	Victim() (string, bool)
}

// lruPolicy evicts the least recently used loan.
type lruPolicy struct {
	order    *list.List
	elements map[string]*list.Element
}

// NewLRUPolicy returns the default least-recently-used eviction policy.
func NewLRUPolicy() EvictionPolicy {
	return &lruPolicy{
		order:    list.New(),
		elements: make(map[string]*list.Element),
	}
}

func (p *lruPolicy) Touch(key string) {
	if el, ok := p.elements[key]; ok {
		p.order.MoveToFront(el)
		return
	}
	p.elements[key] = p.order.PushFront(key)
}

func (p *lruPolicy) Remove(key string) {
	if el, ok := p.elements[key]; ok {
		p.order.Remove(el)
		delete(p.elements, key)
	}
}

func (p *lruPolicy) Victim() (string, bool) {
	back := p.order.Back()
	if back == nil {
		return "", false
	}
	return back.Value.(string), true
}

type entry struct {
	fingerprint string
	schedule    model.PaymentSchedule
	version     uint64
}

// Stats is a point-in-time snapshot of cache effectiveness counters.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// MemoryScheduleCache memoizes one schedule per loan, keyed by the terms
// fingerprint. A stale fingerprint is never served: any mismatch recomputes
// and replaces the entry. Concurrent misses for the same loan and terms are
// coalesced into a single computation, and failed computations are handed to
// every coalesced caller without being cached.
type MemoryScheduleCache struct {
	mu       sync.RWMutex
	entries  map[string]*entry
	policy   EvictionPolicy
	capacity int
	group    singleflight.Group
	version  atomic.Uint64

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

var _ port.ScheduleCache = (*MemoryScheduleCache)(nil)

// NewMemoryScheduleCache creates a cache holding at most capacity loans,
// evicting per policy. Zero capacity means DefaultCapacity; a nil policy
// means LRU.
func NewMemoryScheduleCache(capacity int, policy EvictionPolicy) *MemoryScheduleCache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if policy == nil {
		policy = NewLRUPolicy()
	}
	return &MemoryScheduleCache{
		entries:  make(map[string]*entry),
		policy:   policy,
		capacity: capacity,
	}
}

// GetOrCalculate implements port.ScheduleCache.
func (c *MemoryScheduleCache) GetOrCalculate(
	ctx context.Context,
	loanID string,
	terms model.LoanTerms,
	compute port.ComputeFunc,
) (model.PaymentSchedule, bool, error) {
	if err := ctx.Err(); err != nil {
		return model.PaymentSchedule{}, false, err
	}
	fp := terms.Fingerprint()

	if s, ok := c.lookup(loanID, fp); ok {
		c.hits.Add(1)
		return s, true, nil
	}

	// Coalesce on loan+fingerprint so concurrent callers with the same terms
	// share one computation, while changed terms compute immediately instead
	// of queueing behind a stale flight. Only the caller whose closure runs
	// compute reports a miss; coalesced waiters see a cached result.
	var fresh bool
	v, err, _ := c.group.Do(loanID+"\x00"+fp, func() (any, error) {
		if s, ok := c.lookup(loanID, fp); ok {
			return s, nil
		}
		c.misses.Add(1)
		s, err := compute()
		if err != nil {
			return nil, err
		}
		fresh = true
		c.store(loanID, fp, s)
		return s, nil
	})
	if err != nil {
		return model.PaymentSchedule{}, false, err
	}
	return v.(model.PaymentSchedule), !fresh, nil
}

// Invalidate implements port.ScheduleCache.
func (c *MemoryScheduleCache) Invalidate(_ context.Context, loanID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, loanID)
	c.policy.Remove(loanID)
	return nil
}

// Stats returns the current hit, miss and eviction counts.
func (c *MemoryScheduleCache) Stats() Stats {
	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}

// Len returns the number of cached loans.
func (c *MemoryScheduleCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *MemoryScheduleCache) lookup(loanID, fingerprint string) (model.PaymentSchedule, bool) {
	c.mu.RLock()
	e, ok := c.entries[loanID]
	c.mu.RUnlock()
	if !ok || e.fingerprint != fingerprint {
		return model.PaymentSchedule{}, false
	}
	c.mu.Lock()
	c.policy.Touch(loanID)
	c.mu.Unlock()
	return e.schedule, true
}

func (c *MemoryScheduleCache) store(loanID, fingerprint string, s model.PaymentSchedule) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[loanID]; !exists && len(c.entries) >= c.capacity {
		if victim, ok := c.policy.Victim(); ok {
			delete(c.entries, victim)
			c.policy.Remove(victim)
			c.evictions.Add(1)
		}
	}
	c.entries[loanID] = &entry{
		fingerprint: fingerprint,
		schedule:    s,
		version:     c.version.Add(1),
	}
	c.policy.Touch(loanID)
}
