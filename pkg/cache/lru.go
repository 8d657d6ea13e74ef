package cache

import (
	"container/list"
	"sync"

	"github.com/c360/ontograph/errors"
)

type entry[V any] struct {
	key   string
	value V
}

// lruCache keeps entries in recency order, most recent at the front. A limit of zero
// never evicts, which is the simple strategy.
type lruCache[V any] struct {
	mu      sync.Mutex
	limit   int
	index   map[string]*list.Element
	recency *list.List
	obs     *observer
	onEvict EvictCallback[V]
}

func newLRUCache[V any](limit int, s settings[V]) (*lruCache[V], error) {
	obs, err := newObserver(s.registry, s.name)
	if err != nil {
		return nil, errors.Wrap(err, "cache", "new", "register metrics for "+s.name)
	}
	return &lruCache[V]{
		limit:   limit,
		index:   make(map[string]*list.Element),
		recency: list.New(),
		obs:     obs,
		onEvict: s.onEvict,
	}, nil
}

func (c *lruCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.index[key]
	if !ok {
		c.obs.record(opMiss)
		var zero V
		return zero, false
	}
	c.recency.MoveToFront(el)
	c.obs.record(opHit)
	return el.Value.(*entry[V]).value, true
}

func (c *lruCache[V]) Set(key string, value V) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}

	c.mu.Lock()
	var dropped []*entry[V]
	el, exists := c.index[key]
	if exists {
		el.Value.(*entry[V]).value = value
		c.recency.MoveToFront(el)
	} else {
		c.index[key] = c.recency.PushFront(&entry[V]{key: key, value: value})
		for c.limit > 0 && len(c.index) > c.limit {
			dropped = append(dropped, c.unlink(c.recency.Back()))
			c.obs.record(opEvict)
		}
	}
	c.obs.record(opSet)
	c.obs.resize(len(c.index))
	c.mu.Unlock()

	c.notify(dropped)
	return !exists, nil
}

func (c *lruCache[V]) Delete(key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}

	c.mu.Lock()
	el, ok := c.index[key]
	if !ok {
		c.mu.Unlock()
		return false, nil
	}
	dropped := c.unlink(el)
	c.obs.record(opDelete)
	c.obs.resize(len(c.index))
	c.mu.Unlock()

	c.notify([]*entry[V]{dropped})
	return true, nil
}

func (c *lruCache[V]) Clear() error {
	c.mu.Lock()
	var dropped []*entry[V]
	if c.onEvict != nil {
		dropped = make([]*entry[V], 0, len(c.index))
		for el := c.recency.Back(); el != nil; el = el.Prev() {
			dropped = append(dropped, el.Value.(*entry[V]))
		}
	}
	c.index = make(map[string]*list.Element)
	c.recency.Init()
	c.obs.resize(0)
	c.mu.Unlock()

	c.notify(dropped)
	return nil
}

func (c *lruCache[V]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.index)
}

// Keys lists keys from most to least recently used
func (c *lruCache[V]) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, len(c.index))
	for el := c.recency.Front(); el != nil; el = el.Next() {
		keys = append(keys, el.Value.(*entry[V]).key)
	}
	return keys
}

func (c *lruCache[V]) Stats() *Statistics { return c.obs.stats }

func (c *lruCache[V]) Close() error { return nil }

// unlink removes el from both structures; the caller holds mu
func (c *lruCache[V]) unlink(el *list.Element) *entry[V] {
	e := c.recency.Remove(el).(*entry[V])
	delete(c.index, e.key)
	return e
}

// notify runs the eviction callback after mu is released so it may use the cache
func (c *lruCache[V]) notify(dropped []*entry[V]) {
	if c.onEvict == nil {
		return
	}
	for _, e := range dropped {
		c.onEvict(e.key, e.value)
	}
}
