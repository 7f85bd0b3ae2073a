// Package query implements the client-side read cache: cached queries keyed
// by their parameters, in-flight request sharing, mutations that invalidate
// keys, and the draft/applied filter pair used by every filterable view.
package query

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/singleflight"
)

// Fetcher loads the value of one query from the backend.
type Fetcher func(ctx context.Context) (interface{}, error)

// Snapshot is the state of one cache entry at a point in time.
type Snapshot struct {
	Key       Key
	Data      interface{}
	HasData   bool
	Err       error
	UpdatedAt time.Time
	Stale     bool
}

// Options configures a Cache.
type Options struct {
	// StaleTime is how long data stays fresh after a fetch. Zero means data
	// stays fresh until it is invalidated.
	StaleTime time.Duration
	// Retries is the number of extra attempts after a failed query fetch.
	Retries   uint64
	RetryBase time.Duration
	RetryMax  time.Duration
	// RetryIf decides whether an error is worth retrying. Nil retries everything.
	RetryIf func(error) bool
	Now     func() time.Time
}

// DefaultOptions mirrors the usual data-fetching defaults: three retries with
// exponential backoff starting at one second, capped at thirty.
func DefaultOptions() Options {
	return Options{
		Retries:   3,
		RetryBase: time.Second,
		RetryMax:  30 * time.Second,
	}
}

type entry struct {
	key         Key
	data        interface{}
	hasData     bool
	err         error
	updatedAt   time.Time
	stale       bool
	generation  uint64
	storedGen   uint64
	fetcher     Fetcher
	subscribers map[uint64]func(Snapshot)
}

func (e *entry) snapshot() Snapshot {
	return Snapshot{
		Key:       e.key,
		Data:      e.data,
		HasData:   e.hasData,
		Err:       e.err,
		UpdatedAt: e.updatedAt,
		Stale:     e.stale,
	}
}

// Cache maps canonical query keys to their last result. It is safe for
// concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	flights singleflight.Group
	opts    Options
	nextSub uint64
}

// New creates an empty cache.
func New(opts Options) *Cache {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.RetryBase <= 0 {
		opts.RetryBase = time.Second
	}
	return &Cache{
		entries: make(map[string]*entry),
		opts:    opts,
	}
}

func (c *Cache) entryLocked(key Key) (string, *entry) {
	id := key.String()
	e, ok := c.entries[id]
	if !ok {
		e = &entry{key: append(Key(nil), key...), subscribers: make(map[uint64]func(Snapshot))}
		c.entries[id] = e
	}
	return id, e
}

func (c *Cache) freshLocked(e *entry) bool {
	if !e.hasData || e.stale || e.err != nil {
		return false
	}
	if c.opts.StaleTime > 0 && c.opts.Now().Sub(e.updatedAt) > c.opts.StaleTime {
		return false
	}
	return true
}

// Fetch returns the cached value for key when it is fresh, and otherwise
// loads it with fetch. Concurrent calls for the same key share one request.
func (c *Cache) Fetch(ctx context.Context, key Key, fetch Fetcher) (interface{}, error) {
	c.mu.Lock()
	id, e := c.entryLocked(key)
	e.fetcher = fetch
	if c.freshLocked(e) {
		data := e.data
		c.mu.Unlock()
		return data, nil
	}
	c.mu.Unlock()

	return c.load(ctx, id, e)
}

// load runs the entry's fetcher once per (key, generation). A fetch that
// started before an invalidation never marks the entry fresh, and never
// overwrites data stored by a newer fetch.
func (c *Cache) load(ctx context.Context, id string, e *entry) (interface{}, error) {
	c.mu.Lock()
	gen := e.generation
	fetch := e.fetcher
	c.mu.Unlock()

	if fetch == nil {
		return nil, fmt.Errorf("query %s has no fetcher", id)
	}

	v, err, _ := c.flights.Do(fmt.Sprintf("%s#%d", id, gen), func() (interface{}, error) {
		value, err := c.fetchWithRetry(ctx, fetch)
		snap, subs := c.store(e, gen, value, err)
		for _, fn := range subs {
			fn(snap)
		}
		return value, err
	})
	return v, err
}

func (c *Cache) store(e *entry, gen uint64, value interface{}, err error) (Snapshot, []func(Snapshot)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen < e.storedGen {
		return e.snapshot(), nil
	}
	e.storedGen = gen
	if err != nil {
		e.err = err
	} else {
		e.data = value
		e.hasData = true
		e.err = nil
		e.updatedAt = c.opts.Now()
		if gen == e.generation {
			e.stale = false
		}
	}

	subs := make([]func(Snapshot), 0, len(e.subscribers))
	for _, fn := range e.subscribers {
		subs = append(subs, fn)
	}
	return e.snapshot(), subs
}

func (c *Cache) fetchWithRetry(ctx context.Context, fetch Fetcher) (interface{}, error) {
	if c.opts.Retries == 0 {
		return fetch(ctx)
	}

	b := retry.NewExponential(c.opts.RetryBase)
	b = retry.WithMaxRetries(c.opts.Retries, b)
	if c.opts.RetryMax > 0 {
		b = retry.WithCappedDuration(c.opts.RetryMax, b)
	}

	var result interface{}
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		v, err := fetch(ctx)
		if err != nil {
			if c.opts.RetryIf == nil || c.opts.RetryIf(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		result = v
		return nil
	})
	return result, err
}

// Invalidate marks every entry whose key starts with prefix as stale and
// refetches the active ones (entries with subscribers) before returning.
// It returns the number of matched entries.
func (c *Cache) Invalidate(ctx context.Context, prefix Key) int {
	type target struct {
		id string
		e  *entry
	}

	c.mu.Lock()
	matched := 0
	var active []target
	for id, e := range c.entries {
		if !e.key.HasPrefix(prefix) {
			continue
		}
		matched++
		e.stale = true
		e.generation++
		if len(e.subscribers) > 0 && e.fetcher != nil {
			active = append(active, target{id: id, e: e})
		}
	}
	c.mu.Unlock()

	for _, t := range active {
		// Os erros chegam aos assinantes pelo Snapshot.
		_, _ = c.load(ctx, t.id, t.e)
	}
	return matched
}

// Subscribe registers fn to receive a Snapshot after every fetch of key.
// The returned function removes the subscription.
func (c *Cache) Subscribe(key Key, fn func(Snapshot)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, e := c.entryLocked(key)
	c.nextSub++
	id := c.nextSub
	e.subscribers[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(e.subscribers, id)
	}
}

// Peek returns the entry for key without fetching.
func (c *Cache) Peek(key Key) (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key.String()]
	if !ok {
		return Snapshot{}, false
	}
	return e.snapshot(), true
}

// Remove drops every entry whose key starts with prefix.
func (c *Cache) Remove(prefix Key) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for id, e := range c.entries {
		if e.key.HasPrefix(prefix) {
			delete(c.entries, id)
			removed++
		}
	}
	return removed
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
}

// Len returns the number of entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Get is the typed form of Cache.Fetch.
func Get[T any](ctx context.Context, c *Cache, key Key, fetch func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	v, err := c.Fetch(ctx, key, func(ctx context.Context) (interface{}, error) {
		return fetch(ctx)
	})
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("query %s holds %T, want %T", key, v, zero)
	}
	return t, nil
}
