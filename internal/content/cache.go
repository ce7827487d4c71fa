// Package content fetches and caches page fragments. A key that fetches
// successfully is cached for the life of the process; a failed fetch is
// never cached, so the next request retries. Concurrent requests for one
// uncached key share a single fetch.
package content

import (
	"context"
	"fmt"
	"io/fs"
	"sync"
)

// Fetcher retrieves the raw fragment for a key.
type Fetcher interface {
	Fetch(ctx context.Context, key string) (string, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, key string) (string, error)

func (f FetcherFunc) Fetch(ctx context.Context, key string) (string, error) {
	return f(ctx, key)
}

// DirFetcher serves fragments from a filesystem tree.
type DirFetcher struct {
	FS fs.FS
}

func (d DirFetcher) Fetch(_ context.Context, key string) (string, error) {
	raw, err := fs.ReadFile(d.FS, key)
	if err != nil {
		return "", fmt.Errorf("loading fragment %s: %w", key, err)
	}
	return string(raw), nil
}

type call struct {
	done chan struct{}
	html string
	err  error
}

// Cache memoises successful fetches by key.
type Cache struct {
	fetcher Fetcher

	mu       sync.Mutex
	entries  map[string]string
	inflight map[string]*call
}

// NewCache wraps a fetcher in a memoising cache.
func NewCache(f Fetcher) *Cache {
	return &Cache{
		fetcher:  f,
		entries:  make(map[string]string),
		inflight: make(map[string]*call),
	}
}

// Get returns the fragment for key, fetching it at most once on the
// success path. Errors are returned to every waiter and leave the key
// uncached.
func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	if html, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return html, nil
	}
	if cl, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		select {
		case <-cl.done:
			return cl.html, cl.err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	cl := &call{done: make(chan struct{})}
	c.inflight[key] = cl
	c.mu.Unlock()

	cl.html, cl.err = c.fetcher.Fetch(ctx, key)

	c.mu.Lock()
	delete(c.inflight, key)
	if cl.err == nil {
		c.entries[key] = cl.html
	}
	c.mu.Unlock()
	close(cl.done)

	return cl.html, cl.err
}

// Len reports the number of cached fragments.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
