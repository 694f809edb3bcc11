package remote

import (
	"context"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"payarakit/internal/logx"
)

// DefaultNamespaceEntries bounds how many subscriptions keep their namespace
// listing cached.
const DefaultNamespaceEntries = 64

// sharedFetchTimeout bounds a fetch that outlives the caller that started it.
var sharedFetchTimeout = 30 * time.Second

// Result is delivered by the asynchronous fetch methods.
type Result struct {
	Links []Link
	Err   error
}

// Cache memoizes subscription and namespace listings for the life of the
// process. Concurrent requests for the same key share one fetch. A failed
// fetch leaves the cache untouched.
type Cache struct {
	source Source
	logger logrus.FieldLogger
	group  singleflight.Group

	mu            sync.Mutex
	subscriptions []Link
	loaded        bool
	namespaces    *lru.Cache
}

// NewCache wraps source. size bounds the namespace entries; values below one
// use DefaultNamespaceEntries.
func NewCache(source Source, size int, logger logrus.FieldLogger) (*Cache, error) {
	if size < 1 {
		size = DefaultNamespaceEntries
	}
	namespaces, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("create namespace cache: %w", err)
	}
	return &Cache{source: source, logger: logx.OrDiscard(logger), namespaces: namespaces}, nil
}

// Subscriptions returns the cached subscription list, fetching it once.
func (c *Cache) Subscriptions(ctx context.Context) ([]Link, error) {
	c.mu.Lock()
	if c.loaded {
		links := clone(c.subscriptions)
		c.mu.Unlock()
		return links, nil
	}
	c.mu.Unlock()

	v, err := c.share(ctx, "subscriptions", func(ctx context.Context) (interface{}, error) {
		c.mu.Lock()
		if c.loaded {
			links := c.subscriptions
			c.mu.Unlock()
			return links, nil
		}
		c.mu.Unlock()

		links, err := c.source.Subscriptions(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.subscriptions = clone(links)
		c.loaded = true
		c.mu.Unlock()
		return links, nil
	})
	if err != nil {
		c.logger.Warnf("list subscriptions: %v", err)
		return nil, &FetchError{What: "subscriptions", Err: err}
	}
	return clone(v.([]Link)), nil
}

// Namespaces returns the namespaces of subscription, fetching them once per
// subscription. A blank or loading subscription yields no namespaces.
func (c *Cache) Namespaces(ctx context.Context, subscription string) ([]Link, error) {
	if !Selectable(subscription) {
		return nil, nil
	}
	if v, ok := c.namespaces.Get(subscription); ok {
		return clone(v.([]Link)), nil
	}

	v, err := c.share(ctx, "namespaces/"+subscription, func(ctx context.Context) (interface{}, error) {
		if v, ok := c.namespaces.Get(subscription); ok {
			return v, nil
		}
		links, err := c.source.Namespaces(ctx, subscription)
		if err != nil {
			return nil, err
		}
		c.namespaces.Add(subscription, clone(links))
		return links, nil
	})
	if err != nil {
		c.logger.Warnf("list namespaces of %s: %v", subscription, err)
		return nil, &FetchError{What: "namespaces of " + subscription, Err: err}
	}
	return clone(v.([]Link)), nil
}

// share runs fetch once per key across concurrent callers. The fetch is
// detached from any single caller's cancellation and bounded by
// sharedFetchTimeout; each caller stops waiting when its own ctx is done.
func (c *Cache) share(ctx context.Context, key string, fetch func(context.Context) (interface{}, error)) (interface{}, error) {
	ch := c.group.DoChan(key, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedFetchTimeout)
		defer cancel()
		return fetch(fetchCtx)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.Val, res.Err
	}
}

// FetchSubscriptions runs Subscriptions in the background. The channel
// receives exactly one Result.
func (c *Cache) FetchSubscriptions(ctx context.Context) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		links, err := c.Subscriptions(ctx)
		out <- Result{Links: links, Err: err}
	}()
	return out
}

// FetchNamespaces runs Namespaces in the background. The channel receives
// exactly one Result.
func (c *Cache) FetchNamespaces(ctx context.Context, subscription string) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		links, err := c.Namespaces(ctx, subscription)
		out <- Result{Links: links, Err: err}
	}()
	return out
}

// Refresh forgets every cached listing.
func (c *Cache) Refresh() {
	c.mu.Lock()
	c.subscriptions = nil
	c.loaded = false
	c.mu.Unlock()
	c.namespaces.Purge()
}

func clone(links []Link) []Link {
	if links == nil {
		return nil
	}
	out := make([]Link, len(links))
	copy(out, links)
	return out
}
