package render

import (
	"container/list"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/glamour"
)

// maxCachedOutputs bounds the rendered-message cache. A redraw of the
// transcript hits every visible message, so this covers long sessions.
const maxCachedOutputs = 512

// rendererPool hands out glamour renderers per option set.
// glamour.TermRenderer is not safe for concurrent Render calls, so
// renderers are pooled rather than shared.
type rendererPool struct {
	mu    sync.RWMutex
	pools map[Options]*sync.Pool
}

var globalPool = &rendererPool{
	pools: make(map[Options]*sync.Pool),
}

func (p *rendererPool) getPool(opts Options) *sync.Pool {
	p.mu.RLock()
	pool, ok := p.pools[opts]
	p.mu.RUnlock()
	if ok {
		return pool
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if pool, ok := p.pools[opts]; ok {
		return pool
	}

	pool = &sync.Pool{
		New: func() any {
			renderer, err := createRenderer(opts)
			if err != nil {
				return nil
			}
			return renderer
		},
	}
	p.pools[opts] = pool
	return pool
}

func (p *rendererPool) get(opts Options) (*glamour.TermRenderer, error) {
	if r, ok := p.getPool(opts).Get().(*glamour.TermRenderer); ok && r != nil {
		return r, nil
	}
	// New failed; surface the error
	return createRenderer(opts)
}

func (p *rendererPool) put(opts Options, renderer *glamour.TermRenderer) {
	if renderer == nil {
		return
	}
	p.getPool(opts).Put(renderer)
}

// createRenderer builds a TermRenderer for opts
func createRenderer(opts Options) (*glamour.TermRenderer, error) {
	style := ResolveStyle(opts.Style, "")

	rendererOpts := []glamour.TermRendererOption{
		glamour.WithWordWrap(opts.Width),
		glamour.WithTableWrap(opts.TableWrap),
		glamour.WithInlineTableLinks(opts.InlineTableLinks),
	}

	if IsBuiltinStyle(style) {
		rendererOpts = append(rendererOpts, glamour.WithStandardStyle(style))
	} else {
		rendererOpts = append(rendererOpts, glamour.WithStylePath(style))
	}

	if opts.EnableEmoji {
		rendererOpts = append(rendererOpts, glamour.WithEmoji())
	}

	if opts.PreserveNewLines {
		rendererOpts = append(rendererOpts, glamour.WithPreservedNewLines())
	}

	return glamour.NewTermRenderer(rendererOpts...)
}

// outputKey identifies one rendering of one message. Messages never change
// after creation, so the content hash and the options pin the output.
type outputKey struct {
	opts Options
	sum  uint64
	size int
}

type outputEntry struct {
	key outputKey
	out string
}

// outputCache is a small LRU of rendered markdown
type outputCache struct {
	mu    sync.Mutex
	max   int
	order *list.List
	items map[outputKey]*list.Element
}

func newOutputCache(max int) *outputCache {
	return &outputCache{
		max:   max,
		order: list.New(),
		items: make(map[outputKey]*list.Element),
	}
}

var globalOutputs = newOutputCache(maxCachedOutputs)

func keyFor(content string, opts Options) outputKey {
	return outputKey{opts: opts, sum: xxhash.Sum64String(content), size: len(content)}
}

func (c *outputCache) get(key outputKey) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.items[key]
	if !ok {
		return "", false
	}
	c.order.MoveToFront(el)
	return el.Value.(*outputEntry).out, true
}

func (c *outputCache) put(key outputKey, out string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		el.Value.(*outputEntry).out = out
		c.order.MoveToFront(el)
		return
	}
	c.items[key] = c.order.PushFront(&outputEntry{key: key, out: out})
	for c.order.Len() > c.max {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.items, oldest.Value.(*outputEntry).key)
	}
}

func (c *outputCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *outputCache) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.items = make(map[outputKey]*list.Element)
}

// ClearCache drops the renderer pools and the rendered output
func ClearCache() {
	globalPool.mu.Lock()
	globalPool.pools = make(map[Options]*sync.Pool)
	globalPool.mu.Unlock()
	globalOutputs.reset()
}

// CacheSize returns the number of distinct renderer configurations
func CacheSize() int {
	globalPool.mu.RLock()
	defer globalPool.mu.RUnlock()
	return len(globalPool.pools)
}

// CachedOutputs returns the number of memoized renderings
func CachedOutputs() int {
	return globalOutputs.len()
}
