package glyphmap

import (
	"hash/fnv"
	"sync"
	"sync/atomic"

	"golang.org/x/image/font"

	"github.com/gogpu/textmesh"
)

// DefaultCacheCapacity is the number of atlases a Cache keeps by default.
const DefaultCacheCapacity = 4

// Cache shares rasterized atlases between callers that ask for the same
// font options on the same texture maker. When the cache grows past its
// capacity the least recently used atlas is dropped and its texture is
// released if it implements textmesh.Closer.
//
// Cache is safe for concurrent use.
type Cache struct {
	mu       sync.Mutex
	entries  map[cacheKey]*cacheEntry
	capacity int
	tick     int64

	hits   atomic.Uint64
	misses atomic.Uint64
}

type cacheKey struct {
	maker    TextureMaker
	font     uint64
	size     float64
	dpi      float64
	columns  int
	charset  string
	fallback rune
	hinting  font.Hinting
}

type cacheEntry struct {
	grid  *Grid
	atime int64
}

// NewCache returns a cache holding up to capacity atlases. A capacity
// below 1 uses DefaultCacheCapacity.
func NewCache(capacity int) *Cache {
	if capacity < 1 {
		capacity = DefaultCacheCapacity
	}
	return &Cache{
		entries:  make(map[cacheKey]*cacheEntry),
		capacity: capacity,
	}
}

func keyFor(maker TextureMaker, opts RasterOptions) cacheKey {
	var sum uint64
	if len(opts.Font) > 0 {
		h := fnv.New64a()
		_, _ = h.Write(opts.Font)
		sum = h.Sum64()
	}
	return cacheKey{
		maker:    maker,
		font:     sum,
		size:     opts.Size,
		dpi:      opts.DPI,
		columns:  opts.Columns,
		charset:  opts.Charset,
		fallback: opts.Fallback,
		hinting:  opts.Hinting,
	}
}

// Rasterize returns the cached atlas for opts or rasterizes a new one.
// maker must be comparable (pointer handles are).
func (c *Cache) Rasterize(maker TextureMaker, opts RasterOptions) (*Grid, error) {
	if maker == nil {
		return nil, ErrNilTextureMaker
	}
	key := keyFor(maker, opts)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.tick++
	if e, ok := c.entries[key]; ok {
		e.atime = c.tick
		c.hits.Add(1)
		return e.grid, nil
	}
	c.misses.Add(1)

	g, err := Rasterize(maker, opts)
	if err != nil {
		return nil, err
	}
	c.entries[key] = &cacheEntry{grid: g, atime: c.tick}
	for len(c.entries) > c.capacity {
		c.evictOldest()
	}
	return g, nil
}

// evictOldest drops the least recently used atlas. Caller holds mu.
func (c *Cache) evictOldest() {
	var (
		oldest cacheKey
		atime  int64 = -1
	)
	for k, e := range c.entries {
		if atime < 0 || e.atime < atime {
			oldest, atime = k, e.atime
		}
	}
	if atime < 0 {
		return
	}
	release(c.entries[oldest].grid)
	delete(c.entries, oldest)
	textmesh.Logger().Debug("glyphmap: atlas evicted", "size", oldest.size, "glyphs", len(oldest.charset))
}

func release(g *Grid) {
	if c, ok := g.Texture().(textmesh.Closer); ok {
		c.Close()
	}
}

// Len returns the number of cached atlases.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns the hit and miss counts.
func (c *Cache) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}

// Close releases every cached atlas texture and empties the cache.
func (c *Cache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.entries {
		release(e.grid)
		delete(c.entries, k)
	}
}
