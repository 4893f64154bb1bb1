// Package texture loads image maps from disk, caches them per logical path and carries their
// repeat/wrap configuration for the renderer.
package texture

import (
	"io/fs"
	"os"
	"path"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/hauntedhouse/engine/logger"
	"go.uber.org/zap"
)

// Stats counts cache activity since construction.
type Stats struct {
	// Hits is the number of Load calls answered from the cache.
	Hits int
	// Misses is the number of Load calls that had to read and decode a file.
	Misses int
	// Placeholders is the number of paths that failed to load and were replaced.
	Placeholders int
}

// TextureCache loads textures once per logical path and hands out shared handles.
type TextureCache interface {
	// Load returns the texture for path, decoding it on first use. Repeated calls with the same
	// path return the identical handle. A file that cannot be read or decoded produces a cached
	// placeholder texture and a logged warning; it never fails.
	//
	// Parameters:
	//   - p: the logical path, relative to the cache's root filesystem
	//
	// Returns:
	//   - Texture: the shared texture handle
	Load(p string) Texture

	// Preload loads many paths concurrently on the cache's worker pool and returns once all are cached.
	//
	// Parameters:
	//   - paths: the logical paths to load
	Preload(paths ...string)

	// ConfigureRepeat sets the repeat factors and wrap mode of a texture in place.
	//
	// Parameters:
	//   - tex: a handle returned by Load
	//   - u: repeat count along U
	//   - v: repeat count along V
	//   - wrap: the wrap mode applied to both axes
	ConfigureRepeat(tex Texture, u, v float32, wrap WrapMode)

	// Get returns a cached texture without loading it.
	//
	// Parameters:
	//   - p: the logical path
	//
	// Returns:
	//   - Texture: the cached handle, or nil
	//   - bool: whether the path was cached
	Get(p string) (Texture, bool)

	// Paths returns the sorted logical paths currently cached.
	//
	// Returns:
	//   - []string: the cache keys
	Paths() []string

	// Stats returns a snapshot of the cache counters.
	//
	// Returns:
	//   - Stats: hit, miss and placeholder counts
	Stats() Stats
}

type textureCacheImpl struct {
	mu *sync.Mutex

	fsys    fs.FS
	maxSize int
	workers int

	entries  map[string]*cacheEntry
	stats    Stats
	pool     worker.DynamicWorkerPool
	poolOnce *sync.Once
}

// cacheEntry lets concurrent loads of the same path wait for one decode.
type cacheEntry struct {
	ready chan struct{}
	tex   *textureImpl
}

var _ TextureCache = &textureCacheImpl{}

// NewTextureCache creates an empty TextureCache. Without options textures are read from the
// current working directory with no size limit.
//
// Parameters:
//   - options: builder options
//
// Returns:
//   - TextureCache: the new cache
func NewTextureCache(options ...TextureCacheBuilderOption) TextureCache {
	c := &textureCacheImpl{
		mu:       &sync.Mutex{},
		fsys:     os.DirFS("."),
		workers:  max(runtime.NumCPU()-1, 1),
		entries:  make(map[string]*cacheEntry),
		poolOnce: &sync.Once{},
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// cacheKey normalises a logical path so "a/./b.png" and "a/b.png" share an entry.
func cacheKey(p string) string {
	return path.Clean(strings.TrimPrefix(strings.ReplaceAll(p, "\\", "/"), "/"))
}

func (c *textureCacheImpl) Load(p string) Texture {
	key := cacheKey(p)

	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		c.stats.Hits++
		c.mu.Unlock()
		<-e.ready
		return e.tex
	}
	e := &cacheEntry{ready: make(chan struct{})}
	c.entries[key] = e
	c.stats.Misses++
	c.mu.Unlock()

	e.tex = c.decode(key)
	if e.tex.placeholder {
		c.mu.Lock()
		c.stats.Placeholders++
		c.mu.Unlock()
	}
	close(e.ready)
	return e.tex
}

func (c *textureCacheImpl) decode(key string) *textureImpl {
	data, err := fs.ReadFile(c.fsys, key)
	if err != nil {
		logger.Log.Warn("texture asset missing, using placeholder", zap.String("path", key), zap.Error(err))
		return newPlaceholder(key)
	}
	img, err := decodeRGBA(data, c.maxSize)
	if err != nil {
		logger.Log.Warn("texture asset unreadable, using placeholder", zap.String("path", key), zap.Error(err))
		return newPlaceholder(key)
	}
	b := img.Bounds()
	logger.Log.Debug("texture loaded", zap.String("path", key), zap.Int("width", b.Dx()), zap.Int("height", b.Dy()))
	return newTexture(key, img.Pix, uint32(b.Dx()), uint32(b.Dy()))
}

func (c *textureCacheImpl) Preload(paths ...string) {
	if len(paths) == 0 {
		return
	}
	c.poolOnce.Do(func() {
		c.pool = worker.NewDynamicWorkerPool(c.workers, 256, 1*time.Second)
	})

	// Workers idle-exit, so a WaitGroup is the barrier rather than pool.Wait.
	var wg sync.WaitGroup
	for i, p := range paths {
		wg.Add(1)
		c.pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				return c.Load(p), nil
			},
		})
	}
	wg.Wait()
}

func (c *textureCacheImpl) ConfigureRepeat(tex Texture, u, v float32, wrap WrapMode) {
	impl, ok := tex.(*textureImpl)
	if !ok || impl == nil {
		return
	}
	impl.setRepeat(u, v, wrap)
}

func (c *textureCacheImpl) Get(p string) (Texture, bool) {
	c.mu.Lock()
	e, ok := c.entries[cacheKey(p)]
	c.mu.Unlock()
	if !ok {
		return nil, false
	}
	<-e.ready
	return e.tex, true
}

func (c *textureCacheImpl) Paths() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.entries))
	for k := range c.entries {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (c *textureCacheImpl) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
