package texture

import (
	"io/fs"
	"os"
)

// TextureCacheBuilderOption is a function that configures a TextureCache during construction.
type TextureCacheBuilderOption func(*textureCacheImpl)

// WithRootDir reads textures relative to a directory on disk.
//
// Parameters:
//   - dir: the asset root directory
//
// Returns:
//   - TextureCacheBuilderOption: a function that sets the root filesystem
func WithRootDir(dir string) TextureCacheBuilderOption {
	return func(c *textureCacheImpl) {
		c.fsys = os.DirFS(dir)
	}
}

// WithFS reads textures from an arbitrary filesystem, such as an embed.FS or fstest.MapFS.
//
// Parameters:
//   - fsys: the filesystem to read from
//
// Returns:
//   - TextureCacheBuilderOption: a function that sets the root filesystem
func WithFS(fsys fs.FS) TextureCacheBuilderOption {
	return func(c *textureCacheImpl) {
		c.fsys = fsys
	}
}

// WithMaxSize downsizes any texture whose width or height exceeds size pixels, preserving aspect.
//
// Parameters:
//   - size: the largest allowed edge in pixels; 0 disables downsizing
//
// Returns:
//   - TextureCacheBuilderOption: a function that sets the size limit
func WithMaxSize(size int) TextureCacheBuilderOption {
	return func(c *textureCacheImpl) {
		c.maxSize = size
	}
}

// WithWorkers sets the number of workers Preload decodes with.
//
// Parameters:
//   - workers: worker count, at least 1
//
// Returns:
//   - TextureCacheBuilderOption: a function that sets the worker count
func WithWorkers(workers int) TextureCacheBuilderOption {
	return func(c *textureCacheImpl) {
		c.workers = max(workers, 1)
	}
}
