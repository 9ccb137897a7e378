package assets

import (
	"context"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// NewTextureFunc turns a decoded image into a texture.
type NewTextureFunc func(img image.Image) *ebiten.Image

// textureCache decodes every path at most once per load.
type textureCache struct {
	fsys       fs.FS
	newTexture NewTextureFunc

	group   singleflight.Group
	mu      sync.Mutex
	loaded  map[string]*ebiten.Image
	decoded atomic.Int64
}

func newTextureCache(fsys fs.FS, newTexture NewTextureFunc) *textureCache {
	return &textureCache{
		fsys:       fsys,
		newTexture: newTexture,
		loaded:     make(map[string]*ebiten.Image),
	}
}

func (c *textureCache) get(path string) (*ebiten.Image, error) {
	c.mu.Lock()
	tex, ok := c.loaded[path]
	c.mu.Unlock()
	if ok {
		return tex, nil
	}

	v, err, _ := c.group.Do(path, func() (interface{}, error) {
		// A call for path may have finished between the lookup above and Do.
		c.mu.Lock()
		tex, ok := c.loaded[path]
		c.mu.Unlock()
		if ok {
			return tex, nil
		}

		tex, err := c.decode(path)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.loaded[path] = tex
		c.mu.Unlock()
		return tex, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*ebiten.Image), nil
}

func (c *textureCache) decode(path string) (*ebiten.Image, error) {
	f, err := c.fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode texture %s: %w", path, err)
	}
	c.decoded.Add(1)

	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	log.Debug().Str("path", path).Int("w", w).Int("h", h).Msg("loaded texture")
	return c.newTexture(img), nil
}

// textureRequest asks for path to be loaded into *dst.
type textureRequest struct {
	path string
	dst  **ebiten.Image
}

// loadTextures resolves every request with at most workers decodes in flight.
// The first failure cancels the rest.
func (c *textureCache) loadTextures(ctx context.Context, workers int, reqs []textureRequest) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, req := range reqs {
		req := req
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			tex, err := c.get(req.path)
			if err != nil {
				return err
			}
			*req.dst = tex
			return nil
		})
	}
	return g.Wait()
}
