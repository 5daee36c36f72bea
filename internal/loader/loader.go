// Package loader decodes every slide of a set in the background and lets the
// render loop poll for completion without blocking.
package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"net/http"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"golang.org/x/image/draw"
	"resty.dev/v3"

	// extra codecs; gif, jpeg and png are registered by the binary
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/matjam/fadeshow/internal/slides"
)

// ErrNotFound is returned for a locator that resolves to nothing.
var ErrNotFound = errors.New("loader: image not found")

// DefaultMaxSize is the largest edge uploaded without downscaling.
const DefaultMaxSize = 4096

type entry struct {
	locator string
	ready   atomic.Bool
	pixels  *image.RGBA // written once, before ready is set
}

// Loader owns the decoded images of one slide set.
type Loader struct {
	entries []*entry
	client  *resty.Client
	maxSize int

	startOnce sync.Once
	wg        sync.WaitGroup
}

// Option configures a Loader.
type Option func(*Loader)

// WithClient sets the HTTP client used for http(s) locators.
func WithClient(c *resty.Client) Option {
	return func(l *Loader) { l.client = c }
}

// WithMaxSize sets the largest width or height kept after decoding. Zero
// disables downscaling.
func WithMaxSize(n int) Option {
	return func(l *Loader) { l.maxSize = n }
}

// New prepares a loader for set. Nothing is fetched until Start.
func New(set slides.Set, opts ...Option) *Loader {
	l := &Loader{
		entries: make([]*entry, set.Len()),
		maxSize: DefaultMaxSize,
	}
	for i, loc := range set.Locators() {
		l.entries[i] = &entry{locator: loc}
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Start launches one decode per slide. Each decode is independent; one that
// fails simply never becomes ready. Calling Start again has no effect.
func (l *Loader) Start(ctx context.Context) {
	l.startOnce.Do(func() {
		for i, e := range l.entries {
			l.wg.Add(1)
			go func() {
				defer l.wg.Done()
				if err := l.load(ctx, e); err != nil {
					log.Debugf("slide %d (%s) not loaded: %v", i, e.locator, err)
				}
			}()
		}
	})
}

// Wait blocks until every decode started by Start has finished or failed.
func (l *Loader) Wait() {
	l.wg.Wait()
}

func (l *Loader) Len() int { return len(l.entries) }

// IsReady reports whether slide i has been decoded. Out of range indexes are
// never ready.
func (l *Loader) IsReady(i int) bool {
	if i < 0 || i >= len(l.entries) {
		return false
	}
	return l.entries[i].ready.Load()
}

// Pixels returns the decoded image of slide i, or nil if it is not ready.
func (l *Loader) Pixels(i int) *image.RGBA {
	if !l.IsReady(i) {
		return nil
	}
	return l.entries[i].pixels
}

// Locator returns the locator of slide i.
func (l *Loader) Locator(i int) string {
	if i < 0 || i >= len(l.entries) {
		return ""
	}
	return l.entries[i].locator
}

func (l *Loader) load(ctx context.Context, e *entry) error {
	data, err := l.read(ctx, e.locator)
	if err != nil {
		return err
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}
	log.Debugf("decoded %v (%v, %vx%v)", e.locator, format, img.Bounds().Dx(), img.Bounds().Dy())

	e.pixels = toRGBA(img, l.maxSize)
	e.ready.Store(true)
	return nil
}

func (l *Loader) read(ctx context.Context, locator string) ([]byte, error) {
	if slides.IsRemote(locator) {
		return l.fetch(ctx, locator)
	}

	path := strings.TrimPrefix(locator, "file://")
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read image file: %w", err)
	}
	return data, nil
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	client := l.client
	if client == nil {
		client = resty.New()
		defer client.Close()
	}

	res, err := client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	switch res.StatusCode() {
	case http.StatusOK:
		return res.Bytes(), nil
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, url)
	default:
		return nil, fmt.Errorf("failed to fetch image: %s", res.Status())
	}
}

// toRGBA converts img to a tightly packed RGBA image with its origin at 0,0,
// shrinking it so neither edge exceeds maxSize.
func toRGBA(img image.Image, maxSize int) *image.RGBA {
	src := img.Bounds()
	w, h := fitWithin(src.Dx(), src.Dy(), maxSize)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == src.Dx() && h == src.Dy() {
		draw.Draw(dst, dst.Bounds(), img, src.Min, draw.Src)
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
	return dst
}

func fitWithin(w, h, maxSize int) (int, int) {
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return w, h
	}
	if w >= h {
		return maxSize, max(1, h*maxSize/w)
	}
	return max(1, w*maxSize/h), maxSize
}
