package loader

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"resty.dev/v3"

	"github.com/matjam/fadeshow/internal/slides"
)

func encodePNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, encodePNG(t, w, h, color.RGBA{R: 200, A: 255}), 0o644))
	return path
}

func TestLoadsFilesIndependently(t *testing.T) {
	dir := t.TempDir()
	good := writePNG(t, dir, "good.png", 4, 3)
	corrupt := filepath.Join(dir, "corrupt.png")
	require.NoError(t, os.WriteFile(corrupt, []byte("not an image"), 0o644))
	missing := filepath.Join(dir, "missing.png")

	l := New(slides.NewSet([]string{good, corrupt, missing, "file://" + good}))
	assert.False(t, l.IsReady(0))

	l.Start(context.Background())
	l.Wait()

	assert.True(t, l.IsReady(0))
	assert.False(t, l.IsReady(1))
	assert.False(t, l.IsReady(2))
	assert.True(t, l.IsReady(3))

	px := l.Pixels(0)
	require.NotNil(t, px)
	assert.Equal(t, image.Rect(0, 0, 4, 3), px.Bounds())
	assert.Equal(t, 4*4, px.Stride)
	assert.Equal(t, uint8(200), px.Pix[0])
	assert.Nil(t, l.Pixels(1))
}

func TestOutOfRangeIsNeverReady(t *testing.T) {
	l := New(slides.NewSet(nil))
	l.Start(context.Background())
	l.Wait()

	assert.Equal(t, 0, l.Len())
	assert.False(t, l.IsReady(0))
	assert.False(t, l.IsReady(-1))
	assert.Nil(t, l.Pixels(5))
	assert.Equal(t, "", l.Locator(0))
}

func TestStartIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	l := New(slides.NewSet([]string{writePNG(t, dir, "a.png", 2, 2)}))
	l.Start(context.Background())
	l.Start(context.Background())
	l.Wait()
	assert.True(t, l.IsReady(0))
}

func TestLoadsOverHTTP(t *testing.T) {
	body := encodePNG(t, 8, 8, color.RGBA{G: 255, A: 255})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/a.png":
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write(body)
		case "/broken.png":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := resty.New()
	defer client.Close()

	l := New(slides.NewSet([]string{
		srv.URL + "/a.png",
		srv.URL + "/broken.png",
		srv.URL + "/gone.png",
	}), WithClient(client))
	l.Start(context.Background())
	l.Wait()

	assert.True(t, l.IsReady(0))
	assert.False(t, l.IsReady(1))
	assert.False(t, l.IsReady(2))
	assert.Equal(t, uint8(255), l.Pixels(0).Pix[1])
}

func TestDownscalesLargeImages(t *testing.T) {
	dir := t.TempDir()
	l := New(slides.NewSet([]string{writePNG(t, dir, "wide.png", 64, 16)}), WithMaxSize(32))
	l.Start(context.Background())
	l.Wait()

	require.True(t, l.IsReady(0))
	assert.Equal(t, image.Rect(0, 0, 32, 8), l.Pixels(0).Bounds())
}

func TestFitWithin(t *testing.T) {
	cases := []struct {
		w, h, max    int
		wantW, wantH int
	}{
		{100, 50, 0, 100, 50},
		{100, 50, 200, 100, 50},
		{400, 100, 200, 200, 50},
		{100, 400, 200, 50, 200},
		{1000, 1, 10, 10, 1},
	}
	for _, c := range cases {
		w, h := fitWithin(c.w, c.h, c.max)
		assert.Equal(t, c.wantW, w)
		assert.Equal(t, c.wantH, h)
	}
}

func TestToRGBARebasesOrigin(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 10, 14, 12))
	src.Set(10, 10, color.RGBA{B: 255, A: 255})

	dst := toRGBA(src, 0)
	assert.Equal(t, image.Rect(0, 0, 4, 2), dst.Bounds())
	assert.Equal(t, color.RGBA{B: 255, A: 255}, dst.RGBAAt(0, 0))
}
