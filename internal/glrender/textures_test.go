package glrender_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matjam/fadeshow/internal/glrender"
	"github.com/matjam/fadeshow/internal/glrender/glrendertest"
)

func TestEnsureUploadedIsIdempotent(t *testing.T) {
	dev := glrendertest.NewDevice()
	images := glrendertest.NewImages(3)
	images.MarkAllReady()
	tm := glrender.NewTextureManager(dev, images)

	assert.True(t, tm.EnsureUploaded(0, 2))
	assert.False(t, tm.EnsureUploaded(0, 2))
	require.Len(t, dev.Uploads, 1)
	assert.Same(t, images.Slide(2), dev.Uploads[0].Image)
	assert.Equal(t, 1, tm.Uploads())
}

func TestEnsureUploadedWaitsForDecode(t *testing.T) {
	dev := glrendertest.NewDevice()
	images := glrendertest.NewImages(2)
	tm := glrender.NewTextureManager(dev, images)

	assert.False(t, tm.EnsureUploaded(1, 1))
	_, ok := tm.Bound(1)
	assert.False(t, ok)
	assert.Empty(t, dev.Uploads)

	images.MarkReady(1)
	assert.True(t, tm.EnsureUploaded(1, 1))
	idx, ok := tm.Bound(1)
	assert.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestSlotsAreIndependent(t *testing.T) {
	dev := glrendertest.NewDevice()
	images := glrendertest.NewImages(2)
	images.MarkAllReady()
	tm := glrender.NewTextureManager(dev, images)

	tm.EnsureUploaded(0, 0)
	tm.EnsureUploaded(1, 0)
	tm.EnsureUploaded(1, 1)
	tm.EnsureUploaded(0, 0)

	require.Len(t, dev.Uploads, 3)
	assert.NotEqual(t, dev.Uploads[0].Texture, dev.Uploads[1].Texture)
	assert.Equal(t, 1, dev.UploadsTo(dev.Uploads[0].Texture))
	assert.Equal(t, 2, dev.UploadsTo(dev.Uploads[1].Texture))
}

func TestReleaseDeletesTexturesOnce(t *testing.T) {
	dev := glrendertest.NewDevice()
	images := glrendertest.NewImages(1)
	images.MarkAllReady()
	tm := glrender.NewTextureManager(dev, images)
	require.Equal(t, 2, dev.Live("texture"))

	tm.Release()
	tm.Release()
	assert.Equal(t, 0, dev.Live("texture"))
	assert.Len(t, dev.Deleted, 2)

	// released slots never upload again
	assert.False(t, tm.EnsureUploaded(0, 0))
	assert.Empty(t, dev.Uploads)
}

func TestResizeMonitorThrottle(t *testing.T) {
	dev := glrendertest.NewDevice()
	surface := &glrendertest.Surface{Width: 100, Height: 50}
	m := glrender.NewResizeMonitor(dev, surface, 20)

	m.Sync()
	w, h := m.Size()
	assert.Equal(t, 100, w)
	assert.Equal(t, 50, h)

	surface.Width = 120
	for frame := uint64(1); frame < 20; frame++ {
		assert.False(t, m.Check(frame))
	}
	assert.True(t, m.Check(20))
	assert.False(t, m.Check(40))
	assert.Equal(t, 1, m.Resyncs())
	assert.Equal(t, 120, surface.BackingWidth)
	assert.Equal(t, [2]int{120, 50}, dev.Viewports[len(dev.Viewports)-1])
}

func TestResizeMonitorEveryFrame(t *testing.T) {
	dev := glrendertest.NewDevice()
	surface := &glrendertest.Surface{Width: 10, Height: 10}
	m := glrender.NewResizeMonitor(dev, surface, 0)

	assert.True(t, m.Check(1))
	surface.Height = 11
	assert.True(t, m.Check(2))
}
