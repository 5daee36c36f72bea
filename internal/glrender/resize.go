package glrender

// DefaultResizeEvery is how many frames pass between surface size checks.
const DefaultResizeEvery = 20

// ResizeMonitor polls the surface size and resyncs the backing store and
// viewport when it changes.
type ResizeMonitor struct {
	dev     Device
	surface Surface
	every   uint64

	width, height int
	resyncs       int
}

// NewResizeMonitor checks the surface every n frames; n below 1 means every
// frame.
func NewResizeMonitor(dev Device, surface Surface, n int) *ResizeMonitor {
	if n < 1 {
		n = 1
	}
	return &ResizeMonitor{dev: dev, surface: surface, every: uint64(n)}
}

// Sync resizes the backing store and viewport to the surface unconditionally.
func (m *ResizeMonitor) Sync() {
	w, h := m.surface.ClientSize()
	m.apply(w, h)
}

// Check compares the surface size with the cached one on frames that are a
// multiple of the check interval. It reports whether a resync happened.
func (m *ResizeMonitor) Check(frame uint64) bool {
	if frame%m.every != 0 {
		return false
	}
	w, h := m.surface.ClientSize()
	if w == m.width && h == m.height {
		return false
	}
	m.apply(w, h)
	m.resyncs++
	return true
}

// Size returns the cached backing store size.
func (m *ResizeMonitor) Size() (int, int) { return m.width, m.height }

// Resyncs counts the size changes picked up by Check.
func (m *ResizeMonitor) Resyncs() int { return m.resyncs }

func (m *ResizeMonitor) apply(w, h int) {
	m.surface.SetBackingSize(w, h)
	m.dev.Viewport(w, h)
	m.width, m.height = w, h
}
