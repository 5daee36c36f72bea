package glrender

const noSlide = -1

type textureSlot struct {
	tex   Texture
	bound int // slide index last uploaded, or noSlide
}

// TextureManager owns the two textures the fade samples from and tracks which
// slide each one holds.
type TextureManager struct {
	dev     Device
	images  ImageSource
	slots   [2]textureSlot
	uploads int
}

// NewTextureManager creates both textures, empty.
func NewTextureManager(dev Device, images ImageSource) *TextureManager {
	m := &TextureManager{dev: dev, images: images}
	for i := range m.slots {
		m.slots[i] = textureSlot{tex: dev.NewTexture(), bound: noSlide}
	}
	return m
}

// EnsureUploaded makes slot hold slide idx if that slide is decoded. It
// reports whether pixels were uploaded. A slide that is not ready leaves the
// slot showing what it had.
func (m *TextureManager) EnsureUploaded(slot, idx int) bool {
	s := &m.slots[slot]
	if s.bound == idx || s.tex == 0 {
		return false
	}
	if !m.images.IsReady(idx) {
		return false
	}
	px := m.images.Pixels(idx)
	if px == nil {
		return false
	}

	m.dev.UploadTexture(s.tex, px)
	s.bound = idx
	m.uploads++
	return true
}

// Bound returns the slide held by slot and whether it holds one at all.
func (m *TextureManager) Bound(slot int) (int, bool) {
	b := m.slots[slot].bound
	return b, b != noSlide
}

// Uploads counts the uploads issued so far.
func (m *TextureManager) Uploads() int { return m.uploads }

// Bind attaches slot 0 to texture unit 0 and slot 1 to unit 1.
func (m *TextureManager) Bind() {
	for i, s := range m.slots {
		m.dev.BindTexture(i, s.tex)
	}
}

// Release deletes both textures. Further calls do nothing.
func (m *TextureManager) Release() {
	for i := range m.slots {
		if m.slots[i].tex != 0 {
			m.dev.DeleteTexture(m.slots[i].tex)
			m.slots[i] = textureSlot{bound: noSlide}
		}
	}
}
