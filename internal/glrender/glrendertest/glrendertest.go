// Package glrendertest provides in-memory stand-ins for the GPU, the surface
// and the image source so the render loop can run without a display.
package glrendertest

import (
	"fmt"
	"image"
	"sync"

	"github.com/matjam/fadeshow/internal/glrender"
)

// Upload records one texture upload.
type Upload struct {
	Texture glrender.Texture
	Image   *image.RGBA
}

// Device records the calls made to it. Object names are handed out from one
// counter so programs, textures and buffers never collide.
type Device struct {
	// ProgramErr, when set, makes NewProgram fail with it.
	ProgramErr error
	// MissingAttrib makes AttribLocation report -1.
	MissingAttrib bool

	last     uint32
	live     map[uint32]string
	Deleted  map[uint32]int
	Uploads  []Upload
	Bound    map[int]glrender.Texture
	Uniforms map[int32]float32
	Samplers map[int32]int32
	Current  glrender.Program

	Viewports [][2]int
	Draws     int
	Clears    int
	Vertices  []float32
	Attrib    int32
}

func NewDevice() *Device {
	return &Device{
		live:     map[uint32]string{},
		Deleted:  map[uint32]int{},
		Bound:    map[int]glrender.Texture{},
		Uniforms: map[int32]float32{},
		Samplers: map[int32]int32{},
	}
}

func (d *Device) alloc(kind string) uint32 {
	d.last++
	d.live[d.last] = kind
	return d.last
}

func (d *Device) free(id uint32) {
	d.Deleted[id]++
	delete(d.live, id)
}

// Live returns how many objects of kind ("program", "texture", "buffer") are
// allocated and not deleted.
func (d *Device) Live(kind string) int {
	n := 0
	for _, k := range d.live {
		if k == kind {
			n++
		}
	}
	return n
}

// LiveTotal counts every allocated, undeleted object.
func (d *Device) LiveTotal() int { return len(d.live) }

// Allocated counts every object ever created.
func (d *Device) Allocated() int { return int(d.last) }

// UploadsTo counts uploads into t.
func (d *Device) UploadsTo(t glrender.Texture) int {
	n := 0
	for _, u := range d.Uploads {
		if u.Texture == t {
			n++
		}
	}
	return n
}

func (d *Device) NewProgram(vertexSrc, fragmentSrc string) (glrender.Program, error) {
	if d.ProgramErr != nil {
		return 0, d.ProgramErr
	}
	if vertexSrc == "" || fragmentSrc == "" {
		return 0, fmt.Errorf("empty shader source")
	}
	return glrender.Program(d.alloc("program")), nil
}

func (d *Device) UseProgram(p glrender.Program) { d.Current = p }

var uniformNames = map[string]int32{"u_image0": 1, "u_image1": 2, "u_mix": 3}

// MixLocation is the location UniformLocation reports for u_mix.
const MixLocation int32 = 3

func (d *Device) UniformLocation(_ glrender.Program, name string) int32 {
	if loc, ok := uniformNames[name]; ok {
		return loc
	}
	return -1
}

func (d *Device) AttribLocation(_ glrender.Program, name string) int32 {
	if d.MissingAttrib || name != "position" {
		return -1
	}
	return 0
}

func (d *Device) Uniform1i(location int32, v int32)   { d.Samplers[location] = v }
func (d *Device) Uniform1f(location int32, v float32) { d.Uniforms[location] = v }

func (d *Device) DeleteProgram(p glrender.Program) { d.free(uint32(p)) }

func (d *Device) NewTexture() glrender.Texture { return glrender.Texture(d.alloc("texture")) }

func (d *Device) UploadTexture(t glrender.Texture, img *image.RGBA) {
	d.Uploads = append(d.Uploads, Upload{Texture: t, Image: img})
}

func (d *Device) BindTexture(unit int, t glrender.Texture) { d.Bound[unit] = t }

func (d *Device) DeleteTexture(t glrender.Texture) { d.free(uint32(t)) }

func (d *Device) NewVertexBuffer(data []float32) glrender.Buffer {
	d.Vertices = append([]float32(nil), data...)
	return glrender.Buffer(d.alloc("buffer"))
}

func (d *Device) BindVertexBuffer(_ glrender.Buffer, location int32, _ int) { d.Attrib = location }

func (d *Device) DeleteBuffer(b glrender.Buffer) { d.free(uint32(b)) }

func (d *Device) Viewport(width, height int) {
	d.Viewports = append(d.Viewports, [2]int{width, height})
}

func (d *Device) Clear() { d.Clears++ }

func (d *Device) DrawTriangles(count int) {
	if count != 6 {
		panic(fmt.Sprintf("unexpected vertex count %d", count))
	}
	d.Draws++
}

// Surface is a resizable fake drawable.
type Surface struct {
	Width, Height               int
	BackingWidth, BackingHeight int
	BackingResizes              int
}

func (s *Surface) ClientSize() (int, int) { return s.Width, s.Height }

func (s *Surface) SetBackingSize(w, h int) {
	s.BackingWidth, s.BackingHeight = w, h
	s.BackingResizes++
}

// Images is an ImageSource whose slides become ready when told to.
type Images struct {
	sync.Mutex
	pixels []*image.RGBA
	ready  []bool
}

// NewImages returns n slides of 1x1 pixels, none ready.
func NewImages(n int) *Images {
	im := &Images{pixels: make([]*image.RGBA, n), ready: make([]bool, n)}
	for i := range im.pixels {
		im.pixels[i] = image.NewRGBA(image.Rect(0, 0, 1, 1))
		im.pixels[i].Pix[0] = uint8(i)
	}
	return im
}

// MarkReady flags the given slides as decoded.
func (im *Images) MarkReady(idx ...int) {
	im.Lock()
	defer im.Unlock()
	for _, i := range idx {
		im.ready[i] = true
	}
}

// MarkAllReady flags every slide as decoded.
func (im *Images) MarkAllReady() {
	im.Lock()
	defer im.Unlock()
	for i := range im.ready {
		im.ready[i] = true
	}
}

func (im *Images) Len() int { return len(im.pixels) }

func (im *Images) IsReady(i int) bool {
	im.Lock()
	defer im.Unlock()
	return i >= 0 && i < len(im.ready) && im.ready[i]
}

func (im *Images) Pixels(i int) *image.RGBA {
	if !im.IsReady(i) {
		return nil
	}
	return im.pixels[i]
}

// Slide returns the pixels of slide i regardless of readiness.
func (im *Images) Slide(i int) *image.RGBA { return im.pixels[i] }

var (
	_ glrender.Device      = (*Device)(nil)
	_ glrender.Surface     = (*Surface)(nil)
	_ glrender.ImageSource = (*Images)(nil)
)
