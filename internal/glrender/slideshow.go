package glrender

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"

	"github.com/matjam/fadeshow/internal/animation"
	"github.com/matjam/fadeshow/internal/frames"
)

// Options tunes a Slideshow. Zero values fall back to the defaults.
type Options struct {
	Interval    time.Duration // hold time before a fade starts
	Transition  time.Duration // length of the fade
	ResizeEvery int           // frames between surface size checks
	Clock       clockwork.Clock
}

func (o Options) withDefaults() Options {
	if o.Interval <= 0 {
		o.Interval = animation.DefaultInterval
	}
	if o.Transition <= 0 {
		o.Transition = animation.DefaultTransition
	}
	if o.ResizeEvery <= 0 {
		o.ResizeEvery = DefaultResizeEvery
	}
	if o.Clock == nil {
		o.Clock = clockwork.NewRealClock()
	}
	return o
}

// Status is what a running slideshow last drew.
type Status struct {
	Slides  int     `json:"slides"`
	Current int     `json:"current"`
	Next    int     `json:"next"`
	Mix     float32 `json:"mix"`
	Phase   string  `json:"phase"`
	Frames  uint64  `json:"frames"`
	Width   int     `json:"width"`
	Height  int     `json:"height"`
	Running bool    `json:"running"`
}

// Slideshow is the render loop. It owns every GPU resource it creates and
// re-arms itself through the frame scheduler until Stop.
type Slideshow struct {
	dev     Device
	surface Surface
	frames  FrameScheduler
	images  ImageSource
	opts    Options

	running bool
	pending frames.Handle
	count   uint64

	scheduler *animation.Scheduler
	program   *ShaderProgram
	quad      *quad
	textures  *TextureManager
	resize    *ResizeMonitor
	status    Status
}

// New wires a slideshow together without touching the GPU.
func New(dev Device, surface Surface, fs FrameScheduler, images ImageSource, opts Options) *Slideshow {
	return &Slideshow{
		dev:     dev,
		surface: surface,
		frames:  fs,
		images:  images,
		opts:    opts.withDefaults(),
		status:  Status{Slides: images.Len(), Phase: animation.Holding.String()},
	}
}

// Start allocates the GPU resources and schedules the first frame. With no
// slides it does nothing. A shader failure is returned wrapped in ErrSetup
// and leaves nothing allocated.
func (s *Slideshow) Start() error {
	if s.running {
		return nil
	}
	n := s.images.Len()
	if n == 0 {
		log.Debug("no slides, slideshow idle")
		return nil
	}

	program, err := NewShaderProgram(s.dev)
	if err != nil {
		log.Errorf("slideshow setup failed: %v", err)
		return err
	}
	scheduler, err := animation.NewScheduler(n, s.opts.Interval, s.opts.Transition, s.opts.Clock.Now())
	if err != nil {
		program.Release()
		return err
	}

	s.program = program
	s.scheduler = scheduler
	s.quad = newQuad(s.dev, program.position)
	s.textures = NewTextureManager(s.dev, s.images)
	s.resize = NewResizeMonitor(s.dev, s.surface, s.opts.ResizeEvery)
	s.resize.Sync()

	s.count = 0
	s.running = true
	s.publish(scheduler.State())
	s.pending = s.frames.RequestFrame(s.tick)

	log.Infof("slideshow started with %d slides (interval %v, transition %v)", n, s.opts.Interval, s.opts.Transition)
	return nil
}

// Stop cancels the pending frame and releases the program, textures and
// vertex buffer. It is safe to call more than once.
func (s *Slideshow) Stop() {
	if !s.running {
		return
	}
	s.running = false
	s.frames.CancelFrame(s.pending)
	s.pending = 0

	s.textures.Release()
	s.quad.release()
	s.program.Release()
	s.status.Running = false

	log.Debugf("slideshow stopped after %d frames", s.count)
}

// Running reports whether the loop is scheduled.
func (s *Slideshow) Running() bool { return s.running }

// Skip starts the next fade now instead of waiting out the hold.
func (s *Slideshow) Skip() bool {
	if !s.running {
		return false
	}
	return s.scheduler.Skip(s.opts.Clock.Now())
}

// Status returns the state as of the last frame.
func (s *Slideshow) Status() Status { return s.status }

// Textures exposes the texture bookkeeping of a running slideshow.
func (s *Slideshow) Textures() *TextureManager { return s.textures }

func (s *Slideshow) tick() {
	if !s.running {
		return
	}
	s.pending = 0
	s.count++

	st := s.scheduler.Update(s.opts.Clock.Now())

	s.textures.EnsureUploaded(0, st.Current)
	s.textures.EnsureUploaded(1, st.Next)

	if s.resize.Check(s.count) {
		w, h := s.resize.Size()
		log.Debugf("surface resized to %dx%d", w, h)
	}

	s.dev.Clear()
	s.program.Use(st.Mix)
	s.textures.Bind()
	s.quad.draw()

	s.publish(st)
	s.pending = s.frames.RequestFrame(s.tick)
}

func (s *Slideshow) publish(st animation.State) {
	w, h := s.resize.Size()
	s.status = Status{
		Slides:  s.images.Len(),
		Current: st.Current,
		Next:    st.Next,
		Mix:     st.Mix,
		Phase:   st.Phase.String(),
		Frames:  s.count,
		Width:   w,
		Height:  h,
		Running: s.running,
	}
}
