package ipc

import (
	"context"
	"errors"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matjam/fadeshow/internal/glrender"
	"github.com/matjam/fadeshow/internal/loader"
	"github.com/matjam/fadeshow/internal/slides"
)

// ErrQueueFull is returned when commands arrive faster than frames drain them.
var ErrQueueFull = errors.New("command queue is full")

// Host is the window the manager renders into.
type Host interface {
	glrender.Surface
	glrender.FrameScheduler
	// Frame runs one display frame and reports whether the host wants more.
	Frame() bool
}

// Options configures the slideshows the manager mounts.
type Options struct {
	Slideshow glrender.Options
	Loader    []loader.Option
	// Shuffle and Limit apply to sets received with a load command.
	Shuffle bool
	Limit   int
}

// Manager owns the render thread. It mounts a slideshow for the current set,
// pumps frames and applies queued commands between frames.
type Manager struct {
	sync.Mutex
	slides       []string // locators of the mounted set
	host         Host
	dev          glrender.Device
	opts         Options
	cmds         chan Command
	status       glrender.Status
	currentSlide string

	show   *glrender.Slideshow
	images *loader.Loader
	cancel context.CancelFunc
}

// NewManager creates a manager for locators. Nothing is loaded until Run.
func NewManager(host Host, dev glrender.Device, locators []string, opts Options) *Manager {
	return &Manager{
		slides: locators,
		host:   host,
		dev:    dev,
		opts:   opts,
		cmds:   make(chan Command, 8),
	}
}

func (m *Manager) CurrentSlide() string {
	m.Lock()
	defer m.Unlock()
	return m.currentSlide
}

func (m *Manager) Status() glrender.Status {
	m.Lock()
	defer m.Unlock()
	return m.status
}

func (m *Manager) GetSlides() []string {
	m.Lock()
	defer m.Unlock()
	return append([]string(nil), m.slides...)
}

func (m *Manager) setSlides(locators []string) {
	m.Lock()
	defer m.Unlock()
	m.slides = locators
}

// EnqueueCommand hands cmd to the render thread. It never blocks.
func (m *Manager) EnqueueCommand(cmd Command) error {
	select {
	case m.cmds <- cmd:
		return nil
	default:
		log.Warnf("dropping %v command, queue full", cmd.Type)
		return ErrQueueFull
	}
}

// Stop asks Run to return after the current frame.
func (m *Manager) Stop() {
	_ = m.EnqueueCommand(Command{Type: CommandStop})
}

// Run blocks, rendering frames until ctx is done, the host closes or a stop
// command arrives. It must be called on the thread owning the GL context.
func (m *Manager) Run(ctx context.Context) {
	log.Info("Starting slideshow...")

	m.mount(ctx, m.GetSlides())

	running := true
	for running {
		select {
		case <-ctx.Done():
			log.Info("Stopping slideshow ...")
			running = false
			continue
		case cmd := <-m.cmds:
			running = m.apply(ctx, cmd)
			if !running {
				continue
			}
		default:
		}

		if !m.host.Frame() {
			log.Info("Window closed")
			running = false
		}
		m.publish()
	}

	m.unmount()
	log.Info("Slideshow stopped.")
}

func (m *Manager) apply(ctx context.Context, cmd Command) bool {
	switch cmd.Type {
	case CommandStop:
		log.Info("Stopping slideshow ...")
		return false
	case CommandNext:
		log.Info("Received next command")
		if m.show != nil && !m.show.Skip() {
			log.Debug("transition already running")
		}
	case CommandLoad:
		log.Info("Received load command")
		if len(cmd.Args) == 0 {
			log.Error("No slides specified for load command")
			return true
		}
		locators := slides.Sample(cmd.Args, m.opts.Shuffle, m.opts.Limit)
		m.unmount()
		m.setSlides(locators)
		m.mount(ctx, locators)
		log.Infof("Loaded %d slides", len(locators))
	default:
		log.Errorf("Unknown command: %v", cmd.Type)
	}
	return true
}

func (m *Manager) mount(ctx context.Context, locators []string) {
	set := slides.NewSet(locators)

	loadCtx, cancel := context.WithCancel(ctx)
	images := loader.New(set, m.opts.Loader...)
	images.Start(loadCtx)

	show := glrender.New(m.dev, m.host, m.host, images, m.opts.Slideshow)
	if err := show.Start(); err != nil {
		// the window stays blank; the daemon keeps serving commands
		log.Errorf("Failed to start slideshow: %v", err)
	}

	m.images = images
	m.show = show
	m.cancel = cancel
	m.publish()
}

func (m *Manager) unmount() {
	if m.show != nil {
		m.show.Stop()
		m.show = nil
	}
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.images = nil
	m.publish()
}

func (m *Manager) publish() {
	m.Lock()
	defer m.Unlock()

	if m.show == nil {
		m.status = glrender.Status{}
		m.currentSlide = ""
		return
	}
	m.status = m.show.Status()
	m.currentSlide = m.images.Locator(m.status.Current)
}
