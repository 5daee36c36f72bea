package cmd

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/spf13/viper"
	"resty.dev/v3"

	"github.com/matjam/fadeshow/internal/cli/cmd/utils"
	"github.com/matjam/fadeshow/internal/gldevice"
	"github.com/matjam/fadeshow/internal/glfwhost"
	"github.com/matjam/fadeshow/internal/glrender"
	"github.com/matjam/fadeshow/internal/ipc"
	"github.com/matjam/fadeshow/internal/loader"
	"github.com/matjam/fadeshow/internal/slides"
)

func StartManager() {
	log.Infof("StartManager() started in PID: %d", os.Getpid())

	if os.Getenv("BACKGROUND_PROCESS") == "1" {
		setupRotatingLogger()
	}

	if _, err := ipc.SendStatus(); err == nil {
		log.Infof("fadeshow is already running, exiting")
		os.Exit(0)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	client := resty.New()
	defer client.Close()

	log.Info("Searching for slides ...")

	source := viper.GetString("slides")
	locators, err := findSlides(ctx, client, source)
	if err != nil {
		log.Fatalf("Error reading slides from %s: %v", source, err)
	}
	if len(locators) == 0 {
		log.Fatalf("No slides found in %s", source)
	}

	log.Infof("Found %d slides in %s", len(locators), source)
	log.Infof("Shuffle: %v", viper.GetBool("shuffle"))
	locators = slides.Sample(locators, viper.GetBool("shuffle"), viper.GetInt("limit"))

	win, err := glfwhost.New(glfwhost.Config{
		Title:      "fadeshow",
		Width:      viper.GetInt("width"),
		Height:     viper.GetInt("height"),
		Fullscreen: viper.GetBool("fullscreen"),
		VSync:      viper.GetBool("vsync"),
		Framerate:  viper.GetInt("framerate_limit"),
	})
	if err != nil {
		log.Fatalf("Unable to open window: %v", err)
	}
	defer win.Close()

	manager := ipc.NewManager(win, gldevice.New(), locators, managerOptions(client, gldevice.MaxTextureSize()))

	served := make(chan struct{})
	go func() {
		defer close(served)
		log.Infof("Starting socket server")
		if err := ipc.Start(ctx, manager); err != nil {
			log.Errorf("Socket server failed: %v", err)
		}
	}()

	log.Infof("Running with %d slides", len(manager.GetSlides()))
	manager.Run(ctx)

	cancel()
	<-served
	log.Infof("fadeshow exited")
}

// findSlides lists the locators named by source: a directory, or an http(s)
// URL serving a JSON array.
func findSlides(ctx context.Context, client *resty.Client, source string) ([]string, error) {
	if slides.IsRemote(source) {
		return slides.FetchList(ctx, client, source)
	}
	return slides.Discover(utils.CanonicalPath(source))
}

// managerOptions maps the config onto the manager. hwMax is the texture size
// limit of the GL implementation, 0 if unknown.
func managerOptions(client *resty.Client, hwMax int) ipc.Options {
	maxSize := viper.GetInt("max_texture_size")
	if hwMax > 0 && (maxSize <= 0 || hwMax < maxSize) {
		maxSize = hwMax
	}

	return ipc.Options{
		Slideshow: glrender.Options{
			Interval:    time.Duration(viper.GetInt("interval_ms")) * time.Millisecond,
			Transition:  time.Duration(viper.GetInt("transition_ms")) * time.Millisecond,
			ResizeEvery: viper.GetInt("resize_check_frames"),
		},
		Loader: []loader.Option{
			loader.WithClient(client),
			loader.WithMaxSize(maxSize),
		},
		Shuffle: viper.GetBool("shuffle"),
		Limit:   viper.GetInt("limit"),
	}
}

func setupRotatingLogger() {
	home := os.Getenv("HOME")
	logDir := filepath.Join(home, ".local", "share", "fadeshow")
	logPath := filepath.Join(logDir, "fadeshow.log")

	writer, err := rotatelogs.New(
		logPath+".%Y%m%d%H%M",
		rotatelogs.WithLinkName(logPath),
		rotatelogs.WithMaxAge(7*24*time.Hour),
		rotatelogs.WithRotationSize(10*1024*1024),
		rotatelogs.WithRotationTime(24*time.Hour),
	)
	if err != nil {
		log.Fatalf("failed to configure log rotation: %v", err)
	}

	log.SetOutput(writer)
	if !viper.GetBool("debug") {
		log.SetLevel(log.InfoLevel)
	}
}
