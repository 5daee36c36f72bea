package ipc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"

	"github.com/matjam/fadeshow/internal/middleware"
)

// SocketPath is where the control socket lives: $XDG_RUNTIME_DIR, or the temp
// dir when that is unset.
func SocketPath() string {
	sockDir := os.Getenv("XDG_RUNTIME_DIR")
	if sockDir == "" {
		sockDir = os.TempDir()
	}
	return filepath.Join(sockDir, "fadeshow.sock")
}

// NewServer builds the echo instance serving the control routes.
func NewServer(manager ManagerInterface) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.CharmLog())

	RegisterRoutes(e, manager)
	return e
}

// Start serves the control socket until ctx is cancelled.
func Start(ctx context.Context, manager ManagerInterface) error {
	sockPath := SocketPath()
	if _, err := os.Stat(sockPath); err == nil {
		_ = os.Remove(sockPath)
	}

	listener, err := net.Listen("unix", sockPath)
	if err != nil {
		return fmt.Errorf("error listening on %s: %w", sockPath, err)
	}
	defer os.Remove(sockPath)

	e := NewServer(manager)
	e.Listener = listener

	go func() {
		<-ctx.Done()
		if err := e.Shutdown(context.Background()); err != nil {
			log.Debugf("socket server shutdown: %v", err)
		}
	}()

	log.Debugf("control socket listening on %s", sockPath)
	if err := e.StartServer(new(http.Server)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("socket server error: %w", err)
	}
	return nil
}

func RegisterRoutes(e *echo.Echo, manager ManagerInterface) {
	e.GET("/status", statusHandler(manager))
	e.POST("/stop", stopHandler(manager))
	e.POST("/next", nextHandler(manager))
	e.POST("/load", loadHandler(manager))
}
