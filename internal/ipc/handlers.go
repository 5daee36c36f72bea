package ipc

import (
	"net/http"
	"os"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/spf13/viper"

	"github.com/matjam/fadeshow"
)

// GET /status
func statusHandler(m ManagerInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSONPretty(http.StatusOK, StatusResponse{
			Status:       "ok",
			Message:      "fadeshow is running",
			Version:      strings.Trim(fadeshow.Version, "\n\r "),
			PID:          os.Getpid(),
			Socket:       SocketPath(),
			Config:       viper.ConfigFileUsed(),
			CurrentSlide: m.CurrentSlide(),
			Slideshow:    m.Status(),
		}, "  ")
	}
}

// POST /stop
func stopHandler(m ManagerInterface) echo.HandlerFunc {
	return enqueue(m, func(echo.Context) (Command, error) {
		return Command{Type: CommandStop}, nil
	})
}

// POST /next
func nextHandler(m ManagerInterface) echo.HandlerFunc {
	return enqueue(m, func(echo.Context) (Command, error) {
		return Command{Type: CommandNext}, nil
	})
}

// POST /load
func loadHandler(m ManagerInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		var locators []string
		if err := c.Bind(&locators); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid JSON array of slides"})
		}
		if len(locators) == 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "no slides given"})
		}

		if err := m.EnqueueCommand(Command{Type: CommandLoad, Args: locators}); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		}

		return c.JSON(http.StatusOK, map[string]any{
			"status": "ok",
			"loaded": len(locators),
		})
	}
}

func enqueue(m ManagerInterface, build func(echo.Context) (Command, error)) echo.HandlerFunc {
	return func(c echo.Context) error {
		cmd, err := build(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		if err := m.EnqueueCommand(cmd); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}
}
