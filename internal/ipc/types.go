package ipc

import "github.com/matjam/fadeshow/internal/glrender"

type CommandType string

const (
	CommandStop   CommandType = "stop"
	CommandNext   CommandType = "next"
	CommandLoad   CommandType = "load"
	CommandStatus CommandType = "status"
)

type Command struct {
	Type CommandType `json:"type"`
	Args []string    `json:"args"`
}

// ManagerInterface is what the socket handlers need from the manager.
type ManagerInterface interface {
	CurrentSlide() string
	Status() glrender.Status
	EnqueueCommand(Command) error
}

type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type StatusResponse struct {
	Status       string          `json:"status"`
	Message      string          `json:"message"`
	Version      string          `json:"version"`
	PID          int             `json:"pid"`
	Socket       string          `json:"socket"`
	Config       string          `json:"config"`
	CurrentSlide string          `json:"current_slide"`
	Slideshow    glrender.Status `json:"slideshow"`
}
