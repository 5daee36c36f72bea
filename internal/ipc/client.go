package ipc

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"resty.dev/v3"
)

// NewClient returns a resty client that talks HTTP over the control socket.
func NewClient() *resty.Client {
	path := SocketPath()

	client := resty.NewWithClient(&http.Client{
		Transport: &http.Transport{
			DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
				var d net.Dialer
				return d.DialContext(ctx, "unix", path)
			},
		},
	})

	client.SetBaseURL("http://fadeshow")
	client.SetHeader("Content-Type", "application/json")
	client.SetHeader("Accept", "application/json")
	client.SetHeader("User-Agent", "fadeshow")
	return client
}

// SendCommand delivers cmd to the running daemon. Status requests return the
// daemon status in Data.
func SendCommand(cmd Command) (*Response, error) {
	client := NewClient()
	defer client.Close()
	return sendCommand(client, cmd)
}

func sendCommand(client *resty.Client, cmd Command) (*Response, error) {
	if cmd.Type == CommandStatus {
		status := StatusResponse{}
		response, err := client.R().SetResult(&status).Get("/status")
		if err != nil {
			return nil, err
		}
		if response.StatusCode() != http.StatusOK {
			return nil, fmt.Errorf("error sending command: %s", response.Status())
		}
		return &Response{Status: status.Status, Message: status.Message, Data: status}, nil
	}

	req := client.R()
	switch cmd.Type {
	case CommandStop, CommandNext:
	case CommandLoad:
		req.SetBody(cmd.Args)
	default:
		return nil, fmt.Errorf("unknown command %q", cmd.Type)
	}

	result := map[string]any{}
	response, err := req.SetResult(&result).Post("/" + string(cmd.Type))
	if err != nil {
		return nil, err
	}
	if response.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("error sending command: %s", response.Status())
	}

	status, _ := result["status"].(string)
	return &Response{Status: status, Data: result}, nil
}

func SendStatus() (*StatusResponse, error) {
	res, err := SendCommand(Command{Type: CommandStatus})
	if err != nil {
		return nil, err
	}
	status := res.Data.(StatusResponse)
	return &status, nil
}

func SendNext() error {
	_, err := SendCommand(Command{Type: CommandNext})
	return err
}

func SendStop() error {
	_, err := SendCommand(Command{Type: CommandStop})
	return err
}

func SendLoad(locators []string) error {
	_, err := SendCommand(Command{Type: CommandLoad, Args: locators})
	return err
}
