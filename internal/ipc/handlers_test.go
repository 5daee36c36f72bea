package ipc

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"resty.dev/v3"

	"github.com/matjam/fadeshow/internal/glrender"
)

type fakeManager struct {
	sync.Mutex
	commands []Command
	err      error
}

func (f *fakeManager) CurrentSlide() string { return "/slides/b.png" }

func (f *fakeManager) Status() glrender.Status {
	return glrender.Status{Slides: 3, Current: 1, Next: 2, Mix: 0.5, Phase: "transitioning", Running: true}
}

func (f *fakeManager) EnqueueCommand(cmd Command) error {
	f.Lock()
	defer f.Unlock()
	if f.err != nil {
		return f.err
	}
	f.commands = append(f.commands, cmd)
	return nil
}

func serve(t *testing.T, m ManagerInterface) *resty.Client {
	t.Helper()
	srv := httptest.NewServer(NewServer(m))
	t.Cleanup(srv.Close)

	client := resty.New().SetBaseURL(srv.URL)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestStatusRoundTrip(t *testing.T) {
	client := serve(t, &fakeManager{})

	res, err := sendCommand(client, Command{Type: CommandStatus})
	require.NoError(t, err)
	assert.Equal(t, "ok", res.Status)

	status, ok := res.Data.(StatusResponse)
	require.True(t, ok)
	assert.Equal(t, "/slides/b.png", status.CurrentSlide)
	assert.NotZero(t, status.PID)
	assert.NotEmpty(t, status.Version)
	assert.Equal(t, 3, status.Slideshow.Slides)
	assert.Equal(t, "transitioning", status.Slideshow.Phase)
	assert.InDelta(t, 0.5, status.Slideshow.Mix, 1e-6)
}

func TestCommandsAreEnqueued(t *testing.T) {
	m := &fakeManager{}
	client := serve(t, m)

	for _, cmd := range []Command{
		{Type: CommandNext},
		{Type: CommandLoad, Args: []string{"a.png", "https://example.com/b.jpg"}},
		{Type: CommandStop},
	} {
		res, err := sendCommand(client, cmd)
		require.NoError(t, err, cmd.Type)
		assert.Equal(t, "ok", res.Status)
	}

	require.Len(t, m.commands, 3)
	assert.Equal(t, CommandNext, m.commands[0].Type)
	assert.Equal(t, CommandLoad, m.commands[1].Type)
	assert.Equal(t, []string{"a.png", "https://example.com/b.jpg"}, m.commands[1].Args)
	assert.Equal(t, CommandStop, m.commands[2].Type)
}

func TestLoadRejectsEmptyList(t *testing.T) {
	m := &fakeManager{}
	e := NewServer(m)

	for _, body := range []string{`[]`, `{"not":"a list"}`} {
		req := httptest.NewRequest(http.MethodPost, "/load", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
	assert.Empty(t, m.commands)
}

func TestFullQueueIsUnavailable(t *testing.T) {
	client := serve(t, &fakeManager{err: errors.New("command queue is full")})

	_, err := sendCommand(client, Command{Type: CommandNext})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestUnknownCommand(t *testing.T) {
	client := serve(t, &fakeManager{})

	_, err := sendCommand(client, Command{Type: "reboot"})
	assert.Error(t, err)
}

func TestSocketPathHonoursRuntimeDir(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "/run/user/1000")
	assert.Equal(t, "/run/user/1000/fadeshow.sock", SocketPath())
}
