package cli

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/sevlyar/go-daemon"

	"github.com/matjam/fadeshow/internal/cli/cmd"
	"github.com/matjam/fadeshow/internal/ipc"
)

func daemonContext() *daemon.Context {
	return &daemon.Context{
		PidFileName: filepath.Join(filepath.Dir(ipc.SocketPath()), "fadeshow.pid"),
		PidFilePerm: 0644,
		WorkDir:     "/",
		Umask:       027,
		Env:         append(os.Environ(), "BACKGROUND_PROCESS=1"),
	}
}

// runInBackground forks a detached copy of the process that runs the
// manager. The parent returns as soon as the child has started.
func runInBackground() {
	dctx := daemonContext()

	child, err := dctx.Reborn()
	if err != nil {
		log.Fatalf("Unable to run in background: %v", err)
	}
	if child != nil {
		log.Infof("fadeshow started in background with PID %d", child.Pid)
		return
	}
	defer func() {
		if err := dctx.Release(); err != nil {
			log.Errorf("Unable to release pid file: %v", err)
		}
	}()

	cmd.StartManager()
}
