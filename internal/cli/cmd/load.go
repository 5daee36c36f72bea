package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matjam/fadeshow/internal/cli/cmd/utils"
	"github.com/matjam/fadeshow/internal/ipc"
	"github.com/matjam/fadeshow/internal/slides"
)

func NewLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load [slide1.jpg] [https://host/slide2.png] ...",
		Short: "Load a new set of slides into the daemon",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := ipc.SendLoad(loadArgs(args)); err != nil {
				log.Fatalf("Failed to send 'load' command: %v", err)
			}
			log.Infof("Loaded %d slides", len(args))
		},
	}
}

// loadArgs makes local paths absolute, since the daemon runs from /.
func loadArgs(args []string) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		if slides.IsRemote(arg) {
			out[i] = arg
			continue
		}
		out[i] = utils.AbsolutePath(arg)
	}
	return out
}
