package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matjam/fadeshow/internal/cli/cmd/utils"
	"github.com/matjam/fadeshow/internal/ipc"
)

func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Get fadeshow status",
		Long:  `Returns the current status of the fadeshow process and the slide on screen.`,
		Run: func(cmd *cobra.Command, args []string) {
			status, err := ipc.SendStatus()
			if err != nil {
				log.Errorf("Error sending command: %v", err)
				return
			}

			utils.PrintJSONColored(status)
		},
	}
}
