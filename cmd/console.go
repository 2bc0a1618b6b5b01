package cmd

import (
	"io"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"tasnim.dev/gamebox/internal/publicip"
	"tasnim.dev/gamebox/internal/tui"
)

func NewConsoleCmd() *cobra.Command {
	var flags awsFlags
	var endpoint string

	cmd := &cobra.Command{
		Use:   "console",
		Short: "Interactive terminal console for the instance",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Log output would corrupt the alternate screen.
			_, a, err := setup(cmd.Context(), flags, appOptions{logOutput: io.Discard, logFormat: textLogs})
			if err != nil {
				return err
			}

			model := tui.NewModel(a.service, publicip.New(endpoint), a.cfg.InstanceID, a.profile)
			p := tea.NewProgram(model)
			_, err = p.Run()
			return err
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&endpoint, "ip-endpoint", publicip.DefaultEndpoint, "service that echoes the caller's public address")

	return cmd
}
