package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"tasnim.dev/gamebox/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "gamebox",
		Short:         "Control plane for a single EC2 instance",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(cmd.NewServeCmd())
	rootCmd.AddCommand(cmd.NewConsoleCmd())
	rootCmd.AddCommand(cmd.NewStatusCmd())
	rootCmd.AddCommand(cmd.NewStartCmd())
	rootCmd.AddCommand(cmd.NewStopCmd())
	rootCmd.AddCommand(cmd.NewUpdateToMeCmd())
	rootCmd.AddCommand(cmd.NewPasswordCmd())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
