package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"tasnim.dev/gamebox/internal/console"
	"tasnim.dev/gamebox/internal/publicip"
)

// runAction performs action (if any) and prints the resulting status. The
// status is printed even when the action fails.
func runAction(cmd *cobra.Command, flags awsFlags, action func(ctx context.Context, a *app) (console.Action, error)) error {
	ctx, a, err := setup(cmd.Context(), flags, appOptions{logOutput: os.Stderr, logFormat: textLogs})
	if err != nil {
		return err
	}

	var actionErr error
	if action != nil {
		var act console.Action
		act, actionErr = action(ctx, a)
		if actionErr == nil {
			actionErr = a.service.Perform(ctx, act)
		}
	}

	status, err := a.service.Status(ctx)
	if err == nil {
		err = printJSON(cmd.OutOrStdout(), status)
	}

	if actionErr != nil {
		if stack := console.StackOf(actionErr); stack != "" && !a.cfg.RedactStack {
			fmt.Fprintln(cmd.ErrOrStderr(), stack)
		}
		return actionErr
	}
	return err
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func fixed(action console.Action) func(context.Context, *app) (console.Action, error) {
	return func(context.Context, *app) (console.Action, error) {
		return action, nil
	}
}

func NewStatusCmd() *cobra.Command {
	var flags awsFlags
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show instance state, public address and allowed client address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, flags, nil)
		},
	}
	flags.register(cmd)
	return cmd
}

func NewStartCmd() *cobra.Command {
	var flags awsFlags
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the instance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, flags, fixed(console.Start{}))
		},
	}
	flags.register(cmd)
	return cmd
}

func NewStopCmd() *cobra.Command {
	var flags awsFlags
	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the instance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, flags, fixed(console.Stop{}))
		},
	}
	flags.register(cmd)
	return cmd
}

func NewPasswordCmd() *cobra.Command {
	var flags awsFlags
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Retrieve and decrypt the administrator password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, flags, fixed(console.RetrievePassword{}))
		},
	}
	flags.register(cmd)
	return cmd
}

func NewUpdateToMeCmd() *cobra.Command {
	var flags awsFlags
	var endpoint string
	cmd := &cobra.Command{
		Use:   "update-to-me [ipv4]",
		Short: "Replace the ingress rules with one allowing only the given (or this machine's) address",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, flags, func(ctx context.Context, _ *app) (console.Action, error) {
				if len(args) == 1 {
					return console.UpdateToMe{IPAddress: args[0]}, nil
				}
				addr, err := publicip.New(endpoint).Lookup(ctx)
				if err != nil {
					return nil, err
				}
				return console.UpdateToMe{IPAddress: addr.String()}, nil
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&endpoint, "ip-endpoint", publicip.DefaultEndpoint, "service that echoes the caller's public address")
	return cmd
}
