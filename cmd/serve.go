package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/chainguard-dev/clog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"tasnim.dev/gamebox/internal/server"
)

func NewServeCmd() *cobra.Command {
	var flags awsFlags
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web console and its API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

			ctx, a, err := setup(ctx, flags, appOptions{
				logOutput: os.Stderr,
				logFormat: jsonLogs,
				registry:  reg,
			})
			if err != nil {
				return err
			}

			var assets server.AssetSource = server.NewEmbeddedAssets()
			if a.cfg.AssetBucket != "" {
				assets = server.NewBucketAssets(a.client.S3, a.cfg.AssetBucket)
			}

			router, err := server.NewRouter(server.Options{
				Dispatcher:     a.service,
				Assets:         assets,
				Gatherer:       reg,
				Logger:         clog.FromContext(ctx),
				TrustedProxies: a.cfg.TrustedProxies,
			})
			if err != nil {
				return fmt.Errorf("building router: %w", err)
			}

			if listen == "" {
				listen = a.cfg.Listen()
			}
			return server.Serve(ctx, listen, router)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&listen, "listen", "l", "", "address to listen on (default from config, then :8080)")

	return cmd
}
