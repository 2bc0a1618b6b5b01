package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/chainguard-dev/clog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	awsclient "tasnim.dev/gamebox/internal/aws"
	"tasnim.dev/gamebox/internal/config"
	"tasnim.dev/gamebox/internal/console"
)

// awsFlags are the connection flags every command shares.
type awsFlags struct {
	profile string
	region  string
}

func (f *awsFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.profile, "profile", "p", "", "AWS profile to use")
	cmd.Flags().StringVarP(&f.region, "region", "r", "", "AWS region to use")
}

type logFormat int

const (
	textLogs logFormat = iota
	jsonLogs
)

func newLogger(w io.Writer, format logFormat, level slog.Level) *clog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == jsonLogs {
		return clog.New(slog.NewJSONHandler(w, opts))
	}
	return clog.New(slog.NewTextHandler(w, opts))
}

// app is everything a command needs once configuration is resolved.
type app struct {
	cfg     *config.Config
	profile string
	region  string
	client  *awsclient.ServiceClient
	service *console.Service
}

type appOptions struct {
	logOutput io.Writer
	logFormat logFormat
	registry  prometheus.Registerer
}

func setup(ctx context.Context, flags awsFlags, opts appOptions) (context.Context, *app, error) {
	cfg, err := config.Load()
	if err != nil {
		return ctx, nil, fmt.Errorf("loading config: %w", err)
	}

	logger := newLogger(opts.logOutput, opts.logFormat, cfg.Level())
	slog.SetDefault(&logger.Logger)
	ctx = clog.WithLogger(ctx, logger)

	target, err := cfg.Target()
	if err != nil {
		return ctx, nil, err
	}

	profile, region := cfg.Merge(flags.profile, flags.region)
	client, err := awsclient.NewServiceClient(ctx, profile, region)
	if err != nil {
		return ctx, nil, fmt.Errorf("initializing AWS client: %w", err)
	}

	deps := console.Deps{
		Instances:   client.EC2,
		Groups:      client.VPC,
		Parameters:  client.SSM,
		RedactStack: cfg.RedactStack,
	}
	if opts.registry != nil {
		deps.Metrics = console.NewMetrics(opts.registry)
	}

	logger.Debug("configured", "instance_id", target.InstanceID, "security_group_id", target.SecurityGroupID,
		"profile", profile, "region", region, "account_id", client.AccountID)

	return ctx, &app{
		cfg:     cfg,
		profile: profile,
		region:  region,
		client:  client,
		service: console.NewService(target, deps),
	}, nil
}
