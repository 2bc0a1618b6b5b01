package console

import (
	"context"

	"github.com/chainguard-dev/clog"
)

// Start asks the provider to start the instance. Starting a running
// instance is left to the provider to ignore.
func (s *Service) Start(ctx context.Context) error {
	change, err := s.instances.StartInstance(ctx, s.target.InstanceID)
	if err != nil {
		return upstream("start instance", err)
	}
	clog.FromContext(ctx).Info("start requested", "instance", s.target.InstanceID, "from", change.Previous, "to", change.Current)
	return nil
}

// Stop asks the provider to stop the instance.
func (s *Service) Stop(ctx context.Context) error {
	change, err := s.instances.StopInstance(ctx, s.target.InstanceID)
	if err != nil {
		return upstream("stop instance", err)
	}
	clog.FromContext(ctx).Info("stop requested", "instance", s.target.InstanceID, "from", change.Previous, "to", change.Current)
	return nil
}
