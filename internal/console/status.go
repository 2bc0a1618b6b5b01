package console

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"golang.org/x/sync/errgroup"

	awsec2 "tasnim.dev/gamebox/internal/aws/ec2"
	awsvpc "tasnim.dev/gamebox/internal/aws/vpc"
)

// Status is the per-request projection of the instance and its ingress.
type Status struct {
	InstanceState   string `json:"instanceState"`
	PublicDNSName   string `json:"publicDnsName"`
	PublicIPAddress string `json:"publicIpAddress"`
	ClientIP        string `json:"clientIp"`
	Password        string `json:"password,omitempty"`
}

// Status describes the instance and the security group concurrently.
func (s *Service) Status(ctx context.Context) (Status, error) {
	var (
		inst  awsec2.Instance
		perms []types.IpPermission
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		inst, err = s.instances.DescribeInstance(gctx, s.target.InstanceID)
		if err != nil {
			return upstream("describe instance", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		perms, err = s.groups.IngressPermissions(gctx, s.target.SecurityGroupID)
		if err != nil {
			return upstream("describe security group", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Status{}, err
	}

	status := Status{
		InstanceState:   inst.State,
		PublicDNSName:   inst.PublicDNSName,
		PublicIPAddress: inst.PublicIP,
		ClientIP:        strings.Join(awsvpc.AllowedAddresses(perms), ","),
	}
	if password, ok := s.passwords.Get(); ok {
		status.Password = password
	}
	return status, nil
}
