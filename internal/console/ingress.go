package console

import (
	"context"

	"github.com/chainguard-dev/clog"

	awsvpc "tasnim.dev/gamebox/internal/aws/vpc"
)

// UpdateToMe replaces every ingress entry of the security group with one
// entry allowing all traffic from ipAddress/32.
//
// Revoke and authorize are separate calls. If authorize fails after revoke
// succeeded the group is left with no entries, which denies all access.
func (s *Service) UpdateToMe(ctx context.Context, ipAddress string) error {
	addr, err := parseIPv4(ipAddress)
	if err != nil {
		return err
	}
	log := clog.FromContext(ctx)

	perms, err := s.groups.IngressPermissions(ctx, s.target.SecurityGroupID)
	if err != nil {
		return upstream("describe security group", err)
	}

	log.Info("revoking ingress", "group", s.target.SecurityGroupID, "rules", awsvpc.DescribeRules(perms))
	if err := s.groups.RevokeIngress(ctx, s.target.SecurityGroupID, perms); err != nil {
		return upstream("revoke ingress", err)
	}

	cidr := awsvpc.HostCIDR(addr)
	if err := s.groups.AuthorizeAddress(ctx, s.target.SecurityGroupID, cidr); err != nil {
		log.Warn("ingress revoked but not re-authorized", "group", s.target.SecurityGroupID, "cidr", cidr)
		return upstream("authorize ingress", err)
	}
	log.Info("authorized ingress", "group", s.target.SecurityGroupID, "cidr", cidr)
	return nil
}
