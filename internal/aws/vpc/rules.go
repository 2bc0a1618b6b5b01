package vpc

import (
	"fmt"
	"net/netip"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// RevokeEntries rebuilds described entries into revoke entries. The provider
// treats an explicit empty list differently from an absent one, so every
// empty source list is dropped to nil.
func RevokeEntries(perms []types.IpPermission) []types.IpPermission {
	out := make([]types.IpPermission, 0, len(perms))
	for _, p := range perms {
		out = append(out, types.IpPermission{
			FromPort:         p.FromPort,
			ToPort:           p.ToPort,
			IpProtocol:       p.IpProtocol,
			IpRanges:         noEmpty(p.IpRanges),
			Ipv6Ranges:       noEmpty(p.Ipv6Ranges),
			PrefixListIds:    noEmpty(p.PrefixListIds),
			UserIdGroupPairs: noEmpty(p.UserIdGroupPairs),
		})
	}
	return out
}

func noEmpty[T any](xs []T) []T {
	if xs != nil && len(xs) == 0 {
		return nil
	}
	return xs
}

// AllowedAddresses lists the IPv4 ranges of the first entry. Single-host
// ranges are reported as bare addresses.
func AllowedAddresses(perms []types.IpPermission) []string {
	if len(perms) == 0 {
		return nil
	}
	var addrs []string
	for _, r := range perms[0].IpRanges {
		cidr := aws.ToString(r.CidrIp)
		if prefix, err := netip.ParsePrefix(cidr); err == nil && prefix.IsSingleIP() {
			cidr = prefix.Addr().String()
		}
		addrs = append(addrs, cidr)
	}
	return addrs
}

// HostCIDR returns the /32 range covering addr.
func HostCIDR(addr netip.Addr) string {
	return netip.PrefixFrom(addr, 32).String()
}

// DescribeRules renders entries for logs and the terminal console.
func DescribeRules(perms []types.IpPermission) []IngressRule {
	rules := make([]IngressRule, 0, len(perms))
	for _, p := range perms {
		rule := IngressRule{
			Protocol:  NormalizeProtocol(aws.ToString(p.IpProtocol)),
			PortRange: portRange(p),
		}
		for _, r := range p.IpRanges {
			rule.Sources = append(rule.Sources, aws.ToString(r.CidrIp))
		}
		for _, r := range p.Ipv6Ranges {
			rule.Sources = append(rule.Sources, aws.ToString(r.CidrIpv6))
		}
		for _, pl := range p.PrefixListIds {
			rule.Sources = append(rule.Sources, aws.ToString(pl.PrefixListId))
		}
		for _, g := range p.UserIdGroupPairs {
			rule.Sources = append(rule.Sources, aws.ToString(g.GroupId))
		}
		rules = append(rules, rule)
	}
	return rules
}

func portRange(p types.IpPermission) string {
	if aws.ToString(p.IpProtocol) == AllProtocols || p.FromPort == nil {
		return "All"
	}
	from, to := aws.ToInt32(p.FromPort), aws.ToInt32(p.ToPort)
	if from == to {
		return fmt.Sprintf("%d", from)
	}
	return fmt.Sprintf("%d-%d", from, to)
}

// NormalizeProtocol converts AWS numeric protocol strings to human-readable names.
func NormalizeProtocol(protocol string) string {
	switch protocol {
	case AllProtocols:
		return "All"
	case "6", "tcp":
		return "TCP"
	case "17", "udp":
		return "UDP"
	case "1", "icmp":
		return "ICMP"
	default:
		return protocol
	}
}
