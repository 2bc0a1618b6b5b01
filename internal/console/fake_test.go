package console

import (
	"context"
	"errors"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	awsec2 "tasnim.dev/gamebox/internal/aws/ec2"
	"tasnim.dev/gamebox/internal/config"
)

var testTarget = config.Target{
	InstanceID:       "i-abc123",
	SecurityGroupID:  "sg-111",
	KeyParameterName: "/KeyMaterial/gamebox",
}

// fakeCloud is an in-memory instance, security group and parameter store.
type fakeCloud struct {
	mu sync.Mutex

	state    string
	dnsName  string
	publicIP string
	perms    []types.IpPermission

	passwordData string
	keyMaterial  string

	revoked    [][]types.IpPermission
	authorized []string
	starts     int
	stops      int

	describeErr  error
	groupErr     error
	revokeErr    error
	authorizeErr error
	startErr     error
	passwordErr  error
	parameterErr error
}

func newFakeCloud() *fakeCloud {
	return &fakeCloud{
		state:    "running",
		dnsName:  "ec2-54-21-3-100.compute-1.amazonaws.com",
		publicIP: "54.21.3.100",
		perms: []types.IpPermission{{
			IpProtocol: aws.String("-1"),
			IpRanges:   []types.IpRange{{CidrIp: aws.String("1.2.3.4/32")}},
			Ipv6Ranges: []types.Ipv6Range{},
		}},
	}
}

func (f *fakeCloud) DescribeInstance(ctx context.Context, instanceID string) (awsec2.Instance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.describeErr != nil {
		return awsec2.Instance{}, f.describeErr
	}
	return awsec2.Instance{InstanceID: instanceID, State: f.state, PublicDNSName: f.dnsName, PublicIP: f.publicIP}, nil
}

func (f *fakeCloud) StartInstance(ctx context.Context, instanceID string) (awsec2.StateChange, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.startErr != nil {
		return awsec2.StateChange{}, f.startErr
	}
	f.starts++
	prev := f.state
	if f.state == "stopped" {
		f.state = "pending"
	}
	return awsec2.StateChange{Previous: prev, Current: f.state}, nil
}

func (f *fakeCloud) StopInstance(ctx context.Context, instanceID string) (awsec2.StateChange, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
	prev := f.state
	if f.state == "running" {
		f.state = "stopping"
	}
	return awsec2.StateChange{Previous: prev, Current: f.state}, nil
}

func (f *fakeCloud) PasswordData(ctx context.Context, instanceID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.passwordData, f.passwordErr
}

func (f *fakeCloud) IngressPermissions(ctx context.Context, groupID string) ([]types.IpPermission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.groupErr != nil {
		return nil, f.groupErr
	}
	return append([]types.IpPermission(nil), f.perms...), nil
}

func (f *fakeCloud) RevokeIngress(ctx context.Context, groupID string, perms []types.IpPermission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.revokeErr != nil {
		return f.revokeErr
	}
	f.revoked = append(f.revoked, perms)
	if len(perms) > 0 {
		f.perms = nil
	}
	return nil
}

func (f *fakeCloud) AuthorizeAddress(ctx context.Context, groupID, cidr string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.authorizeErr != nil {
		return f.authorizeErr
	}
	f.authorized = append(f.authorized, cidr)
	f.perms = append(f.perms, types.IpPermission{
		IpProtocol: aws.String("-1"),
		IpRanges:   []types.IpRange{{CidrIp: aws.String(cidr)}},
	})
	return nil
}

func (f *fakeCloud) SecureString(ctx context.Context, name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.parameterErr != nil {
		return "", f.parameterErr
	}
	if name != testTarget.KeyParameterName {
		return "", errors.New("ParameterNotFound")
	}
	return f.keyMaterial, nil
}

func newTestService(cloud *fakeCloud) *Service {
	return NewService(testTarget, Deps{
		Instances:  cloud,
		Groups:     cloud,
		Parameters: cloud,
	})
}
