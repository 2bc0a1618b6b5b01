package vpc

import (
	"context"
	"errors"
	"testing"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	awsec2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

type mockSecurityGroupAPI struct {
	describeSecurityGroupsFunc        func(ctx context.Context, params *awsec2.DescribeSecurityGroupsInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeSecurityGroupsOutput, error)
	revokeSecurityGroupIngressFunc    func(ctx context.Context, params *awsec2.RevokeSecurityGroupIngressInput, optFns ...func(*awsec2.Options)) (*awsec2.RevokeSecurityGroupIngressOutput, error)
	authorizeSecurityGroupIngressFunc func(ctx context.Context, params *awsec2.AuthorizeSecurityGroupIngressInput, optFns ...func(*awsec2.Options)) (*awsec2.AuthorizeSecurityGroupIngressOutput, error)
}

func (m *mockSecurityGroupAPI) DescribeSecurityGroups(ctx context.Context, params *awsec2.DescribeSecurityGroupsInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeSecurityGroupsOutput, error) {
	return m.describeSecurityGroupsFunc(ctx, params, optFns...)
}
func (m *mockSecurityGroupAPI) RevokeSecurityGroupIngress(ctx context.Context, params *awsec2.RevokeSecurityGroupIngressInput, optFns ...func(*awsec2.Options)) (*awsec2.RevokeSecurityGroupIngressOutput, error) {
	return m.revokeSecurityGroupIngressFunc(ctx, params, optFns...)
}
func (m *mockSecurityGroupAPI) AuthorizeSecurityGroupIngress(ctx context.Context, params *awsec2.AuthorizeSecurityGroupIngressInput, optFns ...func(*awsec2.Options)) (*awsec2.AuthorizeSecurityGroupIngressOutput, error) {
	return m.authorizeSecurityGroupIngressFunc(ctx, params, optFns...)
}

func TestIngressPermissions(t *testing.T) {
	mock := &mockSecurityGroupAPI{
		describeSecurityGroupsFunc: func(ctx context.Context, params *awsec2.DescribeSecurityGroupsInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeSecurityGroupsOutput, error) {
			if len(params.GroupIds) != 1 || params.GroupIds[0] != "sg-111" {
				t.Errorf("GroupIds = %v, want [sg-111]", params.GroupIds)
			}
			return &awsec2.DescribeSecurityGroupsOutput{
				SecurityGroups: []types.SecurityGroup{{
					GroupId: awssdk.String("sg-111"),
					IpPermissions: []types.IpPermission{{
						IpProtocol: awssdk.String("-1"),
						IpRanges:   []types.IpRange{{CidrIp: awssdk.String("1.2.3.4/32")}},
					}},
				}},
			}, nil
		},
	}

	perms, err := NewClient(mock).IngressPermissions(context.Background(), "sg-111")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(perms) != 1 {
		t.Fatalf("expected 1 permission, got %d", len(perms))
	}
}

func TestIngressPermissions_NotFound(t *testing.T) {
	mock := &mockSecurityGroupAPI{
		describeSecurityGroupsFunc: func(ctx context.Context, params *awsec2.DescribeSecurityGroupsInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeSecurityGroupsOutput, error) {
			return &awsec2.DescribeSecurityGroupsOutput{}, nil
		},
	}

	_, err := NewClient(mock).IngressPermissions(context.Background(), "sg-missing")
	if !errors.Is(err, ErrSecurityGroupNotFound) {
		t.Fatalf("expected ErrSecurityGroupNotFound, got %v", err)
	}
}

func TestRevokeIngress_SendsTranslatedEntries(t *testing.T) {
	var got *awsec2.RevokeSecurityGroupIngressInput
	mock := &mockSecurityGroupAPI{
		revokeSecurityGroupIngressFunc: func(ctx context.Context, params *awsec2.RevokeSecurityGroupIngressInput, optFns ...func(*awsec2.Options)) (*awsec2.RevokeSecurityGroupIngressOutput, error) {
			got = params
			return &awsec2.RevokeSecurityGroupIngressOutput{}, nil
		},
	}

	err := NewClient(mock).RevokeIngress(context.Background(), "sg-111", []types.IpPermission{{
		IpProtocol:       awssdk.String("-1"),
		IpRanges:         []types.IpRange{{CidrIp: awssdk.String("1.2.3.4/32")}},
		Ipv6Ranges:       []types.Ipv6Range{},
		PrefixListIds:    []types.PrefixListId{},
		UserIdGroupPairs: []types.UserIdGroupPair{},
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil {
		t.Fatal("expected a revoke call")
	}
	if awssdk.ToString(got.GroupId) != "sg-111" {
		t.Errorf("GroupId = %s, want sg-111", awssdk.ToString(got.GroupId))
	}
	p := got.IpPermissions[0]
	if p.Ipv6Ranges != nil || p.PrefixListIds != nil || p.UserIdGroupPairs != nil {
		t.Errorf("empty source lists must be absent, got %+v", p)
	}
	if len(p.IpRanges) != 1 {
		t.Errorf("IpRanges = %+v, want 1 entry", p.IpRanges)
	}
}

func TestRevokeIngress_EmptyIsNoop(t *testing.T) {
	client := NewClient(&mockSecurityGroupAPI{})
	if err := client.RevokeIngress(context.Background(), "sg-111", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAuthorizeAddress(t *testing.T) {
	var got *awsec2.AuthorizeSecurityGroupIngressInput
	mock := &mockSecurityGroupAPI{
		authorizeSecurityGroupIngressFunc: func(ctx context.Context, params *awsec2.AuthorizeSecurityGroupIngressInput, optFns ...func(*awsec2.Options)) (*awsec2.AuthorizeSecurityGroupIngressOutput, error) {
			got = params
			return &awsec2.AuthorizeSecurityGroupIngressOutput{}, nil
		},
	}

	if err := NewClient(mock).AuthorizeAddress(context.Background(), "sg-111", "9.9.9.9/32"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if awssdk.ToString(got.CidrIp) != "9.9.9.9/32" {
		t.Errorf("CidrIp = %s, want 9.9.9.9/32", awssdk.ToString(got.CidrIp))
	}
	if awssdk.ToString(got.IpProtocol) != "-1" {
		t.Errorf("IpProtocol = %s, want -1", awssdk.ToString(got.IpProtocol))
	}
	if got.FromPort != nil || got.ToPort != nil {
		t.Errorf("expected no port range, got %v-%v", got.FromPort, got.ToPort)
	}
}

func TestAuthorizeAddress_Error(t *testing.T) {
	mock := &mockSecurityGroupAPI{
		authorizeSecurityGroupIngressFunc: func(ctx context.Context, params *awsec2.AuthorizeSecurityGroupIngressInput, optFns ...func(*awsec2.Options)) (*awsec2.AuthorizeSecurityGroupIngressOutput, error) {
			return nil, errors.New("throttled")
		},
	}

	err := NewClient(mock).AuthorizeAddress(context.Background(), "sg-111", "9.9.9.9/32")
	if err == nil || err.Error() != "AuthorizeSecurityGroupIngress: throttled" {
		t.Fatalf("unexpected error: %v", err)
	}
}
