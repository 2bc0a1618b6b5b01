package vpc

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsec2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// AllProtocols is the EC2 protocol value matching every IP protocol.
const AllProtocols = "-1"

var ErrSecurityGroupNotFound = errors.New("security group not found")

type SecurityGroupAPI interface {
	DescribeSecurityGroups(ctx context.Context, params *awsec2.DescribeSecurityGroupsInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeSecurityGroupsOutput, error)
	RevokeSecurityGroupIngress(ctx context.Context, params *awsec2.RevokeSecurityGroupIngressInput, optFns ...func(*awsec2.Options)) (*awsec2.RevokeSecurityGroupIngressOutput, error)
	AuthorizeSecurityGroupIngress(ctx context.Context, params *awsec2.AuthorizeSecurityGroupIngressInput, optFns ...func(*awsec2.Options)) (*awsec2.AuthorizeSecurityGroupIngressOutput, error)
}

type Client struct {
	api SecurityGroupAPI
}

func NewClient(api SecurityGroupAPI) *Client {
	return &Client{api: api}
}

// IngressPermissions returns the ingress entries of the security group.
func (c *Client) IngressPermissions(ctx context.Context, groupID string) ([]types.IpPermission, error) {
	out, err := c.api.DescribeSecurityGroups(ctx, &awsec2.DescribeSecurityGroupsInput{
		GroupIds: []string{groupID},
	})
	if err != nil {
		return nil, fmt.Errorf("DescribeSecurityGroups: %w", err)
	}
	if len(out.SecurityGroups) == 0 {
		return nil, fmt.Errorf("DescribeSecurityGroups: %w: %s", ErrSecurityGroupNotFound, groupID)
	}
	return out.SecurityGroups[0].IpPermissions, nil
}

// RevokeIngress revokes every given entry in a single call. Nothing is sent
// when perms is empty.
func (c *Client) RevokeIngress(ctx context.Context, groupID string, perms []types.IpPermission) error {
	if len(perms) == 0 {
		return nil
	}
	_, err := c.api.RevokeSecurityGroupIngress(ctx, &awsec2.RevokeSecurityGroupIngressInput{
		GroupId:       aws.String(groupID),
		IpPermissions: RevokeEntries(perms),
	})
	if err != nil {
		return fmt.Errorf("RevokeSecurityGroupIngress: %w", err)
	}
	return nil
}

// AuthorizeAddress allows all protocols and ports from a single CIDR.
func (c *Client) AuthorizeAddress(ctx context.Context, groupID, cidr string) error {
	_, err := c.api.AuthorizeSecurityGroupIngress(ctx, &awsec2.AuthorizeSecurityGroupIngressInput{
		GroupId:    aws.String(groupID),
		CidrIp:     aws.String(cidr),
		IpProtocol: aws.String(AllProtocols),
	})
	if err != nil {
		return fmt.Errorf("AuthorizeSecurityGroupIngress: %w", err)
	}
	return nil
}
