package ec2

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsec2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

var ErrInstanceNotFound = errors.New("instance not found")

type InstanceAPI interface {
	DescribeInstances(ctx context.Context, params *awsec2.DescribeInstancesInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeInstancesOutput, error)
	StartInstances(ctx context.Context, params *awsec2.StartInstancesInput, optFns ...func(*awsec2.Options)) (*awsec2.StartInstancesOutput, error)
	StopInstances(ctx context.Context, params *awsec2.StopInstancesInput, optFns ...func(*awsec2.Options)) (*awsec2.StopInstancesOutput, error)
	GetPasswordData(ctx context.Context, params *awsec2.GetPasswordDataInput, optFns ...func(*awsec2.Options)) (*awsec2.GetPasswordDataOutput, error)
}

type Client struct {
	api InstanceAPI
}

func NewClient(api InstanceAPI) *Client {
	return &Client{api: api}
}

// DescribeInstance returns the first instance reported for instanceID.
func (c *Client) DescribeInstance(ctx context.Context, instanceID string) (Instance, error) {
	out, err := c.api.DescribeInstances(ctx, &awsec2.DescribeInstancesInput{
		InstanceIds: []string{instanceID},
	})
	if err != nil {
		return Instance{}, fmt.Errorf("DescribeInstances: %w", err)
	}

	for _, reservation := range out.Reservations {
		for _, inst := range reservation.Instances {
			state := ""
			if inst.State != nil {
				state = string(inst.State.Name)
			}
			return Instance{
				InstanceID:    aws.ToString(inst.InstanceId),
				State:         state,
				PublicDNSName: aws.ToString(inst.PublicDnsName),
				PublicIP:      aws.ToString(inst.PublicIpAddress),
			}, nil
		}
	}
	return Instance{}, fmt.Errorf("DescribeInstances: %w: %s", ErrInstanceNotFound, instanceID)
}

func (c *Client) StartInstance(ctx context.Context, instanceID string) (StateChange, error) {
	out, err := c.api.StartInstances(ctx, &awsec2.StartInstancesInput{
		InstanceIds: []string{instanceID},
	})
	if err != nil {
		return StateChange{}, fmt.Errorf("StartInstances: %w", err)
	}
	return firstChange(out.StartingInstances), nil
}

func (c *Client) StopInstance(ctx context.Context, instanceID string) (StateChange, error) {
	out, err := c.api.StopInstances(ctx, &awsec2.StopInstancesInput{
		InstanceIds: []string{instanceID},
	})
	if err != nil {
		return StateChange{}, fmt.Errorf("StopInstances: %w", err)
	}
	return firstChange(out.StoppingInstances), nil
}

// PasswordData returns the base64 encrypted administrator password for the
// instance. An empty string means the provider has not generated it yet.
func (c *Client) PasswordData(ctx context.Context, instanceID string) (string, error) {
	out, err := c.api.GetPasswordData(ctx, &awsec2.GetPasswordDataInput{
		InstanceId: aws.String(instanceID),
	})
	if err != nil {
		return "", fmt.Errorf("GetPasswordData: %w", err)
	}
	return strings.TrimSpace(aws.ToString(out.PasswordData)), nil
}

func firstChange(changes []types.InstanceStateChange) StateChange {
	if len(changes) == 0 {
		return StateChange{}
	}
	var sc StateChange
	if changes[0].PreviousState != nil {
		sc.Previous = string(changes[0].PreviousState.Name)
	}
	if changes[0].CurrentState != nil {
		sc.Current = string(changes[0].CurrentState.Name)
	}
	return sc
}
