package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
	awss3sdk "github.com/aws/aws-sdk-go-v2/service/s3"
	awsssmsdk "github.com/aws/aws-sdk-go-v2/service/ssm"

	awsec2 "tasnim.dev/gamebox/internal/aws/ec2"
	awss3 "tasnim.dev/gamebox/internal/aws/s3"
	awsssm "tasnim.dev/gamebox/internal/aws/ssm"
	awsvpc "tasnim.dev/gamebox/internal/aws/vpc"
)

// ServiceClient bundles the collaborator clients the control plane uses.
type ServiceClient struct {
	EC2       *awsec2.Client
	VPC       *awsvpc.Client
	SSM       *awsssm.Client
	S3        *awss3.Client
	AccountID string
}

func NewServiceClient(ctx context.Context, profile, region string) (*ServiceClient, error) {
	cfg, err := LoadConfig(ctx, profile, region)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	ec2Client := ec2.NewFromConfig(cfg)

	return &ServiceClient{
		EC2:       awsec2.NewClient(ec2Client),
		VPC:       awsvpc.NewClient(ec2Client),
		SSM:       awsssm.NewClient(awsssmsdk.NewFromConfig(cfg)),
		S3:        awss3.NewClient(awss3sdk.NewFromConfig(cfg)),
		AccountID: GetAccountID(ctx, cfg),
	}, nil
}
