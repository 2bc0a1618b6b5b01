package ssm

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"
)

var ErrParameterNotFound = errors.New("parameter has no value")

type ParameterAPI interface {
	GetParameter(ctx context.Context, params *awsssm.GetParameterInput, optFns ...func(*awsssm.Options)) (*awsssm.GetParameterOutput, error)
}

type Client struct {
	api ParameterAPI
}

func NewClient(api ParameterAPI) *Client {
	return &Client{api: api}
}

// SecureString reads a parameter with server-side decryption.
func (c *Client) SecureString(ctx context.Context, name string) (string, error) {
	out, err := c.api.GetParameter(ctx, &awsssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("GetParameter: %w", err)
	}
	if out.Parameter == nil || out.Parameter.Value == nil {
		return "", fmt.Errorf("GetParameter: %w: %s", ErrParameterNotFound, name)
	}
	return aws.ToString(out.Parameter.Value), nil
}
