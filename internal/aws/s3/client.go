package s3

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"tasnim.dev/gamebox/internal/constants"
)

var (
	ErrObjectNotFound = errors.New("object not found")
	ErrObjectTooLarge = errors.New("object too large")
)

type ObjectAPI interface {
	GetObject(ctx context.Context, params *awss3.GetObjectInput, optFns ...func(*awss3.Options)) (*awss3.GetObjectOutput, error)
}

type Client struct {
	api ObjectAPI
}

func NewClient(api ObjectAPI) *Client {
	return &Client{api: api}
}

// GetObject reads an object up to constants.MaxAssetSize bytes.
func (c *Client) GetObject(ctx context.Context, bucket, key string) (Object, error) {
	out, err := c.api.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *s3types.NoSuchKey
		if errors.As(err, &nsk) {
			return Object{}, fmt.Errorf("GetObject(%s): %w", key, ErrObjectNotFound)
		}
		return Object{}, fmt.Errorf("GetObject(%s): %w", key, err)
	}
	defer out.Body.Close()

	if aws.ToInt64(out.ContentLength) > constants.MaxAssetSize {
		return Object{}, fmt.Errorf("GetObject(%s): %w", key, ErrObjectTooLarge)
	}
	data, err := io.ReadAll(io.LimitReader(out.Body, constants.MaxAssetSize+1))
	if err != nil {
		return Object{}, fmt.Errorf("reading %s: %w", key, err)
	}
	if int64(len(data)) > constants.MaxAssetSize {
		return Object{}, fmt.Errorf("GetObject(%s): %w", key, ErrObjectTooLarge)
	}

	return Object{
		Key:                key,
		Body:               data,
		ContentType:        aws.ToString(out.ContentType),
		ContentDisposition: aws.ToString(out.ContentDisposition),
	}, nil
}
