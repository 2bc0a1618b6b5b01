package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"path"

	awss3 "tasnim.dev/gamebox/internal/aws/s3"
)

const indexAsset = "index.html"

var ErrAssetNotFound = errors.New("asset not found")

//go:embed static
var staticFS embed.FS

type Asset struct {
	Body               []byte
	ContentType        string
	ContentDisposition string
}

type AssetSource interface {
	Asset(ctx context.Context, name string) (Asset, error)
}

// EmbeddedAssets serves the console bundled into the binary.
type EmbeddedAssets struct {
	files fs.FS
}

func NewEmbeddedAssets() *EmbeddedAssets {
	files, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return &EmbeddedAssets{files: files}
}

func (e *EmbeddedAssets) Asset(_ context.Context, name string) (Asset, error) {
	data, err := fs.ReadFile(e.files, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Asset{}, fmt.Errorf("%s: %w", name, ErrAssetNotFound)
		}
		return Asset{}, err
	}
	return Asset{Body: data, ContentType: contentType(name, "")}, nil
}

type ObjectGetter interface {
	GetObject(ctx context.Context, bucket, key string) (awss3.Object, error)
}

// BucketAssets serves the console out of an S3 bucket, one object per path.
type BucketAssets struct {
	objects ObjectGetter
	bucket  string
}

func NewBucketAssets(objects ObjectGetter, bucket string) *BucketAssets {
	return &BucketAssets{objects: objects, bucket: bucket}
}

func (b *BucketAssets) Asset(ctx context.Context, name string) (Asset, error) {
	obj, err := b.objects.GetObject(ctx, b.bucket, name)
	if err != nil {
		if errors.Is(err, awss3.ErrObjectNotFound) {
			return Asset{}, fmt.Errorf("%s: %w", name, ErrAssetNotFound)
		}
		return Asset{}, err
	}
	return Asset{
		Body:               obj.Body,
		ContentType:        contentType(name, obj.ContentType),
		ContentDisposition: obj.ContentDisposition,
	}, nil
}

func contentType(name, declared string) string {
	if declared != "" {
		return declared
	}
	if t := mime.TypeByExtension(path.Ext(name)); t != "" {
		return t
	}
	return "application/octet-stream"
}
