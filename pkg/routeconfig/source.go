package routeconfig

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/outlet/pkg/router"
)

// ErrInvalidSource is returned for a source URI that names no file or object.
var ErrInvalidSource = errors.New("invalid route source")

// Source provides the raw bytes of a route configuration.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	String() string
}

// FileSource reads routes from the local filesystem.
type FileSource struct {
	Path string
}

// Open implements Source.
func (s FileSource) Open(context.Context) (io.ReadCloser, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open routes: %w", err)
	}
	return f, nil
}

func (s FileSource) String() string {
	return s.Path
}

// S3API is the part of the S3 client an S3Source needs.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads routes from an S3 object.
type S3Source struct {
	Client S3API
	Bucket string
	Key    string
}

// Open implements Source.
func (s S3Source) Open(ctx context.Context) (io.ReadCloser, error) {
	if s.Client == nil {
		return nil, fmt.Errorf("%w: %s: no S3 client", ErrInvalidSource, s)
	}
	out, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s, err)
	}
	return out.Body, nil
}

func (s S3Source) String() string {
	return "s3://" + s.Bucket + "/" + s.Key
}

// ParseSource turns a route source URI into a Source. "s3://bucket/key"
// selects an S3Source using client; anything else is a file path.
func ParseSource(uri string, client S3API) (Source, error) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		if uri == "" {
			return nil, fmt.Errorf("%w: empty path", ErrInvalidSource)
		}
		return FileSource{Path: uri}, nil
	}

	bucket, key, _ := strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return nil, fmt.Errorf("%w: %q: want s3://bucket/key", ErrInvalidSource, uri)
	}
	return S3Source{Client: client, Bucket: bucket, Key: key}, nil
}

// NewS3Client builds an S3 client from the default AWS configuration chain
// (environment, shared config, instance role). A non-empty endpoint selects
// an S3-compatible service with path-style addressing.
func NewS3Client(ctx context.Context, region, endpoint string) (*s3.Client, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// Open resolves uri and loads routes from it. An S3 client is created from
// the default AWS configuration only when uri is an s3:// URI.
func Open(ctx context.Context, uri string) ([]*router.Route, error) {
	var client S3API
	if strings.HasPrefix(uri, "s3://") {
		c, err := NewS3Client(ctx, "", "")
		if err != nil {
			return nil, err
		}
		client = c
	}

	src, err := ParseSource(uri, client)
	if err != nil {
		return nil, err
	}
	return Load(ctx, src)
}
