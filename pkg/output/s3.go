package output

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"golang.org/x/sync/errgroup"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// UploadTimeout bounds a single object upload
const UploadTimeout = 30 * time.Second

var ErrMissingBucket = errors.New("S3 bucket is not configured")

// S3Config holds the connection settings for an S3-compatible store
type S3Config struct {
	AccessKey string
	SecretKey string
	Endpoint  string // Empty for AWS; set for MinIO, R2 and similar
	Region    string
	Bucket    string
}

// Enabled reports whether enough settings are present to publish
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// ObjectPutter is the part of the S3 client used for publishing
type ObjectPutter interface {
	PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error)
}

// S3Publisher uploads rendered images to a bucket
type S3Publisher struct {
	client ObjectPutter
	bucket string
	logger core.Logger
}

// NewS3Publisher creates a publisher with static credentials and path-style addressing
func NewS3Publisher(cfg S3Config, logger core.Logger) (*S3Publisher, error) {
	if !cfg.Enabled() {
		return nil, ErrMissingBucket
	}

	s3Config := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.Endpoint != "" {
		s3Config.Endpoint = aws.String(cfg.Endpoint)
	}

	sess, err := session.NewSession(s3Config)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}

	return NewS3PublisherWithClient(s3.New(sess), cfg.Bucket, logger), nil
}

// NewS3PublisherWithClient creates a publisher around an existing client
func NewS3PublisherWithClient(client ObjectPutter, bucket string, logger core.Logger) *S3Publisher {
	return &S3Publisher{client: client, bucket: bucket, logger: logger}
}

// Publish uploads one PNG object
func (p *S3Publisher) Publish(ctx context.Context, key string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	size := int64(len(data))
	_, err := p.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String("image/png"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	if p.logger != nil {
		p.logger.Printf("Uploaded %s to s3://%s (%d bytes)\n", key, p.bucket, size)
	}
	return nil
}

// Object is one upload for PublishAll
type Object struct {
	Key  string
	Data []byte
}

// PublishAll uploads objects concurrently and returns the first error.
// The remaining uploads are cancelled once one fails.
func (p *S3Publisher) PublishAll(ctx context.Context, objects []Object) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, obj := range objects {
		g.Go(func() error {
			return p.Publish(ctx, obj.Key, obj.Data)
		})
	}
	return g.Wait()
}
