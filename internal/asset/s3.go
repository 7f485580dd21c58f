// AngelaMos | 2026
// s3.go

package asset

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/andgroupco/andoffer/internal/config"
)

type s3API interface {
	PutObject(
		ctx context.Context,
		params *s3.PutObjectInput,
		optFns ...func(*s3.Options),
	) (*s3.PutObjectOutput, error)
	DeleteObject(
		ctx context.Context,
		params *s3.DeleteObjectInput,
		optFns ...func(*s3.Options),
	) (*s3.DeleteObjectOutput, error)
}

// S3Storage writes objects to an S3 compatible bucket. The storage id is the
// object key.
type S3Storage struct {
	client        s3API
	bucket        string
	prefix        string
	publicBaseURL string
	now           func() time.Time
}

func NewS3Storage(ctx context.Context, cfg config.AssetsConfig) (*S3Storage, error) {
	if cfg.S3.Bucket == "" || cfg.S3.Region == "" {
		return nil, ErrStorageNotConfigured
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3.Region),
	}
	if cfg.S3.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.S3.AccessKeyID,
				cfg.S3.SecretAccessKey,
				"",
			),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3.Endpoint)
		}
		o.UsePathStyle = cfg.S3.UsePathStyle
	})

	publicBase := cfg.S3.PublicBaseURL
	if publicBase == "" {
		publicBase = fmt.Sprintf(
			"https://%s.s3.%s.amazonaws.com",
			cfg.S3.Bucket,
			cfg.S3.Region,
		)
	}

	return newS3Storage(client, cfg.S3.Bucket, cfg.ProjectName, publicBase), nil
}

func newS3Storage(client s3API, bucket, prefix, publicBaseURL string) *S3Storage {
	return &S3Storage{
		client:        client,
		bucket:        bucket,
		prefix:        strings.Trim(prefix, "/"),
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		now:           time.Now,
	}
}

func (s *S3Storage) Put(ctx context.Context, obj Object) (StoredObject, error) {
	ctx, span := tracer.Start(ctx, "asset.S3Storage.Put")
	defer span.End()

	key := s.objectKey(obj.Extension)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          obj.Body,
		ContentType:   aws.String(obj.ContentType),
		ContentLength: aws.Int64(obj.Size),
		CacheControl:  aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		span.RecordError(err)
		return StoredObject{}, fmt.Errorf("put object: %w: %w", ErrStorage, err)
	}

	return StoredObject{
		ID:  key,
		URL: s.publicBaseURL + "/" + key,
	}, nil
}

func (s *S3Storage) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "asset.S3Storage.Delete")
	defer span.End()

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(id),
	})
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("delete object: %w: %w", ErrStorage, err)
	}

	return nil
}

// objectKey lays keys out as {prefix}/{yyyy}/{mm}/{uuid}{ext}.
func (s *S3Storage) objectKey(ext string) string {
	now := s.now().UTC()
	name := uuid.New().String() + ext

	key := fmt.Sprintf("%04d/%02d/%s", now.Year(), int(now.Month()), name)
	if s.prefix != "" {
		key = s.prefix + "/" + key
	}
	return key
}
