package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3Client is the subset of the S3 API used by S3Sink.
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Config holds connection settings for S3 and S3-compatible services.
// Empty credentials fall back to the default AWS credential chain.
type S3Config struct {
	Region         string        `env:"S3_REGION" envDefault:"us-east-1"`
	Endpoint       string        `env:"S3_ENDPOINT"`
	AccessKeyID    string        `env:"S3_ACCESS_KEY_ID"`
	SecretKey      string        `env:"S3_SECRET_ACCESS_KEY"`
	ForcePathStyle bool          `env:"S3_FORCE_PATH_STYLE" envDefault:"false"`
	UploadTimeout  time.Duration `env:"S3_UPLOAD_TIMEOUT" envDefault:"30s"`
}

// S3Sink uploads the report as a single object. With an empty key the object
// is stored as "cookiemonster/<run id>.json".
type S3Sink struct {
	client        S3Client
	bucket        string
	key           string
	uploadTimeout time.Duration
}

// NewS3Sink returns a sink for bucket/key. A nil client builds one from cfg.
func NewS3Sink(ctx context.Context, cfg S3Config, bucket, key string, client S3Client) (*S3Sink, error) {
	if bucket == "" {
		return nil, fmt.Errorf("%w: empty bucket", ErrInvalidConfig)
	}
	key = strings.TrimPrefix(key, "/")
	if strings.Contains(key, "..") {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTarget, key)
	}

	if client == nil {
		if cfg.Region == "" {
			return nil, fmt.Errorf("%w: empty region", ErrInvalidConfig)
		}
		c, err := newS3Client(ctx, cfg)
		if err != nil {
			return nil, err
		}
		client = c
	}

	return &S3Sink{
		client:        client,
		bucket:        bucket,
		key:           key,
		uploadTimeout: cfg.UploadTimeout,
	}, nil
}

func newS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToLoadConfig, err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.ForcePathStyle
	}), nil
}

// objectKey returns the configured key or the per-run default.
func (s *S3Sink) objectKey(r Report) string {
	if s.key != "" {
		return s.key
	}
	return "cookiemonster/" + r.RunID.String() + ".json"
}

func (s *S3Sink) Write(ctx context.Context, r Report) error {
	if s.uploadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.uploadTimeout)
		defer cancel()
	}

	key := s.objectKey(r)
	format := FormatFor(key)
	data, err := Marshal(r.Matches, format)
	if err != nil {
		return err
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(format.contentType()),
		Metadata:    map[string]string{"run-id": r.RunID.String()},
	})
	if err != nil {
		return classifyS3Error(err)
	}
	return nil
}

func (s *S3Sink) String() string {
	if s.key == "" {
		return "s3://" + s.bucket + "/cookiemonster/"
	}
	return "s3://" + s.bucket + "/" + s.key
}

// classifyS3Error maps SDK errors to package errors.
func classifyS3Error(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: upload report", ErrOperationTimeout)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: upload report", ErrOperationCanceled)
	}

	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return ErrBucketNotFound
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "AccessDenied":
			return fmt.Errorf("%w: upload report", ErrAccessDenied)
		case "SlowDown", "ServiceUnavailable", "RequestTimeout":
			return fmt.Errorf("%w: upload report", ErrServiceUnavailable)
		case "NoSuchBucket":
			return ErrBucketNotFound
		default:
			return fmt.Errorf("%w: upload report (code: %s): %v", ErrWrite, apiErr.ErrorCode(), err)
		}
	}

	return errors.Join(ErrWrite, err)
}
