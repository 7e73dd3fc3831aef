package report

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/dmitrymomot/cookiemonster/pkg/logger"
	"github.com/dmitrymomot/cookiemonster/pkg/redis"
)

// Option configures Open.
type Option func(*openOptions)

type openOptions struct {
	s3Config    S3Config
	s3Client    S3Client
	redisConfig redis.Config
	redisClient redis.ListClient
	log         *slog.Logger
}

// WithS3Config sets the settings used for s3:// targets.
func WithS3Config(cfg S3Config) Option {
	return func(o *openOptions) { o.s3Config = cfg }
}

// WithS3Client uses a pre-configured S3 client for s3:// targets.
func WithS3Client(c S3Client) Option {
	return func(o *openOptions) { o.s3Client = c }
}

// WithRedisConfig sets retry and timeout settings for redis:// targets.
// The connection URL always comes from the target.
func WithRedisConfig(cfg redis.Config) Option {
	return func(o *openOptions) { o.redisConfig = cfg }
}

// WithRedisClient uses an existing client for redis:// targets.
func WithRedisClient(c redis.ListClient) Option {
	return func(o *openOptions) { o.redisClient = c }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *openOptions) {
		if l != nil {
			o.log = l
		}
	}
}

// Open resolves target to a sink:
//
//	s3://bucket/key.json           S3 object (key optional)
//	redis://host:6379/0?key=name   Redis list (rediss:// for TLS)
//	anything else                  local file path
func Open(ctx context.Context, target string, opts ...Option) (Sink, error) {
	o := openOptions{
		s3Config: S3Config{Region: "us-east-1"},
		log:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	switch {
	case strings.HasPrefix(target, "s3://"):
		u, err := url.Parse(target)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTarget, err)
		}
		return NewS3Sink(ctx, o.s3Config, u.Host, u.Path, o.s3Client)

	case strings.HasPrefix(target, "redis://"), strings.HasPrefix(target, "rediss://"):
		return openRedis(ctx, target, o)

	default:
		return NewFileSink(target)
	}
}

func openRedis(ctx context.Context, target string, o openOptions) (Sink, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTarget, err)
	}
	q := u.Query()
	key := q.Get("key")
	q.Del("key")
	u.RawQuery = q.Encode()

	if o.redisClient != nil {
		return NewRedisSink(o.redisClient, key, nil)
	}

	cfg := o.redisConfig
	cfg.ConnectionURL = u.String()
	client, err := redis.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	o.log.DebugContext(ctx, "Connected to redis", logger.Target(u.Redacted()))

	sink, err := NewRedisSink(client, key, redis.Healthcheck(client))
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	sink.close = client.Close
	return sink, nil
}

// Close releases resources held by sink, if any.
func Close(sink Sink) error {
	if c, ok := sink.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
