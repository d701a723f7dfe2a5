package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/vango-dev/ibtws/internal/config"
	"github.com/vango-dev/ibtws/pkg/archive"
	"github.com/vango-dev/ibtws/pkg/client"
	"github.com/vango-dev/ibtws/pkg/middleware"
	"github.com/vango-dev/ibtws/pkg/protocol"
	"github.com/vango-dev/ibtws/pkg/tracker"
)

// stack is a client with its hooks and sink chain:
//
//	reader -> metrics -> tracker -> archive -> downstream
type stack struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	tracker  *tracker.Tracker
	archive  *archive.Archive
	client   *client.Client
}

func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg
}

func newStack(cfg *config.Config, logger *slog.Logger, reg *prometheus.Registry, downstream protocol.Sink) *stack {
	s := &stack{cfg: cfg, logger: logger, registry: reg}

	sink := downstream
	if cfg.ArchiveEnabled() {
		s.archive = archive.New(sink, newS3Client(cfg.Archive.Region), archive.Config{
			Bucket: cfg.Archive.Bucket,
			Prefix: cfg.Archive.Prefix,
			Logger: logger,
		})
		sink = s.archive
	}
	s.tracker = tracker.New(sink, logger)

	metrics := middleware.Prometheus(middleware.WithRegistry(reg))
	s.client = client.New(metrics.Sink(s.tracker), client.Options{
		Logger:         logger,
		ExtraAuth:      cfg.Gateway.ExtraAuth,
		ConnectTimeout: cfg.ConnectTimeout(),
		Hooks: []client.Hook{
			middleware.Logging(logger),
			metrics,
			middleware.OpenTelemetry(),
		},
	})
	return s
}

// close disconnects and flushes pending archive uploads.
func (s *stack) close() {
	s.client.Disconnect()
	if s.archive == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.archive.Close(ctx); err != nil && !errors.Is(err, archive.ErrClosed) {
		s.logger.Warn("archive flush incomplete", "error", err, "stats", s.archive.Stats())
	}
}

// newS3Client builds an S3 client with credentials from the standard AWS
// environment variables.
func newS3Client(region string) *s3.Client {
	if region == "" {
		region = os.Getenv("AWS_REGION")
	}
	creds := aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
		id, secret := os.Getenv("AWS_ACCESS_KEY_ID"), os.Getenv("AWS_SECRET_ACCESS_KEY")
		if id == "" || secret == "" {
			return aws.Credentials{}, errors.New("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set")
		}
		return aws.Credentials{
			AccessKeyID:     id,
			SecretAccessKey: secret,
			SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
			Source:          "environment",
		}, nil
	})
	return s3.New(s3.Options{
		Region:      region,
		Credentials: aws.NewCredentialsCache(creds),
	})
}
