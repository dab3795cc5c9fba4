package blobstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	s3config "github.com/aws/aws-sdk-go-v2/config"
	awscredentials "github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/libelle-hq/volunteer-intake/internal/common"
	"github.com/libelle-hq/volunteer-intake/internal/credentials"
)

// S3Client stores resumes in an S3-compatible bucket. The object key is
// the blob handle.
type S3Client struct {
	client   *s3.Client
	bucket   string
	endpoint string
	logger   *slog.Logger
}

func NewS3Client(ctx context.Context, cfg common.BlobConfig, provider credentials.Provider, logger *slog.Logger) (*S3Client, error) {
	if logger == nil {
		logger = slog.Default()
	}

	creds, err := provider.Load(ctx)
	if err != nil {
		// One refresh attempt before giving up, then persist the result.
		creds, err = provider.Refresh(ctx)
		if err != nil {
			return nil, fmt.Errorf("blob store credentials: %w", err)
		}
		if perr := provider.Persist(ctx, creds); perr != nil {
			logger.Warn("blob.credentials.persist_failed", "error", perr)
		}
	}

	awsCfg, err := s3config.LoadDefaultConfig(ctx,
		s3config.WithRegion(cfg.Region),
		s3config.WithCredentialsProvider(
			awscredentials.NewStaticCredentialsProvider(
				creds.AccessKeyID,
				creds.SecretAccessKey,
				creds.SessionToken,
			),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	c := &S3Client{
		client:   client,
		bucket:   cfg.Bucket,
		endpoint: strings.TrimSuffix(cfg.Endpoint, "/"),
		logger:   logger,
	}
	if err := c.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *S3Client) ensureBucket(ctx context.Context) error {
	_, err := c.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(c.bucket)})
	if err != nil {
		var respErr *awshttp.ResponseError
		if errors.As(err, &respErr) && respErr.HTTPStatusCode() == 409 {
			return nil
		}
		return fmt.Errorf("create bucket %s: %w", c.bucket, err)
	}
	return nil
}

// Upload puts the document under its stored name and returns the object
// key as the handle plus a direct retrieval URL.
func (c *S3Client) Upload(ctx context.Context, data []byte, name string) (string, string, error) {
	key := name
	_, err := c.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return "", "", fmt.Errorf("put object %s: %w", key, err)
	}

	url := fmt.Sprintf("%s/%s/%s", c.endpoint, c.bucket, key)
	c.logger.Info("blob.upload.ok", "key", key, "bytes", len(data))
	return key, url, nil
}

func (c *S3Client) Download(ctx context.Context, handle string) ([]byte, error) {
	out, err := c.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(handle),
	})
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", handle, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read object %s: %w", handle, err)
	}
	return data, nil
}
