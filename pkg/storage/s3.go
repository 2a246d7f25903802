// Package storage uploads raw CV artifacts to S3-compatible object storage
// so the original text survives the parse step.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Config holds configuration for S3-compatible storage
type Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string
	Endpoint        string // optional custom endpoint (MinIO, Wasabi); empty for AWS
}

// CVStore persists raw CV documents
type CVStore struct {
	client *s3.Client
	bucket string
}

// NewCVStore creates a CV store backed by S3. Returns an error when the
// bucket is not reachable so misconfiguration is caught at startup.
func NewCVStore(ctx context.Context, cfg Config) (*CVStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var client *s3.Client
	if cfg.Endpoint != "" {
		// Custom endpoints require path-style addressing
		client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	} else {
		client = s3.NewFromConfig(awsCfg)
	}

	_, err = client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(cfg.Bucket),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to access bucket %s: %w", cfg.Bucket, err)
	}

	return &CVStore{client: client, bucket: cfg.Bucket}, nil
}

// PutCV stores the raw CV text under a candidate-scoped key and returns the
// object key.
func (s *CVStore) PutCV(ctx context.Context, candidateID string, text string) (string, error) {
	key := fmt.Sprintf("cv/%s/%d.txt", candidateID, time.Now().UnixNano())
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader([]byte(text)),
		ContentType: aws.String("text/plain; charset=utf-8"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload CV: %w", err)
	}
	return key, nil
}
