package repository

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	appConfig "github.com/mansoorceksport/liftlog/internal/config"
)

// ExportBackup implements domain.ExportUploader against an S3-compatible
// store (SeaweedFS, MinIO). Export artifacts are pushed there so a shareable
// URL survives the local file being overwritten by the next export.
type ExportBackup struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewExportBackup creates the uploader and makes sure the bucket exists.
func NewExportBackup(ctx context.Context, cfg appConfig.S3Config) (*ExportBackup, error) {
	// Static "any" credentials: SeaweedFS/MinIO style endpoints want a
	// signature but don't check the identity behind it.
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("any", "any", "")),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true // required for most S3-compatible stores
	})

	b := &ExportBackup{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: cfg.Endpoint,
	}

	if err := b.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return b, nil
}

// Upload pushes an export artifact and returns its access URL.
func (b *ExportBackup) Upload(ctx context.Context, file []byte, filename string, contentType string) (string, error) {
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(filename),
		Body:        bytes.NewReader(file),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload export to S3: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", b.publicURL, b.bucket, filename), nil
}

func (b *ExportBackup) ensureBucket(ctx context.Context) error {
	_, err := b.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(b.bucket),
	})
	if err != nil {
		_, err = b.client.CreateBucket(ctx, &s3.CreateBucketInput{
			Bucket: aws.String(b.bucket),
		})
		if err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", b.bucket, err)
		}
	}
	return nil
}
