package utils

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the part of the S3 client used for uploads.
type S3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Uploader struct {
	client    S3API
	bucket    string
	publicURL string
}

// NewS3Uploader uploads into bucket; publicURL (e.g. a CloudFront domain) is
// prefixed to keys when building links.
func NewS3Uploader(client S3API, bucket, publicURL string) *S3Uploader {
	return &S3Uploader{client: client, bucket: bucket, publicURL: strings.TrimRight(publicURL, "/")}
}

func NewS3UploaderFromConfig(cfg aws.Config, bucket, publicURL string) *S3Uploader {
	return NewS3Uploader(s3.NewFromConfig(cfg), bucket, publicURL)
}

// Upload stores data under key and returns its public URL.
func (u *S3Uploader) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	if u.bucket == "" {
		return "", fmt.Errorf("S3_BUCKET not set")
	}
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	if u.publicURL == "" {
		return fmt.Sprintf("s3://%s/%s", u.bucket, key), nil
	}
	return fmt.Sprintf("%s/%s", u.publicURL, key), nil
}
