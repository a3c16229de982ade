// Package storage persists uploaded listing photos in S3.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type PhotoStorage struct {
	client *s3.Client
	bucket string
	prefix string
}

func NewPhotoStorage(client *s3.Client, bucket, prefix string) *PhotoStorage {
	return &PhotoStorage{client: client, bucket: bucket, prefix: prefix}
}

// Upload stores a photo under the given key and returns the full
// object key. Callers generate the key themselves (a fresh nanoid plus
// the original extension) so uploaded filenames never reach storage.
func (s *PhotoStorage) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	objectKey := path.Join(s.prefix, key)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objectKey),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload photo %s: %w", objectKey, err)
	}

	return objectKey, nil
}

func (s *PhotoStorage) Delete(ctx context.Context, objectKey string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return fmt.Errorf("failed to delete photo %s: %w", objectKey, err)
	}

	return nil
}
