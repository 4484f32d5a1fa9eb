package filestore

import (
	"context"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// MinioConfig holds the connection settings of an S3 compatible store.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseTLS    bool
}

// Minio stores objects in a MinIO or S3 bucket.
type Minio struct {
	client *minio.Client
	bucket string
}

// NewMinio connects to the store and creates the bucket when it does not exist.
func NewMinio(ctx context.Context, cfg MinioConfig) (*Minio, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseTLS,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create minio client")
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, errors.Wrapf(err, "check bucket %s", cfg.Bucket)
	}

	if !exists {
		if err = client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, errors.Wrapf(err, "create bucket %s", cfg.Bucket)
		}

		log.Info().Str("bucket", cfg.Bucket).Msg("created object storage bucket")
	}

	return &Minio{client: client, bucket: cfg.Bucket}, nil
}

// Put uploads r under key.
func (m *Minio) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	_, err := m.client.PutObject(ctx, m.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})

	return errors.Wrapf(err, "put object %s", key)
}

// Delete removes key.
func (m *Minio) Delete(ctx context.Context, key string) error {
	return errors.Wrapf(
		m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{}),
		"remove object %s", key,
	)
}

// PresignedURL returns a time limited download URL for key.
func (m *Minio) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	u, err := m.client.PresignedGetObject(ctx, m.bucket, key, expiry, url.Values{})
	if err != nil {
		return "", errors.Wrapf(err, "presign object %s", key)
	}

	return u.String(), nil
}
