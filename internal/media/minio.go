package media

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"portfolio/internal/config"
	apperrors "portfolio/internal/errors"
)

// MinIO is a Host backed by an S3 compatible bucket.
type MinIO struct {
	client    *minio.Client
	bucket    string
	region    string
	publicURL string
	cb        *gobreaker.CircuitBreaker
	log       *logrus.Logger
}

// NewMinIO builds the client. No request is made until first use.
func NewMinIO(cfg config.Media, log *logrus.Logger) (*MinIO, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, errors.Wrap(err, "minio client")
	}

	st := gobreaker.Settings{
		Name:        "MediaHost",
		MaxRequests: 1,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warnf("%s circuit breaker state changed from %s to %s", name, from, to)
		},
	}

	return &MinIO{
		client:    client,
		bucket:    cfg.Bucket,
		region:    cfg.Region,
		publicURL: strings.TrimSuffix(cfg.PublicURL, "/"),
		cb:        gobreaker.NewCircuitBreaker(st),
		log:       log,
	}, nil
}

// EnsureBucket creates the bucket when it does not exist yet.
func (m *MinIO) EnsureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return errors.Wrapf(err, "check bucket %s", m.bucket)
	}
	if exists {
		return nil
	}
	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{Region: m.region}); err != nil {
		return errors.Wrapf(err, "create bucket %s", m.bucket)
	}
	m.log.WithField("bucket", m.bucket).Info("media bucket created")
	return nil
}

// Upload stores f under folder and returns its public URL and object name.
func (m *MinIO) Upload(ctx context.Context, folder string, f *File) (*Asset, error) {
	contentType, ext := Detect(f.Data)
	if f.ContentType != "" {
		contentType = f.ContentType
	}

	name := objectName(folder, ext, time.Now())
	_, err := m.cb.Execute(func() (interface{}, error) {
		return m.client.PutObject(ctx, m.bucket, name, bytes.NewReader(f.Data), int64(len(f.Data)),
			minio.PutObjectOptions{
				ContentType: contentType,
				UserMetadata: map[string]string{
					"original-filename": f.Filename,
				},
			})
	})
	if err != nil {
		return nil, errors.Wrapf(apperrors.ErrUpload, "put %s: %v", name, err)
	}

	return &Asset{URL: m.url(name), PublicID: name}, nil
}

// Delete removes the object named publicID.
func (m *MinIO) Delete(ctx context.Context, publicID string) error {
	_, err := m.cb.Execute(func() (interface{}, error) {
		return nil, m.client.RemoveObject(ctx, m.bucket, publicID, minio.RemoveObjectOptions{})
	})
	if err != nil {
		return errors.Wrapf(err, "remove %s", publicID)
	}
	return nil
}

// PublicID strips the public base and bucket from a URL produced by Upload.
func (m *MinIO) PublicID(url string) (string, bool) {
	prefix := m.url("")
	if !strings.HasPrefix(url, prefix) || len(url) == len(prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, prefix), true
}

func (m *MinIO) url(name string) string {
	return m.publicURL + "/" + m.bucket + "/" + name
}

func objectName(folder, ext string, now time.Time) string {
	return fmt.Sprintf("%s/%d/%02d/%s%s", folder, now.Year(), now.Month(), uuid.New().String(), ext)
}
